package app

import (
	"log"

	"CoralVision/cliente/internal/camera"
	"CoralVision/cliente/internal/client"
	"CoralVision/cliente/internal/render"
	"CoralVision/shared/config"
	"CoralVision/shared/coral"
	"CoralVision/shared/mesh"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AppState representa os estados possíveis da aplicação.
type AppState int

const (
	StateViewing AppState = iota // Visualizando o coral
	StatePaused                  // Pausado
)

// buildResult é o que uma geração (local ou remota) entrega ao loop principal.
type buildResult struct {
	mesh *mesh.Mesh
	info coral.BuildInfo
	err  error
}

// App é a aplicação principal do CoralVision.
type App struct {
	Config *config.Config
	State  AppState

	// Geração remota: os corais são construídos pelo servidor
	remote    bool
	netClient *client.NetworkClient

	Cam      *camera.OrbitController
	renderer *render.Renderer

	// Geração em andamento
	building      bool
	buildStarted  float64
	results       chan buildResult
	nextRequestID int32

	// Último coral construído
	lastMesh *mesh.Mesh
	lastInfo coral.BuildInfo

	frameCount int
	statusLine string
}

// New cria uma nova instância da aplicação.
func New(cfg *config.Config, remote bool) *App {
	return &App{
		Config:     cfg,
		State:      StateViewing,
		remote:     remote,
		results:    make(chan buildResult, 4),
		statusLine: "Pronto",
	}
}

// Run inicia o loop principal da aplicação.
func (a *App) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro fatal recuperado: %v", r)
			panic(r) // Re-throw para o Windows mostrar o erro se necessário
		}
	}()

	// Inicializar janela raylib
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.Config.WindowTitle)
	rl.SetTraceLogLevel(rl.LogWarning) // Reduz ruído no terminal

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}

	rl.SetTargetFPS(a.Config.TargetFPS)
	rl.SetExitKey(0) // ESC pausa em vez de fechar

	a.Cam = camera.New(a.Config.CameraSensitivity, a.Config.ZoomSpeed)
	a.renderer = render.NewRenderer()

	log.Println("[CoralVision] Janela inicializada com sucesso")
	log.Printf("[CoralVision] Resolução: %dx%d", a.Config.WindowWidth, a.Config.WindowHeight)

	if a.remote {
		go a.connectServer()
	}

	// Primeiro coral com os parâmetros do config
	a.startBuild()

	// Loop principal
	for !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}

	a.shutdown()
	rl.CloseWindow()
}

// update atualiza a lógica a cada frame.
func (a *App) update() {
	a.frameCount++

	switch a.State {
	case StateViewing:
		a.updateCamera()
		a.updateInput()
		a.processResults()
	case StatePaused:
		a.updateInput() // Permite detectar ESC para despausar
	}
}

// shutdown realiza a limpeza de recursos.
func (a *App) shutdown() {
	log.Println("[App] Finalizando aplicação...")

	if a.netClient != nil {
		a.netClient.Close()
	}
	a.renderer.Unload()

	if err := a.Config.Save(); err != nil {
		log.Printf("[CoralVision] Erro ao salvar configurações: %v", err)
	}
}
