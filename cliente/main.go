package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"CoralVision/cliente/internal/app"
	"CoralVision/shared/config"
)

func main() {
	// IMPORTANTE para estabilidade no Windows: Raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	// Flags de linha de comando
	serverURL := flag.String("server", "", "URL do Servidor CoralVision (padrão: ws://127.0.0.1:8090/ws)")
	remote := flag.Bool("remote", false, "Gerar corais no servidor em vez de localmente")
	seed := flag.Int("seed", 0, "Seed inicial do coral (0 = usar config)")
	algorithm := flag.String("algo", "", "Algoritmo de geração: heuristic ou flow")
	fullscreen := flag.Bool("fullscreen", false, "Iniciar em tela cheia")
	debug := flag.Bool("debug", false, "Mostrar informações de debug")
	width := flag.Int("width", 0, "Largura da janela")
	height := flag.Int("height", 0, "Altura da janela")
	flag.Parse()

	// Configurar Log em Arquivo
	f, err := os.OpenFile("debug_cv.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		log.SetOutput(f)
		log.Println("--- INICIANDO CORAL VISION ---")
	}

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║         CoralVision v0.1.0           ║")
	log.Println("║  Gerador procedural de corais em 3D  ║")
	log.Println("╚══════════════════════════════════════╝")

	// Carregar configurações
	cfg := config.Load()

	// Aplicar flags de linha de comando (sobrescrevem o config salvo)
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if *fullscreen {
		cfg.Fullscreen = true
	}
	if *debug {
		cfg.ShowDebugInfo = true
	}
	if *width > 0 {
		cfg.WindowWidth = int32(*width)
	}
	if *height > 0 {
		cfg.WindowHeight = int32(*height)
	}
	if *seed != 0 {
		cfg.Coral = cfg.Coral.WithSeed(int32(*seed))
	}
	if *algorithm != "" {
		cfg.Coral.Algorithm = *algorithm
	}

	// Criar e rodar a aplicação
	application := app.New(cfg, *remote)
	application.Run()
}
