package app

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"CoralVision/shared/coral"
	"CoralVision/shared/export"
	"CoralVision/shared/skeleton"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// startBuild dispara a construção de um coral com os parâmetros atuais.
// No modo remoto o pedido vai para o servidor; no local, para uma goroutine.
func (a *App) startBuild() {
	if a.building {
		log.Println("[App] Geração já em andamento, ignorando pedido")
		return
	}
	a.building = true
	a.buildStarted = rl.GetTime()
	a.nextRequestID++
	a.statusLine = fmt.Sprintf("Gerando %s seed=%d...", a.Config.Coral.Algorithm, a.Config.Coral.Seed())

	if a.remote && a.netClient != nil && a.netClient.IsConnected() {
		paramsJSON, err := json.Marshal(a.Config.Coral)
		if err != nil {
			a.building = false
			a.statusLine = fmt.Sprintf("Erro nos parâmetros: %v", err)
			return
		}
		a.netClient.RequestGenerate(a.nextRequestID, paramsJSON, true)
		return
	}

	params := a.Config.Coral
	go func() {
		m, info, err := coral.Build(params)
		a.results <- buildResult{mesh: m, info: info, err: err}
	}()
}

// processResults consome malhas prontas sem bloquear o frame.
func (a *App) processResults() {
	select {
	case res := <-a.results:
		a.building = false
		if res.err != nil {
			log.Printf("[App] Geração falhou: %v", res.err)
			a.statusLine = fmt.Sprintf("Erro: %v", res.err)
			return
		}
		if res.mesh == nil {
			a.statusLine = "Geração produziu malha vazia"
			return
		}
		a.lastMesh = res.mesh
		a.lastInfo = res.info
		a.renderer.Upload(res.mesh)
		a.Cam.Frame(a.renderer.MaxHeight(), res.info.VoxelSize*float32(res.info.Resolution)*0.5)
		a.statusLine = fmt.Sprintf("%s seed=%d: %d triângulos em %v",
			res.info.Algorithm, res.info.Seed, res.info.Triangles, res.info.Duration.Round(time.Millisecond))
	default:
	}
}

// randomizeSeed troca a seed e reconstrói.
func (a *App) randomizeSeed() {
	seed := int32(rl.GetRandomValue(1, 99999))
	a.Config.Coral = a.Config.Coral.WithSeed(seed)
	log.Printf("[App] Nova seed: %d", seed)
	a.startBuild()
}

// toggleAlgorithm alterna entre os dois geradores de esqueleto.
func (a *App) toggleAlgorithm() {
	if a.Config.Coral.Algorithm == skeleton.AlgoHeuristic {
		a.Config.Coral.Algorithm = skeleton.AlgoFlow
	} else {
		a.Config.Coral.Algorithm = skeleton.AlgoHeuristic
	}
	log.Printf("[App] Algoritmo: %s", a.Config.Coral.Algorithm)
	a.startBuild()
}

// adjustSmoothing altera as iterações de suavização e reconstrói.
func (a *App) adjustSmoothing(delta int) {
	n := a.Config.Coral.SmoothingIterations + delta
	if n < 0 {
		n = 0
	}
	if n > 10 {
		n = 10
	}
	if n == a.Config.Coral.SmoothingIterations {
		return
	}
	a.Config.Coral.SmoothingIterations = n
	log.Printf("[App] Suavização: %d iterações", n)
	a.startBuild()
}

// exportCoral grava a malha atual como STL no diretório de exportação.
func (a *App) exportCoral() {
	if a.lastMesh == nil {
		a.statusLine = "Nada para exportar ainda"
		return
	}
	name := fmt.Sprintf("coral_%s_%d.stl", a.lastInfo.Algorithm, a.lastInfo.Seed)
	path := filepath.Join(a.Config.ExportDir, name)
	if err := export.WriteSTL(path, a.lastMesh); err != nil {
		log.Printf("[App] Falha na exportação: %v", err)
		a.statusLine = fmt.Sprintf("Falha na exportação: %v", err)
		return
	}
	a.statusLine = fmt.Sprintf("Exportado: %s", path)
}
