package app

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// updateCamera atualiza a câmera baseado no input.
func (a *App) updateCamera() {
	dt := rl.GetFrameTime()

	a.Cam.HandleInput(dt)
	a.Cam.Update(dt)
}

// updateInput processa entradas de teclado gerais.
func (a *App) updateInput() {
	// Toggle debug info
	if rl.IsKeyPressed(rl.KeyF1) {
		a.Config.ShowDebugInfo = !a.Config.ShowDebugInfo
	}

	// Toggle wireframe
	if rl.IsKeyPressed(rl.KeyF4) {
		a.Config.WireframeMode = !a.Config.WireframeMode
	}

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Rotação automática de vitrine
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Cam.AutoRotate = !a.Cam.AutoRotate
		log.Printf("[App] Rotação automática: %v", a.Cam.AutoRotate)
	}

	// ESC: Alternar Pausa
	if rl.IsKeyPressed(rl.KeyEscape) {
		if a.State == StateViewing {
			a.State = StatePaused
			log.Println("[App] Pausado")
		} else if a.State == StatePaused {
			a.State = StateViewing
			log.Println("[App] Retomando")
		}
		return
	}

	if a.State != StateViewing {
		return
	}

	// R: novo coral com seed aleatória
	if rl.IsKeyPressed(rl.KeyR) {
		a.randomizeSeed()
	}

	// G: alternar algoritmo de geração
	if rl.IsKeyPressed(rl.KeyG) {
		a.toggleAlgorithm()
	}

	// +/-: iterações de suavização
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.adjustSmoothing(1)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.adjustSmoothing(-1)
	}

	// S: exportar STL
	if rl.IsKeyPressed(rl.KeyS) {
		a.exportCoral()
	}
}
