package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// draw renderiza a cena.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(12, 26, 44, 255)) // Azul de fundo de aquário

	a.drawScene()
	a.drawHUD()

	if a.building {
		a.drawBuildingOverlay()
	}
	if a.State == StatePaused {
		a.drawPauseMenu()
	}

	rl.EndDrawing()
}

// drawScene renderiza a cena 3D.
func (a *App) drawScene() {
	rl.BeginMode3D(a.Cam.RLCamera)

	// Plano de fundo do leito
	rl.DrawGrid(24, 2.0)

	if a.renderer != nil {
		a.renderer.Draw(a.Config.WireframeMode)
	}

	rl.EndMode3D()
}

// drawHUD desenha a interface sobreposta.
func (a *App) drawHUD() {
	// Linha de status sempre visível no rodapé
	rl.DrawText(a.statusLine, 10, int32(rl.GetScreenHeight())-26, 16, rl.LightGray)

	if !a.Config.ShowDebugInfo {
		rl.DrawText("F1: painel | R: nova seed | G: algoritmo | S: exportar STL",
			10, 10, 16, rl.NewColor(180, 200, 220, 200))
		return
	}

	// Fundo semi-transparente para o painel
	width := int32(330)
	height := int32(220)
	x := int32(rl.GetScreenWidth()) - width - 10
	y := int32(10)

	rl.DrawRectangle(x, y, width, height, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, y, width, height, rl.NewColor(50, 50, 50, 255))

	// FPS
	fps := rl.GetFPS()
	fpsColor := rl.Green
	if fps < 30 {
		fpsColor = rl.Red
	} else if fps < 50 {
		fpsColor = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("FPS: %d", fps), x+10, y+10, 20, fpsColor)

	modeStr := "Local"
	if a.remote && a.netClient != nil && a.netClient.IsConnected() {
		modeStr = "Servidor"
	}
	rl.DrawText(modeStr, x+240, y+10, 20, rl.SkyBlue)

	// Divisor
	rl.DrawLine(x+10, y+35, x+width-10, y+35, rl.NewColor(100, 100, 100, 100))

	// Parâmetros do coral atual
	rl.DrawText("CORAL", x+10, y+45, 12, rl.Gray)
	rl.DrawText(fmt.Sprintf("Algoritmo: %s  Seed: %d", a.Config.Coral.Algorithm, a.Config.Coral.Seed()),
		x+10, y+60, 16, rl.White)
	rl.DrawText(fmt.Sprintf("Resolução: %d  Espessura: %.0f", a.Config.Coral.Resolution, a.Config.Coral.Thickness),
		x+10, y+80, 14, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Suavização: %d  Ruído: %.2f", a.Config.Coral.SmoothingIterations, a.Config.Coral.NoiseAmount),
		x+10, y+97, 14, rl.LightGray)

	// Divisor
	rl.DrawLine(x+10, y+118, x+width-10, y+118, rl.NewColor(100, 100, 100, 100))

	// Última malha construída
	rl.DrawText("MALHA", x+10, y+126, 12, rl.Gray)
	if a.lastInfo.Triangles > 0 {
		rl.DrawText(fmt.Sprintf("%d galhos, %d triângulos", a.lastInfo.Branches, a.lastInfo.Triangles),
			x+10, y+141, 14, rl.LightGray)
		rl.DrawText(fmt.Sprintf("Construída em %v", a.lastInfo.Duration.Round(time.Millisecond)),
			x+10, y+158, 14, rl.LightGray)
	} else {
		rl.DrawText("(aguardando primeira geração)", x+10, y+141, 14, rl.LightGray)
	}

	// Atalhos Rápidos
	rl.DrawLine(x+10, y+178, x+width-10, y+178, rl.NewColor(100, 100, 100, 100))
	rl.DrawText("R: seed | G: algoritmo | +/-: suavizar | S: STL", x+10, y+186, 13, rl.SkyBlue)
	rl.DrawText("Setas: mover | Espaço: girar | F4: wireframe", x+10, y+202, 13, rl.SkyBlue)
}

// drawBuildingOverlay mostra o progresso de uma geração em andamento.
func (a *App) drawBuildingOverlay() {
	elapsed := rl.GetTime() - a.buildStarted

	w := int32(rl.GetScreenWidth())
	msg := fmt.Sprintf("Gerando coral... %.1fs", elapsed)
	textW := rl.MeasureText(msg, 20)

	rl.DrawRectangle(w/2-textW/2-20, 40, textW+40, 40, rl.NewColor(0, 0, 0, 200))
	rl.DrawText(msg, w/2-textW/2, 50, 20, rl.RayWhite)

	// Spinner simples girando com o tempo
	cx := float32(w/2 - textW/2 - 35)
	rl.DrawCircleSector(rl.Vector2{X: cx, Y: 60}, 10,
		float32(elapsed*360), float32(elapsed*360)+270, 16, rl.SkyBlue)
}

// drawPauseMenu desenha a tela de pausa por cima da cena.
func (a *App) drawPauseMenu() {
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())

	rl.DrawRectangle(0, 0, w, h, rl.NewColor(0, 0, 0, 150))

	title := "PAUSADO"
	titleW := rl.MeasureText(title, 40)
	rl.DrawText(title, w/2-titleW/2, h/2-60, 40, rl.RayWhite)

	hint := "ESC para voltar"
	hintW := rl.MeasureText(hint, 20)
	rl.DrawText(hint, w/2-hintW/2, h/2, 20, rl.LightGray)
}
