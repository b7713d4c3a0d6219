package camera

import (
	"math"

	"CoralVision/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitController gerencia uma câmera orbital centrada no coral.
// Movimento suave: os valores atuais perseguem os alvos via interpolação.
type OrbitController struct {
	RLCamera rl.Camera3D

	// Configurações
	MinZoom      float32
	MaxZoom      float32
	RotateSpeed  float32
	ZoomSpeed    float32
	PanSpeed     float32
	SmoothFactor float32 // 0.0 a 1.0 (quanto menor, mais suave/lento)

	// Estado Alvo
	TargetLookAt rl.Vector3
	TargetZoom   float32
	TargetAngleY float32 // Azimute (radianos)
	TargetAngleX float32 // Elevação (radianos)

	// Estado Atual (interpolado)
	CurrentLookAt rl.Vector3
	CurrentZoom   float32

	// Rotação automática de vitrine quando o usuário está ocioso
	AutoRotate bool
}

// New cria um controlador orbital com os alvos apontando para a origem.
func New(sensitivity, zoomSpeed float32) *OrbitController {
	c := &OrbitController{
		MinZoom:      2.0,
		MaxZoom:      120.0,
		RotateSpeed:  sensitivity,
		ZoomSpeed:    zoomSpeed,
		PanSpeed:     12.0,
		SmoothFactor: 0.12,

		TargetLookAt: rl.Vector3{X: 0, Y: 4, Z: 0},
		TargetZoom:   22.0,
		TargetAngleY: 45.0 * rl.Deg2rad,
		TargetAngleX: -20.0 * rl.Deg2rad,
		AutoRotate:   true,
	}

	// Inicializa os valores atuais com os alvos para não "saltar" no início
	c.CurrentLookAt = c.TargetLookAt
	c.CurrentZoom = c.TargetZoom

	c.RLCamera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}

	c.recompute()
	return c
}

// Frame enquadra um coral de altura e raio dados, centrando o alvo na metade da altura.
func (c *OrbitController) Frame(height, radius float32) {
	if height <= 0 {
		height = 8
	}
	c.TargetLookAt = rl.Vector3{X: 0, Y: height * 0.5, Z: 0}
	c.TargetZoom = util.Clamp(util.MaxF(height, radius)*2.2, c.MinZoom, c.MaxZoom)
}

// Update interpola os valores atuais em direção aos alvos. Chamar a cada frame.
func (c *OrbitController) Update(dt float32) {
	if c.AutoRotate {
		c.TargetAngleY += 0.25 * dt
	}

	factor := c.SmoothFactor * 60.0 * dt // Normaliza para 60 FPS
	if factor > 1.0 {
		factor = 1.0
	}

	cur := mgl32.Vec3{c.CurrentLookAt.X, c.CurrentLookAt.Y, c.CurrentLookAt.Z}
	tgt := mgl32.Vec3{c.TargetLookAt.X, c.TargetLookAt.Y, c.TargetLookAt.Z}
	lerped := cur.Add(tgt.Sub(cur).Mul(factor))

	c.CurrentLookAt = rl.Vector3{X: lerped.X(), Y: lerped.Y(), Z: lerped.Z()}
	c.CurrentZoom = util.Lerp(c.CurrentZoom, c.TargetZoom, factor)

	c.recompute()
}

// recompute converte os ângulos esféricos e o zoom para a posição cartesiana da câmera.
func (c *OrbitController) recompute() {
	dist := c.CurrentZoom

	cosX := float32(math.Cos(float64(c.TargetAngleX)))
	sinX := float32(math.Sin(float64(c.TargetAngleX)))
	cosY := float32(math.Cos(float64(c.TargetAngleY)))
	sinY := float32(math.Sin(float64(c.TargetAngleY)))

	offsetX := dist * cosX * sinY
	offsetY := dist * -sinX // Y é UP no Raylib, sinX negativo pois olhamos de cima
	offsetZ := dist * cosX * cosY

	c.RLCamera.Position = rl.Vector3{
		X: c.CurrentLookAt.X + offsetX,
		Y: c.CurrentLookAt.Y + offsetY,
		Z: c.CurrentLookAt.Z + offsetZ,
	}
	c.RLCamera.Target = c.CurrentLookAt
}

// HandleInput processa mouse e teclado. Retorna true se houve interação manual.
func (c *OrbitController) HandleInput(dt float32) bool {
	moved := false

	// Zoom com Scroll
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		moved = true
		c.TargetZoom -= wheel * c.ZoomSpeed
		c.TargetZoom = util.Clamp(c.TargetZoom, c.MinZoom, c.MaxZoom)
	}

	// Rotação com botão esquerdo (Orbit)
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			moved = true
		}
		c.TargetAngleY -= delta.X * c.RotateSpeed * 0.005
		c.TargetAngleX -= delta.Y * c.RotateSpeed * 0.005

		// Clamp na elevação para não virar a câmera de ponta cabeça
		maxElev := float32(85.0 * rl.Deg2rad)
		minElev := float32(-85.0 * rl.Deg2rad)
		c.TargetAngleX = util.Clamp(c.TargetAngleX, minElev, maxElev)
	}

	// Pan com setas relativo à câmera (WASD fica livre para atalhos de geração)
	camPos := mgl32.Vec3{c.RLCamera.Position.X, c.RLCamera.Position.Y, c.RLCamera.Position.Z}
	lookAt := mgl32.Vec3{c.TargetLookAt.X, c.TargetLookAt.Y, c.TargetLookAt.Z}

	forward := lookAt.Sub(camPos)
	forward[1] = 0
	if forward.Len() < 1e-6 {
		forward = mgl32.Vec3{0, 0, -1}
	}
	forward = forward.Normalize()
	right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()

	// Velocidade proporcional ao zoom: mais longe, mais rápido
	speed := c.PanSpeed * (c.CurrentZoom / 22.0) * dt

	move := mgl32.Vec3{0, 0, 0}
	if rl.IsKeyDown(rl.KeyUp) {
		move = move.Add(forward)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		move = move.Sub(forward)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		move = move.Add(right)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		move = move.Sub(right)
	}
	if rl.IsKeyDown(rl.KeyE) {
		move = move.Add(mgl32.Vec3{0, 1, 0})
	}
	if rl.IsKeyDown(rl.KeyQ) {
		move = move.Sub(mgl32.Vec3{0, 1, 0})
	}

	if move.Len() > 0 {
		move = move.Normalize().Mul(speed)
		lookAt = lookAt.Add(move)
		c.TargetLookAt = rl.Vector3{X: lookAt.X(), Y: lookAt.Y(), Z: lookAt.Z()}
		moved = true
	}

	if moved {
		c.AutoRotate = false
	}
	return moved
}
