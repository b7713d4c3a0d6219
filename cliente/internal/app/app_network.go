package app

import (
	"log"
	"time"

	"CoralVision/cliente/internal/client"
	"CoralVision/shared/coral"
	"CoralVision/shared/mesh"
	"CoralVision/shared/proto/cvnet"

	"github.com/go-gl/mathgl/mgl32"
)

// connectServer estabelece a conexão WebSocket e registra os callbacks.
// Roda em goroutine própria; o loop principal só consome o canal de resultados.
func (a *App) connectServer() {
	a.netClient = client.NewNetworkClient(a.Config.ServerURL)

	a.netClient.OnMesh = func(result *cvnet.MeshResult) {
		m := resultToMesh(result)
		info := coral.BuildInfo{
			Algorithm: result.Algorithm,
			Seed:      result.Seed,
			Triangles: len(result.Indices) / 3,
			Duration:  time.Duration(result.BuildMillis) * time.Millisecond,
		}
		a.results <- buildResult{mesh: m, info: info}
	}

	a.netClient.OnStatus = func(msg string, busy bool, meshesSaved int64) {
		log.Printf("[Network] Status do servidor: %s (ocupado=%v, salvas=%d)", msg, busy, meshesSaved)
	}

	a.netClient.OnError = func(requestID int32, reason string) {
		a.results <- buildResult{err: &serverError{reason: reason}}
	}

	if err := a.netClient.Connect(); err != nil {
		log.Printf("[Network] Operando em modo local: %v", err)
		a.remote = false
	}
}

// serverError encapsula uma recusa do servidor como erro comum.
type serverError struct {
	reason string
}

func (e *serverError) Error() string {
	return "servidor: " + e.reason
}

// resultToMesh reconstrói a malha indexada a partir dos vetores achatados da rede.
func resultToMesh(result *cvnet.MeshResult) *mesh.Mesh {
	m := &mesh.Mesh{
		Positions: make([]mgl32.Vec3, 0, len(result.Positions)/3),
		Normals:   make([]mgl32.Vec3, 0, len(result.Normals)/3),
		Indices:   result.Indices,
	}
	for i := 0; i+2 < len(result.Positions); i += 3 {
		m.Positions = append(m.Positions, mgl32.Vec3{
			result.Positions[i], result.Positions[i+1], result.Positions[i+2],
		})
	}
	for i := 0; i+2 < len(result.Normals); i += 3 {
		m.Normals = append(m.Normals, mgl32.Vec3{
			result.Normals[i], result.Normals[i+1], result.Normals[i+2],
		})
	}
	return m
}
