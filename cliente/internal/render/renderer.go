package render

/*
#include <stdlib.h>
*/
import "C"

import (
	"log"
	"sync"
	"unsafe"

	"CoralVision/shared/mesh"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer mantém o modelo GPU do coral corrente e o substitui quando
// uma nova malha chega (geração local ou do servidor).
type Renderer struct {
	mu sync.Mutex

	model     rl.Model
	active    bool
	triangles int
	maxY      float32

	CoralShader  rl.Shader
	maxHeightLoc int32

	CoralColor rl.Color
}

// NewRenderer cria um renderizador e compila o shader do coral.
// Deve ser chamado depois de rl.InitWindow.
func NewRenderer() *Renderer {
	r := &Renderer{
		CoralColor: rl.NewColor(235, 130, 110, 255),
	}

	if rl.IsWindowReady() {
		r.CoralShader = rl.LoadShaderFromMemory(coralVertexShader, coralFragmentShader)

		// Locs é um ponteiro bruto (*int32) que aponta para um array em C
		locs := unsafe.Slice(r.CoralShader.Locs, 32)
		locs[12] = rl.GetShaderLocation(r.CoralShader, "colDiffuse") // SHADER_LOC_COLOR_DIFFUSE

		r.maxHeightLoc = rl.GetShaderLocation(r.CoralShader, "maxHeight")
		log.Printf("[Renderer] Shader do coral compilado (id=%d)", r.CoralShader.ID)
	}

	return r
}

// Upload substitui o modelo atual pela malha dada.
// A malha é copiada para memória C antes do envio à GPU.
func (r *Renderer) Upload(m *mesh.Mesh) {
	if !rl.IsWindowReady() || m == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active {
		rl.UnloadModel(r.model)
		r.active = false
	}

	if len(m.Positions) == 0 || len(m.Indices) == 0 {
		log.Println("[Renderer] Malha vazia, nada a enviar")
		return
	}

	rlMesh := r.meshToRaylib(m)
	rl.UploadMesh(&rlMesh, false)
	r.model = rl.LoadModelFromMesh(rlMesh)

	if r.CoralShader.ID != 0 && r.model.MaterialCount > 0 {
		materials := unsafe.Slice(r.model.Materials, r.model.MaterialCount)
		materials[0].Shader = r.CoralShader
	}

	r.active = true
	r.triangles = m.TriangleCount()
	r.maxY = maxHeight(m)
	log.Printf("[Renderer] Modelo enviado: %d vértices, %d triângulos", len(m.Positions), r.triangles)
}

// meshToRaylib expande a malha indexada para buffers planos em memória C.
// O buffer de índices do Raylib é uint16 e corais grandes passam de 65k
// vértices, então o upload é sempre desindexado.
func (r *Renderer) meshToRaylib(m *mesh.Mesh) rl.Mesh {
	var rlMesh rl.Mesh
	rlMesh.VertexCount = int32(len(m.Indices))
	rlMesh.TriangleCount = int32(len(m.Indices) / 3)

	positions := make([]float32, 0, len(m.Indices)*3)
	normals := make([]float32, 0, len(m.Indices)*3)
	for _, idx := range m.Indices {
		p := m.Positions[idx]
		positions = append(positions, p.X(), p.Y(), p.Z())
		if int(idx) < len(m.Normals) {
			n := m.Normals[idx]
			normals = append(normals, n.X(), n.Y(), n.Z())
		}
	}

	rlMesh.Vertices = (*float32)(r.copyToC(unsafe.Pointer(&positions[0]), len(positions)*4))
	if len(normals) == len(positions) {
		rlMesh.Normals = (*float32)(r.copyToC(unsafe.Pointer(&normals[0]), len(normals)*4))
	}
	return rlMesh
}

func (r *Renderer) copyToC(data unsafe.Pointer, size int) unsafe.Pointer {
	if size <= 0 || data == nil {
		return nil
	}
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		return nil
	}
	cSlice := unsafe.Slice((*byte)(ptr), size)
	goSlice := unsafe.Slice((*byte)(data), size)
	copy(cSlice, goSlice)
	return ptr
}

// HasModel informa se há um coral carregado na GPU.
func (r *Renderer) HasModel() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Triangles retorna a contagem de triângulos do modelo atual.
func (r *Renderer) Triangles() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.triangles
}

// MaxHeight retorna a altura do modelo atual (topo do coral).
func (r *Renderer) MaxHeight() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxY
}

// Draw renderiza o coral. Com wireframe ativo, desenha as arestas por cima.
func (r *Renderer) Draw(wireframe bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return
	}

	if r.CoralShader.ID != 0 {
		rl.SetShaderValue(r.CoralShader, r.maxHeightLoc, []float32{r.maxY}, rl.ShaderUniformFloat)
	}

	rl.DrawModel(r.model, rl.Vector3{X: 0, Y: 0, Z: 0}, 1.0, r.CoralColor)
	if wireframe {
		rl.DrawModelWires(r.model, rl.Vector3{X: 0, Y: 0, Z: 0}, 1.0, rl.NewColor(20, 20, 30, 255))
	}
}

// Unload libera o modelo e o shader da GPU.
func (r *Renderer) Unload() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active {
		rl.UnloadModel(r.model)
		r.active = false
	}
	if r.CoralShader.ID != 0 {
		rl.UnloadShader(r.CoralShader)
	}
}

func maxHeight(m *mesh.Mesh) float32 {
	var maxY float32
	for _, p := range m.Positions {
		if p.Y() > maxY {
			maxY = p.Y()
		}
	}
	return maxY
}
