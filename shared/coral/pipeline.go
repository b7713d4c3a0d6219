// Package coral orquestra o pipeline completo: parâmetros + seed →
// esqueleto → anastomose → campo escalar → isosuperfície → pós-processo.
// Totalmente síncrono: uma chamada de Build é função pura dos parâmetros;
// quem quiser gerar em background roda Build numa goroutine e descarta o
// resultado anterior — não há tarefa para cancelar.
package coral

import (
	"fmt"
	"log"
	"time"

	"CoralVision/shared/field"
	"CoralVision/shared/isosurface"
	"CoralVision/shared/mesh"
	"CoralVision/shared/rng"
	"CoralVision/shared/skeleton"
	"CoralVision/shared/util"

	"github.com/go-gl/mathgl/mgl32"
)

// Params reúne todos os parâmetros de geração e de malha.
type Params struct {
	Algorithm string                   `json:"algorithm"`
	Heuristic skeleton.HeuristicParams `json:"heuristic"`
	Flow      skeleton.FlowParams      `json:"flow"`

	Resolution          int     `json:"resolution"`
	Thickness           float64 `json:"thickness"` // [0,100], mapeado para isolação
	Blobiness           float64 `json:"blobiness"` // [0,2]
	SmoothingIterations int     `json:"smoothing_iterations"`
	NoiseAmount         float64 `json:"noise_amount"`
	NoiseScale          float64 `json:"noise_scale"`
}

// DefaultParams retorna o conjunto completo de parâmetros padrão.
func DefaultParams() Params {
	return Params{
		Algorithm:           skeleton.AlgoHeuristic,
		Heuristic:           skeleton.DefaultHeuristicParams(),
		Flow:                skeleton.DefaultFlowParams(),
		Resolution:          96,
		Thickness:           50,
		Blobiness:           0.8,
		SmoothingIterations: 2,
		NoiseAmount:         0.35,
		NoiseScale:          0.4,
	}
}

// Seed retorna a seed do algoritmo ativo.
func (p Params) Seed() int32 {
	if p.Algorithm == skeleton.AlgoFlow {
		return p.Flow.Seed
	}
	return p.Heuristic.Seed
}

// WithSeed devolve uma cópia dos parâmetros com a seed trocada nos dois
// algoritmos, para o ciclo "regenerar" do visualizador.
func (p Params) WithSeed(seed int32) Params {
	p.Heuristic.Seed = seed
	p.Flow.Seed = seed
	return p
}

// Trunk retorna a espessura de tronco do algoritmo ativo.
func (p Params) Trunk() float32 {
	if p.Algorithm == skeleton.AlgoFlow {
		return float32(p.Flow.TrunkThickness)
	}
	return float32(p.Heuristic.TrunkThickness)
}

// anastomosis retorna a probabilidade de anastomose do algoritmo ativo.
func (p Params) anastomosis() float64 {
	if p.Algorithm == skeleton.AlgoFlow {
		return p.Flow.Anastomosis
	}
	return p.Heuristic.Anastomosis
}

// IsoFromThickness mapeia a espessura de interface [0,100] para o limiar
// de isolação do campo: espessura maior => limiar menor => sólido mais
// gordo. th=0 → 0.9, th=50 → 0.5, th=100 → 0.1.
func IsoFromThickness(th float64) float32 {
	th = float64(util.Clamp(float32(th), 0, 100))
	return float32(0.9 - 0.008*th)
}

// BuildInfo descreve o resultado de uma construção, para log e persistência.
type BuildInfo struct {
	Algorithm  string
	Seed       int32
	Branches   int
	Resolution int
	VoxelSize  float32
	Triangles  int
	Duration   time.Duration
}

// Build executa o pipeline inteiro. Malha nil com erro nil significa
// "nenhum sólido produzido" (esqueleto vazio ou limiar acima do campo) —
// condição degradada, não falha.
func Build(p Params) (*mesh.Mesh, BuildInfo, error) {
	start := time.Now()
	info := BuildInfo{
		Algorithm:  p.Algorithm,
		Seed:       p.Seed(),
		Resolution: p.Resolution,
	}

	var gen skeleton.Generator
	switch p.Algorithm {
	case skeleton.AlgoHeuristic:
		gen = skeleton.NewHeuristic(p.Heuristic)
	case skeleton.AlgoFlow:
		gen = skeleton.NewFlow(p.Flow)
	default:
		return nil, info, fmt.Errorf("algoritmo desconhecido: %q", p.Algorithm)
	}

	branches := gen.Generate()
	branches = skeleton.Fuse(branches, p.anastomosis(), p.Trunk(), rng.New(p.Seed()+1))
	info.Branches = len(branches)

	if len(branches) < 2 {
		log.Printf("[Coral] Esqueleto com %d galhos, malha vazia", len(branches))
		info.Duration = time.Since(start)
		return nil, info, nil
	}

	f := field.NewFromSkeleton(branches, p.Resolution, p.Trunk())
	info.Resolution = f.Resolution
	info.VoxelSize = f.VoxelSize

	f.Rasterize(branches)
	f.AddJunctionBlends(branches, float32(p.Blobiness))

	soup := isosurface.Extract(f, IsoFromThickness(p.Thickness))
	if soup == nil || soup.VertexCount == 0 {
		log.Printf("[Coral] Extrator não emitiu vértices (iso=%.3f), malha vazia", IsoFromThickness(p.Thickness))
		info.Duration = time.Since(start)
		return nil, info, nil
	}

	m := mesh.Weld(soup.Positions[:soup.VertexCount*3], soup.VertexCount, 1e-4*f.Size)
	m.Displace(p.NoiseAmount, p.NoiseScale, f.VoxelSize)
	m.Smooth(p.SmoothingIterations)

	// A base do toco fica na origem nos dois geradores
	m.ClipGround(0, mgl32.Vec3{0, 0, 0}, p.Trunk())

	info.Triangles = m.TriangleCount()
	info.Duration = time.Since(start)

	log.Printf("[Coral] Build %s seed=%d: %d galhos, %d triângulos em %v",
		info.Algorithm, info.Seed, info.Branches, info.Triangles, info.Duration)

	return m, info, nil
}
