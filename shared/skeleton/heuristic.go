package skeleton

import (
	"math"

	"CoralVision/shared/rng"

	"github.com/go-gl/mathgl/mgl32"
)

// HeuristicParams controla o gerador heurístico (L-system estocástico).
type HeuristicParams struct {
	Generations    int     `json:"generations"`
	BranchAngle    float64 `json:"branch_angle"` // graus
	BranchLength   float64 `json:"branch_length"`
	Taper          float64 `json:"taper"`
	TrunkThickness float64 `json:"trunk_thickness"`
	Anastomosis    float64 `json:"anastomosis"`
	Seed           int32   `json:"seed"`
}

// DefaultHeuristicParams retorna os parâmetros padrão do gerador heurístico.
func DefaultHeuristicParams() HeuristicParams {
	return HeuristicParams{
		Generations:    5,
		BranchAngle:    32.0,
		BranchLength:   0.85,
		Taper:          0.68,
		TrunkThickness: 1.0,
		Anastomosis:    0.15,
		Seed:           1,
	}
}

// HeuristicGenerator produz o esqueleto por subdivisão recursiva com
// estatísticas fixas de ângulo e afinamento.
type HeuristicGenerator struct {
	params   HeuristicParams
	rnd      *rng.Source
	branches []Branch
}

// NewHeuristic cria um gerador heurístico com os parâmetros dados.
func NewHeuristic(p HeuristicParams) *HeuristicGenerator {
	return &HeuristicGenerator{params: p}
}

// Generate constrói a lista de segmentos: toco vertical, 5–7 primários em
// leque e recursão de 2–3 filhos por geração.
func (g *HeuristicGenerator) Generate() []Branch {
	g.rnd = rng.New(g.params.Seed)
	g.branches = g.branches[:0]

	trunk := float32(g.params.TrunkThickness)

	// Toco: segmento vertical curto que ancora a base no plano do chão
	stump := Branch{
		Start:       mgl32.Vec3{0, 0, 0},
		End:         mgl32.Vec3{0, 0.8 * trunk, 0},
		StartRadius: trunk,
		EndRadius:   trunk * 0.9,
		Depth:       0,
	}
	g.branches = append(g.branches, stump)

	// Primários: quantidade sorteada, azimute por slot com jitter e
	// ângulo de leque largo a partir da vertical
	primaries := 5 + g.rnd.IntN(3)
	for i := 0; i < primaries; i++ {
		azimuth := float64(i)/float64(primaries)*2*math.Pi + g.rnd.Range(-0.3, 0.3)
		fan := (30.0 + g.rnd.Float()*35.0) * math.Pi / 180.0

		dir := mgl32.Vec3{
			float32(math.Sin(fan) * math.Cos(azimuth)),
			float32(math.Cos(fan)),
			float32(math.Sin(fan) * math.Sin(azimuth)),
		}

		start := stump.End.Add(mgl32.Vec3{
			float32(g.rnd.Range(-0.2, 0.2)) * trunk,
			0,
			float32(g.rnd.Range(-0.2, 0.2)) * trunk,
		})

		length := trunk * float32(g.params.BranchLength) * float32(1.5+g.rnd.Float())
		g.grow(start, dir, length, stump.EndRadius, 1)
	}

	return g.branches
}

// grow adiciona um segmento e recursa nos filhos até atingir a geração alvo.
func (g *HeuristicGenerator) grow(origin, dir mgl32.Vec3, length, startRadius float32, depth int) {
	endRadius := startRadius * float32(g.params.Taper)
	end := origin.Add(dir.Mul(length))

	g.branches = append(g.branches, Branch{
		Start:       origin,
		End:         end,
		StartRadius: startRadius,
		EndRadius:   endRadius,
		Depth:       depth,
	})

	if depth >= g.params.Generations {
		return
	}

	children := 2 + g.rnd.IntN(2)
	for c := 0; c < children; c++ {
		// Eixo de deflexão: perpendicular ao pai, girado por azimute sorteado
		axis := rotateAround(perpendicular(dir), dir, float32(g.rnd.Angle()))
		angle := float32(g.params.BranchAngle*math.Pi/180.0) * float32(0.8+0.4*g.rnd.Float())

		childDir := rotateAround(dir, axis, angle).Normalize()
		childLength := length * float32(g.params.BranchLength) * float32(0.5+g.rnd.Float())

		g.grow(end, childDir, childLength, endRadius, depth+1)
	}
}
