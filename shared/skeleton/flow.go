package skeleton

import (
	"math"
	"sort"

	"CoralVision/shared/rng"

	"github.com/go-gl/mathgl/mgl32"
)

// Teto duro de recursão do gerador de fluxo: protege contra densidades
// altas que só terminariam pelo limiar de fluxo depois de milhares de níveis.
const flowDepthCap = 24

// FlowParams controla o gerador conservador de fluxo.
type FlowParams struct {
	Density          float64 `json:"density"`
	DiameterExponent float64 `json:"diameter_exponent"` // n da lei de Murray
	Asymmetry        float64 `json:"asymmetry"`         // [0, 0.5)
	BranchLength     float64 `json:"branch_length"`     // razão comprimento/raio
	TrunkThickness   float64 `json:"trunk_thickness"`
	Anastomosis      float64 `json:"anastomosis"`
	Seed             int32   `json:"seed"`
}

// DefaultFlowParams retorna os parâmetros padrão do gerador de fluxo.
func DefaultFlowParams() FlowParams {
	return FlowParams{
		Density:          6.5,
		DiameterExponent: 2.6,
		Asymmetry:        0.35,
		BranchLength:     6.0,
		TrunkThickness:   1.0,
		Anastomosis:      0.1,
		Seed:             1,
	}
}

// FlowGenerator produz o esqueleto por divisão de fluxo conservado: cada
// galho carrega uma fração da vazão da raiz; raio via lei de Murray e
// ângulo via equação de Kamiya. O plano de ramificação gira 90° a cada
// geração.
type FlowGenerator struct {
	params   FlowParams
	rnd      *rng.Source
	branches []Branch
}

// NewFlow cria um gerador de fluxo com os parâmetros dados.
func NewFlow(p FlowParams) *FlowGenerator {
	return &FlowGenerator{params: p}
}

// Generate constrói a lista de segmentos. O fluxo é transitório: existe só
// durante a geração, e seu efeito persiste apenas no raio de cada galho.
func (g *FlowGenerator) Generate() []Branch {
	g.rnd = rng.New(g.params.Seed)
	g.branches = g.branches[:0]

	// Limiar de terminação derivado da densidade alvo
	threshold := math.Pow(2, -g.params.Density)

	trunk := float32(g.params.TrunkThickness)
	stump := Branch{
		Start:       mgl32.Vec3{0, 0, 0},
		End:         mgl32.Vec3{0, 0.8 * trunk, 0},
		StartRadius: trunk,
		EndRadius:   trunk,
		Depth:       0,
	}
	g.branches = append(g.branches, stump)

	// Primários: pesos de fluxo sorteados e normalizados para somar 1
	primaries := 5 + g.rnd.IntN(3)
	weights := make([]float64, primaries)
	total := 0.0
	for i := range weights {
		weights[i] = 0.5 + g.rnd.Float()
		total += weights[i]
	}

	for i := 0; i < primaries; i++ {
		fraction := weights[i] / total

		azimuth := float64(i)/float64(primaries)*2*math.Pi + g.rnd.Range(-0.3, 0.3)
		fan := (30.0 + g.rnd.Float()*35.0) * math.Pi / 180.0
		dir := mgl32.Vec3{
			float32(math.Sin(fan) * math.Cos(azimuth)),
			float32(math.Cos(fan)),
			float32(math.Sin(fan) * math.Sin(azimuth)),
		}

		// Lei de Murray ancora o raio do primário na fração da vazão total
		radius := trunk * murrayRatio(fraction, g.params.DiameterExponent)
		g.grow(stump.End, dir, fraction, stump.EndRadius, radius, perpendicular(dir), 1, threshold)
	}

	return g.branches
}

// grow adiciona um segmento afinando do raio do pai para o raio próprio
// (Murray) e recursa dividindo o fluxo entre 2 ou 3 filhos.
func (g *FlowGenerator) grow(origin, dir mgl32.Vec3, flow float64, parentRadius, radius float32, planeNormal mgl32.Vec3, depth int, threshold float64) {
	length := radius * float32(g.params.BranchLength) * float32(0.7+0.6*g.rnd.Float())
	end := origin.Add(dir.Mul(length))

	g.branches = append(g.branches, Branch{
		Start:       origin,
		End:         end,
		StartRadius: parentRadius,
		EndRadius:   radius,
		Depth:       depth,
	})

	if depth >= flowDepthCap {
		return
	}

	children := 2 + g.rnd.IntN(2)
	fractions := g.splitFractions(children)

	// O plano de ramificação gira 90° em relação ao plano do pai
	normal := dir.Cross(planeNormal)
	if normal.LenSqr() < 1e-12 {
		normal = perpendicular(dir)
	} else {
		normal = normal.Normalize()
	}

	for i, f := range fractions {
		childFlow := flow * f
		if childFlow < threshold {
			continue
		}

		// Eixo de deflexão dentro do plano girado
		var axis mgl32.Vec3
		if children == 2 {
			if i == 0 {
				axis = normal
			} else {
				axis = normal.Mul(-1)
			}
		} else {
			axis = rotateAround(normal, dir, float32(i)*2*math.Pi/3)
		}

		angle := kamiyaAngle(f, g.params.DiameterExponent)
		childDir := dir.Mul(float32(math.Cos(angle))).Add(axis.Mul(float32(math.Sin(angle)))).Normalize()

		childRadius := radius * murrayRatio(f, g.params.DiameterExponent)
		g.grow(end, childDir, childFlow, radius, childRadius, normal, depth+1, threshold)
	}
}

// splitFractions sorteia as frações de fluxo dos filhos, normalizadas para
// somar 1 e ordenadas em ordem decrescente.
func (g *FlowGenerator) splitFractions(children int) []float64 {
	if children == 2 {
		// Fração menor uniforme em [0.5-asymmetry, 0.5]
		r := g.rnd.Range(0.5-g.params.Asymmetry, 0.5)
		return []float64{1 - r, r}
	}

	// Três pesos não negativos, o primeiro deliberadamente maior
	w := []float64{1 + g.rnd.Float(), g.rnd.Float(), g.rnd.Float()}
	total := w[0] + w[1] + w[2]
	for i := range w {
		w[i] /= total
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(w)))
	return w
}

// murrayRatio aplica a lei de Murray: raioFilho/raioPai = fração^(1/n).
func murrayRatio(fraction, n float64) float32 {
	return float32(math.Pow(fraction, 1.0/n))
}

// kamiyaCos calcula o cosseno do ângulo de ramificação de Kamiya para a
// fração de fluxo f. Clampado em [-1,1] antes do acos para proteger contra
// overshoot de ponto flutuante nos extremos de f.
func kamiyaCos(f, n float64) float64 {
	e := 4.0 / n
	e2 := 2.0 / n
	cos := (1 + math.Pow(f, e) - math.Pow(1-f, e)) / (2 * math.Pow(f, e2))
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return cos
}

// kamiyaAngle retorna o ângulo de Kamiya em radianos.
func kamiyaAngle(f, n float64) float64 {
	return math.Acos(kamiyaCos(f, n))
}
