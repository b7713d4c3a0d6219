package skeleton

import (
	"math"
	"testing"

	"CoralVision/shared/rng"
)

func TestHeuristicDeterminism(t *testing.T) {
	p := DefaultHeuristicParams()
	p.Seed = 42

	a := NewHeuristic(p).Generate()
	b := NewHeuristic(p).Generate()

	if len(a) != len(b) {
		t.Fatalf("tamanhos diferentes: %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("galho %d divergiu: %+v != %+v", i, a[i], b[i])
		}
	}
}

func TestFlowDeterminism(t *testing.T) {
	p := DefaultFlowParams()
	p.Seed = 1337

	a := NewFlow(p).Generate()
	b := NewFlow(p).Generate()

	if len(a) != len(b) {
		t.Fatalf("tamanhos diferentes: %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("galho %d divergiu: %+v != %+v", i, a[i], b[i])
		}
	}
}

// Cenário fim-a-fim da heurística: toco + 5–7 primários + 2 ou 3 filhos por
// primário, contagem totalmente previsível entre execuções.
func TestHeuristicScenario(t *testing.T) {
	p := HeuristicParams{
		Generations:    2,
		BranchAngle:    35,
		BranchLength:   0.85,
		Taper:          0.6,
		TrunkThickness: 1,
		Anastomosis:    0,
		Seed:           42,
	}

	branches := NewHeuristic(p).Generate()

	var stumps, primaries, leaves int
	for _, b := range branches {
		switch b.Depth {
		case 0:
			stumps++
		case 1:
			primaries++
		case 2:
			leaves++
		default:
			t.Fatalf("profundidade inesperada %d com generations=2", b.Depth)
		}
	}

	if stumps != 1 {
		t.Errorf("esperado exatamente 1 toco, veio %d", stumps)
	}
	if primaries < 5 || primaries > 7 {
		t.Errorf("primários fora de [5,7]: %d", primaries)
	}
	if leaves < 2*primaries || leaves > 3*primaries {
		t.Errorf("folhas fora de [%d,%d]: %d", 2*primaries, 3*primaries, leaves)
	}
	if len(branches) != stumps+primaries+leaves {
		t.Errorf("contagem inconsistente: %d != %d", len(branches), stumps+primaries+leaves)
	}

	// Re-execução tem que bater exatamente
	again := NewHeuristic(p).Generate()
	if len(again) != len(branches) {
		t.Errorf("contagem mudou entre execuções: %d != %d", len(again), len(branches))
	}
}

func TestHeuristicTaperContinuity(t *testing.T) {
	p := DefaultHeuristicParams()
	p.Generations = 3
	p.Seed = 7

	branches := NewHeuristic(p).Generate()
	for _, b := range branches {
		want := b.StartRadius * float32(p.Taper)
		if b.Depth > 0 && math.Abs(float64(b.EndRadius-want)) > 1e-6 {
			t.Fatalf("afinamento quebrado: start=%v end=%v taper=%v", b.StartRadius, b.EndRadius, p.Taper)
		}
	}
}

func TestDepthNonDecreasing(t *testing.T) {
	for _, gen := range []Generator{
		NewHeuristic(DefaultHeuristicParams()),
		NewFlow(DefaultFlowParams()),
	} {
		branches := gen.Generate()
		maxSeen := 0
		for _, b := range branches {
			if b.Depth < 0 {
				t.Fatalf("profundidade negativa: %+v", b)
			}
			if b.Depth > maxSeen {
				maxSeen = b.Depth
			}
		}
		if maxSeen == 0 {
			t.Error("árvore sem recursão alguma")
		}
	}
}

// Conservação de fluxo: as frações de divisão somam 1 dentro da tolerância.
func TestSplitFractionsConservation(t *testing.T) {
	g := NewFlow(DefaultFlowParams())
	g.rnd = rng.New(9)

	for i := 0; i < 200; i++ {
		for _, children := range []int{2, 3} {
			fr := g.splitFractions(children)
			if len(fr) != children {
				t.Fatalf("esperadas %d frações, vieram %d", children, len(fr))
			}
			sum := 0.0
			for k, f := range fr {
				if f < 0 {
					t.Fatalf("fração negativa: %v", f)
				}
				if k > 0 && fr[k] > fr[k-1] {
					t.Fatalf("frações fora de ordem decrescente: %v", fr)
				}
				sum += f
			}
			if math.Abs(sum-1.0) > 1e-6 {
				t.Fatalf("frações somam %v, esperado 1.0", sum)
			}
		}
	}
}

// Lei de Murray: raioFilho/raioPai = f^(1/n).
func TestMurrayRatio(t *testing.T) {
	for _, n := range []float64{2.0, 2.6, 3.0, 3.5} {
		for f := 0.05; f < 1.0; f += 0.05 {
			got := float64(murrayRatio(f, n))
			want := math.Pow(f, 1.0/n)
			if math.Abs(got-want) > 1e-6 {
				t.Fatalf("murrayRatio(%v, %v) = %v, esperado %v", f, n, got, want)
			}
		}
	}
}

// Cosseno de Kamiya dentro de [-1,1] em todo o domínio útil; em f=0.5 os
// dois filhos de uma divisão binária têm ângulos iguais.
func TestKamiyaAngle(t *testing.T) {
	for _, n := range []float64{2.0, 2.5, 3.0, 3.5} {
		for f := 0.01; f < 1.0; f += 0.01 {
			cos := kamiyaCos(f, n)
			if cos < -1 || cos > 1 {
				t.Fatalf("kamiyaCos(%v, %v) = %v fora de [-1,1]", f, n, cos)
			}
		}

		a1 := kamiyaAngle(0.5, n)
		a2 := kamiyaAngle(1-0.5, n)
		if math.Abs(a1-a2) > 1e-9 {
			t.Errorf("ângulos desiguais em f=0.5: %v != %v", a1, a2)
		}
		if a1 < 0 || a1 >= math.Pi/2 {
			t.Errorf("ângulo de Kamiya implausível em f=0.5: %v", a1)
		}
		// Para n > 2 a divisão simétrica abre um ângulo estritamente positivo
		if n > 2 && a1 <= 0 {
			t.Errorf("ângulo zero em divisão simétrica com n=%v", n)
		}
	}
}

// Anastomose: nenhum nó aparece como extremidade de mais de um segmento
// fundido, mesmo com probabilidade máxima.
func TestFuseExclusivity(t *testing.T) {
	// Lista sintética com pontos de início todos distintos e dentro da
	// banda de distância uns dos outros (tronco = 1 → banda [0.5, 3])
	var branches []Branch
	for i := 0; i < 8; i++ {
		start := [3]float32{float32(i) * 0.9, 0, 0}
		branches = append(branches, Branch{
			Start:       start,
			End:         [3]float32{float32(i) * 0.9, 2, 0},
			StartRadius: 0.2 + 0.05*float32(i),
			EndRadius:   0.15,
			Depth:       1,
		})
	}
	// Um galho profundo garante maxDepth > profundidade média dos pares
	branches = append(branches, Branch{
		Start: [3]float32{100, 0, 0}, End: [3]float32{100, 1, 0},
		StartRadius: 0.1, EndRadius: 0.1, Depth: 6,
	})

	original := len(branches)
	out := Fuse(branches, 1.0, 1.0, rng.New(3))

	if len(out) == original {
		t.Fatal("probabilidade máxima e pares na banda, mas nada fundiu")
	}

	used := make(map[[3]float32]int)
	for _, b := range out[original:] {
		used[[3]float32(b.Start)]++
		used[[3]float32(b.End)]++
	}
	for node, n := range used {
		if n > 1 {
			t.Fatalf("nó %v fundido %d vezes", node, n)
		}
	}

	// Raio do segmento fundido = mínimo dos dois raios; profundidade = máximo
	for _, b := range out[original:] {
		if b.StartRadius != b.EndRadius {
			t.Errorf("segmento de anastomose com raio não uniforme: %+v", b)
		}
	}
}

func TestFuseZeroProbability(t *testing.T) {
	p := DefaultHeuristicParams()
	branches := NewHeuristic(p).Generate()

	out := Fuse(branches, 0, float32(p.TrunkThickness), rng.New(1))
	if len(out) != len(branches) {
		t.Errorf("anastomose com probabilidade 0 adicionou segmentos: %d -> %d", len(branches), len(out))
	}
}

func TestBoundsContainAllSegments(t *testing.T) {
	branches := NewFlow(DefaultFlowParams()).Generate()
	min, max := Bounds(branches)

	for _, b := range branches {
		for axis := 0; axis < 3; axis++ {
			if b.Start[axis] < min[axis] || b.Start[axis] > max[axis] {
				t.Fatalf("Start fora dos bounds no eixo %d: %v", axis, b.Start)
			}
			if b.End[axis] < min[axis] || b.End[axis] > max[axis] {
				t.Fatalf("End fora dos bounds no eixo %d: %v", axis, b.End)
			}
		}
	}
}
