package coral

import (
	"testing"

	"CoralVision/shared/skeleton"
)

func smallParams() Params {
	p := DefaultParams()
	p.Heuristic.Generations = 2
	p.Heuristic.Seed = 42
	p.Flow.Seed = 42
	p.Resolution = 32
	p.SmoothingIterations = 1
	return p
}

func TestIsoFromThickness(t *testing.T) {
	// Monotônico decrescente: mais espessura => limiar menor
	prev := IsoFromThickness(0)
	for th := 5.0; th <= 100; th += 5 {
		iso := IsoFromThickness(th)
		if iso >= prev {
			t.Fatalf("mapeamento não monotônico em th=%v: %v >= %v", th, iso, prev)
		}
		prev = iso
	}

	// Fora do intervalo clampa, não explode
	if IsoFromThickness(-10) != IsoFromThickness(0) {
		t.Error("thickness negativo não clampou em 0")
	}
	if IsoFromThickness(500) != IsoFromThickness(100) {
		t.Error("thickness acima de 100 não clampou")
	}
}

func TestBuildHeuristicSmall(t *testing.T) {
	m, info, err := Build(smallParams())
	if err != nil {
		t.Fatalf("Build falhou: %v", err)
	}
	if m == nil {
		t.Fatal("Build de um esqueleto válido retornou malha nil")
	}
	if info.Triangles == 0 || m.TriangleCount() != info.Triangles {
		t.Errorf("contagem de triângulos inconsistente: info=%d malha=%d", info.Triangles, m.TriangleCount())
	}
	if info.Branches < 6 {
		t.Errorf("esqueleto suspeito de %d galhos (mínimo toco+5 primários)", info.Branches)
	}
}

func TestBuildDeterminism(t *testing.T) {
	p := smallParams()

	m1, i1, err1 := Build(p)
	m2, i2, err2 := Build(p)
	if err1 != nil || err2 != nil {
		t.Fatalf("Build falhou: %v / %v", err1, err2)
	}

	if i1.Branches != i2.Branches || i1.Triangles != i2.Triangles {
		t.Fatalf("builds divergiram: %+v vs %+v", i1, i2)
	}
	if len(m1.Positions) != len(m2.Positions) {
		t.Fatalf("contagem de vértices divergiu: %d != %d", len(m1.Positions), len(m2.Positions))
	}
	for i := range m1.Positions {
		if m1.Positions[i] != m2.Positions[i] {
			t.Fatalf("posição %d divergiu: %v != %v", i, m1.Positions[i], m2.Positions[i])
		}
	}
}

func TestBuildUnknownAlgorithm(t *testing.T) {
	p := smallParams()
	p.Algorithm = "particle"
	if _, _, err := Build(p); err == nil {
		t.Error("algoritmo desconhecido deveria retornar erro")
	}
}

func TestBuildFlowSmall(t *testing.T) {
	p := smallParams()
	p.Algorithm = skeleton.AlgoFlow
	p.Flow.Density = 3 // árvore pequena para o teste ficar rápido

	m, info, err := Build(p)
	if err != nil {
		t.Fatalf("Build falhou: %v", err)
	}
	if m == nil {
		t.Fatal("Build de fluxo retornou malha nil")
	}
	if info.Algorithm != skeleton.AlgoFlow {
		t.Errorf("info com algoritmo errado: %s", info.Algorithm)
	}
}

func TestWithSeed(t *testing.T) {
	p := DefaultParams().WithSeed(99)
	if p.Heuristic.Seed != 99 || p.Flow.Seed != 99 {
		t.Errorf("WithSeed não propagou: %d / %d", p.Heuristic.Seed, p.Flow.Seed)
	}
}
