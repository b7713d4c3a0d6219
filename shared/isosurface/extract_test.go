package isosurface

import (
	"math"
	"testing"

	"CoralVision/shared/field"
	"CoralVision/shared/skeleton"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/unixpickle/model3d/model3d"
)

func buildTestField(t *testing.T) *field.ScalarField {
	t.Helper()
	branches := []skeleton.Branch{
		{Start: mgl32.Vec3{0, 0, 0}, End: mgl32.Vec3{0, 2, 0}, StartRadius: 0.5, EndRadius: 0.3},
	}
	f := field.NewFromSkeleton(branches, 32, 0.5)
	f.Rasterize(branches)
	return f
}

func TestExtractProducesTriangles(t *testing.T) {
	f := buildTestField(t)

	soup := Extract(f, 0.5)
	if soup == nil {
		t.Fatal("extração de um capsule sólido retornou nil")
	}
	if soup.VertexCount == 0 || soup.VertexCount%3 != 0 {
		t.Fatalf("contagem de vértices inválida: %d", soup.VertexCount)
	}
	if len(soup.Positions) != soup.VertexCount*3 {
		t.Fatalf("posições (%d) inconsistentes com contagem (%d)", len(soup.Positions), soup.VertexCount)
	}
}

// Duas extrações do mesmo campo produzem exatamente a mesma sopa, na
// mesma ordem. Sem isso toda a pipeline a jusante (solda, deslocamento,
// suavização) divergiria entre execuções com a mesma seed.
func TestExtractIsDeterministic(t *testing.T) {
	f := buildTestField(t)

	a := Extract(f, 0.5)
	b := Extract(f, 0.5)
	if a == nil || b == nil {
		t.Fatal("extração retornou nil")
	}
	if a.VertexCount != b.VertexCount {
		t.Fatalf("contagens divergem: %d != %d", a.VertexCount, b.VertexCount)
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("posição %d divergiu: %v != %v", i, a.Positions[i], b.Positions[i])
		}
	}
}

func TestExtractAboveMaxIsEmpty(t *testing.T) {
	f := buildTestField(t)

	// O campo nunca passa de ~2 (máximo 1 da união + blends ausentes);
	// limiar 10 não produz sólido algum.
	if soup := Extract(f, 10); soup != nil {
		t.Errorf("limiar impossível produziu %d vértices", soup.VertexCount)
	}
}

func TestExtractNilField(t *testing.T) {
	if soup := Extract(nil, 0.5); soup != nil {
		t.Error("campo nil deveria render sopa nil")
	}
}

// A amostra trilinear no centro exato de um voxel devolve o valor guardado.
func TestSampleAtVoxelCenter(t *testing.T) {
	f := buildTestField(t)
	s := &fieldSolid{f: f, iso: 0.5}

	for _, idx := range [][3]int{{16, 16, 16}, {10, 20, 12}, {5, 5, 5}} {
		c := f.VoxelCenter(idx[0], idx[1], idx[2])
		got := s.sample(model3d.XYZ(float64(c.X()), float64(c.Y()), float64(c.Z())))
		want := f.Values[f.Index(idx[0], idx[1], idx[2])]
		if math.Abs(float64(got-want)) > 1e-5 {
			t.Errorf("sample no centro do voxel %v = %v, esperado %v", idx, got, want)
		}
	}
}
