package field

import (
	"math"
	"testing"

	"CoralVision/shared/skeleton"

	"github.com/go-gl/mathgl/mgl32"
)

// Ponto sobre o eixo do segmento => distância de cone = -raio (dentro);
// ponto na superfície lateral no parâmetro t => distância = 0.
func TestConeDistanceBoundary(t *testing.T) {
	b := skeleton.Branch{
		Start:       mgl32.Vec3{0, 0, 0},
		End:         mgl32.Vec3{0, 4, 0},
		StartRadius: 1.0,
		EndRadius:   0.5,
	}

	for _, tc := range []struct {
		name string
		p    mgl32.Vec3
		want float32
	}{
		{"eixo na base", mgl32.Vec3{0, 0, 0}, -1.0},
		{"eixo no meio", mgl32.Vec3{0, 2, 0}, -0.75},
		{"eixo na ponta", mgl32.Vec3{0, 4, 0}, -0.5},
		{"superfície t=0", mgl32.Vec3{1.0, 0, 0}, 0},
		{"superfície t=0.5", mgl32.Vec3{0.75, 2, 0}, 0},
		{"superfície t=1", mgl32.Vec3{0, 4, 0.5}, 0},
	} {
		d, _ := coneDistance(&b, tc.p)
		if math.Abs(float64(d-tc.want)) > 1e-5 {
			t.Errorf("%s: coneDistance = %v, esperado %v", tc.name, d, tc.want)
		}
	}
}

// Segmento degenerado: t cai para 0, sem divisão por zero.
func TestConeDistanceDegenerate(t *testing.T) {
	b := skeleton.Branch{
		Start:       mgl32.Vec3{1, 1, 1},
		End:         mgl32.Vec3{1, 1, 1},
		StartRadius: 0.5,
		EndRadius:   0.25,
	}

	d, r := coneDistance(&b, mgl32.Vec3{1, 1, 1})
	if math.IsNaN(float64(d)) {
		t.Fatal("coneDistance degenerado retornou NaN")
	}
	if r != b.StartRadius {
		t.Errorf("raio degenerado = %v, esperado raio da base %v", r, b.StartRadius)
	}
	if math.Abs(float64(d+0.5)) > 1e-6 {
		t.Errorf("distância no centro degenerado = %v, esperado -0.5", d)
	}
}

func TestContributionFalloff(t *testing.T) {
	const margin = 2.0

	if c := contribution(-0.1, margin); c != 1 {
		t.Errorf("dentro da superfície deve valer 1, veio %v", c)
	}
	if c := contribution(margin, margin); c != 0 {
		t.Errorf("na borda da margem deve valer 0, veio %v", c)
	}
	if c := contribution(margin+1, margin); c != 0 {
		t.Errorf("além da margem deve valer 0, veio %v", c)
	}

	// Decaimento quadrático: (1 - d/m)²
	c := contribution(1.0, margin)
	if math.Abs(float64(c-0.25)) > 1e-6 {
		t.Errorf("contribution(1, 2) = %v, esperado 0.25", c)
	}

	// Monotônico não crescente na banda
	prev := float32(2)
	for d := float32(0); d <= margin; d += 0.1 {
		c := contribution(d, margin)
		if c > prev {
			t.Fatalf("decaimento não monotônico em d=%v", d)
		}
		prev = c
	}
}

// A combinação por máximo nunca ultrapassa 1 mesmo com galhos sobrepostos.
func TestRasterizeMaxCombine(t *testing.T) {
	branches := []skeleton.Branch{
		{Start: mgl32.Vec3{0, 0, 0}, End: mgl32.Vec3{0, 2, 0}, StartRadius: 0.5, EndRadius: 0.5},
		{Start: mgl32.Vec3{0, 0, 0}, End: mgl32.Vec3{0, 2, 0}, StartRadius: 0.5, EndRadius: 0.5},
		{Start: mgl32.Vec3{0.1, 0, 0}, End: mgl32.Vec3{0.1, 2, 0}, StartRadius: 0.5, EndRadius: 0.5},
	}

	f := NewFromSkeleton(branches, 32, 0.5)
	f.Rasterize(branches)

	var maxVal float32
	for _, v := range f.Values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal > 1.0 {
		t.Errorf("máximo do campo %v > 1 com combinação por máximo", maxVal)
	}
	if maxVal == 0 {
		t.Error("campo vazio após rasterização")
	}
}

func TestResolutionClamp(t *testing.T) {
	branches := []skeleton.Branch{
		{Start: mgl32.Vec3{0, 0, 0}, End: mgl32.Vec3{0, 1, 0}, StartRadius: 0.3, EndRadius: 0.3},
	}

	f := NewFromSkeleton(branches, 4096, 0.3)
	if f.Resolution != MaxResolution {
		t.Errorf("resolução não clampada: %d, esperado %d", f.Resolution, MaxResolution)
	}
	if len(f.Values) != MaxResolution*MaxResolution*MaxResolution {
		t.Errorf("array de valores com tamanho errado: %d", len(f.Values))
	}
}

// Junções: duas extremidades na mesma célula viram uma esfera aditiva; com
// blobiness zero o campo não muda.
func TestJunctionBlend(t *testing.T) {
	branches := []skeleton.Branch{
		{Start: mgl32.Vec3{0, 0, 0}, End: mgl32.Vec3{0, 1, 0}, StartRadius: 0.4, EndRadius: 0.3},
		{Start: mgl32.Vec3{0, 1, 0}, End: mgl32.Vec3{0.8, 1.8, 0}, StartRadius: 0.3, EndRadius: 0.2},
		{Start: mgl32.Vec3{0, 1, 0}, End: mgl32.Vec3{-0.8, 1.8, 0}, StartRadius: 0.3, EndRadius: 0.2},
	}

	base := NewFromSkeleton(branches, 48, 0.4)
	base.Rasterize(branches)

	blended := NewFromSkeleton(branches, 48, 0.4)
	blended.Rasterize(branches)
	blended.AddJunctionBlends(branches, 1.0)

	grew := false
	for i := range base.Values {
		if blended.Values[i] < base.Values[i] {
			t.Fatal("blend de junção reduziu o campo em um voxel")
		}
		if blended.Values[i] > base.Values[i] {
			grew = true
		}
	}
	if !grew {
		t.Error("blend de junção não adicionou nada ao campo")
	}

	// Blobiness zero é um no-op
	zero := NewFromSkeleton(branches, 48, 0.4)
	zero.Rasterize(branches)
	before := make([]float32, len(zero.Values))
	copy(before, zero.Values)
	zero.AddJunctionBlends(branches, 0)
	for i := range zero.Values {
		if zero.Values[i] != before[i] {
			t.Fatal("blobiness 0 alterou o campo")
		}
	}
}

func TestIndexConvention(t *testing.T) {
	branches := []skeleton.Branch{
		{Start: mgl32.Vec3{0, 0, 0}, End: mgl32.Vec3{0, 1, 0}, StartRadius: 0.2, EndRadius: 0.2},
	}
	f := NewFromSkeleton(branches, 16, 0.2)

	// ix + iy·res + iz·res²
	if got := f.Index(3, 2, 1); got != 3+2*16+1*256 {
		t.Errorf("Index(3,2,1) = %d, esperado %d", got, 3+2*16+256)
	}
}
