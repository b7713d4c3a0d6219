// Package isosurface liga o campo escalar ao extrator externo de
// isosuperfície (marching cubes do model3d). O pipeline trata o extrator
// como caixa-preta: entra o array plano do campo + limiar de isolação,
// sai uma sopa de triângulos não indexada.
package isosurface

import (
	"math"
	"sort"

	"CoralVision/shared/field"

	"github.com/unixpickle/model3d/model3d"
)

// TriangleSoup é a saída bruta do extrator: array plano de posições por
// vértice, três vértices por triângulo. As normais são recalculadas
// depois da solda, então não viajam daqui.
type TriangleSoup struct {
	Positions   []float32
	VertexCount int
}

// fieldSolid adapta a grade de voxels para a interface Solid contínua do
// model3d via interpolação trilinear: sólido onde campo >= iso.
type fieldSolid struct {
	f   *field.ScalarField
	iso float32
}

func (s *fieldSolid) Min() model3d.Coord3D {
	o := s.f.Origin
	return model3d.XYZ(float64(o.X()), float64(o.Y()), float64(o.Z()))
}

func (s *fieldSolid) Max() model3d.Coord3D {
	o := s.f.Origin
	side := float64(s.f.Size)
	return model3d.XYZ(float64(o.X())+side, float64(o.Y())+side, float64(o.Z())+side)
}

func (s *fieldSolid) Contains(c model3d.Coord3D) bool {
	return s.sample(c) >= s.iso
}

// sample interpola trilinearmente o campo no ponto contínuo c. Os valores
// vivem nos centros dos voxels; fora da grade a amostra clampa na borda
// (que a margem de rasterização garante ser ~0).
func (s *fieldSolid) sample(c model3d.Coord3D) float32 {
	f := s.f
	res := f.Resolution

	gx := (c.X-float64(f.Origin.X()))/float64(f.VoxelSize) - 0.5
	gy := (c.Y-float64(f.Origin.Y()))/float64(f.VoxelSize) - 0.5
	gz := (c.Z-float64(f.Origin.Z()))/float64(f.VoxelSize) - 0.5

	x0 := clampIdx(int(math.Floor(gx)), res)
	y0 := clampIdx(int(math.Floor(gy)), res)
	z0 := clampIdx(int(math.Floor(gz)), res)
	x1 := clampIdx(x0+1, res)
	y1 := clampIdx(y0+1, res)
	z1 := clampIdx(z0+1, res)

	fx := float32(gx - math.Floor(gx))
	fy := float32(gy - math.Floor(gy))
	fz := float32(gz - math.Floor(gz))

	v000 := f.Values[f.Index(x0, y0, z0)]
	v100 := f.Values[f.Index(x1, y0, z0)]
	v010 := f.Values[f.Index(x0, y1, z0)]
	v110 := f.Values[f.Index(x1, y1, z0)]
	v001 := f.Values[f.Index(x0, y0, z1)]
	v101 := f.Values[f.Index(x1, y0, z1)]
	v011 := f.Values[f.Index(x0, y1, z1)]
	v111 := f.Values[f.Index(x1, y1, z1)]

	ix00 := lerp(v000, v100, fx)
	ix10 := lerp(v010, v110, fx)
	ix01 := lerp(v001, v101, fx)
	ix11 := lerp(v011, v111, fx)

	iy0 := lerp(ix00, ix10, fy)
	iy1 := lerp(ix01, ix11, fy)

	return lerp(iy0, iy1, fz)
}

// Extract roda o marching cubes sobre o campo no limiar dado e devolve a
// sopa de triângulos. Retorna nil quando nenhum sólido foi produzido.
func Extract(f *field.ScalarField, iso float32) *TriangleSoup {
	if f == nil || len(f.Values) == 0 {
		return nil
	}

	solid := &fieldSolid{f: f, iso: iso}
	m := model3d.MarchingCubes(solid, float64(f.VoxelSize))
	tris := m.TriangleSlice()
	if len(tris) == 0 {
		return nil
	}
	// A malha interna guarda as faces num map, então TriangleSlice sai em
	// ordem arbitrária. Ordenar aqui garante que a sopa é função pura do
	// campo: mesma seed, mesmas posições, bit a bit.
	sort.Slice(tris, func(i, j int) bool {
		return triLess(tris[i], tris[j])
	})

	soup := &TriangleSoup{
		Positions:   make([]float32, 0, len(tris)*9),
		VertexCount: len(tris) * 3,
	}
	for _, t := range tris {
		for _, v := range t {
			soup.Positions = append(soup.Positions, float32(v.X), float32(v.Y), float32(v.Z))
		}
	}
	return soup
}

// triLess compara dois triângulos lexicograficamente pelas nove
// coordenadas dos vértices, na ordem em que foram emitidos.
func triLess(a, b *model3d.Triangle) bool {
	for i := 0; i < 3; i++ {
		av, bv := a[i], b[i]
		if av.X != bv.X {
			return av.X < bv.X
		}
		if av.Y != bv.Y {
			return av.Y < bv.Y
		}
		if av.Z != bv.Z {
			return av.Z < bv.Z
		}
	}
	return false
}

func clampIdx(i, res int) int {
	if i < 0 {
		return 0
	}
	if i > res-1 {
		return res - 1
	}
	return i
}

func lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}
