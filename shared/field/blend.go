package field

import (
	"math"

	"CoralVision/shared/skeleton"

	"github.com/go-gl/mathgl/mgl32"
)

// junction é uma célula do hash espacial que acumulou 2+ extremidades de
// galho; a esfera representante usa o maior raio adjacente.
type junction struct {
	center mgl32.Vec3
	radius float32
	count  int
}

// AddJunctionBlends detecta junções por hash espacial das extremidades e
// soma uma contribuição esférica (metaball) em cada uma, por cima da união
// por máximo, para suavizar os encontros de galhos.
// Sem efeito quando blobiness <= 0.
func (f *ScalarField) AddJunctionBlends(branches []skeleton.Branch, blobiness float32) {
	if blobiness <= 0 || len(branches) == 0 {
		return
	}

	// Tolerância de snap: meia largura de voxel
	cell := f.VoxelSize * 0.5
	cells := make(map[[3]int32]*junction)

	snap := func(p mgl32.Vec3, r float32) {
		key := [3]int32{
			int32(math.Floor(float64(p.X() / cell))),
			int32(math.Floor(float64(p.Y() / cell))),
			int32(math.Floor(float64(p.Z() / cell))),
		}
		j, ok := cells[key]
		if !ok {
			j = &junction{center: p}
			cells[key] = j
		}
		j.count++
		if r > j.radius {
			j.radius = r
		}
	}

	for _, b := range branches {
		snap(b.Start, b.StartRadius)
		snap(b.End, b.EndRadius)
	}

	for _, j := range cells {
		if j.count < 2 {
			continue
		}
		f.addSphere(j.center, j.radius*blobiness)
	}
}

// addSphere soma o decaimento quadrático de uma esfera no campo.
// Aditivo por design: o fillet engrossa a união onde os galhos se tocam.
func (f *ScalarField) addSphere(center mgl32.Vec3, radius float32) {
	if radius <= 0 {
		return
	}

	margin := f.margin(radius)
	reach := radius + margin
	lo := f.clampVoxel(center.Sub(mgl32.Vec3{reach, reach, reach}))
	hi := f.clampVoxel(center.Add(mgl32.Vec3{reach, reach, reach}))

	for iz := lo[2]; iz <= hi[2]; iz++ {
		for iy := lo[1]; iy <= hi[1]; iy++ {
			base := iy*f.Resolution + iz*f.Resolution*f.Resolution
			for ix := lo[0]; ix <= hi[0]; ix++ {
				p := f.VoxelCenter(ix, iy, iz)
				d := p.Sub(center).Len() - radius
				c := contribution(d, margin)
				if c > 0 {
					f.Values[base+ix] += c
				}
			}
		}
	}
}
