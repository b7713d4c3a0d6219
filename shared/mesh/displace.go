package mesh

import (
	"CoralVision/shared/noise"
	"CoralVision/shared/util"
)

// Três oitavas de ruído: larga, média e fina. Os offsets fixos
// descorrelacionam as oitavas entre si (sem eles as três amostram o mesmo
// padrão em escalas diferentes e os picos coincidem).
var octaves = [3]struct {
	frequency float64
	weight    float64
	offset    [3]float64
}{
	{1.0, 0.40, [3]float64{0, 0, 0}},
	{2.7, 0.35, [3]float64{31.416, 47.853, 12.793}},
	{6.1, 0.25, [3]float64{-17.3, 83.1, -29.7}},
}

// Displace desloca cada vértice ao longo da sua normal (já soldada e
// mediada) por ruído multi-oitava. A máscara de altura cresce o efeito em
// direção ao topo da estrutura; a magnitude é clampada em 1,5 voxel para
// não auto-intersectar galhos finos.
func (m *Mesh) Displace(amount, scale float64, voxelSize float32) {
	if amount <= 0 || scale <= 0 || len(m.Positions) == 0 {
		return
	}

	maxY := float32(0)
	for _, p := range m.Positions {
		if p.Y() > maxY {
			maxY = p.Y()
		}
	}
	if maxY <= 0 {
		maxY = 1
	}

	limit := 1.5 * voxelSize

	for i, p := range m.Positions {
		var sum float64
		for _, oct := range octaves {
			f := scale * oct.frequency
			sum += oct.weight * noise.Sample3(
				float64(p.X())*f+oct.offset[0],
				float64(p.Y())*f+oct.offset[1],
				float64(p.Z())*f+oct.offset[2],
			)
		}

		mask := 0.3 + 0.7*util.Clamp01(p.Y()/maxY)
		d := util.Clamp(float32(sum*amount)*mask, -limit, limit)

		m.Positions[i] = p.Add(m.Normals[i].Mul(d))
	}
}
