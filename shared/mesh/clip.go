package mesh

import (
	"CoralVision/shared/util"

	"github.com/go-gl/mathgl/mgl32"
)

// ClipGround achata o pedestal: vértices abaixo da altura da base do toco
// e dentro do raio proporcional ao tronco são puxados para cima até baseY.
// Galhos que legitimamente mergulham abaixo da base em outros pontos do
// espaço ficam intactos.
func (m *Mesh) ClipGround(baseY float32, footprint mgl32.Vec3, trunk float32) {
	radius := 2.5 * trunk
	radiusSq := radius * radius

	for i, p := range m.Positions {
		if p.Y() >= baseY {
			continue
		}
		if util.DistSqXZ(p, footprint) > radiusSq {
			continue
		}
		m.Positions[i] = mgl32.Vec3{p.X(), baseY, p.Z()}
	}
}
