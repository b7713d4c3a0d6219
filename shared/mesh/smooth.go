package mesh

import "github.com/go-gl/mathgl/mgl32"

// Smooth aplica relaxação Laplaciana: a cada iteração o vértice vai para
// 0.5·posiçãoAntiga + 0.5·(média do anel de vizinhos). Zero iterações
// deixa a malha intocada. As normais são recalculadas ao final.
func (m *Mesh) Smooth(iterations int) {
	if iterations <= 0 || len(m.Positions) == 0 {
		return
	}

	neighbors := m.buildAdjacency()
	next := make([]mgl32.Vec3, len(m.Positions))

	for iter := 0; iter < iterations; iter++ {
		for i, p := range m.Positions {
			ring := neighbors[i]
			if len(ring) == 0 {
				next[i] = p
				continue
			}

			var avg mgl32.Vec3
			for _, n := range ring {
				avg = avg.Add(m.Positions[n])
			}
			avg = avg.Mul(1 / float32(len(ring)))

			next[i] = p.Mul(0.5).Add(avg.Mul(0.5))
		}
		m.Positions, next = next, m.Positions
	}

	m.RecomputeNormals()
}

// buildAdjacency monta o anel-1 de cada vértice a partir do buffer de
// índices, sem duplicatas.
func (m *Mesh) buildAdjacency() [][]uint32 {
	neighbors := make([][]uint32, len(m.Positions))
	seen := make(map[uint64]bool)

	link := func(a, b uint32) {
		key := uint64(a)<<32 | uint64(b)
		if seen[key] {
			return
		}
		seen[key] = true
		neighbors[a] = append(neighbors[a], b)
	}

	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		link(i0, i1)
		link(i1, i0)
		link(i1, i2)
		link(i2, i1)
		link(i2, i0)
		link(i0, i2)
	}

	return neighbors
}
