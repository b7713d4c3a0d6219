// Package mesh contém a malha indexada e o pós-processamento do pipeline:
// solda de vértices coincidentes, deslocamento por ruído ao longo das
// normais, suavização Laplaciana e recorte do pedestal no plano do chão.
// A posse da malha passa linearmente de estágio em estágio; nenhum estágio
// guarda alias do anterior.
package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh é a malha indexada produzida pela solda e transformada pelos
// estágios seguintes.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

// TriangleCount retorna o número de triângulos da malha.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Weld constrói uma malha indexada a partir da sopa de triângulos do
// extrator, fundindo vértices dentro da tolerância euclidiana dada.
// positions é o array plano x,y,z por vértice; count é o número de
// vértices emitidos (o buffer alocado pode ser maior — corte antes).
func Weld(positions []float32, count int, tolerance float32) *Mesh {
	if tolerance <= 0 {
		tolerance = 1e-6
	}

	m := &Mesh{
		Indices: make([]uint32, 0, count),
	}

	// Hash espacial com célula do tamanho da tolerância; vizinhança 3³
	// cobre vértices a cavalo da fronteira de células
	cells := make(map[[3]int32][]uint32)
	tolSq := tolerance * tolerance

	keyOf := func(p mgl32.Vec3) [3]int32 {
		return [3]int32{
			int32(math.Floor(float64(p.X() / tolerance))),
			int32(math.Floor(float64(p.Y() / tolerance))),
			int32(math.Floor(float64(p.Z() / tolerance))),
		}
	}

	lookup := func(p mgl32.Vec3) (uint32, bool) {
		k := keyOf(p)
		for dz := int32(-1); dz <= 1; dz++ {
			for dy := int32(-1); dy <= 1; dy++ {
				for dx := int32(-1); dx <= 1; dx++ {
					for _, idx := range cells[[3]int32{k[0] + dx, k[1] + dy, k[2] + dz}] {
						q := m.Positions[idx]
						d := p.Sub(q)
						if d.Dot(d) <= tolSq {
							return idx, true
						}
					}
				}
			}
		}
		return 0, false
	}

	for v := 0; v < count; v++ {
		p := mgl32.Vec3{positions[v*3], positions[v*3+1], positions[v*3+2]}
		idx, ok := lookup(p)
		if !ok {
			idx = uint32(len(m.Positions))
			m.Positions = append(m.Positions, p)
			k := keyOf(p)
			cells[k] = append(cells[k], idx)
		}
		m.Indices = append(m.Indices, idx)
	}

	m.RecomputeNormals()
	return m
}

// RecomputeNormals recalcula as normais dos vértices como a média,
// ponderada por área, das normais das faces adjacentes (o produto vetorial
// não normalizado já carrega o peso de área).
func (m *Mesh) RecomputeNormals() {
	m.Normals = make([]mgl32.Vec3, len(m.Positions))

	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		a := m.Positions[i0]
		e1 := m.Positions[i1].Sub(a)
		e2 := m.Positions[i2].Sub(a)
		fn := e1.Cross(e2)

		m.Normals[i0] = m.Normals[i0].Add(fn)
		m.Normals[i1] = m.Normals[i1].Add(fn)
		m.Normals[i2] = m.Normals[i2].Add(fn)
	}

	for i := range m.Normals {
		if m.Normals[i].LenSqr() > 1e-20 {
			m.Normals[i] = m.Normals[i].Normalize()
		}
	}
}

// ToSoup expande a malha indexada de volta para uma sopa de triângulos
// (posições planas), usada pela exportação e por testes de idempotência.
func (m *Mesh) ToSoup() []float32 {
	out := make([]float32, 0, len(m.Indices)*3)
	for _, idx := range m.Indices {
		p := m.Positions[idx]
		out = append(out, p.X(), p.Y(), p.Z())
	}
	return out
}
