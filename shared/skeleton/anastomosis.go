package skeleton

import (
	"math"

	"CoralVision/shared/rng"
)

// Fuse aplica a passada de anastomose sobre a saída de qualquer gerador:
// junções próximas são fundidas por um segmento de ligação, criando laços.
// Cada nó (ponto Start de um galho) funde no máximo uma vez; a varredura
// segue a ordem dos índices e aceita de forma gulosa o primeiro par
// qualificado. Passada O(N²) sobre os nós — aceitável para as centenas de
// galhos típicas; o teto de resolução do pipeline limita N na prática.
func Fuse(branches []Branch, probability float64, trunk float32, rnd *rng.Source) []Branch {
	if probability <= 0 || len(branches) < 2 {
		return branches
	}

	maxDepth := MaxDepth(branches)
	if maxDepth == 0 {
		return branches
	}

	// Banda de distância proporcional ao tronco
	minDist := 0.5 * trunk
	maxDist := 3.0 * trunk

	fused := make([]bool, len(branches))
	out := branches

	for i := range branches {
		if fused[i] {
			continue
		}
		for j := i + 1; j < len(branches); j++ {
			if fused[j] {
				continue
			}

			d := float32(math.Sqrt(float64(distSq(branches[i].Start, branches[j].Start))))
			if d < minDist || d > maxDist {
				continue
			}

			// Probabilidade decai com a profundidade média: laços se formam
			// perto da base, não nas pontas finas
			avgDepth := float64(branches[i].Depth+branches[j].Depth) / 2.0
			decay := 1.0 - avgDepth/float64(maxDepth)
			p := probability * decay * decay

			if rnd.Float() >= p {
				continue
			}

			radius := branches[i].StartRadius
			if branches[j].StartRadius < radius {
				radius = branches[j].StartRadius
			}
			depth := branches[i].Depth
			if branches[j].Depth > depth {
				depth = branches[j].Depth
			}

			out = append(out, Branch{
				Start:       branches[i].Start,
				End:         branches[j].Start,
				StartRadius: radius,
				EndRadius:   radius,
				Depth:       depth,
			})
			fused[i], fused[j] = true, true
			break
		}
	}

	return out
}

func distSq(a, b [3]float32) float32 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return dx*dx + dy*dy + dz*dz
}
