// Package skeleton gera a árvore de segmentos cônicos que define o coral.
// Dois algoritmos produzem o mesmo tipo Branch: o heurístico (subdivisão
// estocástica com estatísticas fixas de ângulo/afinamento) e o conservador
// de fluxo (lei de Murray + ângulo de Kamiya). A lista de Branch é
// propriedade do gerador que a criou; estágios seguintes só leem.
package skeleton

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Branch é um segmento cônico orientado da árvore.
// Invariantes: Depth nunca decresce da raiz para as folhas; o Start de um
// filho coincide com o End do pai (a menos de jitter); o StartRadius do
// filho é igual ao EndRadius do pai na junta, exceto segmentos de
// anastomose, que usam o mínimo dos dois raios fundidos.
type Branch struct {
	Start       mgl32.Vec3
	End         mgl32.Vec3
	StartRadius float32
	EndRadius   float32
	Depth       int
}

// Dir retorna a direção normalizada do segmento.
// Segmento degenerado (comprimento zero) aponta para cima.
func (b Branch) Dir() mgl32.Vec3 {
	d := b.End.Sub(b.Start)
	if d.LenSqr() < 1e-12 {
		return mgl32.Vec3{0, 1, 0}
	}
	return d.Normalize()
}

// Length retorna o comprimento do segmento.
func (b Branch) Length() float32 {
	return b.End.Sub(b.Start).Len()
}

// MaxDepth retorna a profundidade máxima observada na lista.
func MaxDepth(branches []Branch) int {
	max := 0
	for _, b := range branches {
		if b.Depth > max {
			max = b.Depth
		}
	}
	return max
}

// Bounds retorna a caixa envolvente do esqueleto, já expandida pelos raios
// dos segmentos (a superfície do capsule ultrapassa o eixo).
func Bounds(branches []Branch) (min, max mgl32.Vec3) {
	const inf = float32(math.MaxFloat32)
	min = mgl32.Vec3{inf, inf, inf}
	max = mgl32.Vec3{-inf, -inf, -inf}
	for _, b := range branches {
		r := b.StartRadius
		if b.EndRadius > r {
			r = b.EndRadius
		}
		for _, p := range [2]mgl32.Vec3{b.Start, b.End} {
			for axis := 0; axis < 3; axis++ {
				if p[axis]-r < min[axis] {
					min[axis] = p[axis] - r
				}
				if p[axis]+r > max[axis] {
					max[axis] = p[axis] + r
				}
			}
		}
	}
	return min, max
}

// perpendicular devolve um vetor unitário qualquer perpendicular a v.
func perpendicular(v mgl32.Vec3) mgl32.Vec3 {
	ref := mgl32.Vec3{1, 0, 0}
	if math.Abs(float64(v.X())) > 0.9*float64(v.Len()) {
		ref = mgl32.Vec3{0, 0, 1}
	}
	return v.Cross(ref).Normalize()
}

// rotateAround rotaciona v pelo ângulo (radianos) em torno do eixo dado.
func rotateAround(v, axis mgl32.Vec3, angle float32) mgl32.Vec3 {
	return mgl32.QuatRotate(angle, axis.Normalize()).Rotate(v)
}
