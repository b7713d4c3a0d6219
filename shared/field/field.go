// Package field rasteriza o esqueleto em um campo escalar volumétrico denso.
// Cada galho contribui com uma aproximação analítica de distância de um
// capsule cônico; a combinação entre galhos é por MÁXIMO por voxel, que é
// união pura: onde dois galhos se cruzam a superfície não engrossa, como
// engrossaria numa soma. Só os fillets de junção (blend.go) somam por cima
// dessa união, e exatamente onde queremos volume extra.
package field

import (
	"log"
	"math"

	"CoralVision/shared/skeleton"
	"CoralVision/shared/util"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxResolution é o teto duro da grade: 192³ floats ≈ 28 MB. Resoluções
// acima disso são clampadas (limite de capacidade, não erro).
const MaxResolution = 192

// ScalarField é a grade cúbica de valores, indexada ix + iy·res + iz·res².
// Criada por construção de malha, preenchida pela rasterização, consumida
// uma vez pelo extrator de isosuperfície e descartada.
type ScalarField struct {
	Resolution int
	Origin     mgl32.Vec3 // canto mínimo da região no espaço do mundo
	Size       float32    // lado do cubo
	VoxelSize  float32
	Values     []float32
}

// NewFromSkeleton aloca o campo cobrindo a caixa envolvente do esqueleto,
// expandida para uma região cúbica com margem de segurança.
func NewFromSkeleton(branches []skeleton.Branch, resolution int, trunk float32) *ScalarField {
	if resolution > MaxResolution {
		log.Printf("[Field] Resolução %d acima do teto, clampada para %d", resolution, MaxResolution)
		resolution = MaxResolution
	}
	if resolution < 8 {
		resolution = 8
	}

	min, max := skeleton.Bounds(branches)
	pad := 2 * trunk
	min = min.Sub(mgl32.Vec3{pad, pad, pad})
	max = max.Add(mgl32.Vec3{pad, pad, pad})

	// Região cúbica centrada na caixa envolvente
	extent := max.Sub(min)
	side := util.MaxF(extent.X(), util.MaxF(extent.Y(), extent.Z()))
	center := min.Add(extent.Mul(0.5))
	origin := center.Sub(mgl32.Vec3{side / 2, side / 2, side / 2})

	return &ScalarField{
		Resolution: resolution,
		Origin:     origin,
		Size:       side,
		VoxelSize:  side / float32(resolution),
		Values:     make([]float32, resolution*resolution*resolution),
	}
}

// Index converte coordenadas de voxel no índice plano do array.
func (f *ScalarField) Index(ix, iy, iz int) int {
	return ix + iy*f.Resolution + iz*f.Resolution*f.Resolution
}

// VoxelCenter retorna o centro do voxel no espaço do mundo.
func (f *ScalarField) VoxelCenter(ix, iy, iz int) mgl32.Vec3 {
	h := f.VoxelSize * 0.5
	return f.Origin.Add(mgl32.Vec3{
		float32(ix)*f.VoxelSize + h,
		float32(iy)*f.VoxelSize + h,
		float32(iz)*f.VoxelSize + h,
	})
}

// Rasterize acumula a contribuição de todos os galhos no campo.
// Sequencial: a acumulação por máximo é comutativa e associativa, então
// dá para paralelizar por partição da grade sem mudar o resultado.
func (f *ScalarField) Rasterize(branches []skeleton.Branch) {
	for i := range branches {
		f.rasterizeBranch(&branches[i])
	}
}

// rasterizeBranch avalia o capsule cônico do galho em todos os voxels da
// sua caixa envolvente acolchoada, combinando por máximo.
func (f *ScalarField) rasterizeBranch(b *skeleton.Branch) {
	maxR := util.MaxF(b.StartRadius, b.EndRadius)
	margin := f.margin(maxR)
	reach := maxR + margin

	lo := f.clampVoxel(minVec(b.Start, b.End).Sub(mgl32.Vec3{reach, reach, reach}))
	hi := f.clampVoxel(maxVec(b.Start, b.End).Add(mgl32.Vec3{reach, reach, reach}))

	for iz := lo[2]; iz <= hi[2]; iz++ {
		for iy := lo[1]; iy <= hi[1]; iy++ {
			base := iy*f.Resolution + iz*f.Resolution*f.Resolution
			for ix := lo[0]; ix <= hi[0]; ix++ {
				p := f.VoxelCenter(ix, iy, iz)
				d, localR := coneDistance(b, p)

				m := f.margin(localR)
				c := contribution(d, m)
				if c <= 0 {
					continue
				}

				idx := base + ix
				if c > f.Values[idx] {
					f.Values[idx] = c
				}
			}
		}
	}
}

// margin define a banda de decaimento fora da superfície: pelo menos o
// dobro do raio local e pelo menos duas larguras de voxel.
func (f *ScalarField) margin(radius float32) float32 {
	return util.MaxF(2*radius, 2*f.VoxelSize)
}

// contribution converte a distância assinada em valor de campo:
// 1 dentro da superfície, decaimento quadrático (1-d/m)² na banda, 0 fora.
func contribution(coneDist, margin float32) float32 {
	if coneDist <= 0 {
		return 1
	}
	if coneDist >= margin {
		return 0
	}
	n := 1 - coneDist/margin
	return n * n
}

// coneDistance retorna a distância assinada do ponto à superfície do
// capsule cônico (negativa dentro) e o raio interpolado no parâmetro
// projetado. Segmento degenerado usa t=0 para evitar divisão por zero.
func coneDistance(b *skeleton.Branch, p mgl32.Vec3) (dist, radius float32) {
	axis := b.End.Sub(b.Start)
	lenSq := axis.LenSqr()

	t := float32(0)
	if lenSq > 1e-12 {
		t = p.Sub(b.Start).Dot(axis) / lenSq
		t = util.Clamp01(t) // clamp dá as tampas arredondadas nas pontas
	}

	closest := b.Start.Add(axis.Mul(t))
	radius = util.Lerp(b.StartRadius, b.EndRadius, t)
	dist = p.Sub(closest).Len() - radius
	return dist, radius
}

// clampVoxel converte um ponto do mundo em coordenadas de voxel clampadas
// aos limites da grade.
func (f *ScalarField) clampVoxel(p mgl32.Vec3) [3]int {
	var out [3]int
	for axis := 0; axis < 3; axis++ {
		v := int(math.Floor(float64((p[axis] - f.Origin[axis]) / f.VoxelSize)))
		if v < 0 {
			v = 0
		}
		if v > f.Resolution-1 {
			v = f.Resolution - 1
		}
		out[axis] = v
	}
	return out
}

func minVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{util.MinF(a.X(), b.X()), util.MinF(a.Y(), b.Y()), util.MinF(a.Z(), b.Z())}
}

func maxVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{util.MaxF(a.X(), b.X()), util.MaxF(a.Y(), b.Y()), util.MaxF(a.Z(), b.Z())}
}
