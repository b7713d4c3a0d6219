package util

import "github.com/go-gl/mathgl/mgl32"

// Lerp realiza interpolação linear entre dois floats.
func Lerp(start, end, amount float32) float32 {
	return start + amount*(end-start)
}

// Clamp limita um valor ao intervalo [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limita um valor ao intervalo [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// DistSq retorna a distância quadrada entre dois vetores 3D.
func DistSq(a, b mgl32.Vec3) float32 {
	dx := a.X() - b.X()
	dy := a.Y() - b.Y()
	dz := a.Z() - b.Z()
	return dx*dx + dy*dy + dz*dz
}

// DistSqXZ retorna a distância quadrada horizontal (ignorando o eixo Y).
func DistSqXZ(a, b mgl32.Vec3) float32 {
	dx := a.X() - b.X()
	dz := a.Z() - b.Z()
	return dx*dx + dz*dz
}

// MinF retorna o menor de dois float32.
func MinF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// MaxF retorna o maior de dois float32.
func MaxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Max retorna o maior de dois int.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min retorna o menor de dois int.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
