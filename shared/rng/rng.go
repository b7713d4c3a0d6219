// Package rng implementa o gerador pseudo-aleatório semeado do CoralVision.
// Toda decisão estocástica do pipeline (galhos, anastomose) consome este
// stream: mesma seed => mesma sequência => mesma geometria final.
// A regra de atualização é fixa e publicada aqui; nunca use math/rand no
// pipeline, pois a sequência dele não é estável entre versões do Go.
package rng

import "math"

// Incremento de Weyl (constante ímpar, razão áurea em 32 bits).
const weylIncrement uint32 = 0x9E3779B9

// Source é o estado do gerador. Escopo de vida: uma chamada de geração.
// Nunca compartilhe um Source entre geradores.
type Source struct {
	state uint32
}

// New cria um Source a partir de uma seed inteira de 32 bits.
func New(seed int32) *Source {
	return &Source{state: uint32(seed)}
}

// next avança o estado e mistura: soma de Weyl seguida de duas rodadas
// multiply/xorshift (mesma família de mixing do SplitMix).
func (s *Source) next() uint32 {
	s.state += weylIncrement
	v := s.state
	v ^= v >> 16
	v *= 0x21F0AAAD
	v ^= v >> 15
	v *= 0x735A2D97
	v ^= v >> 15
	return v
}

// Float retorna o próximo valor em [0, 1).
func (s *Source) Float() float64 {
	return float64(s.next()) / 4294967296.0
}

// Range retorna um valor uniforme em [lo, hi).
func (s *Source) Range(lo, hi float64) float64 {
	return lo + s.Float()*(hi-lo)
}

// IntN retorna um inteiro uniforme em [0, n). n deve ser > 0.
func (s *Source) IntN(n int) int {
	return int(s.Float() * float64(n))
}

// Angle retorna um ângulo uniforme em [0, 2π).
func (s *Source) Angle() float64 {
	return s.Float() * 2 * math.Pi
}
