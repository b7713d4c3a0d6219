package skeleton

// Algoritmos de geração disponíveis.
const (
	AlgoHeuristic = "heuristic"
	AlgoFlow      = "flow"
)

// Generator é a interface comum aos dois algoritmos de esqueleto.
// Generate é uma função pura de (parâmetros, seed): duas chamadas com os
// mesmos valores produzem listas bit-idênticas.
type Generator interface {
	Generate() []Branch
}
