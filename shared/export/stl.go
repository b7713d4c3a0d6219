// Package export escreve a malha final em STL binário para impressão 3D.
package export

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"CoralVision/shared/mesh"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/unixpickle/model3d/model3d"
)

// WriteSTL escreve a malha em STL binário. A geração é Y-up (convenção do
// visualizador); slicers esperam Z-up, então trocamos Y↔Z e invertemos o
// winding (a troca de eixos espelha a orientação).
func WriteSTL(path string, m *mesh.Mesh) error {
	if m == nil || m.TriangleCount() == 0 {
		return fmt.Errorf("malha vazia, nada para exportar")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("falha ao criar diretório de exportação: %w", err)
		}
	}

	tris := make([]*model3d.Triangle, 0, m.TriangleCount())
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a := toZUp(m.Positions[m.Indices[t]])
		b := toZUp(m.Positions[m.Indices[t+1]])
		c := toZUp(m.Positions[m.Indices[t+2]])
		tris = append(tris, &model3d.Triangle{a, c, b})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("falha ao criar arquivo STL: %w", err)
	}
	defer f.Close()

	if err := model3d.WriteSTL(f, tris); err != nil {
		return fmt.Errorf("falha ao escrever STL: %w", err)
	}

	log.Printf("[Export] STL salvo: %s (%d triângulos)", path, len(tris))
	return nil
}

func toZUp(p mgl32.Vec3) model3d.Coord3D {
	return model3d.XYZ(float64(p.X()), float64(p.Z()), float64(p.Y()))
}
