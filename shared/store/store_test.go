package store

import (
	"path/filepath"
	"testing"
	"time"

	"CoralVision/shared/coral"
	"CoralVision/shared/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "corals.cv"))
	if err != nil {
		t.Fatalf("Open falhou: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPresetRoundTrip(t *testing.T) {
	s := openTemp(t)

	params := coral.DefaultParams()
	params.Heuristic.Seed = 99
	params.Resolution = 128

	if err := s.SavePreset("alto-detalhe", params); err != nil {
		t.Fatalf("SavePreset falhou: %v", err)
	}

	loaded, err := s.LoadPreset("alto-detalhe")
	if err != nil {
		t.Fatalf("LoadPreset falhou: %v", err)
	}
	if loaded.Heuristic.Seed != 99 || loaded.Resolution != 128 {
		t.Errorf("preset carregado difere: seed=%d res=%d", loaded.Heuristic.Seed, loaded.Resolution)
	}
}

func TestPresetUpsert(t *testing.T) {
	s := openTemp(t)

	params := coral.DefaultParams()
	if err := s.SavePreset("padrao", params); err != nil {
		t.Fatalf("SavePreset falhou: %v", err)
	}
	params.Thickness = 75
	if err := s.SavePreset("padrao", params); err != nil {
		t.Fatalf("SavePreset (upsert) falhou: %v", err)
	}

	names, err := s.ListPresets()
	if err != nil {
		t.Fatalf("ListPresets falhou: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("esperado 1 preset após upsert, obtido %d", len(names))
	}

	loaded, _ := s.LoadPreset("padrao")
	if loaded.Thickness != 75 {
		t.Errorf("upsert não atualizou: Thickness=%v", loaded.Thickness)
	}
}

func TestMeshRoundTrip(t *testing.T) {
	s := openTemp(t)

	m := &mesh.Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:   []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Indices:   []uint32{0, 1, 2},
	}
	info := coral.BuildInfo{
		Algorithm: "heuristic",
		Seed:      7,
		Triangles: 1,
		Duration:  40 * time.Millisecond,
	}

	if err := s.SaveMesh(m, info); err != nil {
		t.Fatalf("SaveMesh falhou: %v", err)
	}

	loaded, err := s.LoadMesh("heuristic", 7)
	if err != nil {
		t.Fatalf("LoadMesh falhou: %v", err)
	}
	if len(loaded.Positions) != 3 || len(loaded.Indices) != 3 {
		t.Errorf("malha carregada difere: %d posições, %d índices",
			len(loaded.Positions), len(loaded.Indices))
	}
	if loaded.Positions[1] != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("posição corrompida: %v", loaded.Positions[1])
	}

	count, err := s.CountMeshes()
	if err != nil {
		t.Fatalf("CountMeshes falhou: %v", err)
	}
	if count != 1 {
		t.Errorf("esperada 1 malha, obtidas %d", count)
	}
}

func TestLoadMissing(t *testing.T) {
	s := openTemp(t)

	if _, err := s.LoadPreset("inexistente"); err == nil {
		t.Error("LoadPreset de nome inexistente deveria falhar")
	}
	if _, err := s.LoadMesh("flow", 12345); err == nil {
		t.Error("LoadMesh de seed inexistente deveria falhar")
	}
}
