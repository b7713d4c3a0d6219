// Package store persiste presets de parâmetros e malhas construídas em um
// banco SQLite, com os blobs serializados em GOB.
package store

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"CoralVision/shared/coral"
	"CoralVision/shared/mesh"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const CurrentFormatVersion = 1

// PresetModel representa um conjunto nomeado de parâmetros de geração.
type PresetModel struct {
	Name      string `gorm:"primaryKey"`
	Data      []byte // coral.Params serializado em JSON
	UpdatedAt time.Time
}

// MeshModel representa uma malha construída e persistida.
type MeshModel struct {
	ID          string `gorm:"primaryKey"` // "algoritmo_seed"
	Algorithm   string `gorm:"index"`
	Seed        int32
	Data        []byte // mesh.Mesh serializada em GOB
	Triangles   int
	BuildMillis int64
	UpdatedAt   time.Time
}

// Metadata armazena informações globais do banco.
type Metadata struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// Store encapsula a conexão com o banco.
type Store struct {
	DB *gorm.DB
}

// Open abre (ou cria) o banco SQLite no caminho dado e roda as migrações.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	// Logger silencioso em produção
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}

	if err := db.AutoMigrate(&PresetModel{}, &MeshModel{}, &Metadata{}); err != nil {
		return nil, fmt.Errorf("falha na migração do banco: %w", err)
	}

	db.Save(&Metadata{Key: "FormatVersion", Value: fmt.Sprint(CurrentFormatVersion)})

	log.Printf("[Store] Banco de dados SQLite aberto: %s", path)
	return &Store{DB: db}, nil
}

// Close fecha a conexão subjacente.
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SavePreset grava (upsert) um preset de parâmetros.
func (s *Store) SavePreset(name string, params coral.Params) error {
	data, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return s.DB.Save(&PresetModel{Name: name, Data: data}).Error
}

// LoadPreset carrega um preset pelo nome.
func (s *Store) LoadPreset(name string) (coral.Params, error) {
	var model PresetModel
	if err := s.DB.First(&model, "name = ?", name).Error; err != nil {
		return coral.Params{}, err
	}

	var params coral.Params
	if err := json.Unmarshal(model.Data, &params); err != nil {
		return coral.Params{}, err
	}
	return params, nil
}

// ListPresets retorna os nomes de todos os presets salvos.
func (s *Store) ListPresets() ([]string, error) {
	var names []string
	err := s.DB.Model(&PresetModel{}).Order("name").Pluck("name", &names).Error
	return names, err
}

// SaveMesh grava (upsert) uma malha construída com seus metadados.
func (s *Store) SaveMesh(m *mesh.Mesh, info coral.BuildInfo) error {
	if s.DB == nil {
		return fmt.Errorf("banco de dados não inicializado")
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m); err != nil {
		log.Printf("[Store] ERRO crítico GOB: %v", err)
		return err
	}

	model := MeshModel{
		ID:          fmt.Sprintf("%s_%d", info.Algorithm, info.Seed),
		Algorithm:   info.Algorithm,
		Seed:        info.Seed,
		Data:        buf.Bytes(),
		Triangles:   info.Triangles,
		BuildMillis: info.Duration.Milliseconds(),
	}

	if err := s.DB.Save(&model).Error; err != nil {
		log.Printf("[Store] ERRO ao salvar malha %s: %v", model.ID, err)
		return err
	}
	return nil
}

// LoadMesh carrega uma malha persistida por algoritmo e seed.
func (s *Store) LoadMesh(algorithm string, seed int32) (*mesh.Mesh, error) {
	var model MeshModel
	id := fmt.Sprintf("%s_%d", algorithm, seed)
	if err := s.DB.First(&model, "id = ?", id).Error; err != nil {
		return nil, err
	}

	var m mesh.Mesh
	if err := gob.NewDecoder(bytes.NewReader(model.Data)).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// CountMeshes retorna quantas malhas existem no banco.
func (s *Store) CountMeshes() (int64, error) {
	var count int64
	err := s.DB.Model(&MeshModel{}).Count(&count).Error
	return count, err
}
