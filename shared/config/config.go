package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"CoralVision/shared/coral"
)

// Config armazena as configurações do CoralVision.
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`

	// Servidor de geração (usado pelo cliente em modo remoto)
	ServerURL string `json:"server_url"`

	// Servidor (usado pelo binário servidor)
	ListenAddr   string `json:"listen_addr"`
	DatabasePath string `json:"database_path"`

	// Câmera
	CameraSensitivity float32 `json:"camera_sensitivity"`
	ZoomSpeed         float32 `json:"zoom_speed"`

	// Parâmetros de geração e malha
	Coral coral.Params `json:"coral"`

	// Exportação
	ExportDir string `json:"export_dir"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
	WireframeMode bool `json:"wireframe_mode"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "CoralVision",
		Fullscreen:   false,
		TargetFPS:    60,

		ServerURL: "ws://127.0.0.1:8090/ws",

		ListenAddr:   ":8090",
		DatabasePath: "saves/corals.cv",

		CameraSensitivity: 2.0,
		ZoomSpeed:         5.0,

		Coral: coral.DefaultParams(),

		ExportDir: "exports",

		ShowDebugInfo: true,
		WireframeMode: false,
	}
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações de um arquivo JSON.
// Se o arquivo não existir, retorna as configurações padrão.
func Load() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save salva as configurações em um arquivo JSON.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(), data, 0644)
}
