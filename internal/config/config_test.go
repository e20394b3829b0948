package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		createFile bool
		content    string
		wantErr    bool
		validate   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:       "valid yaml",
			createFile: true,
			content: `server:
  host: "mc.example.com"
  port: 25566
bot:
  username: "TestBot"
logging:
  level: "debug"
  format: "json"
metrics:
  listen: ":9090"
debug:
  console: true
`,
			wantErr: false,
			validate: func(t *testing.T, cfg *Config, err error) {
				if cfg.Server.Host != "mc.example.com" {
					t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "mc.example.com")
				}
				if cfg.Server.Port != 25566 {
					t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 25566)
				}
				if got := cfg.Server.Addr(); got != "mc.example.com:25566" {
					t.Errorf("Server.Addr() = %q, want %q", got, "mc.example.com:25566")
				}
				if cfg.Bot.Username != "TestBot" {
					t.Errorf("Bot.Username = %q, want %q", cfg.Bot.Username, "TestBot")
				}
				if cfg.Logging.Level != "debug" {
					t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
				}
				if cfg.Metrics.Listen != ":9090" {
					t.Errorf("Metrics.Listen = %q, want %q", cfg.Metrics.Listen, ":9090")
				}
				if !cfg.Debug.Console {
					t.Errorf("Debug.Console = false, want true")
				}
			},
		},
		{
			name:       "missing file",
			createFile: false,
			wantErr:    true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if !os.IsNotExist(err) {
					t.Errorf("want not-exist error, got: %v", err)
				}
			},
		},
		{
			name:       "invalid yaml",
			createFile: true,
			content: `server:
  host: "127.0.0.1"
  port: [25565
`,
			wantErr: true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if err == nil || !strings.Contains(err.Error(), "yaml") {
					t.Errorf("want yaml parse error, got: %v", err)
				}
			},
		},
		{
			name:       "empty file keeps defaults",
			createFile: true,
			content:    "",
			wantErr:    false,
			validate: func(t *testing.T, cfg *Config, err error) {
				def := Default()
				if cfg.Server.Host != def.Server.Host || cfg.Server.Port != def.Server.Port {
					t.Errorf("Server = %+v, want defaults %+v", cfg.Server, def.Server)
				}
				if cfg.Bot.Username != def.Bot.Username {
					t.Errorf("Bot.Username = %q, want %q", cfg.Bot.Username, def.Bot.Username)
				}
				if cfg.Logging.Level != def.Logging.Level {
					t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, def.Logging.Level)
				}
			},
		},
		{
			name:       "empty username rejected",
			createFile: true,
			content: `bot:
  username: ""
`,
			wantErr: true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if err == nil || !strings.Contains(err.Error(), "username") {
					t.Errorf("want username error, got: %v", err)
				}
			},
		},
		{
			name:       "port out of range",
			createFile: true,
			content: `server:
  port: 70000
`,
			wantErr: true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if err == nil || !strings.Contains(err.Error(), "out of range") {
					t.Errorf("want range error, got: %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, "config.yaml")

			if tt.createFile {
				if err := os.WriteFile(configPath, []byte(tt.content), 0o644); err != nil {
					t.Fatalf("writing test config: %v", err)
				}
			}

			cfg, err := Load(configPath)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err == nil && cfg == nil {
				t.Fatalf("Load() returned nil config")
			}

			if tt.validate != nil {
				tt.validate(t, cfg, err)
			}
		})
	}
}
