package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Bot     BotConfig     `yaml:"bot"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Debug   DebugConfig   `yaml:"debug"`
}

// ServerConfig addresses the server to join.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type BotConfig struct {
	Username string `yaml:"username"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text", "json", "console"
}

// MetricsConfig controls the optional Prometheus endpoint; an empty listen
// address disables it.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// DebugConfig enables the interactive terminal console.
type DebugConfig struct {
	Console bool `yaml:"console"`
}

func Default() *Config {
	return &Config{
		Server:  ServerConfig{Host: "127.0.0.1", Port: 25565},
		Bot:     BotConfig{Username: "bot"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads path and overlays it on the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Bot.Username == "" {
		return nil, fmt.Errorf("bot.username must not be empty")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	return cfg, nil
}
