package utils

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	EnvConfigDir = "PELICULAS_CONFIG_DIR" // directory holding .env.toml and its overlays
	EnvRuntime   = "PELICULAS_RUNTIME"    // overlay name, e.g. "local", "test", "prod"
	EnvHost      = "HOST"
	EnvPort      = "PORT"

	configBaseName  = ".env"
	configExtension = ".toml"
)

const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

type ServerConfig struct {
	Server struct {
		Host string `toml:"host"`
		Port int    `toml:"port"`
	} `toml:"server"`
	Datasets struct {
		Source     string `toml:"source"`      // "csv" or "sqlite"
		Dir        string `toml:"dir"`         // directory of the CSV files
		SQLitePath string `toml:"sqlite_path"` // snapshot path when source is sqlite
	} `toml:"datasets"`
	Telemetry struct {
		ServiceName string `toml:"service_name"`
		LogLevel    string `toml:"log_level"`
		LogFile     string `toml:"log_file"`
	} `toml:"telemetry"`
}

func DefaultServerConfig() ServerConfig {
	var cfg ServerConfig
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8000
	cfg.Datasets.Source = SourceCSV
	cfg.Datasets.Dir = "data"
	cfg.Datasets.SQLitePath = filepath.Join("data", "peliculas.db")
	cfg.Telemetry.ServiceName = "peliculas-api"
	cfg.Telemetry.LogLevel = "info"
	return cfg
}

// Addr is the listen address built from host and port.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// LoadServerConfig layers, in order: defaults, <dir>/.env.toml,
// <dir>/.env.<runtime>.toml, then HOST and PORT from the environment.
// Missing files are skipped.
func LoadServerConfig() (ServerConfig, error) {
	cfg := DefaultServerConfig()

	dir := os.Getenv(EnvConfigDir)
	if dir == "" {
		dir = "configs"
	}
	runtime := os.Getenv(EnvRuntime)
	if runtime == "" {
		runtime = "local"
	}

	files := []string{
		filepath.Join(dir, configBaseName+configExtension),
		filepath.Join(dir, configBaseName+"."+runtime+configExtension),
	}
	for _, path := range files {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return ServerConfig{}, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if host := os.Getenv(EnvHost); host != "" {
		cfg.Server.Host = host
	}
	if raw := strings.TrimSpace(os.Getenv(EnvPort)); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("parse %s=%q: %w", EnvPort, raw, err)
		}
		cfg.Server.Port = port
	}

	if err := cfg.validate(); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func (c ServerConfig) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Datasets.Source {
	case SourceCSV:
		if c.Datasets.Dir == "" {
			return errors.New("datasets.dir is required for csv source")
		}
	case SourceSQLite:
		if c.Datasets.SQLitePath == "" {
			return errors.New("datasets.sqlite_path is required for sqlite source")
		}
	default:
		return fmt.Errorf("datasets.source %q: expected %q or %q", c.Datasets.Source, SourceCSV, SourceSQLite)
	}
	return nil
}
