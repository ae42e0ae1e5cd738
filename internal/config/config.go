package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything the bookstore UI needs to run: where the store
// API lives, how the list paginates, and where logs go.
type Config struct {
	APIBind        string
	PageSize       int
	RefreshSeconds int
	LogDir         string
	LogLevel       string
}

const (
	defaultConfigPath = "~/.config/bookstore-ui/config.toml"
	defaultLogDir     = "~/.local/share/bookstore-ui/logs"
	defaultAPIBind    = "127.0.0.1:8017"
	defaultPageSize   = 5
	defaultLogLevel   = "info"
)

// raw mirrors the file and environment schema. Environment variables win
// over the file, the file wins over defaults.
type raw struct {
	APIBind        string `toml:"api_bind" envconfig:"BOOKSTORE_API_BIND"`
	PageSize       int    `toml:"page_size" envconfig:"BOOKSTORE_PAGE_SIZE"`
	RefreshSeconds int    `toml:"refresh_seconds" envconfig:"BOOKSTORE_REFRESH_SECONDS"`
	LogDir         string `toml:"log_dir" envconfig:"BOOKSTORE_LOG_DIR"`
	LogLevel       string `toml:"log_level" envconfig:"BOOKSTORE_LOG_LEVEL"`
}

// Load locates and parses the config file, falling back to defaults when it
// is missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var parsed raw
	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &parsed); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// no file is fine, defaults plus environment carry the day
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if err := envconfig.Process("", &parsed); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}

	cfg := Config{
		APIBind:        strings.TrimSpace(parsed.APIBind),
		PageSize:       parsed.PageSize,
		RefreshSeconds: parsed.RefreshSeconds,
		LogDir:         strings.TrimSpace(parsed.LogDir),
		LogLevel:       strings.TrimSpace(parsed.LogLevel),
	}
	if cfg.APIBind == "" {
		cfg.APIBind = defaultAPIBind
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.RefreshSeconds < 0 {
		cfg.RefreshSeconds = 0
	}
	if cfg.LogDir == "" {
		cfg.LogDir = defaultLogDir
	}
	cfg.LogDir = mustExpand(cfg.LogDir)
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	return cfg, nil
}

// LogPath returns the path of the application log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/bookstore-ui.log")
	}
	return filepath.Join(c.LogDir, "bookstore-ui.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
