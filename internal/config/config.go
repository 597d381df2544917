package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"mercari-cli/internal/i18n"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultServerURL   = "http://127.0.0.1:9000"
	DefaultFrontendURL = "http://localhost:3000"
)

// Config is the persisted config file schema.
type Config struct {
	ServerURL          string `toml:"server_url"`
	FrontendURL        string `toml:"frontend_url"`
	Language           string `toml:"language"`
	RequestTimeoutSecs int    `toml:"request_timeout_secs"`
	Source             string `toml:"-"`
}

func Default() Config {
	return Config{
		ServerURL:   DefaultServerURL,
		FrontendURL: DefaultFrontendURL,
		Language:    i18n.DefaultLanguage.Code(),
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mercari", "config.toml")
}

// envKeys lists accepted variables per field, first non-empty wins.
var (
	serverURLEnv   = []string{"SERVER_URL", "VITE_BACKEND_URL"}
	frontendURLEnv = []string{"FRONTEND_URL", "VITE_FRONTEND_URL"}
	languageEnv    = []string{"MERCARI_LANGUAGE"}
)

// Load reads the TOML file at path (missing file means defaults), then
// applies .env and process environment overrides.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return cfg, err
	}
	// .env never overrides variables already set in the process.
	_ = godotenv.Load()
	applyEnv(&cfg)
	cfg.normalize()
	return cfg, nil
}

// LoadFile reads only the TOML file layer on top of defaults. Environment
// variables are not consulted, so the result is safe to write back.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	if err == nil {
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return cfg, err
		}
	}
	cfg.normalize()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := firstEnv(serverURLEnv); v != "" {
		cfg.ServerURL = v
	}
	if v := firstEnv(frontendURLEnv); v != "" {
		cfg.FrontendURL = v
	}
	if v := firstEnv(languageEnv); v != "" {
		cfg.Language = v
	}
}

func firstEnv(keys []string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func (c *Config) normalize() {
	c.ServerURL = strings.TrimRight(strings.TrimSpace(c.ServerURL), "/")
	c.FrontendURL = strings.TrimRight(strings.TrimSpace(c.FrontendURL), "/")
	c.Language = i18n.Normalize(c.Language).Code()
	if c.RequestTimeoutSecs < 0 {
		c.RequestTimeoutSecs = 0
	}
}
