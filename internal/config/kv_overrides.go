package config

import (
	"strconv"
	"strings"
)

// ApplyKVOverrides applies free-form -c key=value overrides.
func ApplyKVOverrides(cfg Config, overrides []string) Config {
	if len(overrides) == 0 {
		return cfg
	}
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		switch key {
		case "server_url", "server-url", "server":
			cfg.ServerURL = val
		case "frontend_url", "frontend-url", "frontend":
			cfg.FrontendURL = val
		case "language", "lang":
			cfg.Language = val
		case "request_timeout_secs", "timeout":
			if n, err := strconv.Atoi(val); err == nil && n >= 0 {
				cfg.RequestTimeoutSecs = n
			}
		}
	}
	cfg.normalize()
	return cfg
}
