package main

import (
	"mercari-cli/internal/config"
	"mercari-cli/internal/logger"

	"github.com/spf13/cobra"
)

// rootFlags 是所有子命令共享的全局参数。
type rootFlags struct {
	cfgPath   string
	overrides []string
	logFile   string
	logLevel  string

	// apiLog 在日志落盘时指向独立的 api 日志文件。
	apiLog *logger.LogEntry
}

func (f *rootFlags) bind(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.cfgPath, "config", "", "Path to config file (default ~/.mercari/config.toml)")
	pf.StringArrayVarP(&f.overrides, "config-override", "c", nil, "Override config value key=value (repeatable)")
	pf.StringVar(&f.logFile, "log-file", logger.DefaultLogPath, "Log file path (- keeps logs on stderr)")
	pf.StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// loadConfig 读取配置文件与环境变量，再应用 -c 覆盖。
func (f *rootFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Load(f.cfgPath)
	if err != nil {
		return cfg, err
	}
	return config.ApplyKVOverrides(cfg, f.overrides), nil
}

// loadFileConfig 只读取配置文件与 -c 覆盖，不含环境变量，用于写回。
func (f *rootFlags) loadFileConfig() (config.Config, error) {
	cfg, err := config.LoadFile(f.cfgPath)
	if err != nil {
		return cfg, err
	}
	return config.ApplyKVOverrides(cfg, f.overrides), nil
}

func (f *rootFlags) apiLogger() *logger.LogEntry {
	if f.apiLog != nil {
		return f.apiLog
	}
	return logger.Named("api")
}
