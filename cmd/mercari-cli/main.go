package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"mercari-cli/internal/api"
	"mercari-cli/internal/config"
	"mercari-cli/internal/history"
	"mercari-cli/internal/itemlist"
	"mercari-cli/internal/logger"
	"mercari-cli/internal/tui"

	"github.com/spf13/cobra"
)

const (
	appName    = "mercari-cli"
	appVersion = "0.1.0"
)

var log = logger.Named("cli")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd 构造命令树；不带子命令时进入 TUI。
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	var closers []io.Closer

	root := &cobra.Command{
		Use:           appName,
		Short:         "Browse and list items on a Simple Mercari server",
		Long:          `mercari-cli is a terminal client for the Simple Mercari item service.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Configure()
			if err := logger.SetLevel(flags.logLevel); err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			if flags.logFile == "-" {
				return nil
			}
			closer, _, err := logger.SetupFile(flags.logFile)
			if err != nil {
				log.Warnf("failed to initialize log file: %v", err)
				return nil
			}
			closers = append(closers, closer)
			// HTTP 请求日志单独落盘，避免淹没界面事件。
			entry, apiCloser, _, err := logger.SetupComponentFile("api", apiLogPath(flags.logFile))
			if err != nil {
				log.Warnf("failed to initialize api log file: %v", err)
				return nil
			}
			flags.apiLog = entry
			closers = append(closers, apiCloser)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			for _, c := range closers {
				_ = c.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			return runInteractive(cfg, flags.apiLogger())
		},
	}
	flags.bind(root)

	root.AddCommand(
		newListCmd(flags),
		newSearchCmd(flags),
		newShowCmd(flags),
		newAddCmd(flags),
		newPingCmd(flags),
		newConfigCmd(flags),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, appVersion)
		},
	}
}

// runInteractive 启动 TUI。列表拉取不设超时。
func runInteractive(cfg config.Config, apiLog *logger.LogEntry) error {
	client, err := api.New(api.Options{
		BaseURL: cfg.ServerURL,
		Logger:  apiLog,
	})
	if err != nil {
		return err
	}
	log.WithField("server_url", client.BaseURL()).Info("starting tui")
	result, err := tui.Run(tui.Options{
		Fetcher:   client,
		Adder:     client,
		Images:    imageSource(client, cfg),
		ServerURL: client.BaseURL(),
		Language:  cfg.Language,
		Logger:    logger.Named("tui"),
		Journal:   openJournal(),
	})
	if err != nil {
		return fmt.Errorf("program exit: %w", err)
	}
	log.WithField("items", result.ItemCount).
		WithField("reload", result.Reload.String()).
		Info("tui exited")
	return nil
}

// newClient 为一次性命令构造客户端，应用 request_timeout_secs。
func newClient(cfg config.Config, apiLog *logger.LogEntry) (*api.Client, error) {
	return api.New(api.Options{
		BaseURL: cfg.ServerURL,
		Timeout: time.Duration(cfg.RequestTimeoutSecs) * time.Second,
		Logger:  apiLog,
	})
}

// imageSource 以客户端规范化后的地址拼接图片 URL。
func imageSource(client *api.Client, cfg config.Config) itemlist.ImageSource {
	return itemlist.NewImageSource(client.BaseURL(), cfg.FrontendURL)
}

// apiLogPath 把 api 日志放在主日志同目录下。
func apiLogPath(mainLog string) string {
	if mainLog == "" {
		mainLog = logger.DefaultLogPath
	}
	return filepath.Join(filepath.Dir(mainLog), logger.APILogName)
}

// openJournal 打开 ~/.mercari/listings.jsonl；失败时不记录上架历史。
func openJournal() *history.Store {
	store, err := history.NewDefault()
	if err != nil {
		log.Warnf("listing journal unavailable: %v", err)
		return nil
	}
	return store
}
