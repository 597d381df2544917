package main

import (
	"fmt"
	"io"

	"mercari-cli/internal/config"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration (file, environment and -c overrides).
With --save, only the file values plus -c overrides are written back;
values that came from the environment or .env are not persisted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			var persist *config.Config
			if save {
				fileCfg, err := flags.loadFileConfig()
				if err != nil {
					return err
				}
				persist = &fileCfg
			}
			return runConfig(cfg, persist, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Write file values plus -c overrides back to the config file")
	return cmd
}

// runConfig 打印生效配置；persist 非空时把它写回 persist.Source。
func runConfig(cfg config.Config, persist *config.Config, out io.Writer) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "# %s\n%s", cfg.Source, data); err != nil {
		return err
	}
	if persist == nil {
		return nil
	}
	if err := config.Save(persist.Source, *persist); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	_, err = fmt.Fprintf(out, "saved %s\n", persist.Source)
	return err
}
