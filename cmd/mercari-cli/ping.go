package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type greeter interface {
	Hello(ctx context.Context) (string, error)
}

func newPingCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			client, err := newClient(cfg, flags.apiLogger())
			if err != nil {
				return err
			}
			return runPing(cmd.Context(), client, cmd.OutOrStdout())
		},
	}
}

func runPing(ctx context.Context, client greeter, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	got, err := client.Hello(ctx)
	if err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	_, err = fmt.Fprintf(out, "ok: %s\n", got)
	return err
}
