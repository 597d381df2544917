package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"mercari-cli/internal/api"
	"mercari-cli/internal/history"

	"github.com/spf13/cobra"
)

type itemAdder interface {
	AddItem(ctx context.Context, req api.AddItemRequest) (string, error)
}

func newAddCmd(flags *rootFlags) *cobra.Command {
	var req api.AddItemRequest
	cmd := &cobra.Command{
		Use:   "add",
		Short: "List a new item",
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
			return runAdd(cmd.Context(), client, openJournal(), req, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Item name")
	cmd.Flags().StringVar(&req.Category, "category", "", "Item category")
	cmd.Flags().StringVar(&req.ImagePath, "image", "", "Path to a .jpg image")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

// runAdd 提交商品；journal 可为空。
func runAdd(ctx context.Context, adder itemAdder, journal *history.Store, req api.AddItemRequest, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	msg, err := adder.AddItem(ctx, req)
	if err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	if journal != nil {
		if err := journal.Append(history.Listing{
			Name:     req.Name,
			Category: req.Category,
			Image:    filepath.Base(req.ImagePath),
			Message:  msg,
		}); err != nil {
			log.WithError(err).Warn("append listing journal failed")
		}
	}
	_, err = fmt.Fprintf(out, "ok: %s\n", msg)
	return err
}
