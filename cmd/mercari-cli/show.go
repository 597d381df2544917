package main

import (
	"context"
	"fmt"
	"strconv"

	"mercari-cli/internal/items"

	"github.com/spf13/cobra"
)

type itemGetter interface {
	FetchItem(ctx context.Context, id int) (items.Item, error)
}

// singleFetcher 把单条查询包装成只含一条的集合。
type singleFetcher struct {
	client itemGetter
	id     int
}

func (f singleFetcher) FetchItems(ctx context.Context) (items.Collection, error) {
	it, err := f.client.FetchItem(ctx, f.id)
	if err != nil {
		return nil, err
	}
	return items.Collection{it}, nil
}

func newShowCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Fetch a single item by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			client, err := newClient(cfg, flags.apiLogger())
			if err != nil {
				return err
			}
			return runList(cmd.Context(), singleFetcher{client: client, id: id}, listOptions{
				Images:   imageSource(client, cfg),
				Language: cfg.Language,
				JSON:     asJSON,
			}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the item as JSON")
	return cmd
}

func parseItemID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id %q", arg)
	}
	return id, nil
}
