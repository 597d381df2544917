package main

import (
	"context"
	"strings"

	"mercari-cli/internal/items"

	"github.com/spf13/cobra"
)

type itemSearcher interface {
	SearchItems(ctx context.Context, keyword string) (items.Collection, error)
}

// searchFetcher 把关键字搜索适配成 itemlist.Fetcher，复用 list 的输出。
type searchFetcher struct {
	client  itemSearcher
	keyword string
}

func (f searchFetcher) FetchItems(ctx context.Context) (items.Collection, error) {
	return f.client.SearchItems(ctx, f.keyword)
}

func newSearchCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search items by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			client, err := newClient(cfg, flags.apiLogger())
			if err != nil {
				return err
			}
			return runList(cmd.Context(), searchFetcher{client: client, keyword: strings.Join(args, " ")}, listOptions{
				Images:   imageSource(client, cfg),
				Language: cfg.Language,
				JSON:     asJSON,
			}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the matches as JSON")
	return cmd
}
