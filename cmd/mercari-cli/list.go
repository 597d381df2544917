package main

import (
	"context"
	"encoding/json"
	"io"
	"strconv"

	"mercari-cli/internal/i18n"
	"mercari-cli/internal/itemlist"
	"mercari-cli/internal/items"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch all items once and print them",
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
			return runList(cmd.Context(), client, listOptions{
				Images:   imageSource(client, cfg),
				Language: cfg.Language,
				JSON:     asJSON,
			}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the items as JSON")
	return cmd
}

type listOptions struct {
	Images   itemlist.ImageSource
	Language string
	JSON     bool
}

func runList(ctx context.Context, fetcher itemlist.Fetcher, opts listOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	got, err := fetcher.FetchItems(ctx)
	if err != nil {
		return err
	}
	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items.Envelope{Items: got.Clone()})
	}

	labels := i18n.LabelsFor(i18n.Normalize(opts.Language))
	rows := itemlist.BuildRows(got, opts.Images)
	if len(rows) == 0 {
		_, err := io.WriteString(out, labels.Empty+"\n")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", labels.Name, labels.Category, labels.Image)
	for _, r := range rows {
		t.Row(r.Key, r.Name, r.Category, r.ImageURL)
	}
	_, err = io.WriteString(out, t.String()+"\n"+strconv.Itoa(len(rows))+" items\n")
	return err
}
