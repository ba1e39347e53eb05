package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"safelogist/internal/config"
	"safelogist/internal/domain"
	"safelogist/internal/logging"
	"safelogist/internal/search"
)

func newLookupCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup <query>",
		Short: "Look companies up once and print them",
		Long: `Send a single lookup to the configured endpoint and print the result.

Examples:
  safelogist lookup acme
  safelogist lookup "сейф" --limit 5
  safelogist lookup acme --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd, root, nil)
			if err != nil {
				return err
			}
			if _, err := logging.Init(logging.Options{Level: cfg.Log.Level, Writer: cmd.ErrOrStderr()}); err != nil {
				return err
			}
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return fmt.Errorf("query is empty")
			}

			client, err := newLookupClient(cfg)
			if err != nil {
				return err
			}

			ctx, stop := commandContext(cmd)
			defer stop()

			start := time.Now()
			items, err := client.Search(ctx, query, cfg.Search.Limit)
			if err != nil {
				return fmt.Errorf("lookup %q: %w", query, err)
			}
			logging.Component("lookup").Debug().Str("query", query).Int("count", len(items)).
				Dur("elapsed", time.Since(start)).Msg("lookup done")

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			return writeLookupTable(cmd.OutOrStdout(), cfg, query, items)
		},
	}

	// shares the field with the root flag so loadConfig applies it
	cmd.Flags().IntVar(&root.limit, "limit", 10, "maximum number of companies")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

// writeLookupTable renders companies with their page URLs, emphasizing the
// matched part of each name
func writeLookupTable(w io.Writer, cfg *config.Config, query string, items []domain.Company) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, cfg.Search.EmptyText)
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Company", "Reviews", "Page"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	for _, item := range items {
		var name strings.Builder
		for _, seg := range search.Highlight(item.Name, query) {
			if seg.Match {
				name.WriteString(text.Bold.Sprint(seg.Text))
			} else {
				name.WriteString(seg.Text)
			}
		}
		reviews := "-"
		if item.ReviewsCount != nil {
			reviews = fmt.Sprint(*item.ReviewsCount)
		}
		route := search.ItemRoute(cfg.BasePath(), item)
		t.AppendRow(table.Row{item.ID, name.String(), reviews, search.AbsoluteURL(cfg.Navigation.SiteURL, route)})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d found", len(items))})
	t.Render()
	return nil
}
