package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"marquee/internal/searchlog"
)

func newSearchesCommand(ctx *commandContext) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "searches",
		Short: "List recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.SearchLog.Enabled {
				return fmt.Errorf("search log is disabled (search_log.enabled = false)")
			}
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}

			store, err := searchlog.Open(cfg.SearchLog.Path)
			if err != nil {
				return fmt.Errorf("open search log: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list searches: %w", err)
			}
			if asJSON {
				if entries == nil {
					entries = []searchlog.Entry{}
				}
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No searches recorded")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(e.ID, 10),
					e.CreatedAt.Local().Format(time.DateTime),
					strconv.FormatInt(e.UserID, 10),
					strconv.FormatInt(e.ChatID, 10),
					e.Query,
				})
			}
			headers := []string{"ID", "When", "User", "Chat", "Query"}
			aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
