package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/caption"
	"marquee/internal/logging"
	"marquee/internal/pipeline"
)

type lookupView struct {
	Query      string          `json:"query"`
	PrettyName string          `json:"pretty_name"`
	Title      string          `json:"title"`
	Year       string          `json:"year,omitempty"`
	Found      bool            `json:"found"`
	TMDBID     int64           `json:"tmdb_id,omitempty"`
	Caption    caption.Caption `json:"caption"`
}

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup QUERY...",
		Short: "Render the caption a chat would receive for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return fmt.Errorf("query is required")
			}

			p, err := pipeline.NewFromConfig(cfg, logging.NewNop())
			if err != nil {
				return err
			}
			result := p.Lookup(cmd.Context(), query)

			view := lookupView{
				Query:      result.Query,
				PrettyName: result.PrettyName,
				Title:      result.Title,
				Year:       result.Year,
				Found:      result.Record != nil,
				Caption:    result.Caption,
			}
			if result.Record != nil {
				view.TMDBID = result.Record.ID
			}
			if asJSON {
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Lookup", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Pretty name", statusInfo, view.PrettyName, colorize))
			fmt.Fprintln(out, renderStatusLine("Search title", statusInfo, view.Title, colorize))
			fmt.Fprintln(out, renderStatusLine("Search year", statusInfo, orDash(view.Year), colorize))
			if view.Found {
				fmt.Fprintln(out, renderStatusLine("TMDB", statusOK, fmt.Sprintf("match %d", view.TMDBID), colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("TMDB", statusWarn, "no match", colorize))
			}
			if view.Caption.HasImage() {
				fmt.Fprintln(out, renderStatusLine("Poster", statusInfo, view.Caption.ImageURL, colorize))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, view.Caption.Text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
