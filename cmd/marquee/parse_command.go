package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"marquee/internal/release"
)

type parseView struct {
	Input      string             `json:"input"`
	PrettyName string             `json:"pretty_name"`
	Attributes release.Attributes `json:"attributes"`
}

func newParseCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "parse NAME...",
		Short:       "Show the attributes recognised in release names",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			views := make([]parseView, 0, len(args))
			for _, name := range args {
				attrs, pretty := release.Normalize(name)
				views = append(views, parseView{Input: name, PrettyName: pretty, Attributes: attrs})
			}
			if asJSON {
				return writeJSON(cmd, views)
			}

			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{
					v.Input,
					orDash(v.Attributes.Title),
					orDash(v.Attributes.Year),
					orDash(v.Attributes.Quality),
					orDash(v.Attributes.Source),
					orDash(v.Attributes.Language),
					yesNo(v.Attributes.Dubbed),
					v.PrettyName,
				})
			}
			headers := []string{"Input", "Title", "Year", "Quality", "Source", "Language", "Dubbed", "Pretty Name"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
