package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jimmydengpeng/BaziMiao/internal/service"
)

func newSearchCmd(client *Client) *cobra.Command {
	var start, end int
	cmd := &cobra.Command{
		Use:     "search <year> <month> <day> <hour>",
		Short:   "Find the dates whose four pillars match",
		Example: `  bazi search 己卯 丙子 戊午 戊午 --start 1990 --end 2010`,
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.SearchRequest{Year: args[0], Month: args[1], Day: args[2], Hour: args[3]}
			if cmd.Flags().Changed("start") {
				req.StartYear = &start
			}
			if cmd.Flags().Changed("end") {
				req.EndYear = &end
			}

			var raw json.RawMessage
			if err := client.Post("/search", req, &raw); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(cmd.OutOrStdout(), raw)
			}
			var res searchView
			if err := json.Unmarshal(raw, &res); err != nil {
				return fmt.Errorf("decode search result: %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (%d-%d): %d match(es)\n", res.Query, res.StartYear, res.EndYear, len(res.Matches))
			rows := make([][]string, len(res.Matches))
			for i, m := range res.Matches {
				rows[i] = []string{
					fmt.Sprintf("%04d-%02d-%02d", m.Year, m.Month, m.Day),
					fmt.Sprintf("%02d:%02d", m.Hour, m.Minute),
					m.LunarDisplay,
				}
			}
			PrintTable(out, []string{"date", "time", "lunar"}, rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "First year searched (server default 1801)")
	cmd.Flags().IntVar(&end, "end", 0, "Last year searched (server default 2099)")
	return cmd
}
