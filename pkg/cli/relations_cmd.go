package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jimmydengpeng/BaziMiao/internal/service"
)

func newRelationsCmd(client *Client) *cobra.Command {
	var slot string
	cmd := &cobra.Command{
		Use:   "relations <slot=pillar>...",
		Short: "Compute stem and branch relations among pillars",
		Long: "Compute the combinations, clashes, punishments and harms among four natal pillars\n" +
			"and optionally a luck and an annual pillar.",
		Example: `  bazi relations year=甲子 month=丙寅 day=己卯 hour=庚午
  bazi relations year=甲子 month=丙寅 day=己卯 hour=庚午 luck=壬申 --slot luck`,
		Args: cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			pillars, err := parseSlotArgs(args)
			if err != nil {
				return err
			}
			var raw json.RawMessage
			if err := client.Post("/relations", service.RelationsRequest{Pillars: pillars, Slot: slot}, &raw); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(cmd.OutOrStdout(), raw)
			}
			var rel relationsView
			if err := json.Unmarshal(raw, &rel); err != nil {
				return fmt.Errorf("decode relations: %w", err)
			}
			printRelations(cmd.OutOrStdout(), rel.all())
			return nil
		},
	}
	cmd.Flags().StringVar(&slot, "slot", "", "Only show relations involving this slot")
	return cmd
}

// parseSlotArgs turns "year=甲子" arguments into a slot map.
func parseSlotArgs(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("invalid pillar argument %q: expected slot=pillar", arg)
		}
		if _, dup := out[k]; dup {
			return nil, fmt.Errorf("slot %q given twice", k)
		}
		out[k] = v
	}
	return out, nil
}

func printRelations(w io.Writer, rel []relationView) {
	rows := make([][]string, len(rel))
	for i, r := range rel {
		rows[i] = []string{r.Category, r.Type, strings.Join(r.Slots, "/"), strings.Join(r.Items, ""), r.Description}
	}
	PrintTable(w, []string{"category", "type", "pillars", "items", "description"}, rows)
}
