package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jimmydengpeng/BaziMiao/internal/service"
)

// birthFlags are the chart input flags shared by chart and analyze.
type birthFlags struct {
	name     string
	gender   string
	birth    string
	calendar string
	leap     bool
	tz       float64
	lon      float64
	lat      float64
	place    string
}

func (f *birthFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Name shown on the chart")
	fs.StringVarP(&f.gender, "gender", "g", "", "male or female (required)")
	fs.StringVarP(&f.birth, "birth", "b", "", "Birth time as YYYY-MM-DDTHH:MM (required)")
	fs.StringVar(&f.calendar, "calendar", "solar", "Calendar of --birth: solar or lunar")
	fs.BoolVar(&f.leap, "leap", false, "The lunar month of --birth is a leap month")
	fs.Float64Var(&f.tz, "tz", 0, "Hours added to the birth time (server default when unset)")
	fs.Float64Var(&f.lon, "lon", 0, "Birth longitude, enables true solar time")
	fs.Float64Var(&f.lat, "lat", 0, "Birth latitude")
	fs.StringVar(&f.place, "place", "", "Birth place label")
	_ = cmd.MarkFlagRequired("gender")
	_ = cmd.MarkFlagRequired("birth")
}

func (f *birthFlags) request(cmd *cobra.Command) service.ChartRequest {
	req := service.ChartRequest{
		Name:        f.name,
		Gender:      f.gender,
		Birth:       f.birth,
		Calendar:    f.calendar,
		IsLeapMonth: f.leap,
		BirthPlace:  f.place,
	}
	if cmd.Flags().Changed("tz") {
		req.TZOffsetHours = &f.tz
	}
	if cmd.Flags().Changed("lon") {
		req.Longitude = &f.lon
	}
	if cmd.Flags().Changed("lat") {
		req.Latitude = &f.lat
	}
	return req
}

func newChartCmd(client *Client) *cobra.Command {
	var flags birthFlags
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Build a four-pillar chart",
		Example: `  bazi chart --birth 2000-01-01T12:00 --gender male
  bazi chart -b 1999-11-25T12:00 -g female --calendar lunar -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var raw json.RawMessage
			if err := client.Post("/charts", flags.request(cmd), &raw); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(cmd.OutOrStdout(), raw)
			}
			var chart chartView
			if err := json.Unmarshal(raw, &chart); err != nil {
				return fmt.Errorf("decode chart: %w", err)
			}
			printChart(cmd.OutOrStdout(), chart)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newAnalyzeCmd(client *Client) *cobra.Command {
	var (
		flags birthFlags
		focus []string
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Build a chart and run the strength and favourable-element rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body := struct {
				service.ChartRequest
				Focus []string `json:"focus,omitempty"`
			}{ChartRequest: flags.request(cmd), Focus: focus}

			var raw json.RawMessage
			if err := client.Post("/analysis", body, &raw); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(cmd.OutOrStdout(), raw)
			}
			var res analysisView
			if err := json.Unmarshal(raw, &res); err != nil {
				return fmt.Errorf("decode analysis: %w", err)
			}
			printAnalysis(cmd.OutOrStdout(), res)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&focus, "focus", nil, "Knowledge focus areas, e.g. 健康,情感")
	return cmd
}

func printChart(w io.Writer, c chartView) {
	solar := c.SolarTime
	if c.SolarTimeApplied {
		solar += " (true solar " + c.TrueSolarTime + ")"
	}
	PrintDetail(w, []string{"八字", "姓名", "性别", "公历", "日主", "生肖", "胎元", "命宫", "身宫"}, map[string]string{
		"八字": strings.Join([]string{c.Year.String(), c.Month.String(), c.Day.String(), c.Hour.String()}, " "),
		"姓名": c.Name,
		"性别": c.Gender,
		"公历": solar,
		"日主": c.DayMasterDisplay,
		"生肖": c.ZodiacAnimal,
		"胎元": c.TaiYuan.String(),
		"命宫": c.MingGong.String(),
		"身宫": c.ShenGong.String(),
	})
	_, _ = fmt.Fprintln(w)

	pillars := []pillarView{c.Year, c.Month, c.Day, c.Hour}
	row := func(label string, cell func(i int, p pillarView) string) []string {
		out := []string{label}
		for i, p := range pillars {
			out = append(out, cell(i, p))
		}
		return out
	}
	PrintTable(w, []string{"", "年柱", "月柱", "日柱", "时柱"}, [][]string{
		row("十神", func(i int, p pillarView) string {
			if i == 2 {
				return "日主"
			}
			return p.Stem.TenGod
		}),
		row("天干", func(_ int, p pillarView) string { return p.Stem.Name + p.Stem.Element }),
		row("地支", func(_ int, p pillarView) string { return p.Branch.Name + p.Branch.Element }),
		row("藏干", func(_ int, p pillarView) string {
			names := make([]string, len(p.Branch.HiddenStems))
			for i, hs := range p.Branch.HiddenStems {
				names[i] = hs.Name
			}
			return strings.Join(names, "")
		}),
		row("星运", func(_ int, p pillarView) string { return p.Branch.StarFortune }),
		row("纳音", func(_ int, p pillarView) string { return p.NaYin }),
	})
	_, _ = fmt.Fprintln(w)

	elements := []string{"木", "火", "土", "金", "水"}
	counts := make([]string, len(elements))
	for i, e := range elements {
		counts[i] = strconv.Itoa(c.FiveElementsCount[e])
	}
	PrintTable(w, elements, [][]string{counts})
	_, _ = fmt.Fprintln(w)

	direction := "逆"
	if c.Luck.Forward {
		direction = "顺"
	}
	_, _ = fmt.Fprintf(w, "大运 (%s排, %d岁%d月%d天起运)\n", direction,
		c.Luck.StartAge.Years, c.Luck.StartAge.Months, c.Luck.StartAge.Days)
	rows := make([][]string, 0, len(c.Luck.Pillars))
	for i, p := range c.Luck.Pillars {
		current := ""
		if p.IsCurrent {
			current = "*"
		}
		rows = append(rows, []string{
			strconv.Itoa(p.Year),
			strconv.Itoa(c.Luck.StartAge.Years + i*10),
			p.String(),
			p.Stem.TenGod,
			current,
		})
	}
	PrintTable(w, []string{"year", "age", "pillar", "ten_god", "current"}, rows)

	if rel := c.Relations.all(); len(rel) > 0 {
		_, _ = fmt.Fprintln(w)
		printRelations(w, rel)
	}
}

func printAnalysis(w io.Writer, res analysisView) {
	a := res.Analysis
	PrintDetail(w, []string{"八字", "格局", "强弱分", "喜用", "忌神", "标签"}, map[string]string{
		"八字":  strings.Join([]string{res.Chart.Year.String(), res.Chart.Month.String(), res.Chart.Day.String(), res.Chart.Hour.String()}, " "),
		"格局":  a.Pattern,
		"强弱分": strconv.Itoa(a.StrengthScore),
		"喜用":  strings.Join(a.Favourable, "、"),
		"忌神":  strings.Join(a.Unfavourable, "、"),
		"标签":  strings.Join(a.PatternTags, "、"),
	})
	for _, line := range a.KeyConclusions {
		_, _ = fmt.Fprintln(w, "- "+line)
	}
	for _, line := range a.RiskPoints {
		_, _ = fmt.Fprintln(w, "! "+line)
	}
	if len(res.Knowledge) > 0 {
		_, _ = fmt.Fprintln(w)
		rows := make([][]string, len(res.Knowledge))
		for i, k := range res.Knowledge {
			rows[i] = []string{k.Topic, k.Summary}
		}
		PrintTable(w, []string{"topic", "summary"}, rows)
	}
}
