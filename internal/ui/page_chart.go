package ui

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jimmydengpeng/BaziMiao/internal/domain"
	"github.com/jimmydengpeng/BaziMiao/internal/service"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// chartQuery is the raw query string of GET /charts/view, echoed back into the form.
type chartQuery struct {
	Name     string
	Gender   string
	Birth    string
	Calendar string
	Leap     bool
	TZ       string
	Lon      string
	Lat      string
	Place    string
}

func chartQueryFrom(r *http.Request) chartQuery {
	q := r.URL.Query()
	leap, _ := strconv.ParseBool(q.Get("leap"))
	return chartQuery{
		Name:     strings.TrimSpace(q.Get("name")),
		Gender:   strings.TrimSpace(q.Get("gender")),
		Birth:    strings.TrimSpace(q.Get("birth")),
		Calendar: strings.TrimSpace(q.Get("calendar")),
		Leap:     leap,
		TZ:       strings.TrimSpace(q.Get("tz")),
		Lon:      strings.TrimSpace(q.Get("lon")),
		Lat:      strings.TrimSpace(q.Get("lat")),
		Place:    strings.TrimSpace(q.Get("place")),
	}
}

func optionalFloat(field, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.ErrValidation("%s must be a number, got %q", field, raw)
	}
	return &v, nil
}

func (q chartQuery) request() (service.ChartRequest, error) {
	tz, err := optionalFloat("tz", q.TZ)
	if err != nil {
		return service.ChartRequest{}, err
	}
	lon, err := optionalFloat("lon", q.Lon)
	if err != nil {
		return service.ChartRequest{}, err
	}
	lat, err := optionalFloat("lat", q.Lat)
	if err != nil {
		return service.ChartRequest{}, err
	}
	return service.ChartRequest{
		Name:          q.Name,
		Gender:        q.Gender,
		Birth:         q.Birth,
		Calendar:      q.Calendar,
		IsLeapMonth:   q.Leap,
		TZOffsetHours: tz,
		Longitude:     lon,
		Latitude:      lat,
		BirthPlace:    q.Place,
	}, nil
}

// ChartView handles GET /charts/view. Without a birth parameter only the
// input form is rendered.
func (h *Handler) ChartView(w http.ResponseWriter, r *http.Request) {
	q := chartQueryFrom(r)
	if q.Birth == "" {
		renderHTML(w, http.StatusOK, appPage("八字排盘", birthForm(q)))
		return
	}
	req, err := q.request()
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	chart, err := h.Charts.BuildChart(r.Context(), req)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, chartPage(q, chart, h.Charts.Now()))
}

func chartPage(q chartQuery, c domain.Chart, now time.Time) Node {
	title := "八字排盘"
	if c.Name != "" {
		title = c.Name + " 的八字"
	}
	return appPage(title,
		birthForm(q),
		summarySection(c),
		pillarsSection(c),
		elementsSection(c),
		luckSection(c, now),
		relationsSection(c.Relations),
	)
}

func birthForm(q chartQuery) Node {
	genderOpt := func(value, label string) Node {
		return Option(Value(value), If(q.Gender == value, Selected()), Text(label))
	}
	calendarOpt := func(value, label string) Node {
		return Option(Value(value), If(q.Calendar == value, Selected()), Text(label))
	}
	return Form(
		Class("birth card"),
		Method("get"),
		Action("/charts/view"),
		Label(Text("姓名"), Input(Type("text"), Name("name"), Value(q.Name))),
		Label(Text("出生时间"), Input(Type("text"), Name("birth"), Value(q.Birth), Placeholder("2000-01-01T12:00"), Required())),
		Label(Text("性别"), Select(Name("gender"), genderOpt("male", "男"), genderOpt("female", "女"))),
		Label(Text("历法"), Select(Name("calendar"), calendarOpt("solar", "公历"), calendarOpt("lunar", "农历"))),
		Label(Text("闰月"), Input(Type("checkbox"), Name("leap"), Value("true"), If(q.Leap, Checked()))),
		Label(Text("时区"), Input(Type("text"), Name("tz"), Value(q.TZ), Placeholder("8"))),
		Label(Text("经度"), Input(Type("text"), Name("lon"), Value(q.Lon), Placeholder("116.4"))),
		Label(Text("出生地"), Input(Type("text"), Name("place"), Value(q.Place))),
		Button(Type("submit"), Text("排盘")),
	)
}

func fact(label, value string) Node {
	return Div(Div(Class("muted"), Text(label)), Div(Text(dash(value))))
}

func palace(p domain.PalaceInfo) string {
	return p.GanZhi.String() + " " + p.NaYin
}

func summarySection(c domain.Chart) Node {
	solar := c.SolarTime.Format("2006-01-02 15:04")
	if c.SolarTimeApplied {
		solar += "（真太阳时 " + c.TrueSolarTime.Format("15:04") + "）"
	}
	return Section(
		Class("card"),
		H2(Text(c.EightCharacters())),
		Div(
			Class("facts"),
			fact("日主", c.DayMasterDisplay),
			fact("公历", solar),
			fact("农历", c.Lunar.String()),
			fact("生肖", c.ZodiacAnimal),
			fact("星座", c.ZodiacSign),
			fact("星宿", c.StarMansion),
			fact("胎元", palace(c.TaiYuan)),
			fact("胎息", palace(c.TaiXi)),
			fact("命宫", palace(c.MingGong)),
			fact("身宫", palace(c.ShenGong)),
			fact("人元司令", c.RenYuanSiLing),
			fact("空亡", strings.Join([]string{c.Void.Year, c.Void.Month, c.Void.Day, c.Void.Hour}, " ")),
			fact("节气", c.BirthSolarTerm.Prev+" "+c.BirthSolarTerm.PrevDistance),
			fact("出生地", c.BirthPlace),
		),
	)
}

func pillarsSection(c domain.Chart) Node {
	pillars := []domain.Pillar{c.Year, c.Month, c.Day, c.Hour}
	headers := []string{"年柱", "月柱", "日柱", "时柱"}

	row := func(label string, cell func(i int, p domain.Pillar) Node) Node {
		cells := []Node{Th(Text(label))}
		for i, p := range pillars {
			cells = append(cells, Td(cell(i, p)))
		}
		return Tr(Group(cells))
	}

	head := []Node{Th()}
	for _, h := range headers {
		head = append(head, Th(Text(h)))
	}

	return Section(
		Class("card table-wrap"),
		Table(
			THead(Tr(Group(head))),
			TBody(
				row("十神", func(i int, p domain.Pillar) Node {
					if i == 2 {
						return Text("日主")
					}
					return Text(p.Stem.TenGod.String())
				}),
				row("天干", func(_ int, p domain.Pillar) Node {
					return Span(Class("pillar-char"), elementClass(p.Stem.Element), Text(p.Stem.Stem.String()))
				}),
				row("地支", func(_ int, p domain.Pillar) Node {
					return Span(Class("pillar-char"), elementClass(p.Branch.Element), Text(p.Branch.Branch.String()))
				}),
				row("藏干", func(_ int, p domain.Pillar) Node {
					hidden := make([]Node, 0, len(p.Branch.HiddenStems))
					for _, hs := range p.Branch.HiddenStems {
						hidden = append(hidden, Div(elementClass(hs.Element), Text(hs.Stem.String()+" "+hs.TenGod.String())))
					}
					return Group(hidden)
				}),
				row("星运", func(_ int, p domain.Pillar) Node { return Text(p.Branch.StarFortune.String()) }),
				row("纳音", func(_ int, p domain.Pillar) Node { return Text(p.NaYin) }),
			),
		),
	)
}

func elementsSection(c domain.Chart) Node {
	cells := make([]Node, 0, len(domain.Elements))
	for _, e := range domain.Elements {
		pct := strconv.FormatFloat(c.FiveElementsRatio[e]*100, 'f', 1, 64)
		cells = append(cells, Td(
			Span(Class("pillar-char"), elementClass(e), Text(e.String())),
			Div(Text(itoa(c.FiveElementsCount[e])+" · "+pct+"%")),
		))
	}
	return Section(
		Class("card table-wrap"),
		H2(Text("五行")),
		Table(TBody(Tr(Group(cells)))),
	)
}

func luckSection(c domain.Chart, now time.Time) Node {
	direction := "逆排"
	if c.Luck.Forward {
		direction = "顺排"
	}
	start := c.Luck.StartAge
	intro := direction + "，" + itoa(start.Years) + "岁" + itoa(start.Months) + "个月" + itoa(start.Days) + "天起运（" + c.Luck.StartSolar.String() + "）"

	ages := []Node{Th(Text("年份"))}
	chars := []Node{Th(Text("大运"))}
	for i, p := range c.Luck.View(now) {
		attrs := []Node{}
		if p.IsCurrent {
			attrs = append(attrs, Class("current"))
		}
		ages = append(ages, Td(Group(attrs), Text(itoa(p.Year)), Div(Class("muted"), Text(itoa(start.Years+i*10)+"岁"))))
		chars = append(chars, Td(Group(attrs),
			Div(elementClass(p.Stem.Element), Text(p.Stem.Stem.String())),
			Div(elementClass(p.Branch.Element), Text(p.Branch.Branch.String())),
			Div(Class("muted"), Text(p.Stem.TenGod.String())),
		))
	}

	var annual Node
	if c.Annual != nil {
		annual = P(Class("muted"), Text(itoa(c.AnnualYear)+"年流年："+c.Annual.String()))
	}

	return Section(
		Class("card table-wrap"),
		H2(Text("大运")),
		P(Class("muted"), Text(intro)),
		Table(TBody(Tr(Group(ages)), Tr(Group(chars)))),
		annual,
	)
}

func relationsSection(rel domain.Relations) Node {
	groups := []struct {
		title string
		items []domain.Relation
	}{
		{"天干", rel.Stem},
		{"地支", rel.Branch},
		{"干支", rel.StemBranch},
	}
	var nodes []Node
	for _, g := range groups {
		items := make([]Node, 0, len(g.items))
		for _, r := range g.items {
			slots := make([]string, len(r.Slots))
			for i, s := range r.Slots {
				slots[i] = string(s)
			}
			items = append(items, Li(Text(r.Description), Span(Class("muted"), Text(" "+strings.Join(slots, "/")))))
		}
		if len(items) == 0 {
			items = append(items, Li(Class("muted"), Text("无")))
		}
		nodes = append(nodes, Div(Strong(Text(g.title)), Ul(Group(items))))
	}
	return Section(Class("card"), H2(Text("刑冲合会")), Group(nodes))
}
