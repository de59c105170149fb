package cli

// Response shapes decoded for table output. JSON output prints the server
// response unchanged.

type stemView struct {
	Name    string `json:"name"`
	Element string `json:"element"`
	YinYang string `json:"yinyang"`
	TenGod  string `json:"ten_god"`
}

type branchView struct {
	Name        string     `json:"name"`
	Element     string     `json:"element"`
	HiddenStems []stemView `json:"hidden_stems"`
	StarFortune string     `json:"star_fortune"`
}

type pillarView struct {
	Stem   stemView   `json:"heaven_stem"`
	Branch branchView `json:"earth_branch"`
	NaYin  string     `json:"na_yin"`
}

func (p pillarView) String() string { return p.Stem.Name + p.Branch.Name }

type luckPillarView struct {
	pillarView
	Year      int  `json:"year"`
	IsCurrent bool `json:"is_current"`
}

type palaceView struct {
	GanZhi string `json:"gan_zhi"`
	NaYin  string `json:"na_yin"`
}

func (p palaceView) String() string {
	if p.GanZhi == "" {
		return ""
	}
	return p.GanZhi + " " + p.NaYin
}

type relationView struct {
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Subtype     string   `json:"subtype"`
	Slots       []string `json:"pillars"`
	Items       []string `json:"ganzi_items"`
	Description string   `json:"description"`
}

type relationsView struct {
	Stem       []relationView `json:"stem_relations"`
	Branch     []relationView `json:"branch_relations"`
	StemBranch []relationView `json:"stem_branch_relations"`
}

func (r relationsView) all() []relationView {
	out := make([]relationView, 0, len(r.Stem)+len(r.Branch)+len(r.StemBranch))
	out = append(out, r.Stem...)
	out = append(out, r.Branch...)
	return append(out, r.StemBranch...)
}

type chartView struct {
	Name              string         `json:"name"`
	Gender            string         `json:"gender"`
	SolarTime         string         `json:"solar_datetime"`
	TrueSolarTime     string         `json:"true_solar_datetime"`
	SolarTimeApplied  bool           `json:"true_solar_time_applied"`
	Year              pillarView     `json:"year_pillar"`
	Month             pillarView     `json:"month_pillar"`
	Day               pillarView     `json:"day_pillar"`
	Hour              pillarView     `json:"hour_pillar"`
	DayMasterDisplay  string         `json:"day_master_display"`
	FiveElementsCount map[string]int `json:"five_elements_count"`
	ZodiacAnimal      string         `json:"zodiac_animal"`
	TaiYuan           palaceView     `json:"tai_yuan"`
	MingGong          palaceView     `json:"ming_gong"`
	ShenGong          palaceView     `json:"shen_gong"`
	Luck              struct {
		Forward  bool `json:"is_forward"`
		StartAge struct {
			Years  int `json:"year"`
			Months int `json:"month"`
			Days   int `json:"day"`
		} `json:"start_age"`
		Pillars []luckPillarView `json:"destiny_pillars"`
	} `json:"destiny_cycle"`
	Relations relationsView `json:"ganzi_relations"`
}

type analysisView struct {
	Chart    chartView `json:"chart"`
	Analysis struct {
		Pattern        string   `json:"pattern"`
		StrengthScore  int      `json:"strength_score"`
		Favourable     []string `json:"yi_yong_shen"`
		Unfavourable   []string `json:"ji_shen"`
		PatternTags    []string `json:"pattern_tags"`
		KeyConclusions []string `json:"key_conclusions"`
		RiskPoints     []string `json:"risk_points"`
	} `json:"analysis"`
	Knowledge []struct {
		Topic   string `json:"topic"`
		Summary string `json:"summary"`
	} `json:"knowledge"`
}

type searchView struct {
	Query     string `json:"query"`
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year"`
	Matches   []struct {
		Year         int    `json:"year"`
		Month        int    `json:"month"`
		Day          int    `json:"day"`
		Hour         int    `json:"hour"`
		Minute       int    `json:"minute"`
		LunarDisplay string `json:"lunar_display"`
	} `json:"matches"`
}
