package engine

import "github.com/jimmydengpeng/BaziMiao/internal/domain"

// TenGodOf classifies stem relative to the day master.
func TenGodOf(stem, dayMaster domain.Stem) domain.TenGod {
	target, self := stem.Element(), dayMaster.Element()

	var category int
	switch {
	case target == self:
		category = 0 // peer
	case self.Produces() == target:
		category = 1 // output
	case self.Controls() == target:
		category = 2 // wealth
	case target.Controls() == self:
		category = 3 // officer
	default:
		category = 4 // resource
	}
	offset := 0
	if stem.Polarity() != dayMaster.Polarity() {
		offset = 1
	}
	return domain.TenGod(category*2 + offset)
}

// NaYin returns the na-yin name of a sexagenary pair.
func NaYin(gz domain.GanZhi) string { return naYinNames[gz.Index()/2] }

// NaYinTrait returns the flavour text of a na-yin name, or "" when unknown.
func NaYinTrait(name string) string { return naYinTraits[name] }

// NaYinElement returns the element named by the last character of a na-yin.
func NaYinElement(gz domain.GanZhi) domain.Element {
	name := []rune(NaYin(gz))
	el, err := domain.ParseElement(string(name[len(name)-1]))
	if err != nil {
		panic("engine: na-yin table entry without element: " + string(name))
	}
	return el
}

// StarFortune returns the life stage of dayMaster at branch (长生十二宫).
func StarFortune(dayMaster domain.Stem, branch domain.Branch) domain.Stage {
	start := int(changShengStart[domain.MustStem(int(dayMaster))])
	b := int(domain.MustBranch(int(branch)))
	if dayMaster.Polarity() == domain.Yang {
		return domain.Stage((b - start + 12) % 12)
	}
	return domain.Stage((start - b + 12) % 12)
}

// StemInfoOf annotates stem relative to the day master.
func StemInfoOf(stem, dayMaster domain.Stem) domain.StemInfo {
	return domain.StemInfo{
		Stem:     stem,
		Element:  stem.Element(),
		Polarity: stem.Polarity(),
		TenGod:   TenGodOf(stem, dayMaster),
	}
}

// BuildPillar annotates a sexagenary pair relative to the day master.
func BuildPillar(gz domain.GanZhi, dayMaster domain.Stem) domain.Pillar {
	hidden := gz.Branch.HiddenStems()
	infos := make([]domain.StemInfo, len(hidden))
	for i, s := range hidden {
		infos[i] = StemInfoOf(s, dayMaster)
	}
	name := NaYin(gz)
	return domain.Pillar{
		Stem: StemInfoOf(gz.Stem, dayMaster),
		Branch: domain.BranchInfo{
			Branch:      gz.Branch,
			Element:     gz.Branch.Element(),
			Polarity:    gz.Branch.Polarity(),
			HiddenStems: infos,
			StarFortune: StarFortune(dayMaster, gz.Branch),
		},
		NaYin:      name,
		NaYinTrait: NaYinTrait(name),
	}
}

// BuildPillarFromIndex is BuildPillar over raw indices. Out-of-range indices
// and mismatched parity panic.
func BuildPillarFromIndex(stem, branch int, dayMaster domain.Stem) domain.Pillar {
	return BuildPillar(domain.NewGanZhi(stem, branch), dayMaster)
}

// HourBranch maps a clock hour to its double-hour branch; 23:00 is already 子.
func HourBranch(hour int) domain.Branch {
	if hour < 0 || hour > 23 {
		panic("engine: hour out of range")
	}
	return domain.Branch(((hour + 1) / 2) % 12)
}

// HourGanZhi derives the hour pillar from the day stem (五鼠遁).
func HourGanZhi(dayStem domain.Stem, hour int) domain.GanZhi {
	b := HourBranch(hour)
	s := (int(domain.MustStem(int(dayStem)))*2 + int(b)) % 10
	return domain.NewGanZhi(s, int(b))
}
