package engine

import (
	"sort"
	"strings"

	"github.com/jimmydengpeng/BaziMiao/internal/domain"
)

type slotted struct {
	slot domain.Slot
	gz   domain.GanZhi
}

// CalculateRelations computes every stem, branch and same-pillar relation
// between the given pillars. Slots are scanned in canonical order.
func CalculateRelations(pillars map[domain.Slot]domain.Pillar) (domain.Relations, error) {
	pairs := make(map[domain.Slot]domain.GanZhi, len(pillars))
	for slot, p := range pillars {
		pairs[slot] = p.GanZhi()
	}
	return RelationsOf(pairs)
}

// RelationsOf is CalculateRelations over bare stem-branch pairs.
func RelationsOf(pairs map[domain.Slot]domain.GanZhi) (domain.Relations, error) {
	for slot := range pairs {
		if !slot.Valid() {
			return domain.Relations{}, domain.ErrValidation("unknown pillar slot %q", slot)
		}
	}
	entries := make([]slotted, 0, len(pairs))
	for _, slot := range domain.Slots {
		if gz, ok := pairs[slot]; ok {
			entries = append(entries, slotted{slot: slot, gz: gz})
		}
	}

	var s scan
	s.entries = entries
	s.stemRelations()
	s.branchPairRelations()
	s.triads(branchTripleCombinations, domain.RelTripleCombination, "三合", "局", true)
	s.triads(branchTripleMeetings, domain.RelTripleMeeting, "三会", "方", false)
	s.punishments()
	s.harms()
	s.production()

	return domain.Relations{
		Stem:       dedupe(s.stem),
		Branch:     dedupe(s.branch),
		StemBranch: dedupe(s.stemBranch),
	}, nil
}

// FilterRelations keeps only the relations that involve slot.
func FilterRelations(rel domain.Relations, slot domain.Slot) domain.Relations {
	keep := func(in []domain.Relation) []domain.Relation {
		out := []domain.Relation{}
		for _, r := range in {
			if r.Involves(slot) {
				out = append(out, r)
			}
		}
		return out
	}
	return domain.Relations{Stem: keep(rel.Stem), Branch: keep(rel.Branch), StemBranch: keep(rel.StemBranch)}
}

type scan struct {
	entries    []slotted
	stem       []domain.Relation
	branch     []domain.Relation
	stemBranch []domain.Relation
}

func newRelation(typ domain.RelationType, cat domain.RelationCategory, slots []domain.Slot, items []string, desc string) domain.Relation {
	r := domain.Relation{
		Type:        typ,
		Category:    cat,
		Slots:       slots,
		Items:       items,
		Description: desc,
	}
	for _, s := range slots {
		if !s.IsNatal() {
			r.InvolvesNonNatal = true
		}
	}
	return r
}

func withElement(r domain.Relation, e domain.Element) domain.Relation {
	r.Element = &e
	return r
}

func matchesStems(p stemPair, a, b domain.Stem) bool {
	return (p.a == a && p.b == b) || (p.a == b && p.b == a)
}

func matchesBranches(p branchPair, a, b domain.Branch) bool {
	return (p.a == a && p.b == b) || (p.a == b && p.b == a)
}

func (s *scan) stemRelations() {
	for i, x := range s.entries {
		for _, y := range s.entries[i+1:] {
			a, b := x.gz.Stem, y.gz.Stem
			slots := []domain.Slot{x.slot, y.slot}
			items := []string{a.String(), b.String()}
			for _, c := range stemCombinations {
				if matchesStems(c.pair, a, b) {
					s.stem = append(s.stem, withElement(
						newRelation(domain.RelCombination, domain.CategoryStem, slots, items, a.String()+b.String()+"合化"+c.element.String()),
						c.element))
					break
				}
			}
			for _, c := range stemClashes {
				if matchesStems(c, a, b) {
					s.stem = append(s.stem, newRelation(domain.RelClash, domain.CategoryStem,
						[]domain.Slot{x.slot, y.slot}, []string{a.String(), b.String()}, a.String()+b.String()+"冲"))
					break
				}
			}
		}
	}
	// Domination is directed, so every ordered pair is checked.
	for _, x := range s.entries {
		for _, y := range s.entries {
			if x.slot == y.slot {
				continue
			}
			for _, d := range stemDominations {
				if d.a == x.gz.Stem && d.b == y.gz.Stem {
					s.stem = append(s.stem, newRelation(domain.RelDomination, domain.CategoryStem,
						[]domain.Slot{x.slot, y.slot}, []string{d.a.String(), d.b.String()}, d.a.String()+"克"+d.b.String()))
					break
				}
			}
		}
	}
}

func (s *scan) branchPairRelations() {
	for i, x := range s.entries {
		for _, y := range s.entries[i+1:] {
			a, b := x.gz.Branch, y.gz.Branch
			for _, c := range branchSixCombinations {
				if matchesBranches(c.pair, a, b) {
					s.branch = append(s.branch, withElement(
						newRelation(domain.RelSixCombination, domain.CategoryBranch,
							[]domain.Slot{x.slot, y.slot}, []string{a.String(), b.String()}, a.String()+b.String()+"合化"+c.element.String()),
						c.element))
					break
				}
			}
			for _, c := range branchClashes {
				if matchesBranches(c, a, b) {
					s.branch = append(s.branch, newRelation(domain.RelClash, domain.CategoryBranch,
						[]domain.Slot{x.slot, y.slot}, []string{a.String(), b.String()}, a.String()+b.String()+"冲"))
					break
				}
			}
		}
	}
}

// positions lists the slots holding branch b, in scan order.
func (s *scan) positions(b domain.Branch) []domain.Slot {
	var out []domain.Slot
	for _, e := range s.entries {
		if e.gz.Branch == b {
			out = append(out, e.slot)
		}
	}
	return out
}

// triads records a relation for every way of picking one slot per triad
// member, since one branch may sit in several slots at once. With withHalf,
// pairs of members are reported as half combinations when the third member is
// absent from every slot.
func (s *scan) triads(table []branchTriad, typ domain.RelationType, verb, suffix string, withHalf bool) {
	for _, t := range table {
		var pos [3][]domain.Slot
		present := 0
		for i, m := range t.members {
			pos[i] = s.positions(m)
			if len(pos[i]) > 0 {
				present++
			}
		}
		items := []string{t.members[0].String(), t.members[1].String(), t.members[2].String()}

		switch {
		case present == 3:
			for _, a := range pos[0] {
				for _, b := range pos[1] {
					for _, c := range pos[2] {
						s.branch = append(s.branch, withElement(
							newRelation(typ, domain.CategoryBranch, []domain.Slot{a, b, c}, append([]string(nil), items...),
								strings.Join(items, "")+verb+t.element.String()+suffix),
							t.element))
					}
				}
			}
		case present == 2 && withHalf:
			var idx []int
			for i := range pos {
				if len(pos[i]) > 0 {
					idx = append(idx, i)
				}
			}
			i, j := idx[0], idx[1]
			for _, a := range pos[i] {
				for _, b := range pos[j] {
					pair := []string{items[i], items[j]}
					s.branch = append(s.branch, withElement(
						newRelation(domain.RelHalfCombination, domain.CategoryBranch, []domain.Slot{a, b}, pair,
							items[i]+items[j]+"半合"+t.element.String()+suffix),
						t.element))
				}
			}
		}
	}
}

func (s *scan) punishments() {
	for _, b := range selfPunishingBranches {
		found := s.positions(b)
		for i := 0; i < len(found); i++ {
			for j := i + 1; j < len(found); j++ {
				r := newRelation(domain.RelPunishment, domain.CategoryBranch,
					[]domain.Slot{found[i], found[j]}, []string{b.String(), b.String()}, b.String()+b.String()+"自刑")
				r.Subtype = domain.PunishmentSelf
				s.branch = append(s.branch, r)
			}
		}
	}
	for _, group := range branchPunishments {
		for _, p := range group.pairs {
			for _, x := range s.positions(p.a) {
				for _, y := range s.positions(p.b) {
					r := newRelation(domain.RelPunishment, domain.CategoryBranch,
						[]domain.Slot{x, y}, []string{p.a.String(), p.b.String()},
						p.a.String()+"刑"+p.b.String()+"（"+group.label+"）")
					r.Subtype = group.subtype
					s.branch = append(s.branch, r)
				}
			}
		}
	}
}

func (s *scan) harms() {
	for i, x := range s.entries {
		for _, y := range s.entries[i+1:] {
			a, b := x.gz.Branch, y.gz.Branch
			for _, h := range branchHarms {
				if matchesBranches(h, a, b) {
					s.branch = append(s.branch, newRelation(domain.RelHarm, domain.CategoryBranch,
						[]domain.Slot{x.slot, y.slot}, []string{a.String(), b.String()}, a.String()+b.String()+"害"))
					break
				}
			}
		}
	}
}

func (s *scan) production() {
	for _, e := range s.entries {
		be, se := e.gz.Branch.Element(), e.gz.Stem.Element()
		if be.Produces() != se {
			continue
		}
		desc := e.gz.Branch.String() + be.String() + "生" + e.gz.Stem.String() + se.String()
		s.stemBranch = append(s.stemBranch, withElement(
			newRelation(domain.RelProduction, domain.CategoryStemBranch,
				[]domain.Slot{e.slot}, []string{e.gz.Branch.String(), e.gz.Stem.String()}, desc),
			se))
	}
}

// dedupe keeps the first relation per (type, sorted slots, sorted items).
func dedupe(in []domain.Relation) []domain.Relation {
	out := make([]domain.Relation, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, r := range in {
		key := relationKey(r)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

func relationKey(r domain.Relation) string {
	slots := make([]string, len(r.Slots))
	for i, s := range r.Slots {
		slots[i] = string(s)
	}
	items := append([]string(nil), r.Items...)
	sort.Strings(slots)
	sort.Strings(items)
	return string(r.Type) + "|" + strings.Join(slots, ",") + "|" + strings.Join(items, ",")
}
