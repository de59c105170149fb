package domain

// Slot identifies a pillar position in a relation computation.
type Slot string

// Pillar slots. Luck and annual are optional in any computation.
const (
	SlotYear   Slot = "year"
	SlotMonth  Slot = "month"
	SlotDay    Slot = "day"
	SlotHour   Slot = "hour"
	SlotLuck   Slot = "luck"
	SlotAnnual Slot = "annual"
)

// Slots lists every slot in canonical scan order.
var Slots = []Slot{SlotYear, SlotMonth, SlotDay, SlotHour, SlotLuck, SlotAnnual}

// NatalSlots lists the four birth pillars.
var NatalSlots = []Slot{SlotYear, SlotMonth, SlotDay, SlotHour}

// Valid reports whether s is a known slot.
func (s Slot) Valid() bool {
	for _, v := range Slots {
		if v == s {
			return true
		}
	}
	return false
}

// IsNatal reports whether s is one of the four birth pillars.
func (s Slot) IsNatal() bool {
	switch s {
	case SlotYear, SlotMonth, SlotDay, SlotHour:
		return true
	}
	return false
}

// Order returns the canonical position of the slot, or -1 when unknown.
func (s Slot) Order() int {
	for i, v := range Slots {
		if v == s {
			return i
		}
	}
	return -1
}

// RelationType names a stem/branch interaction.
type RelationType string

const (
	RelCombination       RelationType = "combination"        // 天干五合
	RelClash             RelationType = "clash"              // 天干相冲 / 地支六冲
	RelDomination        RelationType = "domination"         // 天干相克
	RelSixCombination    RelationType = "six_combination"    // 地支六合
	RelTripleCombination RelationType = "triple_combination" // 地支三合
	RelHalfCombination   RelationType = "half_combination"   // 地支半合
	RelTripleMeeting     RelationType = "triple_meeting"     // 地支三会
	RelPunishment        RelationType = "punishment"         // 地支相刑 / 自刑
	RelHarm              RelationType = "harm"               // 地支相害
	RelProduction        RelationType = "production"         // 同柱地支生天干
)

// RelationCategory groups relations by what they connect.
type RelationCategory string

const (
	CategoryStem       RelationCategory = "stem"
	CategoryBranch     RelationCategory = "branch"
	CategoryStemBranch RelationCategory = "stem_branch"
)

// Punishment subtypes.
const (
	PunishmentUngrateful = "ungrateful" // 无恩之刑
	PunishmentBullying   = "bullying"   // 恃势之刑
	PunishmentRude       = "rude"       // 无礼之刑
	PunishmentSelf       = "self"       // 自刑
)

// Relation is a derived fact about two or three pillars (or one, for
// same-pillar production).
type Relation struct {
	Type             RelationType     `json:"type"`
	Category         RelationCategory `json:"category"`
	Subtype          string           `json:"subtype,omitempty"`
	Slots            []Slot           `json:"pillars"`
	Items            []string         `json:"ganzi_items"`
	Description      string           `json:"description"`
	Element          *Element         `json:"element,omitempty"`
	InvolvesNonNatal bool             `json:"involves_fortune"`
}

// Involves reports whether slot participates in the relation.
func (r Relation) Involves(slot Slot) bool {
	for _, s := range r.Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// Relations is the full relation set of one computation.
type Relations struct {
	Stem       []Relation `json:"stem_relations"`
	Branch     []Relation `json:"branch_relations"`
	StemBranch []Relation `json:"stem_branch_relations"`
}

// Len returns the total number of relations.
func (r Relations) Len() int { return len(r.Stem) + len(r.Branch) + len(r.StemBranch) }

// EmptyRelations returns a relation set with non-nil empty slices so that it
// serializes as empty arrays.
func EmptyRelations() Relations {
	return Relations{Stem: []Relation{}, Branch: []Relation{}, StemBranch: []Relation{}}
}
