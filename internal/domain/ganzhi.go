// Package domain defines core types, interfaces, and errors for the BaZi chart engine.
package domain

import (
	"fmt"
	"unicode/utf8"
)

// Element is one of the five phases (五行).
type Element int

// Five elements in production-cycle order: each produces the next.
const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// Elements lists the five elements in production-cycle order.
var Elements = [5]Element{Wood, Fire, Earth, Metal, Water}

var elementNames = [5]string{"木", "火", "土", "金", "水"}

func (e Element) String() string {
	if e < Wood || e > Water {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// Produces returns the element this one generates (木生火, 火生土 ...).
func (e Element) Produces() Element { return (e + 1) % 5 }

// Controls returns the element this one overcomes (木克土, 土克水 ...).
func (e Element) Controls() Element { return (e + 2) % 5 }

// MarshalText implements encoding.TextMarshaler.
func (e Element) MarshalText() ([]byte, error) {
	if e < Wood || e > Water {
		return nil, fmt.Errorf("invalid element %d", int(e))
	}
	return []byte(elementNames[e]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Element) UnmarshalText(b []byte) error {
	el, err := ParseElement(string(b))
	if err != nil {
		return err
	}
	*e = el
	return nil
}

// ParseElement resolves a single element character.
func ParseElement(s string) (Element, error) {
	for i, name := range elementNames {
		if name == s {
			return Element(i), nil
		}
	}
	return 0, ErrValidation("unknown element %q", s)
}

// Polarity is yin or yang.
type Polarity int

const (
	Yang Polarity = iota
	Yin
)

func (p Polarity) String() string {
	if p == Yin {
		return "阴"
	}
	return "阳"
}

// MarshalText implements encoding.TextMarshaler.
func (p Polarity) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Stem is a heavenly stem (天干), 0=甲 through 9=癸.
type Stem int

// NumStems is the size of the heavenly stem cycle.
const NumStems = 10

var stemNames = [NumStems]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var stemElements = [NumStems]Element{Wood, Wood, Fire, Fire, Earth, Earth, Metal, Metal, Water, Water}

// MustStem converts an index to a Stem and panics when it is out of range.
// An invalid index is a programming error, never user input.
func MustStem(i int) Stem {
	if i < 0 || i >= NumStems {
		panic(fmt.Sprintf("domain: stem index %d out of range [0,%d)", i, NumStems))
	}
	return Stem(i)
}

// Valid reports whether s is one of the ten stems.
func (s Stem) Valid() bool { return s >= 0 && s < NumStems }

func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemNames[s]
}

// Element returns the stem's fixed element.
func (s Stem) Element() Element { return stemElements[MustStem(int(s))] }

// Polarity returns Yang for even stems and Yin for odd stems.
func (s Stem) Polarity() Polarity { return Polarity(MustStem(int(s)) % 2) }

// MarshalText implements encoding.TextMarshaler.
func (s Stem) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid stem %d", int(s))
	}
	return []byte(stemNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stem) UnmarshalText(b []byte) error {
	st, err := ParseStem(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParseStem resolves a single stem character.
func ParseStem(str string) (Stem, error) {
	for i, name := range stemNames {
		if name == str {
			return Stem(i), nil
		}
	}
	return 0, ErrValidation("unknown heavenly stem %q", str)
}

// Branch is an earthly branch (地支), 0=子 through 11=亥.
type Branch int

// NumBranches is the size of the earthly branch cycle.
const NumBranches = 12

var branchNames = [NumBranches]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var branchElements = [NumBranches]Element{
	Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water,
}

// hiddenStems lists the stems stored in each branch, main qi first.
var hiddenStems = [NumBranches][]Stem{
	{9},       // 子: 癸
	{5, 7, 9}, // 丑: 己辛癸
	{0, 2, 4}, // 寅: 甲丙戊
	{1},       // 卯: 乙
	{4, 1, 9}, // 辰: 戊乙癸
	{2, 6, 4}, // 巳: 丙庚戊
	{3, 5},    // 午: 丁己
	{5, 3, 1}, // 未: 己丁乙
	{6, 8, 4}, // 申: 庚壬戊
	{7},       // 酉: 辛
	{4, 7, 3}, // 戌: 戊辛丁
	{8, 0},    // 亥: 壬甲
}

var zodiacAnimals = [NumBranches]string{"鼠", "牛", "虎", "兔", "龙", "蛇", "马", "羊", "猴", "鸡", "狗", "猪"}

// MustBranch converts an index to a Branch and panics when it is out of range.
func MustBranch(i int) Branch {
	if i < 0 || i >= NumBranches {
		panic(fmt.Sprintf("domain: branch index %d out of range [0,%d)", i, NumBranches))
	}
	return Branch(i)
}

// Valid reports whether b is one of the twelve branches.
func (b Branch) Valid() bool { return b >= 0 && b < NumBranches }

func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchNames[b]
}

// Element returns the branch's fixed element.
func (b Branch) Element() Element { return branchElements[MustBranch(int(b))] }

// Polarity returns Yang for even branches and Yin for odd branches.
func (b Branch) Polarity() Polarity { return Polarity(MustBranch(int(b)) % 2) }

// HiddenStems returns a copy of the branch's hidden stems, main qi first.
func (b Branch) HiddenStems() []Stem {
	src := hiddenStems[MustBranch(int(b))]
	out := make([]Stem, len(src))
	copy(out, src)
	return out
}

// ZodiacAnimal returns the animal (生肖) associated with the branch.
func (b Branch) ZodiacAnimal() string { return zodiacAnimals[MustBranch(int(b))] }

// MarshalText implements encoding.TextMarshaler.
func (b Branch) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid branch %d", int(b))
	}
	return []byte(branchNames[b]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Branch) UnmarshalText(text []byte) error {
	br, err := ParseBranch(string(text))
	if err != nil {
		return err
	}
	*b = br
	return nil
}

// ParseBranch resolves a single branch character.
func ParseBranch(str string) (Branch, error) {
	for i, name := range branchNames {
		if name == str {
			return Branch(i), nil
		}
	}
	return 0, ErrValidation("unknown earthly branch %q", str)
}

// SexagenaryCycle is the canonical 60 jiazi order used for index lookups and stepping.
var SexagenaryCycle = [60]string{
	"甲子", "乙丑", "丙寅", "丁卯", "戊辰", "己巳", "庚午", "辛未", "壬申", "癸酉",
	"甲戌", "乙亥", "丙子", "丁丑", "戊寅", "己卯", "庚辰", "辛巳", "壬午", "癸未",
	"甲申", "乙酉", "丙戌", "丁亥", "戊子", "己丑", "庚寅", "辛卯", "壬辰", "癸巳",
	"甲午", "乙未", "丙申", "丁酉", "戊戌", "己亥", "庚子", "辛丑", "壬寅", "癸卯",
	"甲辰", "乙巳", "丙午", "丁未", "戊申", "己酉", "庚戌", "辛亥", "壬子", "癸丑",
	"甲寅", "乙卯", "丙辰", "丁巳", "戊午", "己未", "庚申", "辛酉", "壬戌", "癸亥",
}

var cycleIndex = func() map[string]int {
	m := make(map[string]int, len(SexagenaryCycle))
	for i, s := range SexagenaryCycle {
		m[s] = i
	}
	return m
}()

// GanZhi is a stem-branch pair. Only pairs of equal parity are valid.
type GanZhi struct {
	Stem   Stem   `json:"stem"`
	Branch Branch `json:"branch"`
}

// NewGanZhi builds a pair and panics when the indices are out of range or of
// different parity.
func NewGanZhi(stem, branch int) GanZhi {
	gz := GanZhi{Stem: MustStem(stem), Branch: MustBranch(branch)}
	if stem%2 != branch%2 {
		panic(fmt.Sprintf("domain: %s%s is not a sexagenary pair", gz.Stem, gz.Branch))
	}
	return gz
}

// GanZhiFromIndex returns the i-th entry of the 60 cycle.
func GanZhiFromIndex(i int) GanZhi {
	if i < 0 || i >= len(SexagenaryCycle) {
		panic(fmt.Sprintf("domain: sexagenary index %d out of range [0,60)", i))
	}
	return GanZhi{Stem: Stem(i % NumStems), Branch: Branch(i % NumBranches)}
}

// ParseGanZhi parses a two-character pair such as "甲子".
func ParseGanZhi(s string) (GanZhi, error) {
	if utf8.RuneCountInString(s) != 2 {
		return GanZhi{}, ErrValidation("pillar %q must be two characters (stem + branch)", s)
	}
	i, ok := cycleIndex[s]
	if !ok {
		return GanZhi{}, ErrValidation("%q is not one of the 60 sexagenary pairs", s)
	}
	return GanZhiFromIndex(i), nil
}

// Index returns the position of the pair in SexagenaryCycle.
func (g GanZhi) Index() int {
	i, ok := cycleIndex[g.String()]
	if !ok {
		panic(fmt.Sprintf("domain: %s%s is not a sexagenary pair", g.Stem, g.Branch))
	}
	return i
}

// Next steps n positions along the cycle; negative n steps backwards.
func (g GanZhi) Next(n int) GanZhi {
	return GanZhiFromIndex(((g.Index()+n)%60 + 60) % 60)
}

func (g GanZhi) String() string { return g.Stem.String() + g.Branch.String() }

// MarshalText implements encoding.TextMarshaler.
func (g GanZhi) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *GanZhi) UnmarshalText(b []byte) error {
	parsed, err := ParseGanZhi(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
