package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmydengpeng/BaziMiao/internal/domain"
)

func TestTenGodOf_DirectWealth(t *testing.T) {
	t.Parallel()
	// 甲 day master, 己 yin earth: wood controls earth, polarity differs.
	assert.Equal(t, domain.DirectWealth, TenGodOf(5, 0))
	assert.Equal(t, "正财", TenGodOf(5, 0).String())
}

func TestTenGodOf_Bijection(t *testing.T) {
	t.Parallel()
	for dm := 0; dm < domain.NumStems; dm++ {
		seen := map[domain.TenGod]bool{}
		for s := 0; s < domain.NumStems; s++ {
			seen[TenGodOf(domain.Stem(s), domain.Stem(dm))] = true
		}
		assert.Len(t, seen, 10, "day master %s", domain.Stem(dm))
	}
}

func TestTenGodOf_Table(t *testing.T) {
	t.Parallel()
	tests := []struct {
		stem, dayMaster string
		want            string
	}{
		{"甲", "甲", "比肩"},
		{"乙", "甲", "劫财"},
		{"丙", "甲", "食神"},
		{"丁", "甲", "伤官"},
		{"戊", "甲", "偏财"},
		{"庚", "甲", "七杀"},
		{"辛", "甲", "正官"},
		{"壬", "甲", "偏印"},
		{"癸", "甲", "正印"},
		{"壬", "丁", "正官"},
		{"甲", "癸", "伤官"},
	}
	for _, tc := range tests {
		s, err := domain.ParseStem(tc.stem)
		require.NoError(t, err)
		dm, err := domain.ParseStem(tc.dayMaster)
		require.NoError(t, err)
		assert.Equal(t, tc.want, TenGodOf(s, dm).String(), "%s vs %s", tc.stem, tc.dayMaster)
	}
}

func TestNaYin(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "海中金", NaYin(mustGZ("甲子")))
	assert.Equal(t, "海中金", NaYin(mustGZ("乙丑")))
	assert.Equal(t, "天上火", NaYin(mustGZ("戊午")))
	assert.Equal(t, "大海水", NaYin(mustGZ("癸亥")))
	assert.Equal(t, domain.Water, NaYinElement(mustGZ("癸亥")))
	assert.NotEmpty(t, NaYinTrait("海中金"))
	assert.Empty(t, NaYinTrait("unknown"))

	for i := 0; i < 60; i++ {
		name := NaYin(domain.GanZhiFromIndex(i))
		assert.NotEmpty(t, NaYinTrait(name), name)
	}
}

func TestStarFortune(t *testing.T) {
	t.Parallel()
	tests := []struct {
		dayMaster, branch string
		want              string
	}{
		{"甲", "亥", "长生"},
		{"甲", "卯", "帝旺"},
		{"甲", "午", "死"},
		{"乙", "午", "长生"},
		{"乙", "寅", "帝旺"},
		{"庚", "巳", "长生"},
		{"辛", "子", "长生"},
		{"辛", "申", "帝旺"},
		{"癸", "卯", "长生"},
	}
	for _, tc := range tests {
		s, _ := domain.ParseStem(tc.dayMaster)
		b, _ := domain.ParseBranch(tc.branch)
		assert.Equal(t, tc.want, StarFortune(s, b).String(), "%s at %s", tc.dayMaster, tc.branch)
	}
}

func TestBuildPillar(t *testing.T) {
	t.Parallel()
	p := BuildPillar(mustGZ("戊午"), 0)

	assert.Equal(t, "戊午", p.String())
	assert.Equal(t, domain.Earth, p.Stem.Element)
	assert.Equal(t, domain.Yang, p.Stem.Polarity)
	assert.Equal(t, domain.IndirectWealth, p.Stem.TenGod)
	assert.Equal(t, domain.Fire, p.Branch.Element)
	require.Len(t, p.Branch.HiddenStems, 2)
	assert.Equal(t, domain.Stem(3), p.Branch.HiddenStems[0].Stem)
	assert.Equal(t, domain.HurtingOfficer, p.Branch.HiddenStems[0].TenGod)
	assert.Equal(t, domain.DirectWealth, p.Branch.HiddenStems[1].TenGod)
	assert.Equal(t, "天上火", p.NaYin)
	assert.Equal(t, "死", p.Branch.StarFortune.String())
}

func TestBuildPillarFromIndex_PanicsOnContractViolation(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { BuildPillarFromIndex(0, 1, 0) })
	assert.Panics(t, func() { BuildPillarFromIndex(10, 0, 0) })
	assert.Panics(t, func() { BuildPillarFromIndex(0, 12, 0) })
	assert.NotPanics(t, func() { BuildPillarFromIndex(9, 11, 0) })
}

func TestHourGanZhi(t *testing.T) {
	t.Parallel()
	tests := []struct {
		day  string
		hour int
		want string
	}{
		{"甲", 0, "甲子"},
		{"甲", 1, "乙丑"},
		{"乙", 23, "丙子"},
		{"丙", 12, "甲午"},
		{"戊", 12, "戊午"},
		{"癸", 22, "癸亥"},
	}
	for _, tc := range tests {
		s, _ := domain.ParseStem(tc.day)
		assert.Equal(t, tc.want, HourGanZhi(s, tc.hour).String(), "%s day %02d:00", tc.day, tc.hour)
	}
	assert.Panics(t, func() { HourGanZhi(0, 24) })
}
