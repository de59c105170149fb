package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmydengpeng/BaziMiao/internal/calendar"
	"github.com/jimmydengpeng/BaziMiao/internal/domain"
)

func TestVoid_SixDecades(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"甲子": "戌亥",
		"甲戌": "申酉",
		"甲申": "午未",
		"甲午": "辰巳",
		"甲辰": "寅卯",
		"甲寅": "子丑",
		"癸酉": "戌亥",
		"癸亥": "子丑",
		"戊午": "子丑",
	}
	for gz, want := range tests {
		assert.Equal(t, want, voidString(mustGZ(gz)), gz)
	}
}

func TestVoid_ConstantWithinDecade(t *testing.T) {
	t.Parallel()
	for i := 0; i < 60; i++ {
		head := domain.GanZhiFromIndex(i - i%10)
		assert.Equal(t, Void(head), Void(domain.GanZhiFromIndex(i)))
	}
}

func TestTaiYuanAndTaiXi(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "丁卯", TaiYuan(mustGZ("丙子")).String())
	assert.Equal(t, "甲寅", TaiYuan(mustGZ("癸亥")).String())
	assert.Equal(t, "癸未", TaiXi(mustGZ("戊午")).String())
	assert.Equal(t, "己丑", TaiXi(mustGZ("甲子")).String())
}

func TestPalaces_AlwaysValidPairs(t *testing.T) {
	t.Parallel()
	for ys := 0; ys < domain.NumStems; ys++ {
		for mb := 0; mb < domain.NumBranches; mb++ {
			for hb := 0; hb < domain.NumBranches; hb++ {
				assert.NotPanics(t, func() {
					MingGong(domain.Stem(ys), domain.Branch(mb), domain.Branch(hb))
					ShenGong(domain.Stem(ys), domain.Branch(mb), domain.Branch(hb))
				})
			}
		}
	}
}

func TestMingGong(t *testing.T) {
	t.Parallel()
	// 寅 month, 卯 hour counts to 子; a 甲 year gives 丙子.
	assert.Equal(t, "丙子", MingGong(0, 2, 3).String())
	// 身宫 sits opposite 命宫.
	assert.Equal(t, "庚午", ShenGong(0, 2, 3).String())
}

func TestRenYuanSiLing(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "甲木用事", RenYuanSiLing(2))
	assert.Equal(t, "癸水用事", RenYuanSiLing(0))
}

func TestZodiacSign(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "摩羯座", ZodiacSign(1, 20))
	assert.Equal(t, "水瓶座", ZodiacSign(1, 21))
	assert.Equal(t, "白羊座", ZodiacSign(3, 21))
	assert.Equal(t, "射手座", ZodiacSign(12, 22))
	assert.Equal(t, "摩羯座", ZodiacSign(12, 23))
}

func TestStarMansion(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "角宿东方青龙", StarMansion(1, 26))
	assert.Equal(t, "亢宿东方青龙", StarMansion(1, 27))
}

func TestBirthSolarTermOf(t *testing.T) {
	t.Parallel()
	cal := &fakeCalendar{terms: []calendar.SolarTerm{
		term(2, at(2024, 2, 4, 16, 27)),
		term(3, at(2024, 2, 19, 12, 13)),
	}}
	got, err := BirthSolarTermOf(cal, at(2024, 2, 10, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, "立春", got.Prev)
	assert.Equal(t, "立春后5天17小时", got.PrevDistance)
	assert.Equal(t, "雨水", got.Next)
	assert.Equal(t, "雨水前9天2小时", got.NextDistance)
}

func TestDaysHours(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1天1小时", daysHours(25*time.Hour+59*time.Minute))
	assert.Equal(t, "0天0小时", daysHours(-time.Hour))
}
