package engine

import (
	"fmt"
	"time"

	"github.com/jimmydengpeng/BaziMiao/internal/calendar"
	"github.com/jimmydengpeng/BaziMiao/internal/domain"
)

// zodiacSigns holds each sign with the month it ends in and its last day.
var zodiacSigns = [12]struct {
	name    string
	month   int
	lastDay int
}{
	{"摩羯座", 1, 20}, {"水瓶座", 2, 19}, {"双鱼座", 3, 20},
	{"白羊座", 4, 20}, {"金牛座", 5, 21}, {"双子座", 6, 21},
	{"巨蟹座", 7, 23}, {"狮子座", 8, 23}, {"处女座", 9, 23},
	{"天秤座", 10, 23}, {"天蝎座", 11, 22}, {"射手座", 12, 22},
}

var starMansions = [28]string{
	"角宿东方青龙", "亢宿东方青龙", "氐宿东方青龙", "房宿东方青龙",
	"心宿东方青龙", "尾宿东方青龙", "箕宿东方青龙",
	"斗宿北方玄武", "牛宿北方玄武", "女宿北方玄武", "虚宿北方玄武",
	"危宿北方玄武", "室宿北方玄武", "壁宿北方玄武",
	"奎宿西方白虎", "娄宿西方白虎", "胃宿西方白虎", "昴宿西方白虎",
	"毕宿西方白虎", "觜宿西方白虎", "参宿西方白虎",
	"井宿南方朱雀", "鬼宿南方朱雀", "柳宿南方朱雀", "星宿南方朱雀",
	"张宿南方朱雀", "翼宿南方朱雀", "轸宿南方朱雀",
}

// ZodiacSign returns the western sign for a Gregorian month and day.
func ZodiacSign(month, day int) string {
	for i, z := range zodiacSigns {
		if z.month == month {
			if day <= z.lastDay {
				return z.name
			}
			return zodiacSigns[(i+1)%12].name
		}
	}
	return ""
}

// StarMansion returns one of the 28 lunar mansions by a simplified date index.
func StarMansion(month, day int) string {
	return starMansions[(day+month*2)%28]
}

// Void returns the two void branches (空亡) of the decade the pair belongs to.
func Void(gz domain.GanZhi) [2]domain.Branch {
	start := (int(gz.Branch) - int(gz.Stem) + 12) % 12
	return [2]domain.Branch{domain.Branch((start + 10) % 12), domain.Branch((start + 11) % 12)}
}

func voidString(gz domain.GanZhi) string {
	v := Void(gz)
	return v[0].String() + v[1].String()
}

// TaiYuan is the conception pillar: month stem plus one, month branch plus three.
func TaiYuan(month domain.GanZhi) domain.GanZhi {
	return domain.NewGanZhi((int(month.Stem)+1)%10, (int(month.Branch)+3)%12)
}

// TaiXi pairs the day stem's combination partner with the day branch's
// six-combination partner.
func TaiXi(day domain.GanZhi) domain.GanZhi {
	return domain.NewGanZhi((int(day.Stem)+5)%10, (13-int(day.Branch))%12)
}

// palaceStem returns the stem of branch in a year started by yearStem (五虎遁).
func palaceStem(yearStem domain.Stem, branch int) int {
	tiger := (int(yearStem)%5)*2 + 2
	return (tiger + (branch-2+12)%12) % 10
}

// MingGong counts from 子 backwards to the birth month, then forwards from the
// birth hour to 卯.
func MingGong(yearStem domain.Stem, monthBranch, hourBranch domain.Branch) domain.GanZhi {
	b := ((5-int(monthBranch)-int(hourBranch))%12 + 24) % 12
	return domain.NewGanZhi(palaceStem(yearStem, b), b)
}

// ShenGong counts like MingGong but forwards to 酉.
func ShenGong(yearStem domain.Stem, monthBranch, hourBranch domain.Branch) domain.GanZhi {
	b := ((11-int(monthBranch)-int(hourBranch))%12 + 24) % 12
	return domain.NewGanZhi(palaceStem(yearStem, b), b)
}

// RenYuanSiLing names the main hidden stem of the month branch.
func RenYuanSiLing(monthBranch domain.Branch) string {
	main := monthBranch.HiddenStems()[0]
	return main.String() + main.Element().String() + "用事"
}

func palace(gz domain.GanZhi) domain.PalaceInfo {
	return domain.PalaceInfo{GanZhi: gz, NaYin: NaYin(gz)}
}

// BirthSolarTermOf measures the distance from birth to the surrounding terms.
func BirthSolarTermOf(cal calendar.Calendar, birth time.Time) (domain.BirthSolarTerm, error) {
	prev, err := cal.NearestSolarTerm(birth, false)
	if err != nil {
		return domain.BirthSolarTerm{}, fmt.Errorf("previous solar term: %w", err)
	}
	next, err := cal.NearestSolarTerm(birth, true)
	if err != nil {
		return domain.BirthSolarTerm{}, fmt.Errorf("next solar term: %w", err)
	}
	return domain.BirthSolarTerm{
		Prev:         prev.Name,
		PrevDistance: prev.Name + "后" + daysHours(birth.Sub(prev.Time)),
		Next:         next.Name,
		NextDistance: next.Name + "前" + daysHours(next.Time.Sub(birth)),
	}, nil
}

func daysHours(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	return fmt.Sprintf("%d天%d小时", hours/24, hours%24)
}

func dayMasterDisplay(s domain.Stem) string {
	return s.String() + s.Polarity().String() + s.Element().String()
}
