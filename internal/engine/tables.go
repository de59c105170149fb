package engine

import "github.com/jimmydengpeng/BaziMiao/internal/domain"

// naYinNames has one entry per consecutive pair of the 60 cycle
// (甲子乙丑 海中金, 丙寅丁卯 炉中火, ...).
var naYinNames = [30]string{
	"海中金", "炉中火", "大林木", "路旁土", "剑锋金",
	"山头火", "涧下水", "城头土", "白蜡金", "杨柳木",
	"泉中水", "屋上土", "霹雳火", "松柏木", "长流水",
	"沙中金", "山下火", "平地木", "壁上土", "金箔金",
	"覆灯火", "天河水", "大驿土", "钗钏金", "桑柘木",
	"大溪水", "沙中土", "天上火", "石榴木", "大海水",
}

var naYinTraits = map[string]string{
	"海中金": "藏于深海，宝而不露，需待时机",
	"炉中火": "炉中烈焰，需木生助方能成器",
	"大林木": "参天大树，枝繁叶茂，喜土培根",
	"路旁土": "道路之土，承载万物，平实厚重",
	"剑锋金": "百炼成锋，刚健锐利，喜水淬砺",
	"山头火": "野火燎原，光明外显，难以持久",
	"涧下水": "山涧清流，清澈灵动，细水长流",
	"城头土": "城墙之土，坚固可守，护卫一方",
	"白蜡金": "金质未纯，需火炼方成器用",
	"杨柳木": "柔枝随风，性情温和，适应力强",
	"泉中水": "泉源不竭，清润滋养，取之不尽",
	"屋上土": "屋瓦之土，遮风挡雨，成就家业",
	"霹雳火": "雷电之火，迅猛刚烈，声势惊人",
	"松柏木": "岁寒不凋，坚贞挺拔，经霜愈茂",
	"长流水": "江河长流，源远流长，不息不止",
	"沙中金": "沙里藏金，需淘洗方显光芒",
	"山下火": "夕照山下，余晖温和，光而不烈",
	"平地木": "平原草木，生机勃勃，需雨露滋润",
	"壁上土": "墙壁之土，依附而立，守成有余",
	"金箔金": "金薄如纸，华美精致，宜于装饰",
	"覆灯火": "灯下之火，照亮一室，宜于夜明",
	"天河水": "天降甘霖，润泽万物，恩惠普施",
	"大驿土": "通衢大道，四通八达，利于远行",
	"钗钏金": "首饰之金，精巧美观，宜于佩戴",
	"桑柘木": "桑柘之木，养蚕织丝，勤勉务实",
	"大溪水": "溪流奔涌，活泼灵动，归于江海",
	"沙中土": "沙土松软，宜于耕种，需水调和",
	"天上火": "太阳之火，普照大地，光明正大",
	"石榴木": "石榴结子，花果繁盛，性情刚烈",
	"大海水": "汪洋大海，包容万象，深不可测",
}

// changShengStart is the branch where each stem's 长生 stage sits. Yang stems
// count forward from it, yin stems backward.
var changShengStart = [domain.NumStems]domain.Branch{
	11, // 甲: 亥
	6,  // 乙: 午
	2,  // 丙: 寅
	9,  // 丁: 酉
	2,  // 戊: 寅
	9,  // 己: 酉
	5,  // 庚: 巳
	0,  // 辛: 子
	8,  // 壬: 申
	3,  // 癸: 卯
}

// stemPair is an unordered (or, for domination, ordered) pair of stems.
type stemPair struct{ a, b domain.Stem }

// branchPair is a pair of branches.
type branchPair struct{ a, b domain.Branch }

var stemCombinations = []struct {
	pair    stemPair
	element domain.Element
}{
	{stemPair{0, 5}, domain.Earth}, // 甲己合土
	{stemPair{1, 6}, domain.Metal}, // 乙庚合金
	{stemPair{2, 7}, domain.Water}, // 丙辛合水
	{stemPair{3, 8}, domain.Wood},  // 丁壬合木
	{stemPair{4, 9}, domain.Fire},  // 戊癸合火
}

var stemClashes = []stemPair{
	{0, 6}, // 甲庚
	{1, 7}, // 乙辛
	{8, 2}, // 壬丙
	{9, 3}, // 癸丁
}

// Directed: the first stem dominates the second.
var stemDominations = []stemPair{
	{2, 6}, // 丙克庚
	{3, 7}, // 丁克辛
}

var branchSixCombinations = []struct {
	pair    branchPair
	element domain.Element
}{
	{branchPair{0, 1}, domain.Earth}, // 子丑
	{branchPair{2, 11}, domain.Wood}, // 寅亥
	{branchPair{3, 10}, domain.Fire}, // 卯戌
	{branchPair{4, 9}, domain.Metal}, // 辰酉
	{branchPair{5, 8}, domain.Water}, // 巳申
	{branchPair{6, 7}, domain.Fire},  // 午未
}

type branchTriad struct {
	members [3]domain.Branch
	element domain.Element
}

var branchTripleCombinations = []branchTriad{
	{[3]domain.Branch{8, 0, 4}, domain.Water}, // 申子辰
	{[3]domain.Branch{11, 3, 7}, domain.Wood}, // 亥卯未
	{[3]domain.Branch{2, 6, 10}, domain.Fire}, // 寅午戌
	{[3]domain.Branch{5, 9, 1}, domain.Metal}, // 巳酉丑
}

var branchTripleMeetings = []branchTriad{
	{[3]domain.Branch{2, 3, 4}, domain.Wood},   // 寅卯辰
	{[3]domain.Branch{5, 6, 7}, domain.Fire},   // 巳午未
	{[3]domain.Branch{8, 9, 10}, domain.Metal}, // 申酉戌
	{[3]domain.Branch{11, 0, 1}, domain.Water}, // 亥子丑
}

var branchClashes = []branchPair{
	{0, 6},  // 子午
	{1, 7},  // 丑未
	{2, 8},  // 寅申
	{3, 9},  // 卯酉
	{4, 10}, // 辰戌
	{5, 11}, // 巳亥
}

var branchPunishments = []struct {
	subtype string
	label   string
	pairs   []branchPair
}{
	{domain.PunishmentUngrateful, "无恩之刑", []branchPair{{2, 5}, {5, 8}, {8, 2}}},
	{domain.PunishmentBullying, "恃势之刑", []branchPair{{1, 10}, {10, 7}, {7, 1}}},
	{domain.PunishmentRude, "无礼之刑", []branchPair{{0, 3}, {3, 0}}},
}

// Branches that punish themselves when present in two slots.
var selfPunishingBranches = []domain.Branch{4, 6, 9, 11} // 辰午酉亥

var branchHarms = []branchPair{
	{0, 7},  // 子未
	{1, 6},  // 丑午
	{2, 5},  // 寅巳
	{3, 4},  // 卯辰
	{8, 11}, // 申亥
	{9, 10}, // 酉戌
}
