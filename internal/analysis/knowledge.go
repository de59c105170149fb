package analysis

import "github.com/jimmydengpeng/BaziMiao/internal/domain"

// KnowledgeChunk is a static reference snippet attached to an analysis.
type KnowledgeChunk struct {
	Source  string `json:"source"`
	Topic   string `json:"topic"`
	Summary string `json:"summary"`
}

// Knowledge topics.
const (
	TopicStrong       = "身强用神取向"
	TopicWeak         = "身弱用神取向"
	TopicWoodFire     = "木火事业"
	TopicMetalWater   = "金水风险"
	FocusHealth       = "健康"
	FocusRelationship = "情感"
)

var knowledgeBase = []KnowledgeChunk{
	{Source: "内置模板", Topic: TopicStrong, Summary: "身强格局宜取泄秀与制衡，优先用食伤与财官，保持行动与输出。"},
	{Source: "内置模板", Topic: TopicWeak, Summary: "身弱格局宜取比劫与印星，先稳住资源与支持，再谋求外部拓展。"},
	{Source: "内置模板", Topic: TopicWoodFire, Summary: "木火为用时，偏向教育、创意、产品、互联网、文娱、技术创新方向。"},
	{Source: "内置模板", Topic: TopicMetalWater, Summary: "金水为忌时，留意情绪波动与呼吸、肾水相关健康，避免过度悲观与内耗。"},
}

// RetrieveKnowledge returns the chunks matching the pattern tags, the
// favourable elements and the caller's focus areas, in knowledge-base order.
func RetrieveKnowledge(tags []string, favourable []domain.Element, focus []string) []KnowledgeChunk {
	topics := map[string]bool{}
	for _, t := range tags {
		switch t {
		case PatternStrong:
			topics[TopicStrong] = true
		case PatternWeak:
			topics[TopicWeak] = true
		}
	}
	var metalWater bool
	for _, e := range favourable {
		switch e {
		case domain.Wood, domain.Fire:
			topics[TopicWoodFire] = true
		case domain.Metal, domain.Water:
			metalWater = true
		}
	}
	if metalWater && (contains(focus, FocusHealth) || contains(focus, FocusRelationship)) {
		topics[TopicMetalWater] = true
	}

	out := []KnowledgeChunk{}
	for _, c := range knowledgeBase {
		if topics[c.Topic] {
			out = append(out, c)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
