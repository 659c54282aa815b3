package outline

import (
	"regexp"

	"github.com/forPelevin/beatcut/internal/types"
)

// sectionRule binds one rhetorical category to its detection patterns.
// Rules are evaluated in declared order and the first category with any
// matching pattern wins, so the order of sectionRules is part of the
// observable behavior and must not be reshuffled.
type sectionRule struct {
	Type     types.SectionType
	patterns []*regexp.Regexp
}

var sectionRules = []sectionRule{
	{types.SectionHook, []*regexp.Regexp{
		regexp.MustCompile(`^(皆さん|みなさん|こんにちは|今日は|ねえ|ちょっと待って)`),
		regexp.MustCompile(`(知ってました\?|信じられない|衝撃|驚き|実は)`),
		regexp.MustCompile(`(?i)^(Hey|Hi|Hello|Did you know|What if)`),
	}},
	{types.SectionProblem, []*regexp.Regexp{
		regexp.MustCompile(`(困って|悩んで|問題|課題|大変|辛い|苦しい)`),
		regexp.MustCompile(`(なぜ.+できない|どうして.+ない)`),
		regexp.MustCompile(`(?i)(struggle|problem|issue|challenge|difficult)`),
	}},
	{types.SectionClaim, []*regexp.Regexp{
		regexp.MustCompile(`(実は|実際|本当は|秘密|コツ|方法)`),
		regexp.MustCompile(`(解決|答え|ポイント|鍵)`),
		regexp.MustCompile(`(?i)(the secret|the key|the answer|actually|in fact)`),
	}},
	{types.SectionReason, []*regexp.Regexp{
		regexp.MustCompile(`(なぜなら|理由|だから|というのも)`),
		regexp.MustCompile(`(?i)(because|reason|that's why|since)`),
	}},
	{types.SectionSteps, []*regexp.Regexp{
		regexp.MustCompile(`(ステップ|手順|やり方|方法)`),
		regexp.MustCompile(`(まず|次に|そして|最後に)`),
		regexp.MustCompile(`(?i)(step|first|then|next|finally)`),
	}},
	{types.SectionProof, []*regexp.Regexp{
		regexp.MustCompile(`(証拠|データ|結果|実績|成果)`),
		regexp.MustCompile(`(?i)(research|study|data|results|proof)`),
	}},
	{types.SectionExample, []*regexp.Regexp{
		regexp.MustCompile(`(例えば|たとえば|具体的に|実際に)`),
		regexp.MustCompile(`(私の場合|私は|僕は|経験)`),
		regexp.MustCompile(`(?i)(for example|for instance|in my case|I personally)`),
	}},
	{types.SectionSummary, []*regexp.Regexp{
		regexp.MustCompile(`(まとめ|要約|結論|つまり|要するに)`),
		regexp.MustCompile(`(?i)(in summary|to summarize|in conclusion|so basically)`),
	}},
	{types.SectionCTA, []*regexp.Regexp{
		regexp.MustCompile(`(チャンネル登録|いいね|コメント|シェア|フォロー)`),
		regexp.MustCompile(`(リンク|概要欄|説明欄|詳細)`),
		regexp.MustCompile(`(?i)(subscribe|like|comment|share|follow|link|description)`),
	}},
}

// variableRule maps an entity pattern to its category and placeholder
// template. Rules apply in declared order; earlier rules get first claim on a
// literal substring.
type variableRule struct {
	re       *regexp.Regexp
	category string
	template string
}

var variableRules = []variableRule{
	// Units may stack (万円, 億円), so the unit group repeats.
	{regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d+)?)\s*(円|ドル|万|億|%|パーセント|人|回|日|週間|ヶ月|年|kg|km|m|個|本|件)+`), "number", "{NUMBER}"},
	{regexp.MustCompile(`(20\d{2}年|19\d{2}年)`), "date", "{YEAR}"},
	{regexp.MustCompile(`([一-龯]{2,4})(さん|氏|先生|社長|さま)`), "who", "{WHO}"},
	{regexp.MustCompile(`(株式会社[一-龯a-zA-Z]+|[一-龯a-zA-Z]+株式会社)`), "brand", "{BRAND}"},
	{regexp.MustCompile(`「([^」]+)」`), "brand", "{PRODUCT}"},
	{regexp.MustCompile(`(東京|大阪|名古屋|福岡|北海道|沖縄|[一-龯]{2,4}県|[一-龯]{2,4}市)`), "place", "{PLACE}"},
	{regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\b`), "who", "{WHO}"},
	{regexp.MustCompile(`(ステップ\d+|第\d+に|まず|次に|最後に|\d+つ目)`), "steps", "{STEP}"},
}

// sectionDisplayNames are the fixed display labels used for section headers.
var sectionDisplayNames = map[types.SectionType]string{
	types.SectionHook:       "オープニング（フック）",
	types.SectionProblem:    "問題提起",
	types.SectionClaim:      "主張・解決策",
	types.SectionReason:     "理由・根拠",
	types.SectionSteps:      "手順・ステップ",
	types.SectionProof:      "証拠・実績",
	types.SectionExample:    "具体例・体験談",
	types.SectionSummary:    "まとめ",
	types.SectionCTA:        "行動喚起（CTA）",
	types.SectionTransition: "つなぎ",
	types.SectionOther:      "その他",
}
