package outline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/forPelevin/beatcut/internal/domain/timecode"
	"github.com/forPelevin/beatcut/internal/types"
)

// RenderReport renders the outline as a Markdown report: metadata, a beats
// table, per-section blocks with the abstracted template, a global variable
// table, and a timecode index. The output stays readable as plain text when
// Markdown markup is stripped.
func RenderReport(o types.Outline) string {
	var b strings.Builder

	b.WriteString("# 動画構成アウトライン（タイムコード付き）\n\n")

	if len(o.Metadata) > 0 {
		b.WriteString("## メタデータ\n\n")
		for _, key := range sortedKeys(o.Metadata) {
			fmt.Fprintf(&b, "- **%s**: %v\n", key, o.Metadata[key])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Beats一覧（15〜30秒単位）\n\n")
	b.WriteString("| # | タイムコード | 要約 |\n")
	b.WriteString("|---|-------------|------|\n")
	for _, beat := range o.AllBeats {
		fmt.Fprintf(&b, "| %d | [%s] - [%s] | %s |\n",
			beat.ID, timecode.Format(beat.Start), timecode.Format(beat.End), truncate(beat.Summary, 50))
	}
	b.WriteString("\n")

	b.WriteString("## セクション構成\n\n")
	for i, section := range o.Sections {
		fmt.Fprintf(&b, "### %d. [%s] %s (%s)\n\n",
			i+1, timecode.Format(section.Start), section.Name, strings.ToUpper(string(section.Type)))
		fmt.Fprintf(&b, "**時間**: %s - %s (%.1f秒)\n\n",
			timecode.Format(section.Start), timecode.Format(section.End), section.Duration())
		b.WriteString("**要約:**\n")
		fmt.Fprintf(&b, "> %s\n\n", section.Summary)

		if len(section.Beats) > 0 {
			b.WriteString("**含まれるBeats:**\n")
			for _, beat := range section.Beats {
				fmt.Fprintf(&b, "- Beat %d [%s]: %s\n",
					beat.ID, timecode.Format(beat.Start), truncate(beat.Summary, 60))
			}
			b.WriteString("\n")
		}

		b.WriteString("**抽象化テンプレート:**\n\n")
		b.WriteString("```\n")
		b.WriteString(section.Template)
		b.WriteString("\n```\n\n")

		if len(section.Variables) > 0 {
			b.WriteString("**変数:**\n")
			for _, v := range section.Variables {
				fmt.Fprintf(&b, "- `%s`: %s (%s)\n", v.Name, v.OriginalValue, v.Category)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## 全変数一覧（差し替えポイント）\n\n")
	b.WriteString("| 変数 | カテゴリ | 元の値 |\n")
	b.WriteString("|------|----------|--------|\n")
	for _, v := range o.AllVariables {
		fmt.Fprintf(&b, "| `%s` | %s | %s |\n", v.Name, v.Category, truncate(v.OriginalValue, 40))
	}
	b.WriteString("\n")

	b.WriteString("## タイムコード索引\n\n")
	for _, section := range o.Sections {
		fmt.Fprintf(&b, "- [%s] %s\n", timecode.Format(section.Start), section.Name)
	}

	return b.String()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
