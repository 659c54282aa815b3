package outline

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/forPelevin/beatcut/internal/types"
)

// calibrationSegments is the six-segment Japanese transcript used to pin the
// end-to-end behavior: greeting, problem, claim, example, summary, CTA.
func calibrationSegments() []types.TranscriptSegment {
	return []types.TranscriptSegment{
		{ID: 1, Start: 0, End: 15, Text: "皆さん、こんにちは！今日は100万円稼ぐ方法をお伝えします。"},
		{ID: 2, Start: 15, End: 30, Text: "多くの人がお金の問題で困っています。なぜ稼げないのでしょうか。"},
		{ID: 3, Start: 30, End: 45, Text: "実は、田中さんが教えてくれた秘密の方法があります。"},
		{ID: 4, Start: 45, End: 60, Text: "例えば、株式会社ABCと提携すると、東京で成功できます。"},
		{ID: 5, Start: 60, End: 75, Text: "まとめると、この3つのステップを実践してください。"},
		{ID: 6, Start: 75, End: 90, Text: "チャンネル登録といいねをお願いします！概要欄にリンクがあります。"},
	}
}

func TestGenerate_CalibrationTranscript(t *testing.T) {
	o := Generate(calibrationSegments(), "test123", Options{})

	if o.VideoID != "test123" {
		t.Fatalf("video id = %q", o.VideoID)
	}
	if len(o.AllBeats) < 3 {
		t.Fatalf("expected >= 3 beats, got %d", len(o.AllBeats))
	}
	if len(o.Sections) == 0 {
		t.Fatalf("expected sections")
	}
	if got := o.Sections[0].Type; got != types.SectionHook {
		t.Fatalf("first section = %v, want hook", got)
	}
	if got := o.Sections[len(o.Sections)-1].Type; got != types.SectionCTA {
		t.Fatalf("last section = %v, want cta", got)
	}

	foundNumber := false
	for _, v := range o.AllVariables {
		if v.Category == "number" {
			foundNumber = true
		}
	}
	if !foundNumber {
		t.Fatalf("expected at least one number variable, got %+v", o.AllVariables)
	}

	if o.Metadata["total_duration"] != "90.0秒" {
		t.Fatalf("total_duration = %v", o.Metadata["total_duration"])
	}
	if o.Metadata["beat_count"] != len(o.AllBeats) {
		t.Fatalf("beat_count metadata out of sync")
	}
}

func TestGenerate_EmptyInput(t *testing.T) {
	o := Generate(nil, "empty", Options{})

	if len(o.Sections) != 0 || len(o.AllBeats) != 0 || len(o.AllVariables) != 0 {
		t.Fatalf("expected empty outline, got %d sections, %d beats, %d variables",
			len(o.Sections), len(o.AllBeats), len(o.AllVariables))
	}
	if _, ok := o.Metadata["error"]; !ok {
		t.Fatalf("expected error marker in metadata, got %v", o.Metadata)
	}
}

func TestGenerate_SectionContiguity(t *testing.T) {
	o := Generate(calibrationSegments(), "contig", Options{})

	var flattened []types.Beat
	for _, s := range o.Sections {
		flattened = append(flattened, s.Beats...)
	}
	if len(flattened) != len(o.AllBeats) {
		t.Fatalf("sections flatten to %d beats, all_beats has %d", len(flattened), len(o.AllBeats))
	}
	for i := range flattened {
		if flattened[i].ID != o.AllBeats[i].ID {
			t.Fatalf("beat order mismatch at %d", i)
		}
	}
}

func TestGenerate_VariableNamesUnique(t *testing.T) {
	o := Generate(calibrationSegments(), "uniq", Options{})

	seen := map[string]bool{}
	for _, v := range o.AllVariables {
		if seen[v.Name] {
			t.Fatalf("duplicate variable name %q", v.Name)
		}
		seen[v.Name] = true
	}
}

// Runs are isolated: a second generation starts its counters over, so the
// first placeholder is the bare template again.
func TestGenerate_RunsAreIsolated(t *testing.T) {
	first := Generate(calibrationSegments(), "a", Options{})
	second := Generate(calibrationSegments(), "b", Options{})

	if len(first.AllVariables) != len(second.AllVariables) {
		t.Fatalf("runs diverged: %d vs %d variables", len(first.AllVariables), len(second.AllVariables))
	}
	for i := range first.AllVariables {
		if first.AllVariables[i].Name != second.AllVariables[i].Name {
			t.Fatalf("counter leaked across runs: %q vs %q",
				first.AllVariables[i].Name, second.AllVariables[i].Name)
		}
	}
}

func TestGenerate_ShortInputStillSegments(t *testing.T) {
	segments := []types.TranscriptSegment{
		{ID: 1, Start: 0, End: 4, Text: "こんにちは、今日の話です。"},
		{ID: 2, Start: 4, End: 8, Text: "問題はこれです。"},
		{ID: 3, Start: 8, End: 12, Text: "チャンネル登録お願いします。"},
	}
	o := Generate(segments, "short", Options{})
	if len(o.AllBeats) < 3 {
		t.Fatalf("expected >= 3 beats for a 12s input with 3 segments, got %d", len(o.AllBeats))
	}
}

func TestBuildDocument_StableFields(t *testing.T) {
	o := Generate(calibrationSegments(), "doc123", Options{})
	doc := BuildDocument(o)

	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	payload := string(b)
	for _, field := range []string{
		`"video_id":"doc123"`, `"timecode_start"`, `"timecode_end"`, `"beat_ids"`,
		`"all_variables"`, `"original_value"`, `"section_index"`, `"template"`,
	} {
		if !strings.Contains(payload, field) {
			t.Fatalf("document JSON missing %s:\n%s", field, payload)
		}
	}

	if len(doc.Beats) != len(o.AllBeats) {
		t.Fatalf("document has %d beats, outline has %d", len(doc.Beats), len(o.AllBeats))
	}
	var sectionBeatIDs int
	for _, s := range doc.Sections {
		sectionBeatIDs += len(s.BeatIDs)
	}
	if sectionBeatIDs != len(doc.Beats) {
		t.Fatalf("section beat_ids cover %d beats, want %d", sectionBeatIDs, len(doc.Beats))
	}
}

func TestBuildDocument_EmptyOutlineMarshalsToArrays(t *testing.T) {
	doc := BuildDocument(Generate(nil, "none", Options{}))
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "null") {
		t.Fatalf("empty outline should serialize lists as [], got:\n%s", b)
	}
}

func TestRenderReport_Contents(t *testing.T) {
	o := Generate(calibrationSegments(), "report123", Options{})
	md := RenderReport(o)

	for _, want := range []string{
		"# 動画構成アウトライン（タイムコード付き）",
		"## メタデータ",
		"## Beats一覧（15〜30秒単位）",
		"## セクション構成",
		"## 全変数一覧（差し替えポイント）",
		"## タイムコード索引",
		"[00:00]",
		"HOOK",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q:\n%s", want, md)
		}
	}
}
