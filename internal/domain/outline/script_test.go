package outline

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/forPelevin/beatcut/internal/types"
)

const calibrationTranscript = `皆さん、こんにちは！今日は特別なお話があります。

多くの人がこの問題で困っています。なかなか解決できずに悩んでいる人も多いはずです。

実は、秘密の方法があります。私は100万円をこの方法で稼ぎました。

まとめると、誰でもできるということです。

チャンネル登録といいねをお願いします！`

func TestAbstractText_Sections(t *testing.T) {
	s := AbstractText(calibrationTranscript)

	if len(s.Sections) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(s.Sections))
	}
	if s.Sections[0].Type != types.SectionHook {
		t.Fatalf("first section = %v, want hook", s.Sections[0].Type)
	}
	if s.Sections[len(s.Sections)-1].Type != types.SectionCTA {
		t.Fatalf("last section = %v, want cta", s.Sections[len(s.Sections)-1].Type)
	}
	for i, sec := range s.Sections {
		if sec.Order != i+1 {
			t.Fatalf("section order %d at position %d", sec.Order, i)
		}
	}
}

func TestAbstractText_ExtractsVariables(t *testing.T) {
	s := AbstractText(calibrationTranscript)

	if len(s.Variables) == 0 {
		t.Fatalf("expected extracted variables")
	}
	foundNumber := false
	for _, v := range s.Variables {
		if v.Category == "number" {
			foundNumber = true
		}
	}
	if !foundNumber {
		t.Fatalf("expected a number variable, got %+v", s.Variables)
	}

	var abstracted string
	for _, sec := range s.Sections {
		abstracted += sec.AbstractedContent
	}
	if !strings.Contains(abstracted, "{NUMBER}") {
		t.Fatalf("expected {NUMBER} placeholder in abstracted content")
	}
}

func TestAbstractText_DenseTextFallsBackToSentences(t *testing.T) {
	// One block with no paragraph breaks still splits into multiple units.
	dense := "こんにちは。今日の話です。問題があります。解決します。方法は簡単です。" +
		"例えば私の場合です。うまくいきました。結果が出ました。まとめです。登録お願いします。"
	s := AbstractText(dense)
	if len(s.Sections) < 2 {
		t.Fatalf("expected sentence-grouped sections, got %d", len(s.Sections))
	}
}

func TestAbstractText_PositionalOverrides(t *testing.T) {
	// Pattern-free paragraphs resolve purely by position.
	transcript := "あああ\n\nいいい\n\nううう\n\nえええ\n\nおおお"
	s := AbstractText(transcript)

	if s.Sections[0].Type != types.SectionHook {
		t.Fatalf("first = %v, want hook", s.Sections[0].Type)
	}
	if s.Sections[len(s.Sections)-1].Type != types.SectionCTA {
		t.Fatalf("last = %v, want cta", s.Sections[len(s.Sections)-1].Type)
	}
	if s.Sections[len(s.Sections)-2].Type != types.SectionSummary {
		t.Fatalf("second-to-last = %v, want summary", s.Sections[len(s.Sections)-2].Type)
	}
}

func TestBuildScriptDocument_Shape(t *testing.T) {
	doc := BuildScriptDocument(AbstractText(calibrationTranscript))

	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	payload := string(b)
	for _, field := range []string{
		`"sections"`, `"all_variables"`, `"replacement_points"`,
		`"abstracted_content"`, `"original_content"`, `"description"`,
	} {
		if !strings.Contains(payload, field) {
			t.Fatalf("script document missing %s", field)
		}
	}
	if len(doc.ReplacementPoints) != len(doc.AllVariables) {
		t.Fatalf("replacement points (%d) out of sync with variables (%d)",
			len(doc.ReplacementPoints), len(doc.AllVariables))
	}
}

func TestRenderScriptReport_Contents(t *testing.T) {
	md := RenderScriptReport(AbstractText(calibrationTranscript))

	for _, want := range []string{
		"# Abstracted Script Template",
		"## Script Structure",
		"## Variable Replacement Points",
		"## Original Transcript (Reference)",
		"Opening Hook",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("script report missing %q", want)
		}
	}
}
