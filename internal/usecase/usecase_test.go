package usecase

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forPelevin/beatcut/internal/ports"
	"github.com/forPelevin/beatcut/internal/types"
)

type fakeDownloader struct {
	calls []string
}

func (f *fakeDownloader) Download(_ context.Context, _ string, videoID, outDir string) (string, error) {
	f.calls = append(f.calls, videoID)
	p := filepath.Join(outDir, videoID+".m4a")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(p, []byte("audio"), 0o644); err != nil {
		return "", err
	}
	return p, nil
}

type fakeASR struct {
	tr types.Transcript
}

func (f fakeASR) Transcribe(_ context.Context, _, _, _ string) (types.Transcript, error) {
	return f.tr, nil
}

type fakeSearcher struct {
	videos    []types.VideoInfo
	issues    []types.Issue
	lookupIDs []string
	searched  []string
}

func (f *fakeSearcher) Search(_ context.Context, p ports.SearchParams) ([]types.VideoInfo, []types.Issue, error) {
	f.searched = append(f.searched, p.Keyword)
	return f.videos, f.issues, nil
}

func (f *fakeSearcher) Lookup(_ context.Context, ids []string) ([]types.VideoInfo, []types.Issue, error) {
	f.lookupIDs = append(f.lookupIDs, ids...)
	return f.videos, f.issues, nil
}

func testTranscript() types.Transcript {
	return types.Transcript{
		VideoID:  "vid123",
		Language: "ja",
		Duration: 90,
		FullText: "皆さん、こんにちは！今日は100万円稼ぐ方法をお伝えします。",
		Segments: []types.TranscriptSegment{
			{ID: 1, Start: 0, End: 30, Text: "皆さん、こんにちは！今日は100万円稼ぐ方法をお伝えします。"},
			{ID: 2, Start: 30, End: 60, Text: "多くの人がお金の問題で困っています。"},
			{ID: 3, Start: 60, End: 90, Text: "チャンネル登録といいねをお願いします！"},
		},
	}
}

func TestOutline_WritesAllArtifacts(t *testing.T) {
	tmp := t.TempDir()
	dl := &fakeDownloader{}
	uc := New(Deps{Audio: dl, ASR: fakeASR{tr: testTranscript()}})

	res, err := uc.Outline(context.Background(), OutlineInput{
		VideoID:  "vid123",
		CacheDir: filepath.Join(tmp, "cache"),
		OutDir:   filepath.Join(tmp, "out"),
		Stamp:    "20240501_120000",
	})
	if err != nil {
		t.Fatalf("outline: %v", err)
	}
	if len(dl.calls) != 1 || dl.calls[0] != "vid123" {
		t.Fatalf("unexpected download calls: %v", dl.calls)
	}
	if res.Outline.VideoID != "vid123" {
		t.Fatalf("outline video id = %q", res.Outline.VideoID)
	}
	if len(res.Outline.AllBeats) == 0 {
		t.Fatalf("expected beats in generated outline")
	}

	for _, kind := range []string{
		"outline_json", "outline_md", "transcript_json", "transcript_txt", "transcript_srt",
	} {
		path, ok := res.Files[kind]
		if !ok {
			t.Fatalf("missing artifact %s", kind)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("artifact %s: %v", kind, err)
		}
	}

	b, err := os.ReadFile(res.Files["transcript_json"])
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("transcript json: %v", err)
	}
	if doc["video_id"] != "vid123" || doc["segment_count"] != float64(3) {
		t.Fatalf("unexpected transcript document: %v", doc)
	}

	srt, err := os.ReadFile(res.Files["transcript_srt"])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(srt), "1\n00:00:00,000 --> 00:00:30,000") {
		t.Fatalf("unexpected srt head:\n%s", srt)
	}
}

func TestResearch_SearchPath(t *testing.T) {
	subs := int64(10000)
	s := &fakeSearcher{
		videos: []types.VideoInfo{
			{VideoID: "win", ViewCount: 100000, SubscriberCount: &subs},
			{VideoID: "lose", ViewCount: 100, SubscriberCount: &subs},
			{VideoID: "hid", ViewCount: 5},
		},
		issues: []types.Issue{{Type: "search_error", Identifier: "kw", Error: "boom"}},
	}
	uc := New(Deps{Search: s})

	res, err := uc.Research(context.Background(), ResearchInput{
		Params:         ports.SearchParams{Keyword: "python tutorial"},
		ViewMultiplier: 5.0,
	})
	if err != nil {
		t.Fatalf("research: %v", err)
	}
	if len(s.searched) != 1 {
		t.Fatalf("expected one search call, got %v", s.searched)
	}
	if len(res.Raw) != 3 || len(res.Winners) != 1 || len(res.Unknown) != 1 {
		t.Fatalf("unexpected buckets: raw=%d winners=%d unknown=%d",
			len(res.Raw), len(res.Winners), len(res.Unknown))
	}
	if res.Winners[0].VideoID != "win" {
		t.Fatalf("winner = %q", res.Winners[0].VideoID)
	}
	if len(res.Issues) != 1 {
		t.Fatalf("issues must pass through, got %+v", res.Issues)
	}
}

func TestResearch_LookupPath(t *testing.T) {
	s := &fakeSearcher{}
	uc := New(Deps{Search: s})

	if _, err := uc.Research(context.Background(), ResearchInput{
		VideoIDs: []string{"AAAAAAAAAAA", "BBBBBBBBBBB"},
	}); err != nil {
		t.Fatalf("research: %v", err)
	}
	if len(s.lookupIDs) != 2 {
		t.Fatalf("expected lookup by ids, got %v (searches: %v)", s.lookupIDs, s.searched)
	}
	if len(s.searched) != 0 {
		t.Fatalf("keyword search must not run when ids are given")
	}
}
