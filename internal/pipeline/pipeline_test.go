package pipeline

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/forPelevin/beatcut/internal/types"
	"github.com/forPelevin/beatcut/internal/usecase"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"minimal", Config{OutputDir: "out"}, false},
		{"empty output dir", Config{}, true},
		{"min above max", Config{OutputDir: "out", MinBeatDuration: 40, MaxBeatDuration: 30}, true},
		{"explicit bounds", Config{OutputDir: "out", MinBeatDuration: 15, MaxBeatDuration: 30}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunDir_Unique(t *testing.T) {
	cfg := Config{OutputDir: "out"}
	now := time.Now()
	a := cfg.runDir("vid", now)
	b := cfg.runDir("vid", now)
	if a == b {
		t.Fatalf("run dirs must not collide: %q", a)
	}
	if !strings.HasPrefix(filepath.Base(a), "vid-") {
		t.Fatalf("run dir should carry the video id: %q", a)
	}
}

func TestWriteResearchCSVs(t *testing.T) {
	outDir := t.TempDir()
	subsN := int64(100)
	res := usecase.ResearchResult{
		Raw: []types.VideoInfo{
			{VideoID: "AAAAAAAAAAA", Title: "a", ViewCount: 1000, SubscriberCount: &subsN, Orientation: "horizontal"},
			{VideoID: "BBBBBBBBBBB", Title: "b", ViewCount: 5},
		},
		Winners: []types.VideoInfo{
			{VideoID: "AAAAAAAAAAA", Title: "a", ViewCount: 1000, SubscriberCount: &subsN, Orientation: "horizontal"},
		},
		Unknown: []types.VideoInfo{
			{VideoID: "BBBBBBBBBBB", Title: "b", ViewCount: 5},
		},
		Issues: []types.Issue{{Type: "api_error", Identifier: "CCCCCCCCCCC", Error: "boom"}},
	}

	files, err := writeResearchCSVs(outDir, "python tutorial", res, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("writeResearchCSVs: %v", err)
	}
	for _, kind := range []string{"raw", "winners", "unknown", "errors"} {
		if _, ok := files[kind]; !ok {
			t.Fatalf("missing %s file", kind)
		}
	}
	if base := filepath.Base(files["raw"]); !strings.HasPrefix(base, "python_tutorial_raw_") {
		t.Fatalf("prefix not applied: %q", base)
	}

	f, err := os.Open(files["raw"])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read raw csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "title" || records[0][5] != "subscriberCount" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][5] != "100" {
		t.Fatalf("subscriber cell = %q", records[1][5])
	}
	if records[2][5] != "Unknown" {
		t.Fatalf("nil subscriber count must read Unknown, got %q", records[2][5])
	}

	ef, err := os.Open(files["errors"])
	if err != nil {
		t.Fatal(err)
	}
	defer ef.Close()
	errRecords, err := csv.NewReader(ef).ReadAll()
	if err != nil {
		t.Fatalf("read errors csv: %v", err)
	}
	if len(errRecords) != 2 || errRecords[1][0] != "api_error" || errRecords[1][1] != "CCCCCCCCCCC" {
		t.Fatalf("unexpected errors csv: %v", errRecords)
	}
}

func TestRunAbstract(t *testing.T) {
	cfg := Config{OutputDir: t.TempDir()}
	transcript := "皆さん、こんにちは！\n\n多くの人が困っています。\n\nチャンネル登録お願いします！"

	files, err := RunAbstract(context.Background(), cfg, transcript)
	if err != nil {
		t.Fatalf("RunAbstract: %v", err)
	}
	for _, kind := range []string{"json", "md"} {
		path, ok := files[kind]
		if !ok {
			t.Fatalf("missing %s artifact", kind)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", kind, err)
		}
		if len(b) == 0 {
			t.Fatalf("empty %s artifact", kind)
		}
	}
	md, _ := os.ReadFile(files["md"])
	if !strings.Contains(string(md), "# Abstracted Script Template") {
		t.Fatalf("markdown missing title:\n%s", md)
	}
}

func TestRunAbstract_EmptyTranscript(t *testing.T) {
	cfg := Config{OutputDir: t.TempDir()}
	if _, err := RunAbstract(context.Background(), cfg, "   \n  "); err == nil {
		t.Fatalf("expected error for empty transcript")
	}
}

func TestSanitizePrefix(t *testing.T) {
	if got := sanitizePrefix("python tutorial"); got != "python_tutorial" {
		t.Fatalf("sanitizePrefix = %q", got)
	}
	long := strings.Repeat("a", 40)
	if got := sanitizePrefix(long); len(got) != 20 {
		t.Fatalf("expected 20 chars, got %d", len(got))
	}
}
