package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forPelevin/beatcut/internal/domain/outline"
	"github.com/forPelevin/beatcut/internal/domain/research"
	"github.com/forPelevin/beatcut/internal/domain/subtitles"
	"github.com/forPelevin/beatcut/internal/ports"
	"github.com/forPelevin/beatcut/internal/types"
	"github.com/forPelevin/beatcut/internal/yt"
)

type Deps struct {
	Search ports.Searcher
	Audio  ports.AudioDownloader
	ASR    ports.ASR
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type OutlineInput struct {
	VideoID  string
	Language string
	CacheDir string
	OutDir   string
	Stamp    string
	Opts     outline.Options
	Logf     func(format string, args ...any)
}

type OutlineResult struct {
	Outline    types.Outline
	Transcript types.Transcript

	// Files maps artifact kind (outline_json, outline_md, transcript_json,
	// transcript_txt, transcript_srt) to the written path.
	Files map[string]string
}

// Outline runs the full derivation for one video: fetch audio, transcribe,
// generate the outline, write all artifacts under OutDir.
func (u Usecase) Outline(ctx context.Context, in OutlineInput) (OutlineResult, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	logf("downloading audio for %s", in.VideoID)
	audioPath, err := u.d.Audio.Download(ctx, yt.WatchURL(in.VideoID), in.VideoID, in.CacheDir)
	if err != nil {
		return OutlineResult{}, fmt.Errorf("download audio: %w", err)
	}

	logf("transcribing %s", audioPath)
	tr, err := u.d.ASR.Transcribe(ctx, audioPath, in.VideoID, in.Language)
	if err != nil {
		return OutlineResult{}, fmt.Errorf("transcribe: %w", err)
	}
	logf("transcript ready: %d segments, %.1fs", len(tr.Segments), tr.Duration)

	o := outline.Generate(tr.Segments, in.VideoID, in.Opts)
	logf("outline: %d beats, %d sections, %d variables",
		len(o.AllBeats), len(o.Sections), len(o.AllVariables))

	files, err := writeOutlineArtifacts(in.OutDir, in.Stamp, tr, o)
	if err != nil {
		return OutlineResult{}, err
	}
	return OutlineResult{Outline: o, Transcript: tr, Files: files}, nil
}

func writeOutlineArtifacts(outDir, stamp string, tr types.Transcript, o types.Outline) (map[string]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	files := map[string]string{}

	doc := outline.BuildDocument(o)
	jb, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal outline: %w", err)
	}
	outlineJSON := filepath.Join(outDir, fmt.Sprintf("outline_%s.json", stamp))
	if err := os.WriteFile(outlineJSON, jb, 0o644); err != nil {
		return nil, err
	}
	files["outline_json"] = outlineJSON

	outlineMD := filepath.Join(outDir, fmt.Sprintf("outline_%s.md", stamp))
	if err := os.WriteFile(outlineMD, []byte(outline.RenderReport(o)), 0o644); err != nil {
		return nil, err
	}
	files["outline_md"] = outlineMD

	tb, err := json.MarshalIndent(transcriptDocument(tr), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}
	base := fmt.Sprintf("transcript_%s_%s", tr.VideoID, stamp)
	transcriptJSON := filepath.Join(outDir, base+".json")
	if err := os.WriteFile(transcriptJSON, tb, 0o644); err != nil {
		return nil, err
	}
	files["transcript_json"] = transcriptJSON

	transcriptTxt := filepath.Join(outDir, base+".txt")
	if err := os.WriteFile(transcriptTxt, []byte(tr.FullText), 0o644); err != nil {
		return nil, err
	}
	files["transcript_txt"] = transcriptTxt

	transcriptSRT := filepath.Join(outDir, base+".srt")
	if err := os.WriteFile(transcriptSRT, []byte(subtitles.RenderSRT(tr.Segments)), 0o644); err != nil {
		return nil, err
	}
	files["transcript_srt"] = transcriptSRT

	return files, nil
}

func transcriptDocument(tr types.Transcript) map[string]any {
	segments := tr.Segments
	if segments == nil {
		segments = []types.TranscriptSegment{}
	}
	return map[string]any{
		"video_id":      tr.VideoID,
		"language":      tr.Language,
		"duration":      tr.Duration,
		"segment_count": len(tr.Segments),
		"full_text":     tr.FullText,
		"segments":      segments,
	}
}

type ResearchInput struct {
	// When VideoIDs is non-empty the flow looks them up directly; otherwise
	// it keyword-searches with Params.
	VideoIDs []string
	Params   ports.SearchParams

	ViewMultiplier float64
	Logf           func(format string, args ...any)
}

type ResearchResult struct {
	Raw     []types.VideoInfo
	Winners []types.VideoInfo
	Unknown []types.VideoInfo
	Issues  []types.Issue
}

// Research fetches candidate videos and splits them by the engagement filter.
func (u Usecase) Research(ctx context.Context, in ResearchInput) (ResearchResult, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	var (
		videos []types.VideoInfo
		issues []types.Issue
		err    error
	)
	if len(in.VideoIDs) > 0 {
		logf("looking up %d videos", len(in.VideoIDs))
		videos, issues, err = u.d.Search.Lookup(ctx, in.VideoIDs)
	} else {
		logf("searching: %q", in.Params.Keyword)
		videos, issues, err = u.d.Search.Search(ctx, in.Params)
	}
	if err != nil {
		return ResearchResult{}, fmt.Errorf("research: %w", err)
	}

	winners, unknown := research.Filter(videos, in.ViewMultiplier)
	logf("research: %d raw, %d winners, %d unknown, %d issues",
		len(videos), len(winners), len(unknown), len(issues))

	return ResearchResult{Raw: videos, Winners: winners, Unknown: unknown, Issues: issues}, nil
}
