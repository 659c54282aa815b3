// Package pipeline wires adapters to the usecase layer and owns the on-disk
// layout of run artifacts.
package pipeline

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forPelevin/beatcut/internal/domain/outline"
	"github.com/forPelevin/beatcut/internal/ports"
	"github.com/forPelevin/beatcut/internal/ports/adapters/whispercli"
	"github.com/forPelevin/beatcut/internal/ports/adapters/youtubeapi"
	"github.com/forPelevin/beatcut/internal/ports/adapters/ytdlp"
	"github.com/forPelevin/beatcut/internal/types"
	"github.com/forPelevin/beatcut/internal/usecase"
)

// stampLayout is the timestamp embedded in artifact file names.
const stampLayout = "20060102_150405"

type Config struct {
	OutputDir string
	CacheDir  string

	YtDlpPath    string
	WhisperPath  string
	WhisperModel string
	Language     string

	MinBeatDuration float64
	MaxBeatDuration float64
	MinBeats        int

	YouTubeAPIKey  string
	YouTubeBaseURL string
	ViewMultiplier float64

	Logger *zap.Logger
}

func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output dir is empty")
	}
	if c.MinBeatDuration < 0 || c.MaxBeatDuration < 0 {
		return fmt.Errorf("beat durations must be >= 0")
	}
	if c.MinBeatDuration > 0 && c.MaxBeatDuration > 0 && c.MinBeatDuration > c.MaxBeatDuration {
		return fmt.Errorf("min beat duration must be <= max beat duration")
	}
	return nil
}

func (c Config) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

func (c Config) logf() func(string, ...any) {
	sugar := c.logger().Sugar()
	return func(format string, args ...any) { sugar.Infof(format, args...) }
}

func (c Config) outlineOptions() outline.Options {
	return outline.Options{
		MinBeatDuration: c.MinBeatDuration,
		MaxBeatDuration: c.MaxBeatDuration,
		MinBeats:        c.MinBeats,
	}
}

func (c Config) deps() usecase.Deps {
	return usecase.Deps{
		Search: youtubeapi.New(c.YouTubeAPIKey, c.YouTubeBaseURL),
		Audio:  ytdlp.New(c.YtDlpPath),
		ASR:    whispercli.New(c.WhisperPath, c.WhisperModel),
	}
}

// runDir builds a collision-free directory for one run's artifacts.
func (c Config) runDir(name string, now time.Time) string {
	ts := now.UTC().Format("20060102-150405Z")
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return filepath.Join(c.OutputDir, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

// RunOutline derives the outline for one video and writes its artifacts under
// a fresh run directory. Returns the run directory path.
func RunOutline(ctx context.Context, cfg Config, videoID string) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	log := cfg.logger()

	runDir := cfg.runDir(videoID, time.Now())
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}
	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = ".cache"
	}
	cacheDir = filepath.Join(cacheDir, "audio")
	log.Info("outline run started",
		zap.String("video_id", videoID),
		zap.String("run_dir", runDir))

	uc := usecase.New(cfg.deps())
	res, err := uc.Outline(ctx, usecase.OutlineInput{
		VideoID:  videoID,
		Language: cfg.Language,
		CacheDir: cacheDir,
		OutDir:   runDir,
		Stamp:    time.Now().Format(stampLayout),
		Opts:     cfg.outlineOptions(),
		Logf:     cfg.logf(),
	})
	if err != nil {
		return "", err
	}

	log.Info("outline run finished",
		zap.Int("beats", len(res.Outline.AllBeats)),
		zap.Int("sections", len(res.Outline.Sections)),
		zap.Int("variables", len(res.Outline.AllVariables)),
		zap.Int("artifacts", len(res.Files)))
	return runDir, nil
}

// ResearchJob selects the research mode: keyword search when Keyword is set,
// direct lookup when VideoIDs are given.
type ResearchJob struct {
	Keyword  string
	VideoIDs []string

	MaxResults        int
	PublishedAfter    string
	PublishedBefore   string
	RegionCode        string
	RelevanceLanguage string

	// Prefix for the CSV file names, e.g. the keyword or "benchmark".
	Prefix string
}

// RunResearch executes a search or benchmark job and writes the four CSV
// buckets into the output dir. Returns the written file paths by kind.
func RunResearch(ctx context.Context, cfg Config, job ResearchJob) (map[string]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log := cfg.logger()

	uc := usecase.New(cfg.deps())
	res, err := uc.Research(ctx, usecase.ResearchInput{
		VideoIDs: job.VideoIDs,
		Params: ports.SearchParams{
			Keyword:           job.Keyword,
			MaxResults:        job.MaxResults,
			PublishedAfter:    job.PublishedAfter,
			PublishedBefore:   job.PublishedBefore,
			RegionCode:        job.RegionCode,
			RelevanceLanguage: job.RelevanceLanguage,
		},
		ViewMultiplier: cfg.ViewMultiplier,
		Logf:           cfg.logf(),
	})
	if err != nil {
		return nil, err
	}

	files, err := writeResearchCSVs(cfg.OutputDir, job.Prefix, res, time.Now())
	if err != nil {
		return nil, err
	}
	log.Info("research finished",
		zap.Int("raw", len(res.Raw)),
		zap.Int("winners", len(res.Winners)),
		zap.Int("unknown", len(res.Unknown)),
		zap.Int("issues", len(res.Issues)))
	return files, nil
}

// RunAbstract runs the paragraph-level abstraction over raw transcript text
// and writes script_<ts>.json and .md. Returns the written paths by kind.
func RunAbstract(ctx context.Context, cfg Config, transcript string) (map[string]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, errors.New("transcript is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := cfg.logger()

	s := outline.AbstractText(transcript)
	log.Info("abstraction finished",
		zap.Int("sections", len(s.Sections)),
		zap.Int("variables", len(s.Variables)))

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}
	stamp := time.Now().Format(stampLayout)
	files := map[string]string{}

	doc := outline.BuildScriptDocument(s)
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal script: %w", err)
	}
	jsonPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("script_%s.json", stamp))
	if err := os.WriteFile(jsonPath, b, 0o644); err != nil {
		return nil, err
	}
	files["json"] = jsonPath

	mdPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("script_%s.md", stamp))
	if err := os.WriteFile(mdPath, []byte(outline.RenderScriptReport(s)), 0o644); err != nil {
		return nil, err
	}
	files["md"] = mdPath

	return files, nil
}

var videoColumns = []string{
	"title", "description", "url", "viewCount", "channelTitle",
	"subscriberCount", "orientation", "thumbnailUrl", "publishedAt",
	"videoId", "channelId",
}

var issueColumns = []string{"type", "identifier", "error", "timestamp"}

func writeResearchCSVs(outDir, prefix string, res usecase.ResearchResult, now time.Time) (map[string]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	stamp := now.Format(stampLayout)
	if prefix != "" {
		prefix = sanitizePrefix(prefix) + "_"
	}

	files := map[string]string{}
	buckets := []struct {
		kind   string
		videos []types.VideoInfo
	}{
		{"raw", res.Raw},
		{"winners", res.Winners},
		{"unknown", res.Unknown},
	}
	for _, b := range buckets {
		path := filepath.Join(outDir, fmt.Sprintf("%s%s_%s.csv", prefix, b.kind, stamp))
		if err := writeCSV(path, videoColumns, videoRows(b.videos)); err != nil {
			return nil, err
		}
		files[b.kind] = path
	}

	issueRows := make([][]string, 0, len(res.Issues))
	ts := now.Format(time.RFC3339)
	for _, issue := range res.Issues {
		issueRows = append(issueRows, []string{issue.Type, issue.Identifier, issue.Error, ts})
	}
	errorsPath := filepath.Join(outDir, fmt.Sprintf("%serrors_%s.csv", prefix, stamp))
	if err := writeCSV(errorsPath, issueColumns, issueRows); err != nil {
		return nil, err
	}
	files["errors"] = errorsPath

	return files, nil
}

func videoRows(videos []types.VideoInfo) [][]string {
	rows := make([][]string, 0, len(videos))
	for _, v := range videos {
		rows = append(rows, []string{
			v.Title,
			v.Description,
			v.URL,
			strconv.FormatInt(v.ViewCount, 10),
			v.ChannelTitle,
			subscriberCell(v.SubscriberCount),
			v.Orientation,
			v.ThumbnailURL,
			v.PublishedAt,
			v.VideoID,
			v.ChannelID,
		})
	}
	return rows
}

func writeCSV(path string, columns []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func sanitizePrefix(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "_")
	if len(s) > 20 {
		s = s[:20]
	}
	return s
}

func subscriberCell(n *int64) string {
	if n == nil {
		return "Unknown"
	}
	return strconv.FormatInt(*n, 10)
}

// ensure adapters implement ports
var _ ports.Searcher = (*youtubeapi.Adapter)(nil)
var _ ports.AudioDownloader = (*ytdlp.Adapter)(nil)
var _ ports.ASR = (*whispercli.Adapter)(nil)
