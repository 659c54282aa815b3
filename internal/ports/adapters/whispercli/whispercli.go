// Package whispercli transcribes audio through the whisper command line
// tool, reading the JSON file it writes next to the audio.
package whispercli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/forPelevin/beatcut/internal/types"
)

type Adapter struct {
	bin   string
	model string
}

func New(binPath, model string) *Adapter {
	if binPath == "" {
		binPath = "whisper"
	}
	if model == "" {
		model = "base"
	}
	return &Adapter{bin: binPath, model: model}
}

// whisper --output_format json writes <audio base name>.json into the output
// directory.
type whisperOutput struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		ID    int     `json:"id"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (a *Adapter) Transcribe(ctx context.Context, audioPath, videoID, language string) (types.Transcript, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return types.Transcript{}, fmt.Errorf("audio file: %w", err)
	}

	outDir := filepath.Dir(audioPath)
	args := []string{
		audioPath,
		"--model", a.model,
		"--output_format", "json",
		"--output_dir", outDir,
		"--verbose", "False",
	}
	if language != "" {
		args = append(args, "--language", language)
	}

	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.Transcript{}, fmt.Errorf("whisper %s: %w\n%s", videoID, err, strings.TrimSpace(string(b)))
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(outDir, base+".json")
	return ParseOutputFile(jsonPath, videoID)
}

// ParseOutputFile decodes a whisper JSON result into a Transcript. Segment
// IDs are renumbered from 1 and texts trimmed.
func ParseOutputFile(path, videoID string) (types.Transcript, error) {
	jb, err := os.ReadFile(path)
	if err != nil {
		return types.Transcript{}, fmt.Errorf("read whisper output: %w", err)
	}

	var out whisperOutput
	if err := json.Unmarshal(jb, &out); err != nil {
		return types.Transcript{}, fmt.Errorf("decode whisper output %s: %w", path, err)
	}

	tr := types.Transcript{
		VideoID:  videoID,
		Language: out.Language,
		FullText: strings.TrimSpace(out.Text),
	}
	for i, seg := range out.Segments {
		tr.Segments = append(tr.Segments, types.TranscriptSegment{
			ID:    i + 1,
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	if n := len(tr.Segments); n > 0 {
		tr.Duration = tr.Segments[n-1].End
	}
	return tr, nil
}
