// Package outline derives a reusable script template from a timestamped
// transcript: it partitions the transcript into beats of adaptive target
// duration, classifies them into rhetorical sections, and replaces concrete
// entities with typed placeholder variables.
package outline

import (
	"fmt"
	"time"

	"github.com/forPelevin/beatcut/internal/types"
)

// Options tunes beat segmentation. Zero values fall back to the nominal
// 15-30 second beats with a minimum of 3.
type Options struct {
	MinBeatDuration float64
	MaxBeatDuration float64
	MinBeats        int
}

func (o Options) withDefaults() Options {
	if o.MinBeatDuration <= 0 {
		o.MinBeatDuration = 15.0
	}
	if o.MaxBeatDuration <= 0 {
		o.MaxBeatDuration = 30.0
	}
	if o.MinBeats <= 0 {
		o.MinBeats = 3
	}
	return o
}

// Generate builds a complete outline from transcript segments. It never
// fails: an empty segment list produces an outline with empty sections and
// an error marker in the metadata. All mutable state (variable counters,
// beat list) is scoped to this call, so concurrent generations over
// different transcripts are safe.
func Generate(segments []types.TranscriptSegment, videoID string, opts Options) types.Outline {
	opts = opts.withDefaults()
	r := newRun()

	if len(segments) == 0 {
		return types.Outline{
			VideoID:      videoID,
			Sections:     []types.Section{},
			AllBeats:     []types.Beat{},
			AllVariables: []types.Variable{},
			Metadata:     map[string]any{"error": "no segments provided"},
		}
	}

	beats := segmentBeats(r, segments, opts.MinBeatDuration, opts.MaxBeatDuration, opts.MinBeats)
	sections := aggregateSections(beats)

	totalDuration := segments[len(segments)-1].End
	metadata := map[string]any{
		"total_duration": fmt.Sprintf("%.1f秒", totalDuration),
		"beat_count":     len(beats),
		"section_count":  len(sections),
		"variable_count": len(r.variables),
		"generated_at":   time.Now().Format(time.RFC3339),
	}

	return types.Outline{
		VideoID:      videoID,
		Sections:     sections,
		AllBeats:     beats,
		AllVariables: r.variables,
		Metadata:     metadata,
	}
}
