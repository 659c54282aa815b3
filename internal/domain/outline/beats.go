package outline

import (
	"strings"

	"github.com/forPelevin/beatcut/internal/types"
)

const (
	// Absolute floors keep adaptive shrinking away from degenerate
	// zero-length beats on very short inputs.
	floorMinBeatDuration = 3.0
	floorMaxBeatDuration = 5.0

	summaryMaxLen = 80
)

// span is a provisional beat boundary: segment texts grouped under one time
// range, before variable extraction materializes it into a Beat.
type span struct {
	start float64
	end   float64
	texts []string
}

// adaptiveDurations picks the effective min/max beat durations. Inputs long
// enough to yield minBeats at the nominal size keep the requested targets;
// shorter inputs shrink the max to totalSpan/minBeats and the min to half of
// that, floored at the absolute minima. A zero or negative span returns the
// targets unchanged so callers never divide by zero downstream.
func adaptiveDurations(totalSpan float64, minBeats int, targetMin, targetMax float64) (float64, float64) {
	if totalSpan <= 0 {
		return targetMin, targetMax
	}
	if totalSpan/targetMin >= float64(minBeats) {
		return targetMin, targetMax
	}
	adjustedMax := totalSpan / float64(minBeats)
	adjustedMin := adjustedMax * 0.5
	if adjustedMin < floorMinBeatDuration {
		adjustedMin = floorMinBeatDuration
	}
	if adjustedMax < floorMaxBeatDuration {
		adjustedMax = floorMaxBeatDuration
	}
	return adjustedMin, adjustedMax
}

// endsSentence reports whether a segment text ends with a sentence-terminal
// punctuation mark, the preferred cut point between beats.
func endsSentence(text string) bool {
	for _, suffix := range []string{"。", ".", "？", "?", "！", "!"} {
		if strings.HasSuffix(text, suffix) {
			return true
		}
	}
	return false
}

// groupSpans walks segments in order and closes a span when the accumulated
// duration reaches maxDur, or reaches minDur on a sentence boundary. Whatever
// remains after the loop becomes the final span, so the spans partition the
// segment time range exactly.
func groupSpans(segments []types.TranscriptSegment, minDur, maxDur float64) []span {
	var out []span
	cur := span{start: segments[0].Start, end: segments[0].End}
	for _, seg := range segments {
		cur.texts = append(cur.texts, seg.Text)
		cur.end = seg.End
		duration := cur.end - cur.start

		emit := duration >= maxDur
		if !emit && duration >= minDur && endsSentence(seg.Text) {
			emit = true
		}
		if emit {
			out = append(out, cur)
			cur = span{start: cur.end, end: cur.end}
		}
	}
	if len(cur.texts) > 0 {
		out = append(out, cur)
	}
	return out
}

// forceSpans re-segments by equal-duration splitting with no sentence
// preference. Used when normal grouping cannot reach the minimum beat count.
// The chunk target is recomputed from the span still ahead per beat still
// owed, and a span also closes when the segments left are only just enough
// for the beats still owed, so targetBeats is always reached (down to one
// segment per beat) regardless of how segment lengths divide the span.
func forceSpans(segments []types.TranscriptSegment, targetBeats int) []span {
	lastEnd := segments[len(segments)-1].End

	var out []span
	cur := span{start: segments[0].Start, end: segments[0].End}
	for i, seg := range segments {
		cur.texts = append(cur.texts, seg.Text)
		cur.end = seg.End

		owed := targetBeats - len(out)
		if owed <= 1 {
			continue
		}
		share := (lastEnd - cur.start) / float64(owed)
		segmentsLeft := len(segments) - i - 1
		if cur.end-cur.start >= share || segmentsLeft <= owed-1 {
			out = append(out, cur)
			cur = span{start: cur.end, end: cur.end}
		}
	}
	if len(cur.texts) > 0 {
		out = append(out, cur)
	}
	return out
}

// segmentBeats partitions segments into beats and extracts variables per
// beat. Boundary decisions happen before any extraction so a forced re-split
// never leaves stale variables or counter increments behind in the run.
func segmentBeats(r *run, segments []types.TranscriptSegment, minDur, maxDur float64, minBeats int) []types.Beat {
	if len(segments) == 0 {
		return nil
	}

	totalSpan := segments[len(segments)-1].End - segments[0].Start
	actualMin, actualMax := adaptiveDurations(totalSpan, minBeats, minDur, maxDur)

	spans := groupSpans(segments, actualMin, actualMax)
	if len(spans) < minBeats && len(segments) >= minBeats && totalSpan > 0 {
		spans = forceSpans(segments, minBeats)
	}

	beats := make([]types.Beat, 0, len(spans))
	for i, sp := range spans {
		text := strings.Join(sp.texts, " ")
		template, vars := r.extract(text, i)
		beats = append(beats, types.Beat{
			ID:           i + 1,
			Start:        sp.start,
			End:          sp.end,
			Summary:      truncate(text, summaryMaxLen),
			Template:     template,
			OriginalText: text,
			Variables:    vars,
		})
	}
	return beats
}
