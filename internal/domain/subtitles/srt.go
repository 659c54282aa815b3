// Package subtitles renders transcript segments in the SRT subtitle format.
package subtitles

import (
	"fmt"
	"strings"

	"github.com/forPelevin/beatcut/internal/domain/timecode"
	"github.com/forPelevin/beatcut/internal/types"
)

// RenderSRT renders the raw (non-abstracted) transcript segments as an SRT
// document: sequential index, timing line, text, blank line between entries.
func RenderSRT(segments []types.TranscriptSegment) string {
	var b strings.Builder
	for i, seg := range segments {
		b.WriteString(Entry(i+1, seg))
		b.WriteString("\n")
	}
	return b.String()
}

// Entry renders a single SRT block for one segment.
func Entry(index int, seg types.TranscriptSegment) string {
	return fmt.Sprintf("%d\n%s --> %s\n%s\n",
		index, timecode.FormatSRT(seg.Start), timecode.FormatSRT(seg.End), seg.Text)
}
