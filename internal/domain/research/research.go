// Package research holds the engagement filter and small parsers used by the
// video research flow (search and benchmark).
package research

import (
	"regexp"
	"strconv"

	"github.com/forPelevin/beatcut/internal/types"
)

// DefaultViewMultiplier is the winner threshold: a video wins when its view
// count is at least this many times the channel's subscriber count.
const DefaultViewMultiplier = 5.0

// shortMaxSeconds is the upper bound for the SHORT length label.
const shortMaxSeconds = 90

// Filter splits videos into winners and unknowns. A video with a hidden
// subscriber count goes to the unknown bucket; it is neither a winner nor
// filtered out. The input slice is returned untouched as the raw set.
func Filter(videos []types.VideoInfo, viewMultiplier float64) (winners, unknown []types.VideoInfo) {
	if viewMultiplier <= 0 {
		viewMultiplier = DefaultViewMultiplier
	}
	for _, v := range videos {
		switch {
		case v.SubscriberCount == nil:
			unknown = append(unknown, v)
		case float64(v.ViewCount) >= float64(*v.SubscriberCount)*viewMultiplier:
			winners = append(winners, v)
		}
	}
	return winners, unknown
}

var iso8601Duration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration converts an ISO 8601 video duration (PT1H30M5S) to seconds.
// Unparseable input yields 0.
func ParseDuration(s string) int {
	m := iso8601Duration.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	h := atoiDefault(m[1])
	min := atoiDefault(m[2])
	sec := atoiDefault(m[3])
	return h*3600 + min*60 + sec
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Orientation classifies a video by its thumbnail dimensions.
func Orientation(width, height int) string {
	switch {
	case width <= 0 || height <= 0:
		return "unknown"
	case width > height:
		return "horizontal"
	case height > width:
		return "vertical"
	default:
		return "square"
	}
}

// LengthLabel tags a video SHORT or LONG by duration.
func LengthLabel(durationSeconds int) string {
	if durationSeconds <= shortMaxSeconds {
		return "SHORT"
	}
	return "LONG"
}
