package research

import (
	"testing"

	"github.com/forPelevin/beatcut/internal/types"
)

func subs(n int64) *int64 { return &n }

func TestFilter(t *testing.T) {
	videos := []types.VideoInfo{
		{VideoID: "winner1", ViewCount: 50000, SubscriberCount: subs(10000)},
		{VideoID: "exact", ViewCount: 50000, SubscriberCount: subs(10000 * 1)},
		{VideoID: "loser", ViewCount: 49999, SubscriberCount: subs(10000)},
		{VideoID: "hidden", ViewCount: 1000000, SubscriberCount: nil},
	}
	winners, unknown := Filter(videos, 5.0)

	if len(winners) != 2 {
		t.Fatalf("expected 2 winners, got %d: %+v", len(winners), winners)
	}
	for _, w := range winners {
		if w.VideoID == "loser" || w.VideoID == "hidden" {
			t.Fatalf("unexpected winner %q", w.VideoID)
		}
	}
	if len(unknown) != 1 || unknown[0].VideoID != "hidden" {
		t.Fatalf("expected hidden video in unknown bucket, got %+v", unknown)
	}
}

func TestFilter_ZeroMultiplierFallsBackToDefault(t *testing.T) {
	videos := []types.VideoInfo{
		{VideoID: "a", ViewCount: 10, SubscriberCount: subs(10)},
	}
	winners, _ := Filter(videos, 0)
	if len(winners) != 0 {
		t.Fatalf("1x views should not win with the default 5x threshold")
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"PT12M5S", 725},
		{"PT1H30M", 5400},
		{"PT45S", 45},
		{"PT1H", 3600},
		{"PT0S", 0},
		{"", 0},
		{"garbage", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseDuration(tt.in); got != tt.want {
				t.Fatalf("ParseDuration(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestOrientation(t *testing.T) {
	tests := []struct {
		w, h int
		want string
	}{
		{1280, 720, "horizontal"},
		{720, 1280, "vertical"},
		{480, 480, "square"},
		{0, 720, "unknown"},
		{1280, 0, "unknown"},
	}
	for _, tt := range tests {
		if got := Orientation(tt.w, tt.h); got != tt.want {
			t.Fatalf("Orientation(%d, %d) = %q, want %q", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestLengthLabel(t *testing.T) {
	if got := LengthLabel(90); got != "SHORT" {
		t.Fatalf("90s = %q, want SHORT", got)
	}
	if got := LengthLabel(91); got != "LONG" {
		t.Fatalf("91s = %q, want LONG", got)
	}
}
