package ports

import (
	"context"

	"github.com/forPelevin/beatcut/internal/types"
)

// SearchParams narrows a keyword search. Date filters are RFC 3339 strings.
type SearchParams struct {
	Keyword           string
	MaxResults        int
	PublishedAfter    string
	PublishedBefore   string
	RegionCode        string
	RelevanceLanguage string
}

// Searcher provides enriched video metadata. Batch-level failures are
// returned as issues next to the partial results, not as an error.
type Searcher interface {
	Search(ctx context.Context, p SearchParams) ([]types.VideoInfo, []types.Issue, error)
	Lookup(ctx context.Context, videoIDs []string) ([]types.VideoInfo, []types.Issue, error)
}

// AudioDownloader fetches a video's audio track and returns the local path.
type AudioDownloader interface {
	Download(ctx context.Context, videoURL, videoID, outDir string) (string, error)
}

// ASR turns an audio file into a timed transcript.
type ASR interface {
	Transcribe(ctx context.Context, audioPath, videoID, language string) (types.Transcript, error)
}
