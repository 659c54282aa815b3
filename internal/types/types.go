package types

// TranscriptSegment is one timed span of transcribed speech.
// Segments are time-ordered and non-overlapping as produced by the ASR step.
type TranscriptSegment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the full ASR result for one video.
type Transcript struct {
	VideoID  string              `json:"video_id"`
	Language string              `json:"language"`
	Duration float64             `json:"duration"`
	FullText string              `json:"full_text"`
	Segments []TranscriptSegment `json:"segments"`
}

// SectionType labels the rhetorical role of a beat or section.
type SectionType string

const (
	SectionHook       SectionType = "hook"
	SectionProblem    SectionType = "problem"
	SectionClaim      SectionType = "claim"
	SectionReason     SectionType = "reason"
	SectionExample    SectionType = "example"
	SectionSteps      SectionType = "steps"
	SectionProof      SectionType = "proof"
	SectionSummary    SectionType = "summary"
	SectionCTA        SectionType = "cta"
	SectionTransition SectionType = "transition"
	SectionOther      SectionType = "other"
)

// Variable is a concrete entity lifted out of the transcript and replaced by a
// placeholder so the template can be reused with different specifics.
type Variable struct {
	Name          string `json:"name"`
	OriginalValue string `json:"original_value"`
	Category      string `json:"category"`
	SectionIndex  int    `json:"section_index"`
}

// Beat is the smallest content unit of an outline, nominally 15-30 seconds.
type Beat struct {
	ID           int        `json:"id"`
	Start        float64    `json:"start"`
	End          float64    `json:"end"`
	Summary      string     `json:"summary"`
	Template     string     `json:"template"`
	OriginalText string     `json:"original_text"`
	Variables    []Variable `json:"variables"`
}

// Duration returns the beat length in seconds.
func (b Beat) Duration() float64 { return b.End - b.Start }

// Section is a contiguous run of beats sharing one rhetorical type.
type Section struct {
	Name         string      `json:"name"`
	Type         SectionType `json:"type"`
	Start        float64     `json:"start"`
	End          float64     `json:"end"`
	Summary      string      `json:"summary"`
	Template     string      `json:"template"`
	Beats        []Beat      `json:"beats"`
	Variables    []Variable  `json:"variables"`
	OriginalText string      `json:"original_text"`
}

// Duration returns the section length in seconds.
func (s Section) Duration() float64 { return s.End - s.Start }

// Outline is the complete result of one generation run. AllBeats and
// AllVariables are flattened views of what is nested in Sections.
type Outline struct {
	VideoID      string
	Sections     []Section
	AllBeats     []Beat
	AllVariables []Variable
	Metadata     map[string]any
}

// VideoInfo is an enriched search result from the video research flow.
type VideoInfo struct {
	VideoID         string `json:"videoId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	URL             string `json:"url"`
	ViewCount       int64  `json:"viewCount"`
	ChannelID       string `json:"channelId"`
	ChannelTitle    string `json:"channelTitle"`
	SubscriberCount *int64 `json:"subscriberCount"`
	Orientation     string `json:"orientation"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	PublishedAt     string `json:"publishedAt"`
	DurationSeconds int    `json:"durationSeconds"`
	ThumbnailWidth  int    `json:"thumbnailWidth"`
	ThumbnailHeight int    `json:"thumbnailHeight"`
}

// Issue records a non-fatal failure during research batches. The flow keeps
// going and reports issues alongside results instead of aborting the run.
type Issue struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
	Error      string `json:"error"`
}
