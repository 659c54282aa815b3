// Package yt parses YouTube video identifiers out of user-supplied input.
package yt

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	plainVideoID = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	pathVideoID  = regexp.MustCompile(`^/(?:shorts|embed)/([a-zA-Z0-9_-]{11})`)
	idSeparator  = regexp.MustCompile(`[,\n]+`)
)

// ExtractVideoID pulls the 11-character video ID out of a URL, or returns the
// input itself when it already is a plain ID. Returns "" when nothing matches.
//
// Supported forms: watch?v=, youtu.be/, /shorts/, /embed/, plain ID.
func ExtractVideoID(urlOrID string) string {
	urlOrID = strings.TrimSpace(urlOrID)
	if plainVideoID.MatchString(urlOrID) {
		return urlOrID
	}

	u, err := url.Parse(urlOrID)
	if err != nil {
		return ""
	}

	switch u.Host {
	case "youtu.be", "www.youtu.be":
		id := strings.TrimPrefix(u.Path, "/")
		if i := strings.IndexByte(id, '/'); i >= 0 {
			id = id[:i]
		}
		if plainVideoID.MatchString(id) {
			return id
		}
	case "youtube.com", "www.youtube.com", "m.youtube.com":
		if u.Path == "/watch" {
			if v := u.Query().Get("v"); plainVideoID.MatchString(v) {
				return v
			}
			return ""
		}
		if m := pathVideoID.FindStringSubmatch(u.Path); m != nil {
			return m[1]
		}
	}
	return ""
}

// ParseVideoIDs extracts all video IDs from mixed comma or newline separated
// input. Items that do not parse are skipped.
func ParseVideoIDs(input string) []string {
	var ids []string
	for _, item := range idSeparator.Split(input, -1) {
		if id := ExtractVideoID(item); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// CoerceISODate turns a bare YYYY-MM-DD date into the RFC 3339 form the Data
// API expects. Input already carrying a time component passes through.
func CoerceISODate(date string) string {
	if strings.Contains(date, "T") {
		return date
	}
	return date + "T00:00:00Z"
}
