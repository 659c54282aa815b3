// Package ytdlp downloads video audio through the yt-dlp executable.
package ytdlp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Audio container candidates, in the order yt-dlp is likely to produce them.
var audioExtensions = []string{"m4a", "mp3", "opus", "webm", "wav"}

type Adapter struct {
	bin string
}

func New(binPath string) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	return &Adapter{bin: binPath}
}

// CheckInstalled verifies the binary responds to --version.
func (a *Adapter) CheckInstalled(ctx context.Context) (string, error) {
	b, err := exec.CommandContext(ctx, a.bin, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("yt-dlp not available at %q: %w", a.bin, err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Download extracts the best audio track into outDir and returns the path of
// the produced file.
func (a *Adapter) Download(ctx context.Context, videoURL, videoID, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	outTemplate := filepath.Join(outDir, videoID+".%(ext)s")

	cmd := exec.CommandContext(ctx, a.bin,
		"-f", "bestaudio",
		"--extract-audio",
		"--audio-format", "m4a",
		"--audio-quality", "0",
		"-o", outTemplate,
		"--no-playlist",
		"--no-warnings",
		videoURL,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("yt-dlp download %s: %w\n%s", videoID, err, summarizeError(string(b)))
	}

	for _, ext := range audioExtensions {
		p := filepath.Join(outDir, videoID+"."+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("yt-dlp finished but no audio file found for %s in %s", videoID, outDir)
}

// summarizeError maps noisy yt-dlp output to a short cause when one of the
// common failure modes is recognized.
func summarizeError(out string) string {
	lower := strings.ToLower(out)
	switch {
	case strings.Contains(out, "Video unavailable"):
		return "video is unavailable or private"
	case strings.Contains(out, "Sign in"):
		return "video requires sign-in (age-restricted or members-only)"
	case strings.Contains(lower, "copyright"):
		return "video blocked due to copyright"
	}
	const max = 500
	out = strings.TrimSpace(out)
	if len(out) > max {
		return out[:max]
	}
	return out
}
