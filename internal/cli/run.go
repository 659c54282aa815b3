package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/forPelevin/beatcut/internal/config"
	"github.com/forPelevin/beatcut/internal/pipeline"
	"github.com/forPelevin/beatcut/internal/yt"
)

// benchmarkMaxVideos bounds the benchmark flow so a pasted playlist does not
// burn the API quota.
const benchmarkMaxVideos = 10

func buildPipelineConfig(cmd *cobra.Command) (pipeline.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return pipeline.Config{}, err
	}

	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		cfg.OutputDir = v
	}
	if cmd.Flags().Changed("whisper-model") {
		cfg.WhisperModel, _ = cmd.Flags().GetString("whisper-model")
	}
	if cmd.Flags().Changed("language") {
		cfg.Language, _ = cmd.Flags().GetString("language")
	}
	if cmd.Flags().Changed("min-beat") {
		cfg.MinBeatDuration, _ = cmd.Flags().GetFloat64("min-beat")
	}
	if cmd.Flags().Changed("max-beat") {
		cfg.MaxBeatDuration, _ = cmd.Flags().GetFloat64("max-beat")
	}
	if cmd.Flags().Changed("min-beats") {
		cfg.MinBeats, _ = cmd.Flags().GetInt("min-beats")
	}
	if cmd.Flags().Changed("view-multiplier") {
		cfg.ViewMultiplier, _ = cmd.Flags().GetFloat64("view-multiplier")
	}

	logger, err := buildLogger(cmd)
	if err != nil {
		return pipeline.Config{}, err
	}

	return pipeline.Config{
		OutputDir:       cfg.OutputDir,
		CacheDir:        cfg.CacheDir,
		YtDlpPath:       cfg.YtDlpPath,
		WhisperPath:     cfg.WhisperPath,
		WhisperModel:    cfg.WhisperModel,
		Language:        cfg.Language,
		MinBeatDuration: cfg.MinBeatDuration,
		MaxBeatDuration: cfg.MaxBeatDuration,
		MinBeats:        cfg.MinBeats,
		YouTubeAPIKey:   os.Getenv("YOUTUBE_API_KEY"),
		ViewMultiplier:  cfg.ViewMultiplier,
		Logger:          logger,
	}, nil
}

func buildLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runOutline(cmd *cobra.Command, urlOrID string) error {
	videoID := yt.ExtractVideoID(urlOrID)
	if videoID == "" {
		return fmt.Errorf("could not extract a video id from %q", urlOrID)
	}

	cfg, err := buildPipelineConfig(cmd)
	if err != nil {
		return err
	}
	defer cfg.Logger.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Hour)
	defer cancel()

	runDir, err := pipeline.RunOutline(ctx, cfg, videoID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "outline written to %s\n", runDir)
	return nil
}

func runSearch(cmd *cobra.Command, _ []string) error {
	cfg, err := buildPipelineConfig(cmd)
	if err != nil {
		return err
	}
	defer cfg.Logger.Sync()
	if cfg.YouTubeAPIKey == "" {
		return errors.New("YOUTUBE_API_KEY is required (set it in .env)")
	}

	keyword, _ := cmd.Flags().GetString("keyword")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	after, _ := cmd.Flags().GetString("published-after")
	before, _ := cmd.Flags().GetString("published-before")
	region, _ := cmd.Flags().GetString("region-code")
	language, _ := cmd.Flags().GetString("relevance-language")

	job := pipeline.ResearchJob{
		Keyword:           keyword,
		MaxResults:        maxResults,
		RegionCode:        region,
		RelevanceLanguage: language,
		Prefix:            keyword,
	}
	if after != "" {
		job.PublishedAfter = yt.CoerceISODate(after)
	}
	if before != "" {
		job.PublishedBefore = yt.CoerceISODate(before)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	files, err := pipeline.RunResearch(ctx, cfg, job)
	if err != nil {
		return err
	}
	printFiles(cmd, files)
	return nil
}

func runBenchmark(cmd *cobra.Command, _ []string) error {
	cfg, err := buildPipelineConfig(cmd)
	if err != nil {
		return err
	}
	defer cfg.Logger.Sync()
	if cfg.YouTubeAPIKey == "" {
		return errors.New("YOUTUBE_API_KEY is required (set it in .env)")
	}

	input, _ := cmd.Flags().GetString("video-ids")
	inputFile, _ := cmd.Flags().GetString("input-file")
	if input == "" && inputFile == "" {
		return errors.New("provide video ids via --video-ids or --input-file")
	}
	if input == "" {
		b, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
		input = string(b)
	}

	videoIDs := yt.ParseVideoIDs(input)
	if len(videoIDs) == 0 {
		return errors.New("no valid video ids found in input")
	}
	if len(videoIDs) > benchmarkMaxVideos {
		fmt.Fprintf(cmd.ErrOrStderr(), "limiting to first %d videos (got %d)\n", benchmarkMaxVideos, len(videoIDs))
		videoIDs = videoIDs[:benchmarkMaxVideos]
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	files, err := pipeline.RunResearch(ctx, cfg, pipeline.ResearchJob{
		VideoIDs: videoIDs,
		Prefix:   "benchmark",
	})
	if err != nil {
		return err
	}
	printFiles(cmd, files)
	return nil
}

func runAbstract(cmd *cobra.Command, _ []string) error {
	cfg, err := buildPipelineConfig(cmd)
	if err != nil {
		return err
	}
	defer cfg.Logger.Sync()

	input, _ := cmd.Flags().GetString("input")
	text, _ := cmd.Flags().GetString("text")
	if input == "" && text == "" {
		return errors.New("provide a transcript via --input file or --text")
	}
	if text == "" {
		b, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read transcript: %w", err)
		}
		text = string(b)
	}

	files, err := pipeline.RunAbstract(cmd.Context(), cfg, text)
	if err != nil {
		return err
	}
	printFiles(cmd, files)
	return nil
}

func printFiles(cmd *cobra.Command, files map[string]string) {
	for kind, path := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", kind, path)
	}
}
