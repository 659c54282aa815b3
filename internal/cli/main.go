package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "beatcut",
		Short:        "Research videos and derive reusable script outlines from transcripts",
		SilenceUsage: true,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().String("config", "", "Path to YAML config file")
	root.PersistentFlags().String("output-dir", "", "Output directory (overrides config)")
	root.PersistentFlags().Bool("verbose", false, "Verbose logging")

	root.AddCommand(newOutlineCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newBenchmarkCmd())
	root.AddCommand(newAbstractCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newOutlineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline <url|video-id>",
		Short: "Download, transcribe and outline one video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutline(cmd, args[0])
		},
	}
	cmd.Flags().String("language", "", "Transcription language code (e.g. ja, en); auto-detect when empty")
	cmd.Flags().String("whisper-model", "", "Whisper model name (overrides config)")
	cmd.Flags().Float64("min-beat", 0, "Minimum beat duration in seconds (overrides config)")
	cmd.Flags().Float64("max-beat", 0, "Maximum beat duration in seconds (overrides config)")
	cmd.Flags().Int("min-beats", 0, "Minimum number of beats (overrides config)")
	return cmd
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search videos by keyword and filter by engagement",
		RunE:  runSearch,
	}
	cmd.Flags().StringP("keyword", "k", "", "Search keyword")
	cmd.Flags().IntP("max-results", "n", 200, "Maximum number of results")
	cmd.Flags().String("published-after", "", "Only videos published after this date (YYYY-MM-DD)")
	cmd.Flags().String("published-before", "", "Only videos published before this date (YYYY-MM-DD)")
	cmd.Flags().String("region-code", "", "Region code (e.g. JP, US)")
	cmd.Flags().String("relevance-language", "", "Relevance language (e.g. ja, en)")
	cmd.Flags().Float64("view-multiplier", 0, "Winner threshold multiplier (overrides config)")
	_ = cmd.MarkFlagRequired("keyword")
	return cmd
}

func newBenchmarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Analyze specific videos by ID or URL",
		RunE:  runBenchmark,
	}
	cmd.Flags().StringP("video-ids", "v", "", "Comma-separated video IDs or URLs")
	cmd.Flags().StringP("input-file", "i", "", "File with video IDs or URLs, one per line")
	cmd.Flags().Float64("view-multiplier", 0, "Winner threshold multiplier (overrides config)")
	return cmd
}

func newAbstractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "abstract",
		Short: "Turn a transcript into a reusable script template",
		RunE:  runAbstract,
	}
	cmd.Flags().StringP("input", "i", "", "Transcript text file")
	cmd.Flags().StringP("text", "t", "", "Transcript text given directly")
	return cmd
}
