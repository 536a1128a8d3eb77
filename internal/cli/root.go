package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/OpenSpeaks/openspeaks-subtitler/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subtitler",
	Short: "Interactive subtitle timing editor",
	Long: `Subtitler is a terminal editor for timing subtitles against audio
and video files.

It shows the cues on a zoomable timeline where they can be dragged,
resized, and created with the mouse while the media plays. Subtitles can
also be generated with AI transcription, translated, and exported to
SRT, VTT, or plain text.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// a .env next to the binary is a convenience, not a requirement
		_ = godotenv.Load()
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language code (e.g., en, es, fr)")
}
