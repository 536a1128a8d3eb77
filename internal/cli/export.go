package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/OpenSpeaks/openspeaks-subtitler/internal/subtitle"
)

var exportCmd = &cobra.Command{
	Use:   "export [subtitle_file]",
	Short: "Convert a subtitle file to another format",
	Long: `Export the cues of a subtitle file as SRT, VTT, or plain text.

Plain text comes in two flavors: txt strips the timing entirely, txt-ts
keeps a bracketed timestamp line above each cue.

Examples:
  subtitler export talk.srt --format vtt
  subtitler export talk.srt --format txt -o transcript.txt
  subtitler export talk.vtt --format srt --language de`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().
		StringP("format", "f", "srt", "Output format (srt, vtt, txt, txt-ts)")
}

func runExport(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]

	formatStr, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")

	format, err := subtitle.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	doc, err := subtitle.Open(subtitlePath)
	if err != nil {
		return fmt.Errorf("failed to open subtitles: %w", err)
	}

	if outputPath == "" {
		outputPath = filepath.Join(
			filepath.Dir(subtitlePath),
			subtitle.OutputName(subtitlePath, language, format),
		)
	}

	if err := subtitle.Write(format, doc.Cues, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	logger.Infow("export complete",
		"input", subtitlePath,
		"output", absOutput,
		"cues", len(doc.Cues),
	)
	fmt.Fprintf(os.Stdout, "Exported %d cues to %s\n", len(doc.Cues), absOutput)

	return nil
}
