package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenSpeaks/openspeaks-subtitler/internal/media"
	"github.com/OpenSpeaks/openspeaks-subtitler/internal/subtitle"
	"github.com/OpenSpeaks/openspeaks-subtitler/internal/transcribe"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [media_file]",
	Short: "Generate subtitles for a media file with AI transcription",
	Long: `Transcribe the audio of a media file and write timed subtitles.

For video files the audio track is extracted first. Long transcript
segments are reshaped into readable cues before writing.

Examples:
  subtitler transcribe talk.mp4
  subtitler transcribe talk.mp3 --provider gemini --format vtt
  subtitler transcribe talk.mp4 -l hi --transcript-language english`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().
		StringP("api-key", "k", "", "Provider API key (or set the provider's env var)")
	transcribeCmd.Flags().
		String("provider", "openai", "Transcription provider (openai, gemini)")
	transcribeCmd.Flags().
		String("model", "", "Model override for the provider")
	transcribeCmd.Flags().
		String("prompt", "", "Optional hint to improve transcription accuracy")
	transcribeCmd.Flags().
		String("transcript-language", "native", "Output language for the transcript ('english' or 'native')")
	transcribeCmd.Flags().
		StringP("format", "f", "srt", "Output subtitle format (srt, vtt, txt, txt-ts)")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !media.IsMediaFile(mediaPath) {
		return fmt.Errorf(
			"unsupported file type: %s (expected audio or video file)",
			filepath.Ext(mediaPath),
		)
	}

	providerStr, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model")
	prompt, _ := cmd.Flags().GetString("prompt")
	transcriptLang, _ := cmd.Flags().GetString("transcript-language")
	formatStr, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")

	provider := transcribe.Provider(strings.ToLower(providerStr))
	apiKey, err := resolveAPIKey(cmd, string(provider))
	if err != nil {
		return err
	}

	format, err := subtitle.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
		outputPath = baseName + format.Extension()
	}

	logger.Infow("starting transcription",
		"input", mediaPath,
		"output", outputPath,
		"provider", provider,
	)

	audioPath := mediaPath
	if media.IsVideoFile(mediaPath) {
		tempDir, err := os.MkdirTemp("", "subtitler-*")
		if err != nil {
			return fmt.Errorf("failed to create temp directory: %w", err)
		}
		defer os.RemoveAll(tempDir)

		logger.Infow("extracting audio from video")
		audioPath = filepath.Join(tempDir, "audio.mp3")
		if err := media.ExtractAudio(mediaPath, audioPath, media.DefaultExtractOptions()); err != nil {
			return fmt.Errorf("failed to extract audio: %w", err)
		}
	}

	transcriber, err := transcribe.Factory(ctx, provider, apiKey, transcribe.Options{
		Language:           language,
		TranscriptLanguage: transcriptLang,
		Model:              model,
		Prompt:             prompt,
	})
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	result, err := transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	logger.Infow("transcription complete",
		"segments", len(result.Cues),
	)

	cues := subtitle.NewShaper().Shape(result.Cues)
	if err := subtitle.Write(format, cues, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles generated successfully: %s\n", absOutput)
	fmt.Printf("  Cues: %d\n", len(cues))

	return nil
}
