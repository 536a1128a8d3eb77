package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenSpeaks/openspeaks-subtitler/internal/subtitle"
	"github.com/OpenSpeaks/openspeaks-subtitler/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [subtitle_file]",
	Short: "Translate a subtitle file to another language",
	Long: `Translate the cues of a subtitle file, keeping their timing.

Cues are sent in batches; multiple batches can run in parallel. The
--overlay flag creates bilingual subtitles with the translated text
above the original.

Examples:
  subtitler translate talk.srt --target Spanish
  subtitler translate talk.srt --target German --provider anthropic --overlay
  subtitler translate talk.vtt --target French --concurrency 5 -o talk-fr.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("api-key", "k", "", "Provider API key (or set the provider's env var)")
	translateCmd.Flags().
		String("provider", "gemini", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		StringP("target", "t", "", "Target language (required, e.g. Spanish)")
	translateCmd.Flags().
		String("model", "", "Model override for the provider")
	translateCmd.Flags().
		String("prompt", "", "Additional translation instructions")
	translateCmd.Flags().
		Int("batch-size", 0, "Cues per API request (default 50)")
	translateCmd.Flags().
		Int("concurrency", 3, "Number of parallel translation workers")
	translateCmd.Flags().
		Bool("overlay", false, "Overlay translated text with original (bilingual subtitles)")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	ctx := context.Background()

	providerStr, _ := cmd.Flags().GetString("provider")
	target, _ := cmd.Flags().GetString("target")
	model, _ := cmd.Flags().GetString("model")
	prompt, _ := cmd.Flags().GetString("prompt")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	overlay, _ := cmd.Flags().GetBool("overlay")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")

	if target == "" {
		return fmt.Errorf("target language is required: use --target")
	}

	provider := translate.Provider(strings.ToLower(providerStr))
	apiKey, err := resolveAPIKey(cmd, string(provider))
	if err != nil {
		return err
	}

	doc, err := subtitle.Open(subtitlePath)
	if err != nil {
		return fmt.Errorf("failed to open subtitles: %w", err)
	}
	if len(doc.Cues) == 0 {
		return fmt.Errorf("no cues to translate in %s", subtitlePath)
	}

	translator, err := translate.Factory(ctx, provider, apiKey, translate.Options{
		InputLanguage:  language,
		TargetLanguage: target,
		Model:          model,
		Prompt:         prompt,
		BatchSize:      batchSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	items := make([]translate.TranslationItem, len(doc.Cues))
	for i, cue := range doc.Cues {
		items[i] = translate.TranslationItem{Index: i, Text: cue.Text}
	}

	logger.Infow("starting translation",
		"input", subtitlePath,
		"target", target,
		"provider", provider,
		"cues", len(items),
	)

	var results []translate.TranslationResult
	if concurrent, ok := translator.(translate.ConcurrentTranslator); ok && concurrency > 1 {
		results, err = concurrent.TranslateWithConcurrency(ctx, items, concurrency)
	} else {
		results, err = translator.Translate(ctx, items)
	}
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	translated := make([]subtitle.Cue, len(doc.Cues))
	copy(translated, doc.Cues)
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(translated) {
			return fmt.Errorf("translation returned out-of-range index %d", r.Index)
		}
		if overlay {
			// translated + newline + original
			translated[r.Index].Text = r.Text + "\n" + doc.Cues[r.Index].Text
		} else {
			translated[r.Index].Text = r.Text
		}
	}

	if outputPath == "" {
		outputPath = filepath.Join(
			filepath.Dir(subtitlePath),
			subtitle.OutputName(subtitlePath, target, doc.Format),
		)
	}

	if err := subtitle.Write(doc.Format, translated, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Translation complete: %s\n", absOutput)
	fmt.Printf("  Cues: %d\n", len(translated))
	if overlay {
		fmt.Printf("  Mode: bilingual overlay\n")
	}

	return nil
}
