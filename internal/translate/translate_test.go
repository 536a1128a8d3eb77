package translate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestFactoryRequiresTargetLanguage(t *testing.T) {
	_, err := Factory(context.Background(), ProviderOpenAI, "key", Options{})
	if err == nil {
		t.Fatal("expected error for missing target language")
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	_, err := Factory(context.Background(), Provider("acme"), "key", Options{
		TargetLanguage: "French",
	})
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("error = %v", err)
	}
}

func TestFactoryRequiresAPIKey(t *testing.T) {
	for _, provider := range []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGemini} {
		_, err := Factory(context.Background(), provider, "", Options{
			TargetLanguage: "French",
		})
		if err == nil {
			t.Errorf("%s: expected error for missing API key", provider)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	items := []TranslationItem{
		{Index: 0, Text: "Hello"},
		{Index: 1, Text: "World"},
	}
	opts := Options{
		InputLanguage:  "English",
		TargetLanguage: "Spanish",
		Prompt:         "Use a formal register.",
	}

	prompt := BuildPrompt(opts, items)

	if !strings.Contains(prompt, "English subtitle texts to Spanish") {
		t.Error("prompt missing language pair")
	}
	if !strings.Contains(prompt, `"text": "Hello"`) {
		t.Error("prompt missing the input items")
	}
	if !strings.Contains(prompt, "formal register") {
		t.Error("prompt missing additional instructions")
	}
	if !strings.Contains(prompt, "'index' and 'text' fields") {
		t.Error("prompt missing the output contract")
	}
}

func TestBuildPromptWithoutInputLanguage(t *testing.T) {
	prompt := BuildPrompt(
		Options{TargetLanguage: "German"},
		[]TranslationItem{{Index: 0, Text: "hi"}},
	)
	if !strings.Contains(prompt, "Translate the following subtitle texts to German.") {
		t.Error("prompt must omit the source language when unknown")
	}
}

func TestSplitBatches(t *testing.T) {
	items := make([]TranslationItem, 7)
	for i := range items {
		items[i] = TranslationItem{Index: i}
	}

	batches := splitBatches(items, 3)
	if len(batches) != 3 {
		t.Fatalf("got %d batches, want 3", len(batches))
	}
	if len(batches[0]) != 3 || len(batches[1]) != 3 || len(batches[2]) != 1 {
		t.Errorf(
			"batch sizes %d/%d/%d, want 3/3/1",
			len(batches[0]), len(batches[1]), len(batches[2]),
		)
	}
}

func echoBatch(_ context.Context, items []TranslationItem) ([]TranslationResult, error) {
	results := make([]TranslationResult, len(items))
	for i, item := range items {
		results[i] = TranslationResult{Index: item.Index, Text: "<" + item.Text + ">"}
	}
	return results, nil
}

func TestTranslateSequentialOrdersResults(t *testing.T) {
	items := make([]TranslationItem, 5)
	for i := range items {
		items[i] = TranslationItem{Index: i, Text: string(rune('a' + i))}
	}

	results, err := translateSequential(context.Background(), items, 2, echoBatch)
	if err != nil {
		t.Fatalf("translateSequential failed: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
	}
}

func TestTranslateSequentialEmptyInput(t *testing.T) {
	results, err := translateSequential(context.Background(), nil, 10, echoBatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results for empty input", len(results))
	}
}

func TestTranslateSequentialStopsOnError(t *testing.T) {
	var calls int
	fail := func(context.Context, []TranslationItem) ([]TranslationResult, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("rate limited")
		}
		return []TranslationResult{}, nil
	}

	items := make([]TranslationItem, 6)
	_, err := translateSequential(context.Background(), items, 2, fail)
	if err == nil {
		t.Fatal("expected the batch error to propagate")
	}
	if !strings.Contains(err.Error(), "batch 1 failed") {
		t.Errorf("error = %v", err)
	}
	if calls != 2 {
		t.Errorf("made %d calls after the failure, want 2", calls)
	}
}

func TestTranslateConcurrentMergesAndSorts(t *testing.T) {
	items := make([]TranslationItem, 20)
	for i := range items {
		items[i] = TranslationItem{Index: i, Text: "x"}
	}

	results, err := translateConcurrent(context.Background(), items, 4, 3, echoBatch)
	if err != nil {
		t.Fatalf("translateConcurrent failed: %v", err)
	}
	if len(results) != 20 {
		t.Fatalf("got %d results, want 20", len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d, merge order broken", i, r.Index)
		}
	}
}

func TestTranslateConcurrentPropagatesFirstError(t *testing.T) {
	var mu sync.Mutex
	var calls int
	flaky := func(_ context.Context, items []TranslationItem) ([]TranslationResult, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			return nil, errors.New("boom")
		}
		return echoBatch(context.Background(), items)
	}

	items := make([]TranslationItem, 30)
	_, err := translateConcurrent(context.Background(), items, 5, 2, flaky)
	if err == nil {
		t.Fatal("expected an error from the failing batch")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v", err)
	}
}

func TestExtractTranslationResults(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		wantErr bool
	}{
		{
			name: "plain array",
			text: `[{"index":0,"text":"hola"},{"index":1,"text":"mundo"}]`,
			want: 2,
		},
		{
			name: "wrapped in results object",
			text: `{"results":[{"index":0,"text":"hola"}]}`,
			want: 1,
		},
		{
			name: "leading prose before the array",
			text: "Here is the translation:\n[{\"index\":0,\"text\":\"hola\"}]",
			want: 1,
		},
		{
			name: "invalid escape sequence recovered",
			text: `[{"index":0,"text":"line one\Nline two"}]`,
			want: 1,
		},
		{
			name:    "no JSON at all",
			text:    "I cannot translate this.",
			wantErr: true,
		},
		{
			name:    "array of empty texts",
			text:    `[{"index":0,"text":""}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := extractTranslationResults(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(results) != tt.want {
				t.Errorf("got %d results, want %d", len(results), tt.want)
			}
		})
	}
}

func TestFixInvalidEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`a\Nb`, `a\\Nb`},
		{`a\nb`, `a\nb`},
		{`quote \" kept`, `quote \" kept`},
		{`trailing backslash \`, `trailing backslash \`},
	}
	for _, tt := range tests {
		if got := fixInvalidEscapes(tt.in); got != tt.want {
			t.Errorf("fixInvalidEscapes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
