package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newKeyCmd(flagValue string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("api-key", "k", "", "")
	if flagValue != "" {
		_ = cmd.Flags().Set("api-key", flagValue)
	}
	return cmd
}

func TestResolveAPIKeyPrefersFlag(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "from-env")

	key, err := resolveAPIKey(newKeyCmd("from-flag"), "openai")
	if err != nil {
		t.Fatalf("resolveAPIKey failed: %v", err)
	}
	if key != "from-flag" {
		t.Errorf("key = %q, want from-flag", key)
	}
}

func TestResolveAPIKeyFallsBackToEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")

	key, err := resolveAPIKey(newKeyCmd(""), "gemini")
	if err != nil {
		t.Fatalf("resolveAPIKey failed: %v", err)
	}
	if key != "from-env" {
		t.Errorf("key = %q, want from-env", key)
	}
}

func TestResolveAPIKeyRejectsUnknownProvider(t *testing.T) {
	_, err := resolveAPIKey(newKeyCmd(""), "acme")
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Errorf("error = %v", err)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"edit":       false,
		"export":     false,
		"transcribe": false,
		"translate":  false,
		"apikey":     false,
	}
	for _, cmd := range rootCmd.Commands() {
		name := strings.Fields(cmd.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
