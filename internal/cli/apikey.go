package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
)

const keyringService = "subtitler"

// environment variable per provider
var providerEnvVars = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"gemini":    "GEMINI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage stored provider API keys",
	Long: `Store, inspect, or remove API keys in the system keyring.

Stored keys are used when neither the --api-key flag nor the provider's
environment variable is set.`,
}

var apikeySetCmd = &cobra.Command{
	Use:   "set [provider] [key]",
	Short: "Store an API key for a provider",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := strings.ToLower(args[0])
		if _, ok := providerEnvVars[provider]; !ok {
			return fmt.Errorf("unknown provider %q: use openai, gemini, or anthropic", provider)
		}
		if err := keyring.Set(keyringService, provider, args[1]); err != nil {
			return fmt.Errorf("failed to store API key: %w", err)
		}
		fmt.Printf("API key stored for %s\n", provider)
		return nil
	},
}

var apikeyClearCmd = &cobra.Command{
	Use:   "clear [provider]",
	Short: "Remove a stored API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := strings.ToLower(args[0])
		if err := keyring.Delete(keyringService, provider); err != nil {
			return fmt.Errorf("failed to remove API key: %w", err)
		}
		fmt.Printf("API key removed for %s\n", provider)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(apikeyCmd)
	apikeyCmd.AddCommand(apikeySetCmd)
	apikeyCmd.AddCommand(apikeyClearCmd)
}

// resolveAPIKey looks up the key for a provider: the --api-key flag first,
// then the provider's environment variable, then the system keyring.
func resolveAPIKey(cmd *cobra.Command, provider string) (string, error) {
	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey != "" {
		return apiKey, nil
	}

	envVar, ok := providerEnvVars[provider]
	if !ok {
		return "", fmt.Errorf("unknown provider %q: use openai, gemini, or anthropic", provider)
	}
	if apiKey = os.Getenv(envVar); apiKey != "" {
		return apiKey, nil
	}

	if stored, err := keyring.Get(keyringService, provider); err == nil && stored != "" {
		return stored, nil
	}

	return "", fmt.Errorf(
		"%s API key is required: use --api-key, set %s, or run 'subtitler apikey set %s <key>'",
		provider, envVar, provider,
	)
}
