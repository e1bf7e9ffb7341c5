package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ecorank/internal/auth"
	"ecorank/internal/config"
)

var (
	tokenLabel  string
	tokenFormat string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API tokens",
	Long: `Create, list, and revoke API tokens for the ecorank HTTP API.

Only a bcrypt hash of each token is stored in .ecorank/config.json; the
raw token is shown once at creation. While authentication is enabled,
mutating endpoints such as POST /api/reload require a bearer token.

Examples:
  ecorank token new --label "CI reload"
  ecorank token list
  ecorank token revoke eco_key_abc123`,
}

var tokenNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new API token",
	Long: `Create a new API token. Minting the first token enables API
authentication.

Examples:
  ecorank token new --label "CI reload"`,
	Run: runTokenNew,
}

var tokenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored API tokens",
	Run:   runTokenList,
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "revoke <key-id>",
	Short: "Revoke an API token",
	Long: `Revoke an API token, immediately invalidating it. Revoking the
last token disables API authentication.`,
	Args: cobra.ExactArgs(1),
	Run:  runTokenRevoke,
}

func init() {
	tokenCmd.PersistentFlags().StringVar(&tokenFormat, "format", "human", "Output format (json, human)")
	tokenNewCmd.Flags().StringVar(&tokenLabel, "label", "", "Token label (required)")
	_ = tokenNewCmd.MarkFlagRequired("label")

	tokenCmd.AddCommand(tokenNewCmd)
	tokenCmd.AddCommand(tokenListCmd)
	tokenCmd.AddCommand(tokenRevokeCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenNew(cmd *cobra.Command, args []string) {
	baseDir := mustGetProjectRoot()
	cfg := mustLoadConfig(baseDir)

	cred, err := auth.NewCredential()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating token: %v\n", err)
		os.Exit(1)
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)
	cfg.Auth.Keys = append(cfg.Auth.Keys, config.APIKey{
		ID:        cred.KeyID,
		Prefix:    cred.Prefix,
		Hash:      cred.Hash,
		Label:     tokenLabel,
		CreatedAt: createdAt,
	})
	authEnabled := false
	if !cfg.Auth.Enabled {
		cfg.Auth.Enabled = true
		authEnabled = true
	}

	if err := ensureDotdir(baseDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s directory: %v\n", config.Dir, err)
		os.Exit(1)
	}
	if err := cfg.Save(baseDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	if tokenFormat == "json" {
		printJSON(map[string]interface{}{
			"key_id":       cred.KeyID,
			"label":        tokenLabel,
			"token":        cred.Token,
			"created_at":   createdAt,
			"auth_enabled": cfg.Auth.Enabled,
		})
		return
	}

	fmt.Println("API Token Created:")
	fmt.Println()
	fmt.Printf("  ID:    %s\n", cred.KeyID)
	fmt.Printf("  Label: %s\n", tokenLabel)
	fmt.Printf("  Token: %s\n", cred.Token)
	fmt.Println()
	fmt.Println("  IMPORTANT: Store this token securely. It will not be shown again.")
	if authEnabled {
		fmt.Println()
		fmt.Println("API authentication is now enabled.")
	}
}

func runTokenList(cmd *cobra.Command, args []string) {
	baseDir := mustGetProjectRoot()
	cfg := mustLoadConfig(baseDir)

	if tokenFormat == "json" {
		keys := make([]map[string]interface{}, 0, len(cfg.Auth.Keys))
		for _, key := range cfg.Auth.Keys {
			keys = append(keys, map[string]interface{}{
				"key_id":     key.ID,
				"label":      key.Label,
				"token":      auth.MaskToken(auth.TokenPrefix + key.Prefix),
				"created_at": key.CreatedAt,
			})
		}
		printJSON(map[string]interface{}{
			"auth_enabled": cfg.Auth.Enabled,
			"count":        len(keys),
			"keys":         keys,
		})
		return
	}

	if len(cfg.Auth.Keys) == 0 {
		fmt.Println("No API tokens stored. Create one with 'ecorank token new --label <label>'.")
		return
	}

	fmt.Printf("API tokens (%d), authentication enabled: %v\n", len(cfg.Auth.Keys), cfg.Auth.Enabled)
	fmt.Println()
	for _, key := range cfg.Auth.Keys {
		fmt.Printf("  %s\n", key.ID)
		fmt.Printf("    Label: %s\n", key.Label)
		fmt.Printf("    Token: %s\n", auth.MaskToken(auth.TokenPrefix+key.Prefix))
		fmt.Printf("    Created: %s\n", key.CreatedAt)
	}
}

func runTokenRevoke(cmd *cobra.Command, args []string) {
	baseDir := mustGetProjectRoot()
	cfg := mustLoadConfig(baseDir)

	keyID := args[0]
	kept := cfg.Auth.Keys[:0]
	found := false
	for _, key := range cfg.Auth.Keys {
		if key.ID == keyID {
			found = true
			continue
		}
		kept = append(kept, key)
	}
	if !found {
		fmt.Fprintf(os.Stderr, "Error: no API token with ID '%s'\n", keyID)
		os.Exit(1)
	}
	cfg.Auth.Keys = kept

	authDisabled := false
	if len(cfg.Auth.Keys) == 0 && cfg.Auth.Enabled {
		// Keeping auth on with no keys would lock every caller out.
		cfg.Auth.Enabled = false
		authDisabled = true
	}

	if err := cfg.Save(baseDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Revoked API token '%s'\n", keyID)
	if authDisabled {
		fmt.Println("No tokens remain; API authentication is now disabled.")
	}
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
