package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestRootCommand_Setup(t *testing.T) {
	if rootCmd.Use != "ecorank" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "ecorank")
	}
	if rootCmd.Version == "" {
		t.Error("rootCmd.Version should be set")
	}
	if rootCmd.PersistentFlags().Lookup("project") == nil {
		t.Error("rootCmd should have --project flag")
	}
}

func TestCommandWiring(t *testing.T) {
	want := map[string]bool{
		"score":      false,
		"serve":      false,
		"init":       false,
		"categories": false,
		"sources":    false,
		"profiles":   false,
		"runs":       false,
		"token":      false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered on root", name)
		}
	}
}

func TestScoreCommandFlags(t *testing.T) {
	flags := []string{
		"input",
		"output",
		"profile",
		"weight-hazardous-substances",
		"weight-circularity",
		"weight-certification",
		"reference-lifespan",
		"no-record",
		"format",
	}
	for _, name := range flags {
		if scoreCmd.Flags().Lookup(name) == nil {
			t.Errorf("score command missing --%s flag", name)
		}
	}

	if got := scoreCmd.Flags().Lookup("output").DefValue; got != "scored_products.json" {
		t.Errorf("--output default = %q, want %q", got, "scored_products.json")
	}
}

func TestSubcommandWiring(t *testing.T) {
	checks := []struct {
		parent *cobra.Command
		subs   []string
	}{
		{sourcesCmd, []string{"list", "add", "remove", "rename"}},
		{runsCmd, []string{"list", "show"}},
		{tokenCmd, []string{"new", "list", "revoke"}},
		{profilesCmd, []string{"show"}},
	}

	for _, check := range checks {
		registered := map[string]bool{}
		for _, sub := range check.parent.Commands() {
			registered[sub.Name()] = true
		}
		for _, name := range check.subs {
			if !registered[name] {
				t.Errorf("%s command missing %q subcommand", check.parent.Name(), name)
			}
		}
	}
}
