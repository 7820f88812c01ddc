package llms

import (
	"fmt"
	"testing"
)

func TestOptionsAreWellFormed(t *testing.T) {
	options := Options()
	if len(options) == 0 {
		t.Fatal("Expected at least one model option")
	}

	seen := make(map[string]bool)
	for _, option := range options {
		if option.Provider == "" || option.Model == "" {
			t.Errorf("Option %q must name a provider and model", option.Label)
		}
		want := fmt.Sprintf("%s[%s]", option.Provider, option.Model)
		if option.Label != want {
			t.Errorf("Expected label %q, got %q", want, option.Label)
		}
		if seen[option.Label] {
			t.Errorf("Duplicate label %q", option.Label)
		}
		seen[option.Label] = true
	}
}

func TestKeylessProviders(t *testing.T) {
	for _, option := range Options() {
		if option.Provider == "ollama" && option.CredentialVar != "" {
			t.Errorf("Ollama option %q must not require a credential", option.Label)
		}
		if option.Provider != "ollama" && option.CredentialVar == "" {
			t.Errorf("Hosted option %q must name its credential", option.Label)
		}
	}
}

func TestFind(t *testing.T) {
	options := Options()
	option, ok := Find(options[0].Label)
	if !ok {
		t.Fatalf("Expected to find %q", options[0].Label)
	}
	if option.Label != options[0].Label {
		t.Errorf("Found the wrong option: %q", option.Label)
	}

	if _, ok := Find("no-such[model]"); ok {
		t.Error("Expected unknown label to not be found")
	}
}
