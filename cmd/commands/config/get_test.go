package config

import (
	"strings"
	"testing"

	"kaylife/kaydash/internal/config"
)

func TestGet_DefaultView_NotSet(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "get", "default-view")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "not set") {
		t.Errorf("expected 'not set', got: %s", stdout)
	}
}

func TestGet_HistoryPoints_Set(t *testing.T) {
	path := setupTestConfig(t)

	// Write a config value directly.
	cfg := &config.Config{HistoryPoints: 360}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, stderr := execConfig(t, "get", "history-points")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if strings.TrimSpace(stdout) != "360" {
		t.Errorf("expected '360', got: %s", stdout)
	}
}

func TestGet_ListsAllKeysWhenNotInteractive(t *testing.T) {
	path := setupTestConfig(t)
	if err := (&config.Config{DefaultRange: "4h"}).SaveTo(path); err != nil {
		t.Fatal(err)
	}

	stdout, _ := execConfig(t, "get")

	for _, want := range []string{"default-range: 4h", "default-view: (not set)", "profile: (not set)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestGet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "get", "bogus-key")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}
