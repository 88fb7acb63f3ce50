package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"kaylife/kaydash/internal/config"

	tea "github.com/charmbracelet/bubbletea"
)

func newConfigModel(t *testing.T) configViewModel {
	t.Helper()
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)

	var m tea.Model = configViewModel{cfg: &config.Config{}, keys: config.Keys}
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m.(configViewModel)
}

// typeValue opens the editor on the current key, replaces its value and
// presses enter, returning the model and the resulting command.
func typeValue(m configViewModel, value string) (configViewModel, tea.Cmd) {
	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	cm := model.(configViewModel)
	cm.editor.SetValue(value)
	model, cmd := cm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return model.(configViewModel), cmd
}

func TestConfigView_RejectsInvalidValue(t *testing.T) {
	m := newConfigModel(t)

	m, cmd := typeValue(m, "nonsense")
	if cmd != nil {
		t.Error("expected no save command for an invalid value")
	}
	if !m.isError || !strings.Contains(m.status, "default-view") {
		t.Errorf("expected validation error status, got %q", m.status)
	}
	if !m.editing {
		t.Error("expected the editor to stay open")
	}
	if m.cfg.DefaultView != "" {
		t.Errorf("config mutated by rejected value: %q", m.cfg.DefaultView)
	}
}

func TestConfigView_SavesValidValue(t *testing.T) {
	m := newConfigModel(t)

	// Move to default-range.
	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = model.(configViewModel)

	m, cmd := typeValue(m, "8H")
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	model, _ = m.Update(cmd())
	m = model.(configViewModel)

	if m.isError || m.status != "default-range saved" {
		t.Errorf("unexpected status %q (error=%v)", m.status, m.isError)
	}

	loaded, err := config.Load()
	if err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if loaded.DefaultRange != "8h" {
		t.Errorf("expected persisted default-range 8h, got %q", loaded.DefaultRange)
	}
	if !strings.Contains(m.View(), "default-range") {
		t.Error("expected the key list in the view")
	}
}
