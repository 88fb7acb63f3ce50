package alarms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"kaylife/kaydash/internal/alarms"
	"kaylife/kaydash/internal/config"
	"kaylife/kaydash/internal/database"
)

func setupTestPaths(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	config.SetPath(filepath.Join(dir, "config.json"))
	database.SetPath(filepath.Join(dir, "kaydash.db"))
	t.Cleanup(func() {
		config.ResetPath()
		database.ResetPath()
	})
	return dir
}

func execAlarms(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), err
}

func listJSON(t *testing.T, args ...string) []alarms.Event {
	t.Helper()
	base := []string{"list", "--seed", "11", "--history", "10", "--limit", "5000", "-o", "json"}
	stdout, err := execAlarms(t, append(base, args...)...)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var events []alarms.Event
	if err := json.Unmarshal([]byte(stdout), &events); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	return events
}

func TestList_JournalsTransitions(t *testing.T) {
	setupTestPaths(t)

	events := listJSON(t, "--ticks", "200")
	if len(events) == 0 {
		t.Fatal("expected transitions after 200 ticks")
	}

	sources := map[string]int{}
	for i, e := range events {
		sources[e.Source]++
		if e.Severity != alarms.SeverityFor(e.Current) {
			t.Errorf("event %d: severity %q does not match status %q", e.ID, e.Severity, e.Current)
		}
		if e.Previous == e.Current {
			t.Errorf("event %d: no status change", e.ID)
		}
		if i > 0 && e.Timestamp.After(events[i-1].Timestamp) {
			t.Errorf("events not newest first at index %d", i)
		}
	}
	if sources[alarms.SourceElectrical] == 0 {
		t.Error("expected electrical transitions")
	}
}

func TestList_Filters(t *testing.T) {
	setupTestPaths(t)

	for _, e := range listJSON(t, "--ticks", "100", "--severity", "critical") {
		if e.Severity != alarms.SeverityCritical {
			t.Errorf("severity filter leaked %q", e.Severity)
		}
	}

	for _, e := range listJSON(t, "--ticks", "100", "--subject", "farm-1/gm1") {
		if e.Subject != "farm-1/gm1" {
			t.Errorf("subject filter leaked %q", e.Subject)
		}
	}
}

func TestList_DBAccumulatesRuns(t *testing.T) {
	dir := setupTestPaths(t)
	db := filepath.Join(dir, "alarms.db")

	first := listJSON(t, "--db", db, "--ticks", "20")
	second := listJSON(t, "--db", db, "--ticks", "20")
	if len(second) != 2*len(first) {
		t.Fatalf("expected the second run to double the journal: %d then %d", len(first), len(second))
	}

	onlyList := listJSON(t, "--db", db, "--ticks", "0")
	if len(onlyList) != len(second) {
		t.Errorf("--ticks 0 should list without simulating: got %d, want %d", len(onlyList), len(second))
	}

	sessions := map[string]bool{}
	for _, e := range second {
		sessions[e.Session] = true
	}
	if len(sessions) != 2 {
		t.Errorf("expected two engine sessions in the journal, got %d", len(sessions))
	}
}

func TestList_Table(t *testing.T) {
	setupTestPaths(t)

	stdout, err := execAlarms(t, "list", "--seed", "3", "--history", "10", "--ticks", "50", "--limit", "5")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(stdout, "SEVERITY") || !strings.Contains(stdout, "→") {
		t.Errorf("unexpected table:\n%s", stdout)
	}
	// header + separator + 5 rows
	if lines := strings.Count(strings.TrimSpace(stdout), "\n") + 1; lines != 7 {
		t.Errorf("expected 7 lines, got %d:\n%s", lines, stdout)
	}
}

func TestList_Errors(t *testing.T) {
	setupTestPaths(t)

	tests := map[string][]string{
		"zero limit":       {"list", "--limit", "0"},
		"negative ticks":   {"list", "--ticks", "-5"},
		"unknown severity": {"list", "--severity", "fatal"},
		"bad output":       {"list", "-o", "xml"},
	}
	for name, args := range tests {
		if _, err := execAlarms(t, args...); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestPrune(t *testing.T) {
	dir := setupTestPaths(t)
	db := filepath.Join(dir, "alarms.db")

	repo, err := alarms.OpenAt(db)
	if err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-48 * time.Hour)
	for _, ts := range []time.Time{old, old.Add(time.Minute), time.Now()} {
		if err := repo.Save(&alarms.Event{Timestamp: ts, Source: alarms.SourceElectrical, Subject: "farm-1/gm1", Previous: "ok", Current: "critical"}); err != nil {
			t.Fatal(err)
		}
	}
	repo.Close()

	stdout, err := execAlarms(t, "prune", "--db", db, "--older-than", "1d")
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if !strings.Contains(stdout, "Removed 2 alarm event(s).") {
		t.Errorf("unexpected output: %s", stdout)
	}
}

func TestPrune_DefaultDatabase(t *testing.T) {
	setupTestPaths(t)

	journaled := listJSON(t, "--ticks", "30")
	if len(journaled) == 0 {
		t.Fatal("expected transitions in the default database")
	}

	stdout, err := execAlarms(t, "prune", "--older-than", "0s")
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	want := fmt.Sprintf("Removed %d alarm event(s).", len(journaled))
	if !strings.Contains(stdout, want) {
		t.Errorf("expected %q, got: %s", want, stdout)
	}

	if left := listJSON(t, "--ticks", "0"); len(left) != 0 {
		t.Errorf("expected an empty journal after prune, got %d events", len(left))
	}
}

func TestList_EphemeralLeavesDefaultDatabaseUntouched(t *testing.T) {
	setupTestPaths(t)

	if events := listJSON(t, "--ticks", "40", "--ephemeral"); len(events) == 0 {
		t.Fatal("expected transitions from the in-memory run")
	}
	if left := listJSON(t, "--ticks", "0"); len(left) != 0 {
		t.Errorf("--ephemeral wrote %d events to the default database", len(left))
	}

	if _, err := execAlarms(t, "list", "--ephemeral", "--db", "x.db"); err == nil {
		t.Error("expected error combining --ephemeral and --db")
	}
}

func TestList_EventsEndAtCurrentTime(t *testing.T) {
	setupTestPaths(t)

	before := time.Now()
	events := listJSON(t, "--ticks", "30")
	if len(events) == 0 {
		t.Fatal("expected transitions")
	}
	if newest := events[0].Timestamp; newest.After(time.Now()) {
		t.Errorf("newest event %v is in the future (run started %v)", newest, before)
	}
}

func TestPrune_Errors(t *testing.T) {
	setupTestPaths(t)

	for _, args := range [][]string{
		{"prune"},
		{"prune", "--older-than", "soon"},
		{"prune", "--older-than", "-3d"},
	} {
		if _, err := execAlarms(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}
