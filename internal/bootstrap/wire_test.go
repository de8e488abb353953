package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"localflow/internal/config"
	"localflow/internal/domain"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		Hotkey:            "<cmd_r>",
		Mode:              domain.ModeToggle,
		SampleRate:        16000,
		WhisperBinary:     "whisper-cli",
		Language:          "en",
		AutoPaste:         false,
		PasteMode:         "clipboard",
		HistoryFile:       filepath.Join(dir, "history.jsonl"),
		HistoryMaxEntries: 10,
	}
}

func TestBuildSuccess(t *testing.T) {
	services, err := Build(testConfig(t))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if services.Controller == nil {
		t.Fatalf("expected controller")
	}
	defer services.Controller.Shutdown()

	if got := services.Controller.Status().State; got != domain.StateIdle {
		t.Fatalf("initial state = %q", got)
	}
	if services.Enhancer.Status() != "disabled" {
		t.Fatalf("enhancer status = %q", services.Enhancer.Status())
	}
}

func TestBuildFailsOnInvalidHotkey(t *testing.T) {
	cfg := testConfig(t)
	cfg.Hotkey = "<bogus>"

	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected build error for unknown hotkey")
	}
}

func TestBuildFailsOnMalformedRules(t *testing.T) {
	cfg := testConfig(t)
	rulesPath := filepath.Join(t.TempDir(), "bad.rules")
	if err := os.WriteFile(rulesPath, []byte("not a valid rule\n"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	cfg.RulesFile = rulesPath

	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected build error due to malformed rules")
	}
}
