package config

import (
	"os"
	"path/filepath"
	"testing"

	"localflow/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadParsesFile(t *testing.T) {
	path := writeConfig(t, `
hotkey = "<cmd>+<shift>"
mode = "hold"
sample_rate = 48000
whisper_binary = "/opt/whisper/whisper-cli"
whisper_model = "/opt/whisper/ggml-base.en.bin"
language = "de"
auto_paste = false
paste_mode = "type"
enable_voice_commands = false
rules_file = "/tmp/rules.txt"
enable_enhancer = true
enhancer_endpoint = "http://127.0.0.1:8080/v1"
enhancer_model = "local"
enhancer_temperature = 0.3
history_max_entries = 50
notifications = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Hotkey != "<cmd>+<shift>" {
		t.Fatalf("hotkey = %q", cfg.Hotkey)
	}
	if cfg.Mode != domain.ModeHold {
		t.Fatalf("mode = %q", cfg.Mode)
	}
	if cfg.SampleRate != 48000 {
		t.Fatalf("sample_rate = %d", cfg.SampleRate)
	}
	if cfg.PasteMode != "type" || cfg.AutoPaste {
		t.Fatalf("paste config = %q/%v", cfg.PasteMode, cfg.AutoPaste)
	}
	if !cfg.EnableEnhancer || cfg.EnhancerEndpoint != "http://127.0.0.1:8080/v1" {
		t.Fatalf("enhancer config = %v/%q", cfg.EnableEnhancer, cfg.EnhancerEndpoint)
	}
	if cfg.HistoryMaxEntries != 50 || cfg.Notifications {
		t.Fatalf("history/notify config = %d/%v", cfg.HistoryMaxEntries, cfg.Notifications)
	}
	if cfg.HistoryFile == "" {
		t.Fatalf("history file not defaulted")
	}
}

func TestLoadDefaultsWhenKeysMissing(t *testing.T) {
	cfg, err := Load(writeConfig(t, "language = \"en\"\n"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Hotkey != "<cmd_r>" {
		t.Fatalf("hotkey = %q", cfg.Hotkey)
	}
	if cfg.Mode != domain.ModeToggle {
		t.Fatalf("mode = %q", cfg.Mode)
	}
	if cfg.SampleRate != 16000 || cfg.HistoryMaxEntries != 1000 {
		t.Fatalf("numeric defaults = %d/%d", cfg.SampleRate, cfg.HistoryMaxEntries)
	}
	if !cfg.AutoPaste || cfg.PasteMode != "clipboard" {
		t.Fatalf("paste defaults = %v/%q", cfg.AutoPaste, cfg.PasteMode)
	}
	if cfg.EnableEnhancer || !cfg.EnableVoiceCommands || !cfg.Notifications {
		t.Fatalf("toggle defaults wrong")
	}
}

func TestLoadFallsBackOnUnknownEnums(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
mode = "sideways"
paste_mode = "telepathy"
sample_rate = -1
history_max_entries = 0
`))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Mode != domain.ModeToggle {
		t.Fatalf("mode = %q", cfg.Mode)
	}
	if cfg.PasteMode != "clipboard" {
		t.Fatalf("paste_mode = %q", cfg.PasteMode)
	}
	if cfg.SampleRate != 16000 || cfg.HistoryMaxEntries != 1000 {
		t.Fatalf("numeric fallback = %d/%d", cfg.SampleRate, cfg.HistoryMaxEntries)
	}
}

func TestLoadCreatesDefaultConfigWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Hotkey != "<cmd_r>" || cfg.Mode != domain.ModeToggle {
		t.Fatalf("default config = %q/%q", cfg.Hotkey, cfg.Mode)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
}

func TestEnsureDefaultKeepsExistingFile(t *testing.T) {
	path := writeConfig(t, "hotkey = \"<alt>\"\n")

	if _, err := EnsureDefault(path, false); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Hotkey != "<alt>" {
		t.Fatalf("existing config clobbered: hotkey = %q", cfg.Hotkey)
	}

	if _, err := EnsureDefault(path, true); err != nil {
		t.Fatalf("ensure overwrite failed: %v", err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Hotkey != "<cmd_r>" {
		t.Fatalf("overwrite kept old hotkey: %q", cfg.Hotkey)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "hotkey = \"<cmd_r>\"\nsample_rate = 16000\n")
	t.Setenv("LOCALFLOW_HOTKEY", "<ctrl>+<alt>")
	t.Setenv("LOCALFLOW_SAMPLE_RATE", "22050")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Hotkey != "<ctrl>+<alt>" {
		t.Fatalf("hotkey = %q", cfg.Hotkey)
	}
	if cfg.SampleRate != 22050 {
		t.Fatalf("sample_rate = %d", cfg.SampleRate)
	}
}
