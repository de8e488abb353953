// Package config resolves runtime configuration from the localflow TOML
// config file, with LOCALFLOW_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"localflow/internal/domain"
)

const defaultConfigText = `# LocalFlow configuration
hotkey = "<cmd_r>"
mode = "toggle" # toggle | hold
sample_rate = 16000
whisper_binary = "whisper-cli"
whisper_model = ""
language = "en"
auto_paste = true
paste_mode = "clipboard" # clipboard | type
enable_voice_commands = true
rules_file = ""
enable_enhancer = false
enhancer_endpoint = "" # e.g. http://127.0.0.1:8080/v1
enhancer_model = ""
enhancer_temperature = 0.1
history_max_entries = 1000
notifications = true
`

// Config stores resolved runtime configuration.
type Config struct {
	Hotkey              string
	Mode                domain.Mode
	SampleRate          int
	WhisperBinary       string
	WhisperModel        string
	Language            string
	AutoPaste           bool
	PasteMode           string
	EnableVoiceCommands bool
	RulesFile           string
	EnableEnhancer      bool
	EnhancerEndpoint    string
	EnhancerModel       string
	EnhancerTemperature float64
	HistoryFile         string
	HistoryMaxEntries   int
	Notifications       bool
}

// Dir returns the localflow configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "localflow"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDefault writes the commented default config at path (or the
// default location), keeping an existing file unless overwrite is set.
func EnsureDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	if err := os.WriteFile(path, []byte(defaultConfigText), 0o600); err != nil {
		return "", fmt.Errorf("write default config: %w", err)
	}
	return path, nil
}

// Load reads the config file at path (default location when empty),
// creating the default file first if none exists. Unknown enum values
// fall back to their defaults rather than failing.
func Load(path string) (Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return Config{}, err
		}
	}
	if _, err := EnsureDefault(path, false); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix("LOCALFLOW")
	v.AutomaticEnv()

	v.SetDefault("hotkey", "<cmd_r>")
	v.SetDefault("mode", string(domain.ModeToggle))
	v.SetDefault("sample_rate", 16000)
	v.SetDefault("whisper_binary", "whisper-cli")
	v.SetDefault("whisper_model", "")
	v.SetDefault("language", "en")
	v.SetDefault("auto_paste", true)
	v.SetDefault("paste_mode", "clipboard")
	v.SetDefault("enable_voice_commands", true)
	v.SetDefault("rules_file", "")
	v.SetDefault("enable_enhancer", false)
	v.SetDefault("enhancer_endpoint", "")
	v.SetDefault("enhancer_model", "")
	v.SetDefault("enhancer_temperature", 0.1)
	v.SetDefault("history_file", "")
	v.SetDefault("history_max_entries", 1000)
	v.SetDefault("notifications", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	cfg := Config{
		Hotkey:              strings.TrimSpace(v.GetString("hotkey")),
		Mode:                parseMode(v.GetString("mode")),
		SampleRate:          v.GetInt("sample_rate"),
		WhisperBinary:       v.GetString("whisper_binary"),
		WhisperModel:        v.GetString("whisper_model"),
		Language:            strings.TrimSpace(v.GetString("language")),
		AutoPaste:           v.GetBool("auto_paste"),
		PasteMode:           parsePasteMode(v.GetString("paste_mode")),
		EnableVoiceCommands: v.GetBool("enable_voice_commands"),
		RulesFile:           strings.TrimSpace(v.GetString("rules_file")),
		EnableEnhancer:      v.GetBool("enable_enhancer"),
		EnhancerEndpoint:    strings.TrimSpace(v.GetString("enhancer_endpoint")),
		EnhancerModel:       v.GetString("enhancer_model"),
		EnhancerTemperature: v.GetFloat64("enhancer_temperature"),
		HistoryFile:         strings.TrimSpace(v.GetString("history_file")),
		HistoryMaxEntries:   v.GetInt("history_max_entries"),
		Notifications:       v.GetBool("notifications"),
	}

	if cfg.Hotkey == "" {
		cfg.Hotkey = "<cmd_r>"
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 16000
	}
	if cfg.HistoryMaxEntries <= 0 {
		cfg.HistoryMaxEntries = 1000
	}
	if cfg.HistoryFile == "" {
		dir, err := Dir()
		if err != nil {
			return Config{}, err
		}
		cfg.HistoryFile = filepath.Join(dir, "history.jsonl")
	}

	return cfg, nil
}

func parseMode(raw string) domain.Mode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(domain.ModeHold):
		return domain.ModeHold
	default:
		return domain.ModeToggle
	}
}

func parsePasteMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "type":
		return "type"
	default:
		return "clipboard"
	}
}
