// Package bootstrap assembles the runtime dependency graph.
package bootstrap

import (
	"fmt"

	"localflow/internal/audio"
	"localflow/internal/commands"
	"localflow/internal/config"
	"localflow/internal/enhance"
	"localflow/internal/history"
	"localflow/internal/hotkey"
	"localflow/internal/notify"
	"localflow/internal/output"
	"localflow/internal/ports"
	"localflow/internal/rules"
	"localflow/internal/transcribe"
	"localflow/internal/usecase"
)

// Services is the assembled runtime graph.
type Services struct {
	Controller *usecase.Controller
	Enhancer   ports.Enhancer
	History    *history.Store
	Config     config.Config
}

// Build wires all runtime dependencies from the resolved config.
func Build(cfg config.Config) (Services, error) {
	combo, err := hotkey.ParseCombo(cfg.Hotkey)
	if err != nil {
		return Services{}, fmt.Errorf("parse hotkey: %w", err)
	}

	var rewriters []ports.Rewriter
	if cfg.EnableVoiceCommands {
		rewriters = append(rewriters, ports.RewriterFunc(commands.Apply))
	}
	if cfg.RulesFile != "" {
		engine, err := rules.NewEngine(cfg.RulesFile, 0)
		if err != nil {
			return Services{}, fmt.Errorf("load rules: %w", err)
		}
		rewriters = append(rewriters, engine)
	}

	enhancer := enhance.New(enhance.Config{
		Enabled:     cfg.EnableEnhancer,
		Endpoint:    cfg.EnhancerEndpoint,
		Model:       cfg.EnhancerModel,
		Temperature: float32(cfg.EnhancerTemperature),
	})
	store := history.NewStore(cfg.HistoryFile, cfg.HistoryMaxEntries)

	pipeline := usecase.NewPipeline(
		transcribe.NewWhisperCLI(cfg.WhisperBinary, cfg.WhisperModel),
		enhancer,
		rewriters,
		store,
		output.NewEmitter(cfg.AutoPaste, cfg.PasteMode),
		usecase.PipelineConfig{Language: cfg.Language, Mode: cfg.Mode},
	)

	controller := usecase.NewController(
		cfg.Mode,
		hotkey.NewMatcher(combo),
		audio.NewRecorder(cfg.SampleRate),
		pipeline,
		notify.NewBeeper(cfg.Notifications),
	)

	return Services{
		Controller: controller,
		Enhancer:   enhancer,
		History:    store,
		Config:     cfg,
	}, nil
}
