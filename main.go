// LocalFlow is a local push-to-talk dictation daemon: a global hotkey
// records microphone audio, whisper.cpp transcribes it, and the text is
// pasted into the focused application.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/gordonklaus/portaudio"
	"github.com/joho/godotenv"
	hook "github.com/robotn/gohook"

	"localflow/internal/bootstrap"
	"localflow/internal/config"
	"localflow/internal/hotkey"
)

func main() {
	log.SetFlags(log.Ltime)
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to config.toml (default: user config dir)")
	flag.Usage = usage
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "run"
	}

	var err error
	switch cmd {
	case "init":
		err = runInit(*configPath, flag.Args()[1:])
	case "check":
		err = runCheck(*configPath)
	case "history":
		err = runHistory(*configPath, flag.Args()[1:])
	case "run":
		err = runDaemon(*configPath)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "localflow: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: localflow [--config path] <command>

commands:
  run      start the dictation daemon (default)
  init     write the default config file
  check    verify the runtime environment
  history  print recent transcripts
`)
}

func runInit(path string, args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "overwrite an existing config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	written, err := config.EnsureDefault(path, *force)
	if err != nil {
		return err
	}
	fmt.Printf("[localflow] config at %s\n", written)
	return nil
}

func runCheck(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	ok := true
	report := func(label string, err error) {
		if err != nil {
			ok = false
			fmt.Printf("[localflow] %-14s FAIL: %v\n", label, err)
			return
		}
		fmt.Printf("[localflow] %-14s ok\n", label)
	}

	_, hotkeyErr := hotkey.ParseCombo(cfg.Hotkey)
	report("hotkey", hotkeyErr)

	_, binErr := exec.LookPath(cfg.WhisperBinary)
	report("whisper", binErr)

	var modelErr error
	if cfg.WhisperModel != "" {
		_, modelErr = os.Stat(cfg.WhisperModel)
	}
	report("model", modelErr)

	report("audio", checkAudio())

	services, err := bootstrap.Build(cfg)
	if err != nil {
		return err
	}
	defer services.Controller.Shutdown()
	fmt.Printf("[localflow] %-14s %s\n", "enhancer", services.Enhancer.Status())

	if !ok {
		return fmt.Errorf("environment check failed")
	}
	return nil
}

func checkAudio() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	defer portaudio.Terminate()
	dev, err := portaudio.DefaultInputDevice()
	if err != nil {
		return err
	}
	if dev.MaxInputChannels < 1 {
		return fmt.Errorf("default device %q has no input channels", dev.Name)
	}
	return nil
}

func runHistory(path string, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("n", 10, "number of entries to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	services, err := bootstrap.Build(cfg)
	if err != nil {
		return err
	}
	defer services.Controller.Shutdown()

	entries, err := services.History.Recent(*limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("[localflow] no history yet")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  [%s]  %s\n", e.Timestamp, e.Mode, e.Text)
	}
	return nil
}

func runDaemon(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("init audio: %w", err)
	}
	defer portaudio.Terminate()

	services, err := bootstrap.Build(cfg)
	if err != nil {
		return err
	}
	controller := services.Controller

	fmt.Printf("[localflow] hotkey %s, %s mode\n", cfg.Hotkey, cfg.Mode)
	fmt.Printf("[localflow] enhancer %s\n", services.Enhancer.Status())
	fmt.Println("[localflow] listening, press Ctrl+C to quit")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		fmt.Println("\n[localflow] shutting down")
		controller.Shutdown()
		// Closes the event channel and unblocks the loop below.
		hook.End()
	}()

	events := hook.Start()
	for ev := range events {
		switch ev.Kind {
		case hook.KeyDown, hook.KeyHold:
			controller.KeyDown(hotkey.RawKey{Code: ev.Rawcode, Char: ev.Keychar})
		case hook.KeyUp:
			controller.KeyUp(hotkey.RawKey{Code: ev.Rawcode, Char: ev.Keychar})
		}
	}
	return nil
}
