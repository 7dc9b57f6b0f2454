package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"roguemind/internal/config"
	"roguemind/internal/logging"
	"roguemind/internal/preset"
	"roguemind/internal/sandbox"
	"roguemind/internal/snapshot"
)

func main() {
	configDir := flag.String("config", ".", "Directory holding roguemind.yaml")
	logFile := flag.String("log", "roguemind.log", "Log file (the terminal belongs to the game)")
	seed := flag.String("seed", "", "Override the configured seed")
	flag.Parse()

	if err := run(*configDir, *logFile, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configDir, logFile, seed string) error {
	cfgErr := config.Load(configDir)
	tuning := config.Current()
	if seed != "" {
		tuning.Seed = seed
	}

	log := logging.Nop()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		log = logging.New(f, tuning.LogLevel)
	}
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("using default configuration")
	}

	presets, err := preset.Load(tuning.PresetsFile)
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	store, err := openStore(tuning.SnapshotPath, log)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	sb, err := sandbox.New(screen, sandbox.Options{
		Tuning:  tuning,
		Presets: presets,
		Log:     log,
		Store:   store,
		Seed:    tuning.Seed,
	})
	if err != nil {
		return err
	}
	sb.Run()
	return nil
}

func openStore(path string, log zerolog.Logger) (*snapshot.Store, error) {
	if path == "" {
		return nil, nil
	}
	store, err := snapshot.Open(path, log)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return store, nil
}
