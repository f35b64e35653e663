package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/matemagica/matemagica/internal/config"
	"github.com/matemagica/matemagica/internal/exercise"
	"github.com/matemagica/matemagica/internal/llm"
	"github.com/matemagica/matemagica/internal/logger"
	"github.com/matemagica/matemagica/internal/problemgen"
	"github.com/matemagica/matemagica/internal/store"
)

// env is what every command builds before doing its work.
type env struct {
	cfg *config.Config
	log *slog.Logger

	dbFlag string
	store  *store.Store
}

// setup loads .env, the config file and the environment, and installs the
// logger.
func setup(cmd *cobra.Command) (*env, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}

	dbFlag, _ := cmd.Flags().GetString("db")
	return &env{
		cfg:    cfg,
		log:    logger.Setup(cfg.Log, cmd.ErrOrStderr()),
		dbFlag: dbFlag,
	}, nil
}

// dbPath returns the database path using --db (highest priority), then
// database.path from config, then store.DefaultDBPath.
func (e *env) dbPath() (string, error) {
	for _, p := range []string{e.dbFlag, e.cfg.Database.Path} {
		if p != "" {
			return p, store.EnsureDir(p)
		}
	}
	return store.DefaultDBPath()
}

// openStore opens the event log once per command.
func (e *env) openStore() (*store.Store, error) {
	if e.store != nil {
		return e.store, nil
	}
	p, err := e.dbPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	e.store = s
	return s, nil
}

func (e *env) close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.log.Warn("close database", "error", err)
		}
	}
}

// generator builds the exercise generator. seed 0 uses the process-wide
// random source. Without a usable LLM provider, enhanced requests are
// generated locally.
func (e *env) generator(cmd *cobra.Command, seed uint64) (*exercise.Generator, error) {
	opts := []exercise.Option{exercise.WithLogger(e.log)}
	if seed != 0 {
		opts = append(opts, exercise.WithRandomSource(exercise.NewRandomSource(seed)))
	}

	if e.cfg.LLMEnabled() {
		if src, err := e.enhancedSource(cmd); err != nil {
			e.log.Warn("LLM provider not configured, enhanced requests will be generated locally", "error", err)
		} else {
			opts = append(opts, exercise.WithEnhancedSource(src))
		}
	}

	return exercise.New(e.cfg.Policy, opts...)
}

func (e *env) enhancedSource(cmd *cobra.Command) (*problemgen.LLMSource, error) {
	// Keep events an untyped nil when recording is off so WithLogging
	// sees no recorder.
	var events store.EventRecorder
	if !e.cfg.Database.Disabled {
		s, err := e.openStore()
		if err != nil {
			e.log.Warn("LLM event log unavailable", "error", err)
		} else {
			events = s.EventRepo()
		}
	}

	provider, err := llm.NewProvider(cmd.Context(), e.cfg.LLM, events, e.log)
	if err != nil {
		return nil, err
	}

	pg := problemgen.DefaultConfig(e.cfg.Policy)
	if e.cfg.LLM.Timeout > 0 {
		pg.Timeout = e.cfg.LLM.Timeout
	}
	e.log.Debug("enhanced source ready", "provider", e.cfg.LLM.Provider, "model", provider.ModelID())
	return problemgen.New(provider, pg, e.log), nil
}
