package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/wpm/internal/config"
	"github.com/verte-zerg/wpm/internal/generator"
	"github.com/verte-zerg/wpm/internal/model"
	"github.com/verte-zerg/wpm/internal/session"
	"github.com/verte-zerg/wpm/internal/store"
	"github.com/verte-zerg/wpm/internal/textlist"
	"github.com/verte-zerg/wpm/internal/tui"
)

var (
	playPrompts string
	playFilter  string
	playCount   int
	playSkipKey string
	playQuitKey string
	playSeed    int64
	playWidth   float64
)

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&playPrompts, "prompts", "", "prompt list (default: "+config.DefaultPromptsPath()+")")
	cmd.Flags().StringVar(&playFilter, "filter", "", "jq expression selecting texts, e.g. '.length < 200'")
	cmd.Flags().IntVar(&playCount, "count", 0, "texts per session (0 = all)")
	cmd.Flags().StringVar(&playSkipKey, "skip-key", defaultSkipKey, "keys that skip the current text")
	cmd.Flags().StringVar(&playQuitKey, "quit-key", defaultQuitKey, "keys that end the session")
	cmd.Flags().Int64Var(&playSeed, "seed", 0, "shuffle seed (0 = time based)")
	cmd.Flags().Float64Var(&playWidth, "width", defaultWidth, "share of terminal width used for the text (0-1)")
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	applyStringConfig(cmd, "prompts", &playPrompts, fileCfg.Play.Prompts)
	applyStringConfig(cmd, "filter", &playFilter, fileCfg.Play.Filter)
	applyIntConfig(cmd, "count", &playCount, fileCfg.Play.Count)
	applyStringConfig(cmd, "skip-key", &playSkipKey, fileCfg.Play.SkipKey)
	applyStringConfig(cmd, "quit-key", &playQuitKey, fileCfg.Play.QuitKey)
	applyInt64Config(cmd, "seed", &playSeed, fileCfg.Play.Seed)
	applyFloatConfig(cmd, "width", &playWidth, fileCfg.Play.Width)

	cfg := model.PlayConfig{
		PromptsPath: playPrompts,
		Filter:      playFilter,
		Count:       playCount,
		SkipKey:     playSkipKey,
		QuitKey:     playQuitKey,
		Seed:        playSeed,
		Width:       playWidth,
	}
	if cfg.PromptsPath == "" {
		cfg.PromptsPath = config.DefaultPromptsPath()
	}
	if err := validatePlayConfig(cfg); err != nil {
		return err
	}
	keys, err := tui.NewKeyMap(cfg.QuitKey, cfg.SkipKey)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("stdin is not a terminal")
	}

	prompts, err := loadPrompts(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sess := session.New(prompts, session.Options{
		Logger: logger,
		OnResult: func(r model.RoundResult) {
			if _, err := st.InsertRound(ctx, r); err != nil {
				logger.Error("Failed to save round", zap.String("source", r.Source), zap.Error(err))
			}
		},
	})

	program := tea.NewProgram(tui.NewModel(sess, keys, logger, cfg.Width), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func loadPrompts(cfg model.PlayConfig) ([]model.Prompt, error) {
	records, err := textlist.Load(cfg.PromptsPath)
	if err != nil {
		return nil, promptsLoadError(cfg.PromptsPath, err)
	}
	records, err = textlist.Filter(records, cfg.Filter)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no prompts match filter %q", cfg.Filter)
	}

	gen := generator.New()
	if cfg.Seed != 0 {
		gen = generator.NewSeeded(cfg.Seed)
	}
	return generator.Take(gen.Shuffle(textlist.Prompts(records)), cfg.Count), nil
}

func validatePlayConfig(cfg model.PlayConfig) error {
	if cfg.Count < 0 {
		return fmt.Errorf("--count must be >= 0")
	}
	if cfg.Width <= 0 || cfg.Width > 1 {
		return fmt.Errorf("--width must be in (0, 1]")
	}
	return nil
}

func promptsLoadError(path string, err error) error {
	return fmt.Errorf("failed to load prompts: %w\nexpected prompt list at: %s\nDownload: wpm fetch-prompts", err, path)
}
