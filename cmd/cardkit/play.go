package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lixenwraith/cardkit/atlas"
	"github.com/lixenwraith/cardkit/config"
	"github.com/lixenwraith/cardkit/demo"
	"github.com/lixenwraith/cardkit/engine"
	"github.com/lixenwraith/cardkit/terminal"
	"github.com/lixenwraith/cardkit/window"
)

// errNotTerminal is returned when the terminal backend has no terminal to draw on
var errNotTerminal = errors.New("stdout is not a terminal; use --backend window")

func newPlayCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the demo card game",
		Long: `Play the demo card game. Click the deck to turn over a card.
Press 'n', or click the discard pile once the deck is empty, to start over.
Esc or Ctrl-C quits the terminal version.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.resolve(cmd)
			if err != nil {
				return err
			}
			return runGame(cfg, func() (engine.Game, error) { return newDemo(cfg) })
		},
	}
}

func newSimpleCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "simple",
		Short: "Run the empty starter game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.resolve(cmd)
			if err != nil {
				return err
			}
			return runGame(cfg, func() (engine.Game, error) { return engine.NewSimpleGame(), nil })
		},
	}
}

// runGame picks the backend, sets up logging, then runs the game until it quits
func runGame(cfg config.Config, makeGame func() (engine.Game, error)) error {
	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}
	game, err := makeGame()
	if err != nil {
		log.Printf("cardkit: %v", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := engine.NewLoop(backend, game,
		engine.WithFPS(cfg.FPS),
		engine.WithSize(cfg.Width, cfg.Height),
		engine.WithTitle(cfg.Title),
	)
	if err := loop.Run(ctx); err != nil {
		log.Printf("cardkit: %v", err)
		return err
	}
	return nil
}

func newBackend(cfg config.Config) (engine.Backend, error) {
	switch cfg.Backend {
	case config.BackendWindow:
		if !window.Available {
			return nil, window.ErrUnavailable
		}
		return window.New(), nil
	default:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errNotTerminal
		}
		return terminal.New(terminal.WithScale(cfg.Scale)), nil
	}
}

// loadAtlas builds the atlas named by the config: the layout file or the default
// grid, filled from the sheet file or the generated sheet
func loadAtlas(cfg config.Config) (*atlas.Atlas, error) {
	layout := atlas.DefaultLayout()
	if cfg.Layout != "" {
		l, err := atlas.LoadLayout(cfg.Layout)
		if err != nil {
			return nil, err
		}
		layout = l
	}

	a := atlas.New(layout)
	if cfg.Atlas == "" {
		if err := a.LoadGenerated(); err != nil {
			return nil, err
		}
		return a, nil
	}
	if err := a.LoadFile(cfg.Atlas); err != nil {
		return nil, fmt.Errorf("load atlas: %w", err)
	}
	return a, nil
}

func newDemo(cfg config.Config) (*demo.CardGame, error) {
	a, err := loadAtlas(cfg)
	if err != nil {
		return nil, err
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}
	return demo.New(demo.WithAtlas(a), demo.WithSeed(cfg.Seed), demo.WithBackground(bg)), nil
}
