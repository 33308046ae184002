package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/cardkit/config"
)

// settings holds the flag values shared by every subcommand
type settings struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	s := &settings{cfg: config.Default()}

	root := &cobra.Command{
		Use:          "cardkit",
		Short:        "Card game toolkit",
		Long:         "cardkit renders card games from a sprite atlas in a terminal or a desktop window.",
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.StringVarP(&s.configPath, "config", "c", "", "TOML config file")
	f.IntVar(&s.cfg.FPS, "fps", s.cfg.FPS, "target frames per second")
	f.IntVar(&s.cfg.Width, "width", s.cfg.Width, "frame width in pixels")
	f.IntVar(&s.cfg.Height, "height", s.cfg.Height, "frame height in pixels")
	f.IntVar(&s.cfg.Scale, "scale", s.cfg.Scale, "frame pixels per terminal column")
	f.Uint64Var(&s.cfg.Seed, "seed", s.cfg.Seed, "shuffle seed, 0 for a random game")
	f.StringVar(&s.cfg.Atlas, "atlas", s.cfg.Atlas, "card sheet PNG, empty for the generated sheet")
	f.StringVar(&s.cfg.Layout, "layout", s.cfg.Layout, "atlas layout TOML, empty for the default grid")
	f.BoolVar(&s.cfg.Debug, "debug", s.cfg.Debug, "write logs/cardkit.log")
	f.StringVarP(&s.cfg.Backend, "backend", "b", s.cfg.Backend, "terminal or window (window needs a build with -tags ebiten)")
	f.StringVar(&s.cfg.Title, "title", s.cfg.Title, "title bar text")
	f.StringVar(&s.cfg.Background, "background", s.cfg.Background, "table color as #rrggbb")

	root.AddCommand(newPlayCmd(s), newSimpleCmd(s), newAtlasCmd(s), newConfigCmd(s))
	return root
}

// resolve loads the config file, if any, and applies the flags the user set on top
func (s *settings) resolve(cmd *cobra.Command) (config.Config, error) {
	if s.configPath == "" {
		return s.cfg, s.cfg.Validate()
	}

	cfg, err := config.Load(s.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	overrides := map[string]func(){
		"fps":        func() { cfg.FPS = s.cfg.FPS },
		"width":      func() { cfg.Width = s.cfg.Width },
		"height":     func() { cfg.Height = s.cfg.Height },
		"scale":      func() { cfg.Scale = s.cfg.Scale },
		"seed":       func() { cfg.Seed = s.cfg.Seed },
		"atlas":      func() { cfg.Atlas = s.cfg.Atlas },
		"layout":     func() { cfg.Layout = s.cfg.Layout },
		"debug":      func() { cfg.Debug = s.cfg.Debug },
		"backend":    func() { cfg.Backend = s.cfg.Backend },
		"title":      func() { cfg.Title = s.cfg.Title },
		"background": func() { cfg.Background = s.cfg.Background },
	}
	for name, apply := range overrides {
		if flags.Changed(name) {
			apply()
		}
	}
	return cfg, cfg.Validate()
}

func newConfigCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.resolve(cmd)
			if err != nil {
				return err
			}
			return cfg.Encode(cmd.OutOrStdout())
		},
	}
}
