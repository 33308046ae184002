package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/cardkit/atlas"
)

func newAtlasCmd(s *settings) *cobra.Command {
	var (
		output      string
		printLayout bool
	)

	cmd := &cobra.Command{
		Use:   "atlas",
		Short: "Export the generated card sheet",
		Long: `Export the generated card sheet as a PNG. The image follows the atlas
layout, so it can be painted over and loaded back with --atlas.
With --print-layout the layout itself is written as TOML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.resolve(cmd)
			if err != nil {
				return err
			}
			layout := atlas.DefaultLayout()
			if cfg.Layout != "" {
				if layout, err = atlas.LoadLayout(cfg.Layout); err != nil {
					return err
				}
			}

			if printLayout {
				return layout.Encode(cmd.OutOrStdout())
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("export atlas: %w", err)
			}
			if err := png.Encode(f, atlas.Generate(layout)); err != nil {
				f.Close()
				return fmt.Errorf("export atlas: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("export atlas: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%v)\n", output, layout.Bounds().Size())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "cards.png", "PNG file to write")
	cmd.Flags().BoolVar(&printLayout, "print-layout", false, "write the layout as TOML instead")
	return cmd
}
