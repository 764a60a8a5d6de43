package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/framecore/internal/animation"
	"github.com/dshills/framecore/internal/app"
)

func newDemoCmd(g *globals) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive demo",
		Long: `Run the interactive demo in the current terminal.

Keys: +/- change the counter, p toggles the background pulse,
r forces a full redraw, q or Ctrl-C quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.NewBackend(g.cfg)
			if err != nil {
				return err
			}

			tl := animation.New(time.Now())
			a := app.New(b, app.NewDemo(tl, g.cfg.Theme), app.Options{
				Config:      g.cfg,
				ConfigPath:  g.configPath,
				WatchConfig: watch,
				Logger:      g.logger,
				Timeline:    tl,
			})

			g.logger.Info("demo starting", "backend", g.cfg.Renderer.Backend, "config", g.configPath)
			if err := a.Run(cmd.Context()); err != nil {
				return err
			}
			s := a.Metrics().Snapshot()
			g.logger.Info("demo finished", "frames", s.FrameCount, "bytes", s.Bytes)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", true, "reload the config file when it changes")
	return cmd
}
