package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/framecore/internal/app"
)

func newBenchCmd(g *globals) *cobra.Command {
	opts := app.DefaultBenchOptions()

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Render the demo offscreen and report frame statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Config = g.cfg
			opts.Logger = g.logger

			s, err := app.Bench(opts)
			if err != nil {
				return err
			}
			_, err = s.WriteTo(cmd.OutOrStdout())
			return err
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Width, "width", opts.Width, "screen width in cells")
	f.IntVar(&opts.Height, "height", opts.Height, "screen height in cells")
	f.IntVarP(&opts.Frames, "frames", "n", opts.Frames, "number of frames")
	f.DurationVar(&opts.Step, "step", opts.Step, "simulated time per frame")
	f.IntVar(&opts.KeyEvery, "key-every", opts.KeyEvery, "press + every n frames (0 = never)")
	f.IntVar(&opts.ForceEvery, "force-every", opts.ForceEvery, "force a full redraw every n frames (0 = never)")
	f.BoolVar(&opts.Pulse, "pulse", opts.Pulse, "run the full-screen background pulse")
	return cmd
}
