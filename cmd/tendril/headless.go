package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/tendril/config"
	"github.com/lixenwraith/tendril/engine"
	"github.com/lixenwraith/tendril/session"
)

// headlessFlags are shared by render and stats; unset flags keep the config values
type headlessFlags struct {
	ticks  int
	layout string
	scene  string
	width  float64
	height float64
}

func (f *headlessFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVarP(&f.ticks, "ticks", "n", 0, "Ticks to simulate (default run.ticks)")
	fl.StringVarP(&f.layout, "layout", "l", "", "Layout name or 1-based index")
	fl.StringVar(&f.scene, "scene", "", "YAML scene file, overrides --layout")
	fl.Float64Var(&f.width, "width", 0, "World width (default run.width)")
	fl.Float64Var(&f.height, "height", 0, "World height (default run.height)")
}

func (f *headlessFlags) apply(cfg *config.Config) {
	if f.ticks > 0 {
		cfg.Run.Ticks = f.ticks
	}
	if f.layout != "" {
		cfg.Run.Layout = f.layout
	}
	if f.scene != "" {
		cfg.Run.Scene = f.scene
	}
	if f.width > 0 {
		cfg.Run.Width = f.width
	}
	if f.height > 0 {
		cfg.Run.Height = f.height
	}
}

// simulate runs cfg.Run.Ticks ticks on mock time, one frame interval apart
// Restart holds and injection intervals behave as they would live
func simulate(cfg *config.Config) (*session.Session, error) {
	mock := engine.NewMockTime(time.Now())
	sess, err := session.New(cfg, session.Options{Time: mock})
	if err != nil {
		return nil, err
	}

	fps := cfg.Run.FPS
	if fps <= 0 {
		fps = 30
	}
	step := time.Second / time.Duration(fps)
	for range cfg.Run.Ticks {
		mock.Advance(step)
		sess.Tick()
	}
	return sess, nil
}

func renderCmd() *cobra.Command {
	var (
		hf    headlessFlags
		out   string
		scale float64
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Simulate headless and write the final frame as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			hf.apply(cfg)
			if scale > 0 {
				cfg.Run.Scale = scale
			}

			sess, err := simulate(cfg)
			if err != nil {
				return err
			}
			surface := sess.Render(cfg.Run.Scale)
			summary := cmd.OutOrStdout()
			if out == "-" {
				if err := surface.EncodePNG(cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("encode png: %w", err)
				}
				summary = cmd.ErrOrStderr()
			} else if err := surface.SavePNG(out); err != nil {
				return err
			}

			st := sess.World().Stats()
			fmt.Fprintf(summary, "%s %s: %d ticks, %d nodes -> %s\n",
				info.Sprint("rendered"), sess.Layout().Name, st.Frame, st.Nodes, out)
			return nil
		},
	}
	hf.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "tendril.png", "Output PNG path, - for stdout")
	cmd.Flags().Float64Var(&scale, "scale", 0, "Pixels per world unit (default run.scale)")
	return cmd
}

func statsCmd() *cobra.Command {
	var hf headlessFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Simulate headless and print per-path statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			hf.apply(cfg)

			sess, err := simulate(cfg)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), sess.Layout().Name, sess.World().Stats())
			return nil
		},
	}
	hf.register(cmd)
	return cmd
}

func printStats(w io.Writer, layout string, st engine.WorldStats) {
	fmt.Fprintf(w, "%s %s after %d ticks\n\n", brand.Sprint("tendril"), layout, st.Frame)

	rows := make([][]string, 0, len(st.Paths))
	for _, p := range st.Paths {
		rows = append(rows, []string{
			p.Name,
			strconv.Itoa(p.Nodes),
			strconv.Itoa(p.Fixed),
			strconv.FormatBool(p.Closed),
			fmt.Sprintf("%.1f", p.Length),
			fmt.Sprintf("%.2f", p.MinEdge),
			fmt.Sprintf("%.2f", p.MaxEdge),
		})
	}
	printTable(w, []string{"PATH", "NODES", "FIXED", "CLOSED", "LENGTH", "MIN EDGE", "MAX EDGE"}, rows)

	fmt.Fprintf(w, "\n  Total nodes:  %d\n", st.Nodes)
	fmt.Fprintf(w, "  Fixed nodes:  %d\n", st.Fixed)
	fmt.Fprintf(w, "  Total length: %.1f\n", st.Length)
}
