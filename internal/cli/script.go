package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/flowcanvas"
	"github.com/phanxgames/flowcanvas/hittest"
)

const (
	scriptTickRate     = 60
	defaultScriptLimit = 100000
)

type scriptOpts struct {
	maxFrames int
	paths     bool
}

// scriptCommand creates the "script" command, which replays an interaction
// script without opening a window.
func (c *CLI) scriptCommand() *cobra.Command {
	var opts scriptOpts
	cmd := &cobra.Command{
		Use:   "script <file.json>",
		Short: "Replay an interaction script headlessly and print the resulting graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.replay(args[0], opts)
		},
	}
	cmd.Flags().IntVar(&opts.maxFrames, "max-frames", defaultScriptLimit, "give up after this many frames")
	cmd.Flags().BoolVar(&opts.paths, "paths", false, "print SVG paths for every edge")
	return cmd
}

func (c *CLI) replay(path string, opts scriptOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := loadScript(path)
	if err != nil {
		return err
	}

	canvas, reg := c.newCanvas(cfg)
	canvas.SetHitTester(hittest.NewLayout(reg).For(canvas))
	canvas.SetTestRunner(runner)

	p := newProgress(c.Logger)
	frames, err := replayFrames(canvas, runner, opts.maxFrames)
	if err != nil {
		c.printError("%v", err)
		return err
	}
	p.done(fmt.Sprintf("replayed %d frames", frames))

	c.printSummary(canvas.Frame(), opts.paths)
	return nil
}

// replayFrames advances canvas at a fixed tick until runner is done.
func replayFrames(canvas *flowcanvas.Canvas, runner *flowcanvas.TestRunner, limit int) (int, error) {
	if limit <= 0 {
		limit = defaultScriptLimit
	}
	dt := float32(1) / scriptTickRate
	for frame := 1; frame <= limit; frame++ {
		canvas.Update(dt)
		if runner.Done() && canvas.PendingInjections() == 0 {
			return frame, nil
		}
	}
	return limit, fmt.Errorf("script not finished after %d frames", limit)
}

func (c *CLI) printSummary(f flowcanvas.Frame, paths bool) {
	c.printSuccess("script finished")
	c.printKeyValue("viewport", fmt.Sprintf("pan (%g, %g) zoom %d%%", f.Viewport.PanX, f.Viewport.PanY, f.Stats.ScalePercent))
	c.printKeyValue("nodes", fmt.Sprint(f.Stats.Nodes))
	for _, n := range f.Nodes {
		c.printDetail("%s %s at (%g, %g) %s", n.Kind, n.ID, n.Position.X, n.Position.Y, n.Status)
	}
	c.printKeyValue("edges", fmt.Sprint(f.Stats.Edges))
	for _, e := range f.Edges {
		c.printDetail("%s -> %s", e.SourceNodeID, e.TargetNodeID)
		if paths {
			c.printDetail("  %s", e.Curve.SVGPath())
		}
	}
}
