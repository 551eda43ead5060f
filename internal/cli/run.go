package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/flowcanvas"
	"github.com/phanxgames/flowcanvas/ebitenview"
	"github.com/phanxgames/flowcanvas/hittest"
)

type runOpts struct {
	script  string
	demo    bool
	showFPS bool
	debug   bool
}

// runCommand creates the "run" command, which opens the canvas window.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the canvas in a window",
		Long: `Open the canvas in a window.

Keys 1-5 add a script, shot, text, image or video node at the centre of the
screen. Drag node headers to move them, drag from a right-hand port to a
left-hand port to connect, and drag with the right or middle button to pan.
Hold ctrl and scroll to zoom.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWindow(opts)
		},
	}
	cmd.Flags().StringVar(&opts.script, "script", "", "replay a JSON interaction script in the window")
	cmd.Flags().BoolVar(&opts.demo, "demo", false, "start with a connected script and shot node")
	cmd.Flags().BoolVar(&opts.showFPS, "fps", false, "show FPS and TPS")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log per-frame canvas counters")
	return cmd
}

func (c *CLI) runWindow(opts runOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	canvas, reg := c.newCanvas(cfg)
	canvas.SetDebugMode(opts.debug)

	if opts.demo {
		seedDemo(canvas)
	}
	if opts.script != "" {
		runner, err := loadScript(opts.script)
		if err != nil {
			return err
		}
		canvas.SetTestRunner(runner)
	}

	c.Logger.Info("opening window", "width", cfg.Window.Width, "height", cfg.Window.Height)
	return ebitenview.Run(canvas, hittest.NewLayout(reg), ebitenview.RunConfig{
		Title:   cfg.Window.Title,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		ShowFPS: opts.showFPS,
		Logger:  c.Logger,
	})
}

// seedDemo adds a script node wired to a shot node.
func seedDemo(canvas *flowcanvas.Canvas) {
	w, h := canvas.ViewportSize()
	script := canvas.AddNodeAtScreen(flowcanvas.KindScript, flowcanvas.Vec2{X: w/2 - 260, Y: h / 2})
	shot := canvas.AddNodeAtScreen(flowcanvas.KindShot, flowcanvas.Vec2{X: w/2 + 260, Y: h / 2})
	canvas.UpdateNodeData(script, flowcanvas.NodeData{
		flowcanvas.FieldContent: "INT. LIGHTHOUSE - NIGHT",
	})
	canvas.Connect(script, shot)
}

func loadScript(path string) (*flowcanvas.TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return flowcanvas.LoadTestScript(data)
}
