package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/flowcanvas"
)

// checkConfigCommand creates the "check-config" command.
func (c *CLI) checkConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config [file]",
		Short: "Validate a config file and print the effective settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				c.configPath = args[0]
			}
			cfg, err := c.loadConfig()
			if err != nil {
				c.printError("%v", err)
				return err
			}
			c.printConfig(cfg)
			return nil
		},
	}
}

func (c *CLI) printConfig(cfg *flowcanvas.Config) {
	source := c.configPath
	if source == "" {
		source = "defaults"
	}
	c.printSuccess("config ok: %s", source)

	c.printTitle("viewport")
	v := cfg.Viewport
	c.printKeyValue("scale", fmt.Sprintf("%g .. %g", v.MinScale, v.MaxScale))
	c.printKeyValue("zoom factors", fmt.Sprintf("in %g, out %g", v.ZoomInFactor, v.ZoomOutFactor))
	c.printKeyValue("zoom modifier", v.ZoomModifier)

	c.printTitle("routing")
	c.printKeyValue("control offset", fmt.Sprintf("max(|dx| * %g, %g)", cfg.Routing.ControlRatio, cfg.Routing.ControlMin))

	c.printTitle("kinds")
	reg := cfg.Registry()
	for _, kind := range allKinds() {
		c.printKeyValue(kind.String(), fmt.Sprintf("%g x %g", reg.DisplayWidth(kind), reg.DisplayHeight(kind)))
		data := reg.DefaultData(kind)
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		c.printDetail("fields: %s", strings.Join(keys, ", "))
	}

	c.printTitle("window")
	c.printKeyValue("title", cfg.Window.Title)
	c.printKeyValue("size", fmt.Sprintf("%d x %d", cfg.Window.Width, cfg.Window.Height))
}

func allKinds() []flowcanvas.NodeKind {
	return []flowcanvas.NodeKind{
		flowcanvas.KindScript,
		flowcanvas.KindShot,
		flowcanvas.KindText,
		flowcanvas.KindImage,
		flowcanvas.KindVideo,
	}
}
