package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/gonewx/cursorbuddy/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"github.com/spf13/cobra"
)

func newValidateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Check a companion manifest and print the resolved effects",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.cfg.Manifest
			if len(args) == 1 {
				path = args[0]
			}

			m, source, err := c.loadManifest(path, c.storageIfNeeded(path))
			if err != nil {
				return err
			}
			configs, err := m.Resolve()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printf(out, "manifest (%s): %d companion(s)\n", source, len(configs))

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			printf(w, "NAME\tFOLLOW\tOFFSET\tHOVER\tCLICK\tIDLE\n")
			for i, cfg := range configs {
				name := cfg.Name
				if name == "" {
					name = fmt.Sprintf("#%d", i)
				}
				printf(w, "%s\t%g\t(%g, %g)\t%s\t%s\t%s\n",
					name, cfg.FollowSpeed, cfg.Offset.X, cfg.Offset.Y,
					describeEffect(cfg.Hover), describeEffect(cfg.Click), describeEffect(cfg.Idle))
			}
			return w.Flush()
		},
	}
}

// storageIfNeeded 只有未指定文件时才需要读取用户存储
func (c *cli) storageIfNeeded(path string) *gdata.Manager {
	if path != "" {
		return nil
	}
	return c.storage()
}

func describeEffect(spec *config.EffectSpec) string {
	if spec == nil {
		return "off"
	}
	return fmt.Sprintf("%s x%g %s", spec.Type, spec.Intensity, spec.Duration)
}
