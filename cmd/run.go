package cmd

import (
	"github.com/gonewx/cursorbuddy/pkg/app"
	"github.com/gonewx/cursorbuddy/pkg/config"
	"github.com/gonewx/cursorbuddy/pkg/game"
	"github.com/spf13/cobra"
)

func newRunCmd(c *cli) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Open a window with companions following the cursor",
		Long: `Opens a desktop window and starts every companion from the manifest.

Hotkeys: Esc quit, P pause/resume, F11 fullscreen, F3 debug overlay.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gm := c.storage()

			companions, err := c.companions(gm)
			if err != nil {
				return err
			}

			settings := game.NewSettingsManager(gm, c.logger)

			a, err := app.NewApp(app.Options{
				Config:     c.cfg,
				Companions: companions,
				Settings:   settings,
				Audio:      c.newAudio(settings),
				Logger:     c.logger,
				Loader:     c.loader,
			})
			if err != nil {
				return err
			}
			return c.runDesktop(a)
		},
	}

	flags := runCmd.Flags()
	flags.Int("width", config.DefaultWindowWidth, "logical window width")
	flags.Int("height", config.DefaultWindowHeight, "logical window height")
	flags.Int("tps", config.DefaultTPS, "logic ticks per second")
	flags.Bool("transparent", false, "transparent undecorated window")
	flags.Bool("fullscreen", false, "start fullscreen")
	flags.Bool("floating", false, "keep the window above others")
	return runCmd
}
