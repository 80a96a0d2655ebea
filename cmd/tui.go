package cmd

import (
	"fmt"

	"github.com/gonewx/cursorbuddy/pkg/config"
	"github.com/gonewx/cursorbuddy/pkg/terminal"
	"github.com/spf13/cobra"
)

func newTUICmd(c *cli) *cobra.Command {
	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Run companions inside the terminal",
		Long: `Runs the companions in the terminal using mouse tracking.

Keys: q or Esc quit, p pause/resume. Logs go only to --log-file.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationQuietConsole: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			companions, err := c.companions(c.storage())
			if err != nil {
				return err
			}

			screen, err := c.newScreen()
			if err != nil {
				return fmt.Errorf("failed to create terminal screen: %w", err)
			}

			t, err := terminal.New(screen, terminal.Options{
				Config:     c.cfg.Terminal,
				Companions: companions,
				Logger:     c.logger,
			})
			if err != nil {
				return err
			}
			if err := t.Init(); err != nil {
				t.Close()
				return err
			}
			return c.runTerminal(cmd.Context(), t)
		},
	}

	flags := tuiCmd.Flags()
	flags.Bool("sound", false, "chirp when a companion is clicked")
	flags.Int("frame-ms", config.DefaultTerminalFrameMs, "milliseconds between frames")
	return tuiCmd
}
