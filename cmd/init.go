package cmd

import (
	"fmt"
	"os"

	"github.com/gonewx/cursorbuddy/pkg/embedded"
	"github.com/gonewx/cursorbuddy/pkg/game"
	"github.com/spf13/cobra"
)

func newInitCmd(c *cli) *cobra.Command {
	var (
		output string
		force  bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in manifest to user storage or a file for editing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := embedded.DefaultManifest()
			if err != nil {
				return fmt.Errorf("failed to read built-in manifest: %w", err)
			}

			if output != "" {
				if _, err := os.Stat(output); err == nil && !force {
					return fmt.Errorf("%s already exists, use --force to overwrite", output)
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("failed to write manifest: %w", err)
				}
				printf(cmd.OutOrStdout(), "manifest written to %s\n", output)
				return nil
			}

			gm, err := c.openStorage()
			if err != nil {
				return err
			}
			store := game.NewManifestStore(gm, c.logger)
			if store.Exists() && !force {
				return fmt.Errorf("a manifest is already stored, use --force to overwrite")
			}
			if err := store.Save(data); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "manifest stored for %s\n", appName)
			return nil
		},
	}

	initCmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of user storage")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing manifest")
	return initCmd
}
