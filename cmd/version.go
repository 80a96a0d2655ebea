package cmd

import "github.com/spf13/cobra"

// Version 应用版本
// 构建时通过 ldflags 设置：
// go build -ldflags "-X github.com/gonewx/cursorbuddy/cmd.Version=1.0.0"
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// 不需要读取配置
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			printf(cmd.OutOrStdout(), "cursorbuddy %s\n", Version)
		},
	}
}
