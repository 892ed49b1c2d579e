package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the build revision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sha := a.GitSHA
			if sha == "" {
				sha = "unknown"
			}
			if a.GitDirty != "" {
				sha += "-dirty"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "gh-repostats %s\n", sha)
			return nil
		},
	}
}
