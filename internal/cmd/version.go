package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/scape/internal/version"
)

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			return opts.print(cmd, view{
				value: info,
				text: func() string {
					return fmt.Sprintf("scape %s (commit=%s, built=%s, go=%s)\n",
						info.Version, info.Commit, info.BuildDate, info.GoVersion)
				},
			})
		},
	}
}
