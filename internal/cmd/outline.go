package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/scape/internal/output"
)

func newOutlineCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "outline FILE",
		Short: "Print the folder hierarchy with bookmark counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.loadExport(args[0])
			if err != nil {
				return err
			}
			summary := doc.Root.Summary()
			return opts.print(cmd, view{
				value: summary,
				text:  doc.Outline,
				table: func() output.Table { return summaryTable(summary) },
			})
		},
	}
}
