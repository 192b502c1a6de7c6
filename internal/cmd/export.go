package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/scape/internal/netscape"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Print an export, or one of its folders, as a JSON tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.loadExport(args[0])
			if err != nil {
				return err
			}
			f, err := folderOf(doc, folder)
			if err != nil {
				return err
			}
			return opts.print(cmd, view{value: netscape.ToJSON(f)})
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "export only the first folder with this exact name")
	return cmd
}
