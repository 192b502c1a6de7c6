package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/scape/internal/netscape"
)

func newFindCmd(opts *rootOptions) *cobra.Command {
	var contains bool

	cmd := &cobra.Command{
		Use:   "find FILE NAME",
		Short: "Print the first folder named NAME",
		Long: `Print the first folder named NAME, searching the export in document
order. The name must match exactly unless --contains is given. The command
fails when no folder matches.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.loadExport(args[0])
			if err != nil {
				return err
			}

			match := netscape.ExactName(args[1])
			if contains {
				match = netscape.NameContains(args[1])
			}
			f := doc.Root.FindFolderFunc(match)
			if f == nil {
				return fmt.Errorf("folder %q not found", args[1])
			}

			return opts.print(cmd, view{
				value: netscape.ToJSON(f),
				text:  func() string { return folderText(f) },
			})
		},
	}

	cmd.Flags().BoolVar(&contains, "contains", false, "match folder names containing NAME (any case)")
	return cmd
}

func folderText(f *netscape.Folder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d bookmarks, %d folders)\n", f.Name, len(f.Links()), len(f.Subfolders()))
	if f.Description != "" {
		fmt.Fprintf(&b, "  %s\n", f.Description)
	}
	for _, sub := range f.Subfolders() {
		fmt.Fprintf(&b, "  [%s]\n", sub.Name)
	}
	for _, bm := range f.Links() {
		fmt.Fprintf(&b, "  %s  %s\n", bm.Title, bm.URL)
	}
	return b.String()
}
