package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/scape/internal/netscape"
	"github.com/MrSnakeDoc/scape/internal/output"
)

func newBookmarksCmd(opts *rootOptions) *cobra.Command {
	var (
		folder   string
		contains string
	)

	cmd := &cobra.Command{
		Use:   "bookmarks FILE",
		Short: "List bookmarks in document order",
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

			var pred func(*netscape.Bookmark) bool
			if contains != "" {
				needle := strings.ToLower(contains)
				pred = func(bm *netscape.Bookmark) bool {
					return strings.Contains(strings.ToLower(bm.Title), needle) ||
						strings.Contains(strings.ToLower(bm.URL), needle)
				}
			}

			var (
				list   []*netscape.Bookmark
				values = []map[string]any{}
			)
			for bm := range f.FindBookmarks(pred) {
				list = append(list, bm)
				values = append(values, netscape.ToJSON(bm))
			}

			return opts.print(cmd, view{
				value: values,
				text:  func() string { return bookmarkLines(list) },
				table: func() output.Table { return bookmarkTable(list) },
			})
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "list only bookmarks below this folder")
	cmd.Flags().StringVar(&contains, "contains", "", "keep bookmarks whose title or URL contains this text (any case)")
	return cmd
}

func bookmarkLines(list []*netscape.Bookmark) string {
	var b strings.Builder
	for _, bm := range list {
		title := bm.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&b, "%s\n  %s\n", title, bm.URL)
	}
	return b.String()
}
