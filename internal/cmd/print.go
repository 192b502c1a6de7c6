package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/scape/internal/netscape"
	"github.com/MrSnakeDoc/scape/internal/output"
	"github.com/MrSnakeDoc/scape/internal/sources/export"
)

// view is one command result: a structured value, plus optional text and
// table renderings of it. Without a text rendering, text output is JSON.
type view struct {
	value any
	text  func() string
	table func() output.Table
}

func (o *rootOptions) print(cmd *cobra.Command, v view) error {
	p := output.NewPrinter(cmd.OutOrStdout(), o.format)
	switch {
	case o.format == output.FormatText && v.text != nil:
		_, err := fmt.Fprint(cmd.OutOrStdout(), v.text())
		return err
	case o.format == output.FormatText:
		return output.NewPrinter(cmd.OutOrStdout(), output.FormatJSON).Print(cmd.Context(), v.value)
	case o.format == output.FormatTable:
		if v.table == nil {
			return fmt.Errorf("table output is not supported by %s", cmd.Name())
		}
		return p.PrintTable(v.table())
	default:
		return p.Print(cmd.Context(), v.value)
	}
}

// loadExport reads and parses an export file.
func (o *rootOptions) loadExport(path string) (*netscape.Document, error) {
	loader := export.NewLoader(path)
	doc, err := loader.Load()
	if err != nil {
		return nil, err
	}
	o.log.Debugf("parsed %s: %d bookmarks", path, len(doc.Root.AllBookmarks()))
	return doc, nil
}

// folderOf returns the root, or the folder named name.
func folderOf(doc *netscape.Document, name string) (*netscape.Folder, error) {
	if name == "" {
		return doc.Root, nil
	}
	f := doc.Root.FindFolder(name)
	if f == nil {
		return nil, fmt.Errorf("folder %q not found", name)
	}
	return f, nil
}

func bookmarkTable(bookmarks []*netscape.Bookmark) output.Table {
	t := output.Table{Headers: []string{"TITLE", "URL", "ADDED"}}
	for _, bm := range bookmarks {
		added := ""
		if ts, ok := export.ParseTimestamp(bm.AddDate); ok {
			added = ts.UTC().Format("2006-01-02")
		}
		t.Rows = append(t.Rows, []string{bm.Title, bm.URL, added})
	}
	return t
}

func summaryTable(summary []netscape.FolderSummary) output.Table {
	t := output.Table{Headers: []string{"FOLDER", "DEPTH", "BOOKMARKS", "FOLDERS"}}
	for _, s := range summary {
		t.Rows = append(t.Rows, []string{
			strings.Repeat("  ", s.Depth) + s.Name,
			strconv.Itoa(s.Depth),
			strconv.Itoa(s.Bookmarks),
			strconv.Itoa(s.Folders),
		})
	}
	return t
}
