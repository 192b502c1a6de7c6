// Package netscape parses Netscape bookmark export files (the
// NETSCAPE-Bookmark-file-1 format written by Chrome, Firefox, Edge and
// Internet Explorer) into a tree of folders and bookmarks.
package netscape

// Kind discriminates the two node types of a bookmark tree.
type Kind string

const (
	KindFolder   Kind = "folder"
	KindBookmark Kind = "bookmark"
)

// Node is either a *Folder or a *Bookmark.
type Node interface {
	Kind() Kind
	node()
}

// Bookmark is a link entry. It is always a leaf.
// Optional attributes are empty when the export did not carry them.
type Bookmark struct {
	Title string
	URL   string

	// Raw ADD_DATE / LAST_MODIFIED values, no epoch interpretation.
	AddDate      string
	LastModified string

	// Icon is the raw ICON attribute (usually a data: URI), kept opaque.
	Icon    string
	IconURI string

	// ShortcutURL is the Firefox keyword (SHORTCUTURL).
	ShortcutURL string
	Tags        []string

	Description string
}

func (*Bookmark) Kind() Kind { return KindBookmark }
func (*Bookmark) node()      {}

// Folder is a container of bookmarks and sub folders in document order.
type Folder struct {
	Name     string
	Children []Node

	AddDate      string
	LastModified string

	// PersonalToolbar marks the browser toolbar folder.
	PersonalToolbar bool
	Description     string

	// IsRoot is only set on the synthetic folder holding the whole document.
	IsRoot bool
}

func (*Folder) Kind() Kind { return KindFolder }
func (*Folder) node()      {}

func (f *Folder) append(n Node) {
	f.Children = append(f.Children, n)
}

// Document is the result of parsing one export.
type Document struct {
	// Title is the text of the <TITLE> element.
	Title string
	// Heading is the text of the <H1> element.
	Heading string
	Root    *Folder
}
