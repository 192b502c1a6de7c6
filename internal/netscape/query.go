package netscape

import (
	"fmt"
	"iter"
	"regexp"
	"strings"
)

// Walk yields every node below f in pre-order: a folder is yielded before
// its contents, and its contents are exhausted before the next sibling.
// The path holds the names of the folders between f and the node.
func (f *Folder) Walk() iter.Seq2[[]string, Node] {
	return func(yield func([]string, Node) bool) {
		walk(f, nil, yield)
	}
}

func walk(f *Folder, path []string, yield func([]string, Node) bool) bool {
	for _, child := range f.Children {
		if !yield(path, child) {
			return false
		}
		sub, ok := child.(*Folder)
		if !ok {
			continue
		}
		if !walk(sub, append(path[:len(path):len(path)], sub.Name), yield) {
			return false
		}
	}
	return true
}

// FindBookmarks lazily yields the bookmarks below f accepted by pred, in
// pre-order. A nil pred accepts everything.
func (f *Folder) FindBookmarks(pred func(*Bookmark) bool) iter.Seq[*Bookmark] {
	return func(yield func(*Bookmark) bool) {
		for _, n := range f.Walk() {
			bm, ok := n.(*Bookmark)
			if !ok || (pred != nil && !pred(bm)) {
				continue
			}
			if !yield(bm) {
				return
			}
		}
	}
}

// AllBookmarks flattens every bookmark below f in document order.
func (f *Folder) AllBookmarks() []*Bookmark {
	var out []*Bookmark
	for bm := range f.FindBookmarks(nil) {
		out = append(out, bm)
	}
	return out
}

// FolderMatcher selects folders in FindFolderFunc.
type FolderMatcher func(*Folder) bool

// ExactName matches a folder name exactly, case included.
func ExactName(name string) FolderMatcher {
	return func(f *Folder) bool { return f.Name == name }
}

// NameContains matches folders whose name contains sub, ignoring case.
func NameContains(sub string) FolderMatcher {
	sub = strings.ToLower(sub)
	return func(f *Folder) bool { return strings.Contains(strings.ToLower(f.Name), sub) }
}

// NameMatches matches folder names against re.
func NameMatches(re *regexp.Regexp) FolderMatcher {
	return func(f *Folder) bool { return re.MatchString(f.Name) }
}

// FindFolder returns the first folder named name, f itself included, in
// pre-order. It returns nil when there is none. The returned folder is part
// of the tree and must not be modified.
func (f *Folder) FindFolder(name string) *Folder {
	return f.FindFolderFunc(ExactName(name))
}

// FindFolderFunc is FindFolder with a custom matcher.
func (f *Folder) FindFolderFunc(match FolderMatcher) *Folder {
	if match(f) {
		return f
	}
	for _, n := range f.Walk() {
		if sub, ok := n.(*Folder); ok && match(sub) {
			return sub
		}
	}
	return nil
}

// Links returns the bookmarks directly inside f.
func (f *Folder) Links() []*Bookmark {
	var out []*Bookmark
	for _, n := range f.Children {
		if bm, ok := n.(*Bookmark); ok {
			out = append(out, bm)
		}
	}
	return out
}

// Subfolders returns the folders directly inside f.
func (f *Folder) Subfolders() []*Folder {
	var out []*Folder
	for _, n := range f.Children {
		if sub, ok := n.(*Folder); ok {
			out = append(out, sub)
		}
	}
	return out
}

// FolderSummary describes one folder of a tree.
type FolderSummary struct {
	Name      string `json:"name" yaml:"name"`
	Depth     int    `json:"depth" yaml:"depth"`
	Bookmarks int    `json:"num_bookmarks" yaml:"num_bookmarks"`
	Folders   int    `json:"num_folders" yaml:"num_folders"`
}

// Summary describes f and every folder below it, in pre-order. f has depth 0.
func (f *Folder) Summary() []FolderSummary {
	out := []FolderSummary{summarize(f, 0)}
	for path, n := range f.Walk() {
		if sub, ok := n.(*Folder); ok {
			out = append(out, summarize(sub, len(path)+1))
		}
	}
	return out
}

func summarize(f *Folder, depth int) FolderSummary {
	return FolderSummary{
		Name:      f.Name,
		Depth:     depth,
		Bookmarks: len(f.Links()),
		Folders:   len(f.Subfolders()),
	}
}

// Outline renders the folder hierarchy with bookmark counts, one line per
// folder.
func (d *Document) Outline() string {
	var b strings.Builder
	for i, s := range d.Root.Summary() {
		if i == 0 {
			fmt.Fprintf(&b, "Root folder: %s (%d bookmarks)\n", s.Name, s.Bookmarks)
			continue
		}
		fmt.Fprintf(&b, "%sFolder: %s (%d bookmarks)\n", strings.Repeat("  ", s.Depth), s.Name, s.Bookmarks)
	}
	return b.String()
}
