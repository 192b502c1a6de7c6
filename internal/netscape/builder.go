package netscape

import (
	"errors"
	"io"
	"strings"
)

// Builder rebuilds the folder tree from reader events in a single pass.
//
// Exports emit a folder header before the list holding its entries, and
// often leave lists unclosed. The builder keeps the header in a pending slot
// until its list opens, and never fails on unbalanced tags: whatever was
// consumed so far is always a usable tree.
type Builder struct {
	doc *Document

	// open folders, root at the bottom
	stack []*Folder
	// one entry per open <DL>: whether it pushed a folder
	containers []bool
	pending    *Folder
}

// NewBuilder returns a Builder holding an empty root folder.
func NewBuilder() *Builder {
	root := &Folder{IsRoot: true}
	return &Builder{
		doc:   &Document{Root: root},
		stack: []*Folder{root},
	}
}

func (b *Builder) top() *Folder {
	return b.stack[len(b.stack)-1]
}

// Apply consumes one event.
func (b *Builder) Apply(ev Event) {
	switch ev.Kind {
	case EventFolderHeader:
		b.flushPending()
		b.pending = &Folder{
			Name:            ev.Text,
			AddDate:         ev.Attr(AttrAddDate),
			LastModified:    ev.Attr(AttrLastModified),
			PersonalToolbar: strings.EqualFold(ev.Attr(AttrPersonalToolbar), "true"),
		}

	case EventContainerOpen:
		if b.pending == nil {
			b.containers = append(b.containers, false)
			return
		}
		b.top().append(b.pending)
		b.stack = append(b.stack, b.pending)
		b.containers = append(b.containers, true)
		b.pending = nil

	case EventContainerClose:
		b.flushPending()
		if len(b.containers) == 0 {
			return
		}
		pushed := b.containers[len(b.containers)-1]
		b.containers = b.containers[:len(b.containers)-1]
		if pushed && len(b.stack) > 1 {
			b.stack = b.stack[:len(b.stack)-1]
		}

	case EventLink:
		b.flushPending()
		b.top().append(newBookmark(ev))

	case EventDescription:
		b.describe(ev.Text)

	case EventTitle:
		b.doc.Title = ev.Text
		if b.doc.Root.Name == "" {
			b.doc.Root.Name = ev.Text
		}

	case EventHeading:
		b.doc.Heading = ev.Text
	}
}

// describe attaches description text to the folder waiting for its list, or
// to the bookmark just appended. Anything else is dropped.
func (b *Builder) describe(text string) {
	if b.pending != nil {
		b.pending.Description = joinDescription(b.pending.Description, text)
		return
	}
	children := b.top().Children
	if len(children) == 0 {
		return
	}
	if bm, ok := children[len(children)-1].(*Bookmark); ok {
		bm.Description = joinDescription(bm.Description, text)
	}
}

func joinDescription(current, text string) string {
	if current == "" {
		return text
	}
	return current + "\n" + text
}

// flushPending keeps a header that never got a list as an empty folder.
func (b *Builder) flushPending() {
	if b.pending == nil {
		return
	}
	b.top().append(b.pending)
	b.pending = nil
}

// Document returns the tree built so far. Open lists are left as they are.
func (b *Builder) Document() *Document {
	b.flushPending()
	return b.doc
}

func newBookmark(ev Event) *Bookmark {
	return &Bookmark{
		Title:        ev.Text,
		URL:          ev.Attr(AttrHref),
		AddDate:      ev.Attr(AttrAddDate),
		LastModified: ev.Attr(AttrLastModified),
		Icon:         ev.Attr(AttrIcon),
		IconURI:      ev.Attr(AttrIconURI),
		ShortcutURL:  ev.Attr(AttrShortcutURL),
		Tags:         splitTags(ev.Attr(AttrTags)),
	}
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// ParseReader parses decoded export markup read from r.
func ParseReader(r io.Reader) (*Document, error) {
	reader := NewReader(r)
	builder := NewBuilder()
	for {
		ev, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return builder.Document(), nil
		}
		if err != nil {
			return nil, err
		}
		builder.Apply(ev)
	}
}

// Parse parses decoded export markup.
func Parse(text string) (*Document, error) {
	return ParseReader(strings.NewReader(text))
}
