package netscape

import "fmt"

// EventKind classifies the elements of an export that carry structure.
type EventKind int

const (
	// EventFolderHeader is an <H3> folder title.
	EventFolderHeader EventKind = iota + 1
	// EventContainerOpen is a <DL> opening a folder's entries.
	EventContainerOpen
	// EventContainerClose is a </DL>.
	EventContainerClose
	// EventLink is an <A> bookmark entry.
	EventLink
	// EventDescription is the text following a <DD>.
	EventDescription
	// EventTitle is the document <TITLE>.
	EventTitle
	// EventHeading is the document <H1>.
	EventHeading
)

func (k EventKind) String() string {
	switch k {
	case EventFolderHeader:
		return "folder_header"
	case EventContainerOpen:
		return "container_open"
	case EventContainerClose:
		return "container_close"
	case EventLink:
		return "link"
	case EventDescription:
		return "description"
	case EventTitle:
		return "title"
	case EventHeading:
		return "heading"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Attribute names as reported by the tokenizer (lower case).
const (
	AttrHref            = "href"
	AttrAddDate         = "add_date"
	AttrLastModified    = "last_modified"
	AttrIcon            = "icon"
	AttrIconURI         = "icon_uri"
	AttrShortcutURL     = "shortcuturl"
	AttrTags            = "tags"
	AttrPersonalToolbar = "personal_toolbar_folder"
)

// Event is one classified element. Text holds the element text for headers,
// links, descriptions, title and heading. Attrs only holds the attributes
// present in the source.
type Event struct {
	Kind  EventKind
	Text  string
	Attrs map[string]string
}

// Attr returns the named attribute, or "" when absent.
func (e Event) Attr(name string) string {
	return e.Attrs[name]
}
