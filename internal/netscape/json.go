package netscape

import (
	"encoding/json"
	"fmt"
)

type bookmarkJSON struct {
	Type         Kind     `json:"type"`
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	AddDate      string   `json:"add_date,omitempty"`
	LastModified string   `json:"last_modified,omitempty"`
	Icon         string   `json:"icon,omitempty"`
	IconURI      string   `json:"icon_uri,omitempty"`
	ShortcutURL  string   `json:"shortcut_url,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Description  string   `json:"description,omitempty"`
}

type folderFields struct {
	Type            Kind   `json:"type"`
	Name            string `json:"name"`
	AddDate         string `json:"add_date,omitempty"`
	LastModified    string `json:"last_modified,omitempty"`
	PersonalToolbar bool   `json:"personal_toolbar,omitempty"`
	Description     string `json:"description,omitempty"`
}

type folderJSON struct {
	folderFields
	Children []Node `json:"children"`
}

type folderDecode struct {
	folderFields
	Children []json.RawMessage `json:"children"`
}

// MarshalJSON encodes b with a "bookmark" type tag. Absent attributes are
// omitted.
func (b *Bookmark) MarshalJSON() ([]byte, error) {
	return json.Marshal(bookmarkJSON{
		Type:         KindBookmark,
		Title:        b.Title,
		URL:          b.URL,
		AddDate:      b.AddDate,
		LastModified: b.LastModified,
		Icon:         b.Icon,
		IconURI:      b.IconURI,
		ShortcutURL:  b.ShortcutURL,
		Tags:         b.Tags,
		Description:  b.Description,
	})
}

// MarshalJSON encodes f and its subtree with a "folder" type tag.
func (f *Folder) MarshalJSON() ([]byte, error) {
	children := f.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(folderJSON{
		folderFields: folderFields{
			Type:            KindFolder,
			Name:            f.Name,
			AddDate:         f.AddDate,
			LastModified:    f.LastModified,
			PersonalToolbar: f.PersonalToolbar,
			Description:     f.Description,
		},
		Children: children,
	})
}

// ToJSON converts a subtree into plain maps and slices ready for any
// encoder. Absent optional attributes are left out.
func ToJSON(n Node) map[string]any {
	switch v := n.(type) {
	case *Bookmark:
		return bookmarkMap(v)
	case *Folder:
		return folderMap(v)
	default:
		return nil
	}
}

func bookmarkMap(b *Bookmark) map[string]any {
	m := map[string]any{
		"type":  string(KindBookmark),
		"title": b.Title,
		"url":   b.URL,
	}
	putString(m, "add_date", b.AddDate)
	putString(m, "last_modified", b.LastModified)
	putString(m, "icon", b.Icon)
	putString(m, "icon_uri", b.IconURI)
	putString(m, "shortcut_url", b.ShortcutURL)
	if len(b.Tags) > 0 {
		tags := make([]any, len(b.Tags))
		for i, t := range b.Tags {
			tags[i] = t
		}
		m["tags"] = tags
	}
	putString(m, "description", b.Description)
	return m
}

func folderMap(f *Folder) map[string]any {
	children := make([]any, 0, len(f.Children))
	for _, child := range f.Children {
		children = append(children, ToJSON(child))
	}
	m := map[string]any{
		"type":     string(KindFolder),
		"name":     f.Name,
		"children": children,
	}
	putString(m, "add_date", f.AddDate)
	putString(m, "last_modified", f.LastModified)
	if f.PersonalToolbar {
		m["personal_toolbar"] = true
	}
	putString(m, "description", f.Description)
	return m
}

func putString(m map[string]any, key, val string) {
	if val != "" {
		m[key] = val
	}
}

// DecodeNode rebuilds a subtree from the JSON written by MarshalJSON or
// ToJSON.
func DecodeNode(data []byte) (Node, error) {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("failed to decode node: %w", err)
	}

	switch head.Type {
	case KindBookmark:
		var bj bookmarkJSON
		if err := json.Unmarshal(data, &bj); err != nil {
			return nil, fmt.Errorf("failed to decode bookmark: %w", err)
		}
		return &Bookmark{
			Title:        bj.Title,
			URL:          bj.URL,
			AddDate:      bj.AddDate,
			LastModified: bj.LastModified,
			Icon:         bj.Icon,
			IconURI:      bj.IconURI,
			ShortcutURL:  bj.ShortcutURL,
			Tags:         bj.Tags,
			Description:  bj.Description,
		}, nil

	case KindFolder:
		var fj folderDecode
		if err := json.Unmarshal(data, &fj); err != nil {
			return nil, fmt.Errorf("failed to decode folder: %w", err)
		}
		f := &Folder{
			Name:            fj.Name,
			AddDate:         fj.AddDate,
			LastModified:    fj.LastModified,
			PersonalToolbar: fj.PersonalToolbar,
			Description:     fj.Description,
		}
		for _, raw := range fj.Children {
			child, err := DecodeNode(raw)
			if err != nil {
				return nil, err
			}
			f.append(child)
		}
		return f, nil

	default:
		return nil, fmt.Errorf("unknown node type %q", head.Type)
	}
}

type documentJSON struct {
	Title   string          `json:"title,omitempty"`
	Heading string          `json:"heading,omitempty"`
	Root    json.RawMessage `json:"root"`
}

// MarshalJSON encodes the document title, heading and root folder.
func (d *Document) MarshalJSON() ([]byte, error) {
	root, err := d.Root.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(documentJSON{Title: d.Title, Heading: d.Heading, Root: root})
}

// DecodeDocument is the inverse of Document.MarshalJSON.
func DecodeDocument(data []byte) (*Document, error) {
	var dj documentJSON
	if err := json.Unmarshal(data, &dj); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	n, err := DecodeNode(dj.Root)
	if err != nil {
		return nil, err
	}
	root, ok := n.(*Folder)
	if !ok {
		return nil, fmt.Errorf("document root is a %s, want a folder", n.Kind())
	}
	root.IsRoot = true
	return &Document{Title: dj.Title, Heading: dj.Heading, Root: root}, nil
}
