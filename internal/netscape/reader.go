package netscape

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// token is a snapshot of the tokenizer's current token. The tokenizer reuses
// its buffers, so anything kept past the next call has to be copied.
type token struct {
	typ   html.TokenType
	name  string
	attrs map[string]string
	text  string
}

// Reader turns export markup into a flat sequence of events in document
// order. It does not decide nesting. A Reader is single pass; to read the
// same text again, create a new Reader.
type Reader struct {
	z    *html.Tokenizer
	held *token
	err  error

	sawTag  bool
	sawText bool
}

// NewReader returns a Reader over decoded markup text.
func NewReader(r io.Reader) *Reader {
	return &Reader{z: html.NewTokenizer(r)}
}

// Next returns the next event, or io.EOF once the document is exhausted.
// Any other error wraps ErrMalformedDocument and is sticky.
func (r *Reader) Next() (Event, error) {
	for {
		t, err := r.read()
		if err != nil {
			return Event{}, err
		}

		switch t.typ {
		case html.StartTagToken, html.SelfClosingTagToken:
			ev, ok, err := r.element(t)
			if err != nil {
				return Event{}, err
			}
			if ok {
				return ev, nil
			}
		case html.EndTagToken:
			if t.name == "dl" {
				return Event{Kind: EventContainerClose}, nil
			}
		}
	}
}

// element classifies a start tag. ok is false for tags without structure
// (<p>, <dt>, <meta>, ...).
func (r *Reader) element(t token) (Event, bool, error) {
	selfClosing := t.typ == html.SelfClosingTagToken

	switch t.name {
	case "dl":
		return Event{Kind: EventContainerOpen}, true, nil

	case "h3":
		text, err := r.textUntil("h3", selfClosing)
		if err != nil {
			return Event{}, false, err
		}
		return Event{Kind: EventFolderHeader, Text: text, Attrs: t.attrs}, true, nil

	case "a":
		text, err := r.textUntil("a", selfClosing)
		if err != nil {
			return Event{}, false, err
		}
		return Event{Kind: EventLink, Text: text, Attrs: t.attrs}, true, nil

	case "dd":
		text, err := r.textUntil("dd", selfClosing)
		if err != nil {
			return Event{}, false, err
		}
		if text == "" {
			return Event{}, false, nil
		}
		return Event{Kind: EventDescription, Text: text}, true, nil

	case "title":
		text, err := r.textUntil("title", selfClosing)
		if err != nil {
			return Event{}, false, err
		}
		return Event{Kind: EventTitle, Text: text}, true, nil

	case "h1":
		text, err := r.textUntil("h1", selfClosing)
		if err != nil {
			return Event{}, false, err
		}
		return Event{Kind: EventHeading, Text: text}, true, nil
	}

	return Event{}, false, nil
}

// textUntil gathers the text of an element up to its end tag. Exports rarely
// close <DD> and sometimes not even <A>, so a structural tag also ends the
// text; that tag is held back for the next call to Next.
func (r *Reader) textUntil(end string, selfClosing bool) (string, error) {
	if selfClosing {
		return "", nil
	}

	var b strings.Builder
	for {
		t, err := r.read()
		if errors.Is(err, io.EOF) {
			return strings.TrimSpace(b.String()), nil
		}
		if err != nil {
			return "", err
		}

		switch t.typ {
		case html.TextToken:
			b.WriteString(t.text)
		case html.EndTagToken:
			if t.name == end {
				return strings.TrimSpace(b.String()), nil
			}
			if t.name == "dl" {
				r.held = &t
				return strings.TrimSpace(b.String()), nil
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			if isStructural(t.name) {
				r.held = &t
				return strings.TrimSpace(b.String()), nil
			}
			if t.name == "br" {
				b.WriteByte('\n')
			}
		}
	}
}

func isStructural(name string) bool {
	switch name {
	case "dt", "dd", "dl", "h3", "a", "h1", "title":
		return true
	}
	return false
}

// read returns the next raw token, the held one first.
func (r *Reader) read() (token, error) {
	if r.held != nil {
		t := *r.held
		r.held = nil
		return t, nil
	}
	if r.err != nil {
		return token{}, r.err
	}

	tt := r.z.Next()
	if tt == html.ErrorToken {
		r.err = r.endErr(r.z.Err())
		return token{}, r.err
	}
	if !utf8.Valid(r.z.Raw()) {
		r.err = fmt.Errorf("%w: input is not valid UTF-8 text", ErrMalformedDocument)
		return token{}, r.err
	}

	t := token{typ: tt}
	switch tt {
	case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
		r.sawTag = true
		name, hasAttr := r.z.TagName()
		t.name = string(name)
		if hasAttr && tt != html.EndTagToken {
			t.attrs = r.attrs()
		}
	case html.TextToken:
		t.text = string(r.z.Text())
		if strings.TrimSpace(t.text) != "" {
			r.sawText = true
		}
	case html.DoctypeToken, html.CommentToken:
		r.sawTag = true
	}
	return t, nil
}

func (r *Reader) attrs() map[string]string {
	attrs := make(map[string]string, 4)
	for {
		key, val, more := r.z.TagAttr()
		attrs[string(key)] = string(val)
		if !more {
			return attrs
		}
	}
}

func (r *Reader) endErr(err error) error {
	if !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	switch {
	case r.sawTag:
		return io.EOF
	case r.sawText:
		return fmt.Errorf("%w: input contains no markup", ErrMalformedDocument)
	default:
		return fmt.Errorf("%w: empty input", ErrMalformedDocument)
	}
}

// Tokenize reads every event of text.
func Tokenize(text string) ([]Event, error) {
	r := NewReader(strings.NewReader(text))
	var events []Event
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
}
