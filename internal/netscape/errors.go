package netscape

import "errors"

// ErrMalformedDocument is returned when the input cannot be read as markup
// at all. Irregular nesting never produces it.
var ErrMalformedDocument = errors.New("malformed bookmark document")
