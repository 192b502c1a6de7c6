package export

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"

	"github.com/MrSnakeDoc/scape/internal/netscape"
	"github.com/MrSnakeDoc/scape/internal/utils"
)

// Loader handles loading and parsing of a Netscape bookmark export file
type Loader struct {
	filePath string
}

// NewLoader creates a new export loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the export file path
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads and parses the export file
func (l *Loader) Load() (*netscape.Document, error) {
	f, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmark export: %w", err)
	}
	defer utils.Close(f)

	return Decode(f)
}

// Decode converts raw export bytes to UTF-8 and parses them.
// The encoding comes from a BOM or the export's <META> charset; IE exports
// are often windows-1252.
func Decode(r io.Reader) (*netscape.Document, error) {
	text, err := charset.NewReader(r, "")
	if err != nil {
		return nil, fmt.Errorf("failed to decode bookmark export: %w", err)
	}

	doc, err := netscape.ParseReader(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bookmark export: %w", err)
	}

	return doc, nil
}
