package netscape

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// recipesDoc is the two-entry export used across the query and JSON tests.
const recipesDoc = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="http://example.com/" ADD_DATE="1600000000">Home</A>
    <DT><H3 ADD_DATE="1600000001">Recipes</H3>
    <DL><p>
        <DT><A HREF="http://example.com/pasta">Pasta</A>
    </DL><p>
</DL><p>
`

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func mustParse(t *testing.T, text string) *Document {
	t.Helper()
	doc, err := Parse(text)
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc
}

func titles(bookmarks []*Bookmark) []string {
	out := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		out = append(out, b.Title)
	}
	return out
}
