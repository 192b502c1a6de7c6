package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/scape/internal/netscape"
)

const sampleExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3 ADD_DATE="1691940657" LAST_MODIFIED="1706939041">Bookmarks Bar</H3>
    <DL><p>
        <DT><A HREF="https://hub.docker.com/" ADD_DATE="1691940700">Docker Hub</A>
        <DT><H3>Dev</H3>
        <DL><p>
            <DT><A HREF="https://github.com/" ADD_DATE="1691940800" LAST_MODIFIED="1691940900" SHORTCUTURL="gh" TAGS="code,git">GitHub</A>
            <DD>Where the code lives
            <DT><A HREF="">Separator</A>
        </DL><p>
    </DL><p>
    <DT><A HREF="https://example.com/">Example</A>
</DL><p>
`

func writeExport(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.html")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("Failed to create test export file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	loader := NewLoader(writeExport(t, []byte(sampleExport)))
	doc, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if doc.Title != "Bookmarks" {
		t.Errorf("Title = %q, want Bookmarks", doc.Title)
	}
	if got := len(doc.Root.AllBookmarks()); got != 4 {
		t.Errorf("Load() returned %d bookmarks, want 4", got)
	}
	if doc.Root.FindFolder("Dev") == nil {
		t.Error("Load() lost the Dev folder")
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/path/bookmarks.html")
	_, err := loader.Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoaderLoadMalformed(t *testing.T) {
	loader := NewLoader(writeExport(t, []byte("this is not a bookmark export")))
	_, err := loader.Load()
	if !errors.Is(err, netscape.ErrMalformedDocument) {
		t.Errorf("Load() error = %v, want ErrMalformedDocument", err)
	}
}

func TestDecodeWindows1252(t *testing.T) {
	raw := "<!DOCTYPE NETSCAPE-Bookmark-file-1>\n" +
		`<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=windows-1252">` + "\n" +
		"<DL><p><DT><A HREF=\"http://example.com/\">Caf\xe9</A></DL>"

	doc, err := Decode(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := doc.Root.Links()[0].Title; got != "Café" {
		t.Errorf("title = %q, want Café", got)
	}
}

func TestDecodeWithUTF8BOM(t *testing.T) {
	doc, err := Decode(strings.NewReader("\xef\xbb\xbf<TITLE>Bookmarks</TITLE><DL><DT><A HREF=\"u\">A</A></DL>"))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if doc.Title != "Bookmarks" {
		t.Errorf("Title = %q, want Bookmarks", doc.Title)
	}
}
