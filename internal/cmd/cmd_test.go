package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3 ADD_DATE="1691940800" PERSONAL_TOOLBAR_FOLDER="true">Bookmarks Bar</H3>
    <DL><p>
        <DT><H3>Dev Tools</H3>
        <DL><p>
            <DT><A HREF="https://github.com/" ADD_DATE="1691940800">GitHub</A>
            <DT><A HREF="https://go.dev/">Go</A>
        </DL><p>
        <DT><A HREF="https://news.ycombinator.com/">Hacker News</A>
        <DD>Tech news
    </DL><p>
</DL><p>
`

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.html")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestExportDefaultsToJSONWhenNotATerminal(t *testing.T) {
	out, err := run(t, "export", writeExport(t))
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "folder", tree["type"])
	assert.Equal(t, "Bookmarks", tree["name"])
}

func TestExportFolder(t *testing.T) {
	path := writeExport(t)

	out, err := run(t, "export", path, "--folder", "Dev Tools", "-q", ".children | length")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	_, err = run(t, "export", path, "--folder", "dev tools")
	assert.ErrorContains(t, err, `folder "dev tools" not found`)
}

func TestBookmarks(t *testing.T) {
	path := writeExport(t)

	out, err := run(t, "bookmarks", path, "-o", "ndjson", "-q", ".title")
	require.NoError(t, err)
	assert.Equal(t, "\"GitHub\"\n\"Go\"\n\"Hacker News\"\n", out)

	out, err = run(t, "bookmarks", path, "--contains", "NEWS", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "Hacker News\n  https://news.ycombinator.com/\n", out)

	out, err = run(t, "bookmarks", path, "--folder", "Dev Tools", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "2023-08-13")
	assert.NotContains(t, out, "Hacker News")

	out, err = run(t, "bookmarks", path, "--contains", "nothing", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestFind(t *testing.T) {
	path := writeExport(t)

	out, err := run(t, "find", path, "bar", "--contains", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t,
		"Bookmarks Bar (1 bookmarks, 1 folders)\n"+
			"  [Dev Tools]\n"+
			"  Hacker News  https://news.ycombinator.com/\n",
		out)

	out, err = run(t, "find", path, "Dev Tools", "-o", "yaml", "-q", ".name")
	require.NoError(t, err)
	assert.Equal(t, "Dev Tools\n", out)

	_, err = run(t, "find", path, "Missing")
	assert.Error(t, err)
}

func TestOutline(t *testing.T) {
	path := writeExport(t)

	out, err := run(t, "outline", path, "-o", "text")
	require.NoError(t, err)
	assert.Equal(t,
		"Root folder: Bookmarks (0 bookmarks)\n"+
			"  Folder: Bookmarks Bar (1 bookmarks)\n"+
			"    Folder: Dev Tools (2 bookmarks)\n",
		out)

	out, err = run(t, "outline", path, "-o", "json", "-q", "map(.num_bookmarks) | add")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestTableNotSupported(t *testing.T) {
	_, err := run(t, "export", writeExport(t), "-o", "table")
	assert.ErrorContains(t, err, "table output is not supported")
}

func TestQueryNeedsStructuredOutput(t *testing.T) {
	_, err := run(t, "outline", writeExport(t), "-o", "text", "-q", ".")
	assert.Error(t, err)
}

func TestInvalidOutputFormat(t *testing.T) {
	_, err := run(t, "outline", writeExport(t), "-o", "xml")
	assert.ErrorContains(t, err, "invalid --output format")
}

func TestMissingFile(t *testing.T) {
	_, err := run(t, "outline", filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "-o", "json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info["version"])
	assert.NotEmpty(t, info["go_version"])
}
