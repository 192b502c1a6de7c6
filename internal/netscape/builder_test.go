package netscape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChromeExport(t *testing.T) {
	doc := mustParse(t, readFixture(t, "chrome.html"))

	assert.Equal(t, "Bookmarks", doc.Title)
	assert.Equal(t, "Bookmarks", doc.Heading)
	assert.True(t, doc.Root.IsRoot)
	assert.Equal(t, "Bookmarks", doc.Root.Name)
	assert.Empty(t, doc.Root.Links())
	require.Len(t, doc.Root.Subfolders(), 2)

	bar := doc.Root.Subfolders()[0]
	assert.Equal(t, "Bookmarks Bar", bar.Name)
	assert.Equal(t, "1691940657", bar.AddDate)
	assert.Equal(t, "1706939041", bar.LastModified)
	assert.True(t, bar.PersonalToolbar)
	assert.False(t, bar.IsRoot)
	require.Len(t, bar.Children, 2)

	first, ok := bar.Children[0].(*Bookmark)
	require.True(t, ok)
	assert.Equal(t, "Bookmark #1", first.Title)
	assert.Equal(t, "www.jobsite.com", first.URL)

	nested2 := doc.Root.FindFolder("Nested Folder #2")
	require.NotNil(t, nested2)
	require.Len(t, nested2.Links(), 2)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", nested2.Links()[0].Icon)

	other := doc.Root.Subfolders()[1]
	assert.Equal(t, "Other bookmarks", other.Name)
	assert.Empty(t, other.Children)
}

func TestParseFirefoxExport(t *testing.T) {
	doc := mustParse(t, readFixture(t, "firefox.html"))

	assert.Equal(t, "Bookmarks Menu", doc.Heading)
	require.Len(t, doc.Root.Children, 4)

	start := doc.Root.Children[0].(*Bookmark)
	assert.Equal(t, "Getting Started", start.Title)
	assert.Equal(t, "First steps with Firefox & friends", start.Description)
	assert.Equal(t, "https://www.mozilla.org/favicon.ico", start.IconURI)
	assert.Equal(t, "moz", start.ShortcutURL)
	assert.Equal(t, []string{"mozilla", "browser"}, start.Tags)

	recipes := doc.Root.Children[1].(*Folder)
	assert.Equal(t, "Recipes", recipes.Name)
	assert.Equal(t, "Things to cook", recipes.Description)
	assert.Equal(t, []string{"Pasta", "Soup"}, titles(recipes.Links()))
	assert.Equal(t, "Winter\nwarmers", recipes.Links()[1].Description)

	empty := doc.Root.Children[2].(*Folder)
	assert.Equal(t, "Empty", empty.Name)
	assert.Empty(t, empty.Children)

	after := doc.Root.Children[3].(*Bookmark)
	assert.Equal(t, "After empty", after.Title)
}

func TestParseExampleScenario(t *testing.T) {
	doc := mustParse(t, recipesDoc)

	assert.Equal(t, []string{"Home", "Pasta"}, titles(doc.Root.AllBookmarks()))

	recipes := doc.Root.FindFolder("Recipes")
	require.NotNil(t, recipes)
	require.Len(t, recipes.Children, 1)
	assert.Equal(t, "Pasta", recipes.Children[0].(*Bookmark).Title)
	assert.Equal(t, "http://example.com/pasta", recipes.Children[0].(*Bookmark).URL)
}

func TestParseToleratesMissingTrailingClose(t *testing.T) {
	wellFormed := mustParse(t, recipesDoc)

	idx := strings.LastIndex(recipesDoc, "</DL>")
	truncated := recipesDoc[:idx] + recipesDoc[idx+len("</DL>"):]
	doc := mustParse(t, truncated)

	assert.Equal(t, ToJSON(wellFormed.Root), ToJSON(doc.Root))
}

func TestParseToleratesMissingAllCloses(t *testing.T) {
	doc := mustParse(t, strings.ReplaceAll(recipesDoc, "</DL>", ""))

	// Without closes the folder never ends, but nothing is lost.
	assert.Equal(t, []string{"Home", "Pasta"}, titles(doc.Root.AllBookmarks()))
	require.NotNil(t, doc.Root.FindFolder("Recipes"))
}

func TestParseIgnoresStrayCloses(t *testing.T) {
	doc := mustParse(t, `</DL></DL><DL><DT><A HREF="a">A</A></DL></DL></DL><DT><A HREF="b">B</A>`)

	assert.Equal(t, []string{"A", "B"}, titles(doc.Root.Links()))
	assert.Empty(t, doc.Root.Subfolders())
}

func TestParseHeaderlessNestedListKeepsParent(t *testing.T) {
	doc := mustParse(t, `<DL>
<DT><H3>Work</H3>
<DL>
  <DL><DT><A HREF="a">A</A></DL>
  <DT><A HREF="b">B</A>
</DL>
<DT><A HREF="c">C</A>
</DL>`)

	work := doc.Root.FindFolder("Work")
	require.NotNil(t, work)
	assert.Equal(t, []string{"A", "B"}, titles(work.Links()))
	assert.Equal(t, []string{"C"}, titles(doc.Root.Links()))
}

func TestParseDescriptionWithoutEntryIsDropped(t *testing.T) {
	doc := mustParse(t, `<DL><DD>orphan text<DT><A HREF="a">A</A></DL>`)

	require.Len(t, doc.Root.Links(), 1)
	assert.Empty(t, doc.Root.Links()[0].Description)
	assert.Empty(t, doc.Root.Description)
}

func TestParseMissingAttributesAreAbsent(t *testing.T) {
	doc := mustParse(t, `<DL><DT><A>No href</A><DT><H3>Plain</H3><DL></DL></DL>`)

	bm := doc.Root.Links()[0]
	assert.Equal(t, "No href", bm.Title)
	assert.Empty(t, bm.URL)
	assert.Empty(t, bm.AddDate)
	assert.Nil(t, bm.Tags)

	plain := doc.Root.FindFolder("Plain")
	require.NotNil(t, plain)
	assert.False(t, plain.PersonalToolbar)
}

func TestParseWithoutTitleLeavesRootUnnamed(t *testing.T) {
	doc := mustParse(t, `<DL><DT><A HREF="a">A</A></DL>`)
	assert.Empty(t, doc.Root.Name)
	assert.Empty(t, doc.Title)
}

func TestParseIsDeterministic(t *testing.T) {
	text := readFixture(t, "firefox.html")
	first := mustParse(t, text)
	second := mustParse(t, text)
	assert.Equal(t, first, second)
}

func TestParsePropagatesMalformed(t *testing.T) {
	doc, err := Parse("")
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrMalformedDocument)

	doc, err = ParseReader(strings.NewReader("<DL><DT><A HREF=\"a\">A</A>\x80\x81</DL>"))
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestBuilderAppliesEvents(t *testing.T) {
	b := NewBuilder()
	b.Apply(Event{Kind: EventContainerOpen})
	b.Apply(Event{Kind: EventFolderHeader, Text: "F", Attrs: map[string]string{AttrAddDate: "1"}})
	b.Apply(Event{Kind: EventContainerOpen})
	b.Apply(Event{Kind: EventLink, Text: "L", Attrs: map[string]string{AttrHref: "u", AttrTags: " a, ,b "}})
	b.Apply(Event{Kind: EventDescription, Text: "d"})
	b.Apply(Event{Kind: EventFolderHeader, Text: "Dangling"})

	doc := b.Document()
	f := doc.Root.FindFolder("F")
	require.NotNil(t, f)
	assert.Equal(t, "1", f.AddDate)
	require.Len(t, f.Children, 2)

	link := f.Children[0].(*Bookmark)
	assert.Equal(t, "d", link.Description)
	assert.Equal(t, []string{"a", "b"}, link.Tags)
	assert.Equal(t, "Dangling", f.Children[1].(*Folder).Name)
}
