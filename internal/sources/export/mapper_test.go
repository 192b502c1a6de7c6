package export

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/scape/internal/domain"
	"github.com/MrSnakeDoc/scape/internal/netscape"
)

func fixedMapper(now time.Time) *Mapper {
	return &Mapper{now: func() time.Time { return now }}
}

func TestMapperMapBookmarks(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	bookmarks, err := fixedMapper(now).MapBookmarks(doc)
	if err != nil {
		t.Fatalf("MapBookmarks() error = %v", err)
	}

	// Separator with an empty href is skipped
	if len(bookmarks) != 3 {
		t.Fatalf("MapBookmarks() returned %d bookmarks, want 3", len(bookmarks))
	}

	wantTitles := []string{"Docker Hub", "GitHub", "Example"}
	for i, want := range wantTitles {
		if bookmarks[i].Title != want {
			t.Errorf("bookmark %d title = %q, want %q", i, bookmarks[i].Title, want)
		}
	}

	gh := bookmarks[1]
	if strings.Join(gh.Folder, "/") != "Bookmarks Bar/Dev" {
		t.Errorf("GitHub folder = %v, want [Bookmarks Bar Dev]", gh.Folder)
	}
	if gh.Shortcut != "gh" {
		t.Errorf("GitHub shortcut = %q, want gh", gh.Shortcut)
	}
	if strings.Join(gh.Tags, ",") != "code,git" {
		t.Errorf("GitHub tags = %v", gh.Tags)
	}
	if gh.Description != "Where the code lives" {
		t.Errorf("GitHub description = %q", gh.Description)
	}
	if !gh.CreatedAt.Equal(time.Unix(1691940800, 0)) {
		t.Errorf("GitHub CreatedAt = %v", gh.CreatedAt)
	}
	if !gh.UpdatedAt.Equal(time.Unix(1691940900, 0)) {
		t.Errorf("GitHub UpdatedAt = %v", gh.UpdatedAt)
	}
	if !gh.HasSource(domain.SourceNetscape) {
		t.Errorf("GitHub sources = %v", gh.Sources)
	}

	example := bookmarks[2]
	if len(example.Folder) != 0 {
		t.Errorf("root bookmark folder = %v, want empty", example.Folder)
	}
	if !example.CreatedAt.Equal(now) {
		t.Errorf("missing ADD_DATE should fall back to load time, got %v", example.CreatedAt)
	}
}

func TestMapperStableIDs(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	first, _ := NewMapper().MapBookmarks(doc)
	second, _ := NewMapper().MapBookmarks(doc)
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("ID changed between runs: %s != %s", first[i].ID, second[i].ID)
		}
		if len(first[i].ID) != 16 {
			t.Errorf("ID length = %d, want 16", len(first[i].ID))
		}
	}
}

func TestMapperSameURLInTwoFolders(t *testing.T) {
	doc, err := netscape.Parse(`<DL>
<DT><H3>A</H3><DL><DT><A HREF="https://x.test/">X</A></DL>
<DT><H3>B</H3><DL><DT><A HREF="https://x.test/">X</A><DT><A HREF="https://x.test/">X again</A></DL>
</DL>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	bookmarks, err := NewMapper().MapBookmarks(doc)
	if err != nil {
		t.Fatalf("MapBookmarks() error = %v", err)
	}

	// One per folder, the duplicate within B collapses
	if len(bookmarks) != 2 {
		t.Fatalf("MapBookmarks() returned %d bookmarks, want 2", len(bookmarks))
	}
	if bookmarks[0].ID == bookmarks[1].ID {
		t.Error("same URL in different folders should get different IDs")
	}
}

func TestMapperUntitledUsesURL(t *testing.T) {
	doc, err := netscape.Parse(`<DL><DT><A HREF="https://x.test/"></A></DL>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	bookmarks, err := NewMapper().MapBookmarks(doc)
	if err != nil {
		t.Fatalf("MapBookmarks() error = %v", err)
	}
	if bookmarks[0].Title != "https://x.test/" {
		t.Errorf("title = %q", bookmarks[0].Title)
	}
}

func TestMapperMapBookmarksEmpty(t *testing.T) {
	doc, err := netscape.Parse(`<DL><DT><H3>Empty</H3><DL></DL></DL>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	_, err = NewMapper().MapBookmarks(doc)
	if !errors.Is(err, ErrNoBookmarks) {
		t.Errorf("MapBookmarks() error = %v, want ErrNoBookmarks", err)
	}

	if _, err := NewMapper().MapBookmarks(nil); !errors.Is(err, ErrNoBookmarks) {
		t.Errorf("MapBookmarks(nil) error = %v, want ErrNoBookmarks", err)
	}
}
