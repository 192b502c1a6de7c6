package httpserver

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/scape/internal/httpserver/deps"
	"github.com/MrSnakeDoc/scape/internal/index"
	"github.com/MrSnakeDoc/scape/internal/logger"
	"github.com/MrSnakeDoc/scape/internal/netscape"
	"github.com/MrSnakeDoc/scape/internal/sources/export"
)

const fallbackURL = "https://search.example.com/"

const scenarioExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks Menu</H1>
<DL><p>
    <DT><H3>Dev</H3>
    <DL><p>
        <DT><A HREF="https://github.com/">GitHub</A>
        <DT><A HREF="https://gitlab.com/">GitLab</A>
        <DT><A HREF="https://pkg.go.dev/">Go Packages</A>
    </DL><p>
    <DT><H3>Media</H3>
    <DL><p>
        <DT><A HREF="https://jellyfin.home.lan/">Jellyfin</A>
        <DT><A HREF="https://jellyseerr.home.lan/">Jellyseerr</A>
    </DL><p>
    <DT><H3>Work</H3>
    <DL><p>
        <DT><A HREF="https://github.example.com/">GitHub</A>
        <DT><A HREF="https://traefik.home.lan/" SHORTCUTURL="tr">Traefik Dashboard</A>
    </DL><p>
</DL><p>
`

func newTestRouter(t *testing.T) (http.Handler, deps.Deps) {
	t.Helper()

	doc, err := netscape.Parse(scenarioExport)
	require.NoError(t, err)
	bookmarks, err := export.NewMapper().MapBookmarks(doc)
	require.NoError(t, err)

	idx := index.NewMemoryIndex()
	idx.UpdateBookmarks(bookmarks)
	idx.SetDocument(doc)

	d := deps.Deps{
		Logger:        logger.NewNop(),
		StartTime:     time.Now(),
		RateBurst:     100,
		RatePerMin:    600,
		MemoryIndex:   idx,
		FallbackURL:   fallbackURL,
		MaxResults:    50,
		ReloadTrigger: make(chan struct{}, 1),
	}
	return NewRouter(d), d
}

// TestSearchScenarios runs typical queries through the full router.
func TestSearchScenarios(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"exact title", "gitlab", "https://gitlab.com/"},
		{"prefix picks first title in order", "jelly", "https://jellyfin.home.lan/"},
		{"longer prefix", "jellys", "https://jellyseerr.home.lan/"},
		{"words of a title", "go pack", "https://pkg.go.dev/"},
		{"keyword beats titles", "tr", "https://traefik.home.lan/"},
		{"folder scope", "work/github", "https://github.example.com/"},
		{"other folder scope", "dev/github", "https://github.com/"},
		{"no match", "zzzz", fallbackURL},
		{"empty", "", fallbackURL},
		{"internal endpoint", "/readyz", "/readyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/search?q="+url.QueryEscape(tt.query), nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestRoutes(t *testing.T) {
	router, d := newTestRouter(t)

	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodHead, "/healthz", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/infra", http.StatusOK},
		{http.MethodGet, "/api/tree", http.StatusOK},
		{http.MethodGet, "/api/bookmarks?folder=Media", http.StatusOK},
		{http.MethodGet, "/api/folders/Work", http.StatusOK},
		{http.MethodGet, "/api/folders/Nope", http.StatusNotFound},
		{http.MethodGet, "/api/outline", http.StatusOK},
		{http.MethodPost, "/reload", http.StatusAccepted},
		{http.MethodGet, "/reload", http.StatusMethodNotAllowed},
		{http.MethodGet, "/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	select {
	case <-d.ReloadTrigger:
	default:
		t.Fatal("POST /reload did not signal the reloader")
	}
}

func TestSearchRateLimited(t *testing.T) {
	router, _ := newTestRouter(t)

	limited := false
	for range 150 {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=gitlab", nil))
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	assert.True(t, limited, "expected /search to be rate limited after the burst")
}
