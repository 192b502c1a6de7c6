package deps

import (
	"time"

	"github.com/MrSnakeDoc/scape/internal/index"
	"github.com/MrSnakeDoc/scape/internal/logger"
	"github.com/MrSnakeDoc/scape/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/scape/internal/store/redis"
)

// ReloadStatuser reports the outcome of the last export reload.
type ReloadStatuser interface {
	Status() scheduler.ReloadStatus
}

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	AllowedHosts  []string           // Host headers allowed to access the server
	AllowedCIDRS  []string           // IPs allowed to reach the admin endpoints
	TrustProxy    bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins   []string           // Origins allowed to call the JSON API (empty = CORS disabled)
	RateBurst     int                // /search burst per client
	RatePerMin    int                // /search sustained rate per client
	BookmarkFile  string             // Path to the Netscape export
	Store         *redisstore.Store  // nil when Redis is disabled
	MemoryIndex   *index.MemoryIndex // Parsed export and flattened bookmarks
	FallbackURL   string             // Redirect target when no bookmark matches
	MaxResults    int                // Cap for list endpoints (0 = no limit)
	ReloadTrigger chan struct{}      // Channel to trigger a manual export reload
	Reloader      ReloadStatuser     // optional
	WatchFile     bool               // true when the export file watcher runs
}
