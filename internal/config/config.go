package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	BookmarkFile   string        // path to the Netscape bookmark export
	FallbackURL    string        // redirect target when no bookmark matches
	ReloadInterval time.Duration // periodic reload of the export (default: 24h)
	WatchFile      bool          // reload when the export changes on disk
	WatchSettle    time.Duration // quiet period before a change triggers a reload
	GCInterval     time.Duration // interval to purge disabled bookmarks (default: 24h)
	MaxResults     int           // cap for /api/bookmarks (0 = no limit)

	// Redis, disabled when RedisAddr is empty
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisPoolSize       int           // connection pool size
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IPs or prefixes
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins  []string // optional, origins allowed to call the JSON API
	RateBurst    int      // /search burst per client
	RatePerMin   int      // /search sustained requests per minute per client
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SCAPE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SCAPE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SCAPE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SCAPE_PRETTY_LOG", true),

		// Bookmark export
		BookmarkFile:   requireEnv("SCAPE_BOOKMARK_FILE"),
		FallbackURL:    requireEnv("SCAPE_FALLBACK_URL"),
		ReloadInterval: mustDuration("SCAPE_RELOAD_INTERVAL", 24*time.Hour),
		WatchFile:      mustBool("SCAPE_WATCH_FILE", true),
		WatchSettle:    mustDuration("SCAPE_WATCH_SETTLE", 500*time.Millisecond),
		GCInterval:     mustDuration("SCAPE_GC_INTERVAL", 24*time.Hour),
		MaxResults:     getenvInt("SCAPE_MAX_RESULTS", 50),

		// Redis settings
		RedisAddr:           getenv("SCAPE_REDIS_ADDR", ""),
		RedisUser:           getenv("SCAPE_REDIS_USERNAME", ""),
		RedisPassword:       getenv("SCAPE_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("SCAPE_REDIS_DB", 0),
		RedisDT:             mustDuration("SCAPE_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("SCAPE_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("SCAPE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("SCAPE_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("SCAPE_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("SCAPE_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("SCAPE_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("SCAPE_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("SCAPE_REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SCAPE_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("SCAPE_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SCAPE_TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("SCAPE_CORS_ORIGINS", "")),
		RateBurst:    getenvInt("SCAPE_RATE_BURST", 20),
		RatePerMin:   getenvInt("SCAPE_RATE_PER_MIN", 120),
	}

	if cfg.RateBurst <= 0 || cfg.RatePerMin <= 0 {
		panic(fmt.Sprintf("❌ FATAL: SCAPE_RATE_BURST and SCAPE_RATE_PER_MIN must be positive (got %d, %d)", cfg.RateBurst, cfg.RatePerMin))
	}
	if cfg.WatchSettle <= 0 {
		panic("❌ FATAL: SCAPE_WATCH_SETTLE must be positive")
	}

	return cfg
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// Redacted returns a copy safe to log.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
