package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/scape/internal/config"
	"github.com/MrSnakeDoc/scape/internal/httpserver"
	"github.com/MrSnakeDoc/scape/internal/httpserver/deps"
	"github.com/MrSnakeDoc/scape/internal/index"
	"github.com/MrSnakeDoc/scape/internal/logger"
	"github.com/MrSnakeDoc/scape/internal/redis"
	"github.com/MrSnakeDoc/scape/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/scape/internal/store/redis"
	"github.com/MrSnakeDoc/scape/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.BookmarkReloader
	watcher     *scheduler.FileWatcher
	gc          *scheduler.GarbageCollector
}

// New reads the configuration from the environment and wires every
// component. Redis is optional; without it the service runs memory only.
func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	loggerClient.Debug("configuration loaded", logger.String("config", fmt.Sprintf("%+v", cfg.Redacted())))

	memIndex := index.NewMemoryIndex()

	var (
		redisClient *goredis.Client
		store       *redisstore.Store
	)
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.OptionsFromConfig(cfg), loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		store = redisstore.NewStore(client)

		// Restore the last known state so the service can answer even if
		// the export is unreadable right now.
		syncer := scheduler.NewRedisSyncer(store, memIndex, loggerClient)
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to sync from redis on startup, will load from export",
				logger.Error(err))
		}
	} else {
		loggerClient.Info("redis not configured, running memory only")
	}

	// Capacity 1: triggers arriving during a reload collapse into one
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewBookmarkReloader(
		cfg.BookmarkFile,
		store,
		memIndex,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	var watcher *scheduler.FileWatcher
	if cfg.WatchFile {
		w, err := scheduler.NewFileWatcher(cfg.BookmarkFile, cfg.WatchSettle, reloadTrigger, loggerClient)
		if err != nil {
			closeRedis(redisClient, loggerClient)
			return nil, fmt.Errorf("failed to create export watcher: %w", err)
		}
		watcher = w
	}

	gc := scheduler.NewGarbageCollector(
		store,
		memIndex,
		loggerClient,
		cfg.GCInterval,
		scheduler.DefaultGCThreshold,
	)

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		CORSOrigins:   cfg.CORSOrigins,
		RateBurst:     cfg.RateBurst,
		RatePerMin:    cfg.RatePerMin,
		BookmarkFile:  cfg.BookmarkFile,
		Store:         store,
		MemoryIndex:   memIndex,
		FallbackURL:   cfg.FallbackURL,
		MaxResults:    cfg.MaxResults,
		ReloadTrigger: reloadTrigger,
		Reloader:      reloader,
		WatchFile:     watcher != nil,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		watcher:     watcher,
		gc:          gc,
	}, nil
}

func (a *App) Run() error {
	defer func() { _ = a.logger.Sync() }()

	a.logger.Infof("🚀 Starting scape %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("scape %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads the export once, then refreshes periodically
	if err := a.reloader.Start(ctx); err != nil {
		closeRedis(a.redisClient, a.logger)
		return fmt.Errorf("failed to start bookmark reloader: %w", err)
	}
	a.logger.Info("bookmark reloader started",
		logger.String("file", a.cfg.BookmarkFile),
		logger.Duration("interval", a.cfg.ReloadInterval))

	if a.watcher != nil {
		if err := a.watcher.Start(ctx); err != nil {
			// periodic reloads still cover changes
			a.logger.Warn("export watcher unavailable", logger.Error(err))
			a.watcher = nil
		}
	}

	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.reloader.Stop()
	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	closeRedis(a.redisClient, a.logger)

	a.logger.Info("✅ scape stopped cleanly")
	return nil
}

func closeRedis(client *goredis.Client, log logger.Logger) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Warnf("failed to close redis: %v", err)
		return
	}
	log.Info("✅ Redis closed cleanly")
}
