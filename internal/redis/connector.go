package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/scape/internal/config"
	"github.com/MrSnakeDoc/scape/internal/logger"
)

// ConnectOptions defines the Redis client and its connect retry policy.
type ConnectOptions struct {
	Addr           string        // Redis address (ex: "localhost:6379")
	User           string        // Optional username
	Password       string        // Optional password
	DB             int           // Redis DB number
	DialTimeout    time.Duration // Redis dial timeout
	ReadTimeout    time.Duration // Redis read timeout
	WriteTimeout   time.Duration // Redis write timeout
	PoolSize       int           // Redis connection pool size
	ConnectTimeout time.Duration // Total time allowed for connection attempts (ex: 30s)
	RetryInterval  time.Duration // Initial wait between retries, doubled after each failure
	MaxWait        time.Duration // Cap for the wait between retries
	PingTimeout    time.Duration // Timeout for each ping attempt
	WarnThreshold  int           // Failed attempts logged at warn before switching to error
}

// OptionsFromConfig maps the SCAPE_REDIS_* settings.
func OptionsFromConfig(cfg *config.Config) ConnectOptions {
	return ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}
}

// Validate checks the retry policy.
func (o ConnectOptions) Validate() error {
	var errs []error
	if o.Addr == "" {
		errs = append(errs, errors.New("Addr must not be empty"))
	}
	for name, d := range map[string]time.Duration{
		"ConnectTimeout": o.ConnectTimeout,
		"RetryInterval":  o.RetryInterval,
		"MaxWait":        o.MaxWait,
		"PingTimeout":    o.PingTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", name, d))
		}
	}
	if o.WarnThreshold < 0 {
		errs = append(errs, fmt.Errorf("WarnThreshold must be >= 0, got %d", o.WarnThreshold))
	}
	return errors.Join(errs...)
}

// New creates a Redis client and pings it until it answers or
// ConnectTimeout runs out. Waits between attempts double up to MaxWait.
func New(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if err := opts.Validate(); err != nil {
		log.Error("invalid redis options", logger.Error(err))
		return nil, fmt.Errorf("invalid redis options: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.User,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})

	if err := waitReady(ctx, client, opts, log.With(logger.String("addr", opts.Addr))); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func waitReady(ctx context.Context, client *redis.Client, opts ConnectOptions, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	log.Info("connecting to redis", logger.Duration("timeout", opts.ConnectTimeout))
	start := time.Now()
	wait := opts.RetryInterval

	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, opts.PingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			if attempt > 1 {
				log.Warn("connected to redis after retry",
					logger.Int("attempts", attempt),
					logger.Duration("elapsed", time.Since(start)))
			} else {
				log.Info("connected to redis")
			}
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Error("redis unavailable - failed to connect after timeout",
				logger.Int("attempts", attempt),
				logger.Duration("timeout", opts.ConnectTimeout),
				logger.Error(err))
			return fmt.Errorf("redis unavailable at %s after %d attempts (timeout: %v): %w",
				opts.Addr, attempt, opts.ConnectTimeout, err)

		case <-timer.C:
			logRetry(log, attempt, opts.WarnThreshold, wait, err)
			wait = nextWait(wait, opts.MaxWait)
		}
	}
}

func logRetry(log logger.Logger, attempt, warnThreshold int, wait time.Duration, err error) {
	if attempt <= warnThreshold {
		log.Warn("redis connection failed, retrying",
			logger.Int("attempt", attempt),
			logger.Duration("next_retry_in", wait),
			logger.Error(err))
		return
	}
	log.Error("redis still unavailable - connection attempts failing",
		logger.Int("attempt", attempt),
		logger.Duration("next_retry_in", wait),
		logger.Error(err))
}

// nextWait doubles wait, capped at max.
func nextWait(wait, max time.Duration) time.Duration {
	wait *= 2
	if wait > max {
		return max
	}
	return wait
}
