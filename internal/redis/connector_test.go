package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/scape/internal/logger"
)

func testOptions(addr string) ConnectOptions {
	return ConnectOptions{
		Addr:           addr,
		DialTimeout:    100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
		PoolSize:       2,
		ConnectTimeout: 300 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    50 * time.Millisecond,
		WarnThreshold:  1,
	}
}

func TestNewConnects(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := New(context.Background(), testOptions(mr.Addr()), logger.NewNop())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewTimesOut(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	start := time.Now()
	_, err := New(context.Background(), testOptions(addr), logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis unavailable")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestValidate(t *testing.T) {
	opts := testOptions("localhost:6379")
	assert.NoError(t, opts.Validate())

	opts.Addr = ""
	opts.MaxWait = 0
	opts.WarnThreshold = -1
	err := opts.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Addr")
	assert.Contains(t, err.Error(), "MaxWait")
	assert.Contains(t, err.Error(), "WarnThreshold")
}

func TestNextWait(t *testing.T) {
	assert.Equal(t, 4*time.Second, nextWait(2*time.Second, 10*time.Second))
	assert.Equal(t, 10*time.Second, nextWait(8*time.Second, 10*time.Second))
}
