//go:build integration

package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	once       sync.Once
	sharedAddr string
	initErr    error
)

func setupRedis(t *testing.T) string {
	t.Helper()

	once.Do(func() {
		ctx := context.Background()
		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7-alpine",
				ExposedPorts: []string{"6379/tcp"},
				WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
			},
			Started: true,
		})
		if err != nil {
			initErr = err
			return
		}
		host, err := container.Host(ctx)
		if err != nil {
			initErr = err
			return
		}
		port, err := container.MappedPort(ctx, "6379")
		if err != nil {
			initErr = err
			return
		}
		sharedAddr = fmt.Sprintf("%s:%s", host, port.Port())
	})
	if initErr != nil {
		t.Fatalf("failed to start redis: %v", initErr)
	}
	return sharedAddr
}

func TestAttemptLimiter(t *testing.T) {
	addr := setupRedis(t)
	ctx := context.Background()

	client, err := Connect(ctx, Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewAttemptLimiter(client, 3, time.Minute)
	user := "ana-" + t.Name()

	locked, err := limiter.Locked(ctx, user)
	require.NoError(t, err)
	assert.False(t, locked)

	for range 3 {
		require.NoError(t, limiter.RecordFailure(ctx, user))
	}
	locked, err = limiter.Locked(ctx, user)
	require.NoError(t, err)
	assert.True(t, locked)

	ttl, err := client.TTL(ctx, limiter.key(user)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	require.NoError(t, limiter.Reset(ctx, user))
	locked, err = limiter.Locked(ctx, user)
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestAttemptLimiter_WindowExpires(t *testing.T) {
	addr := setupRedis(t)
	ctx := context.Background()

	client, err := Connect(ctx, Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewAttemptLimiter(client, 1, time.Second)
	user := "rev-" + t.Name()

	require.NoError(t, limiter.RecordFailure(ctx, user))
	locked, err := limiter.Locked(ctx, user)
	require.NoError(t, err)
	assert.True(t, locked)

	assert.Eventually(t, func() bool {
		locked, err := limiter.Locked(ctx, user)
		return err == nil && !locked
	}, 5*time.Second, 100*time.Millisecond)
}
