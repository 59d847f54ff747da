package redis

import (
	"context"
	"net"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("REDIS_PASSWORD", "pw")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled())
	assert.Equal(t, "cache:6379", cfg.Addr())
	assert.Equal(t, "pw", cfg.Password)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("REDIS_HOST", "")

	assert.False(t, LoadConfig().Enabled())
}

func configFor(t *testing.T, mr *miniredis.Miniredis) Config {
	t.Helper()
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	return Config{Host: host, Port: port}
}

func TestNewRedisClient(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), configFor(t, mr))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	cfg := configFor(t, mr)
	mr.Close()

	_, err := NewRedisClient(context.Background(), cfg)
	assert.Error(t, err)
}
