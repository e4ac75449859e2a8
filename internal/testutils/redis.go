// Package testutils provides shared test helpers, including in-memory
// Redis setup.
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/wildlands/hexcrawl-api/internal/redis"
)

// CreateTestRedisClient starts an in-memory Redis and returns a client
// connected to it plus a cleanup func.
func CreateTestRedisClient(t *testing.T) (redis.Client, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")

	return client, func() { mr.Close() }
}

// CreateTestRedisClientWithSetup starts an in-memory Redis and lets the
// test populate it before the client is handed out.
func CreateTestRedisClientWithSetup(t *testing.T, setup func(mr *miniredis.Miniredis)) (redis.Client, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")

	if setup != nil {
		setup(mr)
	}

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")

	return client, func() { mr.Close() }
}
