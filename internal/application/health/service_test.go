package health

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) Ping() error { return p.err }

func setupRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return rdb
}

func TestCollectHealth_NoDependencies(t *testing.T) {
	result := CollectHealth(context.Background(), nil, nil)
	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, StatusDisconnected, result.Dependencies["database"].Status)
	assert.Equal(t, StatusDisabled, result.Dependencies["redis"].Status)
	assert.Equal(t, 0, result.Traffic.TotalRequests)
}

func TestCollectHealth_DatabaseOnlyIsOK(t *testing.T) {
	result := CollectHealth(context.Background(), nil, pinger{})
	assert.Equal(t, "ok", result.Status)
	assert.NotNil(t, result.Dependencies["database"].PingMs)

	result = CollectHealth(context.Background(), nil, pinger{err: errors.New("down")})
	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, StatusError, result.Dependencies["database"].Status)
}

func TestCollectHealth_WithMiniredis(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()

	result := CollectHealth(ctx, rdb, pinger{})
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, StatusConnected, result.Dependencies["redis"].Status)
	assert.Equal(t, "100", result.Traffic.SuccessRate)

	require.NoError(t, rdb.Set(ctx, "health:global:req_total", "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:req_errors", "2", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:res_time_total", "150.5", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:res_count", "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:start_time", "1000000", 0).Err())

	result = CollectHealth(ctx, rdb, pinger{})
	assert.Equal(t, 10, result.Traffic.TotalRequests)
	assert.Equal(t, 8, result.Traffic.SuccessCount)
	assert.Equal(t, "80.0", result.Traffic.SuccessRate)
	assert.Equal(t, "15.05", result.Traffic.AvgResponseTime)
}

func TestResetAndRecentErrors(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()
	require.NoError(t, rdb.Set(ctx, "health:global:req_total", "5", 0).Err())
	require.NoError(t, rdb.LPush(ctx, "health:global:error_log", `{"message":"boom"}`, "not json").Err())

	errs, err := RecentErrors(ctx, rdb)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "boom", errs[0]["message"])

	require.NoError(t, Reset(ctx, rdb))
	_, err = rdb.Get(ctx, "health:global:req_total").Result()
	assert.ErrorIs(t, err, redis.Nil)
	_, err = rdb.Get(ctx, "health:global:start_time").Result()
	assert.NoError(t, err)
}

func TestRenderDashboardHTML(t *testing.T) {
	html := RenderDashboardHTML(CollectHealth(context.Background(), nil, pinger{}))
	assert.Contains(t, html, "Realty API")
	assert.Contains(t, html, "All Systems Operational")
	assert.Contains(t, html, "/health/json")
	assert.Contains(t, html, "/health/errors")
}
