package api

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrrscope/nrrscope/pkg/scenario"
)

func TestLRUResultCacheEviction(t *testing.T) {
	ctx := context.Background()
	c := NewLRUResultCache(2)

	a, b, d := &scenario.Result{TargetTeam: "a"}, &scenario.Result{TargetTeam: "b"}, &scenario.Result{TargetTeam: "d"}
	c.Put(ctx, "a", a)
	c.Put(ctx, "b", b)

	// Touch a so b becomes the oldest.
	got, ok := c.Get(ctx, "a")
	require.True(t, ok)
	assert.Same(t, a, got)

	c.Put(ctx, "d", d)
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get(ctx, "b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.Get(ctx, "a")
	assert.True(t, ok)
	_, ok = c.Get(ctx, "d")
	assert.True(t, ok)
}

func TestLRUResultCacheOverwrite(t *testing.T) {
	ctx := context.Background()
	c := NewLRUResultCache(0)

	c.Put(ctx, "k", &scenario.Result{TargetTeam: "old"})
	c.Put(ctx, "k", &scenario.Result{TargetTeam: "new"})

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "new", got.TargetTeam)
	assert.Equal(t, 1, c.Len())
}

func TestLRUResultCacheFromEnv(t *testing.T) {
	t.Setenv("RESULT_CACHE_SIZE", "3")
	c := NewLRUResultCacheFromEnv()
	assert.Equal(t, 3, c.maxSize)

	t.Setenv("RESULT_CACHE_SIZE", "bogus")
	assert.Equal(t, 256, NewLRUResultCacheFromEnv().maxSize)
}

func TestCacheKeyIncludesVersion(t *testing.T) {
	req := scenario.Request{
		YourTeam: "A", OppositionTeam: "B", MatchOvers: 20,
		DesiredPosition: 1, Direction: scenario.BattingFirst, Runs: 150,
	}
	k1 := cacheKey("v1", req)
	k2 := cacheKey("v2", req)
	assert.NotEqual(t, k1, k2)

	req.Direction = scenario.BowlingFirst
	assert.NotEqual(t, k1, cacheKey("v1", req))
}

func TestCacheKeyTeamNamesWithSeparator(t *testing.T) {
	a := scenario.Request{
		YourTeam: "A:B", OppositionTeam: "C", MatchOvers: 20,
		DesiredPosition: 1, Direction: scenario.BattingFirst, Runs: 100,
	}
	b := a
	b.YourTeam, b.OppositionTeam = "A", "B:C"

	assert.NotEqual(t, cacheKey("v1", a), cacheKey("v1", b))
}

func TestRedisResultCacheUnavailableIsMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	c := newRedisResultCache(client, 0)
	assert.Equal(t, 10*time.Minute, c.ttl)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c.Put(ctx, "k", &scenario.Result{TargetTeam: "x"})
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestNewRedisResultCacheBadURL(t *testing.T) {
	_, err := NewRedisResultCache(context.Background(), "not a url", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis url")
}

func ExampleLRUResultCache() {
	ctx := context.Background()
	c := NewLRUResultCache(1)
	c.Put(ctx, "first", &scenario.Result{TargetTeam: "Sunrisers Hyderabad"})
	c.Put(ctx, "second", &scenario.Result{TargetTeam: "Delhi Capitals"})

	_, ok := c.Get(ctx, "first")
	res, _ := c.Get(ctx, "second")
	fmt.Println(ok, res.TargetTeam)
	// Output: false Delhi Capitals
}
