package rate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	rdb "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := rdb.NewClient(&rdb.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewRedisLimiter(client, "test:", 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := l.Allow(ctx, "login:10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "hit %d", i)
		assert.EqualValues(t, 3-i, res.Remaining)
	}

	res, err := l.Allow(ctx, "login:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.EqualValues(t, 0, res.Remaining)
	assert.Greater(t, res.RetryAfter, time.Duration(0))

	// otra clave no comparte contador
	res, err = l.Allow(ctx, "login:10.0.0.2")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRedisLimiter_SetsExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := rdb.NewClient(&rdb.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewRedisLimiter(client, "", 1, time.Minute)
	_, err := l.Allow(context.Background(), "forgot:ip")
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Greater(t, mr.TTL(keys[0]), time.Duration(0))
}

func TestRedisLimiter_BackendDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := rdb.NewClient(&rdb.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	_, err := NewRedisLimiter(client, "", 1, time.Minute).Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestMemoryLimiter(t *testing.T) {
	l := NewMemoryLimiter("m:", 2, time.Minute)
	base := time.Date(2024, 1, 1, 10, 0, 5, 0, time.UTC)
	l.now = func() time.Time { return base }
	ctx := context.Background()

	r1, _ := l.Allow(ctx, "k")
	r2, _ := l.Allow(ctx, "k")
	r3, _ := l.Allow(ctx, "k")
	assert.True(t, r1.Allowed)
	assert.True(t, r2.Allowed)
	assert.False(t, r3.Allowed)
	assert.Equal(t, 55*time.Second, r3.RetryAfter)

	// siguiente ventana
	l.now = func() time.Time { return base.Add(time.Minute) }
	r4, _ := l.Allow(ctx, "k")
	assert.True(t, r4.Allowed)
	assert.EqualValues(t, 1, r4.CurrentHits)
}
