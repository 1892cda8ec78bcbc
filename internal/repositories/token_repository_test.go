package repositories

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertFirstWins(t *testing.T, repo UsedTokenRepository) {
	t.Helper()
	ctx := context.Background()
	exp := time.Now().Add(10 * time.Minute)

	const callers = 16
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			first, err := repo.MarkUsed(ctx, "jti-race", "user@example.com", exp)
			if assert.NoError(t, err) && first {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())

	first, err := repo.MarkUsed(ctx, "jti-other", "user@example.com", exp)
	require.NoError(t, err)
	assert.True(t, first)
}

func TestUsedTokenRepository_SQL(t *testing.T) {
	repo := NewUsedTokenRepository(newTestDB(t))
	assertFirstWins(t, repo)

	ctx := context.Background()
	past := time.Now().Add(-time.Minute)
	first, err := repo.MarkUsed(ctx, "jti-old", "old@example.com", past)
	require.NoError(t, err)
	require.True(t, first)

	n, err := repo.PurgeExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUsedTokenRepository_Memory(t *testing.T) {
	repo := NewMemoryUsedTokenRepository()
	assertFirstWins(t, repo)

	ctx := context.Background()
	_, err := repo.MarkUsed(ctx, "jti-old", "old@example.com", time.Now().Add(-time.Second))
	require.NoError(t, err)

	n, err := repo.PurgeExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

type fakeSetNX struct {
	mu   sync.Mutex
	keys map[string]time.Duration
}

func (f *fakeSetNX) SetNX(ctx context.Context, key string, _ interface{}, ttl time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func TestUsedTokenRepository_Redis(t *testing.T) {
	fake := &fakeSetNX{keys: map[string]time.Duration{}}
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &redisUsedTokenRepository{client: fake, now: func() time.Time { return now }}
	assertFirstWins(t, &redisUsedTokenRepository{client: &fakeSetNX{keys: map[string]time.Duration{}}, now: time.Now})

	ctx := context.Background()
	first, err := repo.MarkUsed(ctx, "abc", "user@example.com", now.Add(7*time.Minute))
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, 7*time.Minute, fake.keys[usedTokenKeyPrefix+"abc"])

	first, err = repo.MarkUsed(ctx, "abc", "user@example.com", now.Add(7*time.Minute))
	require.NoError(t, err)
	assert.False(t, first)

	// already-expired tokens still get a short-lived key
	_, err = repo.MarkUsed(ctx, "late", "user@example.com", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, time.Second, fake.keys[usedTokenKeyPrefix+"late"])
}
