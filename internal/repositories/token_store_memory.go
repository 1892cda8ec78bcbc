package repositories

import (
	"context"
	"sync"
	"time"

	"solarverify/internal/models"
)

type memoryUsedTokenRepository struct {
	mu   sync.Mutex
	used map[string]models.UsedToken
	now  func() time.Time
}

// NewMemoryUsedTokenRepository keeps the ledger in process memory. Redeemed
// tokens are forgotten on restart, so it only suits single-instance setups
// and tests.
func NewMemoryUsedTokenRepository() UsedTokenRepository {
	return &memoryUsedTokenRepository{used: make(map[string]models.UsedToken), now: time.Now}
}

func (r *memoryUsedTokenRepository) MarkUsed(_ context.Context, jti, email string, expiresAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.used[jti]; ok {
		return false, nil
	}
	r.used[jti] = models.UsedToken{JTI: jti, Email: email, UsedAt: r.now(), ExpiresAt: expiresAt}
	return true, nil
}

func (r *memoryUsedTokenRepository) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for jti, t := range r.used {
		if t.IsExpired(now) {
			delete(r.used, jti)
			n++
		}
	}
	return n, nil
}
