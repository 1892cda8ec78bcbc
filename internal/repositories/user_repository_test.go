package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarverify/internal/models"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	u := &models.User{Email: "user@example.com", EmailHash: "h1", ClientID: "c1", FreeChecksLimit: 3, CreatedAt: now}
	created, err := repo.Create(ctx, u)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, u.ID)

	dup := &models.User{Email: "user@example.com", EmailHash: "h1", FreeChecksLimit: 3, CreatedAt: now}
	created, err = repo.Create(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, dup.ID)
	assert.Equal(t, "c1", dup.ClientID)

	require.NoError(t, repo.IncrementChecks(ctx, u.ID))
	require.NoError(t, repo.IncrementChecks(ctx, u.ID))
	require.NoError(t, repo.LinkClient(ctx, u.ID, "c2"))

	ok, err := repo.MarkVerified(ctx, "user@example.com", now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkVerified(ctx, "nobody@example.com", now)
	require.NoError(t, err)
	assert.False(t, ok)

	consentAt := now.Add(-time.Minute)
	ok, err = repo.RecordConsent(ctx, "user@example.com", consentAt)
	require.NoError(t, err)
	assert.True(t, ok)
	// a repeat keeps the first consent time
	ok, err = repo.RecordConsent(ctx, "user@example.com", now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.RecordConsent(ctx, "nobody@example.com", now)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.FreeChecksUsed)
	assert.Equal(t, 1, got.ChecksRemaining())
	assert.Equal(t, "c2", got.ClientID)
	assert.True(t, got.EmailVerified)
	require.NotNil(t, got.VerifiedAt)
	assert.True(t, got.VerifiedAt.Equal(now.Add(time.Hour)))
	assert.True(t, got.CreatedAt.Equal(now))
	assert.True(t, got.GDPRConsent)
	require.NotNil(t, got.ConsentAt)
	assert.True(t, got.ConsentAt.Equal(consentAt))
}
