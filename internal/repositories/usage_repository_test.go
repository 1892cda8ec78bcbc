package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarverify/internal/models"
)

func event(subject, kind string, at time.Time) *models.UsageEvent {
	return &models.UsageEvent{SubjectHash: subject, Kind: kind, CreatedAt: at}
}

func TestUsageRepository_CountSince(t *testing.T) {
	ctx := context.Background()
	repo := NewUsageRepository(newTestDB(t))
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	require.NoError(t, repo.Record(ctx, event("client-a", "analysis", now.Add(-30*time.Hour))))
	require.NoError(t, repo.Record(ctx, event("client-a", "analysis", now.Add(-2*time.Hour))))
	require.NoError(t, repo.Record(ctx, event("client-a", "other", now.Add(-1*time.Hour))))
	require.NoError(t, repo.Record(ctx, event("client-b", "analysis", now.Add(-1*time.Hour))))

	n, err := repo.CountSince(ctx, "client-a", "analysis", now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.CountSince(ctx, "client-a", "analysis", now.Add(-48*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CountSince(ctx, "client-c", "analysis", now.Add(-48*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUsageRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewUsageRepository(newTestDB(t))
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	require.NoError(t, repo.Record(ctx, &models.UsageEvent{
		SubjectHash: "user-a", Kind: "analysis", Grade: models.GradeB,
		SystemSizeKW: 4, PricePerKW: 1125, CreatedAt: now.Add(-2 * time.Hour),
	}))
	require.NoError(t, repo.Record(ctx, &models.UsageEvent{
		SubjectHash: "user-a", Kind: "analysis", Grade: models.GradeA,
		SystemSizeKW: 6, PricePerKW: 950, CreatedAt: now,
	}))
	require.NoError(t, repo.Record(ctx, event("user-b", "analysis", now)))

	got, err := repo.List(ctx, "user-a", "analysis")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.GradeA, got[0].Grade)
	assert.Equal(t, 6.0, got[0].SystemSizeKW)
	assert.True(t, got[0].CreatedAt.Equal(now))
	assert.Equal(t, models.GradeB, got[1].Grade)
	assert.Equal(t, 1125.0, got[1].PricePerKW)

	none, err := repo.List(ctx, "user-c", "analysis")
	require.NoError(t, err)
	assert.Empty(t, none)
}
