package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarverify/internal/apperrors"
	"solarverify/internal/metrics"
	"solarverify/internal/models"
)

type stubGrader struct {
	res *models.GradeResult
	err error
}

func (g stubGrader) Grade(models.QuoteSubmission) (*models.GradeResult, error) {
	return g.res, g.err
}

func TestQuoteService_AnalyzeQuote(t *testing.T) {
	ctx := context.Background()
	m := metrics.New()
	usage := newUsageService(t, newClock())
	grader := stubGrader{res: &models.GradeResult{Grade: models.GradeB, Composite: 77.7}}
	svc := NewQuoteService(grader, usage, nil, m)

	res, err := svc.AnalyzeQuote(ctx, models.QuoteSubmission{ClientID: "browser-1"})
	require.NoError(t, err)
	assert.Equal(t, models.GradeB, res.Grade)

	st, err := usage.TrackUsage(ctx, "browser-1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, st.ChecksUsed)

	n, err := testutil.GatherAndCount(m.Registry(), "solarverify_quote_grades_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestQuoteService_FeedsAnalytics(t *testing.T) {
	ctx := context.Background()
	usage := newUsageService(t, newClock())
	_, err := usage.RegisterEmail(ctx, "user@example.com", "", nil)
	require.NoError(t, err)

	grader := stubGrader{res: &models.GradeResult{Grade: models.GradeA, PricePerKW: 950}}
	svc := NewQuoteService(grader, usage, nil, nil)
	_, err = svc.AnalyzeQuote(ctx, models.QuoteSubmission{Email: "user@example.com", SystemSizeKW: 4})
	require.NoError(t, err)

	got, err := usage.Analytics(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalAnalyses)
	assert.Equal(t, 4.0, got.AvgSystemSize)
	assert.Equal(t, 950.0, got.AvgPricePerKW)
	assert.Equal(t, map[string]int{"A": 1}, got.GradeDistribution)
}

func TestQuoteService_GradeError(t *testing.T) {
	svc := NewQuoteService(stubGrader{err: apperrors.Invalid("total_price", "must be a positive number")}, nil, nil, nil)

	_, err := svc.AnalyzeQuote(context.Background(), models.QuoteSubmission{})
	var ve *apperrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "total_price", ve.Field)
}
