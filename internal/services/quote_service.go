package services

import (
	"context"

	"go.uber.org/zap"

	"solarverify/internal/metrics"
	"solarverify/internal/models"
)

// Grader is implemented by *grading.Engine.
type Grader interface {
	Grade(q models.QuoteSubmission) (*models.GradeResult, error)
}

type QuoteService interface {
	AnalyzeQuote(ctx context.Context, q models.QuoteSubmission) (*models.GradeResult, error)
}

type quoteService struct {
	grader  Grader
	usage   UsageService
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewQuoteService(grader Grader, usage UsageService, log *zap.Logger, m *metrics.Metrics) QuoteService {
	if log == nil {
		log = zap.NewNop()
	}
	return &quoteService{grader: grader, usage: usage, log: log, metrics: m}
}

// AnalyzeQuote grades the quote and books it against the caller's free
// checks. Bookkeeping failures are logged and do not fail the request.
func (s *quoteService) AnalyzeQuote(ctx context.Context, q models.QuoteSubmission) (*models.GradeResult, error) {
	res, err := s.grader.Grade(q)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordGrade(string(res.Grade), res.Composite)

	if s.usage != nil && (q.Email != "" || q.ClientID != "") {
		if err := s.usage.RecordAnalysis(ctx, q.Email, q.ClientID, models.AnalysisRecord{
			Grade:        res.Grade,
			SystemSizeKW: q.SystemSizeKW,
			PricePerKW:   res.PricePerKW,
		}); err != nil {
			s.log.Warn("record analysis failed", zap.Error(err))
		}
	}
	return res, nil
}
