package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"solarverify/internal/apperrors"
	"solarverify/internal/config"
	"solarverify/internal/logging"
	"solarverify/internal/models"
	"solarverify/internal/repositories"
	"solarverify/internal/utils"
)

const usageAnalysis = "analysis"

const (
	UsageRegistered = "registered"
	UsageAnonymous  = "anonymous"
	UsageNew        = "new"
)

// UsageStatus tells the frontend whether another free check is available.
type UsageStatus struct {
	Type         string `json:"type"`
	Email        string `json:"email,omitempty"`
	ChecksUsed   int    `json:"checks_used"`
	ChecksLimit  int    `json:"checks_limit"`
	CanUseFree   bool   `json:"can_use_free"`
	NeedsEmail   bool   `json:"needs_email"`
	NeedsUpgrade bool   `json:"needs_upgrade"`
}

type UserSummary struct {
	Email               string `json:"email"`
	FreeChecksUsed      int    `json:"free_checks_used"`
	FreeChecksRemaining int    `json:"free_checks_remaining"`
	CanUseFree          bool   `json:"can_use_free"`
	EmailVerified       bool   `json:"email_verified"`
	TotalAnalyses       int    `json:"total_analyses"`
}

type EmailStatus struct {
	Registered bool         `json:"registered"`
	User       *UserSummary `json:"user,omitempty"`
}

// RecentAnalysis is one row of a user's analysis history.
type RecentAnalysis struct {
	Date       time.Time    `json:"date"`
	SystemSize float64      `json:"system_size"`
	Grade      models.Grade `json:"grade"`
	PricePerKW float64      `json:"price_per_kw"`
}

type UserAnalytics struct {
	Email             string           `json:"email"`
	TotalAnalyses     int              `json:"total_analyses"`
	AvgSystemSize     float64          `json:"avg_system_size"`
	AvgPricePerKW     float64          `json:"avg_price_per_kw"`
	GradeDistribution map[string]int   `json:"grade_distribution"`
	RecentAnalyses    []RecentAnalysis `json:"recent_analyses"`
}

const recentAnalyses = 5

type UsageService interface {
	// RegisterEmail records consent as well when consentAt is set.
	RegisterEmail(ctx context.Context, email, clientID string, consentAt *time.Time) (*UserSummary, error)
	TrackUsage(ctx context.Context, clientID, email string) (*UsageStatus, error)
	CheckEmailStatus(ctx context.Context, email string) (*EmailStatus, error)
	RecordAnalysis(ctx context.Context, email, clientID string, a models.AnalysisRecord) error
	RecordConsent(ctx context.Context, email string, at time.Time) error
	MarkVerified(ctx context.Context, email string) error
	Analytics(ctx context.Context, email string) (*UserAnalytics, error)
}

type usageService struct {
	users  repositories.UserRepository
	events repositories.UsageRepository
	hasher *utils.Hasher
	limits config.UsageConfig
	now    func() time.Time
	log    *zap.Logger
}

func NewUsageService(users repositories.UserRepository, events repositories.UsageRepository, hasher *utils.Hasher, limits config.UsageConfig, log *zap.Logger) UsageService {
	if log == nil {
		log = zap.NewNop()
	}
	return &usageService{
		users:  users,
		events: events,
		hasher: hasher,
		limits: limits,
		now:    time.Now,
		log:    log,
	}
}

func validEmail(email string) (string, error) {
	email = utils.NormalizeEmail(email)
	if !utils.ValidateEmail(email) {
		return "", apperrors.Invalid("email", "a valid email address is required")
	}
	return email, nil
}

func (s *usageService) clientHash(clientID string) string {
	return s.hasher.Hash("client:" + clientID)
}

func (s *usageService) ensureUser(ctx context.Context, email string) (*models.User, error) {
	u := &models.User{
		Email:           email,
		EmailHash:       s.hasher.Hash(email),
		FreeChecksLimit: s.limits.FreeChecks,
		CreatedAt:       s.now().UTC(),
	}
	created, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	if created {
		s.log.Info("user registered", logging.Email(email))
	}
	return u, nil
}

func (s *usageService) RegisterEmail(ctx context.Context, email, clientID string, consentAt *time.Time) (*UserSummary, error) {
	email, err := validEmail(email)
	if err != nil {
		return nil, err
	}
	u, err := s.ensureUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if consentAt != nil {
		if _, err := s.users.RecordConsent(ctx, email, consentAt.UTC()); err != nil {
			return nil, err
		}
	}
	if clientID = strings.TrimSpace(clientID); clientID != "" && clientID != u.ClientID {
		if err := s.users.LinkClient(ctx, u.ID, clientID); err != nil {
			return nil, err
		}
		u.ClientID = clientID
	}
	return s.summary(ctx, u)
}

func (s *usageService) TrackUsage(ctx context.Context, clientID, email string) (*UsageStatus, error) {
	if email = utils.NormalizeEmail(email); email != "" {
		u, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if u != nil {
			return &UsageStatus{
				Type:         UsageRegistered,
				Email:        u.Email,
				ChecksUsed:   u.FreeChecksUsed,
				ChecksLimit:  u.FreeChecksLimit,
				CanUseFree:   u.FreeChecksUsed < u.FreeChecksLimit,
				NeedsUpgrade: u.FreeChecksUsed >= u.FreeChecksLimit,
			}, nil
		}
	}

	limit := s.limits.AnonymousLimit
	if clientID = strings.TrimSpace(clientID); clientID == "" {
		return &UsageStatus{Type: UsageNew, ChecksLimit: limit, CanUseFree: limit > 0}, nil
	}

	used, err := s.events.CountSince(ctx, s.clientHash(clientID), usageAnalysis, s.now().Add(-s.limits.AnonymousWindow))
	if err != nil {
		return nil, err
	}
	return &UsageStatus{
		Type:        UsageAnonymous,
		ChecksUsed:  used,
		ChecksLimit: limit,
		CanUseFree:  used < limit,
		NeedsEmail:  used >= limit,
	}, nil
}

func (s *usageService) CheckEmailStatus(ctx context.Context, email string) (*EmailStatus, error) {
	email, err := validEmail(email)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return &EmailStatus{Registered: false}, nil
	}
	summary, err := s.summary(ctx, u)
	if err != nil {
		return nil, err
	}
	return &EmailStatus{Registered: true, User: summary}, nil
}

// RecordAnalysis counts a completed analysis against the client and, when
// the email is registered, against that user's free checks.
func (s *usageService) RecordAnalysis(ctx context.Context, email, clientID string, a models.AnalysisRecord) error {
	now := s.now()
	event := func(subject string) *models.UsageEvent {
		return &models.UsageEvent{
			SubjectHash:  subject,
			Kind:         usageAnalysis,
			Grade:        a.Grade,
			SystemSizeKW: a.SystemSizeKW,
			PricePerKW:   a.PricePerKW,
			CreatedAt:    now,
		}
	}
	if clientID = strings.TrimSpace(clientID); clientID != "" {
		if err := s.events.Record(ctx, event(s.clientHash(clientID))); err != nil {
			return err
		}
	}
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return err
	}
	if err := s.users.IncrementChecks(ctx, u.ID); err != nil {
		return err
	}
	return s.events.Record(ctx, event(s.hasher.Hash(email)))
}

// RecordConsent registers the address if needed and stores the first GDPR
// consent time given for it.
func (s *usageService) RecordConsent(ctx context.Context, email string, at time.Time) error {
	email, err := validEmail(email)
	if err != nil {
		return err
	}
	if _, err := s.ensureUser(ctx, email); err != nil {
		return err
	}
	_, err = s.users.RecordConsent(ctx, email, at.UTC())
	return err
}

func (s *usageService) Analytics(ctx context.Context, email string) (*UserAnalytics, error) {
	email, err := validEmail(email)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: no user for %s", apperrors.ErrNotFound, email)
	}
	events, err := s.events.List(ctx, s.hasher.Hash(email), usageAnalysis)
	if err != nil {
		return nil, err
	}

	out := &UserAnalytics{
		Email:             u.Email,
		TotalAnalyses:     len(events),
		GradeDistribution: map[string]int{},
		RecentAnalyses:    []RecentAnalysis{},
	}
	if len(events) == 0 {
		return out, nil
	}
	var size, price float64
	for i, e := range events {
		size += e.SystemSizeKW
		price += e.PricePerKW
		if e.Grade != "" {
			out.GradeDistribution[string(e.Grade)]++
		}
		if i < recentAnalyses {
			out.RecentAnalyses = append(out.RecentAnalyses, RecentAnalysis{
				Date:       e.CreatedAt,
				SystemSize: e.SystemSizeKW,
				Grade:      e.Grade,
				PricePerKW: e.PricePerKW,
			})
		}
	}
	n := float64(len(events))
	out.AvgSystemSize = math.Round(size/n*10) / 10
	out.AvgPricePerKW = math.Round(price/n*100) / 100
	return out, nil
}

// MarkVerified registers the address if needed and flags it as verified.
func (s *usageService) MarkVerified(ctx context.Context, email string) error {
	email, err := validEmail(email)
	if err != nil {
		return err
	}
	if _, err := s.ensureUser(ctx, email); err != nil {
		return err
	}
	_, err = s.users.MarkVerified(ctx, email, s.now().UTC())
	return err
}

func (s *usageService) summary(ctx context.Context, u *models.User) (*UserSummary, error) {
	total, err := s.events.CountSince(ctx, s.hasher.Hash(u.Email), usageAnalysis, time.Time{})
	if err != nil {
		return nil, err
	}
	return &UserSummary{
		Email:               u.Email,
		FreeChecksUsed:      u.FreeChecksUsed,
		FreeChecksRemaining: u.ChecksRemaining(),
		CanUseFree:          u.FreeChecksUsed < u.FreeChecksLimit,
		EmailVerified:       u.EmailVerified,
		TotalAnalyses:       total,
	}, nil
}
