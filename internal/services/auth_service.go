package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"solarverify/internal/logging"
	"solarverify/internal/utils"
)

// AuthService runs the magic-link flow: issue and email a token, then
// verify it and deliver the guide.
type AuthService interface {
	// RequestMagicLink stores the GDPR consent time first when consentAt is
	// set.
	RequestMagicLink(ctx context.Context, email string, consentAt *time.Time) (expiresAt time.Time, err error)
	VerifyMagicLink(ctx context.Context, token string) (email string, err error)
}

type authService struct {
	tokens TokenService
	emails EmailService
	usage  UsageService
	log    *zap.Logger
}

func NewAuthService(tokens TokenService, emails EmailService, usage UsageService, log *zap.Logger) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{tokens: tokens, emails: emails, usage: usage, log: log}
}

func (s *authService) RequestMagicLink(ctx context.Context, email string, consentAt *time.Time) (time.Time, error) {
	email = utils.NormalizeEmail(email)
	token, expiresAt, err := s.tokens.Issue(ctx, email)
	if err != nil {
		return time.Time{}, err
	}
	if consentAt != nil && s.usage != nil {
		if err := s.usage.RecordConsent(ctx, email, *consentAt); err != nil {
			return time.Time{}, err
		}
	}
	if err := s.emails.SendMagicLink(ctx, email, token); err != nil {
		return time.Time{}, err
	}
	return expiresAt, nil
}

// VerifyMagicLink consumes the token before anything else, so a delivery
// failure afterwards still leaves the token spent. The returned email is set
// whenever verification itself succeeded.
func (s *authService) VerifyMagicLink(ctx context.Context, token string) (string, error) {
	email, err := s.tokens.Verify(ctx, token)
	if err != nil {
		return "", err
	}
	if s.usage != nil {
		if err := s.usage.MarkVerified(ctx, email); err != nil {
			s.log.Warn("mark verified failed", logging.Email(email), zap.Error(err))
		}
	}
	if err := s.emails.SendPDFGuide(ctx, email); err != nil {
		return email, err
	}
	return email, nil
}
