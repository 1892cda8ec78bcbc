package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"solarverify/internal/apperrors"
	"solarverify/internal/logging"
	"solarverify/internal/metrics"
	"solarverify/internal/repositories"
	"solarverify/internal/utils"
)

const magicLinkPurpose = "magic_link"

// MagicLinkClaims is the JWT payload of a magic link. The subject is the
// normalized email address and the ID is the single-use key.
type MagicLinkClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

type TokenService interface {
	Issue(ctx context.Context, email string) (token string, expiresAt time.Time, err error)
	// Verify checks the signature and expiry and consumes the token. Every
	// failure is a *apperrors.TokenError.
	Verify(ctx context.Context, token string) (email string, err error)
}

type TokenConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
	Now    func() time.Time
}

type tokenService struct {
	cfg     TokenConfig
	key     []byte
	used    repositories.UsedTokenRepository
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewTokenService(cfg TokenConfig, used repositories.UsedTokenRepository, log *zap.Logger, m *metrics.Metrics) TokenService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &tokenService{
		cfg:     cfg,
		key:     []byte(cfg.Secret),
		used:    used,
		log:     log,
		metrics: m,
	}
}

func (s *tokenService) Issue(ctx context.Context, email string) (string, time.Time, error) {
	email = utils.NormalizeEmail(email)
	if !utils.ValidateEmail(email) {
		return "", time.Time{}, apperrors.Invalid("email", "a valid email address is required")
	}

	now := s.cfg.Now()
	claims := MagicLinkClaims{
		Purpose: magicLinkPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   email,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	s.metrics.RecordTokenIssued()
	s.log.Info("magic link issued", logging.Email(email), zap.String("jti", claims.ID))
	return signed, claims.ExpiresAt.Time, nil
}

func (s *tokenService) Verify(ctx context.Context, token string) (string, error) {
	claims := &MagicLinkClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.cfg.Now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(s.cfg.Issuer),
	)
	if err != nil {
		return "", s.reject(classify(err), err)
	}
	if claims.Purpose != magicLinkPurpose || claims.ID == "" || claims.Subject == "" {
		return "", s.reject(apperrors.TokenMalformed, errors.New("missing magic link claims"))
	}

	first, err := s.used.MarkUsed(ctx, claims.ID, claims.Subject, claims.ExpiresAt.Time)
	if err != nil {
		return "", fmt.Errorf("mark token used: %w", err)
	}
	if !first {
		return "", s.reject(apperrors.TokenAlreadyUsed, nil)
	}

	s.metrics.RecordTokenVerification("verified")
	s.log.Info("magic link verified", logging.Email(claims.Subject), zap.String("jti", claims.ID))
	return claims.Subject, nil
}

func (s *tokenService) reject(reason apperrors.TokenReason, err error) error {
	s.metrics.RecordTokenVerification(string(reason))
	s.log.Info("magic link rejected", zap.String("reason", string(reason)), zap.Error(err))
	return &apperrors.TokenError{Reason: reason, Err: err}
}

func classify(err error) apperrors.TokenReason {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return apperrors.TokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return apperrors.TokenBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.TokenExpired
	}
	return apperrors.TokenMalformed
}
