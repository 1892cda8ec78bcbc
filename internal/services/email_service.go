package services

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"solarverify/internal/apperrors"
	"solarverify/internal/config"
	"solarverify/internal/logging"
	"solarverify/internal/metrics"
)

// Transport sends composed messages. *gomail.Dialer satisfies it.
type Transport interface {
	DialAndSend(m ...*gomail.Message) error
}

// GuideRenderer produces the PDF attached to the post-verification email.
type GuideRenderer interface {
	Generate(email string, now time.Time) ([]byte, error)
}

type EmailService interface {
	SendMagicLink(ctx context.Context, email, token string) error
	SendPDFGuide(ctx context.Context, email string) error
}

const guideFilename = "SolarVerify-Buyers-Guide.pdf"

type emailService struct {
	transport Transport
	guide     GuideRenderer
	from      string
	origin    string
	ttl       time.Duration
	now       func() time.Time
	log       *zap.Logger
	metrics   *metrics.Metrics
}

// NewSMTPTransport dials the configured relay. For Resend the user is
// "resend" and the password is the API key.
func NewSMTPTransport(cfg config.EmailConfig) Transport {
	return gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.APIKey)
}

// logTransport writes messages to the log instead of sending them. It is
// used when no provider key is configured.
type logTransport struct {
	log *zap.Logger
}

func NewLogTransport(log *zap.Logger) Transport {
	return &logTransport{log: log}
}

func (t *logTransport) DialAndSend(msgs ...*gomail.Message) error {
	for _, m := range msgs {
		var to string
		if h := m.GetHeader("To"); len(h) > 0 {
			to = h[0]
		}
		t.log.Info("email not sent (dry run)",
			logging.Email(to),
			zap.Strings("subject", m.GetHeader("Subject")))
	}
	return nil
}

func NewEmailService(transport Transport, guide GuideRenderer, cfg *config.Config, log *zap.Logger, m *metrics.Metrics) EmailService {
	if log == nil {
		log = zap.NewNop()
	}
	return &emailService{
		transport: transport,
		guide:     guide,
		from:      cfg.Email.FromAddress(),
		origin:    strings.TrimRight(cfg.Frontend.Origin, "/"),
		ttl:       cfg.Auth.TokenTTL,
		now:       time.Now,
		log:       log,
		metrics:   m,
	}
}

func (s *emailService) SendMagicLink(ctx context.Context, email, token string) error {
	link := s.magicLinkURL(token)

	m := s.newMessage(email, "Your SolarVerify sign-in link")
	body := fmt.Sprintf(`
		<h2>Confirm your email</h2>
		<p>Click the link below to verify your address and receive your free Solar Buyer's Guide.</p>
		<p><a href="%s">Verify my email</a></p>
		<p>This link expires in %d minutes and can only be used once.</p>
		<p>If you did not request this, you can ignore this email.</p>
	`, html.EscapeString(link), int(s.ttl.Minutes()))
	m.SetBody("text/html", body)

	return s.send(ctx, "magic_link", email, m)
}

func (s *emailService) magicLinkURL(token string) string {
	return s.origin + "/verify?token=" + url.QueryEscape(token)
}

func (s *emailService) SendPDFGuide(ctx context.Context, email string) error {
	data, err := s.guide.Generate(email, s.now())
	if err != nil {
		s.metrics.RecordEmail("pdf_guide", err)
		return fmt.Errorf("generate guide: %w", err)
	}

	m := s.newMessage(email, "Your Solar Buyer's Guide")
	m.SetBody("text/html", `
		<h2>Thanks for verifying your email</h2>
		<p>Your Solar Buyer's Guide is attached. It covers typical UK prices, the components we rate highly
		and the questions worth asking every installer.</p>
		<p>The SolarVerify Team</p>
	`)
	m.Attach(guideFilename,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
	)

	return s.send(ctx, "pdf_guide", email, m)
}

func (s *emailService) newMessage(to, subject string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	return m
}

func (s *emailService) send(ctx context.Context, kind, to string, m *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.transport.DialAndSend(m)
	s.metrics.RecordEmail(kind, err)
	if err != nil {
		s.log.Error("email delivery failed", zap.String("kind", kind), logging.Email(to), zap.Error(err))
		return fmt.Errorf("%w: %s: %v", apperrors.ErrDeliveryFailure, kind, err)
	}
	s.log.Info("email sent", zap.String("kind", kind), logging.Email(to))
	return nil
}
