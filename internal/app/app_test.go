package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"solarverify/internal/config"
	"solarverify/internal/repositories"
)

type outbox struct {
	mu   sync.Mutex
	msgs []*gomail.Message
}

func (o *outbox) DialAndSend(m ...*gomail.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.msgs = append(o.msgs, m...)
	return nil
}

func (o *outbox) subjects() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []string
	for _, m := range o.msgs {
		out = append(out, m.GetHeader("Subject")...)
	}
	return out
}

var tokenPattern = regexp.MustCompile(`verify\?token=([A-Za-z0-9_.\-]+)`)

// lastToken pulls the token out of the most recent magic-link email.
func (o *outbox) lastToken(t *testing.T) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.msgs)
	var buf bytes.Buffer
	_, err := o.msgs[len(o.msgs)-1].WriteTo(&buf)
	require.NoError(t, err)
	// undo quoted-printable soft breaks and escaped equals signs
	raw := strings.ReplaceAll(buf.String(), "=\r\n", "")
	raw = strings.ReplaceAll(raw, "=3D", "=")
	m := tokenPattern.FindStringSubmatch(raw)
	require.Len(t, m, 2)
	return m[1]
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestApp(t *testing.T) (*App, *outbox) {
	t.Helper()
	cfg := config.New()
	cfg.Database.DSN = ":memory:"
	cfg.Server.Mode = gin.TestMode
	box := &outbox{}

	a, err := New(context.Background(), cfg, zap.NewNop(), WithTransport(box))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a, box
}

func do(t *testing.T, a *App, method, path string, body any) (int, envelope) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func TestApp_AnalyzeQuote(t *testing.T) {
	a, _ := newTestApp(t)

	code, env := do(t, a, http.MethodPost, "/api/analyze-quote", map[string]any{
		"system_size_kw": 4,
		"total_price":    4500,
		"region":         "UK-South",
		"client_id":      "browser-1",
		"components": []map[string]any{
			{"model": "Longi 515W panel"},
			{"type": "battery", "model": "Fox ESS EP11"},
		},
	})
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var res struct {
		Grade  string `json:"grade"`
		Scores struct {
			Price float64 `json:"price"`
		} `json:"scores"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "B", res.Grade)
	assert.Equal(t, 75.0, res.Scores.Price)

	code, env = do(t, a, http.MethodPost, "/api/track-usage", map[string]any{"client_id": "browser-1"})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"needs_email":true`)
}

func TestApp_AnalyzeQuoteValidation(t *testing.T) {
	a, _ := newTestApp(t)

	code, env := do(t, a, http.MethodPost, "/api/analyze-quote", map[string]any{"system_size_kw": 0, "total_price": 4000})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, env = do(t, a, http.MethodPost, "/api/analyze-quote", "not an object")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestApp_MagicLink(t *testing.T) {
	a, box := newTestApp(t)

	code, _ := do(t, a, http.MethodPost, "/api/send-magic-link", map[string]string{"email": "user@example.com"})
	require.Equal(t, http.StatusOK, code)
	token := box.lastToken(t)

	code, env := do(t, a, http.MethodPost, "/api/verify-token", map[string]string{"token": token})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"email":"user@example.com"`)
	assert.Equal(t, []string{"Your SolarVerify sign-in link", "Your Solar Buyer's Guide"}, box.subjects())

	code, env = do(t, a, http.MethodPost, "/api/verify-token", map[string]string{"token": token})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "TOKEN_INVALID", env.Error.Code)
	assert.NotContains(t, env.Error.Message, "already")
	assert.Len(t, box.subjects(), 2)

	code, env = do(t, a, http.MethodPost, "/api/check-email-status", map[string]string{"email": "user@example.com"})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"email_verified":true`)

	code, env = do(t, a, http.MethodPost, "/api/send-magic-link", map[string]string{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestApp_UserAnalytics(t *testing.T) {
	a, box := newTestApp(t)

	code, _ := do(t, a, http.MethodPost, "/api/send-magic-link", map[string]any{
		"email":             "buyer@example.com",
		"gdpr_consent":      true,
		"consent_timestamp": "2026-03-01T12:00:00Z",
	})
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, a, http.MethodPost, "/api/verify-token", map[string]string{"token": box.lastToken(t)})
	require.Equal(t, http.StatusOK, code)

	u, err := repositories.NewUserRepository(a.db).GetByEmail(context.Background(), "buyer@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.GDPRConsent)
	require.NotNil(t, u.ConsentAt)
	assert.Equal(t, "2026-03-01T12:00:00Z", u.ConsentAt.UTC().Format(time.RFC3339))

	// older frontends send system_size and user_email
	code, _ = do(t, a, http.MethodPost, "/api/analyze-quote", map[string]any{
		"system_size": 4,
		"total_price": 4500,
		"region":      "UK-South",
		"user_email":  "buyer@example.com",
		"components":  []map[string]any{{"model": "Longi 515W panel"}},
	})
	require.Equal(t, http.StatusOK, code)

	code, env := do(t, a, http.MethodGet, "/api/user-analytics?email=buyer@example.com", nil)
	require.Equal(t, http.StatusOK, code)
	var got struct {
		TotalAnalyses     int            `json:"total_analyses"`
		AvgSystemSize     float64        `json:"avg_system_size"`
		AvgPricePerKW     float64        `json:"avg_price_per_kw"`
		GradeDistribution map[string]int `json:"grade_distribution"`
		RecentAnalyses    []struct {
			Grade      string  `json:"grade"`
			SystemSize float64 `json:"system_size"`
		} `json:"recent_analyses"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 1, got.TotalAnalyses)
	assert.Equal(t, 4.0, got.AvgSystemSize)
	assert.Equal(t, 1125.0, got.AvgPricePerKW)
	require.Len(t, got.RecentAnalyses, 1)
	assert.Equal(t, 4.0, got.RecentAnalyses[0].SystemSize)
	assert.Equal(t, 1, got.GradeDistribution[got.RecentAnalyses[0].Grade])

	code, env = do(t, a, http.MethodGet, "/api/user-analytics?email=ghost@example.com", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	code, env = do(t, a, http.MethodGet, "/api/user-analytics", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestApp_ReferenceData(t *testing.T) {
	a, _ := newTestApp(t)

	code, env := do(t, a, http.MethodGet, "/api/components/panels?tier=premium", nil)
	require.Equal(t, http.StatusOK, code)
	var panels []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &panels))
	assert.Len(t, panels, 3)

	code, env = do(t, a, http.MethodGet, "/api/components/batteries?capacity=abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, env = do(t, a, http.MethodGet, "/api/pricing-benchmarks?region=UK-South&size_band=4kW", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"price_low":4000`)

	code, env = do(t, a, http.MethodGet, "/api/pricing-benchmarks?region=Atlantis&system_size=4", nil)
	require.Equal(t, http.StatusOK, code)
	var fallback []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &fallback))
	require.Len(t, fallback, 1)
	assert.Equal(t, "UK", fallback[0]["region"])
	assert.Equal(t, "4kW", fallback[0]["size_band"])
	assert.Equal(t, true, fallback[0]["fallback"])

	code, env = do(t, a, http.MethodGet, "/api/pricing-benchmarks?region=Mars", nil)
	require.Equal(t, http.StatusOK, code)
	var national []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &national))
	assert.Len(t, national, 7)
	for _, p := range national {
		assert.Equal(t, "UK", p["region"])
		assert.Equal(t, true, p["fallback"])
	}

	code, env = do(t, a, http.MethodGet, "/api/pricing-benchmarks", nil)
	require.Equal(t, http.StatusOK, code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 18)

	code, env = do(t, a, http.MethodGet, "/api/battery-options", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "Other (specify capacity)")

	code, env = do(t, a, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"status":"healthy"`)
}

func TestApp_Metrics(t *testing.T) {
	a, _ := newTestApp(t)
	do(t, a, http.MethodGet, "/api/health", nil)

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "solarverify_http_requests_total")
}

func TestApp_RunShutsDown(t *testing.T) {
	a, _ := newTestApp(t)
	a.cfg.Server.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()
	assert.NoError(t, <-done)
}
