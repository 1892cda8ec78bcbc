package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"solarverify/internal/config"

	"github.com/smartystreets/goconvey/convey"
)

const sampleYAML = `
log_level: debug
server:
  port: 9090
auth:
  token_ttl: 30m
  secret_key: from-file-secret
email:
  from_name: Solar Team
usage:
  free_checks: 5
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When loading an explicit YAML file", func() {
			cfg, err := config.Load(writeConfig(t, sampleYAML))

			convey.Convey("Then file values override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Server.Port, convey.ShouldEqual, 9090)
				convey.So(cfg.Auth.TokenTTL, convey.ShouldEqual, 30*time.Minute)
				convey.So(cfg.Auth.SecretKey, convey.ShouldEqual, "from-file-secret")
				convey.So(cfg.Usage.FreeChecks, convey.ShouldEqual, 5)
			})

			convey.Convey("Then unset values keep their defaults", func() {
				convey.So(cfg.Email.SMTPHost, convey.ShouldEqual, "smtp.resend.com")
				convey.So(cfg.Usage.AnonymousWindow, convey.ShouldEqual, 24*time.Hour)
			})
		})

		convey.Convey("When the explicit file is missing", func() {
			_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then loading fails", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file produces an invalid config", func() {
			_, err := config.Load(writeConfig(t, "auth:\n  token_ttl: 0s\n"))

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestConfigLoader_Env(t *testing.T) {
	convey.Convey("Given a config file and environment overrides", t, func() {
		convey.Convey("When deployment env vars are set", func() {
			t.Setenv("PORT", "8081")
			t.Setenv("SECRET_KEY", "env-secret")
			t.Setenv("RESEND_API_KEY", "re_test")
			t.Setenv("FRONTEND_ORIGIN", "https://solarverify.co.uk")
			t.Setenv("SOLARVERIFY_AUTH__TOKEN_TTL", "5m")
			t.Setenv("SOLARVERIFY_EMAIL__FROM_NAME", "Env Sender")

			cfg, err := config.Load(writeConfig(t, sampleYAML))

			convey.Convey("Then env values take precedence over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Server.Port, convey.ShouldEqual, 8081)
				convey.So(cfg.Auth.SecretKey, convey.ShouldEqual, "env-secret")
				convey.So(cfg.Auth.TokenTTL, convey.ShouldEqual, 5*time.Minute)
				convey.So(cfg.Email.APIKey, convey.ShouldEqual, "re_test")
				convey.So(cfg.Email.FromName, convey.ShouldEqual, "Env Sender")
				convey.So(cfg.Frontend.Origin, convey.ShouldEqual, "https://solarverify.co.uk")
			})
		})
	})
}
