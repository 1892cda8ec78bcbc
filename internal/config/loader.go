package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultPath = "config/config.yaml"
	PathEnv     = "SOLARVERIFY_CONFIG"
	envPrefix   = "SOLARVERIFY_"
)

// Deployment platforms inject these unprefixed.
var envAliases = map[string]string{
	"PORT":            "server.port",
	"DATABASE_URL":    "database.url",
	"REDIS_URL":       "redis.url",
	"SECRET_KEY":      "auth.secret_key",
	"RESEND_API_KEY":  "email.api_key",
	"FRONTEND_ORIGIN": "frontend.origin",
	"LOG_LEVEL":       "log_level",
}

// Load layers defaults, an optional YAML file and the environment, in that
// order of precedence. path overrides SOLARVERIFY_CONFIG; a missing default
// file is not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = os.Getenv(PathEnv)
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil || explicit {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
	}

	// SOLARVERIFY_AUTH__TOKEN_TTL -> auth.token_ttl
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	if key, ok := envAliases[s]; ok {
		return key
	}
	if !strings.HasPrefix(s, envPrefix) || s == PathEnv {
		return ""
	}
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
