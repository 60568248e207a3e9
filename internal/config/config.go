package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvProduction is the CELEBRATION_ENV value that switches on production behaviour.
const EnvProduction = "production"

// ErrMissingOpenAIKey is returned when live generation is selected without a credential.
var ErrMissingOpenAIKey = errors.New("OPENAI_API_KEY is required when CELEBRATION_MOCK_AI=false")

// Config holds process-wide settings read from the environment.
type Config struct {
	Env                string
	Addr               string
	DBPath             string
	MockAI             bool
	OpenAIKey          string
	OpenAIModel        string
	OpenAIBaseURL      string
	CompanyName        string
	EmailDomain        string
	ResendKey          string
	EmailFrom          string
	Seed               bool
	LogLevel           slog.Level
	RateLimitPerSecond int
	SlowQueryMs        int
	SlowRequestMs      int
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads an optional .env file, then the process environment.
// PRE: none
// POST: Returns a validated Config or the first configuration error
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
// PRE: getenv is non-nil
// POST: Returns a validated Config; malformed booleans or integers are errors
func FromEnv(getenv func(string) string) (Config, error) {
	r := reader{getenv: getenv}
	cfg := Config{
		Env:                r.str("CELEBRATION_ENV", "development"),
		Addr:               r.str("CELEBRATION_ADDR", ":8000"),
		DBPath:             r.str("CELEBRATION_DB_PATH", "members.db"),
		MockAI:             r.boolean("CELEBRATION_MOCK_AI", true),
		OpenAIKey:          strings.TrimSpace(getenv("OPENAI_API_KEY")),
		OpenAIModel:        r.str("CELEBRATION_OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL:      r.str("CELEBRATION_OPENAI_BASE_URL", ""),
		CompanyName:        r.str("CELEBRATION_COMPANY", "Datavid"),
		EmailDomain:        r.str("CELEBRATION_EMAIL_DOMAIN", "datavid.com"),
		ResendKey:          r.str("CELEBRATION_RESEND_KEY", ""),
		EmailFrom:          r.str("CELEBRATION_EMAIL_FROM", "Datavid Celebrations <celebrations@datavid.com>"),
		Seed:               r.boolean("CELEBRATION_SEED", true),
		LogLevel:           r.level("CELEBRATION_LOG_LEVEL", slog.LevelInfo),
		RateLimitPerSecond: r.positive("CELEBRATION_RATE_LIMIT", 20),
		SlowQueryMs:        r.positive("CELEBRATION_SLOW_QUERY_MS", 50),
		SlowRequestMs:      r.positive("CELEBRATION_SLOW_REQUEST_MS", 200),
	}
	if r.err != nil {
		return Config{}, r.err
	}
	if !cfg.MockAI && cfg.OpenAIKey == "" {
		return Config{}, ErrMissingOpenAIKey
	}
	return cfg, nil
}

// reader accumulates the first parse error so FromEnv reads as a flat list.
type reader struct {
	getenv func(string) string
	err    error
}

func (r *reader) str(key, fallback string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (r *reader) boolean(key string, fallback bool) bool {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(fmt.Errorf("%s: invalid boolean %q", key, v))
		return fallback
	}
	return b
}

func (r *reader) positive(key string, fallback int) int {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		r.fail(fmt.Errorf("%s: must be a positive integer, got %q", key, v))
		return fallback
	}
	return n
}

func (r *reader) level(key string, fallback slog.Level) slog.Level {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return fallback
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		r.fail(fmt.Errorf("%s: invalid log level %q", key, v))
		return fallback
	}
	return lvl
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
