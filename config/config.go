package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL               string
	DatabaseName      string
	BaseURL           string
	Port              string
	Env               string
	JWTSecret         string
	TokenTTL          time.Duration
	RequestTimeout    time.Duration
	SendgridAPIKey    string
	SendgridFromEmail string
	CloudinaryURL     string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	env := os.Getenv("ENV")
	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:               os.Getenv("DB_URI"),
		DatabaseName:      os.Getenv("DB_NAME"),
		BaseURL:           os.Getenv("BASE_URL"),
		Port:              getenvDefault("PORT", "8080"),
		Env:               env,
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          durationDefault("TOKEN_TTL", 24*time.Hour),
		RequestTimeout:    durationDefault("REQUEST_TIMEOUT", 30*time.Second),
		SendgridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendgridFromEmail: getenvDefault("SENDGRID_FROM_EMAIL", "no-reply@ne-attend.app"),
		CloudinaryURL:     os.Getenv("CLOUDINARY_URL"),
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// durationDefault parses values like "12h" or "90s" and falls back on anything unparsable
func durationDefault(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		zap.S().Warnw("ignoring invalid duration", "key", key, "value", v)
		return fallback
	}
	return d
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
