package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

const defaultPort = "8080"
const defaultGymCacheTTL = 5 * time.Minute

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

type Config struct {
	port             string
	sentryDSN        string
	graphQLURL       string
	apiToken         string
	gymCacheTTL      time.Duration
	telemetryEnabled bool
	env              environment
}

func (c *Config) Port() string {
	return c.port
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

func (c *Config) GraphQLURL() string {
	return c.graphQLURL
}

// APIToken is the bearer token sent to the GraphQL backend. May be empty.
func (c *Config) APIToken() string {
	return c.apiToken
}

func (c *Config) GymCacheTTL() time.Duration {
	return c.gymCacheTTL
}

func (c *Config) TelemetryEnabled() bool {
	return c.telemetryEnabled
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf(
		"Config{env: %s, port: %s, graphQLURL: %s, gymCacheTTL: %s, telemetryEnabled: %t, ...}",
		string(c.env),
		c.port,
		c.graphQLURL,
		c.gymCacheTTL,
		c.telemetryEnabled,
	)
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}
	invalidValue := func(key string, value string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s (%s)", ErrInvalidValue, key, value)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("GYMSTATUS_ENVIRONMENT")
	if !ok {
		return missingKey("GYMSTATUS_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return invalidValue("GYMSTATUS_ENVIRONMENT", rawEnv)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return invalidValue("PORT", port)
	}

	gymCacheTTL := defaultGymCacheTTL
	if rawTTL := os.Getenv("GYM_CACHE_TTL"); rawTTL != "" {
		parsed, err := time.ParseDuration(rawTTL)
		if err != nil || parsed <= 0 {
			return invalidValue("GYM_CACHE_TTL", rawTTL)
		}
		gymCacheTTL = parsed
	}

	telemetryEnabled := false
	if rawEnabled := os.Getenv("OTEL_ENABLED"); rawEnabled != "" {
		parsed, err := strconv.ParseBool(rawEnabled)
		if err != nil {
			return invalidValue("OTEL_ENABLED", rawEnabled)
		}
		telemetryEnabled = parsed
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	graphQLURL := os.Getenv("UPLIFT_GRAPHQL_URL")
	apiToken := os.Getenv("UPLIFT_API_TOKEN")

	if env == production || env == staging {
		if sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
		if graphQLURL == "" {
			return missingKey("UPLIFT_GRAPHQL_URL")
		}
	}

	return Config{
		port:             port,
		sentryDSN:        sentryDSN,
		graphQLURL:       graphQLURL,
		apiToken:         apiToken,
		gymCacheTTL:      gymCacheTTL,
		telemetryEnabled: telemetryEnabled,
		env:              env,
	}, nil
}
