package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/upliftapp/gymstatus/internal/config"
)

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

var requiredOutsideDevelopment = []string{"SENTRY_DSN", "UPLIFT_GRAPHQL_URL"}

// NOTE: Uses t.Setenv, so none of these tests can be parallel
func TestConfigFromEnv(t *testing.T) {
	requireEnv := func(t *testing.T, env environment, conf config.Config) {
		t.Helper()
		require.Equal(t, env == production, conf.IsProduction())
		require.Equal(t, env == staging, conf.IsStaging())
		require.Equal(t, env == development, conf.IsDevelopment())
	}

	t.Run("environment is required", func(t *testing.T) {
		_, err := config.ConfigFromEnv()
		require.ErrorIs(t, err, config.ErrMissingRequiredValue)
	})

	t.Run("development defaults", func(t *testing.T) {
		t.Setenv("GYMSTATUS_ENVIRONMENT", "development")

		conf, err := config.ConfigFromEnv()
		require.NoError(t, err)
		requireEnv(t, development, conf)
		require.Equal(t, "8080", conf.Port())
		require.Equal(t, 5*time.Minute, conf.GymCacheTTL())
		require.Empty(t, conf.SentryDSN())
		require.Empty(t, conf.GraphQLURL())
		require.Empty(t, conf.APIToken())
		require.False(t, conf.TelemetryEnabled())
	})

	t.Run("values are read correctly", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("SENTRY_DSN", "https://key@sentry.example.com/1")
		t.Setenv("UPLIFT_GRAPHQL_URL", "https://uplift.example.com/graphql")
		t.Setenv("UPLIFT_API_TOKEN", "secret-token")
		t.Setenv("GYM_CACHE_TTL", "90s")
		t.Setenv("OTEL_ENABLED", "true")

		for _, env := range []environment{production, staging, development} {
			t.Run(string(env), func(t *testing.T) {
				t.Setenv("GYMSTATUS_ENVIRONMENT", string(env))

				conf, err := config.ConfigFromEnv()
				require.NoError(t, err)
				requireEnv(t, env, conf)
				require.Equal(t, "9090", conf.Port())
				require.Equal(t, "https://key@sentry.example.com/1", conf.SentryDSN())
				require.Equal(t, "https://uplift.example.com/graphql", conf.GraphQLURL())
				require.Equal(t, "secret-token", conf.APIToken())
				require.Equal(t, 90*time.Second, conf.GymCacheTTL())
				require.True(t, conf.TelemetryEnabled())
				require.NotContains(t, conf.NonSensitiveString(), "secret-token")
			})
		}
	})

	t.Run("production and staging fail when missing variables", func(t *testing.T) {
		for _, variable := range requiredOutsideDevelopment {
			t.Setenv(variable, "placeholder_value")
		}

		for _, env := range []environment{production, staging} {
			t.Run(string(env), func(t *testing.T) {
				t.Setenv("GYMSTATUS_ENVIRONMENT", string(env))

				for _, variable := range requiredOutsideDevelopment {
					t.Run(variable, func(t *testing.T) {
						t.Setenv(variable, "")

						_, err := config.ConfigFromEnv()
						require.ErrorIs(t, err, config.ErrMissingRequiredValue)
					})
				}
			})
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		cases := []struct {
			variable string
			value    string
		}{
			{variable: "GYMSTATUS_ENVIRONMENT", value: ""},
			{variable: "GYMSTATUS_ENVIRONMENT", value: "my-env"},
			{variable: "PORT", value: "http"},
			{variable: "PORT", value: "70000"},
			{variable: "GYM_CACHE_TTL", value: "five minutes"},
			{variable: "GYM_CACHE_TTL", value: "0s"},
			{variable: "GYM_CACHE_TTL", value: "-1m"},
			{variable: "OTEL_ENABLED", value: "maybe"},
		}

		for _, c := range cases {
			t.Run(c.variable+"="+c.value, func(t *testing.T) {
				t.Setenv("GYMSTATUS_ENVIRONMENT", "development")
				t.Setenv(c.variable, c.value)

				_, err := config.ConfigFromEnv()
				require.ErrorIs(t, err, config.ErrInvalidValue)
			})
		}
	})
}
