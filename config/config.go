// Package config loads and validates the bot's environment-driven
// configuration.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
)

// Config is the full application configuration, loaded once at startup.
type Config struct {
	Discord   DiscordConfig
	Hypixel   HypixelConfig
	Tracking  TrackingConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
}

type DiscordConfig struct {
	Token     string
	ChannelID string
}

type HypixelConfig struct {
	APIKey string
}

// TrackingConfig controls the daily snapshot pipeline. DataPath roots
// every on-disk store; the hour/minute pair is local time for the
// daily update run.
type TrackingConfig struct {
	Enabled      bool
	DataPath     string
	UpdateHour   int
	UpdateMinute int
}

type LoggingConfig struct {
	Level     string
	DebugMode bool
}

type TelemetryConfig struct {
	Enabled   bool
	ProjectID string
}

// Load reads configuration from the environment, applying defaults for
// everything optional.
func Load() *Config {
	return &Config{
		Discord: DiscordConfig{
			Token:     getEnv(constants.EnvDiscordToken, ""),
			ChannelID: getEnv(constants.EnvChannelID, ""),
		},
		Hypixel: HypixelConfig{
			APIKey: getEnv(constants.EnvHypixelAPIKey, ""),
		},
		Tracking: TrackingConfig{
			Enabled:      getEnvBool(constants.EnvTrackingEnabled, true),
			DataPath:     getEnv(constants.EnvDataPath, "data"),
			UpdateHour:   getEnvInt("UPDATE_HOUR", constants.DailyUpdateHour),
			UpdateMinute: getEnvInt("UPDATE_MINUTE", constants.DailyUpdateMinute),
		},
		Logging: LoggingConfig{
			Level:     getEnv(constants.EnvLogLevel, constants.LogLevelInfo),
			DebugMode: getEnvBool(constants.EnvDebugMode, false),
		},
		Telemetry: TelemetryConfig{
			Enabled:   getEnvBool("TELEMETRY_ENABLED", false),
			ProjectID: getEnv("GOOGLE_CLOUD_PROJECT", ""),
		},
	}
}

// Validate rejects configurations the bot cannot start with.
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return &ConfigError{
			Field:   "Discord.Token",
			Message: constants.EnvDiscordToken + " is required",
		}
	}
	if c.Hypixel.APIKey == "" {
		return &ConfigError{
			Field:   "Hypixel.APIKey",
			Message: constants.EnvHypixelAPIKey + " is required",
		}
	}

	validLogLevels := map[string]bool{
		constants.LogLevelDebug: true,
		constants.LogLevelInfo:  true,
		constants.LogLevelWarn:  true,
		constants.LogLevelError: true,
	}
	if !validLogLevels[strings.ToUpper(c.Logging.Level)] {
		return &ConfigError{
			Field:   "Logging.Level",
			Message: "LOG_LEVEL must be one of: DEBUG, INFO, WARN, ERROR (got: " + c.Logging.Level + ")",
		}
	}

	if c.Tracking.Enabled {
		if c.Tracking.DataPath == "" {
			return &ConfigError{
				Field:   "Tracking.DataPath",
				Message: constants.EnvDataPath + " is required when tracking is enabled",
			}
		}
		if c.Tracking.UpdateHour < 0 || c.Tracking.UpdateHour > 23 {
			return &ConfigError{
				Field:   "Tracking.UpdateHour",
				Message: "UPDATE_HOUR must be between 0 and 23 (got: " + strconv.Itoa(c.Tracking.UpdateHour) + ")",
			}
		}
		if c.Tracking.UpdateMinute < 0 || c.Tracking.UpdateMinute > 59 {
			return &ConfigError{
				Field:   "Tracking.UpdateMinute",
				Message: "UPDATE_MINUTE must be between 0 and 59 (got: " + strconv.Itoa(c.Tracking.UpdateMinute) + ")",
			}
		}
	}

	if c.Telemetry.Enabled && c.Telemetry.ProjectID == "" {
		return &ConfigError{
			Field:   "Telemetry.ProjectID",
			Message: "GOOGLE_CLOUD_PROJECT is required when telemetry is enabled",
		}
	}

	return nil
}

// IsDebugMode reports whether debug logging should be active.
func (c *Config) IsDebugMode() bool {
	return c.Logging.DebugMode || strings.ToUpper(c.Logging.Level) == constants.LogLevelDebug
}

// ConfigError describes a rejected configuration value.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in " + e.Field + ": " + e.Message
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
