package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation constants define acceptable bounds for configuration values
const (
	// Token validation
	minTokenLength = 50 // Discord tokens are typically 50+ characters

	// ShutdownTimeout validation
	minShutdownTimeout = 1 * time.Second
	maxShutdownTimeout = 2 * time.Minute

	// DefaultDiceSides validation
	minDiceSides = 2
	maxDiceSides = 1000
)

// Validate checks if the configuration values are valid and within acceptable ranges.
// It returns all validation errors at once using errors.Join for better user experience.
//
// All configuration fields are validated:
//   - Token: Must be at least 50 characters (Discord token format)
//   - GuildIDs: Each must be a numeric snowflake
//   - MetricsAddr: Must be a host:port listen address
//   - ShutdownTimeout: Must be between 1s and 2m
//   - DefaultDiceSides: Must be between 2 and 1000
//
// Returns nil if all validations pass, otherwise returns a combined error
// containing all validation failures.
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateGuildIDs(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateMetricsAddr(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateShutdownTimeout(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateDefaultDiceSides(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

// validateToken ensures the Discord token is present and has valid length
func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set")
	}

	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}

	return nil
}

// validateGuildIDs ensures every configured guild id is a numeric snowflake
func (c *Config) validateGuildIDs() error {
	var errs []error

	for _, id := range c.GuildIDs {
		if !isSnowflake(id) {
			errs = append(errs, fmt.Errorf(
				"DISCORD_GUILD_IDS entry %q is not a numeric snowflake", id,
			))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// validateMetricsAddr ensures the metrics listen address looks like host:port
func (c *Config) validateMetricsAddr() error {
	if c.MetricsAddr == "" {
		return fmt.Errorf("METRICS_ADDR cannot be empty")
	}

	if !strings.Contains(c.MetricsAddr, ":") {
		return fmt.Errorf(
			"METRICS_ADDR must be a host:port listen address, got %q", c.MetricsAddr,
		)
	}

	return nil
}

// validateShutdownTimeout ensures the shutdown grace period is within bounds
func (c *Config) validateShutdownTimeout() error {
	if c.ShutdownTimeout < minShutdownTimeout {
		return fmt.Errorf(
			"SHUTDOWN_TIMEOUT must be at least %v, got %v",
			minShutdownTimeout, c.ShutdownTimeout,
		)
	}

	if c.ShutdownTimeout > maxShutdownTimeout {
		return fmt.Errorf(
			"SHUTDOWN_TIMEOUT must be at most %v, got %v",
			maxShutdownTimeout, c.ShutdownTimeout,
		)
	}

	return nil
}

// validateDefaultDiceSides ensures the fallback die is a sane size
func (c *Config) validateDefaultDiceSides() error {
	if c.DefaultDiceSides < minDiceSides || c.DefaultDiceSides > maxDiceSides {
		return fmt.Errorf(
			"DEFAULT_DICE_SIDES must be between %d and %d, got %d",
			minDiceSides, maxDiceSides, c.DefaultDiceSides,
		)
	}

	return nil
}

func isSnowflake(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
