package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTiming(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateTiming() error {
	if c.Timing.SecondsPerChar <= 0 {
		return errors.New("timing.seconds_per_char must be positive")
	}
	for name, floor := range map[string]float64{
		"timing.screen1_floor":      c.Timing.Screen1Floor,
		"timing.screen2_floor":      c.Timing.Screen2Floor,
		"timing.intro_ending_floor": c.Timing.IntroEndingFloor,
	} {
		if floor <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.Timing.SilenceGap < 0 {
		return errors.New("timing.silence_gap must not be negative")
	}
	if c.Timing.Screen1Share <= 0 || c.Timing.Screen1Share >= 1 {
		return errors.New("timing.screen1_share must be between 0 and 1 exclusive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}
