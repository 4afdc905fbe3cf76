package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSlurm(); err != nil {
		return err
	}
	if err := c.validateFollow(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSlurm() error {
	if strings.TrimSpace(c.Slurm.Squeue) == "" {
		return errors.New("slurm.squeue must be set")
	}
	if strings.TrimSpace(c.Slurm.Scontrol) == "" {
		return errors.New("slurm.scontrol must be set")
	}
	if strings.ContainsAny(c.Slurm.Cluster, " \t") {
		return fmt.Errorf("slurm.cluster %q must not contain whitespace", c.Slurm.Cluster)
	}
	return nil
}

func (c *Config) validateFollow() error {
	if err := ensurePositiveMap(map[string]int{
		"follow.tick_interval_ms":  c.Follow.TickIntervalMs,
		"follow.state_query_every": c.Follow.StateQueryEvery,
	}); err != nil {
		return err
	}
	if c.Follow.BackseekBytes < 0 {
		return errors.New("follow.backseek_bytes must be >= 0")
	}
	if c.Follow.FinishGraceMs < 0 {
		return errors.New("follow.finish_grace_ms must be >= 0")
	}
	switch c.Follow.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("follow.color must be one of auto, always, never (got %q)", c.Follow.Color)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
