package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeSlurm()
	c.normalizeFollow()
	return c.normalizeLogging()
}

func (c *Config) normalizeSlurm() {
	if value, ok := os.LookupEnv("SFOLLOW_SQUEUE"); ok && strings.TrimSpace(value) != "" {
		c.Slurm.Squeue = value
	}
	if value, ok := os.LookupEnv("SFOLLOW_SCONTROL"); ok && strings.TrimSpace(value) != "" {
		c.Slurm.Scontrol = value
	}
	if value, ok := os.LookupEnv("SFOLLOW_CLUSTERS"); ok && strings.TrimSpace(value) != "" {
		c.Slurm.Cluster = value
	}
	c.Slurm.Squeue = strings.TrimSpace(c.Slurm.Squeue)
	if c.Slurm.Squeue == "" {
		c.Slurm.Squeue = defaultSqueue
	}
	c.Slurm.Scontrol = strings.TrimSpace(c.Slurm.Scontrol)
	if c.Slurm.Scontrol == "" {
		c.Slurm.Scontrol = defaultScontrol
	}
	c.Slurm.Cluster = strings.TrimSpace(c.Slurm.Cluster)
}

func (c *Config) normalizeFollow() {
	c.Follow.Color = strings.ToLower(strings.TrimSpace(c.Follow.Color))
	if c.Follow.Color == "" {
		c.Follow.Color = defaultColor
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = ""
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
