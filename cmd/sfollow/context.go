package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"sfollow/internal/config"
	"sfollow/internal/logging"
	"sfollow/internal/slurm"
)

type rootFlags struct {
	config    string
	cluster   string
	color     string
	noSpinner bool
	summary   bool
	verbose   bool
}

type commandContext struct {
	flags *rootFlags

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the configuration once and applies command-line
// overrides on top of it.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyFlags(cmd, cfg); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Lookup("clusters") != nil && flags.Changed("clusters") {
		cfg.Slurm.Cluster = strings.TrimSpace(c.flags.cluster)
	}
	if flags.Lookup("color") != nil && flags.Changed("color") {
		cfg.Follow.Color = strings.ToLower(strings.TrimSpace(c.flags.color))
	}
	if c.flags.noSpinner {
		cfg.Follow.Spinner = false
	}
	if c.flags.summary {
		cfg.Follow.Summary = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// logger builds the run logger. Console records go to stderr, which the
// caller may wrap so they do not collide with the spinner line.
func (c *commandContext) logger(cmd *cobra.Command, stderr io.Writer) (*slog.Logger, func() error, error) {
	cfg, err := c.ensureConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if stderr == nil {
		stderr = cmd.ErrOrStderr()
	}
	logger, closeLog, err := logging.NewFromConfig(cfg, stderr, c.flags.verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, closeLog, nil
}

func (c *commandContext) slurmClient(cfg *config.Config, logger *slog.Logger) (*slurm.Client, error) {
	return slurm.New(
		cfg.Slurm.Squeue,
		cfg.Slurm.Scontrol,
		slurm.WithCluster(cfg.Slurm.Cluster),
		slurm.WithAllStates(cfg.Slurm.AllStates),
		slurm.WithLogger(logger),
	)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
