package slurm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"sfollow/internal/logging"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Output(ctx context.Context, binary string, args []string) ([]byte, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithCluster qualifies every query with --clusters.
func WithCluster(name string) Option {
	return func(c *Client) {
		c.cluster = strings.TrimSpace(name)
	}
}

// WithAllStates controls whether squeue is asked about finished jobs too.
func WithAllStates(enabled bool) Option {
	return func(c *Client) {
		c.allStates = enabled
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client wraps squeue and scontrol invocations.
type Client struct {
	squeue    string
	scontrol  string
	cluster   string
	allStates bool
	exec      Executor
	logger    *slog.Logger
}

// New constructs a Slurm client. States and LatestJob pass --states=all
// unless WithAllStates(false) is given.
func New(squeue, scontrol string, opts ...Option) (*Client, error) {
	squeue = strings.TrimSpace(squeue)
	scontrol = strings.TrimSpace(scontrol)
	if squeue == "" {
		return nil, errors.New("squeue binary required")
	}
	if scontrol == "" {
		return nil, errors.New("scontrol binary required")
	}
	client := &Client{
		squeue:    squeue,
		scontrol:  scontrol,
		allStates: true,
		exec:      commandExecutor{},
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "slurm")
	return client, nil
}

// Cluster returns the configured cluster qualifier, if any.
func (c *Client) Cluster() string {
	return c.cluster
}

func (c *Client) run(ctx context.Context, binary string, args []string) ([]byte, error) {
	c.logger.Debug("run command",
		logging.String("binary", binary),
		logging.String("args", strings.Join(args, " ")),
	)
	return c.exec.Output(ctx, binary, args)
}

func (c *Client) scopeArgs(args []string, withStates bool) []string {
	if withStates && c.allStates {
		args = append(args, "--states=all")
	}
	if c.cluster != "" {
		args = append(args, "--clusters", c.cluster)
	}
	return args
}

type commandExecutor struct{}

func (commandExecutor) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return nil, fmt.Errorf("%w: %s", err, detail)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
