package slurm

import (
	"context"
	"fmt"
	"strings"

	"sfollow/internal/apperrors"
)

// RecentJob identifies the caller's most recently submitted job.
type RecentJob struct {
	ID   string
	Name string
}

// States returns the current state of each requested job. An empty id list
// returns an empty map without running squeue, which rejects an empty --jobs.
func (c *Client) States(ctx context.Context, ids []string) (map[string]string, error) {
	states := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return states, nil
	}

	args := c.scopeArgs([]string{"--noheader", "--format=%i %T", "--jobs", strings.Join(ids, ",")}, true)
	out, err := c.run(ctx, c.squeue, args)
	if err != nil {
		return nil, apperrors.Query(c.squeue, err)
	}

	for _, line := range outputLines(out) {
		id, state, ok := strings.Cut(line, " ")
		id = strings.TrimSpace(id)
		state = strings.TrimSpace(state)
		if !ok || id == "" || state == "" {
			return nil, apperrors.QueryParse(c.squeue, fmt.Sprintf("%q", line))
		}
		states[id] = state
	}
	return states, nil
}

// LatestJob returns the caller's most recently submitted job.
func (c *Client) LatestJob(ctx context.Context) (RecentJob, error) {
	// --sort=-V orders by submission time, newest first.
	args := c.scopeArgs([]string{"--me", "--noheader", "--format=%i %j", "--sort=-V"}, true)
	out, err := c.run(ctx, c.squeue, args)
	if err != nil {
		return RecentJob{}, apperrors.Query(c.squeue, err)
	}
	lines := outputLines(out)
	if len(lines) == 0 {
		return RecentJob{}, apperrors.Usage("you have no jobs running or recently finished")
	}
	id, name, _ := strings.Cut(lines[0], " ")
	return RecentJob{ID: strings.TrimSpace(id), Name: strings.TrimSpace(name)}, nil
}

// outputLines returns the trimmed, non-empty lines of squeue output, minus the
// "CLUSTER: name" banners printed when --clusters is used.
func outputLines(out []byte) []string {
	raw := strings.Split(string(out), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "CLUSTER:") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
