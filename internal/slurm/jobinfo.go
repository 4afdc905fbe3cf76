package slurm

import (
	"context"
	"regexp"
	"strings"

	"sfollow/internal/apperrors"
)

// JobInfo holds the KEY=value metadata scontrol reports for one job.
type JobInfo map[string]string

// Get returns the value for key and whether it was present.
func (j JobInfo) Get(key string) (string, bool) {
	value, ok := j[key]
	return value, ok
}

// Name returns the JobName field.
func (j JobInfo) Name() (string, bool) { return j.nonEmpty("JobName") }

// State returns the JobState field.
func (j JobInfo) State() (string, bool) { return j.nonEmpty("JobState") }

// StdOut returns the path of the job's standard output file.
func (j JobInfo) StdOut() (string, bool) { return j.nonEmpty("StdOut") }

// StdErr returns the path of the job's standard error file.
func (j JobInfo) StdErr() (string, bool) { return j.nonEmpty("StdErr") }

func (j JobInfo) nonEmpty(key string) (string, bool) {
	value, ok := j[key]
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// A key is a run of letters and colons at the start of the output or after
// whitespace, followed by "=". Values run until the next key.
var keyPattern = regexp.MustCompile(`(?:^|\s+)([A-Za-z:]+)=`)

// ParseJobInfo parses `scontrol show job` output. Text before the first key is
// dropped; later duplicates of a key win.
func ParseJobInfo(text string) JobInfo {
	text = strings.TrimSpace(text)
	matches := keyPattern.FindAllStringSubmatchIndex(text, -1)
	info := make(JobInfo, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		info[text[m[2]:m[3]]] = text[m[1]:end]
	}
	return info
}

// JobInfo runs `scontrol show job <id>` and parses its output.
func (c *Client) JobInfo(ctx context.Context, id string) (JobInfo, error) {
	args := c.scopeArgs([]string{"show", "job", id}, false)
	out, err := c.run(ctx, c.scontrol, args)
	if err != nil {
		return nil, apperrors.Query(c.scontrol, err)
	}
	info := ParseJobInfo(string(out))
	if len(info) == 0 {
		return nil, apperrors.QueryParse(c.scontrol, "no KEY=value fields for job "+id)
	}
	return info, nil
}
