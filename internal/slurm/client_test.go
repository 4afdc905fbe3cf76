package slurm_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sfollow/internal/apperrors"
	"sfollow/internal/slurm"
)

type stubExecutor struct {
	output   string
	err      error
	calls    int
	binaries []string
	args     [][]string
}

func (s *stubExecutor) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	s.calls++
	s.binaries = append(s.binaries, binary)
	s.args = append(s.args, append([]string(nil), args...))
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.output), nil
}

func newClient(t *testing.T, exec *stubExecutor, opts ...slurm.Option) *slurm.Client {
	t.Helper()
	opts = append([]slurm.Option{slurm.WithExecutor(exec)}, opts...)
	client, err := slurm.New("squeue", "scontrol", opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestNewRequiresBinaries(t *testing.T) {
	if _, err := slurm.New("", "scontrol"); err == nil {
		t.Fatal("expected error for empty squeue")
	}
	if _, err := slurm.New("squeue", "  "); err == nil {
		t.Fatal("expected error for empty scontrol")
	}
}

func TestStatesEmptyIDsSkipsCommand(t *testing.T) {
	exec := &stubExecutor{err: errors.New("must not run")}
	client := newClient(t, exec)

	states, err := client.States(context.Background(), nil)
	if err != nil {
		t.Fatalf("States returned error: %v", err)
	}
	if len(states) != 0 {
		t.Fatalf("expected empty map, got %v", states)
	}
	if exec.calls != 0 {
		t.Fatalf("expected no squeue invocation, got %d", exec.calls)
	}
}

func TestStatesParsesLinesAndBuildsArgs(t *testing.T) {
	exec := &stubExecutor{output: "42 RUNNING\n43 PENDING\n\n"}
	client := newClient(t, exec)

	states, err := client.States(context.Background(), []string{"42", "43"})
	if err != nil {
		t.Fatalf("States returned error: %v", err)
	}
	if states["42"] != "RUNNING" || states["43"] != "PENDING" || len(states) != 2 {
		t.Fatalf("unexpected states: %v", states)
	}
	want := []string{"--noheader", "--format=%i %T", "--jobs", "42,43", "--states=all"}
	if !equalStrings(exec.args[0], want) {
		t.Fatalf("unexpected squeue args: got %v want %v", exec.args[0], want)
	}
	if exec.binaries[0] != "squeue" {
		t.Fatalf("expected squeue binary, got %q", exec.binaries[0])
	}
}

func TestStatesWithClusterAndActiveOnly(t *testing.T) {
	exec := &stubExecutor{output: "CLUSTER: gpu\n7 COMPLETING\n"}
	client := newClient(t, exec, slurm.WithCluster("gpu"), slurm.WithAllStates(false))

	states, err := client.States(context.Background(), []string{"7"})
	if err != nil {
		t.Fatalf("States returned error: %v", err)
	}
	if states["7"] != "COMPLETING" || len(states) != 1 {
		t.Fatalf("expected cluster banner to be skipped, got %v", states)
	}
	want := []string{"--noheader", "--format=%i %T", "--jobs", "7", "--clusters", "gpu"}
	if !equalStrings(exec.args[0], want) {
		t.Fatalf("unexpected squeue args: got %v want %v", exec.args[0], want)
	}
}

func TestStatesRejectsUnparseableLine(t *testing.T) {
	client := newClient(t, &stubExecutor{output: "42RUNNING\n"})

	_, err := client.States(context.Background(), []string{"42"})
	if !apperrors.IsQuery(err) {
		t.Fatalf("expected query error, got %v", err)
	}
}

func TestStatesWrapsCommandFailure(t *testing.T) {
	client := newClient(t, &stubExecutor{err: errors.New("exit status 1: Invalid job id specified")})

	_, err := client.States(context.Background(), []string{"999"})
	if !apperrors.IsQuery(err) {
		t.Fatalf("expected query error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid job id specified") {
		t.Fatalf("expected squeue detail in error, got %q", err.Error())
	}
}

func TestLatestJob(t *testing.T) {
	exec := &stubExecutor{output: "1234 train model\n1200 old\n"}
	client := newClient(t, exec, slurm.WithCluster("gpu"))

	job, err := client.LatestJob(context.Background())
	if err != nil {
		t.Fatalf("LatestJob returned error: %v", err)
	}
	if job.ID != "1234" || job.Name != "train model" {
		t.Fatalf("unexpected job: %+v", job)
	}
	want := []string{"--me", "--noheader", "--format=%i %j", "--sort=-V", "--states=all", "--clusters", "gpu"}
	if !equalStrings(exec.args[0], want) {
		t.Fatalf("unexpected squeue args: got %v want %v", exec.args[0], want)
	}
}

func TestLatestJobWithoutJobsIsUsageError(t *testing.T) {
	client := newClient(t, &stubExecutor{output: "\n"})

	_, err := client.LatestJob(context.Background())
	if !apperrors.IsUsage(err) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "no jobs running or recently finished") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestJobInfoBuildsArgs(t *testing.T) {
	exec := &stubExecutor{output: "JobId=42 JobName=build\n   JobState=RUNNING\n"}
	client := newClient(t, exec, slurm.WithCluster("gpu"))

	info, err := client.JobInfo(context.Background(), "42")
	if err != nil {
		t.Fatalf("JobInfo returned error: %v", err)
	}
	if name, _ := info.Name(); name != "build" {
		t.Fatalf("unexpected job name %q", name)
	}
	want := []string{"show", "job", "42", "--clusters", "gpu"}
	if !equalStrings(exec.args[0], want) {
		t.Fatalf("unexpected scontrol args: got %v want %v", exec.args[0], want)
	}
	if exec.binaries[0] != "scontrol" {
		t.Fatalf("expected scontrol binary, got %q", exec.binaries[0])
	}
}

func TestJobInfoFailures(t *testing.T) {
	client := newClient(t, &stubExecutor{err: errors.New("exit status 1")})
	if _, err := client.JobInfo(context.Background(), "42"); !apperrors.IsQuery(err) {
		t.Fatalf("expected query error on command failure, got %v", err)
	}

	client = newClient(t, &stubExecutor{output: "slurm_load_jobs error\n"})
	if _, err := client.JobInfo(context.Background(), "42"); !apperrors.IsQuery(err) {
		t.Fatalf("expected query error on unparseable output, got %v", err)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
