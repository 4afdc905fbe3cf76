package main

import (
	"strings"
	"testing"

	"sfollow/internal/apperrors"
	"sfollow/internal/testsupport"
)

func TestFollowExplicitJob(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, stderr, err := runCLI(t, []string{"42"}, env.configPath)
	if err != nil {
		t.Fatalf("sfollow 42: %v (stderr %q)", err, stderr)
	}
	if stdout != "line one\n" {
		t.Fatalf("expected job output on stdout, got %q", stdout)
	}
	requireContains(t, stderr, "[sfollow] Job 42 finished (COMPLETED)")
	if strings.Contains(stderr, "started") {
		t.Fatalf("job already running at startup should not be announced, got %q", stderr)
	}

	args := testsupport.StubArgs(t, env.binDir, "squeue")
	requireContains(t, args, "--noheader --format=%i %T --jobs 42 --states=all")
	requireContains(t, testsupport.StubArgs(t, env.binDir, "scontrol"), "show job 42")
}

func TestFollowMostRecentJob(t *testing.T) {
	env := setupCLITestEnv(t)

	_, stderr, err := runCLI(t, nil, env.configPath)
	if err != nil {
		t.Fatalf("sfollow: %v", err)
	}
	requireContains(t, stderr, "[sfollow] Following your most recent job: 42 (build)")
	requireContains(t, testsupport.StubArgs(t, env.binDir, "squeue"), "--me --noheader --format=%i %j --sort=-V --states=all")
}

func TestFollowWithClusterFlag(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"-M", "gpu", "42"}, env.configPath); err != nil {
		t.Fatalf("sfollow -M gpu 42: %v", err)
	}
	requireContains(t, testsupport.StubArgs(t, env.binDir, "squeue"), "--states=all --clusters gpu")
	requireContains(t, testsupport.StubArgs(t, env.binDir, "scontrol"), "show job 42 --clusters gpu")
}

func TestFollowClusterFromConfig(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithCluster("bigmem"))

	if _, _, err := runCLI(t, []string{"42"}, env.configPath); err != nil {
		t.Fatalf("sfollow 42: %v", err)
	}
	requireContains(t, testsupport.StubArgs(t, env.binDir, "squeue"), "--clusters bigmem")
}

func TestFollowSummary(t *testing.T) {
	env := setupCLITestEnv(t)

	_, stderr, err := runCLI(t, []string{"--summary", "42"}, env.configPath)
	if err != nil {
		t.Fatalf("sfollow --summary 42: %v", err)
	}
	upper := strings.ToUpper(stderr)
	requireContains(t, upper, "RESULT")
	requireContains(t, stderr, "build")
	requireContains(t, stderr, "ok")
}

func TestFollowQueryFailure(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.StubBinary(t, env.binDir, "squeue", `echo "slurm_load_jobs error: Invalid job id specified" >&2; exit 1`)

	_, _, err := runCLI(t, []string{"999"}, env.configPath)
	if !apperrors.IsQuery(err) {
		t.Fatalf("expected query error, got %v", err)
	}
	requireContains(t, err.Error(), "Invalid job id specified")
}

func TestFollowWithoutRecentJobs(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.StubBinary(t, env.binDir, "squeue", `exit 0`)

	_, _, err := runCLI(t, nil, env.configPath)
	if !apperrors.IsUsage(err) {
		t.Fatalf("expected usage error, got %v", err)
	}
	requireContains(t, err.Error(), "you have no jobs running or recently finished")
}

func TestFollowRejectsBadColorFlag(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"--color", "sometimes", "42"}, env.configPath)
	if err == nil {
		t.Fatal("expected invalid color to be rejected")
	}
	requireContains(t, err.Error(), "color")
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "[OK] 2 commands available")
	requireContains(t, out, "squeue:")

	t.Setenv("SFOLLOW_SCONTROL", "clearly-not-present-scontrol")
	out, _, err = runCLI(t, []string{"check"}, env.configPath)
	if err == nil {
		t.Fatal("expected check to fail with a missing binary")
	}
	requireContains(t, out, `[ERROR] binary "clearly-not-present-scontrol" not found`)
	requireContains(t, out, "Missing commands: scontrol")
}

func TestVerboseLogsDoNotOverwriteSpinner(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.StubBinary(t, env.binDir, "squeue", `n=$(cat "$0.count" 2>/dev/null || echo 0)
echo $((n+1)) > "$0.count"
if [ "$n" -lt 3 ]; then echo "42 PENDING"; elif [ "$n" -lt 4 ]; then echo "42 RUNNING"; else echo "42 COMPLETED"; fi`)

	_, stderr, err := runCLI(t, []string{"-v", "42"}, env.configPath)
	if err != nil {
		t.Fatalf("sfollow -v 42: %v (stderr %q)", err, stderr)
	}
	requireContains(t, stderr, "Waiting for Job 42 to start\r")
	requireContains(t, stderr, "DEBUG slurm: run command")

	rest := stderr
	for {
		idx := strings.Index(rest, "to start\r")
		if idx < 0 {
			break
		}
		rest = rest[idx+len("to start\r"):]
		if !strings.HasPrefix(rest, " ") && !strings.HasPrefix(rest, "[sfollow]") {
			t.Fatalf("expected spinner to be cleared before the next write, got %q", rest)
		}
	}
}
