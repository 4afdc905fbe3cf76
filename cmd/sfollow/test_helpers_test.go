package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"sfollow/internal/config"
	"sfollow/internal/testsupport"
)

type cliTestEnv struct {
	binDir     string
	configPath string
	logPath    string
}

// squeueScript answers --me lookups with job 42 and reports RUNNING for the
// first two state queries, COMPLETED afterwards.
const squeueScript = `case "$*" in
  *--me*) echo "42 build"; exit 0 ;;
esac
n=$(cat "$0.count" 2>/dev/null || echo 0)
echo $((n+1)) > "$0.count"
if [ "$n" -lt 2 ]; then echo "42 RUNNING"; else echo "42 COMPLETED"; fi`

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("SFOLLOW_CLUSTERS", "")
	t.Setenv("SFOLLOW_SQUEUE", "")
	t.Setenv("SFOLLOW_SCONTROL", "")

	logPath := filepath.Join(base, "slurm-42.out")
	testsupport.AppendFile(t, logPath, "line one\n")

	scontrol := `printf 'JobId=42 JobName=build\n   JobState=RUNNING\n   StdOut=` + logPath + `\n   StdErr=` + logPath + `\n'`
	binDir := testsupport.StubSlurm(t, squeueScript, scontrol)

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{binDir: binDir, configPath: configPath, logPath: logPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
