package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// StubBinary writes an executable shell script named name into dir and
// returns its path. body is the script after the shebang line.
func StubBinary(t testing.TB, dir, name, body string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(dir, name)
	script := []byte("#!/bin/sh\n" + body + "\n")
	if err := os.WriteFile(target, script, 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

// StubSlurm writes squeue and scontrol stubs into a fresh directory, prepends
// it to PATH for the duration of the test, and returns the directory.
// Each stub appends its arguments to <dir>/<name>.args.
func StubSlurm(t testing.TB, squeueBody, scontrolBody string) string {
	t.Helper()

	binDir := filepath.Join(t.TempDir(), "bin")
	record := func(name string) string {
		return `echo "$@" >> "` + filepath.Join(binDir, name+".args") + `"` + "\n"
	}
	StubBinary(t, binDir, "squeue", record("squeue")+squeueBody)
	StubBinary(t, binDir, "scontrol", record("scontrol")+scontrolBody)

	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return binDir
}

// StubArgs returns the recorded argument lines for a stub created by StubSlurm.
func StubArgs(t testing.TB, binDir, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(binDir, name+".args"))
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("read %s args: %v", name, err)
	}
	return string(data)
}
