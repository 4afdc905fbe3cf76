package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"

	"sfollow/internal/deps"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("squeue", statusError, "binary not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "squeue:", "[ERROR] binary not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	text.EnableColors()
	got := renderStatusLine("squeue", statusOK, "Ready", true)
	if !strings.HasPrefix(got, text.FgGreen.EscapeSeq()) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, text.Reset.EscapeSeq()) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestDependencyLines(t *testing.T) {
	statuses := []deps.Status{
		{Name: "squeue", Available: true, Resolved: "/usr/bin/squeue"},
		{Name: "scontrol", Detail: `binary "scontrol" not found`},
	}
	lines := dependencyLines(statuses, false)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "[ERROR] 1 of 2 commands missing") {
		t.Fatalf("expected summary line first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "[OK] Ready (/usr/bin/squeue)") {
		t.Fatalf("expected ready line, got %q", lines[1])
	}
	if !strings.Contains(lines[2], `[ERROR] binary "scontrol" not found`) {
		t.Fatalf("expected error detail, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "Missing commands: scontrol") {
		t.Fatalf("expected missing summary, got %q", lines[3])
	}
}

func TestDependencyLinesAllAvailable(t *testing.T) {
	statuses := []deps.Status{
		{Name: "squeue", Available: true, Resolved: "/usr/bin/squeue"},
		{Name: "scontrol", Available: true, Resolved: "/usr/bin/scontrol"},
	}
	lines := dependencyLines(statuses, false)
	if len(lines) != 3 {
		t.Fatalf("expected summary and two command lines, got %q", lines)
	}
	if !strings.Contains(lines[0], "[OK] 2 commands available") {
		t.Fatalf("expected ok summary, got %q", lines[0])
	}
}
