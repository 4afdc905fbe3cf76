package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"sfollow/internal/deps"
)

type statusKind int

const (
	statusOK statusKind = iota
	statusError
)

const (
	statusLabelWidth = 12
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		return statusKindColor(kind).Sprint(base)
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	if kind == statusOK {
		return "OK"
	}
	return "ERROR"
}

func statusKindColor(kind statusKind) text.Colors {
	if kind == statusOK {
		return text.Colors{text.FgGreen}
	}
	return text.Colors{text.FgRed}
}

// dependencyLines renders one summary line followed by a line per binary.
func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses)+2)
	var missing []string
	for _, status := range statuses {
		if !status.Available {
			missing = append(missing, status.Name)
		}
	}

	if len(missing) == 0 {
		lines = append(lines, renderStatusLine("Summary", statusOK, fmt.Sprintf("%d commands available", len(statuses)), colorize))
	} else {
		lines = append(lines, renderStatusLine("Summary", statusError, fmt.Sprintf("%d of %d commands missing", len(missing), len(statuses)), colorize))
	}

	for _, status := range statuses {
		if status.Available {
			lines = append(lines, renderStatusLine(status.Name, statusOK, fmt.Sprintf("Ready (%s)", status.Resolved), colorize))
			continue
		}
		lines = append(lines, renderStatusLine(status.Name, statusError, status.Detail, colorize))
	}

	if len(missing) > 0 {
		lines = append(lines, fmt.Sprintf("%sMissing commands: %s", statusIndent, strings.Join(missing, ", ")))
	}
	return lines
}
