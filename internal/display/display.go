package display

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"

	"sfollow/internal/config"
)

// Prefix marks every status line.
const Prefix = "[sfollow]"

const defaultWidth = 80

var spinnerFrames = []string{"|", "/", "-", `\`}

// Options configures a Display.
type Options struct {
	Out     io.Writer
	Status  io.Writer
	Color   string
	Spinner bool
	// Width reports the terminal width in columns. Nil measures Status.
	Width func() int
}

// Display is the terminal state for one run. It is not safe for concurrent
// use; the watcher loop is its only writer.
type Display struct {
	out      io.Writer
	status   io.Writer
	colorize bool
	spinner  bool
	width    func() int

	frame        int
	spinnerShown bool
}

// New builds a Display. Nil writers default to stdout and stderr.
func New(opts Options) *Display {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	status := opts.Status
	if status == nil {
		status = os.Stderr
	}
	width := opts.Width
	if width == nil {
		width = func() int { return TerminalWidth(status) }
	}
	return &Display{
		out:      out,
		status:   status,
		colorize: ShouldColorize(opts.Color, status),
		spinner:  opts.Spinner,
		width:    width,
	}
}

// Colorize reports whether status lines carry ANSI colors.
func (d *Display) Colorize() bool { return d.colorize }

// Output writes job output to the primary stream.
func (d *Display) Output(s string) {
	if s == "" {
		return
	}
	d.ClearSpinner()
	_, _ = io.WriteString(d.out, s)
}

// Notice writes a prefixed status line.
func (d *Display) Notice(message string) {
	d.ClearSpinner()
	_, _ = fmt.Fprintf(d.status, "%s %s\n", Prefix, message)
}

// Noticef formats and writes a prefixed status line.
func (d *Display) Noticef(format string, args ...any) {
	d.Notice(fmt.Sprintf(format, args...))
}

// Block writes unprefixed text, such as a table, to the status stream.
func (d *Display) Block(s string) {
	if s == "" {
		return
	}
	d.ClearSpinner()
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, _ = io.WriteString(d.status, s)
}

// Spin draws the next spinner frame with message. The line is cut to the
// terminal width so it never wraps.
func (d *Display) Spin(message string) {
	if !d.spinner {
		return
	}
	frame := spinnerFrames[d.frame]
	d.frame = (d.frame + 1) % len(spinnerFrames)

	line := fmt.Sprintf("%s %s %s", Prefix, frame, message)
	if limit := d.width() - 1; limit > 0 && text.RuneWidthWithoutEscSequences(line) > limit {
		line = text.Trim(line, limit)
	}
	_, _ = fmt.Fprintf(d.status, "%s\r", line)
	d.spinnerShown = true
}

// ClearSpinner blanks the spinner line if one is showing. The width is
// measured on every call so a resized terminal is fully cleared.
func (d *Display) ClearSpinner() {
	if !d.spinnerShown {
		return
	}
	_, _ = fmt.Fprintf(d.status, "%s\r", strings.Repeat(" ", d.width()))
	d.spinnerShown = false
}

// StatusWriter returns a writer onto the status stream that clears the
// spinner before each write. Log records go through it so they start on a
// clean line.
func (d *Display) StatusWriter() io.Writer { return statusWriter{d} }

type statusWriter struct{ d *Display }

func (w statusWriter) Write(p []byte) (int, error) {
	w.d.ClearSpinner()
	return w.d.status.Write(p)
}

// SpinnerShown reports whether a spinner line is currently on screen.
func (d *Display) SpinnerShown() bool { return d.spinnerShown }

// Waiting spins the "waiting to start" message for ids.
func (d *Display) Waiting(ids []string) {
	d.Spin(fmt.Sprintf("Waiting for %s to start", FormatJobs(ids)))
}

// FollowingRecent announces the job picked when no ids were given.
func (d *Display) FollowingRecent(id, name string) {
	d.Noticef("Following your most recent job: %s (%s)", id, name)
}

// JobStarted announces a job entering the running phase.
func (d *Display) JobStarted(id, name string) {
	if strings.TrimSpace(name) == "" {
		d.Noticef("Job %s started", id)
		return
	}
	d.Noticef("Job %s (%s) started", id, name)
}

// JobFinished announces a job reaching a terminal state.
func (d *Display) JobFinished(id, state string) {
	d.Noticef("Job %s finished (%s)", id, d.State(state))
}

// State colors a terminal state: green for COMPLETED, red otherwise.
func (d *Display) State(state string) string {
	if !d.colorize {
		return state
	}
	if state == "COMPLETED" {
		return text.FgGreen.Sprint(state)
	}
	return text.FgRed.Sprint(state)
}

// FormatJobs names a set of jobs compactly.
func FormatJobs(ids []string) string {
	switch {
	case len(ids) == 1:
		return "Job " + ids[0]
	case len(ids) <= 3:
		return "Jobs " + strings.Join(ids, ",")
	default:
		return strconv.Itoa(len(ids)) + " jobs"
	}
}

// TerminalWidth returns the column count of w. COLUMNS wins when set; non
// terminals fall back to 80.
func TerminalWidth(w io.Writer) int {
	if cols, err := strconv.Atoi(strings.TrimSpace(os.Getenv("COLUMNS"))); err == nil && cols > 0 {
		return cols
	}
	file, ok := w.(*os.File)
	if !ok {
		return defaultWidth
	}
	ws, err := unix.IoctlGetWinsize(int(file.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return defaultWidth
	}
	return int(ws.Col)
}

// ShouldColorize resolves a color mode for w. "auto" colors terminals unless
// NO_COLOR is set.
func ShouldColorize(mode string, w io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminal(w)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
