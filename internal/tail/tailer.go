package tail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"sfollow/internal/apperrors"
)

// DefaultBackseek is how far before the end a catch-up tailer starts.
const DefaultBackseek int64 = 512

const readChunk = 32 * 1024

// State is the position of a Tailer in its lifecycle.
type State int

const (
	StateOpening State = iota
	StateSeeking
	StateStreaming
	StateDraining
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpening:
		return "opening"
	case StateSeeking:
		return "seeking"
	case StateStreaming:
		return "streaming"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Options controls where reading starts.
type Options struct {
	// NewlyStarted reads from offset 0. Otherwise the tailer catches up on
	// the last Backseek bytes of an existing file.
	NewlyStarted bool
	Backseek     int64
}

// Tailer reads bytes appended to one file.
type Tailer struct {
	path    string
	file    *os.File
	state   State
	start   int64
	offset  int64
	decoder transform.Transformer
	pending []byte
	buf     []byte
}

// Open opens path and positions the read offset. Failures are IO errors.
func Open(path string, opts Options) (*Tailer, error) {
	t := &Tailer{path: path, state: StateOpening}

	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.IO(path, err)
	}
	t.file = file
	t.state = StateSeeking

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, apperrors.IO(path, err)
	}
	if info.IsDir() {
		file.Close()
		return nil, apperrors.IO(path, errors.New("is a directory"))
	}

	backseek := opts.Backseek
	if backseek < 0 {
		backseek = 0
	}
	if size := info.Size(); !opts.NewlyStarted && size > backseek {
		t.start = size - backseek
		if _, err := file.Seek(t.start, io.SeekStart); err != nil {
			file.Close()
			return nil, apperrors.IO(path, fmt.Errorf("seek: %w", err))
		}
	}
	t.offset = t.start
	t.decoder = unicode.UTF8.NewDecoder()
	t.buf = make([]byte, readChunk)
	t.state = StateStreaming
	return t, nil
}

// Path returns the followed file.
func (t *Tailer) Path() string { return t.path }

// State returns the current lifecycle state.
func (t *Tailer) State() State { return t.state }

// StartOffset returns the offset the first read began at.
func (t *Tailer) StartOffset() int64 { return t.start }

// Offset returns the offset of the next byte to be read.
func (t *Tailer) Offset() int64 { return t.offset }

// Sweep returns the text appended since the previous sweep. An incomplete
// trailing UTF-8 sequence stays pending. Sweeping a closed tailer returns "".
func (t *Tailer) Sweep() (string, error) {
	if t.state != StateStreaming {
		return "", nil
	}
	return t.read(false)
}

// Drain performs a final sweep, flushes any pending bytes with replacement,
// and closes the file.
func (t *Tailer) Drain() (string, error) {
	if t.state == StateClosed {
		return "", nil
	}
	t.state = StateDraining
	text, err := t.read(true)
	t.Close()
	return text, err
}

// Close releases the file without reading further. Pending bytes are dropped.
func (t *Tailer) Close() {
	if t.state == StateClosed {
		return
	}
	if t.file != nil {
		_ = t.file.Close()
		t.file = nil
	}
	t.pending = nil
	t.state = StateClosed
}

func (t *Tailer) read(atEOF bool) (string, error) {
	if err := t.checkTruncated(); err != nil {
		return "", err
	}

	var raw bytes.Buffer
	var readErr error
	for {
		n, err := t.file.Read(t.buf)
		if n > 0 {
			raw.Write(t.buf[:n])
			t.offset += int64(n)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			readErr = apperrors.IO(t.path, err)
			break
		}
		if n == 0 {
			break
		}
	}
	return t.decode(raw.Bytes(), atEOF), readErr
}

// checkTruncated restarts from the beginning when the file shrank below the
// read offset.
func (t *Tailer) checkTruncated() error {
	info, err := t.file.Stat()
	if err != nil {
		return apperrors.IO(t.path, err)
	}
	if info.Size() >= t.offset {
		return nil
	}
	if _, err := t.file.Seek(0, io.SeekStart); err != nil {
		return apperrors.IO(t.path, fmt.Errorf("seek: %w", err))
	}
	t.offset = 0
	t.pending = nil
	t.decoder.Reset()
	return nil
}

func (t *Tailer) decode(chunk []byte, atEOF bool) string {
	if len(chunk) == 0 && (len(t.pending) == 0 || !atEOF) {
		return ""
	}
	src := append(t.pending, chunk...)
	// Each invalid byte grows to a three-byte replacement rune at most.
	dst := make([]byte, 3*len(src)+utf8.UTFMax)
	nDst, nSrc, err := t.decoder.Transform(dst, src, atEOF)
	if err != nil && !errors.Is(err, transform.ErrShortSrc) {
		t.pending = nil
		return string(bytes.ToValidUTF8(src, []byte(string(utf8.RuneError))))
	}
	t.pending = bytes.Clone(src[nSrc:])
	return string(dst[:nDst])
}
