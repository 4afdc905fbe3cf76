package slurm

import (
	"log/slog"

	"golang.org/x/sys/unix"

	"sfollow/internal/logging"
)

// StdStreams returns the files to follow for a job: StdOut then StdErr, each
// only if present. When both name the same file (by device and inode, so
// symlinks and relative spellings collapse too) only StdOut is kept.
func StdStreams(info JobInfo, logger *slog.Logger) []string {
	if logger == nil {
		logger = logging.NewNop()
	}
	paths := make([]string, 0, 2)
	if stdout, ok := info.StdOut(); ok {
		paths = append(paths, stdout)
	}
	if stderr, ok := info.StdErr(); ok {
		paths = append(paths, stderr)
	}

	switch {
	case len(paths) == 0:
		logger.Warn("job reports no StdOut or StdErr path; nothing to follow")
	case len(paths) == 2 && sameFile(paths[0], paths[1]):
		logger.Debug("stdout and stderr share one file", logging.Path(paths[0]))
		paths = paths[:1]
	}
	return paths
}

// sameFile compares device and inode. Paths that cannot be stat'ed yet are
// only the same file when spelled identically.
func sameFile(a, b string) bool {
	if a == b {
		return true
	}
	var sa, sb unix.Stat_t
	if err := unix.Stat(a, &sa); err != nil {
		return false
	}
	if err := unix.Stat(b, &sb); err != nil {
		return false
	}
	return sa.Dev == sb.Dev && sa.Ino == sb.Ino
}
