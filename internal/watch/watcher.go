package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sfollow/internal/apperrors"
	"sfollow/internal/display"
	"sfollow/internal/logging"
	"sfollow/internal/slurm"
	"sfollow/internal/tail"
)

// JobSource answers state and metadata queries. *slurm.Client satisfies it.
type JobSource interface {
	States(ctx context.Context, ids []string) (map[string]string, error)
	JobInfo(ctx context.Context, id string) (slurm.JobInfo, error)
}

// Options tunes the watch loop.
type Options struct {
	TickInterval time.Duration
	QueryEvery   int
	Backseek     int64
	FinishGrace  time.Duration
	Logger       *slog.Logger
}

const (
	defaultTickInterval = 500 * time.Millisecond
	defaultQueryEvery   = 4
)

// Outcome is the final state of one followed job.
type Outcome struct {
	ID      string
	Name    string
	State   string
	Success bool
}

// Watcher coordinates state polling with log tailing.
type Watcher struct {
	source  JobSource
	display *display.Display
	opts    Options
	logger  *slog.Logger
}

// New constructs a Watcher. Zero tick and query settings fall back to 500ms
// and every 4th tick.
func New(source JobSource, disp *display.Display, opts Options) *Watcher {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.QueryEvery <= 0 {
		opts.QueryEvery = defaultQueryEvery
	}
	if opts.Backseek < 0 {
		opts.Backseek = 0
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Watcher{
		source:  source,
		display: disp,
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "watch"),
	}
}

// Run follows ids until every job has finished and returns their outcomes in
// the order given. Query errors are fatal. Cancelling ctx stops the loop at
// the next tick and closes every open file.
func (w *Watcher) Run(ctx context.Context, ids []string) ([]Outcome, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, apperrors.Usage("no job ids to follow")
	}

	set := newWatchSet(ids)
	defer set.closeAll()

	initial, err := w.source.States(ctx, ids)
	if err != nil {
		return nil, w.fatal(ctx, err)
	}
	for _, id := range ids {
		state, ok := initial[id]
		if !ok {
			return nil, apperrors.QueryParse("squeue", fmt.Sprintf("no state reported for job %s", id))
		}
		if err := w.initialize(ctx, set.jobs[id], state); err != nil {
			return nil, w.fatal(ctx, err)
		}
	}
	w.logger.Debug("initial states",
		logging.String("jobs", strings.Join(ids, ",")),
		logging.Int("unfinished", len(set.unfinished())),
	)

	ticker := time.NewTicker(w.opts.TickInterval)
	defer ticker.Stop()

	for tick := 0; !set.allFinished(); tick++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w.sweep(set)

		if tick%w.opts.QueryEvery == 0 {
			if !set.anyRunning() && set.anyNotStarted() {
				w.display.Waiting(ids)
			}
			if err := w.poll(ctx, set); err != nil {
				return nil, w.fatal(ctx, err)
			}
			if set.allFinished() {
				break
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	return set.outcomes(), nil
}

// initialize records the state found at startup. Running jobs are caught up
// from near the end of their logs; finished jobs only get a notice.
func (w *Watcher) initialize(ctx context.Context, j *job, state string) error {
	j.state = state
	j.phase = slurm.Classify(state)
	switch j.phase {
	case slurm.PhaseRunning:
		return w.follow(ctx, j, false)
	case slurm.PhaseFinished:
		w.display.JobFinished(j.id, state)
	}
	return nil
}

func (w *Watcher) poll(ctx context.Context, set *watchSet) error {
	pending := set.unfinished()
	states, err := w.source.States(ctx, pending)
	if err != nil {
		return err
	}
	for _, id := range pending {
		state, ok := states[id]
		if !ok {
			w.logger.Debug("job missing from squeue output", logging.JobID(id))
			continue
		}
		if err := w.transition(ctx, set.jobs[id], state); err != nil {
			return err
		}
	}
	return nil
}

func (w *Watcher) transition(ctx context.Context, j *job, state string) error {
	phase := slurm.Classify(state)
	if phase < j.phase {
		w.logger.Debug("ignoring earlier phase",
			logging.JobID(j.id),
			logging.String("recorded", j.state),
			logging.String("reported", state),
		)
		return nil
	}

	if j.phase == slurm.PhaseNotStarted && phase == slurm.PhaseRunning {
		if err := w.follow(ctx, j, true); err != nil {
			return err
		}
	}
	if j.phase != slurm.PhaseFinished && phase == slurm.PhaseFinished {
		if err := w.finish(ctx, j, state); err != nil {
			return err
		}
	}
	if state != j.state {
		w.logger.Debug("job state changed",
			logging.JobID(j.id),
			logging.String("from", j.state),
			logging.String("to", state),
		)
	}
	j.state = state
	j.phase = phase
	return nil
}

// follow looks up the job's log files and opens a tailer for each. A newly
// started job is read from the beginning and announced.
func (w *Watcher) follow(ctx context.Context, j *job, newlyStarted bool) error {
	info, err := w.source.JobInfo(ctx, j.id)
	if err != nil {
		return err
	}
	j.name, _ = info.Name()
	if newlyStarted {
		w.display.JobStarted(j.id, j.name)
	}

	for _, path := range slurm.StdStreams(info, w.logger.With(logging.JobID(j.id))) {
		t, err := tail.Open(path, tail.Options{NewlyStarted: newlyStarted, Backseek: w.opts.Backseek})
		if err != nil {
			w.logger.Warn("cannot follow log file",
				logging.JobID(j.id),
				logging.Path(path),
				logging.Error(err),
			)
			w.display.Noticef("Cannot follow output of job %s: %v", j.id, err)
			continue
		}
		w.logger.Debug("following log file",
			logging.JobID(j.id),
			logging.Path(path),
			logging.Int64("offset", t.StartOffset()),
		)
		j.followers = append(j.followers, &follower{tailer: t})
	}
	return nil
}

// finish drains every tailer of j, prints what was left, then announces the
// final state.
func (w *Watcher) finish(ctx context.Context, j *job, state string) error {
	if len(j.followers) > 0 && w.opts.FinishGrace > 0 {
		timer := time.NewTimer(w.opts.FinishGrace)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	for _, f := range j.followers {
		text, err := f.tailer.Drain()
		f.write(w.display, text)
		if f.midLine {
			w.display.Output("\n")
			f.midLine = false
		}
		if err != nil {
			w.logger.Warn("final read failed", logging.JobID(j.id), logging.Error(err))
		}
	}
	j.followers = nil
	w.display.JobFinished(j.id, state)
	return nil
}

func (w *Watcher) sweep(set *watchSet) {
	for _, id := range set.order {
		j := set.jobs[id]
		kept := j.followers[:0]
		for _, f := range j.followers {
			text, err := f.tailer.Sweep()
			f.write(w.display, text)
			if err != nil {
				w.logger.Warn("stopped following log file",
					logging.JobID(id),
					logging.Path(f.tailer.Path()),
					logging.Error(err),
				)
				w.display.Noticef("Stopped following output of job %s: %v", id, err)
				f.tailer.Close()
				continue
			}
			kept = append(kept, f)
		}
		j.followers = kept
	}
}

// fatal prefers the context error once the run has been cancelled, since a
// killed squeue reports only its exit status.
func (w *Watcher) fatal(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return ctxErr
	}
	return err
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
