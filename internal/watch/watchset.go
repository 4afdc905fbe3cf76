package watch

import (
	"sfollow/internal/display"
	"sfollow/internal/slurm"
	"sfollow/internal/tail"
)

type job struct {
	id        string
	name      string
	state     string
	phase     slurm.Phase
	followers []*follower
}

type follower struct {
	tailer  *tail.Tailer
	midLine bool
}

func (f *follower) write(d *display.Display, text string) {
	if text == "" {
		return
	}
	d.Output(text)
	f.midLine = text[len(text)-1] != '\n'
}

// watchSet keeps jobs in the order they were requested.
type watchSet struct {
	order []string
	jobs  map[string]*job
}

func newWatchSet(ids []string) *watchSet {
	set := &watchSet{
		order: append([]string(nil), ids...),
		jobs:  make(map[string]*job, len(ids)),
	}
	for _, id := range ids {
		set.jobs[id] = &job{id: id}
	}
	return set
}

func (s *watchSet) unfinished() []string {
	ids := make([]string, 0, len(s.order))
	for _, id := range s.order {
		if s.jobs[id].phase != slurm.PhaseFinished {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *watchSet) allFinished() bool {
	return len(s.unfinished()) == 0
}

func (s *watchSet) anyRunning() bool {
	return s.anyIn(slurm.PhaseRunning)
}

func (s *watchSet) anyNotStarted() bool {
	return s.anyIn(slurm.PhaseNotStarted)
}

func (s *watchSet) anyIn(phase slurm.Phase) bool {
	for _, id := range s.order {
		if s.jobs[id].phase == phase {
			return true
		}
	}
	return false
}

func (s *watchSet) outcomes() []Outcome {
	out := make([]Outcome, 0, len(s.order))
	for _, id := range s.order {
		j := s.jobs[id]
		out = append(out, Outcome{
			ID:      j.id,
			Name:    j.name,
			State:   j.state,
			Success: slurm.IsSuccess(j.state),
		})
	}
	return out
}

func (s *watchSet) closeAll() {
	for _, j := range s.jobs {
		for _, f := range j.followers {
			f.tailer.Close()
		}
		j.followers = nil
	}
}
