package slurm

import "strings"

// Phase is the coarse lifecycle position of a job.
type Phase int

const (
	// PhaseNotStarted covers jobs waiting for resources or being configured.
	PhaseNotStarted Phase = iota
	// PhaseRunning covers every state that is neither waiting nor terminal.
	PhaseRunning
	// PhaseFinished covers terminal states, successful or not.
	PhaseFinished
)

var phaseNames = []string{"not started", "running", "finished"}

func (p Phase) String() string {
	if int(p) < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// StateCompleted is the only terminal state treated as success.
const StateCompleted = "COMPLETED"

// https://slurm.schedmd.com/squeue.html#SECTION_JOB-STATE-CODES
var finishedStates = map[string]struct{}{
	"BOOT_FAIL":     {},
	"CANCELLED":     {},
	StateCompleted:  {},
	"DEADLINE":      {},
	"FAILED":        {},
	"NODE_FAIL":     {},
	"OUT_OF_MEMORY": {},
	"PREEMPTED":     {},
	"SPECIAL_EXIT":  {},
	"TIMEOUT":       {},
}

var notStartedStates = map[string]struct{}{
	"PENDING":     {},
	"CONFIGURING": {},
}

// Classify maps a raw Slurm state to its phase.
func Classify(state string) Phase {
	state = strings.ToUpper(strings.TrimSpace(state))
	if _, ok := notStartedStates[state]; ok {
		return PhaseNotStarted
	}
	if _, ok := finishedStates[state]; ok {
		return PhaseFinished
	}
	return PhaseRunning
}

// IsSuccess reports whether a terminal state means the job succeeded.
func IsSuccess(state string) bool {
	return strings.EqualFold(strings.TrimSpace(state), StateCompleted)
}
