package utils

import (
	"sync"
	"time"
)

// Phase represents a single timing phase.
type Phase struct {
	Name      string
	StartTime time.Time
	Duration  time.Duration
	completed bool
}

// PhaseTimer records named phases of a longer operation and reports their
// durations. Phases are reported in start order.
type PhaseTimer struct {
	mu     sync.Mutex
	clock  Clock
	phases []*Phase
	byName map[string]*Phase
}

// NewPhaseTimer creates a PhaseTimer using the given clock.
// A nil clock defaults to the real clock.
func NewPhaseTimer(clock Clock) *PhaseTimer {
	if clock == nil {
		clock = NewRealClock()
	}
	return &PhaseTimer{
		clock:  clock,
		byName: make(map[string]*Phase),
	}
}

// StartPhase begins timing a named phase. Starting an already started
// phase restarts it.
func (t *PhaseTimer) StartPhase(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if p, ok := t.byName[name]; ok {
		p.StartTime = t.clock.Now()
		p.completed = false
		return
	}
	p := &Phase{Name: name, StartTime: t.clock.Now()}
	t.phases = append(t.phases, p)
	t.byName[name] = p
}

// EndPhase finishes a named phase. Ending an unknown or already finished
// phase is a no-op.
func (t *PhaseTimer) EndPhase(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.byName[name]
	if !ok || p.completed {
		return
	}
	p.Duration = t.clock.Since(p.StartTime)
	p.completed = true
}

// PhaseDuration returns the recorded duration for a phase, or zero if the
// phase is unknown or still running.
func (t *PhaseTimer) PhaseDuration(name string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.byName[name]
	if !ok || !p.completed {
		return 0
	}
	return p.Duration
}

// Report logs all completed phases through the given logger.
func (t *PhaseTimer) Report(logger Logger) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if logger == nil {
		return
	}
	for _, p := range t.phases {
		if p.completed {
			logger.Info("phase %-12s %v", p.Name, p.Duration)
		}
	}
}
