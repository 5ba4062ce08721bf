package solver

import (
	"testing"
)

// The test oracle is a finite state machine described as a table. Each
// oracle state is identified by name; value equality, hashing, goal tests
// and transitions are all driven by the table, and render-hook invocations
// are recorded on the machine for inspection.

type stateSpec struct {
	goal bool
	hash int
	succ []string // one entry per transition, "" means none
}

type renderEvent struct {
	name     string
	progress Progress
	current  string
}

type machine struct {
	numTransitions int
	states         map[string]stateSpec
	renders        []renderEvent
}

type oracleState struct {
	m    *machine
	name string
}

func (s *oracleState) Equals(other State) bool {
	o, ok := other.(*oracleState)
	return ok && o.name == s.name
}

func (s *oracleState) Hash() int {
	return s.m.states[s.name].hash
}

func (s *oracleState) HasWon() bool {
	return s.m.states[s.name].goal
}

func (s *oracleState) Transition(i int) State {
	succ := s.m.states[s.name].succ
	if i >= len(succ) || succ[i] == "" {
		return nil
	}
	return &oracleState{m: s.m, name: succ[i]}
}

func (s *oracleState) Clone() State {
	return &oracleState{m: s.m, name: s.name}
}

func (s *oracleState) RenderGhosts(progress Progress, current State) {
	s.m.renders = append(s.m.renders, renderEvent{
		name:     s.name,
		progress: progress,
		current:  current.(*oracleState).name,
	})
}

// chainMachine is a two-node chain: A -> B, B is the goal.
func chainMachine() *machine {
	return &machine{
		numTransitions: 1,
		states: map[string]stateSpec{
			"A": {hash: 0, succ: []string{"B"}},
			"B": {hash: 1, goal: true, succ: []string{""}},
		},
	}
}

// loopMachine is a single self-loop: A -> A, no goal.
func loopMachine() *machine {
	return &machine{
		numTransitions: 1,
		states: map[string]stateSpec{
			"A": {hash: 0, succ: []string{"A"}},
		},
	}
}

// diamondMachine shares one goal between two paths: A -> (B, C),
// B -> D, C -> D, D is the goal.
func diamondMachine() *machine {
	return &machine{
		numTransitions: 2,
		states: map[string]stateSpec{
			"A": {hash: 0, succ: []string{"B", "C"}},
			"B": {hash: 1, succ: []string{"D", ""}},
			"C": {hash: 2, succ: []string{"D", ""}},
			"D": {hash: 3, goal: true, succ: []string{"", ""}},
		},
	}
}

// islandMachine is a self-loop next to a goal B nothing references.
func islandMachine() *machine {
	return &machine{
		numTransitions: 1,
		states: map[string]stateSpec{
			"A": {hash: 0, succ: []string{"A"}},
			"B": {hash: 1, goal: true, succ: []string{""}},
		},
	}
}

// buildSolver explores the machine to completion from the given start.
func buildSolver(t *testing.T, m *machine, start string, buckets int) *Solver {
	t.Helper()

	s, err := New(buckets, m.numTransitions, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.AddStartPoint(&oracleState{m: m, name: start}); err != nil {
		t.Fatalf("AddStartPoint: %v", err)
	}
	for !s.Done() {
		if _, err := s.Process(); err != nil {
			t.Fatalf("Process: %v", err)
		}
	}
	return s
}

// snapshot returns the node views keyed by oracle state name.
func snapshot(s *Solver) map[string]NodeView {
	views := make(map[string]NodeView)
	s.VisitNodes(func(v NodeView) {
		views[v.State.(*oracleState).name] = v
	})
	return views
}
