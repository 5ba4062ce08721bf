// Package solver incrementally builds the graph of all configurations
// reachable from a start state and classifies every configuration relative
// to a current one.
//
// The solver knows nothing about the puzzle it explores. Applications hand
// it an initial State and it repeatedly asks states for their successors,
// interning each distinct configuration exactly once so that all paths that
// lead to the same configuration share a single node. On demand it labels
// every node as a dead end, in process, or on the shortest path to a goal,
// and it can invoke a rendering hook for all nodes at a fixed distance from
// the current node ("ghosts").
//
// The solver is single-threaded; the host drives it by calling Process
// until Done and may interleave Update, CalcViewState and Render between
// calls.
package solver

import (
	apperrors "github.com/puzzle-scout/pkg/errors"
	"github.com/puzzle-scout/pkg/utils"
)

// MaxSteps is the sentinel distance, larger than any reachable
// configuration count.
const MaxSteps = 1 << 30

// Progress classifies a node relative to the current node.
type Progress uint8

const (
	// DeadEnd marks nodes from which no goal can be reached.
	DeadEnd Progress = iota
	// InProcess marks nodes from which a goal or the unexplored frontier
	// can still be reached.
	InProcess
	// Goal marks nodes on the chosen shortest path to a goal.
	Goal
)

// String returns the string representation of Progress.
func (p Progress) String() string {
	switch p {
	case DeadEnd:
		return "dead_end"
	case InProcess:
		return "in_process"
	case Goal:
		return "goal"
	default:
		return "unknown"
	}
}

// State is the capability applications must implement for their
// configurations. All operations are pure except RenderGhosts.
//
// Two states that are Equals must produce the same Hash, the same HasWon,
// and extensionally identical Transition behavior. Transition must be
// deterministic. RenderGhosts must not call back into the Solver.
type State interface {
	// Equals reports value equality with another state.
	Equals(other State) bool
	// Hash returns a non-negative bucket hint. A weak hash is acceptable;
	// collisions are resolved by Equals. The solver reduces it modulo the
	// intern table size.
	Hash() int
	// HasWon reports whether this state is a goal.
	HasWon() bool
	// Transition returns the successor state under input i, or nil when
	// input i is not applicable in this state.
	Transition(i int) State
	// Clone returns a deep copy. The solver only calls it on the state
	// passed to AddStartPoint.
	Clone() State
	// RenderGhosts renders this state as a look-ahead preview. It is
	// invoked only from Solver.Render.
	RenderGhosts(progress Progress, current State)
}

// Solver incrementally builds the map of all reachable configurations.
// It interns states by value equality, marks nodes with a Progress value
// relative to the current node, and renders ghost previews.
type Solver struct {
	numBuckets     int
	numTransitions int

	// Hash table of all interned nodes, chained per bucket.
	buckets []*node
	// FIFO of interned nodes awaiting expansion.
	queueHead *node
	queueTail *node
	// Node the player is currently in.
	current *node
	// Node the exploration started from.
	start *node

	nodeCount     int
	expandedCount int
	drawEpoch     int
	classified    bool

	logger utils.Logger
}

// New creates a Solver with the given intern-table size and transition
// count. Both must be positive. A nil logger discards diagnostics.
func New(numHashBuckets, numTransitions int, logger utils.Logger) (*Solver, error) {
	if numHashBuckets < 1 {
		return nil, apperrors.Newf(apperrors.CodeInvalidInput, "num_hash_buckets must be positive, got %d", numHashBuckets)
	}
	if numTransitions < 1 {
		return nil, apperrors.Newf(apperrors.CodeInvalidInput, "num_transitions must be positive, got %d", numTransitions)
	}
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	return &Solver{
		numBuckets:     numHashBuckets,
		numTransitions: numTransitions,
		buckets:        make([]*node, numHashBuckets),
		logger:         logger,
	}, nil
}

// NumTransitions returns the transition count T this solver was built with.
func (s *Solver) NumTransitions() int {
	return s.numTransitions
}

// AddStartPoint clones the given state, interns it as the first node and
// designates it as the current node. It must be called exactly once,
// before any other operation.
func (s *Solver) AddStartPoint(state State) error {
	if state == nil {
		return apperrors.New(apperrors.CodeInvalidInput, "start state is nil")
	}
	if s.nodeCount != 0 {
		s.logger.Error("AddStartPoint called twice")
		return apperrors.New(apperrors.CodeSolverState, "start point already added")
	}
	s.current = s.addNode(state.Clone())
	s.start = s.current
	return nil
}

// ResetCurrent moves the current node back to the start node.
func (s *Solver) ResetCurrent() error {
	if s.start == nil {
		s.logger.Error("ResetCurrent called before AddStartPoint")
		return apperrors.New(apperrors.CodeSolverState, "no start node")
	}
	s.current = s.start
	return nil
}

// Process pops the head of the exploration queue, expands its transitions
// and interns any successors not seen before. It returns true when the
// queue is empty afterwards, i.e. exploration is complete.
//
// Calling Process when Done is a caller error.
func (s *Solver) Process() (bool, error) {
	n := s.queueHead
	if n == nil {
		s.logger.Error("Process called with an empty queue")
		return true, apperrors.New(apperrors.CodeSolverState, "nothing left to process")
	}
	s.queueHead = n.queueNext
	if s.queueHead == nil {
		s.queueTail = nil
	}
	n.queueNext = nil

	n.transitions = make([]*node, s.numTransitions)
	s.expandedCount++
	for i := 0; i < s.numTransitions; i++ {
		target := n.state.Transition(i)
		if target == nil {
			continue
		}

		if existing := s.find(target); existing != nil {
			n.transitions[i] = existing
		} else {
			n.transitions[i] = s.addNode(target)
		}
	}

	return s.Done(), nil
}

// Done reports whether the exploration queue is empty.
func (s *Solver) Done() bool {
	return s.queueHead == nil
}

// Update advances the current node along transition i. The graph is not
// modified. Advancing along an unexpanded or non-existent transition is a
// caller error: the current node is left unchanged.
func (s *Solver) Update(i int) error {
	if i < 0 || i >= s.numTransitions {
		return apperrors.Newf(apperrors.CodeInvalidInput, "transition %d out of range [0, %d)", i, s.numTransitions)
	}
	if s.current == nil {
		s.logger.Error("Update called before AddStartPoint")
		return apperrors.New(apperrors.CodeSolverState, "no current node")
	}
	if s.current.transitions == nil {
		s.logger.Error("Update on an unprocessed node, transition %d", i)
		return apperrors.New(apperrors.CodeSolverState, "current node not expanded yet")
	}
	next := s.current.transitions[i]
	if next == nil {
		s.logger.Error("Update on a non-existent transition %d", i)
		return apperrors.Newf(apperrors.CodeInvalidInput, "transition %d does not exist here", i)
	}
	s.current = next
	return nil
}

// Current returns the state of the current node, or nil before
// AddStartPoint.
func (s *Solver) Current() State {
	if s.current == nil {
		return nil
	}
	return s.current.state
}

// CanTransition reports whether the current node is expanded and has a
// successor under input i.
func (s *Solver) CanTransition(i int) bool {
	if s.current == nil || s.current.transitions == nil {
		return false
	}
	if i < 0 || i >= s.numTransitions {
		return false
	}
	return s.current.transitions[i] != nil
}

// NodeCount returns the number of interned nodes.
func (s *Solver) NodeCount() int {
	return s.nodeCount
}

// ExpandedCount returns the number of nodes whose transitions have been
// computed.
func (s *Solver) ExpandedCount() int {
	return s.expandedCount
}
