package solver

// A node wraps one interned state and adds the links and scratch fields
// the solver needs: outgoing transitions, the hash-bucket chain, the
// exploration-queue chain and the per-classification working values.
type node struct {
	// state is the configuration this node wraps. Exactly one node exists
	// per distinct configuration.
	state State
	// transitions has one slot per input. nil means this node has not been
	// expanded yet (it is then in the exploration queue). A nil slot in an
	// allocated slice means the input is not applicable.
	transitions []*node
	// bucketNext chains nodes within one intern-table bucket.
	bucketNext *node
	// queueNext chains nodes in the exploration queue.
	queueNext *node

	// steps is the smallest number of edges from the current node along
	// which this node has been reached so far. Between passes it keeps the
	// value of the last CalcViewState (Render reads it); it is MaxSteps
	// before the first pass and for nodes that pass did not reach.
	steps int
	// progress is the classification relative to the current node.
	progress Progress
	// viewResult memoizes the progress-labelling result for this node:
	// -1 unknown, 0 dead end, 1 in process. Re-entries along equal or
	// longer paths report it instead of re-walking the node.
	viewResult int8
	// goalDist memoizes the remaining distance to the nearest goal, or -1
	// when not yet computed this pass.
	goalDist int
	// goalFail memoizes that no shortest goal path runs through this node.
	goalFail bool
	// drawEpoch marks the last Render call that invoked this node's hook.
	drawEpoch int

	// order is the interning sequence number; BFS expansion makes it
	// non-decreasing in distance from the start node.
	order int
}

// bucketFor reduces a state's hash to an intern-table index.
func (s *Solver) bucketFor(state State) int {
	h := state.Hash() % s.numBuckets
	if h < 0 {
		h += s.numBuckets
	}
	return h
}

// find returns the interned node equal to the given state, or nil. The
// comparison is performed by the application's state since the solver
// knows nothing about state internals.
func (s *Solver) find(state State) *node {
	for n := s.buckets[s.bucketFor(state)]; n != nil; n = n.bucketNext {
		if state.Equals(n.state) {
			return n
		}
	}
	return nil
}

// addNode interns a new node wrapping the state and appends it to the
// exploration queue. The caller must have checked that the state is not
// interned yet.
func (s *Solver) addNode(state State) *node {
	n := &node{
		state:      state,
		steps:      MaxSteps,
		progress:   InProcess,
		viewResult: -1,
		goalDist:   -1,
		order:      s.nodeCount,
	}
	s.nodeCount++

	idx := s.bucketFor(state)
	if s.buckets[idx] == nil {
		s.buckets[idx] = n
	} else {
		tail := s.buckets[idx]
		for tail.bucketNext != nil {
			tail = tail.bucketNext
		}
		tail.bucketNext = n
	}

	if s.queueHead == nil {
		s.queueHead = n
		s.queueTail = n
	} else {
		s.queueTail.queueNext = n
		s.queueTail = n
	}

	return n
}

// resetViewState clears the classification scratch fields of all nodes.
func (s *Solver) resetViewState() {
	for i := 0; i < s.numBuckets; i++ {
		for n := s.buckets[i]; n != nil; n = n.bucketNext {
			n.steps = MaxSteps
			n.progress = DeadEnd
			n.viewResult = -1
			n.goalDist = -1
			n.goalFail = false
		}
	}
}

// NodeView is a read-only snapshot of one interned node.
type NodeView struct {
	// State is the wrapped configuration.
	State State
	// Steps is the distance from the current node recorded by the last
	// CalcViewState, or MaxSteps when unreached.
	Steps int
	// Progress is the classification from the last CalcViewState.
	Progress Progress
	// Expanded reports whether the node's transitions have been computed.
	Expanded bool
	// Order is the interning sequence number.
	Order int
}

// VisitNodes calls fn for every interned node. The callback must not
// invoke solver operations.
func (s *Solver) VisitNodes(fn func(NodeView)) {
	for i := 0; i < s.numBuckets; i++ {
		for n := s.buckets[i]; n != nil; n = n.bucketNext {
			fn(NodeView{
				State:    n.state,
				Steps:    n.steps,
				Progress: n.progress,
				Expanded: n.transitions != nil,
				Order:    n.order,
			})
		}
	}
}
