package solver

import (
	"github.com/puzzle-scout/pkg/collections"
)

// The three classification passes and the ghost-render traversal are
// depth-first walks whose depth is bounded only by the graph diameter,
// which on large maps can reach thousands. All four run on explicit,
// pooled frame stacks instead of the call stack.

type viewFrame struct {
	n   *node
	d   int
	i   int
	agg Progress
}

type distFrame struct {
	n   *node
	d   int
	i   int
	min int
}

type goalFrame struct {
	n *node
	d int
	i int
}

type drawFrame struct {
	n *node
	d int
	i int
}

var (
	viewFrames = collections.NewSlicePool[viewFrame](256)
	distFrames = collections.NewSlicePool[distFrame](256)
	goalFrames = collections.NewSlicePool[goalFrame](256)
	drawFrames = collections.NewSlicePool[drawFrame](256)
)

// CalcViewState recomputes the classification of every interned node
// relative to the current node and returns the minimum number of steps to
// any goal configuration, or MaxSteps when no goal is currently reachable.
// It is idempotent and may be called repeatedly as exploration progresses.
func (s *Solver) CalcViewState() int {
	if s.current == nil {
		s.logger.Error("CalcViewState called before AddStartPoint")
		return MaxSteps
	}

	s.resetViewState()
	s.viewPass(s.current)
	dist := s.minDistPass(s.current)
	if dist < MaxSteps {
		s.goalPass(s.current, dist)
	}
	s.classified = true
	return dist
}

// viewPass labels every node reachable from the root with its shortest
// distance (steps) and a DeadEnd/InProcess progress value. A node is
// re-entered only on a strictly shorter path, which both memoizes the
// walk and terminates it under cycles.
func (s *Solver) viewPass(root *node) {
	sp := viewFrames.Get()
	stack := *sp

	if _, done := s.enterView(&stack, root, 0); !done {
		for len(stack) > 0 {
			top := len(stack) - 1
			f := stack[top]
			if f.i < s.numTransitions {
				m := f.n.transitions[f.i]
				stack[top].i++
				if m == nil {
					continue
				}
				if r, done := s.enterView(&stack, m, f.d+1); done && r != DeadEnd {
					stack[top].agg = InProcess
				}
				continue
			}

			ret := f.agg
			f.n.progress = f.agg
			// A goal counts as progress for its predecessors no matter
			// where its own transitions lead.
			if f.n.state.HasWon() {
				ret = InProcess
			}
			if ret == DeadEnd {
				f.n.viewResult = 0
			} else {
				f.n.viewResult = 1
			}
			stack = stack[:top]
			if len(stack) > 0 && ret != DeadEnd {
				stack[len(stack)-1].agg = InProcess
			}
		}
	}

	*sp = stack
	viewFrames.Put(sp)
}

// enterView begins the visit of n at depth d. It either resolves the
// visit immediately (returning its progress result and true) or pushes a
// frame whose children remain to be walked.
func (s *Solver) enterView(stack *[]viewFrame, n *node, d int) (Progress, bool) {
	if d >= n.steps {
		// Already reached on a path at least as short. The node's own
		// labelling stands, but its recorded result still credits this
		// predecessor: a shared successor that reaches a goal or the
		// frontier keeps every parent in process, not just the first one
		// to visit it. A node still being walked (a cycle back into the
		// path) has no result yet and contributes nothing.
		if n.viewResult == 1 || n.transitions == nil {
			return InProcess, true
		}
		return DeadEnd, true
	}
	n.steps = d
	if n.transitions == nil {
		// The unexplored frontier is always in process.
		return InProcess, true
	}
	*stack = append(*stack, viewFrame{n: n, d: d, agg: DeadEnd})
	return DeadEnd, false
}

// minDistPass returns the minimum distance from the root to any goal
// node, or MaxSteps. It walks only depths consistent with the steps
// values written by viewPass and memoizes the per-node remaining distance
// in goalDist, so each node is resolved once.
func (s *Solver) minDistPass(root *node) int {
	sp := distFrames.Get()
	stack := *sp
	result := MaxSteps

	if r, done := s.enterDist(&stack, root, 0); done {
		result = r
	} else {
		for len(stack) > 0 {
			top := len(stack) - 1
			f := stack[top]
			if f.i < s.numTransitions {
				m := f.n.transitions[f.i]
				stack[top].i++
				if m == nil {
					continue
				}
				if r, done := s.enterDist(&stack, m, f.d+1); done && r < stack[top].min {
					stack[top].min = r
				}
				continue
			}

			if f.min < MaxSteps {
				f.n.goalDist = f.min - f.d
			} else {
				f.n.goalDist = MaxSteps
			}
			stack = stack[:top]
			if len(stack) > 0 {
				if f.min < stack[top-1].min {
					stack[top-1].min = f.min
				}
			} else {
				result = f.min
			}
		}
	}

	*sp = stack
	distFrames.Put(sp)
	return result
}

// enterDist begins the distance visit of n at depth d, resolving it
// immediately when pruned, memoized, or a goal.
func (s *Solver) enterDist(stack *[]distFrame, n *node, d int) (int, bool) {
	if d > n.steps || n.transitions == nil {
		return MaxSteps, true
	}
	if n.state.HasWon() {
		return d, true
	}
	if n.goalDist >= 0 {
		if n.goalDist >= MaxSteps {
			return MaxSteps, true
		}
		return d + n.goalDist, true
	}
	*stack = append(*stack, distFrame{n: n, d: d, min: MaxSteps})
	return 0, false
}

// goalPass marks one shortest path from the root to a goal node whose
// steps equals minSteps. Ties break deterministically on the lowest
// transition index: on each node the first successor that reports success
// wins and later siblings are not explored.
func (s *Solver) goalPass(root *node, minSteps int) bool {
	sp := goalFrames.Get()
	stack := *sp
	success := false

	if won, done := s.enterGoal(&stack, root, 0, minSteps); done {
		success = won
	} else {
	walk:
		for len(stack) > 0 {
			top := len(stack) - 1
			f := stack[top]
			if f.i < s.numTransitions {
				m := f.n.transitions[f.i]
				stack[top].i++
				if m == nil {
					continue
				}
				if won, done := s.enterGoal(&stack, m, f.d+1, minSteps); done && won {
					// Back track to mark the whole path.
					for j := range stack {
						stack[j].n.progress = Goal
					}
					success = true
					stack = stack[:0]
					break walk
				}
				continue
			}

			// No shortest goal path runs through this node at this depth.
			f.n.goalFail = true
			stack = stack[:top]
		}
	}

	*sp = stack
	goalFrames.Put(sp)
	return success
}

// enterGoal begins the goal-marking visit of n at depth d. It resolves
// immediately on pruning, memoized failure, or when n is the goal
// endpoint of a shortest path.
func (s *Solver) enterGoal(stack *[]goalFrame, n *node, d int, minSteps int) (bool, bool) {
	if d > n.steps || n.transitions == nil || n.goalFail {
		return false, true
	}
	if n.state.HasWon() && n.steps == minSteps {
		n.progress = Goal
		return true, true
	}
	*stack = append(*stack, goalFrame{n: n, d: d})
	return false, false
}

// Render invokes the render hook of every node at exactly the given
// distance from the current node, passing the node's progress and the
// current state. It requires a prior CalcViewState; each node's hook is
// invoked at most once per call.
func (s *Solver) Render(distance int) {
	if s.current == nil {
		s.logger.Error("Render called before AddStartPoint")
		return
	}
	if !s.classified {
		s.logger.Error("Render called before CalcViewState")
		return
	}
	if distance < 0 {
		s.logger.Error("Render called with negative distance %d", distance)
		return
	}

	s.drawEpoch++
	sp := drawFrames.Get()
	stack := *sp

	if !s.enterDraw(&stack, s.current, 0, distance) {
		for len(stack) > 0 {
			top := len(stack) - 1
			f := stack[top]
			if f.i < s.numTransitions {
				m := f.n.transitions[f.i]
				stack[top].i++
				if m == nil {
					continue
				}
				s.enterDraw(&stack, m, f.d+1, distance)
				continue
			}
			stack = stack[:top]
		}
	}

	*sp = stack
	drawFrames.Put(sp)
}

// enterDraw begins the render visit of n at depth d, invoking the hook
// when the target distance is reached. It returns true when the visit
// resolved without pushing a frame.
func (s *Solver) enterDraw(stack *[]drawFrame, n *node, d int, target int) bool {
	if d > n.steps {
		return true
	}
	if d == target {
		if n.drawEpoch != s.drawEpoch {
			n.drawEpoch = s.drawEpoch
			n.state.RenderGhosts(n.progress, s.current.state)
		}
		return true
	}
	if n.transitions == nil {
		return true
	}
	*stack = append(*stack, drawFrame{n: n, d: d})
	return false
}
