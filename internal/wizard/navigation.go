package wizard

import "fmt"

// Navigator owns the current step and tracks which steps have been completed
// by a validated forward move. It works over whatever required-step list the
// caller resolves for the active discriminator, so the reachable state set
// changes with the discriminator without the navigator noticing.
type Navigator struct {
	current   StepID
	completed map[StepID]bool
	busy      bool
}

func NewNavigator() *Navigator {
	return &Navigator{
		current:   StepCreationType,
		completed: map[StepID]bool{},
	}
}

func (n *Navigator) Current() StepID {
	if n == nil {
		return StepCreationType
	}
	return n.current
}

func (n *Navigator) Completed(step StepID) bool {
	return n != nil && n.completed[step]
}

func (n *Navigator) MarkCompleted(step StepID) {
	if n == nil {
		return
	}
	if n.completed == nil {
		n.completed = map[StepID]bool{}
	}
	n.completed[step] = true
}

// Busy reports whether a commit is in flight. While busy every transition is
// refused; undo/redo stays legal because it never touches the request.
func (n *Navigator) Busy() bool {
	return n != nil && n.busy
}

func (n *Navigator) SetBusy(busy bool) {
	if n == nil {
		return
	}
	n.busy = busy
}

// Advance moves to the next entry of the required list. Returns false when
// already on the last entry; leaving the terminal step forward is a commit,
// not a transition.
func (n *Navigator) Advance(required []StepDefinition) bool {
	idx := indexOf(n.Current(), required)
	if idx < 0 || idx >= len(required)-1 {
		return false
	}
	n.current = required[idx+1].ID
	return true
}

// Back moves to the prior entry unconditionally. The user can always go
// back, whatever the validation state.
func (n *Navigator) Back(required []StepDefinition) bool {
	idx := indexOf(n.Current(), required)
	if idx <= 0 {
		return false
	}
	n.current = required[idx-1].ID
	return true
}

// GoTo jumps to an arbitrary step. Allowed when the target was completed, is
// adjacent to the current step, or lies behind it; anything else is a silent
// refusal the host should never have offered.
func (n *Navigator) GoTo(target StepID, required []StepDefinition) error {
	targetIdx := indexOf(target, required)
	if targetIdx < 0 {
		return fmt.Errorf("%w: %q is not part of the current flow", ErrNavigationRefused, target)
	}
	currentIdx := indexOf(n.Current(), required)
	switch {
	case n.Completed(target):
	case targetIdx <= currentIdx:
	case targetIdx == currentIdx+1:
	default:
		return fmt.Errorf("%w: %q is not reachable from %q", ErrNavigationRefused, target, n.Current())
	}
	n.current = target
	return nil
}

func indexOf(id StepID, steps []StepDefinition) int {
	for i, step := range steps {
		if step.ID == id {
			return i
		}
	}
	return -1
}
