package wizard

// History keeps undo/redo stacks of field snapshots. One snapshot per
// discrete user action: hosts call RecordBeforeChange once per settled edit,
// not per keystroke. The history is linear; any new recorded change discards
// the redo stack.
type History struct {
	undo []SessionFields
	redo []SessionFields
}

func NewHistory() *History {
	return &History{}
}

// RecordBeforeChange pushes a deep copy of the current fields onto the undo
// stack and clears the redo stack.
func (h *History) RecordBeforeChange(current SessionFields) {
	if h == nil {
		return
	}
	h.undo = append(h.undo, cloneFields(current))
	h.redo = nil
}

// Undo pops the newest snapshot, parks the current fields on the redo stack,
// and returns the snapshot to restore. Returns false when there is nothing
// to undo.
func (h *History) Undo(current SessionFields) (SessionFields, bool) {
	if h == nil || len(h.undo) == 0 {
		return SessionFields{}, false
	}
	snapshot := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cloneFields(current))
	return cloneFields(snapshot), true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current SessionFields) (SessionFields, bool) {
	if h == nil || len(h.redo) == 0 {
		return SessionFields{}, false
	}
	snapshot := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cloneFields(current))
	return cloneFields(snapshot), true
}

// DropLast discards the most recently recorded undo snapshot. It is the
// counterpart of RecordBeforeChange for actions that end up not applying.
func (h *History) DropLast() {
	if h == nil || len(h.undo) == 0 {
		return
	}
	h.undo = h.undo[:len(h.undo)-1]
}

// DiscardRedo drops the redo stack. Every mutating session operation other
// than undo/redo goes through this so history stays linear.
func (h *History) DiscardRedo() {
	if h == nil {
		return
	}
	h.redo = nil
}

func (h *History) CanUndo() bool {
	return h != nil && len(h.undo) > 0
}

func (h *History) CanRedo() bool {
	return h != nil && len(h.redo) > 0
}
