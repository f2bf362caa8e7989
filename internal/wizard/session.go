package wizard

import (
	"costwise/internal/logging"
)

// Store owns the session fields. It is the only writer: the navigator owns
// the current step and the history manager goes through Apply/Replace so its
// snapshots stay valid after later merges.
type Store struct {
	fields SessionFields
	log    logging.Logger
}

func NewStore(log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{log: log}
}

// Fields returns a deep copy of the latest committed state. Reads are
// synchronous; callers never observe a partially applied patch.
func (s *Store) Fields() SessionFields {
	if s == nil {
		return SessionFields{}
	}
	return cloneFields(s.fields)
}

// Apply replaces every sub-object present in the patch wholesale and leaves
// the rest untouched. Attempts to set the current step through the store are
// ignored and logged; step transitions belong to the navigator.
func (s *Store) Apply(patch FieldsPatch) {
	if s == nil {
		return
	}
	if patch.CurrentStep != nil {
		s.log.Warn("session store refused current step update",
			logging.F("step", string(*patch.CurrentStep)))
	}
	if patch.Basic != nil {
		s.fields.Basic = *patch.Basic
	}
	if patch.Ingredients != nil {
		s.fields.Ingredients = cloneLines(*patch.Ingredients)
	}
	if patch.Preparation != nil {
		s.fields.Preparation = *patch.Preparation
	}
	if patch.Cost != nil {
		s.fields.Cost = *patch.Cost
	}
	if patch.Sales != nil {
		s.fields.Sales = resolveSales(s.fields.Sales, *patch.Sales, s.fields.Cost.CostPerServing)
	}
}

// Replace swaps in a full snapshot. Used by undo/redo restores.
func (s *Store) Replace(fields SessionFields) {
	if s == nil {
		return
	}
	s.fields = cloneFields(fields)
}
