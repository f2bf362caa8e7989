package wizard

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"costwise/internal/logging"
	"costwise/internal/types"
)

// Wizard is one in-flight creation session: the session store, history,
// navigator and commit coordinator wired together behind the operations a
// host drives. Hosts may run Commit on a separate goroutine while the UI
// goroutine keeps reading state and undoing, so every operation serializes
// on an internal mutex; Commit releases it for the duration of the network
// call, leaving undo and redo available while the request is in flight.
type Wizard struct {
	mu          sync.Mutex
	id          string
	store       *Store
	history     *History
	nav         *Navigator
	coordinator *Coordinator
	log         logging.Logger

	discriminator Discriminator
	seedKind      Discriminator
	entityID      string
	errorsByStep  map[StepID][]string
	closed        bool
	committed     bool
}

type Option func(*options)

type options struct {
	gateway  Gateway
	cache    CacheInvalidator
	log      logging.Logger
	seedKind Discriminator
	entityID string
	fields   *SessionFields
}

func WithGateway(gateway Gateway) Option {
	return func(o *options) {
		o.gateway = gateway
	}
}

func WithCacheInvalidator(cache CacheInvalidator) Option {
	return func(o *options) {
		o.cache = cache
	}
}

func WithLogger(log logging.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithSeed pre-fills the session for edit mode. The session still starts on
// the creation type step with the discriminator pre-chosen and editable;
// commit routes to an update of entityID as long as the discriminator still
// matches the seeded kind.
func WithSeed(d Discriminator, entityID string, fields SessionFields) Option {
	return func(o *options) {
		o.seedKind = d
		o.entityID = entityID
		cloned := cloneFields(fields)
		o.fields = &cloned
	}
}

func New(opts ...Option) *Wizard {
	cfg := options{log: logging.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	log := cfg.log.With(logging.F("component", "wizard"))
	w := &Wizard{
		id:           uuid.NewString(),
		store:        NewStore(log),
		history:      NewHistory(),
		nav:          NewNavigator(),
		coordinator:  NewCoordinator(cfg.gateway, cfg.cache, log),
		log:          log,
		errorsByStep: map[StepID][]string{},
	}
	if cfg.fields != nil {
		w.store.Replace(*cfg.fields)
		w.discriminator = cfg.seedKind
		w.seedKind = cfg.seedKind
		w.entityID = cfg.entityID
	}
	return w
}

func (w *Wizard) ID() string {
	if w == nil {
		return ""
	}
	return w.id
}

func (w *Wizard) Discriminator() Discriminator {
	if w == nil {
		return DiscriminatorNone
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.discriminator
}

// EditTarget returns the entity being updated, or "" when committing creates
// a new one. Switching the discriminator away from the seeded kind turns the
// session into a create.
func (w *Wizard) EditTarget() string {
	if w == nil {
		return ""
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editTarget()
}

func (w *Wizard) editTarget() string {
	if w.discriminator != w.seedKind {
		return ""
	}
	return w.entityID
}

// ChooseDiscriminator sets the recipe-vs-menu-item choice. Only legal while
// on the creation type step, which is the only time the active step set may
// change. An actual change is a mutating action and discards redo history.
func (w *Wizard) ChooseDiscriminator(d Discriminator) error {
	if w == nil {
		return ErrSessionClosed
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.mutableCheck(); err != nil {
		return err
	}
	if !d.Valid() {
		return fmt.Errorf("%w: unknown creation type %q", ErrValidationFailed, string(d))
	}
	if w.nav.Current() != StepCreationType {
		return ErrDiscriminatorLocked
	}
	if w.discriminator != d {
		w.log.Debug("discriminator chosen", logging.F("kind", string(d)))
		w.history.DiscardRedo()
	}
	w.discriminator = d
	delete(w.errorsByStep, StepCreationType)
	return nil
}

func (w *Wizard) Fields() SessionFields {
	if w == nil {
		return SessionFields{}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.Fields()
}

// Update merges a patch into the session fields. Mutating the session
// discards any redo history.
func (w *Wizard) Update(patch FieldsPatch) error {
	if w == nil {
		return ErrSessionClosed
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.mutableCheck(); err != nil {
		return err
	}
	w.history.DiscardRedo()
	w.store.Apply(patch)
	return nil
}

// RecordBeforeChange snapshots the current fields for undo. Hosts call it
// once per discrete user action, before applying the patch.
func (w *Wizard) RecordBeforeChange() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.history.RecordBeforeChange(w.store.Fields())
}

// DropLastRecord discards the most recent undo snapshot. Hosts use it when
// the action recorded with RecordBeforeChange turns out not to apply, so a
// failed edit does not leave a no-op step on the undo stack.
func (w *Wizard) DropLastRecord() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.history.DropLast()
}

// Undo restores the snapshot taken before the last recorded action. Legal
// while a commit is in flight; it does not touch the outbound request.
func (w *Wizard) Undo() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	snapshot, ok := w.history.Undo(w.store.Fields())
	if !ok {
		return false
	}
	w.store.Replace(snapshot)
	return true
}

func (w *Wizard) Redo() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	snapshot, ok := w.history.Redo(w.store.Fields())
	if !ok {
		return false
	}
	w.store.Replace(snapshot)
	return true
}

func (w *Wizard) CanUndo() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.closed && w.history.CanUndo()
}

func (w *Wizard) CanRedo() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.closed && w.history.CanRedo()
}

func (w *Wizard) CurrentStep() StepID {
	if w == nil {
		return StepCreationType
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav.Current()
}

// RequiredSteps resolves the active step list for the chosen discriminator.
func (w *Wizard) RequiredSteps() []StepDefinition {
	if w == nil {
		return RequiredSteps(DiscriminatorNone)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return RequiredSteps(w.discriminator)
}

// StepCompleted reports whether a step was passed by a validated forward
// move, which is what makes it a legal deep-link target.
func (w *Wizard) StepCompleted(step StepID) bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav.Completed(step)
}

// Errors returns the surfaced validation messages for a step.
func (w *Wizard) Errors(step StepID) []string {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.errorsByStep[step]) == 0 {
		return nil
	}
	return append([]string(nil), w.errorsByStep[step]...)
}

// GoNext validates the current step and advances on success. On failure the
// step's errors are recorded, the step does not change, and the returned
// error carries the messages. Advancing from the terminal step is a no-op;
// commit is a distinct action.
func (w *Wizard) GoNext() error {
	if w == nil {
		return ErrSessionClosed
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.transitionCheck(); err != nil {
		return err
	}
	current := w.nav.Current()
	if messages := Validate(current, w.store.Fields(), w.discriminator); len(messages) > 0 {
		w.errorsByStep[current] = append([]string(nil), messages...)
		return &StepErrors{Steps: []StepID{current}, Errors: map[StepID][]string{current: messages}}
	}
	delete(w.errorsByStep, current)
	w.nav.MarkCompleted(current)
	w.nav.Advance(RequiredSteps(w.discriminator))
	return nil
}

// GoPrevious moves back unconditionally; validation never blocks it.
func (w *Wizard) GoPrevious() error {
	if w == nil {
		return ErrSessionClosed
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.transitionCheck(); err != nil {
		return err
	}
	w.nav.Back(RequiredSteps(w.discriminator))
	return nil
}

// GoToStep deep-links into the flow under the navigator's reachability
// rules. Refusals return ErrNavigationRefused and change nothing.
func (w *Wizard) GoToStep(target StepID) error {
	if w == nil {
		return ErrSessionClosed
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.transitionCheck(); err != nil {
		return err
	}
	return w.nav.GoTo(target, RequiredSteps(w.discriminator))
}

// Progress is the integer completion percentage for the current step.
func (w *Wizard) Progress() int {
	if w == nil {
		return Progress(StepCreationType, DiscriminatorNone)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return Progress(w.nav.Current(), w.discriminator)
}

// StepCount is the "step N of M" pair for the current flow.
func (w *Wizard) StepCount() (position, total int) {
	if w == nil {
		return StepCount(StepCreationType, DiscriminatorNone)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return StepCount(w.nav.Current(), w.discriminator)
}

// RecomputeCost refreshes the cost figures from the current ingredient lines
// and catalog unit costs.
func (w *Wizard) RecomputeCost(unitCosts map[int64]float64) error {
	if w == nil {
		return ErrSessionClosed
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.mutableCheck(); err != nil {
		return err
	}
	fields := w.store.Fields()
	cost := ComputeCost(fields.Ingredients, unitCosts, fields.Basic.Servings)
	w.history.DiscardRedo()
	w.store.Apply(FieldsPatch{Cost: &cost})
	return nil
}

// Commit is the terminal action, only available from the preview step. It
// re-validates everything, sends exactly one create or update request, and
// on success closes the session after signalling cache invalidation. On any
// failure the session stays open at preview for retry or cancel. The request
// is built from a snapshot of the fields taken as commit starts; undo and
// redo while it is in flight do not change the outbound payload.
func (w *Wizard) Commit(ctx context.Context) (types.Entity, error) {
	if w == nil {
		return types.Entity{}, ErrSessionClosed
	}
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return types.Entity{}, ErrSessionClosed
	}
	if w.nav.Busy() {
		w.mu.Unlock()
		return types.Entity{}, ErrSessionBusy
	}
	if w.nav.Current() != StepPreview {
		w.mu.Unlock()
		return types.Entity{}, fmt.Errorf("%w: commit is only available from the preview step", ErrNavigationRefused)
	}
	w.nav.SetBusy(true)
	fields := w.store.Fields()
	discriminator := w.discriminator
	target := w.editTarget()
	w.mu.Unlock()

	entity, err := w.coordinator.Commit(ctx, fields, discriminator, target)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.nav.SetBusy(false)
	if err != nil {
		if stepErrs, ok := AsStepErrors(err); ok {
			for _, step := range stepErrs.Steps {
				w.errorsByStep[step] = append([]string(nil), stepErrs.Errors[step]...)
			}
		}
		return types.Entity{}, err
	}
	w.committed = true
	w.closed = true
	return entity, nil
}

// Cancel discards the session. The host is expected to confirm with the user
// first; the engine just closes.
func (w *Wizard) Cancel() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	w.log.Debug("session cancelled", logging.F("session_id", w.id))
}

func (w *Wizard) Closed() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *Wizard) Committed() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.committed
}

func (w *Wizard) Busy() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav.Busy()
}

func (w *Wizard) mutableCheck() error {
	if w.closed {
		return ErrSessionClosed
	}
	return nil
}

func (w *Wizard) transitionCheck() error {
	if err := w.mutableCheck(); err != nil {
		return err
	}
	if w.nav.Busy() {
		return ErrSessionBusy
	}
	return nil
}
