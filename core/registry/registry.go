// Package registry provides the filter registry: a keyed collection of
// column filters bound to one shared row dataset. The registry owns
// composite evaluation (the logical AND of every filter's verdict),
// per-filter open/close bookkeeping, criteria mutation, and the
// cross-filter availability computation that drives option graying.
//
// The engine is single-threaded and callback-driven: every operation
// runs synchronously inside the UI collaborator's render pass, and
// criteria mutations are visible to the same pass's subsequent queries.
package registry

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/asaidimu/go-events"
	"go.uber.org/zap"

	"github.com/asaidimu/go-gridfilter/core/filter"
)

// Registry is the unit the host application interacts with. It holds a
// non-owning shared reference to the dataset and one column filter per
// UI-bound column, keyed by a stable string id.
type Registry[T any] struct {
	rows          []T
	filters       []filter.ColumnFilter[T]
	index         map[string]int
	open          map[string]bool
	strict        bool
	logger        *zap.Logger
	bus           *events.TypedEventBus[FilterEvent]
	subscriptions map[string]*SubscriptionInfo
	avail         *availability[T]
}

// Option configures a Registry.
type Option[T any] func(*Registry[T])

// WithLogger sets the registry's logger. A nil logger is replaced by a
// no-op logger.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(r *Registry[T]) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStrictAvailability computes option availability against every
// registered filter including the option's own, instead of the default
// leave-one-out rule. Under strict semantics a deselected option stays
// grayed until reselected elsewhere.
func WithStrictAvailability[T any]() Option[T] {
	return func(r *Registry[T]) {
		r.strict = true
	}
}

// New builds an empty registry bound to the given dataset. The rows
// slice is shared, never copied and never mutated by the registry.
func New[T any](rows []T, opts ...Option[T]) (*Registry[T], error) {
	bus, err := events.NewTypedEventBus[FilterEvent](events.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("could not initialize event bus: %w", err)
	}

	r := &Registry[T]{
		rows:          rows,
		index:         map[string]int{},
		open:          map[string]bool{},
		logger:        zap.NewNop(),
		bus:           bus,
		subscriptions: map[string]*SubscriptionInfo{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.avail = newAvailability(r)
	return r, nil
}

// Rows returns the shared dataset handle.
func (r *Registry[T]) Rows() []T {
	return r.rows
}

// Register adds a column filter under its id, optionally seeding it
// with initial criteria. It returns ErrDuplicateID and leaves the
// registry unchanged when the id is already taken.
func (r *Registry[T]) Register(f filter.ColumnFilter[T], initial ...filter.Criteria) error {
	id := f.ID()
	if _, exists := r.index[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	r.index[id] = len(r.filters)
	r.filters = append(r.filters, f)
	r.avail.invalidate()
	r.logger.Info("Registered column filter", zap.String("id", id))
	if len(initial) > 0 {
		// Advisory parse errors pass through; the filter stays
		// registered and fails open like any later SetCriteria.
		return r.SetCriteria(id, initial[0])
	}
	return nil
}

// Evaluate returns the logical AND of every registered filter's verdict
// for the row, short-circuiting on the first failure. A registry with
// zero filters passes every row.
func (r *Registry[T]) Evaluate(row T) bool {
	for _, f := range r.filters {
		if !f.Evaluate(row) {
			return false
		}
	}
	return true
}

// Visible returns the indices of rows passing composite evaluation,
// memoized until the next criteria mutation.
func (r *Registry[T]) Visible() []int {
	mask := r.avail.visibleMask()
	out := make([]int, 0, mask.GetCardinality())
	it := mask.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// VisibleMask returns the bitmap of row indices passing composite
// evaluation. The returned bitmap is a clone: callers may And/Or it
// freely without disturbing the memoized mask.
func (r *Registry[T]) VisibleMask() *roaring.Bitmap {
	return r.avail.visibleMask().Clone()
}

// IsActive reports whether the named filter's criteria restricts the
// row set.
func (r *Registry[T]) IsActive(id string) (bool, error) {
	f, err := r.lookup(id)
	if err != nil {
		return false, err
	}
	return f.IsActive(), nil
}

// Criteria returns a copy of the named filter's current criteria.
func (r *Registry[T]) Criteria(id string) (filter.Criteria, error) {
	f, err := r.lookup(id)
	if err != nil {
		return filter.Criteria{}, err
	}
	return f.Criteria(), nil
}

// SetCriteria replaces the named filter's criteria, recomputes its
// active flag and invalidates every filter's cached availability. A
// *ParseError from a custom filter is passed through after the state
// change: the filter fails open and the table stays usable.
func (r *Registry[T]) SetCriteria(id string, c filter.Criteria) error {
	f, err := r.lookup(id)
	if err != nil {
		return err
	}

	setErr := f.SetCriteria(c)
	r.avail.invalidate()

	criteria := f.Criteria()
	r.emit(createEvent(EventCriteriaChanged, id, &criteria, nil))
	r.emit(createEvent(EventAvailabilityInvalidated, id, nil, nil))

	if setErr != nil {
		r.logger.Warn("Criteria failed to parse, filter fails open",
			zap.String("id", id), zap.Error(setErr))
		r.emit(createEvent(EventCriteriaParseFailed, id, &criteria, setErr))
	} else {
		r.logger.Debug("Criteria changed", zap.String("id", id), zap.Bool("active", f.IsActive()))
	}
	return setErr
}

// Reset clears the named filter's criteria.
func (r *Registry[T]) Reset(id string) error {
	f, err := r.lookup(id)
	if err != nil {
		return err
	}
	f.Reset()
	r.avail.invalidate()
	r.emit(createEvent(EventFilterReset, id, nil, nil))
	return nil
}

// ResetAll clears every registered filter's criteria.
func (r *Registry[T]) ResetAll() {
	for _, f := range r.filters {
		f.Reset()
		r.emit(createEvent(EventFilterReset, f.ID(), nil, nil))
	}
	r.avail.invalidate()
}

// Open marks the named filter's popup as shown. Whether more than one
// popup may be open at a time is a UI policy, not a registry invariant.
func (r *Registry[T]) Open(id string) error {
	if _, err := r.lookup(id); err != nil {
		return err
	}
	r.open[id] = true
	r.emit(createEvent(EventFilterOpened, id, nil, nil))
	return nil
}

// Close marks the named filter's popup as hidden.
func (r *Registry[T]) Close(id string) error {
	if _, err := r.lookup(id); err != nil {
		return err
	}
	delete(r.open, id)
	r.emit(createEvent(EventFilterClosed, id, nil, nil))
	return nil
}

// IsOpen reports whether the named filter's popup is shown. Unknown ids
// report false.
func (r *Registry[T]) IsOpen(id string) bool {
	return r.open[id]
}

// IDs returns the registered filter ids in registration order.
func (r *Registry[T]) IDs() []string {
	out := make([]string, len(r.filters))
	for i, f := range r.filters {
		out[i] = f.ID()
	}
	return out
}

func (r *Registry[T]) lookup(id string) (filter.ColumnFilter[T], error) {
	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownID, id)
	}
	return r.filters[i], nil
}
