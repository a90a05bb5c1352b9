package registry

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/asaidimu/go-gridfilter/core/filter"
	"github.com/asaidimu/go-gridfilter/core/scalar"
)

// availability is the cross-filter availability calculator. Each filter
// gets a roaring bitmap of the row indices passing its current
// criteria; availability of an option for filter F intersects every
// other filter's mask (leave-one-out) and checks whether the option's
// value still occurs among the surviving rows. All caches are keyed to
// a generation counter bumped on any criteria mutation, so work happens
// once per mutation rather than once per frame.
//
// Cost is O(rows x filters) per recomputation.
type availability[T any] struct {
	reg     *Registry[T]
	gen     uint64
	masks   map[string]*maskCache
	options map[string]*optionCache
	visible *maskCache
}

type maskCache struct {
	gen  uint64
	mask *roaring.Bitmap
}

type optionCache struct {
	gen     uint64
	present map[scalar.Scalar]bool
}

func newAvailability[T any](reg *Registry[T]) *availability[T] {
	return &availability[T]{
		reg:     reg,
		gen:     1,
		masks:   map[string]*maskCache{},
		options: map[string]*optionCache{},
	}
}

// invalidate discards every cached mask and option set. Invalidation is
// conservative: filters are independent in domain but interact at the
// row level, so any criteria change can shift any filter's options.
func (a *availability[T]) invalidate() {
	a.gen++
}

// mask returns the bitmap of row indices passing filter f.
func (a *availability[T]) mask(f filter.ColumnFilter[T]) *roaring.Bitmap {
	cached, ok := a.masks[f.ID()]
	if ok && cached.gen == a.gen {
		return cached.mask
	}
	mask := roaring.New()
	for i, row := range a.reg.rows {
		if f.Evaluate(row) {
			mask.Add(uint32(i))
		}
	}
	a.masks[f.ID()] = &maskCache{gen: a.gen, mask: mask}
	return mask
}

// visibleMask returns the bitmap of rows passing every filter.
func (a *availability[T]) visibleMask() *roaring.Bitmap {
	if a.visible != nil && a.visible.gen == a.gen {
		return a.visible.mask
	}
	mask := a.fullMask()
	for _, f := range a.reg.filters {
		mask.And(a.mask(f))
	}
	a.visible = &maskCache{gen: a.gen, mask: mask}
	return mask
}

// othersMask intersects the masks of every filter except skip.
func (a *availability[T]) othersMask(skip string) *roaring.Bitmap {
	mask := a.fullMask()
	for _, f := range a.reg.filters {
		if f.ID() == skip {
			continue
		}
		mask.And(a.mask(f))
	}
	return mask
}

func (a *availability[T]) fullMask() *roaring.Bitmap {
	mask := roaring.New()
	if n := len(a.reg.rows); n > 0 {
		mask.AddRange(0, uint64(n))
	}
	return mask
}

// baseMask is the row set an option of the named filter is tested
// against: every other filter under leave-one-out, every filter under
// strict semantics.
func (a *availability[T]) baseMask(id string) *roaring.Bitmap {
	if a.reg.strict {
		return a.visibleMask()
	}
	return a.othersMask(id)
}

// optionPresent returns the memoized set of option values occurring in
// the named filter's base mask.
func (a *availability[T]) optionPresent(id string, f filter.ColumnFilter[T]) map[scalar.Scalar]bool {
	cached, ok := a.options[id]
	if ok && cached.gen == a.gen {
		return cached.present
	}
	present := map[scalar.Scalar]bool{}
	it := a.baseMask(id).Iterator()
	for it.HasNext() {
		present[f.Value(a.reg.rows[it.Next()])] = true
	}
	a.options[id] = &optionCache{gen: a.gen, present: present}
	return present
}

// Options enumerates the named filter's candidate option values across
// the whole dataset. Continuous variants return nil.
func (r *Registry[T]) Options(id string) ([]scalar.Scalar, error) {
	f, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return f.Options(r.rows), nil
}

// OptionAvailable reports whether selecting the given option of the
// named filter would still yield at least one visible row, given every
// other filter's current criteria. The filter's own criteria is ignored
// under the default leave-one-out rule, so deselecting an option
// elsewhere can never permanently gray it here.
func (r *Registry[T]) OptionAvailable(id string, v scalar.Scalar) (bool, error) {
	f, err := r.lookup(id)
	if err != nil {
		return false, err
	}
	return r.avail.optionPresent(id, f)[v], nil
}

// AnyMatch is the availability check for continuous-domain filters
// (date ranges, custom predicates): it reports whether any row both
// passes every other filter and matches the named filter's current
// criteria.
func (r *Registry[T]) AnyMatch(id string) (bool, error) {
	f, err := r.lookup(id)
	if err != nil {
		return false, err
	}
	it := r.avail.baseMask(id).Iterator()
	for it.HasNext() {
		if f.Evaluate(r.rows[it.Next()]) {
			return true, nil
		}
	}
	return false, nil
}
