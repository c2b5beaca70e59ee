// Package arenalist implements a fixed-capacity, array-backed doubly linked
// list addressed through integer slots instead of pointers. Insertion at
// either end or after an arbitrary element, removal by handle, and front pops
// all run in O(1). Every insertion returns a Handle carrying the slot's
// generation counter, so a reference held across a removal is rejected as
// stale instead of silently corrupting the chain.
//
// Two layouts implement the identical contract: RowList keeps each slot's
// value, links, and generation together, while ColumnList splits them into
// four parallel columns so link-only traversal does not drag payload bytes
// through the cache. The layout is a locality lever, never a semantic one.
//
// Neither layout grows: capacity is fixed at construction, which is what
// keeps slot indices (and therefore handles) stable for the arena lifetime.
// Instances are not safe for concurrent mutation; handles themselves are
// plain values and may be copied freely.
package arenalist

import "errors"

const (
	// nilIdx terminates the live chain and the free-list.
	nilIdx int32 = -1

	// freeMark occupies the prev link of every free slot. A slot is live
	// iff its prev link is not freeMark. Validation checks liveness along
	// with the generation, so a handle stays detectably stale between the
	// release of its slot and the slot's next allocation.
	freeMark int32 = -2

	// maxCapacity bounds construction so every slot index fits in int32.
	maxCapacity = 1<<31 - 1
)

var (
	// ErrInvalidCapacity is returned by constructors for capacity < 1.
	ErrInvalidCapacity = errors.New("arenalist: capacity must be positive")

	// ErrFull is returned by insertions when the free-list is exhausted.
	ErrFull = errors.New("arenalist: no free slots")

	// ErrInvalidHandle is returned when a handle is out of range, stale,
	// or refers to a slot that is currently free.
	ErrInvalidHandle = errors.New("arenalist: invalid or stale handle")

	// ErrNoSuccessor is returned by RemoveAfter when the anchor is the tail.
	ErrNoSuccessor = errors.New("arenalist: no element after handle")

	// ErrEmpty is returned by PopFront on an empty list.
	ErrEmpty = errors.New("arenalist: empty list")
)

// Handle identifies one occupancy of one slot: the slot index plus the
// generation the slot had when the element was inserted. Handles are opaque;
// equality and copying are the only operations callers need. The zero Handle
// never validates. Handles are meaningful only against the list that issued
// them and must not outlive it.
//
// The generation counter is 32 bits wide and is not protected against
// wraparound: after 2^32 reuses of a single slot a stale handle could in
// principle revalidate. Accepted limitation; widen the counter if a
// workload's per-slot churn ever makes it material.
type Handle struct {
	idx int32
	gen uint32
}

// List is the contract shared by RowList and ColumnList. It exists so
// consumers can bind a layout through a generic type parameter; do not use
// it as an interface value on a hot path, the point of the arena design is
// avoiding indirection there.
type List[T any] interface {
	PushFront(v T) (Handle, error)
	PushBack(v T) (Handle, error)
	InsertAfter(h Handle, v T) (Handle, error)
	Remove(h Handle) error
	RemoveAfter(h Handle) error
	PopFront() (T, error)
	Value(h Handle) (T, error)
	Valid(h Handle) bool
	ForEach(fn func(v T, idx int32))
	Head() int32
	NextOf(i int32) int32
	ValueAt(i int32) T
	Len() int
	Cap() int
	Empty() bool
}

var (
	_ List[int] = (*RowList[int])(nil)
	_ List[int] = (*ColumnList[int])(nil)
)
