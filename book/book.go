// Package book implements the price-level depth containers the benchmark
// harness drives. ArenaBook is the canonical consumer of the arena list: it
// holds the external position→handle mapping, presents handles back on
// cancel, and never stores raw slot indices. ListBook is the identical
// surface over container/list, kept as the comparison baseline.
package book

import (
	"container/list"

	"github.com/wenalan/hft-low-latency-benchmarks/arenalist"
	"github.com/wenalan/hft-low-latency-benchmarks/fixeddouble"
)

// Order is one resting order at a price level.
type Order struct {
	ID       uint64
	Qty      int32
	Notional fixeddouble.FixedDouble
}

// ArenaBook keeps a price level in an arena-backed list. The layout is bound
// through the type parameter, so each instantiation dispatches statically.
// Cancels address orders by position; the handle slice is compacted with a
// swap-remove, so positions are not stable across cancels (the workload
// generator accounts for that).
type ArenaBook[L arenalist.List[Order]] struct {
	list    L
	handles []arenalist.Handle
}

// NewRowBook builds a book over the row-layout list.
func NewRowBook(capacity int) (*ArenaBook[*arenalist.RowList[Order]], error) {
	l, err := arenalist.NewRow[Order](capacity)
	if err != nil {
		return nil, err
	}
	return &ArenaBook[*arenalist.RowList[Order]]{
		list:    l,
		handles: make([]arenalist.Handle, 0, capacity),
	}, nil
}

// NewColumnBook builds a book over the column-layout list.
func NewColumnBook(capacity int) (*ArenaBook[*arenalist.ColumnList[Order]], error) {
	l, err := arenalist.NewColumn[Order](capacity)
	if err != nil {
		return nil, err
	}
	return &ArenaBook[*arenalist.ColumnList[Order]]{
		list:    l,
		handles: make([]arenalist.Handle, 0, capacity),
	}, nil
}

// Add appends o to the back of the level and records its handle.
func (b *ArenaBook[L]) Add(o Order) error {
	h, err := b.list.PushBack(o)
	if err != nil {
		return err
	}
	b.handles = append(b.handles, h)
	return nil
}

// CancelAt removes the order tracked at position pos. Out-of-range positions
// are ignored, matching the workload contract.
func (b *ArenaBook[L]) CancelAt(pos int) error {
	if pos < 0 || pos >= len(b.handles) {
		return nil
	}
	h := b.handles[pos]
	if err := b.list.Remove(h); err != nil {
		return err
	}
	last := len(b.handles) - 1
	b.handles[pos] = b.handles[last]
	b.handles = b.handles[:last]
	return nil
}

// QtySum walks the level front to back and totals quantities. Uses the
// unchecked traversal path; this is the hot read loop the layouts compete on.
func (b *ArenaBook[L]) QtySum() uint64 {
	var sum uint64
	for i := b.list.Head(); i >= 0; i = b.list.NextOf(i) {
		sum += uint64(b.list.ValueAt(i).Qty)
	}
	return sum
}

// NotionalSum totals the fixed-decimal notional across the level.
func (b *ArenaBook[L]) NotionalSum() fixeddouble.FixedDouble {
	var sum fixeddouble.FixedDouble
	for i := b.list.Head(); i >= 0; i = b.list.NextOf(i) {
		sum = sum.Add(b.list.ValueAt(i).Notional)
	}
	return sum
}

// Len returns the number of resting orders.
func (b *ArenaBook[L]) Len() int { return len(b.handles) }

// Cap returns the fixed level capacity.
func (b *ArenaBook[L]) Cap() int { return b.list.Cap() }

// ListBook is the same surface over container/list. Elements play the role
// handles play for the arena books.
type ListBook struct {
	orders   *list.List
	handles  []*list.Element
	capacity int
}

// NewListBook builds the baseline book.
func NewListBook(capacity int) *ListBook {
	return &ListBook{
		orders:   list.New(),
		handles:  make([]*list.Element, 0, capacity),
		capacity: capacity,
	}
}

// Add appends o to the back of the level.
func (b *ListBook) Add(o Order) error {
	b.handles = append(b.handles, b.orders.PushBack(o))
	return nil
}

// CancelAt removes the order tracked at position pos; out-of-range positions
// are ignored.
func (b *ListBook) CancelAt(pos int) error {
	if pos < 0 || pos >= len(b.handles) {
		return nil
	}
	b.orders.Remove(b.handles[pos])
	last := len(b.handles) - 1
	b.handles[pos] = b.handles[last]
	b.handles = b.handles[:last]
	return nil
}

// QtySum walks the level front to back and totals quantities.
func (b *ListBook) QtySum() uint64 {
	var sum uint64
	for e := b.orders.Front(); e != nil; e = e.Next() {
		sum += uint64(e.Value.(Order).Qty)
	}
	return sum
}

// NotionalSum totals the fixed-decimal notional across the level.
func (b *ListBook) NotionalSum() fixeddouble.FixedDouble {
	var sum fixeddouble.FixedDouble
	for e := b.orders.Front(); e != nil; e = e.Next() {
		sum = sum.Add(e.Value.(Order).Notional)
	}
	return sum
}

// Len returns the number of resting orders.
func (b *ListBook) Len() int { return len(b.handles) }

// Cap returns the configured level capacity.
func (b *ListBook) Cap() int { return b.capacity }
