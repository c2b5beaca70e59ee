package arenalist

// node is one arena slot in the row layout. Payload and bookkeeping share a
// struct, so mutation touches a single region of memory per slot.
type node[T any] struct {
	value T
	next  int32
	prev  int32
	gen   uint32
}

// RowList is the row-layout list: one node struct per slot, all slots
// pre-allocated in a single backing array.
type RowList[T any] struct {
	nodes    []node[T]
	freeHead int32
	head     int32
	tail     int32
	size     int
}

// NewRow builds a row-layout list with a fixed number of slots.
func NewRow[T any](capacity int) (*RowList[T], error) {
	if capacity < 1 || capacity > maxCapacity {
		return nil, ErrInvalidCapacity
	}
	l := &RowList[T]{
		nodes: make([]node[T], capacity),
		head:  nilIdx,
		tail:  nilIdx,
	}
	// Thread the free-list through the next links, lowest index first.
	for i := range l.nodes {
		l.nodes[i].next = int32(i) + 1
		l.nodes[i].prev = freeMark
	}
	l.nodes[capacity-1].next = nilIdx
	l.freeHead = 0
	return l, nil
}

// allocate pops a free slot, stores v, and bumps the slot generation.
func (l *RowList[T]) allocate(v T) (int32, error) {
	idx := l.freeHead
	if idx == nilIdx {
		return nilIdx, ErrFull
	}
	n := &l.nodes[idx]
	l.freeHead = n.next
	n.value = v
	n.next = nilIdx
	n.prev = nilIdx
	n.gen++
	return idx, nil
}

// release zeroes a slot and threads it back onto the free-list. The
// generation is left untouched: staleness rests on freeMark until the slot
// is reused and on the bumped generation afterwards.
func (l *RowList[T]) release(idx int32) {
	n := &l.nodes[idx]
	var zero T
	n.value = zero
	n.next = l.freeHead
	n.prev = freeMark
	l.freeHead = idx
}

// unlink splices a live slot out of the chain, fixing head/tail endpoints.
// The slot's own links are dealt with by release.
func (l *RowList[T]) unlink(idx int32) {
	prev, next := l.nodes[idx].prev, l.nodes[idx].next
	if prev != nilIdx {
		l.nodes[prev].next = next
	} else {
		l.head = next
	}
	if next != nilIdx {
		l.nodes[next].prev = prev
	} else {
		l.tail = prev
	}
}

func (l *RowList[T]) valid(h Handle) bool {
	return h.idx >= 0 && int(h.idx) < len(l.nodes) &&
		l.nodes[h.idx].prev != freeMark &&
		l.nodes[h.idx].gen == h.gen
}

// Valid reports whether h still refers to the element it was issued for.
func (l *RowList[T]) Valid(h Handle) bool { return l.valid(h) }

// PushFront inserts v at the head and returns its handle.
func (l *RowList[T]) PushFront(v T) (Handle, error) {
	idx, err := l.allocate(v)
	if err != nil {
		return Handle{}, err
	}
	n := &l.nodes[idx]
	n.next = l.head
	if l.head != nilIdx {
		l.nodes[l.head].prev = idx
	} else {
		l.tail = idx
	}
	l.head = idx
	l.size++
	return Handle{idx: idx, gen: n.gen}, nil
}

// PushBack inserts v at the tail and returns its handle.
func (l *RowList[T]) PushBack(v T) (Handle, error) {
	idx, err := l.allocate(v)
	if err != nil {
		return Handle{}, err
	}
	n := &l.nodes[idx]
	n.prev = l.tail
	if l.tail != nilIdx {
		l.nodes[l.tail].next = idx
	} else {
		l.head = idx
	}
	l.tail = idx
	l.size++
	return Handle{idx: idx, gen: n.gen}, nil
}

// InsertAfter splices v in directly behind the element h refers to.
func (l *RowList[T]) InsertAfter(h Handle, v T) (Handle, error) {
	if !l.valid(h) {
		return Handle{}, ErrInvalidHandle
	}
	idx, err := l.allocate(v)
	if err != nil {
		return Handle{}, err
	}
	anchor := h.idx
	oldNext := l.nodes[anchor].next
	n := &l.nodes[idx]
	n.prev = anchor
	n.next = oldNext
	l.nodes[anchor].next = idx
	if oldNext != nilIdx {
		l.nodes[oldNext].prev = idx
	} else {
		l.tail = idx
	}
	l.size++
	return Handle{idx: idx, gen: n.gen}, nil
}

// Remove splices the element h refers to out of the chain and recycles its
// slot. The stored value is dropped. A stale h leaves the list untouched.
func (l *RowList[T]) Remove(h Handle) error {
	if !l.valid(h) {
		return ErrInvalidHandle
	}
	l.unlink(h.idx)
	l.size--
	l.release(h.idx)
	return nil
}

// RemoveAfter removes the element directly behind the one h refers to.
func (l *RowList[T]) RemoveAfter(h Handle) error {
	if !l.valid(h) {
		return ErrInvalidHandle
	}
	target := l.nodes[h.idx].next
	if target == nilIdx {
		return ErrNoSuccessor
	}
	l.unlink(target)
	l.size--
	l.release(target)
	return nil
}

// PopFront removes the head element and returns its value.
func (l *RowList[T]) PopFront() (T, error) {
	if l.head == nilIdx {
		var zero T
		return zero, ErrEmpty
	}
	idx := l.head
	l.unlink(idx)
	l.size--
	v := l.nodes[idx].value
	l.release(idx)
	return v, nil
}

// Value reads the element h refers to without removing it.
func (l *RowList[T]) Value(h Handle) (T, error) {
	if !l.valid(h) {
		var zero T
		return zero, ErrInvalidHandle
	}
	return l.nodes[h.idx].value, nil
}

// ForEach walks the chain head to tail, calling fn with each value and its
// slot index. Each call starts fresh from the head. fn must not mutate the
// list; traversal during mutation is undefined.
func (l *RowList[T]) ForEach(fn func(v T, idx int32)) {
	for i := l.head; i != nilIdx; i = l.nodes[i].next {
		fn(l.nodes[i].value, i)
	}
}

// Head returns the first live slot index, or -1 when empty. Together with
// NextOf and ValueAt it forms the unchecked traversal path for tight loops.
//
//go:nosplit
//go:inline
func (l *RowList[T]) Head() int32 { return l.head }

// NextOf returns the slot after i. No bounds or liveness checks.
//
//go:nosplit
//go:inline
func (l *RowList[T]) NextOf(i int32) int32 { return l.nodes[i].next }

// ValueAt returns the payload at slot i. No bounds or liveness checks.
//
//go:nosplit
//go:inline
func (l *RowList[T]) ValueAt(i int32) T { return l.nodes[i].value }

// Len returns the number of live elements.
func (l *RowList[T]) Len() int { return l.size }

// Cap returns the fixed slot count configured at construction.
func (l *RowList[T]) Cap() int { return len(l.nodes) }

// Empty reports whether no elements are live.
func (l *RowList[T]) Empty() bool { return l.size == 0 }
