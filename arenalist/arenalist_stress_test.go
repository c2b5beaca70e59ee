// ============================================================================
// ARENALIST CORRECTNESS VALIDATION SUITE
// ============================================================================
//
// Differential stress testing framework driving both layouts and a reference
// container/list through hundreds of thousands of randomized operations.
//
// Validation methodology:
//   - Row layout, column layout, and container/list receive the identical
//     operation stream from a deterministic seed
//   - Success/failure of every call must agree across all three
//   - Issued handles must be identical between layouts (same free-list
//     policy implies same slot and generation per insertion)
//   - Stale handles are retained forever and re-probed: none may ever
//     revalidate, reuse of the underlying slot included
//   - Full chain contents compared against the reference at fixed intervals
//     and after the final drain

package arenalist

import (
	"container/list"
	"math/rand"
	"testing"
)

const (
	stressCapacity = 256
	stressSteps    = 200000
	stressSeed     = 0xC0FFEE
	compareEvery   = 1024
)

// stressEntry pairs the layout handles of one live element with its
// reference-list element.
type stressEntry struct {
	rowH Handle
	colH Handle
	elem *list.Element
}

// stressState owns all three structures under comparison.
type stressState struct {
	row  *RowList[int]
	col  *ColumnList[int]
	ref  *list.List
	live []stressEntry
	pos  map[*list.Element]int // element -> index into live
	dead []stressEntry        // every handle ever invalidated
}

func newStressState(t *testing.T) *stressState {
	t.Helper()
	row, err := NewRow[int](stressCapacity)
	if err != nil {
		t.Fatalf("NewRow: %v", err)
	}
	col, err := NewColumn[int](stressCapacity)
	if err != nil {
		t.Fatalf("NewColumn: %v", err)
	}
	return &stressState{
		row: row,
		col: col,
		ref: list.New(),
		pos: make(map[*list.Element]int),
	}
}

func (s *stressState) track(rowH, colH Handle, elem *list.Element) {
	s.pos[elem] = len(s.live)
	s.live = append(s.live, stressEntry{rowH: rowH, colH: colH, elem: elem})
}

// drop removes the live entry at index i via swap-remove and retires its
// handles to the dead pool.
func (s *stressState) drop(i int) {
	e := s.live[i]
	delete(s.pos, e.elem)
	last := len(s.live) - 1
	if i != last {
		s.live[i] = s.live[last]
		s.pos[s.live[i].elem] = i
	}
	s.live = s.live[:last]
	s.dead = append(s.dead, e)
}

func (s *stressState) verify(t *testing.T, step int) {
	t.Helper()
	if s.row.Len() != s.ref.Len() || s.col.Len() != s.ref.Len() {
		t.Fatalf("step %d: len mismatch row=%d col=%d ref=%d",
			step, s.row.Len(), s.col.Len(), s.ref.Len())
	}
	rowVals := make([]int, 0, s.ref.Len())
	s.row.ForEach(func(v int, _ int32) { rowVals = append(rowVals, v) })
	colVals := make([]int, 0, s.ref.Len())
	s.col.ForEach(func(v int, _ int32) { colVals = append(colVals, v) })
	i := 0
	for e := s.ref.Front(); e != nil; e = e.Next() {
		want := e.Value.(int)
		if rowVals[i] != want || colVals[i] != want {
			t.Fatalf("step %d pos %d: want %d, row %d, col %d",
				step, i, want, rowVals[i], colVals[i])
		}
		i++
	}
}

// TestStressRandomOperationsDifferential drives random inserts, removals,
// stale-handle probes, and pops through both layouts in lockstep.
func TestStressRandomOperationsDifferential(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}
	rng := rand.New(rand.NewSource(stressSeed))
	s := newStressState(t)
	val := 0

	for step := 0; step < stressSteps; step++ {
		switch rng.Intn(10) {
		case 0, 1: // PushBack
			val++
			rh, rerr := s.row.PushBack(val)
			ch, cerr := s.col.PushBack(val)
			if rerr != cerr {
				t.Fatalf("step %d: PushBack row=%v col=%v", step, rerr, cerr)
			}
			if rerr == nil {
				if rh != ch {
					t.Fatalf("step %d: handle divergence %+v vs %+v", step, rh, ch)
				}
				s.track(rh, ch, s.ref.PushBack(val))
			} else if rerr != ErrFull || s.ref.Len() != stressCapacity {
				t.Fatalf("step %d: unexpected PushBack err %v at depth %d", step, rerr, s.ref.Len())
			}

		case 2: // PushFront
			val++
			rh, rerr := s.row.PushFront(val)
			ch, cerr := s.col.PushFront(val)
			if rerr != cerr {
				t.Fatalf("step %d: PushFront row=%v col=%v", step, rerr, cerr)
			}
			if rerr == nil {
				if rh != ch {
					t.Fatalf("step %d: handle divergence %+v vs %+v", step, rh, ch)
				}
				s.track(rh, ch, s.ref.PushFront(val))
			} else if rerr != ErrFull || s.ref.Len() != stressCapacity {
				t.Fatalf("step %d: unexpected PushFront err %v at depth %d", step, rerr, s.ref.Len())
			}

		case 3: // InsertAfter a live anchor
			if len(s.live) == 0 {
				continue
			}
			val++
			a := s.live[rng.Intn(len(s.live))]
			rh, rerr := s.row.InsertAfter(a.rowH, val)
			ch, cerr := s.col.InsertAfter(a.colH, val)
			if rerr != cerr {
				t.Fatalf("step %d: InsertAfter row=%v col=%v", step, rerr, cerr)
			}
			if rerr == nil {
				if rh != ch {
					t.Fatalf("step %d: handle divergence %+v vs %+v", step, rh, ch)
				}
				s.track(rh, ch, s.ref.InsertAfter(val, a.elem))
			} else if rerr != ErrFull || s.ref.Len() != stressCapacity {
				t.Fatalf("step %d: unexpected InsertAfter err %v at depth %d", step, rerr, s.ref.Len())
			}

		case 4, 5: // Remove a live element
			if len(s.live) == 0 {
				continue
			}
			i := rng.Intn(len(s.live))
			e := s.live[i]
			if err := s.row.Remove(e.rowH); err != nil {
				t.Fatalf("step %d: row Remove live handle: %v", step, err)
			}
			if err := s.col.Remove(e.colH); err != nil {
				t.Fatalf("step %d: col Remove live handle: %v", step, err)
			}
			s.ref.Remove(e.elem)
			s.drop(i)

		case 6: // Remove a retired handle; must fail on both layouts
			if len(s.dead) == 0 {
				continue
			}
			e := s.dead[rng.Intn(len(s.dead))]
			if err := s.row.Remove(e.rowH); err != ErrInvalidHandle {
				t.Fatalf("step %d: row accepted dead handle: %v", step, err)
			}
			if err := s.col.Remove(e.colH); err != ErrInvalidHandle {
				t.Fatalf("step %d: col accepted dead handle: %v", step, err)
			}
			if s.row.Valid(e.rowH) || s.col.Valid(e.colH) {
				t.Fatalf("step %d: dead handle revalidated", step)
			}

		case 7: // RemoveAfter a live anchor
			if len(s.live) == 0 {
				continue
			}
			a := s.live[rng.Intn(len(s.live))]
			succ := a.elem.Next()
			rerr := s.row.RemoveAfter(a.rowH)
			cerr := s.col.RemoveAfter(a.colH)
			if rerr != cerr {
				t.Fatalf("step %d: RemoveAfter row=%v col=%v", step, rerr, cerr)
			}
			if succ == nil {
				if rerr != ErrNoSuccessor {
					t.Fatalf("step %d: tail anchor want %v, got %v", step, ErrNoSuccessor, rerr)
				}
				continue
			}
			if rerr != nil {
				t.Fatalf("step %d: RemoveAfter failed: %v", step, rerr)
			}
			s.ref.Remove(succ)
			s.drop(s.pos[succ])

		case 8, 9: // PopFront
			rv, rerr := s.row.PopFront()
			cv, cerr := s.col.PopFront()
			if rerr != cerr {
				t.Fatalf("step %d: PopFront row=%v col=%v", step, rerr, cerr)
			}
			front := s.ref.Front()
			if front == nil {
				if rerr != ErrEmpty {
					t.Fatalf("step %d: empty pop want %v, got %v", step, ErrEmpty, rerr)
				}
				continue
			}
			if rerr != nil {
				t.Fatalf("step %d: PopFront failed: %v", step, rerr)
			}
			want := front.Value.(int)
			if rv != want || cv != want {
				t.Fatalf("step %d: PopFront want %d, row %d, col %d", step, want, rv, cv)
			}
			s.ref.Remove(front)
			s.drop(s.pos[front])
		}

		if step%compareEvery == 0 {
			s.verify(t, step)
		}
	}

	// Final drain: remaining contents must pop out in reference order.
	s.verify(t, stressSteps)
	for s.ref.Len() > 0 {
		front := s.ref.Front()
		want := front.Value.(int)
		rv, rerr := s.row.PopFront()
		cv, cerr := s.col.PopFront()
		if rerr != nil || cerr != nil {
			t.Fatalf("drain: pop failed row=%v col=%v", rerr, cerr)
		}
		if rv != want || cv != want {
			t.Fatalf("drain: want %d, row %d, col %d", want, rv, cv)
		}
		s.ref.Remove(front)
		s.drop(s.pos[front])
	}
	if !s.row.Empty() || !s.col.Empty() {
		t.Fatalf("drain: lists not empty row=%d col=%d", s.row.Len(), s.col.Len())
	}
	_, rerr := s.row.PopFront()
	_, cerr := s.col.PopFront()
	if rerr != ErrEmpty || cerr != ErrEmpty {
		t.Fatalf("drain: want %v, row=%v col=%v", ErrEmpty, rerr, cerr)
	}

	// Every handle ever retired must still be rejected.
	for _, e := range s.dead {
		if s.row.Valid(e.rowH) || s.col.Valid(e.colH) {
			t.Fatal("retired handle revalidated after drain")
		}
	}
}

// TestStressFillDrainCycles recycles every slot repeatedly and checks that
// exhaustion and emptiness edges stay exact.
func TestStressFillDrainCycles(t *testing.T) {
	rng := rand.New(rand.NewSource(stressSeed + 1))
	s := newStressState(t)

	for cycle := 0; cycle < 50; cycle++ {
		for s.ref.Len() < stressCapacity {
			v := rng.Int()
			rh, rerr := s.row.PushBack(v)
			ch, cerr := s.col.PushBack(v)
			if rerr != nil || cerr != nil {
				t.Fatalf("cycle %d: fill failed row=%v col=%v", cycle, rerr, cerr)
			}
			s.track(rh, ch, s.ref.PushBack(v))
		}
		_, err := s.row.PushBack(0)
		expectErr(t, err, ErrFull)
		_, err = s.col.PushBack(0)
		expectErr(t, err, ErrFull)
		s.verify(t, cycle)

		for s.ref.Len() > 0 {
			front := s.ref.Front()
			rv, rerr := s.row.PopFront()
			cv, cerr := s.col.PopFront()
			if rerr != nil || cerr != nil {
				t.Fatalf("cycle %d: drain failed row=%v col=%v", cycle, rerr, cerr)
			}
			if want := front.Value.(int); rv != want || cv != want {
				t.Fatalf("cycle %d: drain want %d, row %d, col %d", cycle, want, rv, cv)
			}
			s.ref.Remove(front)
			s.drop(s.pos[front])
		}
	}
}
