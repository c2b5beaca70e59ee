// ════════════════════════════════════════════════════════════════════════════════════════════════
// 🧪 TEST SUITE: RUN COORDINATION
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Component: Control System Test Suite
//
// Description:
//   Validates the abort flag semantics used to stop a benchmark campaign between scenarios.
//   The flag is sticky, idempotent, and safe to raise from concurrent signal handlers.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package control

import (
	"sync"
	"testing"
)

func TestAbortIsStickyAndIdempotent(t *testing.T) {
	if Aborted() {
		t.Fatalf("abort flag raised before any Abort call")
	}

	Abort()
	if !Aborted() {
		t.Fatalf("Aborted() = false after Abort()")
	}

	Abort()
	if !Aborted() {
		t.Fatalf("abort flag cleared by repeated Abort()")
	}
}

func TestAbortFromConcurrentSignalers(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Abort()
		}()
	}
	wg.Wait()

	if !Aborted() {
		t.Fatalf("abort flag not visible after concurrent Abort calls")
	}
}

func BenchmarkAborted(b *testing.B) {
	var hits int
	for i := 0; i < b.N; i++ {
		if Aborted() {
			hits++
		}
	}
	benchSink = hits
}

var benchSink int
