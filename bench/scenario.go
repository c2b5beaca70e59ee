// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⏱️ TIMED SCENARIO RUNNERS
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Component: Benchmark Scenario Execution
//
// Description:
//   Replays a pre-generated Workload against a book implementation and times nothing but the
//   operations under test. Setup (construction, pre-fill) happens outside the clock; each timed
//   section is preceded by a forced GC so collector debt from setup never lands inside it.
//
// Checksums:
//   Every scenario folds the book's final quantity and notional totals through Mix64. The driver
//   compares checksums across layouts; a divergence means the implementations disagree, and the
//   timing columns next to it are meaningless.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package bench

import (
	"errors"
	"runtime"
	"time"

	"github.com/wenalan/hft-low-latency-benchmarks/book"
	"github.com/wenalan/hft-low-latency-benchmarks/fixeddouble"
	"github.com/wenalan/hft-low-latency-benchmarks/utils"
)

// Book is the surface every implementation under test exposes.
type Book interface {
	Add(book.Order) error
	CancelAt(pos int) error
	QtySum() uint64
	NotionalSum() fixeddouble.FixedDouble
	Len() int
	Cap() int
}

// Factory builds a fresh book for one run. Each repeat of a scenario starts
// from a brand-new instance so slot reuse from a prior run cannot leak in.
type Factory func() (Book, error)

// Result is one scenario measurement on one layout.
type Result struct {
	Layout     string `json:"layout"`
	Scenario   string `json:"scenario"`
	Operations int    `json:"operations"`
	FinalDepth int    `json:"final_depth"`
	Elapsed    int64  `json:"elapsed_ns"`
	Checksum   uint64 `json:"checksum"`
}

// NanosPerOpMilli reports nanoseconds per operation in thousandths, for the
// fixed three-decimal report column.
func (r Result) NanosPerOpMilli() int64 {
	if r.Operations == 0 {
		return 0
	}
	return r.Elapsed * 1000 / int64(r.Operations)
}

// ErrChecksumDrift is returned by BestWorst when repeats of the same scenario
// disagree on their final checksum.
var ErrChecksumDrift = errors.New("bench: checksum drift across repeat runs")

// sink keeps traversal results observable so the compiler cannot discard the
// timed loops.
var sink uint64

// ────────────────────────────────────────────────────────────────────────────
// Scenario implementations
// ────────────────────────────────────────────────────────────────────────────

// RunFill times pushing the full fill stream into an empty book.
func RunFill(w *Workload, layout string, f Factory) (Result, error) {
	b, err := f()
	if err != nil {
		return Result{}, err
	}

	runtime.GC()
	start := time.Now()
	for _, o := range w.FillOrders {
		if err := b.Add(o); err != nil {
			return Result{}, err
		}
	}
	elapsed := time.Since(start)

	return seal(b, layout, "fill", len(w.FillOrders), elapsed), nil
}

// RunErase pre-fills the book outside the clock, then times draining it one
// random position at a time.
func RunErase(w *Workload, layout string, f Factory) (Result, error) {
	b, err := f()
	if err != nil {
		return Result{}, err
	}
	for _, o := range w.FillOrders {
		if err := b.Add(o); err != nil {
			return Result{}, err
		}
	}

	runtime.GC()
	start := time.Now()
	for _, pos := range w.ErasePos {
		if err := b.CancelAt(pos); err != nil {
			return Result{}, err
		}
	}
	elapsed := time.Since(start)

	return seal(b, layout, "erase", len(w.ErasePos), elapsed), nil
}

// RunChurn times the interleaved insert/erase stream from an empty book.
// This is the scenario where free-slot recycling earns its keep.
func RunChurn(w *Workload, layout string, f Factory) (Result, error) {
	b, err := f()
	if err != nil {
		return Result{}, err
	}

	runtime.GC()
	start := time.Now()
	for _, s := range w.ChurnSteps {
		if s.Insert {
			err = b.Add(s.Order)
		} else {
			err = b.CancelAt(s.Pos)
		}
		if err != nil {
			return Result{}, err
		}
	}
	elapsed := time.Since(start)

	return seal(b, layout, "churn", len(w.ChurnSteps), elapsed), nil
}

// RunIterate pre-fills the book, then times repeated front-to-back quantity
// walks. This is where the row and column layouts actually diverge.
func RunIterate(w *Workload, layout string, f Factory) (Result, error) {
	b, err := f()
	if err != nil {
		return Result{}, err
	}
	for _, o := range w.FillOrders {
		if err := b.Add(o); err != nil {
			return Result{}, err
		}
	}

	runtime.GC()
	start := time.Now()
	var total uint64
	for i := 0; i < w.IterateLoops; i++ {
		total += b.QtySum()
	}
	elapsed := time.Since(start)
	sink = total

	r := seal(b, layout, "iterate", w.IterateLoops*b.Len(), elapsed)
	r.Checksum = utils.Mix64(total)
	return r, nil
}

// seal snapshots the book's final state into a Result.
func seal(b Book, layout, scenario string, ops int, elapsed time.Duration) Result {
	return Result{
		Layout:     layout,
		Scenario:   scenario,
		Operations: ops,
		FinalDepth: b.Len(),
		Elapsed:    elapsed.Nanoseconds(),
		Checksum:   utils.Mix64(b.QtySum()) ^ utils.Mix64(uint64(b.NotionalSum().Raw())),
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Repeat harness
// ────────────────────────────────────────────────────────────────────────────

// Summary is the best and worst wall time of a repeated scenario.
type Summary struct {
	Best  Result `json:"best"`
	Worst Result `json:"worst"`
	Runs  int    `json:"runs"`
}

// BestWorst repeats fn and keeps the fastest and slowest runs. Every repeat
// must land on the same checksum; drift fails the whole measurement.
func BestWorst(runs int, fn func() (Result, error)) (Summary, error) {
	var s Summary
	for i := 0; i < runs; i++ {
		r, err := fn()
		if err != nil {
			return Summary{}, err
		}
		if i == 0 {
			s = Summary{Best: r, Worst: r, Runs: runs}
			continue
		}
		if r.Checksum != s.Best.Checksum {
			return Summary{}, ErrChecksumDrift
		}
		if r.Elapsed < s.Best.Elapsed {
			s.Best = r
		}
		if r.Elapsed > s.Worst.Elapsed {
			s.Worst = r
		}
	}
	return s, nil
}
