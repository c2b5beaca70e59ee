package bench

import (
	"strings"
	"testing"
	"time"

	"github.com/wenalan/hft-low-latency-benchmarks/book"
)

const testCapacity = 128

type layoutFactory struct {
	layout  string
	factory Factory
}

func testFactories() []layoutFactory {
	return []layoutFactory{
		{"row", func() (Book, error) { return book.NewRowBook(testCapacity) }},
		{"column", func() (Book, error) { return book.NewColumnBook(testCapacity) }},
		{"list", func() (Book, error) { return book.NewListBook(testCapacity), nil }},
	}
}

type runner struct {
	name string
	run  func(*Workload, string, Factory) (Result, error)
}

func runners() []runner {
	return []runner{
		{"fill", RunFill},
		{"erase", RunErase},
		{"churn", RunChurn},
		{"iterate", RunIterate},
	}
}

// Every book implementation replaying the same workload must land on the
// same checksum and depth; that equivalence is what makes the timing
// comparison honest.
func TestScenariosAgreeAcrossBooks(t *testing.T) {
	w := BuildWorkload(testCapacity)

	for _, sc := range runners() {
		t.Run(sc.name, func(t *testing.T) {
			var first Result
			for i, lf := range testFactories() {
				r, err := sc.run(w, lf.layout, lf.factory)
				if err != nil {
					t.Fatalf("%s on %s: %v", sc.name, lf.layout, err)
				}
				if r.Scenario != sc.name || r.Layout != lf.layout {
					t.Fatalf("result mislabeled: %+v", r)
				}
				if i == 0 {
					first = r
					continue
				}
				if r.Checksum != first.Checksum {
					t.Fatalf("%s checksum on %s = %#x, want %#x (from %s)",
						sc.name, lf.layout, r.Checksum, first.Checksum, first.Layout)
				}
				if r.FinalDepth != first.FinalDepth {
					t.Fatalf("%s depth on %s = %d, want %d",
						sc.name, lf.layout, r.FinalDepth, first.FinalDepth)
				}
				if r.Operations != first.Operations {
					t.Fatalf("%s ops on %s = %d, want %d",
						sc.name, lf.layout, r.Operations, first.Operations)
				}
			}
		})
	}
}

func TestRunFillReachesCapacity(t *testing.T) {
	w := BuildWorkload(testCapacity)
	r, err := RunFill(w, "row", testFactories()[0].factory)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if r.FinalDepth != testCapacity {
		t.Fatalf("final depth = %d, want %d", r.FinalDepth, testCapacity)
	}
	if r.Operations != testCapacity {
		t.Fatalf("operations = %d, want %d", r.Operations, testCapacity)
	}
	if r.Checksum == 0 {
		t.Fatalf("full book produced zero checksum")
	}
}

func TestRunEraseDrainsCompletely(t *testing.T) {
	w := BuildWorkload(testCapacity)
	r, err := RunErase(w, "column", testFactories()[1].factory)
	if err != nil {
		t.Fatalf("erase: %v", err)
	}
	if r.FinalDepth != 0 {
		t.Fatalf("final depth = %d after full drain", r.FinalDepth)
	}
	// An empty book sums to zero on both axes, which folds to zero.
	if r.Checksum != 0 {
		t.Fatalf("drained book checksum = %#x, want 0", r.Checksum)
	}
}

func TestBestWorstKeepsExtremes(t *testing.T) {
	elapsed := []int64{300, 100, 200}
	i := 0
	s, err := BestWorst(len(elapsed), func() (Result, error) {
		r := Result{Elapsed: elapsed[i] * int64(time.Millisecond), Checksum: 0xBEEF}
		i++
		return r, nil
	})
	if err != nil {
		t.Fatalf("BestWorst: %v", err)
	}
	if s.Best.Elapsed != 100*int64(time.Millisecond) {
		t.Fatalf("best = %d", s.Best.Elapsed)
	}
	if s.Worst.Elapsed != 300*int64(time.Millisecond) {
		t.Fatalf("worst = %d", s.Worst.Elapsed)
	}
	if s.Runs != 3 {
		t.Fatalf("runs = %d", s.Runs)
	}
}

func TestBestWorstRejectsChecksumDrift(t *testing.T) {
	i := 0
	_, err := BestWorst(2, func() (Result, error) {
		r := Result{Checksum: uint64(i)}
		i++
		return r, nil
	})
	if err != ErrChecksumDrift {
		t.Fatalf("err = %v, want ErrChecksumDrift", err)
	}
}

func TestNanosPerOpMilli(t *testing.T) {
	r := Result{Elapsed: 1_500_000, Operations: 1000}
	if got := r.NanosPerOpMilli(); got != 1500 {
		t.Fatalf("NanosPerOpMilli = %d, want 1500", got)
	}
	if (Result{}).NanosPerOpMilli() != 0 {
		t.Fatalf("zero-op result must report zero")
	}
}

func TestFormatReportShape(t *testing.T) {
	w := BuildWorkload(testCapacity)
	r, err := RunFill(w, "row", testFactories()[0].factory)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	out := FormatReport(testCapacity, w.Fingerprint(), []Summary{{Best: r, Worst: r, Runs: 1}})
	if len(out) == 0 {
		t.Fatalf("empty report")
	}
	for _, want := range []string{"capacity", "fingerprint", "row", "fill", "ns/op"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}
