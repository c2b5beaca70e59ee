// ════════════════════════════════════════════════════════════════════════════════════════════════
// 📋 DETERMINISTIC WORKLOAD GENERATION
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Component: Benchmark Workload Builder
//
// Description:
//   Pre-generates every operation a scenario will perform so the timed sections touch no RNG and
//   allocate nothing. The same Workload value is replayed against each book implementation, which
//   is what makes their checksums comparable: identical operation streams in, identical state out.
//
// Determinism:
//   - Fixed seeds per stream (fill, erase, churn)
//   - Erase and churn positions are pre-clamped against the simulated depth at that step
//   - Fingerprint() hashes the full encoded stream so a report can prove two runs saw the same work
// ════════════════════════════════════════════════════════════════════════════════════════════════

package bench

import (
	"encoding/binary"
	"math/rand"

	"golang.org/x/crypto/sha3"

	"github.com/wenalan/hft-low-latency-benchmarks/book"
	"github.com/wenalan/hft-low-latency-benchmarks/constants"
	"github.com/wenalan/hft-low-latency-benchmarks/fixeddouble"
	"github.com/wenalan/hft-low-latency-benchmarks/utils"
)

// ChurnStep is one pre-decided operation of the churn scenario. Insert steps
// carry the order to add; erase steps carry the position to cancel, already
// clamped against the depth the book will have at that step.
type ChurnStep struct {
	Insert bool
	Pos    int
	Order  book.Order
}

// Workload holds every pre-generated operation stream for one campaign.
type Workload struct {
	Capacity     int
	FillOrders   []book.Order
	ErasePos     []int
	ChurnSteps   []ChurnStep
	IterateLoops int
}

// BuildWorkload generates the full operation set for the given capacity.
// Same capacity, same workload, always.
func BuildWorkload(capacity int) *Workload {
	w := &Workload{
		Capacity:     capacity,
		IterateLoops: constants.IterateLoops,
	}

	// Fill stream: one order per slot, sequential IDs, bounded quantities.
	fillRNG := rand.New(rand.NewSource(constants.FillSeed))
	w.FillOrders = make([]book.Order, capacity)
	for i := range w.FillOrders {
		w.FillOrders[i] = randomOrder(fillRNG, uint64(i))
	}

	// Erase stream: drains a full book one random position at a time. The
	// position at step k is drawn against the k-shrunken depth.
	eraseRNG := rand.New(rand.NewSource(constants.EraseSeed))
	w.ErasePos = make([]int, capacity)
	for k := 0; k < capacity; k++ {
		remaining := capacity - k
		w.ErasePos[k] = eraseRNG.Intn(remaining)
	}

	// Churn stream: interleaved inserts and erases against a simulated depth.
	// Bounds force an insert on empty and an erase on full, so replaying the
	// stream can never trip a capacity or empty error.
	churnRNG := rand.New(rand.NewSource(constants.ChurnSeed))
	w.ChurnSteps = make([]ChurnStep, constants.ChurnOps)
	depth := 0
	var nextID uint64 = uint64(capacity)
	for k := range w.ChurnSteps {
		insert := depth == 0 || (depth < capacity && churnRNG.Intn(2) == 0)
		if insert {
			w.ChurnSteps[k] = ChurnStep{Insert: true, Order: randomOrder(churnRNG, nextID)}
			nextID++
			depth++
		} else {
			w.ChurnSteps[k] = ChurnStep{Pos: churnRNG.Intn(depth)}
			depth--
		}
	}

	return w
}

// randomOrder draws one order payload. Notional is qty scaled by a per-order
// price in thousandths, kept small so long sums stay exact.
func randomOrder(rng *rand.Rand, id uint64) book.Order {
	qty := int32(constants.QtyMin + rng.Intn(constants.QtyMax-constants.QtyMin+1))
	priceRaw := int64(1000 + rng.Intn(9000)) // 1.000 .. 9.999
	return book.Order{
		ID:       id,
		Qty:      qty,
		Notional: fixeddouble.FromRaw(priceRaw).MulInt(int64(qty)),
	}
}

// Fingerprint hashes the encoded operation streams and returns a short hex
// tag. Two campaigns with equal fingerprints replayed identical work.
func (w *Workload) Fingerprint() string {
	h := sha3.New256()
	var buf [8]byte

	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	put(uint64(w.Capacity))
	put(uint64(w.IterateLoops))
	for _, o := range w.FillOrders {
		put(o.ID)
		put(uint64(uint32(o.Qty)))
		put(uint64(o.Notional.Raw()))
	}
	for _, p := range w.ErasePos {
		put(uint64(p))
	}
	for _, s := range w.ChurnSteps {
		if s.Insert {
			put(1)
			put(s.Order.ID)
			put(uint64(uint32(s.Order.Qty)))
			put(uint64(s.Order.Notional.Raw()))
		} else {
			put(0)
			put(uint64(s.Pos))
		}
	}

	sum := h.Sum(nil)
	return utils.B2s(utils.Hex(nil, sum[:8]))
}
