// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: constants.go — Global Benchmark Tunables
//
// Purpose:
//   - Defines campaign-wide constants for workload sizing, seeds, and repeats.
//
// Notes:
//   - Values mirror the workloads the list implementations are tuned against
//   - Seeds are fixed so two runs (or two layouts) see identical operation
//     streams and produce comparable checksums
//
// ⚠️ No runtime logic here — all values must be compile-time resolvable
// ─────────────────────────────────────────────────────────────────────────────

package constants

// ───────────────────────────── Workload Sizing ─────────────────────────────

const (
	// DefaultCapacity is the slot count every list under test is built with.
	// 32Ki orders keeps the arena inside L2 on commodity cores while still
	// being large enough that pointer-chasing costs show up in the walk
	// scenarios.
	DefaultCapacity = 32 * 1024

	// ChurnOps is the number of interleaved insert/erase steps in the churn
	// scenario. Long enough that free-list recycling dominates over the
	// initial fill.
	ChurnOps = 200_000

	// IterateLoops is how many full front-to-back walks the iterate scenario
	// performs over a filled list.
	IterateLoops = 2000
)

// ───────────────────────────── Measurement ─────────────────────────────────

const (
	// RunsPerCase is how many times each scenario is repeated per layout.
	// Reports keep the best and worst wall time of the set.
	RunsPerCase = 5
)

// ───────────────────────────── Workload Seeds ──────────────────────────────

const (
	// FillSeed drives the order payloads generated for the fill scenario.
	FillSeed = 42

	// EraseSeed drives the positions removed by the erase scenario.
	EraseSeed = 1337

	// ChurnSeed drives the insert/erase interleave of the churn scenario.
	ChurnSeed = 7
)

// ───────────────────────────── Order Payloads ───────────────────────────────

const (
	// QtyMin and QtyMax bound the random order quantities. Small positive
	// quantities keep the checksum arithmetic far from overflow even across
	// the full churn run.
	QtyMin = 1
	QtyMax = 10
)
