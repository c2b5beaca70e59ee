// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go — Cold-path logging helper (zero-alloc)
//
// Purpose:
//   - Logs infrequent diagnostics without introducing heap pressure.
//   - Used only in cold paths: campaign phases, sink errors, abort notices.
//
// Notes:
//   - Avoids fmt.Sprintf to minimize footprint and latency.
//   - Writes go to stderr so timing output on stdout stays machine-readable.
//
// ⚠️ Never invoke inside a timed section — use only between measurements.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import "github.com/wenalan/hft-low-latency-benchmarks/utils"

// DropError logs error messages with a custom alloc-free print strategy.
// It writes directly to stderr (file descriptor 2), bypassing any heap allocations.
//
//go:nosplit
//go:inline
//go:registerparams
func DropError(prefix string, err error) {
	if err != nil {
		msg := prefix + ": " + err.Error() + "\n"
		utils.PrintWarning(msg)
	} else {
		// No error case: print just the prefix (tagged notices).
		msg := prefix + "\n"
		utils.PrintWarning(msg)
	}
}

// DropMessage logs debug messages with zero-allocation print strategy.
// Used for cold-path diagnostics: phase boundaries, fingerprints, abort notices.
//
//go:nosplit
//go:inline
//go:registerparams
func DropMessage(prefix, message string) {
	msg := prefix + ": " + message + "\n"
	utils.PrintWarning(msg)
}
