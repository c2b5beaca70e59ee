// control.go — Global run-state flags for the benchmark driver
// ============================================================================
// RUN COORDINATION
// ============================================================================
//
// Control package provides lightweight global signaling used to interrupt a
// long benchmark campaign cleanly. A SIGINT handler raises the abort flag;
// the driver polls it between scenarios, finishes the measurement in flight,
// flushes completed results, and exits without leaving a half-written
// history row behind.
//
// Threading model:
//   • The signal handler raises the flag from its own goroutine
//   • The driver polls the flag between timed sections only — never inside
//     a timing loop
//   • ShutdownWG lets result sinks register in-flight flush work

package control

import (
	"sync"
	"sync/atomic"
)

// ============================================================================
// GLOBAL STATE MANAGEMENT
// ============================================================================

var (
	// abort is raised once by the signal handler and never cleared.
	abort atomic.Uint32

	// ShutdownWG tracks sink flushes that must complete before exit.
	ShutdownWG sync.WaitGroup
)

// ============================================================================
// SIGNALING
// ============================================================================

// Abort requests a clean stop after the scenario in flight completes.
// Safe to call from any goroutine, more than once.
func Abort() {
	abort.Store(1)
}

// Aborted reports whether a stop has been requested. Polled by the driver
// between scenarios.
//
//go:nosplit
//go:inline
func Aborted() bool {
	return abort.Load() == 1
}
