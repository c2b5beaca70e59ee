// report.go — Plain-text campaign report
//
// Renders the measurement table to stdout with the append formatters from
// utils, so report generation itself allocates almost nothing and never
// drags fmt into the binary's hot set. Diagnostics go to stderr; this is the
// only thing written to stdout.

package bench

import (
	"strconv"

	"github.com/wenalan/hft-low-latency-benchmarks/utils"
)

const (
	colLayout   = 8
	colScenario = 9
	colOps      = 12
	colMillis   = 12
	colNanos    = 12
	colChecksum = 18
)

// FormatReport renders the full campaign table. Summaries are printed in the
// order given; the caller groups them by scenario.
func FormatReport(capacity int, fingerprint string, summaries []Summary) string {
	buf := make([]byte, 0, 4096)

	buf = append(buf, "fixed-capacity list benchmark\n"...)
	buf = append(buf, "capacity    "...)
	buf = utils.Itoa(buf, int64(capacity))
	buf = append(buf, "\nfingerprint "...)
	buf = append(buf, fingerprint...)
	buf = append(buf, "\n\n"...)

	buf = utils.PadLeft(buf, "layout", colLayout)
	buf = utils.PadLeft(buf, "scenario", colScenario)
	buf = utils.PadLeft(buf, "ops", colOps)
	buf = utils.PadLeft(buf, "best ms", colMillis)
	buf = utils.PadLeft(buf, "worst ms", colMillis)
	buf = utils.PadLeft(buf, "ns/op", colNanos)
	buf = utils.PadLeft(buf, "checksum", colChecksum)
	buf = append(buf, '\n')

	for _, s := range summaries {
		buf = formatRow(buf, s)
	}

	return utils.B2s(buf)
}

func formatRow(buf []byte, s Summary) []byte {
	buf = utils.PadLeft(buf, s.Best.Layout, colLayout)
	buf = utils.PadLeft(buf, s.Best.Scenario, colScenario)

	ops := utils.Itoa(nil, int64(s.Best.Operations))
	buf = utils.PadLeft(buf, utils.B2s(ops), colOps)

	// Elapsed nanoseconds rendered as milliseconds with three decimals:
	// ns/1000 is already in thousandths of a millisecond.
	best := utils.Ftoa3(nil, s.Best.Elapsed/1000)
	buf = utils.PadLeft(buf, utils.B2s(best), colMillis)
	worst := utils.Ftoa3(nil, s.Worst.Elapsed/1000)
	buf = utils.PadLeft(buf, utils.B2s(worst), colMillis)

	nanos := utils.Ftoa3(nil, s.Best.NanosPerOpMilli())
	buf = utils.PadLeft(buf, utils.B2s(nanos), colNanos)

	buf = utils.PadLeft(buf, strconv.FormatUint(s.Best.Checksum, 16), colChecksum)
	return append(buf, '\n')
}
