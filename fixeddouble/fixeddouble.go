// ============================================================================
// FIXEDDOUBLE: FIXED-DECIMAL VALUE TYPE FOR PRICE ARITHMETIC
// ============================================================================
//
// Signed fixed-decimal number with three fractional digits, stored as an
// int64 scaled by 1000. Keeps arithmetic on currency-like values exact and
// predictable where float64 rounding drifts.
//
// Arithmetic contract:
//   - Add/Sub are plain two's-complement operations and wrap on overflow
//   - Mul/Div saturate to the representable range via 128-bit intermediates
//   - Division by zero is a returned error, never a panic
//   - Comparisons operate on the raw signed representation
//
// The type is a value: copy it, compare it with ==, pass it across
// goroutines freely.

package fixeddouble

import (
	"errors"
	"math"
	"math/bits"
	"strconv"
)

// ============================================================================
// ERROR DEFINITIONS
// ============================================================================

var (
	// ErrNotFinite is returned by FromFloat for NaN or ±Inf inputs.
	ErrNotFinite = errors.New("fixeddouble: value is NaN or infinite")

	// ErrDivideByZero is returned by Div and DivInt for a zero divisor.
	ErrDivideByZero = errors.New("fixeddouble: divide by zero")
)

// ============================================================================
// REPRESENTATION
// ============================================================================

// Scale is the fixed denominator: one unit of the raw representation is
// 1/Scale of the represented value.
const Scale = 1000

const (
	maxRaw = math.MaxInt64
	minRaw = math.MinInt64
)

// FixedDouble holds a value * Scale in a single signed 64-bit word.
// The zero value represents 0.000.
type FixedDouble struct {
	raw int64
}

// ============================================================================
// CONSTRUCTION
// ============================================================================

// FromRaw reinterprets a pre-scaled integer as a FixedDouble.
func FromRaw(raw int64) FixedDouble { return FixedDouble{raw: raw} }

// FromInt converts a whole number, saturating at the representable range.
func FromInt(v int64) FixedDouble {
	if v > maxRaw/Scale {
		return FixedDouble{raw: maxRaw}
	}
	if v < minRaw/Scale {
		return FixedDouble{raw: minRaw}
	}
	return FixedDouble{raw: v * Scale}
}

// FromFloat converts a float64, rounding half away from zero to the nearest
// thousandth and saturating at the representable range. NaN and ±Inf are
// rejected with ErrNotFinite.
func FromFloat(v float64) (FixedDouble, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FixedDouble{}, ErrNotFinite
	}
	scaled := math.Round(v * Scale)
	if scaled >= float64(maxRaw) {
		return FixedDouble{raw: maxRaw}, nil
	}
	if scaled <= float64(minRaw) {
		return FixedDouble{raw: minRaw}, nil
	}
	return FixedDouble{raw: int64(scaled)}, nil
}

// Zero returns 0.000.
func Zero() FixedDouble { return FixedDouble{} }

// One returns 1.000.
func One() FixedDouble { return FixedDouble{raw: Scale} }

// MaxValue returns the largest representable value as a float64.
func MaxValue() float64 { return float64(maxRaw) / Scale }

// MinValue returns the smallest representable value as a float64.
func MinValue() float64 { return float64(minRaw) / Scale }

// ============================================================================
// ACCESSORS
// ============================================================================

// Raw returns the underlying scaled integer.
func (f FixedDouble) Raw() int64 { return f.raw }

// Int64 truncates toward zero to a whole number.
func (f FixedDouble) Int64() int64 { return f.raw / Scale }

// Float64 converts to float64. Exact for all values small enough that the
// raw representation fits a float64 mantissa.
func (f FixedDouble) Float64() float64 { return float64(f.raw) / Scale }

// String renders the exact decimal with three fractional digits.
func (f FixedDouble) String() string {
	u := absU64(f.raw)
	var buf [24]byte
	b := buf[:0]
	if f.raw < 0 {
		b = append(b, '-')
	}
	b = strconv.AppendUint(b, u/Scale, 10)
	b = append(b, '.')
	frac := u % Scale
	b = append(b, byte('0'+frac/100), byte('0'+frac/10%10), byte('0'+frac%10))
	return string(b)
}

// ============================================================================
// ARITHMETIC
// ============================================================================

// Add returns f+other. Overflow wraps.
func (f FixedDouble) Add(other FixedDouble) FixedDouble {
	return FixedDouble{raw: f.raw + other.raw}
}

// Sub returns f-other. Overflow wraps.
func (f FixedDouble) Sub(other FixedDouble) FixedDouble {
	return FixedDouble{raw: f.raw - other.raw}
}

// Mul returns f*other, saturating. The full 128-bit product is divided back
// down by Scale before clamping, so intermediate overflow cannot occur.
func (f FixedDouble) Mul(other FixedDouble) FixedDouble {
	neg := (f.raw < 0) != (other.raw < 0)
	hi, lo := bits.Mul64(absU64(f.raw), absU64(other.raw))
	if hi >= Scale {
		// Quotient would exceed 64 bits; already past the signed range.
		return FixedDouble{raw: clampMagnitude(1<<63, neg)}
	}
	q, _ := bits.Div64(hi, lo, Scale)
	return FixedDouble{raw: clampMagnitude(q, neg)}
}

// MulInt returns f*k, saturating.
func (f FixedDouble) MulInt(k int64) FixedDouble {
	neg := (f.raw < 0) != (k < 0)
	hi, lo := bits.Mul64(absU64(f.raw), absU64(k))
	if hi != 0 {
		return FixedDouble{raw: clampMagnitude(1<<63, neg)}
	}
	return FixedDouble{raw: clampMagnitude(lo, neg)}
}

// Div returns f/other, saturating, with the quotient scaled back up so the
// result carries three fractional digits. A zero divisor is an error.
func (f FixedDouble) Div(other FixedDouble) (FixedDouble, error) {
	if other.raw == 0 {
		return FixedDouble{}, ErrDivideByZero
	}
	neg := (f.raw < 0) != (other.raw < 0)
	hi, lo := bits.Mul64(absU64(f.raw), Scale)
	den := absU64(other.raw)
	if hi >= den {
		// Quotient would exceed 64 bits.
		return FixedDouble{raw: clampMagnitude(1<<63, neg)}, nil
	}
	q, _ := bits.Div64(hi, lo, den)
	return FixedDouble{raw: clampMagnitude(q, neg)}, nil
}

// DivInt returns f/k with the raw representation divided directly, matching
// integer division semantics (truncation toward zero).
func (f FixedDouble) DivInt(k int64) (FixedDouble, error) {
	if k == 0 {
		return FixedDouble{}, ErrDivideByZero
	}
	if f.raw == minRaw && k == -1 {
		return FixedDouble{raw: maxRaw}, nil
	}
	return FixedDouble{raw: f.raw / k}, nil
}

// ============================================================================
// COMPARISON
// ============================================================================

// Cmp returns -1, 0, or +1 by the signed ordering of the raw representation.
func (f FixedDouble) Cmp(other FixedDouble) int {
	switch {
	case f.raw < other.raw:
		return -1
	case f.raw > other.raw:
		return 1
	default:
		return 0
	}
}

// Less reports f < other.
func (f FixedDouble) Less(other FixedDouble) bool { return f.raw < other.raw }

// Equal reports f == other.
func (f FixedDouble) Equal(other FixedDouble) bool { return f.raw == other.raw }

// ============================================================================
// INTERNAL HELPERS
// ============================================================================

// absU64 returns |v| as a uint64; correct for MinInt64.
//
//go:nosplit
//go:inline
func absU64(v int64) uint64 {
	u := uint64(v)
	if v < 0 {
		u = -u
	}
	return u
}

// clampMagnitude folds an unsigned magnitude back into the signed range,
// saturating at MaxInt64 / MinInt64.
//
//go:nosplit
//go:inline
func clampMagnitude(q uint64, neg bool) int64 {
	if neg {
		if q >= 1<<63 {
			return minRaw
		}
		return -int64(q)
	}
	if q >= 1<<63 {
		return maxRaw
	}
	return int64(q)
}
