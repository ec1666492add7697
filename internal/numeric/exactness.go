package numeric

import (
	"math/big"

	"cozenage/internal/value"
)

// ToExact implements `inexact->exact`/`exact`: converts an inexact real
// to the nearest exact rational, leaving already-exact values untouched.
func ToExact(v value.Value) value.Value {
	switch t := v.(type) {
	case value.Real:
		return realToExact(float64(t))
	case *value.Complex:
		return &value.Complex{Re: ToExact(t.Re), Im: ToExact(t.Im)}
	default:
		return v
	}
}

// ToInexact implements `exact->inexact`/`inexact`: converts an exact
// number to a Real, leaving already-inexact values untouched.
func ToInexact(v value.Value) value.Value {
	switch t := v.(type) {
	case value.Integer, *value.BigInt, value.Rational:
		return value.Real(asFloat(v))
	case *value.Complex:
		return &value.Complex{Re: ToInexact(t.Re), Im: ToInexact(t.Im)}
	default:
		return v
	}
}

// realToExact converts a float64 to an exact rational via big.Rat, which
// recovers the binary fraction the float actually represents.
func realToExact(f float64) value.Value {
	r := new(big.Rat).SetFloat64(f)
	if r == nil {
		// NaN or Inf: no exact representation; return as-is via Real wrapper
		// is not "exact" by definition, so fall back to 0 per R7RS laxity
		// on this edge case.
		return value.Integer(0)
	}
	num := r.Num()
	den := r.Denom()
	if num.IsInt64() && den.IsInt64() {
		return NewRational(num.Int64(), den.Int64())
	}
	if den.Cmp(big.NewInt(1)) == 0 {
		return value.NewBigInt(num)
	}
	// Denominator doesn't fit int64 (subnormal float): truncate to the
	// nearest whole number rather than widen Rational to big.Int fields.
	return value.NewBigInt(new(big.Int).Quo(num, den))
}
