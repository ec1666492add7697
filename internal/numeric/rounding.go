package numeric

import (
	"math"
	"math/big"

	"cozenage/internal/value"
)

// Floor, Ceiling, Truncate, and Round implement the four R7RS rounding
// procedures: exact integers pass through unchanged, exact rationals
// floor, ceiling and truncate via integer division on their components
// (round converts num/den to float64 and applies math.RoundToEven), and
// reals round via math.Floor/Ceil/Trunc/RoundToEven (R7RS `round` breaks
// ties to even).
func Floor(a value.Value) value.Value { return roundRat(a, math.Floor, floorRat) }
func Ceiling(a value.Value) value.Value { return roundRat(a, math.Ceil, ceilRat) }
func Truncate(a value.Value) value.Value { return roundRat(a, math.Trunc, truncRat) }
func Round(a value.Value) value.Value { return roundRat(a, math.RoundToEven, roundRatToEven) }

func roundRat(a value.Value, realOp func(float64) float64, ratOp func(num, den int64) value.Value) value.Value {
	switch t := a.(type) {
	case value.Integer, *value.BigInt:
		return a
	case value.Rational:
		return ratOp(t.Num, t.Den)
	case value.Real:
		return value.Real(realOp(float64(t)))
	default:
		return typeErr("round", a)
	}
}

func floorRat(num, den int64) value.Value {
	q := new(big.Int).Div(big.NewInt(num), big.NewInt(den)) // Div floors
	return value.NewBigInt(q)
}

func ceilRat(num, den int64) value.Value {
	n := new(big.Int).Neg(big.NewInt(num))
	q := new(big.Int).Div(n, big.NewInt(den))
	return value.NewBigInt(q.Neg(q))
}

func truncRat(num, den int64) value.Value {
	q := new(big.Int).Quo(big.NewInt(num), big.NewInt(den))
	return value.NewBigInt(q)
}

func roundRatToEven(num, den int64) value.Value {
	f := float64(num) / float64(den)
	r := math.RoundToEven(f)
	return value.NewBigInt(big.NewInt(int64(r)))
}

// Abs implements `abs`.
func Abs(a value.Value) value.Value {
	switch t := a.(type) {
	case value.Integer:
		if t < 0 {
			return Negate(a)
		}
		return a
	case *value.BigInt:
		return value.NewBigInt(new(big.Int).Abs(t.V))
	case value.Rational:
		if t.Num < 0 {
			return value.Rational{Num: -t.Num, Den: t.Den}
		}
		return a
	case value.Real:
		return value.Real(math.Abs(float64(t)))
	default:
		return typeErr("abs", a)
	}
}

// Gcd and Lcm implement `gcd`/`lcm` over exact integers of any size.
func Gcd(a, b value.Value) value.Value {
	ai, aok := requireInt(a)
	bi, bok := requireInt(b)
	if !aok || !bok {
		return typeErr("gcd", a)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(ai), new(big.Int).Abs(bi))
	return value.NewBigInt(g)
}

func Lcm(a, b value.Value) value.Value {
	ai, aok := requireInt(a)
	bi, bok := requireInt(b)
	if !aok || !bok {
		return typeErr("lcm", a)
	}
	if ai.Sign() == 0 || bi.Sign() == 0 {
		return value.Integer(0)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(ai), new(big.Int).Abs(bi))
	prod := new(big.Int).Mul(new(big.Int).Abs(ai), new(big.Int).Abs(bi))
	return value.NewBigInt(new(big.Int).Quo(prod, g))
}
