package numeric

import (
	"math"
	"math/big"

	"cozenage/internal/value"
)

// requireInt coerces v to a *big.Int if it is an exact integer (Integer
// or BigInt), returning ok=false otherwise so callers can raise TYPE_ERR.
func requireInt(v value.Value) (*big.Int, bool) {
	switch t := v.(type) {
	case value.Integer:
		return big.NewInt(int64(t)), true
	case *value.BigInt:
		return t.V, true
	default:
		return nil, false
	}
}

// Quotient truncates toward zero (`quotient`).
func Quotient(a, b value.Value) value.Value {
	ai, aok := requireInt(a)
	bi, bok := requireInt(b)
	if !aok {
		return typeErr("quotient", a)
	}
	if !bok {
		return typeErr("quotient", b)
	}
	if bi.Sign() == 0 {
		return value.NewError(value.ValueErr, "quotient: division by zero")
	}
	q := new(big.Int).Quo(ai, bi)
	return value.NewBigInt(q)
}

// Remainder takes the sign of the dividend (`remainder`).
func Remainder(a, b value.Value) value.Value {
	ai, aok := requireInt(a)
	bi, bok := requireInt(b)
	if !aok {
		return typeErr("remainder", a)
	}
	if !bok {
		return typeErr("remainder", b)
	}
	if bi.Sign() == 0 {
		return value.NewError(value.ValueErr, "remainder: division by zero")
	}
	r := new(big.Int).Rem(ai, bi)
	return value.NewBigInt(r)
}

// Modulo takes the sign of the divisor (`modulo`).
func Modulo(a, b value.Value) value.Value {
	ai, aok := requireInt(a)
	bi, bok := requireInt(b)
	if !aok {
		return typeErr("modulo", a)
	}
	if !bok {
		return typeErr("modulo", b)
	}
	if bi.Sign() == 0 {
		return value.NewError(value.ValueErr, "modulo: division by zero")
	}
	m := new(big.Int).Mod(ai, bi) // Go's Mod is Euclidean (always >= 0)
	if m.Sign() != 0 && bi.Sign() < 0 {
		m.Add(m, bi)
	}
	return value.NewBigInt(m)
}

// FloorDiv returns (quotient, remainder) such that n = q*d + r and
// q = floor(n/d), per `floor/`.
func FloorDiv(n, d value.Value) (value.Value, value.Value) {
	ni, nok := requireInt(n)
	di, dok := requireInt(d)
	if !nok {
		e := typeErr("floor/", n)
		return e, e
	}
	if !dok {
		e := typeErr("floor/", d)
		return e, e
	}
	if di.Sign() == 0 {
		e := value.NewError(value.ValueErr, "floor/: division by zero")
		return e, e
	}
	q := new(big.Int)
	r := new(big.Int)
	q.DivMod(ni, di, r) // Euclidean: 0 <= r < |di|
	// Adjust to floor-division semantics for negative divisors.
	if di.Sign() < 0 && r.Sign() != 0 {
		q.Sub(q, big.NewInt(1))
		r.Add(r, di)
	}
	return value.NewBigInt(q), value.NewBigInt(r)
}

// ExactIntegerSqrt returns (s, r) such that k = s*s + r and (s+1)^2 > k,
// for a non-negative exact integer k.
func ExactIntegerSqrt(k value.Value) (value.Value, value.Value) {
	ki, ok := requireInt(k)
	if !ok || ki.Sign() < 0 {
		e := value.NewError(value.ValueErr, "exact-integer-sqrt: expected a non-negative integer")
		return e, e
	}
	s := new(big.Int).Sqrt(ki)
	r := new(big.Int).Sub(ki, new(big.Int).Mul(s, s))
	return value.NewBigInt(s), value.NewBigInt(r)
}

// Sqrt implements `sqrt`: exact integer result for a perfect square
// non-negative exact integer, inexact real for a non-negative inexact or
// non-perfect-square operand, and a pure-imaginary complex for a
// negative real.
func Sqrt(a value.Value) value.Value {
	switch t := a.(type) {
	case value.Integer, *value.BigInt:
		ai, _ := requireInt(a)
		if ai.Sign() < 0 {
			s := new(big.Int).Sqrt(new(big.Int).Neg(ai))
			if new(big.Int).Mul(s, s).Cmp(new(big.Int).Neg(ai)) == 0 {
				return &value.Complex{Re: value.Integer(0), Im: value.NewBigInt(s)}
			}
			f := math.Sqrt(-asFloat(a))
			return &value.Complex{Re: value.Integer(0), Im: value.Real(f)}
		}
		s := new(big.Int).Sqrt(ai)
		if new(big.Int).Mul(s, s).Cmp(ai) == 0 {
			return value.NewBigInt(s)
		}
		return value.Real(math.Sqrt(asFloat(a)))
	case value.Rational:
		ns, nExact := exactSqrtInt64(t.Num)
		ds, dExact := exactSqrtInt64(t.Den)
		if t.Num >= 0 && nExact && dExact {
			return NewRational(ns, ds)
		}
		return value.Real(math.Sqrt(asFloat(a)))
	case value.Real:
		if t < 0 {
			return &value.Complex{Re: value.Real(0), Im: value.Real(math.Sqrt(float64(-t)))}
		}
		return value.Real(math.Sqrt(float64(t)))
	default:
		return typeErr("sqrt", a)
	}
}

func exactSqrtInt64(n int64) (int64, bool) {
	if n < 0 {
		return 0, false
	}
	s := int64(math.Sqrt(float64(n)))
	for s*s > n {
		s--
	}
	for (s+1)*(s+1) <= n {
		s++
	}
	return s, s*s == n
}

// Expt implements `expt` for an integer exponent: repeated squaring,
// exact reciprocal rational for a negative exponent on a positive
// exact base, and a complex result for a negative base with a
// non-integer exponent.
func Expt(base, exp value.Value) value.Value {
	if ei, ok := exp.(value.Integer); ok {
		return exptInt(base, int64(ei))
	}
	if eb, ok := requireInt(exp); ok && eb.IsInt64() {
		return exptInt(base, eb.Int64())
	}
	// Non-integer exponent.
	bf := asFloat(base)
	ef := asFloat(exp)
	if bf < 0 {
		// Negative base, non-integer exponent: complex result via polar form.
		mag := math.Pow(-bf, ef)
		theta := math.Pi * ef
		return &value.Complex{Re: value.Real(mag * math.Cos(theta)), Im: value.Real(mag * math.Sin(theta))}
	}
	return value.Real(math.Pow(bf, ef))
}

func exptInt(base value.Value, e int64) value.Value {
	if e == 0 {
		if value.IsExact(base) {
			return value.Integer(1)
		}
		return value.Real(1)
	}
	if e < 0 {
		pos := exptInt(base, -e)
		if value.IsExact(base) {
			return Reciprocal(pos)
		}
		return value.Real(1 / asFloat(pos))
	}
	if bi, ok := requireInt(base); ok {
		r := new(big.Int).Exp(bi, big.NewInt(e), nil)
		return value.NewBigInt(r)
	}
	if br, ok := base.(value.Rational); ok {
		num := new(big.Int).Exp(big.NewInt(br.Num), big.NewInt(e), nil)
		den := new(big.Int).Exp(big.NewInt(br.Den), big.NewInt(e), nil)
		if num.IsInt64() && den.IsInt64() {
			return NewRational(num.Int64(), den.Int64())
		}
		f, _ := new(big.Float).Quo(new(big.Float).SetInt(num), new(big.Float).SetInt(den)).Float64()
		return value.Real(f)
	}
	// Real or Complex base.
	var result value.Value = value.Integer(1)
	sq := base
	for e > 0 {
		if e&1 == 1 {
			result = Mul(result, sq)
		}
		e >>= 1
		if e > 0 {
			sq = Mul(sq, sq)
		}
	}
	return result
}
