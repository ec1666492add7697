// Package numeric implements the numeric tower's arithmetic: exactness
// contagion, machine-to-bignum promotion, rational reduction, and the
// arithmetic contracts enumerated in the spec (§4.1). It operates on
// value.Value and returns value.Value, reporting domain/type errors as
// *value.ErrorV rather than Go errors, matching the evaluator's
// error-as-value discipline.
package numeric

import (
	"math/big"

	"github.com/remyoudompheng/bigfft"
	"modernc.org/mathutil"

	"cozenage/internal/value"
)

// bigfftThreshold is the operand bit length above which bignum
// multiplication is delegated to bigfft's FFT-based multiplier instead of
// math/big's built-in (quadratic for its largest sizes) Mul. Chosen well
// above the sizes math/big's own Karatsuba/Toom-3 thresholds already
// handle well, so bigfft only engages when both operands of a bignum
// multiplication exceed 65536 bits. `expt` computes integer powers with
// big.Int.Exp and does not go through bigMul.
const bigfftThreshold = 1 << 16

func bigMul(a, b *big.Int) *big.Int {
	if a.BitLen() > bigfftThreshold && b.BitLen() > bigfftThreshold {
		return bigfft.Mul(a, b)
	}
	return new(big.Int).Mul(a, b)
}

// gcdInt64 reduces a rational's numerator/denominator via
// modernc.org/mathutil's GCD helper rather than a hand-rolled Euclidean
// loop.
func gcdInt64(a, b int64) int64 {
	if a == 0 {
		return abs64(b)
	}
	if b == 0 {
		return abs64(a)
	}
	return mathutil.GCD(abs64(a), abs64(b))
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// NewRational constructs a Rational in lowest terms with a positive
// denominator, demoting to Integer when the denominator reduces to 1.
func NewRational(num, den int64) value.Value {
	if den == 0 {
		return value.NewError(value.ValueErr, "division by zero")
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcdInt64(num, den)
	if g > 1 {
		num /= g
		den /= g
	}
	if den == 1 {
		return value.Integer(num)
	}
	return value.Rational{Num: num, Den: den}
}

// rank orders the promotion ladder: Integer/BigInt < Rational < Real < Complex.
func rank(v value.Value) int {
	switch v.(type) {
	case value.Integer, *value.BigInt:
		return 0
	case value.Rational:
		return 1
	case value.Real:
		return 2
	case *value.Complex:
		return 3
	default:
		return -1
	}
}

func isInt(v value.Value) bool {
	switch v.(type) {
	case value.Integer, *value.BigInt:
		return true
	default:
		return false
	}
}

func asBig(v value.Value) *big.Int {
	switch t := v.(type) {
	case value.Integer:
		return big.NewInt(int64(t))
	case *value.BigInt:
		return t.V
	}
	return nil
}

func asFloat(v value.Value) float64 {
	switch t := v.(type) {
	case value.Integer:
		return float64(t)
	case *value.BigInt:
		f, _ := new(big.Float).SetInt(t.V).Float64()
		return f
	case value.Rational:
		return float64(t.Num) / float64(t.Den)
	case value.Real:
		return float64(t)
	}
	return 0
}

func asRat(v value.Value) (num, den int64, ok bool) {
	switch t := v.(type) {
	case value.Integer:
		return int64(t), 1, true
	case value.Rational:
		return t.Num, t.Den, true
	case *value.BigInt:
		if t.V.IsInt64() {
			return t.V.Int64(), 1, true
		}
	}
	return 0, 0, false
}

func typeErr(what string, v value.Value) value.Value {
	return value.NewError(value.TypeErr, "expected a number for "+what+", got "+TypeName(v))
}

// TypeName returns a short, printer-facing name for v's type, used in
// this package's type-error messages.
func TypeName(v value.Value) string {
	switch v.(type) {
	case value.NilValue:
		return "()"
	case value.Boolean:
		return "boolean"
	case value.Character:
		return "character"
	case value.Integer, *value.BigInt:
		return "integer"
	case value.Rational:
		return "rational"
	case value.Real:
		return "real"
	case *value.Complex:
		return "complex"
	case *value.String:
		return "string"
	case *value.Symbol:
		return "symbol"
	case *value.Pair:
		return "pair"
	case *value.Vector:
		return "vector"
	case *value.Bytevector:
		return "bytevector"
	case *value.Procedure:
		return "procedure"
	case *value.Port:
		return "port"
	case *value.Promise:
		return "promise"
	case *value.ErrorV:
		return "error"
	default:
		return "value"
	}
}

// ---------------------------------------------------------------------
// Binary arithmetic
// ---------------------------------------------------------------------

// Add implements `+` for two operands (the builtin folds over arguments).
func Add(a, b value.Value) value.Value {
	return binaryOp(a, b, "+",
		func(x, y int64) value.Value { return addInt64(x, y) },
		func(x, y *big.Int) value.Value { return value.NewBigInt(new(big.Int).Add(x, y)) },
		func(xn, xd, yn, yd int64) value.Value { return NewRational(xn*yd+yn*xd, xd*yd) },
		func(x, y float64) value.Value { return value.Real(x + y) },
	)
}

// Sub implements binary `-`.
func Sub(a, b value.Value) value.Value {
	return binaryOp(a, b, "-",
		func(x, y int64) value.Value { return subInt64(x, y) },
		func(x, y *big.Int) value.Value { return value.NewBigInt(new(big.Int).Sub(x, y)) },
		func(xn, xd, yn, yd int64) value.Value { return NewRational(xn*yd-yn*xd, xd*yd) },
		func(x, y float64) value.Value { return value.Real(x - y) },
	)
}

// Mul implements binary `*`.
func Mul(a, b value.Value) value.Value {
	return binaryOp(a, b, "*",
		func(x, y int64) value.Value { return mulInt64(x, y) },
		func(x, y *big.Int) value.Value { return value.NewBigInt(bigMul(x, y)) },
		func(xn, xd, yn, yd int64) value.Value { return NewRational(xn*yn, xd*yd) },
		func(x, y float64) value.Value { return value.Real(x * y) },
	)
}

// Div implements binary `/`.
func Div(a, b value.Value) value.Value {
	if isInt(a) && isInt(b) {
		if r, ok := tryExactIntDiv(a, b); ok {
			return r
		}
	}
	if (rank(a) <= 1 && rank(b) <= 1) || isInt(a) || isInt(b) {
		if r, ok := tryExactDiv(a, b); ok {
			return r
		}
	}
	if _, ok := a.(*value.Complex); ok {
		return complexDiv(a, b)
	}
	if _, ok := b.(*value.Complex); ok {
		return complexDiv(a, b)
	}
	bf := asFloat(b)
	if bf == 0 {
		if IsExact(b) {
			return value.NewError(value.ValueErr, "division by zero")
		}
		// 0.0/0.0 (or x/0.0) yields NaN/Inf, not an error, per spec.
	}
	return value.Real(asFloat(a) / bf)
}

func tryExactDiv(a, b value.Value) (value.Value, bool) {
	an, ad, aok := asRat(a)
	bn, bd, bok := asRat(b)
	if !aok || !bok {
		return nil, false
	}
	if bn == 0 {
		return value.NewError(value.ValueErr, "division by zero"), true
	}
	// (an/ad) / (bn/bd) = (an*bd) / (ad*bn)
	return NewRational(an*bd, ad*bn), true
}

// tryExactIntDiv divides two exact integers via big.Int arithmetic, so a
// *BigInt operand outside int64 range (where asRat's fast path gives up)
// still divides exactly when the quotient is whole. A non-exact division
// between operands that don't both fit int64 falls through to
// tryExactDiv/the float path below, since Rational only holds int64 terms.
func tryExactIntDiv(a, b value.Value) (value.Value, bool) {
	bg := asBig(b)
	if bg.Sign() == 0 {
		return value.NewError(value.ValueErr, "division by zero"), true
	}
	ag := asBig(a)
	q, rem := new(big.Int).QuoRem(ag, bg, new(big.Int))
	if rem.Sign() == 0 {
		return value.NewBigInt(q), true
	}
	return nil, false
}

// IsExact re-exports value.IsExact for convenience within this package's
// call sites above.
func IsExact(v value.Value) bool { return value.IsExact(v) }

func complexDiv(a, b value.Value) value.Value {
	ac := toComplexParts(a)
	bc := toComplexParts(b)
	// a/b = (a * conj(b)) / (b * conj(b)), conj(b)=(bre,-bim)
	conjRe, conjIm := bc[0], Negate(bc[1])
	num := complexMul(ac[0], ac[1], conjRe, conjIm)
	denom := Add(Mul(bc[0], bc[0]), Mul(bc[1], bc[1]))
	return value.Value(&value.Complex{Re: Div(num[0], denom), Im: Div(num[1], denom)})
}

func toComplexParts(v value.Value) [2]value.Value {
	if c, ok := v.(*value.Complex); ok {
		return [2]value.Value{c.Re, c.Im}
	}
	return [2]value.Value{v, value.Integer(0)}
}

func complexMul(are, aim, bre, bim value.Value) [2]value.Value {
	// (are+aim*i)(bre+bim*i) = (are*bre - aim*bim) + (are*bim + aim*bre)i
	re := Sub(Mul(are, bre), Mul(aim, bim))
	im := Add(Mul(are, bim), Mul(aim, bre))
	return [2]value.Value{re, im}
}

// Negate implements unary `-`.
func Negate(a value.Value) value.Value {
	switch t := a.(type) {
	case value.Integer:
		if t == -9223372036854775808 { // overflow of int64 negation
			return value.NewBigInt(new(big.Int).Neg(big.NewInt(int64(t))))
		}
		return value.Integer(-t)
	case *value.BigInt:
		return value.NewBigInt(new(big.Int).Neg(t.V))
	case value.Rational:
		return value.Rational{Num: -t.Num, Den: t.Den}
	case value.Real:
		return value.Real(-t)
	case *value.Complex:
		return &value.Complex{Re: Negate(t.Re), Im: Negate(t.Im)}
	default:
		return typeErr("negation", a)
	}
}

// Reciprocal implements unary `/`.
func Reciprocal(a value.Value) value.Value {
	return Div(value.Integer(1), a)
}

// ---------------------------------------------------------------------
// Machine-int overflow checks (64-bit, promote to BigInt on overflow)
// ---------------------------------------------------------------------

func addInt64(x, y int64) value.Value {
	sum := x + y
	if (sum > x) == (y > 0) || y == 0 {
		return value.Integer(sum)
	}
	return value.NewBigInt(new(big.Int).Add(big.NewInt(x), big.NewInt(y)))
}

func subInt64(x, y int64) value.Value {
	diff := x - y
	if (diff < x) == (y > 0) || y == 0 {
		return value.Integer(diff)
	}
	return value.NewBigInt(new(big.Int).Sub(big.NewInt(x), big.NewInt(y)))
}

func mulInt64(x, y int64) value.Value {
	if x == 0 || y == 0 {
		return value.Integer(0)
	}
	p := x * y
	if p/y == x && !(x == -1 && y == -9223372036854775808) {
		return value.Integer(p)
	}
	return value.NewBigInt(bigMul(big.NewInt(x), big.NewInt(y)))
}

// ---------------------------------------------------------------------
// Shared binary-op dispatcher: promotes both operands to the narrowest
// common rank, then invokes the matching kernel.
// ---------------------------------------------------------------------

func binaryOp(
	a, b value.Value,
	op string,
	intOp func(x, y int64) value.Value,
	bigOp func(x, y *big.Int) value.Value,
	ratOp func(xn, xd, yn, yd int64) value.Value,
	realOp func(x, y float64) value.Value,
) value.Value {
	if !value.IsNumber(a) {
		return typeErr(op, a)
	}
	if !value.IsNumber(b) {
		return typeErr(op, b)
	}
	if ac, ok := a.(*value.Complex); ok {
		bc := toComplexParts(b)
		switch op {
		case "+":
			return &value.Complex{Re: Add(ac.Re, bc[0]), Im: Add(ac.Im, bc[1])}
		case "-":
			return &value.Complex{Re: Sub(ac.Re, bc[0]), Im: Sub(ac.Im, bc[1])}
		case "*":
			parts := complexMul(ac.Re, ac.Im, bc[0], bc[1])
			return &value.Complex{Re: parts[0], Im: parts[1]}
		}
	}
	if bc, ok := b.(*value.Complex); ok {
		ac := toComplexParts(a)
		switch op {
		case "+":
			return &value.Complex{Re: Add(ac[0], bc.Re), Im: Add(ac[1], bc.Im)}
		case "-":
			return &value.Complex{Re: Sub(ac[0], bc.Re), Im: Sub(ac[1], bc.Im)}
		case "*":
			parts := complexMul(ac[0], ac[1], bc.Re, bc.Im)
			return &value.Complex{Re: parts[0], Im: parts[1]}
		}
	}

	r := rank(a)
	if rb := rank(b); rb > r {
		r = rb
	}

	switch r {
	case 0: // both Integer/BigInt
		ai, aIsInt := a.(value.Integer)
		bi, bIsInt := b.(value.Integer)
		if aIsInt && bIsInt {
			return intOp(int64(ai), int64(bi))
		}
		return bigOp(asBig(a), asBig(b))
	case 1: // Rational (with possible Integer/BigInt operand)
		an, ad, aok := asRat(a)
		bn, bd, bok := asRat(b)
		if aok && bok {
			return ratOp(an, ad, bn, bd)
		}
		return realOp(asFloat(a), asFloat(b))
	default: // Real
		return realOp(asFloat(a), asFloat(b))
	}
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// Compare returns -1, 0, 1 for a<b, a==b, a>b. Complex values are not
// orderable; callers must reject them before calling Compare (the
// builtin layer does this, matching R7RS, which restricts <,>,<=,>= to
// the real subtower).
func Compare(a, b value.Value) int {
	an, ad, aok := asRat(a)
	bn, bd, bok := asRat(b)
	if aok && bok {
		lhs := an * bd
		rhs := bn * ad
		switch {
		case lhs < rhs:
			return -1
		case lhs > rhs:
			return 1
		default:
			return 0
		}
	}
	af, bf := asFloat(a), asFloat(b)
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}

// NumericallyEqual re-exports value.NumericallyEqual. The `=` builtin
// compares through Compare instead.
func NumericallyEqual(a, b value.Value) bool { return value.NumericallyEqual(a, b) }
