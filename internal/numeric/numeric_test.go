package numeric

import (
	"testing"

	"cozenage/internal/value"
)

func mustInt(t *testing.T, v value.Value) int64 {
	t.Helper()
	i, ok := v.(value.Integer)
	if !ok {
		t.Fatalf("expected Integer, got %T (%v)", v, v)
	}
	return int64(i)
}

func TestAddPromotesOnOverflow(t *testing.T) {
	tests := []struct {
		name string
		a, b value.Value
		big  bool
	}{
		{"small ints", value.Integer(2), value.Integer(3), false},
		{"overflow to bigint", value.Integer(9223372036854775807), value.Integer(1), true},
		{"negative overflow", value.Integer(-9223372036854775808), value.Integer(-1), true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := Add(test.a, test.b)
			_, isBig := result.(*value.BigInt)
			if isBig != test.big {
				t.Errorf("Add(%v, %v) = %v (%T), want bigint=%v", test.a, test.b, result, result, test.big)
			}
		})
	}
}

func TestAddSubMulArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   func(a, b value.Value) value.Value
		a, b value.Value
		want int64
	}{
		{"add", Add, value.Integer(2), value.Integer(3), 5},
		{"sub", Sub, value.Integer(10), value.Integer(4), 6},
		{"mul", Mul, value.Integer(6), value.Integer(7), 42},
		{"sub negative", Sub, value.Integer(3), value.Integer(10), -7},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := mustInt(t, test.op(test.a, test.b))
			if got != test.want {
				t.Errorf("%s(%v, %v) = %d, want %d", test.name, test.a, test.b, got, test.want)
			}
		})
	}
}

func TestDivExactness(t *testing.T) {
	// exact / exact with clean division stays an exact Integer.
	result := Div(value.Integer(10), value.Integer(2))
	if got := mustInt(t, result); got != 5 {
		t.Errorf("Div(10,2) = %d, want 5", got)
	}

	// exact / exact with a non-clean division becomes an exact Rational.
	result = Div(value.Integer(1), value.Integer(3))
	rat, ok := result.(value.Rational)
	if !ok || rat.Num != 1 || rat.Den != 3 {
		t.Errorf("Div(1,3) = %#v, want Rational{1,3}", result)
	}

	// division by exact zero is an error, not a float Inf.
	result = Div(value.Integer(1), value.Integer(0))
	if !value.IsError(result) {
		t.Errorf("Div(1,0) = %#v, want error", result)
	}

	// division by inexact zero yields a float, not an error (R7RS allows Inf/NaN).
	result = Div(value.Integer(1), value.Real(0))
	if _, ok := result.(value.Real); !ok {
		t.Errorf("Div(1,0.0) = %#v, want Real", result)
	}
}

func TestRationalReducesToLowestTerms(t *testing.T) {
	result := NewRational(4, 8)
	rat, ok := result.(value.Rational)
	if !ok {
		t.Fatalf("NewRational(4,8) = %#v, want Rational", result)
	}
	if rat.Num != 1 || rat.Den != 2 {
		t.Errorf("NewRational(4,8) = %v/%v, want 1/2", rat.Num, rat.Den)
	}
}

func TestRationalDemotesToIntegerWhenDenomIsOne(t *testing.T) {
	result := NewRational(6, 3)
	if got := mustInt(t, result); got != 2 {
		t.Errorf("NewRational(6,3) = %v, want Integer 2", result)
	}
}

func TestRationalNormalizesNegativeDenominator(t *testing.T) {
	result := NewRational(3, -4)
	rat, ok := result.(value.Rational)
	if !ok || rat.Num != -3 || rat.Den != 4 {
		t.Errorf("NewRational(3,-4) = %#v, want Rational{-3,4}", result)
	}
}

func TestCompareOrdersExactAndInexact(t *testing.T) {
	tests := []struct {
		name string
		a, b value.Value
		want int
	}{
		{"int less", value.Integer(1), value.Integer(2), -1},
		{"int equal", value.Integer(2), value.Integer(2), 0},
		{"int greater", value.Integer(3), value.Integer(2), 1},
		{"rational vs integer", value.Rational{Num: 1, Den: 2}, value.Integer(1), -1},
		{"real vs integer", value.Real(1.5), value.Integer(1), 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Compare(test.a, test.b); got != test.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", test.a, test.b, got, test.want)
			}
		})
	}
}

func TestQuotientRemainderModulo(t *testing.T) {
	tests := []struct {
		name          string
		a, b          int64
		quot, rem, mod int64
	}{
		{"positive/positive", 13, 4, 3, 1, 1},
		{"negative/positive", -13, 4, -3, -1, 3},
		{"positive/negative", 13, -4, -3, 1, -3},
		{"negative/negative", -13, -4, 3, -1, -1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a, b := value.Integer(test.a), value.Integer(test.b)
			if got := mustInt(t, Quotient(a, b)); got != test.quot {
				t.Errorf("Quotient(%d,%d) = %d, want %d", test.a, test.b, got, test.quot)
			}
			if got := mustInt(t, Remainder(a, b)); got != test.rem {
				t.Errorf("Remainder(%d,%d) = %d, want %d", test.a, test.b, got, test.rem)
			}
			if got := mustInt(t, Modulo(a, b)); got != test.mod {
				t.Errorf("Modulo(%d,%d) = %d, want %d", test.a, test.b, got, test.mod)
			}
		})
	}
}

func TestDivisionByZeroErrors(t *testing.T) {
	ops := map[string]func(a, b value.Value) value.Value{
		"quotient":  Quotient,
		"remainder": Remainder,
		"modulo":    Modulo,
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			result := op(value.Integer(5), value.Integer(0))
			if !value.IsError(result) {
				t.Errorf("%s(5,0) = %#v, want error", name, result)
			}
		})
	}
}

func TestExactIntegerSqrt(t *testing.T) {
	s, r := ExactIntegerSqrt(value.Integer(17))
	if got := mustInt(t, s); got != 4 {
		t.Errorf("exact-integer-sqrt(17) sqrt part = %d, want 4", got)
	}
	if got := mustInt(t, r); got != 1 {
		t.Errorf("exact-integer-sqrt(17) remainder part = %d, want 1", got)
	}
}

func TestSqrtPerfectSquareStaysExact(t *testing.T) {
	result := Sqrt(value.Integer(16))
	if got := mustInt(t, result); got != 4 {
		t.Errorf("sqrt(16) = %v, want exact 4", result)
	}
}

func TestSqrtNegativeYieldsComplex(t *testing.T) {
	result := Sqrt(value.Integer(-4))
	c, ok := result.(*value.Complex)
	if !ok {
		t.Fatalf("sqrt(-4) = %#v, want Complex", result)
	}
	if got := mustInt(t, c.Re); got != 0 {
		t.Errorf("sqrt(-4) real part = %v, want 0", c.Re)
	}
	if got := mustInt(t, c.Im); got != 2 {
		t.Errorf("sqrt(-4) imaginary part = %v, want 2", c.Im)
	}
}

func TestExptIntegerExponent(t *testing.T) {
	tests := []struct {
		base, exp, want int64
	}{
		{2, 10, 1024},
		{3, 0, 1},
		{5, 3, 125},
	}
	for _, test := range tests {
		got := mustInt(t, Expt(value.Integer(test.base), value.Integer(test.exp)))
		if got != test.want {
			t.Errorf("Expt(%d,%d) = %d, want %d", test.base, test.exp, got, test.want)
		}
	}
}

func TestExptNegativeExponentOnExactBaseYieldsRational(t *testing.T) {
	result := Expt(value.Integer(2), value.Integer(-2))
	rat, ok := result.(value.Rational)
	if !ok || rat.Num != 1 || rat.Den != 4 {
		t.Errorf("Expt(2,-2) = %#v, want Rational{1,4}", result)
	}
}

func TestExptHugeResultPromotesToBigInt(t *testing.T) {
	result := Expt(value.Integer(2), value.Integer(100))
	bi, ok := result.(*value.BigInt)
	if !ok {
		t.Fatalf("Expt(2,100) = %#v, want BigInt", result)
	}
	if bi.V.String() != "1267650600228229401496703205376" {
		t.Errorf("Expt(2,100) = %s, want 1267650600228229401496703205376", bi.V.String())
	}
}

func TestFloorDivFloorsTowardNegativeInfinity(t *testing.T) {
	q, r := FloorDiv(value.Integer(-7), value.Integer(2))
	if got := mustInt(t, q); got != -4 {
		t.Errorf("floor/(-7,2) quotient = %d, want -4", got)
	}
	if got := mustInt(t, r); got != 1 {
		t.Errorf("floor/(-7,2) remainder = %d, want 1", got)
	}
}

func TestGcdLcm(t *testing.T) {
	if got := mustInt(t, Gcd(value.Integer(12), value.Integer(18))); got != 6 {
		t.Errorf("gcd(12,18) = %d, want 6", got)
	}
	if got := mustInt(t, Lcm(value.Integer(4), value.Integer(6))); got != 12 {
		t.Errorf("lcm(4,6) = %d, want 12", got)
	}
}

func TestRoundingProcedures(t *testing.T) {
	tests := []struct {
		name string
		op   func(value.Value) value.Value
		in   value.Value
		want int64
	}{
		{"floor rational", Floor, value.Rational{Num: 7, Den: 2}, 3},
		{"ceiling rational", Ceiling, value.Rational{Num: 7, Den: 2}, 4},
		{"truncate negative rational", Truncate, value.Rational{Num: -7, Den: 2}, -3},
		{"round ties to even (2.5)", Round, value.Rational{Num: 5, Den: 2}, 2},
		{"round ties to even (3.5)", Round, value.Rational{Num: 7, Den: 2}, 4},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := mustInt(t, test.op(test.in))
			if got != test.want {
				t.Errorf("%s = %d, want %d", test.name, got, test.want)
			}
		})
	}
}

func TestAbs(t *testing.T) {
	if got := mustInt(t, Abs(value.Integer(-5))); got != 5 {
		t.Errorf("abs(-5) = %d, want 5", got)
	}
	if got := mustInt(t, Abs(value.Integer(5))); got != 5 {
		t.Errorf("abs(5) = %d, want 5", got)
	}
}

func TestToExactAndToInexact(t *testing.T) {
	exact := ToExact(value.Real(0.5))
	rat, ok := exact.(value.Rational)
	if !ok || rat.Num != 1 || rat.Den != 2 {
		t.Errorf("ToExact(0.5) = %#v, want Rational{1,2}", exact)
	}

	inexact := ToInexact(value.Integer(3))
	if got, ok := inexact.(value.Real); !ok || got != 3 {
		t.Errorf("ToInexact(3) = %#v, want Real(3)", inexact)
	}
}

func TestNegateHandlesInt64MinOverflow(t *testing.T) {
	result := Negate(value.Integer(-9223372036854775808))
	if _, ok := result.(*value.BigInt); !ok {
		t.Errorf("Negate(minInt64) = %#v, want BigInt (negation overflows int64)", result)
	}
}

func TestTypeNameCoversCoreVariants(t *testing.T) {
	tests := []struct {
		v    value.Value
		want string
	}{
		{value.Integer(1), "integer"},
		{value.Real(1.0), "real"},
		{value.Boolean(true), "boolean"},
		{value.NewString("hi"), "string"},
		{value.Nil, "()"},
	}
	for _, test := range tests {
		if got := TypeName(test.v); got != test.want {
			t.Errorf("TypeName(%#v) = %q, want %q", test.v, got, test.want)
		}
	}
}
