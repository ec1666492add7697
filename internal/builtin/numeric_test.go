package builtin_test

import "testing"

func TestArithmeticBuiltins(t *testing.T) {
	requireInt(t, `(+ 1 2 3)`, 6)
	requireInt(t, `(* 2 3 4)`, 24)
	requireInt(t, `(- 10)`, -10)
	requireInt(t, `(/ 1)`, 1)
}

func TestComparisonBuiltins(t *testing.T) {
	requireBool(t, `(< 1 2 3)`, true)
	requireBool(t, `(< 1 3 2)`, false)
	requireBool(t, `(= 2 2 2)`, true)
	requireBool(t, `(>= 3 3 2)`, true)
}

func TestQuotientRemainderModuloBuiltins(t *testing.T) {
	requireInt(t, `(quotient 7 2)`, 3)
	requireInt(t, `(remainder 7 2)`, 1)
	requireInt(t, `(modulo -7 2)`, 1)
	requireInt(t, `(remainder -7 2)`, -1)
}

func TestAbsFloorCeilingRound(t *testing.T) {
	requireInt(t, `(abs -5)`, 5)
	requireInt(t, `(floor 7/2)`, 3)
	requireInt(t, `(ceiling 7/2)`, 4)
	requireInt(t, `(round 5/2)`, 2)
}

func TestGcdLcmBuiltins(t *testing.T) {
	requireInt(t, `(gcd 12 18)`, 6)
	requireInt(t, `(lcm 4 6)`, 12)
}

func TestExptBuiltin(t *testing.T) {
	requireInt(t, `(expt 2 10)`, 1024)
}

func TestSquareAndIncDec(t *testing.T) {
	requireInt(t, `(square 5)`, 25)
	requireInt(t, `(1+ 5)`, 6)
	requireInt(t, `(1- 5)`, 4)
}

func TestNumberToStringAndBack(t *testing.T) {
	requireString(t, `(number->string 255 16)`, "ff")
	requireInt(t, `(string->number "ff" 16)`, 255)
}

func TestDivisionByExactZeroIsAnError(t *testing.T) {
	requireError(t, `(/ 1 0)`)
}
