package builtin_test

import "testing"

func TestLenDispatchesOnVariant(t *testing.T) {
	requireInt(t, `(len (list 1 2 3))`, 3)
	requireInt(t, `(len #(1 2 3 4))`, 4)
	requireInt(t, `(len (bytevector 1 2))`, 2)
	requireInt(t, `(len "hello")`, 5)
}

func TestLenRejectsNonCompoundType(t *testing.T) {
	requireError(t, `(len 5)`)
}

func TestAtDispatchesOnVariant(t *testing.T) {
	requireInt(t, `(at (list 10 20 30) 1)`, 20)
	requireInt(t, `(at #(10 20 30) 2)`, 30)
	requireInt(t, `(at (bytevector 5 6 7) 0)`, 5)
	requireString(t, `(string (at "abc" 1))`, "b")
}

func TestAtSlicesPairsAndVectors(t *testing.T) {
	requireInt(t, `(len (at (list 1 2 3 4 5) 1 4))`, 3)
	requireInt(t, `(car (at (list 1 2 3 4 5) 1 4))`, 2)
	requireInt(t, `(len (at #(1 2 3 4 5 6) 0 6 2))`, 3)
	requireInt(t, `(vector-ref (at #(1 2 3 4 5 6) 0 6 2) 1)`, 3)
}

func TestAtRejectsNonCompoundType(t *testing.T) {
	requireError(t, `(at 5 0)`)
}

func TestRevDispatchesOnVariant(t *testing.T) {
	requireInt(t, `(car (rev (list 1 2 3)))`, 3)
	requireInt(t, `(vector-ref (rev #(1 2 3)) 0)`, 3)
	requireInt(t, `(bytevector-u8-ref (rev (bytevector 1 2 3)) 0)`, 3)
	requireString(t, `(rev "abc")`, "cba")
}

func TestRevRejectsNonCompoundType(t *testing.T) {
	requireError(t, `(rev 5)`)
}
