package builtin_test

import "testing"

func TestBytevectorConstructAndAccess(t *testing.T) {
	requireInt(t, `(bytevector-length (bytevector 1 2 3))`, 3)
	requireInt(t, `(bytevector-u8-ref (bytevector 1 2 3) 2)`, 3)
	requireInt(t, `(bytevector-u8-ref (make-bytevector 3 9) 0)`, 9)
}

func TestBytevectorSetAndCopy(t *testing.T) {
	requireInt(t, `(let ((b (make-bytevector 3 0))) (bytevector-u8-set! b 1 5) (bytevector-u8-ref b 1))`, 5)
	requireInt(t, `(bytevector-u8-ref (bytevector-copy (bytevector 1 2 3) 1) 0)`, 2)
}

func TestBytevectorAppend(t *testing.T) {
	requireInt(t, `(bytevector-length (bytevector-append (bytevector 1 2) (bytevector 3 4)))`, 4)
}

func TestStringUTF8RoundTrip(t *testing.T) {
	requireString(t, `(utf8->string (string->utf8 "hi"))`, "hi")
}

func TestBytevectorListConversion(t *testing.T) {
	requireInt(t, `(length (bytevector->list (bytevector 1 2 3)))`, 3)
	requireInt(t, `(bytevector-u8-ref (list->bytevector (list 1 2 3)) 2)`, 3)
}
