package printer

import (
	"math"
	"math/big"
	"testing"

	"cozenage/internal/value"
)

func TestDisplayVsWriteStrings(t *testing.T) {
	s := value.NewString("hi\nthere")
	if got := Display(s); got != "hi\nthere" {
		t.Errorf("Display = %q, want raw unescaped text", got)
	}
	if got := Write(s); got != `"hi\nthere"` {
		t.Errorf("Write = %q, want escaped and quoted", got)
	}
}

func TestDisplayVsWriteChars(t *testing.T) {
	c := value.Character(' ')
	if got := Display(c); got != " " {
		t.Errorf("Display(#\\space) = %q, want a literal space", got)
	}
	if got := Write(c); got != `#\space` {
		t.Errorf("Write(#\\space) = %q, want #\\space", got)
	}
}

func TestWriteNumbers(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want string
	}{
		{"integer", value.Integer(42), "42"},
		{"negative integer", value.Integer(-7), "-7"},
		{"rational", value.Rational{Num: 1, Den: 3}, "1/3"},
		{"bigint", bigIntFromString(t, "123456789012345678901234567890"), "123456789012345678901234567890"},
		{"whole real gets trailing .0", value.Real(3), "3.0"},
		{"fractional real", value.Real(3.5), "3.5"},
		{"positive infinity", value.Real(posInfForTest()), "+inf.0"},
		{"negative infinity", value.Real(negInfForTest()), "-inf.0"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Write(test.v); got != test.want {
				t.Errorf("Write(%s) = %q, want %q", test.name, got, test.want)
			}
		})
	}
}

func posInfForTest() float64 { return math.Inf(1) }
func negInfForTest() float64 { return math.Inf(-1) }

func bigIntFromString(t *testing.T, s string) value.Value {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("failed to parse test bigint literal %q", s)
	}
	return &value.BigInt{V: n}
}

func TestWriteLists(t *testing.T) {
	list := value.SliceToList([]value.Value{value.Integer(1), value.Integer(2), value.Integer(3)})
	if got := Write(list); got != "(1 2 3)" {
		t.Errorf("Write((1 2 3)) = %q, want %q", got, "(1 2 3)")
	}

	dotted := value.Cons(value.Integer(1), value.Integer(2))
	if got := Write(dotted); got != "(1 . 2)" {
		t.Errorf("Write(dotted pair) = %q, want %q", got, "(1 . 2)")
	}

	empty := value.Nil
	if got := Write(empty); got != "()" {
		t.Errorf("Write(()) = %q, want %q", got, "()")
	}
}

func TestWriteQuoteAbbreviation(t *testing.T) {
	quoted := value.Cons(value.Intern("quote"), value.Cons(value.Intern("x"), value.Nil))
	if got := Write(quoted); got != "'x" {
		t.Errorf("Write('x) = %q, want %q", got, "'x")
	}
}

func TestWriteVectorAndBytevector(t *testing.T) {
	vec := &value.Vector{Items: []value.Value{value.Integer(1), value.Integer(2)}}
	if got := Write(vec); got != "#(1 2)" {
		t.Errorf("Write(#(1 2)) = %q, want %q", got, "#(1 2)")
	}

	bv := &value.Bytevector{Kind: value.U8, Elements: []int64{1, 2, 255}}
	if got := Write(bv); got != "#u8(1 2 255)" {
		t.Errorf("Write(bytevector) = %q, want %q", got, "#u8(1 2 255)")
	}
}

func TestReplModeSuppressesUnspecified(t *testing.T) {
	if got := Print(value.Unspecified, ModeRepl); got != "" {
		t.Errorf("Print(Unspecified, ModeRepl) = %q, want empty", got)
	}
	if got := Print(value.Unspecified, ModeWrite); got == "" {
		t.Error("Print(Unspecified, ModeWrite) should not be empty")
	}
}

func TestWriteBooleans(t *testing.T) {
	if got := Write(value.True); got != "#t" {
		t.Errorf("Write(#t) = %q, want #t", got)
	}
	if got := Write(value.False); got != "#f" {
		t.Errorf("Write(#f) = %q, want #f", got)
	}
}

func TestWriteComplex(t *testing.T) {
	c := &value.Complex{Re: value.Integer(1), Im: value.Integer(2)}
	if got := Write(c); got != "1+2i" {
		t.Errorf("Write(1+2i) = %q, want %q", got, "1+2i")
	}
	pureImag := &value.Complex{Re: value.Integer(0), Im: value.Integer(3)}
	if got := Write(pureImag); got != "+3i" {
		t.Errorf("Write(+3i) = %q, want %q", got, "+3i")
	}
}
