package value

import (
	"math/big"
	"testing"
)

func TestInternReturnsSameSymbolForSameName(t *testing.T) {
	a := Intern("foo")
	b := Intern("foo")
	if a != b {
		t.Errorf("Intern(\"foo\") returned distinct pointers: %p, %p", a, b)
	}
}

func TestInternTagsSpecialForms(t *testing.T) {
	tests := []struct {
		name string
		want SpecialForm
	}{
		{"if", SFIf},
		{"lambda", SFLambda},
		{"define", SFDefine},
		{"not-a-keyword", NotSpecial},
	}
	for _, test := range tests {
		if got := Intern(test.name).Tag; got != test.want {
			t.Errorf("Intern(%q).Tag = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestEqIdentityVsValueTypes(t *testing.T) {
	if !Eq(Integer(5), Integer(5)) {
		t.Error("Eq(5, 5) should be true: small integers compare by value")
	}
	if !Eq(True, True) {
		t.Error("Eq(#t, #t) should be true: boolean singletons")
	}
	if !Eq(Intern("x"), Intern("x")) {
		t.Error("Eq on interned symbols with the same name should be true")
	}
	s1, s2 := NewString("hi"), NewString("hi")
	if Eq(s1, s2) {
		t.Error("Eq on two distinct String allocations with equal content should be false")
	}
	if !Eq(s1, s1) {
		t.Error("Eq on the same String pointer should be true")
	}
}

func TestEqvNumericExactnessMatters(t *testing.T) {
	if !Eqv(Integer(2), Integer(2)) {
		t.Error("Eqv(2, 2) should be true")
	}
	if Eqv(Integer(2), Real(2.0)) {
		t.Error("Eqv(2, 2.0) should be false: differing exactness")
	}
	if !Eqv(Real(2.5), Real(2.5)) {
		t.Error("Eqv(2.5, 2.5) should be true: same exactness and value")
	}
}

func TestEqualStructuralComparison(t *testing.T) {
	a := SliceToList([]Value{Integer(1), Integer(2), NewString("x")})
	b := SliceToList([]Value{Integer(1), Integer(2), NewString("x")})
	if !Equal(a, b) {
		t.Error("Equal should recurse into list structure and compare strings by content")
	}

	va := &Vector{Items: []Value{Integer(1), Integer(2)}}
	vb := &Vector{Items: []Value{Integer(1), Integer(2)}}
	if !Equal(va, vb) {
		t.Error("Equal should recurse into vectors element-wise")
	}
	vc := &Vector{Items: []Value{Integer(1), Integer(3)}}
	if Equal(va, vc) {
		t.Error("Equal should detect a differing vector element")
	}
}

func TestListToSliceAndSliceToListRoundtrip(t *testing.T) {
	items := []Value{Integer(1), Integer(2), Integer(3)}
	list := SliceToList(items)
	got, ok := ListToSlice(list)
	if !ok {
		t.Fatal("ListToSlice on a proper list should report ok=true")
	}
	if len(got) != len(items) {
		t.Fatalf("round-tripped list has %d items, want %d", len(got), len(items))
	}
	for i := range items {
		if !Eq(got[i], items[i]) {
			t.Errorf("item %d = %v, want %v", i, got[i], items[i])
		}
	}
}

func TestListToSliceRejectsImproperList(t *testing.T) {
	improper := Cons(Integer(1), Integer(2))
	_, ok := ListToSlice(improper)
	if ok {
		t.Error("ListToSlice on an improper list (non-nil, non-pair tail) should report ok=false")
	}
}

func TestSliceToListEmpty(t *testing.T) {
	if SliceToList(nil) != Nil {
		t.Error("SliceToList(nil) should be the Nil singleton")
	}
}

func TestStringASCIIFastPath(t *testing.T) {
	s := NewString("hello")
	if !s.IsASCII() {
		t.Error("NewString(\"hello\") should take the ASCII fast path")
	}
	if s.ClusterLen() != 5 {
		t.Errorf("ClusterLen() = %d, want 5", s.ClusterLen())
	}
	if s.ByteLen() != 5 {
		t.Errorf("ByteLen() = %d, want 5", s.ByteLen())
	}
}

func TestStringNonASCIIClusterLen(t *testing.T) {
	s := NewString("café")
	if s.IsASCII() {
		t.Error("NewString(\"café\") should not take the ASCII fast path")
	}
	if s.ClusterLen() != 4 {
		t.Errorf("ClusterLen() = %d, want 4 (c,a,f,é)", s.ClusterLen())
	}
}

func TestStringSetChar(t *testing.T) {
	s := NewString("cat")
	if ok := s.SetChar(0, 'b'); !ok {
		t.Fatal("SetChar(0, 'b') should succeed in range")
	}
	if s.Go() != "bat" {
		t.Errorf("after SetChar(0,'b'), string = %q, want %q", s.Go(), "bat")
	}
	if ok := s.SetChar(10, 'x'); ok {
		t.Error("SetChar out of range should report ok=false")
	}
}

func TestNewBigIntDemotesWhenItFits(t *testing.T) {
	small := NewBigInt(big.NewInt(42))
	if _, ok := small.(Integer); !ok {
		t.Errorf("NewBigInt(42) should demote to Integer, got %T", small)
	}
}

func TestIsExactAndIsNumber(t *testing.T) {
	tests := []struct {
		name       string
		v          Value
		wantNumber bool
		wantExact  bool
	}{
		{"integer", Integer(1), true, true},
		{"rational", Rational{Num: 1, Den: 2}, true, true},
		{"real", Real(1.5), true, false},
		{"string", NewString("x"), false, false},
		{"exact complex", &Complex{Re: Integer(1), Im: Integer(2)}, true, true},
		{"inexact complex", &Complex{Re: Real(1), Im: Integer(2)}, true, false},
	}
	for _, test := range tests {
		if got := IsNumber(test.v); got != test.wantNumber {
			t.Errorf("IsNumber(%s) = %v, want %v", test.name, got, test.wantNumber)
		}
		if test.wantNumber {
			if got := IsExact(test.v); got != test.wantExact {
				t.Errorf("IsExact(%s) = %v, want %v", test.name, got, test.wantExact)
			}
		}
	}
}

func TestIsTruthyOnlyFalseIsFalsy(t *testing.T) {
	if IsTruthy(False) {
		t.Error("#f should be falsy")
	}
	if !IsTruthy(True) {
		t.Error("#t should be truthy")
	}
	if !IsTruthy(Integer(0)) {
		t.Error("0 should be truthy (R7RS: only #f is falsy)")
	}
	if !IsTruthy(Nil) {
		t.Error("() should be truthy (R7RS: only #f is falsy)")
	}
}

func TestNewErrorAndIsError(t *testing.T) {
	e := NewError(TypeErr, "bad type")
	if !IsError(e) {
		t.Error("IsError should be true for an *ErrorV")
	}
	if e.Error() != "TYPE_ERR: bad type" {
		t.Errorf("Error() = %q, want %q", e.Error(), "TYPE_ERR: bad type")
	}
	if IsError(Integer(1)) {
		t.Error("IsError should be false for a non-error value")
	}
}
