package builtin_test

import "testing"

func TestEqEqvEqual(t *testing.T) {
	requireBool(t, `(eq? 'a 'a)`, true)
	requireBool(t, `(eqv? 2 2.0)`, false)
	requireBool(t, `(equal? (list 1 2 (list 3)) (list 1 2 (list 3)))`, true)
	requireBool(t, `(equal? "abc" "abc")`, true)
}

func TestNot(t *testing.T) {
	requireBool(t, `(not #f)`, true)
	requireBool(t, `(not 0)`, false)
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{`(null? '())`, true},
		{`(null? '(1))`, false},
		{`(pair? '(1 2))`, true},
		{`(pair? '())`, false},
		{`(string? "hi")`, true},
		{`(symbol? 'x)`, true},
		{`(number? 3)`, true},
		{`(number? "3")`, false},
		{`(boolean? #t)`, true},
		{`(procedure? car)`, true},
		{`(vector? #(1 2))`, true},
		{`(char? #\a)`, true},
		{`(integer? 3.0)`, true},
		{`(exact? 3)`, true},
		{`(exact? 3.0)`, false},
		{`(zero? 0)`, true},
		{`(positive? 5)`, true},
		{`(negative? -5)`, true},
	}
	for _, test := range tests {
		requireBool(t, test.src, test.want)
	}
}
