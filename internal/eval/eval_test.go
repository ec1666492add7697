package eval_test

import (
	"testing"

	"cozenage/internal/builtin"
	"cozenage/internal/eval"
	"cozenage/internal/reader"
	"cozenage/internal/value"
)

// newTestEnv returns a fresh global environment with every builtin
// registered, mirroring how cmd/cozenage wires the interpreter together.
func newTestEnv() *value.Environment {
	root := value.NewEnvironment(nil)
	builtin.Register(root, eval.Apply, eval.Eval)
	return root
}

// run reads and evaluates every top-level form in src against a fresh
// environment, returning the last form's result.
func run(t *testing.T, src string) value.Value {
	t.Helper()
	env := newTestEnv()
	p := reader.NewParser(src)
	var result value.Value = value.Unspecified
	for {
		datum, err := p.ReadDatum()
		if err != nil {
			t.Fatalf("parse error in %q: %v", src, err)
		}
		if datum == nil {
			return result
		}
		result = eval.Eval(env, datum)
		if value.IsError(result) {
			return result
		}
	}
}

func requireInt(t *testing.T, src string, want int64) {
	t.Helper()
	got := run(t, src)
	i, ok := got.(value.Integer)
	if !ok {
		t.Fatalf("%q = %#v (%T), want Integer(%d)", src, got, got, want)
	}
	if int64(i) != want {
		t.Errorf("%q = %d, want %d", src, i, want)
	}
}

func TestSelfEvaluatingForms(t *testing.T) {
	requireInt(t, "42", 42)
}

func TestArithmeticApplications(t *testing.T) {
	tests := []struct {
		src  string
		want int64
	}{
		{"(+ 1 2 3)", 6},
		{"(* 2 3 4)", 24},
		{"(- 10 3 2)", 5},
		{"(+ (* 2 3) (- 10 4))", 12},
	}
	for _, test := range tests {
		requireInt(t, test.src, test.want)
	}
}

func TestIfBranches(t *testing.T) {
	requireInt(t, `(if #t 1 2)`, 1)
	requireInt(t, `(if #f 1 2)`, 2)
	got := run(t, `(if #f 1)`)
	if got != value.Unspecified {
		t.Errorf("(if #f 1) = %#v, want Unspecified", got)
	}
}

func TestDefineAndLookup(t *testing.T) {
	requireInt(t, `(define x 10) (+ x 5)`, 15)
}

func TestDefineProcedureShorthand(t *testing.T) {
	requireInt(t, `(define (square x) (* x x)) (square 6)`, 36)
}

func TestLambdaClosures(t *testing.T) {
	requireInt(t, `
		(define (make-adder n) (lambda (x) (+ x n)))
		(define add5 (make-adder 5))
		(add5 10)`, 15)
}

func TestSetBang(t *testing.T) {
	requireInt(t, `(define x 1) (set! x 2) x`, 2)
}

func TestLetLetStarLetrec(t *testing.T) {
	requireInt(t, `(let ((x 1) (y 2)) (+ x y))`, 3)
	requireInt(t, `(let* ((x 1) (y (+ x 1))) (+ x y))`, 3)
	requireInt(t, `(letrec ((even? (lambda (n) (if (= n 0) #t (odd? (- n 1)))))
	                      (odd?  (lambda (n) (if (= n 0) #f (even? (- n 1))))))
	                (if (even? 10) 1 0))`, 1)
}

func TestNamedLetLoop(t *testing.T) {
	requireInt(t, `
		(let loop ((i 0) (acc 0))
		  (if (= i 5) acc (loop (+ i 1) (+ acc i))))`, 10)
}

func TestCondClauses(t *testing.T) {
	requireInt(t, `(cond (#f 1) (#f 2) (else 3))`, 3)
	requireInt(t, `(cond ((assv 2 '((1 . 10) (2 . 20))) => cdr) (else 0))`, 20)
}

func TestCaseExpression(t *testing.T) {
	requireInt(t, `(case 2 ((1) 10) ((2 3) 20) (else 30))`, 20)
	requireInt(t, `(case 99 ((1) 10) (else 30))`, 30)
}

func TestAndOrShortCircuit(t *testing.T) {
	requireInt(t, `(and 1 2 3)`, 3)
	got := run(t, `(and 1 #f (error "should not evaluate"))`)
	if got != value.False {
		t.Errorf("and should short-circuit on #f, got %#v", got)
	}
	requireInt(t, `(or #f #f 5)`, 5)
}

func TestWhenUnless(t *testing.T) {
	requireInt(t, `(when #t 1 2 3)`, 3)
	got := run(t, `(when #f 1 2 3)`)
	if got != value.Unspecified {
		t.Errorf("(when #f ...) = %#v, want Unspecified", got)
	}
	requireInt(t, `(unless #f 1 2 3)`, 3)
}

func TestQuoteAndQuasiquote(t *testing.T) {
	got := run(t, `'(1 2 3)`)
	items, ok := value.ListToSlice(got)
	if !ok || len(items) != 3 {
		t.Fatalf("'(1 2 3) = %#v, want a 3-element list", got)
	}

	got = run(t, "`(1 ,(+ 1 1) ,@(list 3 4))")
	items, ok = value.ListToSlice(got)
	if !ok || len(items) != 4 {
		t.Fatalf("quasiquote with unquote-splicing = %#v, want a 4-element list", got)
	}
}

func TestTailCallDoesNotOverflowStack(t *testing.T) {
	requireInt(t, `
		(define (count-to n acc)
		  (if (= n acc) acc (count-to n (+ acc 1))))
		(count-to 200000 0)`, 200000)
}

func TestDoLoop(t *testing.T) {
	requireInt(t, `
		(do ((i 0 (+ i 1))
		     (sum 0 (+ sum i)))
		    ((= i 5) sum))`, 10)
}

func TestDelayForce(t *testing.T) {
	requireInt(t, `(force (delay (+ 1 2)))`, 3)
}

func TestConsStream(t *testing.T) {
	got := run(t, `(cons-stream 1 (+ 1 1))`)
	s, ok := got.(*value.Stream)
	if !ok {
		t.Fatalf("cons-stream result = %#v, want *Stream", got)
	}
	head, ok := s.Head.(value.Integer)
	if !ok || head != 1 {
		t.Errorf("stream head = %#v, want 1", s.Head)
	}
}

func TestUnboundVariableIsAnError(t *testing.T) {
	got := run(t, `totally-undefined-name`)
	if !value.IsError(got) {
		t.Errorf("referencing an unbound variable should produce an error, got %#v", got)
	}
}

func TestArityMismatchIsAnError(t *testing.T) {
	got := run(t, `(define (f x) x) (f 1 2 3)`)
	e, ok := got.(*value.ErrorV)
	if !ok {
		t.Fatalf("wrong-arity call should produce an error, got %#v", got)
	}
	if e.Category != value.ArityErr {
		t.Errorf("error category = %v, want ArityErr", e.Category)
	}
}

func TestVariadicLambda(t *testing.T) {
	requireInt(t, `(define (sum-all . xs) (apply + xs)) (sum-all 1 2 3 4)`, 10)
}

func TestQuoteLiteralIsCopiedOnEachEvaluation(t *testing.T) {
	requireInt(t, `
		(define (make) '(1 2 3))
		(define a (make))
		(set-car! a 99)
		(car (make))`, 1)
}

func TestRecursiveFactorial(t *testing.T) {
	requireInt(t, `
		(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))
		(fact 10)`, 3628800)
}
