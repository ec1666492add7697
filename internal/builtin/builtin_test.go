package builtin_test

import (
	"testing"

	"cozenage/internal/builtin"
	"cozenage/internal/eval"
	"cozenage/internal/reader"
	"cozenage/internal/value"
)

// newTestEnv mirrors cmd/cozenage's wiring of the registry against the
// evaluator's Apply/Eval callbacks.
func newTestEnv() *value.Environment {
	root := value.NewEnvironment(nil)
	builtin.Register(root, eval.Apply, eval.Eval)
	return root
}

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

func requireBool(t *testing.T, src string, want bool) {
	t.Helper()
	got := run(t, src)
	b, ok := got.(value.Boolean)
	if !ok {
		t.Fatalf("%q = %#v (%T), want Boolean(%v)", src, got, got, want)
	}
	if bool(b) != want {
		t.Errorf("%q = %v, want %v", src, b, want)
	}
}

func requireString(t *testing.T, src string, want string) {
	t.Helper()
	got := run(t, src)
	s, ok := got.(*value.String)
	if !ok {
		t.Fatalf("%q = %#v (%T), want *String(%q)", src, got, got, want)
	}
	if s.Go() != want {
		t.Errorf("%q = %q, want %q", src, s.Go(), want)
	}
}

func requireError(t *testing.T, src string) {
	t.Helper()
	got := run(t, src)
	if !value.IsError(got) {
		t.Errorf("%q = %#v, want an error", src, got)
	}
}
