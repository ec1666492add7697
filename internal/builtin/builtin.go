// Package builtin implements the native procedure registry (spec §4.5):
// predicates, the numeric tower's surface procedures, pair/list/string/
// vector/bytevector operations, and I/O. Builtins that need to invoke a
// procedure value or re-enter the evaluator (map, apply, force, eval) do
// so through injected value.ApplyFunc/value.EvalFunc callbacks rather
// than importing internal/eval, which would cycle back to this package.
package builtin

import (
	"cozenage/internal/value"
)

// registry carries the two evaluator callbacks through registration so
// each category file's register* function can close over them.
type registry struct {
	root  *value.Environment
	apply value.ApplyFunc
	eval  value.EvalFunc
}

// Register populates root with every native procedure, wiring apply/eval
// into the builtins that need to call back into the evaluator.
func Register(root *value.Environment, apply value.ApplyFunc, eval value.EvalFunc) {
	r := &registry{root: root, apply: apply, eval: eval}
	r.registerPredicates()
	r.registerNumeric()
	r.registerPairs()
	r.registerStrings()
	r.registerVectors()
	r.registerBytevectors()
	r.registerIO()
	r.registerControl()
	r.registerPolymorphic()
}

func (r *registry) def(name string, fn value.BuiltinFn) {
	r.root.Define(value.Intern(name), &value.Procedure{Name: name, Builtin: fn})
}

// ---------------------------------------------------------------------
// Argument-checking helpers shared by every category file.
// ---------------------------------------------------------------------

func arityErr(name string, want string, got int) *value.ErrorV {
	return value.NewError(value.ArityErr, name+": expected "+want+" arguments, got "+itoa(got))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func checkArity(name string, args []value.Value, want int) *value.ErrorV {
	if len(args) != want {
		return arityErr(name, "exactly "+itoa(want), len(args))
	}
	return nil
}

func checkArityRange(name string, args []value.Value, min, max int) *value.ErrorV {
	if len(args) < min || (max >= 0 && len(args) > max) {
		return arityErr(name, "between "+itoa(min)+" and "+itoa(max), len(args))
	}
	return nil
}

func checkArityMin(name string, args []value.Value, min int) *value.ErrorV {
	if len(args) < min {
		return arityErr(name, "at least "+itoa(min), len(args))
	}
	return nil
}

func typeErr(name, expected string, got value.Value) *value.ErrorV {
	return value.NewError(value.TypeErr, name+": expected "+expected+", got "+describe(got))
}

func describe(v value.Value) string {
	switch v.(type) {
	case value.NilValue:
		return "()"
	case *value.Symbol:
		return "symbol"
	case *value.Pair:
		return "pair"
	case *value.String:
		return "string"
	case value.Integer, *value.BigInt, value.Rational, value.Real, *value.Complex:
		return "number"
	case value.Boolean:
		return "boolean"
	case value.Character:
		return "character"
	case *value.Vector:
		return "vector"
	case *value.Bytevector:
		return "bytevector"
	case *value.Procedure:
		return "procedure"
	case *value.Port:
		return "port"
	default:
		return "value"
	}
}

func asString(name string, v value.Value) (*value.String, *value.ErrorV) {
	s, ok := v.(*value.String)
	if !ok {
		return nil, typeErr(name, "string", v)
	}
	return s, nil
}

func asSymbol(name string, v value.Value) (*value.Symbol, *value.ErrorV) {
	s, ok := v.(*value.Symbol)
	if !ok {
		return nil, typeErr(name, "symbol", v)
	}
	return s, nil
}

func asChar(name string, v value.Value) (value.Character, *value.ErrorV) {
	c, ok := v.(value.Character)
	if !ok {
		return 0, typeErr(name, "character", v)
	}
	return c, nil
}

func asPair(name string, v value.Value) (*value.Pair, *value.ErrorV) {
	p, ok := v.(*value.Pair)
	if !ok {
		return nil, typeErr(name, "pair", v)
	}
	return p, nil
}

func asVector(name string, v value.Value) (*value.Vector, *value.ErrorV) {
	vec, ok := v.(*value.Vector)
	if !ok {
		return nil, typeErr(name, "vector", v)
	}
	return vec, nil
}

func asBytevector(name string, v value.Value) (*value.Bytevector, *value.ErrorV) {
	bv, ok := v.(*value.Bytevector)
	if !ok {
		return nil, typeErr(name, "bytevector", v)
	}
	return bv, nil
}

func asProc(name string, v value.Value) (*value.Procedure, *value.ErrorV) {
	p, ok := v.(*value.Procedure)
	if !ok {
		return nil, typeErr(name, "procedure", v)
	}
	return p, nil
}

func asPort(name string, v value.Value) (*value.Port, *value.ErrorV) {
	p, ok := v.(*value.Port)
	if !ok {
		return nil, typeErr(name, "port", v)
	}
	return p, nil
}

// asIndex converts an exact integer argument to a non-negative Go int
// index, for string/vector/bytevector accessors.
func asIndex(name string, v value.Value) (int, *value.ErrorV) {
	n, ok := v.(value.Integer)
	if !ok {
		return 0, typeErr(name, "exact integer", v)
	}
	if n < 0 {
		return 0, value.NewError(value.IndexErr, name+": negative index")
	}
	return int(n), nil
}
