// Package eval implements the tree-walking evaluator: special-form
// dispatch by symbol identity, procedure application, and a trampoline
// that keeps tail calls from growing the Go call stack.
package eval

import (
	"fmt"

	"cozenage/internal/value"
)

// Eval evaluates expr in env. It implements value.EvalFunc so the
// builtin registry can call back into it (for `eval`, `map`, `force`,
// and friends) without importing this package.
//
// The function body is a trampoline: special forms and procedure calls
// that are in tail position reassign env/expr and `continue` rather than
// recursing, so a long chain of tail calls runs in constant Go stack
// space.
func Eval(env *value.Environment, expr value.Value) value.Value {
	for {
		switch e := expr.(type) {
		case *value.Symbol:
			v, ok := env.Lookup(e)
			if !ok {
				return value.NewError(value.GenErr, "unbound variable: "+e.Name)
			}
			return v

		case *value.Pair:
			if e == nil {
				return value.NewError(value.GenErr, "ill-formed special form: ()")
			}
			if sym, ok := e.Car.(*value.Symbol); ok && sym.Tag != value.NotSpecial {
				res, tailEnv, tailExpr, isTail := evalSpecialForm(sym.Tag, env, e)
				if isTail {
					env, expr = tailEnv, tailExpr
					continue
				}
				return res
			}
			// Ordinary application.
			proc := Eval(env, e.Car)
			if value.IsError(proc) {
				return proc
			}
			args, err := evalArgs(env, e.Cdr)
			if err != nil {
				return err
			}
			res, tailEnv, tailExpr, isTail := applyTail(proc, args)
			if isTail {
				env, expr = tailEnv, tailExpr
				continue
			}
			return res

		case value.NilValue:
			return value.NewError(value.GenErr, "ill-formed special form: ()")

		default:
			// Self-evaluating: numbers, strings, booleans, characters,
			// vectors, bytevectors, procedures, ports, the unspecified/EOF
			// singletons, and anything else with no special evaluation rule.
			return expr
		}
	}
}

// evalArgs evaluates a proper-list argument chain left to right,
// stopping at the first error.
func evalArgs(env *value.Environment, list value.Value) ([]value.Value, value.Value) {
	var args []value.Value
	for {
		p, ok := list.(*value.Pair)
		if !ok {
			if _, isNil := list.(value.NilValue); isNil {
				return args, nil
			}
			return nil, value.NewError(value.SyntaxErr, "improper argument list")
		}
		v := Eval(env, p.Car)
		if value.IsError(v) {
			return nil, v
		}
		args = append(args, v)
		list = p.Cdr
	}
}

// Apply implements value.ApplyFunc: fully evaluates a procedure call
// (running the trampoline to completion) and returns its result. Used by
// builtins (map, for-each, apply, sort, …) that need to invoke a
// procedure value but are not themselves part of the tail-call chain.
func Apply(proc value.Value, args []value.Value) value.Value {
	res, tailEnv, tailExpr, isTail := applyTail(proc, args)
	if isTail {
		return Eval(tailEnv, tailExpr)
	}
	return res
}

// applyTail applies proc to args. For a closure, rather than recursing
// into Eval for the body, it returns the new environment and the body's
// final expression so the caller's trampoline loop can continue without
// growing the stack; isTail is false for builtins and errors, whose
// result is already final.
func applyTail(proc value.Value, args []value.Value) (result value.Value, tailEnv *value.Environment, tailExpr value.Value, isTail bool) {
	p, ok := proc.(*value.Procedure)
	if !ok {
		return value.NewError(value.TypeErr, "the object "+describe(proc)+" is not applicable"), nil, nil, false
	}
	if p.Builtin != nil {
		return p.Builtin(nil, args), nil, nil, false
	}
	callEnv, err := bindFormals(p, args)
	if err != nil {
		return err, nil, nil, false
	}
	if len(p.Body) == 0 {
		return value.Unspecified, nil, nil, false
	}
	for _, form := range p.Body[:len(p.Body)-1] {
		v := Eval(callEnv, form)
		if value.IsError(v) {
			return v, nil, nil, false
		}
	}
	return nil, callEnv, p.Body[len(p.Body)-1], true
}

func bindFormals(p *value.Procedure, args []value.Value) (*value.Environment, value.Value) {
	fixed := p.Formals.Fixed
	if p.Formals.Rest == nil {
		if len(args) != len(fixed) {
			return nil, arityError(p, len(args))
		}
	} else if len(args) < len(fixed) {
		return nil, arityError(p, len(args))
	}
	env := value.NewEnvironment(p.Env)
	for i, sym := range fixed {
		env.Define(sym, args[i])
	}
	if p.Formals.Rest != nil {
		rest := value.SliceToList(args[len(fixed):])
		env.Define(p.Formals.Rest, rest)
	}
	return env, nil
}

func arityError(p *value.Procedure, got int) value.Value {
	name := p.Name
	if name == "" {
		name = "#[lambda]"
	}
	return value.NewError(value.ArityErr, fmt.Sprintf("%s: wrong number of arguments (%d given)", name, got))
}

func describe(v value.Value) string {
	if v == nil {
		return "#f"
	}
	switch t := v.(type) {
	case *value.Symbol:
		return t.Name
	default:
		return fmt.Sprintf("%v", v)
	}
}
