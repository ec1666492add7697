package eval

import (
	"cozenage/internal/value"
)

// evalSpecialForm dispatches on a special-form tag. It returns either a
// final result (isTail=false) or an (env, expr) pair for the caller's
// trampoline to continue evaluating in tail position.
func evalSpecialForm(tag value.SpecialForm, env *value.Environment, form *value.Pair) (result value.Value, tailEnv *value.Environment, tailExpr value.Value, isTail bool) {
	args, ok := value.ListToSlice(form.Cdr)
	if !ok {
		return value.NewError(value.SyntaxErr, "ill-formed special form (improper argument list)"), nil, nil, false
	}
	switch tag {
	case value.SFQuote:
		if len(args) != 1 {
			return arity1Err("quote"), nil, nil, false
		}
		// Copy the literal so a later set-car!/vector-set!/string-set! on
		// the returned datum can't corrupt the AST node a repeated
		// evaluation (e.g. inside a loop) would return next time.
		return value.DeepCopy(args[0]), nil, nil, false

	case value.SFIf:
		return evalIf(env, args)

	case value.SFDefine:
		return evalDefine(env, args), nil, nil, false

	case value.SFSet:
		return evalSet(env, args), nil, nil, false

	case value.SFLambda:
		return evalLambda(env, args), nil, nil, false

	case value.SFBegin:
		return tailSequence(env, args)

	case value.SFLet:
		return evalLet(env, args)

	case value.SFLetStar:
		return evalLetStar(env, args)

	case value.SFLetrec:
		return evalLetrec(env, args)

	case value.SFCond:
		return evalCond(env, args)

	case value.SFCase:
		return evalCase(env, args)

	case value.SFWhen:
		return evalWhen(env, args, true)

	case value.SFUnless:
		return evalWhen(env, args, false)

	case value.SFAnd:
		return evalAnd(env, args)

	case value.SFOr:
		return evalOr(env, args)

	case value.SFQuasiquote:
		if len(args) != 1 {
			return arity1Err("quasiquote"), nil, nil, false
		}
		v := evalQuasiquote(env, args[0], 1)
		return v, nil, nil, false

	case value.SFUnquote, value.SFUnquoteSplicing:
		return value.NewError(value.SyntaxErr, "unquote: not inside a quasiquote"), nil, nil, false

	case value.SFDelay, value.SFDelayForce:
		if len(args) != 1 {
			return arity1Err("delay"), nil, nil, false
		}
		return &value.Promise{Status: value.PromiseReady, Expr: args[0], Env: env}, nil, nil, false

	case value.SFConsStream:
		return evalConsStream(env, args), nil, nil, false

	case value.SFDo:
		return evalDo(env, args)

	case value.SFElse, value.SFArrow:
		return value.NewError(value.SyntaxErr, "else/=> used outside cond or case"), nil, nil, false

	default:
		return value.NewError(value.SyntaxErr, "unimplemented special form"), nil, nil, false
	}
}

func arity1Err(name string) value.Value {
	return value.NewError(value.ArityErr, name+": expected exactly 1 argument")
}

func evalIf(env *value.Environment, args []value.Value) (value.Value, *value.Environment, value.Value, bool) {
	if len(args) != 2 && len(args) != 3 {
		return value.NewError(value.SyntaxErr, "if: expected 2 or 3 arguments"), nil, nil, false
	}
	test := Eval(env, args[0])
	if value.IsError(test) {
		return test, nil, nil, false
	}
	if value.IsTruthy(test) {
		return nil, env, args[1], true
	}
	if len(args) == 3 {
		return nil, env, args[2], true
	}
	return value.Unspecified, nil, nil, false
}

func evalDefine(env *value.Environment, args []value.Value) value.Value {
	if len(args) == 0 {
		return value.NewError(value.SyntaxErr, "define: missing name")
	}
	switch target := args[0].(type) {
	case *value.Symbol:
		var v value.Value = value.Unspecified
		if len(args) >= 2 {
			v = Eval(env, args[1])
			if value.IsError(v) {
				return v
			}
		}
		if p, ok := v.(*value.Procedure); ok && p.Name == "" {
			p.Name = target.Name
		}
		env.Define(target, v)
		return value.Intern(target.Name)

	case *value.Pair:
		nameSym, ok := target.Car.(*value.Symbol)
		if !ok {
			return value.NewError(value.SyntaxErr, "define: invalid procedure name")
		}
		formals, err := parseFormals(target.Cdr)
		if err != nil {
			return err
		}
		proc := &value.Procedure{Name: nameSym.Name, Formals: formals, Body: args[1:], Env: env}
		env.Define(nameSym, proc)
		return value.Intern(nameSym.Name)

	default:
		return value.NewError(value.SyntaxErr, "define: invalid target")
	}
}

func evalSet(env *value.Environment, args []value.Value) value.Value {
	if len(args) != 2 {
		return value.NewError(value.SyntaxErr, "set!: expected 2 arguments")
	}
	sym, ok := args[0].(*value.Symbol)
	if !ok {
		return value.NewError(value.SyntaxErr, "set!: target must be a symbol")
	}
	v := Eval(env, args[1])
	if value.IsError(v) {
		return v
	}
	if !env.Set(sym, v) {
		return value.NewError(value.GenErr, "unbound variable: "+sym.Name)
	}
	return value.Unspecified
}

func evalLambda(env *value.Environment, args []value.Value) value.Value {
	if len(args) == 0 {
		return value.NewError(value.SyntaxErr, "lambda: missing formals")
	}
	formals, err := parseFormals(args[0])
	if err != nil {
		return err
	}
	return &value.Procedure{Formals: formals, Body: args[1:], Env: env}
}

// parseFormals accepts a proper list (fixed args only), an improper list
// (fixed args plus a rest parameter), or a bare symbol (all args collect
// into one rest parameter).
func parseFormals(spec value.Value) (*value.Formals, value.Value) {
	if sym, ok := spec.(*value.Symbol); ok {
		return &value.Formals{Rest: sym}, nil
	}
	var fixed []*value.Symbol
	cur := spec
	for {
		switch t := cur.(type) {
		case value.NilValue:
			return &value.Formals{Fixed: fixed}, nil
		case *value.Pair:
			sym, ok := t.Car.(*value.Symbol)
			if !ok {
				return nil, value.NewError(value.SyntaxErr, "lambda: formal parameter must be a symbol")
			}
			fixed = append(fixed, sym)
			cur = t.Cdr
		case *value.Symbol:
			return &value.Formals{Fixed: fixed, Rest: t}, nil
		default:
			return nil, value.NewError(value.SyntaxErr, "lambda: malformed formals")
		}
	}
}

// tailSequence evaluates all but the last expression for effect, then
// hands the last back as a tail position.
func tailSequence(env *value.Environment, body []value.Value) (value.Value, *value.Environment, value.Value, bool) {
	if len(body) == 0 {
		return value.Unspecified, nil, nil, false
	}
	for _, e := range body[:len(body)-1] {
		v := Eval(env, e)
		if value.IsError(v) {
			return v, nil, nil, false
		}
	}
	return nil, env, body[len(body)-1], true
}

func evalLet(env *value.Environment, args []value.Value) (value.Value, *value.Environment, value.Value, bool) {
	if len(args) < 1 {
		return value.NewError(value.SyntaxErr, "let: missing bindings"), nil, nil, false
	}
	if name, ok := args[0].(*value.Symbol); ok {
		return evalNamedLet(env, name, args[1:])
	}
	bindings, ok := value.ListToSlice(args[0])
	if !ok {
		return value.NewError(value.SyntaxErr, "let: malformed bindings"), nil, nil, false
	}
	newEnv := value.NewEnvironment(env)
	for _, b := range bindings {
		sym, initExpr, err := bindingPair(b)
		if err != nil {
			return err, nil, nil, false
		}
		v := Eval(env, initExpr)
		if value.IsError(v) {
			return v, nil, nil, false
		}
		newEnv.Define(sym, v)
	}
	return tailSequence(newEnv, args[1:])
}

func evalNamedLet(env *value.Environment, name *value.Symbol, rest []value.Value) (value.Value, *value.Environment, value.Value, bool) {
	if len(rest) < 1 {
		return value.NewError(value.SyntaxErr, "let: missing bindings"), nil, nil, false
	}
	bindings, ok := value.ListToSlice(rest[0])
	if !ok {
		return value.NewError(value.SyntaxErr, "let: malformed bindings"), nil, nil, false
	}
	var formals []*value.Symbol
	var initVals []value.Value
	for _, b := range bindings {
		sym, initExpr, err := bindingPair(b)
		if err != nil {
			return err, nil, nil, false
		}
		v := Eval(env, initExpr)
		if value.IsError(v) {
			return v, nil, nil, false
		}
		formals = append(formals, sym)
		initVals = append(initVals, v)
	}
	loopEnv := value.NewEnvironment(env)
	proc := &value.Procedure{Name: name.Name, Formals: &value.Formals{Fixed: formals}, Body: rest[1:], Env: loopEnv}
	loopEnv.Define(name, proc)
	res, tailEnv, tailExpr, isTail := applyTail(proc, initVals)
	return res, tailEnv, tailExpr, isTail
}

func evalLetStar(env *value.Environment, args []value.Value) (value.Value, *value.Environment, value.Value, bool) {
	if len(args) < 1 {
		return value.NewError(value.SyntaxErr, "let*: missing bindings"), nil, nil, false
	}
	bindings, ok := value.ListToSlice(args[0])
	if !ok {
		return value.NewError(value.SyntaxErr, "let*: malformed bindings"), nil, nil, false
	}
	newEnv := value.NewEnvironment(env)
	for _, b := range bindings {
		sym, initExpr, err := bindingPair(b)
		if err != nil {
			return err, nil, nil, false
		}
		v := Eval(newEnv, initExpr)
		if value.IsError(v) {
			return v, nil, nil, false
		}
		newEnv.Define(sym, v)
	}
	return tailSequence(newEnv, args[1:])
}

func evalLetrec(env *value.Environment, args []value.Value) (value.Value, *value.Environment, value.Value, bool) {
	if len(args) < 1 {
		return value.NewError(value.SyntaxErr, "letrec: missing bindings"), nil, nil, false
	}
	bindings, ok := value.ListToSlice(args[0])
	if !ok {
		return value.NewError(value.SyntaxErr, "letrec: malformed bindings"), nil, nil, false
	}
	newEnv := value.NewEnvironment(env)
	syms := make([]*value.Symbol, len(bindings))
	inits := make([]value.Value, len(bindings))
	for i, b := range bindings {
		sym, initExpr, err := bindingPair(b)
		if err != nil {
			return err, nil, nil, false
		}
		syms[i] = sym
		inits[i] = initExpr
		newEnv.Define(sym, value.Undefined)
	}
	for i, sym := range syms {
		v := Eval(newEnv, inits[i])
		if value.IsError(v) {
			return v, nil, nil, false
		}
		newEnv.Define(sym, v)
	}
	return tailSequence(newEnv, args[1:])
}

func bindingPair(b value.Value) (*value.Symbol, value.Value, value.Value) {
	p, ok := b.(*value.Pair)
	if !ok {
		return nil, nil, value.NewError(value.SyntaxErr, "malformed binding")
	}
	sym, ok := p.Car.(*value.Symbol)
	if !ok {
		return nil, nil, value.NewError(value.SyntaxErr, "binding name must be a symbol")
	}
	rest, ok := value.ListToSlice(p.Cdr)
	if !ok || len(rest) == 0 {
		return sym, value.Unspecified, nil
	}
	return sym, rest[0], nil
}

func evalCond(env *value.Environment, clauses []value.Value) (value.Value, *value.Environment, value.Value, bool) {
	for _, c := range clauses {
		parts, ok := value.ListToSlice(c)
		if !ok || len(parts) == 0 {
			return value.NewError(value.SyntaxErr, "cond: malformed clause"), nil, nil, false
		}
		if sym, ok := parts[0].(*value.Symbol); ok && sym.Tag == value.SFElse {
			return tailSequence(env, parts[1:])
		}
		test := Eval(env, parts[0])
		if value.IsError(test) {
			return test, nil, nil, false
		}
		if !value.IsTruthy(test) {
			continue
		}
		if len(parts) == 1 {
			return test, nil, nil, false
		}
		if sym, ok := parts[1].(*value.Symbol); ok && sym.Tag == value.SFArrow {
			if len(parts) != 3 {
				return value.NewError(value.SyntaxErr, "cond: malformed => clause"), nil, nil, false
			}
			proc := Eval(env, parts[2])
			if value.IsError(proc) {
				return proc, nil, nil, false
			}
			return applyTail(proc, []value.Value{test})
		}
		return tailSequence(env, parts[1:])
	}
	return value.Unspecified, nil, nil, false
}

func evalCase(env *value.Environment, args []value.Value) (value.Value, *value.Environment, value.Value, bool) {
	if len(args) < 1 {
		return value.NewError(value.SyntaxErr, "case: missing key"), nil, nil, false
	}
	key := Eval(env, args[0])
	if value.IsError(key) {
		return key, nil, nil, false
	}
	for _, c := range args[1:] {
		parts, ok := value.ListToSlice(c)
		if !ok || len(parts) == 0 {
			return value.NewError(value.SyntaxErr, "case: malformed clause"), nil, nil, false
		}
		isElse := false
		if sym, ok := parts[0].(*value.Symbol); ok && sym.Tag == value.SFElse {
			isElse = true
		}
		matched := isElse
		if !matched {
			datums, ok := value.ListToSlice(parts[0])
			if !ok {
				return value.NewError(value.SyntaxErr, "case: malformed datum list"), nil, nil, false
			}
			for _, d := range datums {
				if value.Eqv(key, d) {
					matched = true
					break
				}
			}
		}
		if !matched {
			continue
		}
		if len(parts) >= 2 {
			if sym, ok := parts[1].(*value.Symbol); ok && sym.Tag == value.SFArrow {
				if len(parts) != 3 {
					return value.NewError(value.SyntaxErr, "case: malformed => clause"), nil, nil, false
				}
				proc := Eval(env, parts[2])
				if value.IsError(proc) {
					return proc, nil, nil, false
				}
				return applyTail(proc, []value.Value{key})
			}
		}
		return tailSequence(env, parts[1:])
	}
	return value.Unspecified, nil, nil, false
}

func evalWhen(env *value.Environment, args []value.Value, wantTrue bool) (value.Value, *value.Environment, value.Value, bool) {
	if len(args) < 1 {
		return value.NewError(value.SyntaxErr, "when/unless: missing test"), nil, nil, false
	}
	test := Eval(env, args[0])
	if value.IsError(test) {
		return test, nil, nil, false
	}
	if value.IsTruthy(test) == wantTrue {
		return tailSequence(env, args[1:])
	}
	return value.Unspecified, nil, nil, false
}

func evalAnd(env *value.Environment, args []value.Value) (value.Value, *value.Environment, value.Value, bool) {
	if len(args) == 0 {
		return value.True, nil, nil, false
	}
	for _, e := range args[:len(args)-1] {
		v := Eval(env, e)
		if value.IsError(v) {
			return v, nil, nil, false
		}
		if !value.IsTruthy(v) {
			return v, nil, nil, false
		}
	}
	return nil, env, args[len(args)-1], true
}

func evalOr(env *value.Environment, args []value.Value) (value.Value, *value.Environment, value.Value, bool) {
	if len(args) == 0 {
		return value.False, nil, nil, false
	}
	for _, e := range args[:len(args)-1] {
		v := Eval(env, e)
		if value.IsError(v) {
			return v, nil, nil, false
		}
		if value.IsTruthy(v) {
			return v, nil, nil, false
		}
	}
	return nil, env, args[len(args)-1], true
}

func evalConsStream(env *value.Environment, args []value.Value) value.Value {
	if len(args) != 2 {
		return value.NewError(value.ArityErr, "cons-stream: expected 2 arguments")
	}
	head := Eval(env, args[0])
	if value.IsError(head) {
		return head
	}
	return &value.Stream{Head: head, Tail: &value.Promise{Status: value.PromiseReady, Expr: args[1], Env: env}}
}

// evalDo implements the iterative `do` loop: step expressions for all
// variables are evaluated against the *pre-iteration* bindings, then
// applied together, matching letrec*-style simultaneous update.
func evalDo(env *value.Environment, args []value.Value) (value.Value, *value.Environment, value.Value, bool) {
	if len(args) < 2 {
		return value.NewError(value.SyntaxErr, "do: missing clauses"), nil, nil, false
	}
	specs, ok := value.ListToSlice(args[0])
	if !ok {
		return value.NewError(value.SyntaxErr, "do: malformed variable clauses"), nil, nil, false
	}
	testClause, ok := value.ListToSlice(args[1])
	if !ok || len(testClause) == 0 {
		return value.NewError(value.SyntaxErr, "do: malformed test clause"), nil, nil, false
	}
	commands := args[2:]

	type doVar struct {
		sym  *value.Symbol
		step value.Value // nil if no step (var stays fixed)
	}
	vars := make([]doVar, len(specs))
	loopEnv := value.NewEnvironment(env)
	for i, s := range specs {
		parts, ok := value.ListToSlice(s)
		if !ok || len(parts) < 2 {
			return value.NewError(value.SyntaxErr, "do: malformed variable clause"), nil, nil, false
		}
		sym, ok := parts[0].(*value.Symbol)
		if !ok {
			return value.NewError(value.SyntaxErr, "do: variable must be a symbol"), nil, nil, false
		}
		init := Eval(env, parts[1])
		if value.IsError(init) {
			return init, nil, nil, false
		}
		loopEnv.Define(sym, init)
		var step value.Value
		if len(parts) >= 3 {
			step = parts[2]
		}
		vars[i] = doVar{sym: sym, step: step}
	}

	for {
		test := Eval(loopEnv, testClause[0])
		if value.IsError(test) {
			return test, nil, nil, false
		}
		if value.IsTruthy(test) {
			return tailSequence(loopEnv, testClause[1:])
		}
		for _, c := range commands {
			v := Eval(loopEnv, c)
			if value.IsError(v) {
				return v, nil, nil, false
			}
		}
		nextVals := make([]value.Value, len(vars))
		for i, dv := range vars {
			if dv.step == nil {
				v, _ := loopEnv.Lookup(dv.sym)
				nextVals[i] = v
				continue
			}
			v := Eval(loopEnv, dv.step)
			if value.IsError(v) {
				return v, nil, nil, false
			}
			nextVals[i] = v
		}
		next := value.NewEnvironment(env)
		for i, dv := range vars {
			next.Define(dv.sym, nextVals[i])
		}
		loopEnv = next
	}
}
