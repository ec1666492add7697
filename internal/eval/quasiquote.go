package eval

import "cozenage/internal/value"

// evalQuasiquote rebuilds expr, evaluating `unquote`/`unquote-splicing`
// forms found at the current nesting depth and leaving everything else
// as literal data. depth starts at 1 for the outermost quasiquote and
// increases on a nested quasiquote, decreases on unquote/unquote-splicing,
// so `,`/`,@` only take effect once depth returns to 0.
func evalQuasiquote(env *value.Environment, expr value.Value, depth int) value.Value {
	switch t := expr.(type) {
	case *value.Pair:
		if sym, ok := t.Car.(*value.Symbol); ok {
			switch sym.Tag {
			case value.SFUnquote:
				arg, ok := singleArg(t.Cdr)
				if !ok {
					return value.NewError(value.SyntaxErr, "unquote: expected 1 argument")
				}
				if depth == 1 {
					return Eval(env, arg)
				}
				inner := evalQuasiquote(env, arg, depth-1)
				if value.IsError(inner) {
					return inner
				}
				return value.Cons(sym, value.Cons(inner, value.Nil))
			case value.SFQuasiquote:
				arg, ok := singleArg(t.Cdr)
				if !ok {
					return value.NewError(value.SyntaxErr, "quasiquote: expected 1 argument")
				}
				inner := evalQuasiquote(env, arg, depth+1)
				if value.IsError(inner) {
					return inner
				}
				return value.Cons(sym, value.Cons(inner, value.Nil))
			}
		}
		// Check for an unquote-splicing car: `(,@x . rest)`.
		if carPair, ok := t.Car.(*value.Pair); ok {
			if sym, ok := carPair.Car.(*value.Symbol); ok && sym.Tag == value.SFUnquoteSplicing {
				arg, ok := singleArg(carPair.Cdr)
				if !ok {
					return value.NewError(value.SyntaxErr, "unquote-splicing: expected 1 argument")
				}
				restV := evalQuasiquote(env, t.Cdr, depth)
				if value.IsError(restV) {
					return restV
				}
				if depth == 1 {
					spliced := Eval(env, arg)
					if value.IsError(spliced) {
						return spliced
					}
					return appendList(spliced, restV)
				}
				inner := evalQuasiquote(env, arg, depth-1)
				if value.IsError(inner) {
					return inner
				}
				splicedForm := value.Cons(sym, value.Cons(inner, value.Nil))
				return value.Cons(splicedForm, restV)
			}
		}
		carV := evalQuasiquote(env, t.Car, depth)
		if value.IsError(carV) {
			return carV
		}
		cdrV := evalQuasiquote(env, t.Cdr, depth)
		if value.IsError(cdrV) {
			return cdrV
		}
		return value.Cons(carV, cdrV)

	case *value.Vector:
		items := make([]value.Value, 0, len(t.Items))
		for _, item := range t.Items {
			if carPair, ok := item.(*value.Pair); ok && depth == 1 {
				if sym, ok := carPair.Car.(*value.Symbol); ok && sym.Tag == value.SFUnquoteSplicing {
					arg, ok := singleArg(carPair.Cdr)
					if !ok {
						return value.NewError(value.SyntaxErr, "unquote-splicing: expected 1 argument")
					}
					spliced := Eval(env, arg)
					if value.IsError(spliced) {
						return spliced
					}
					elems, ok := value.ListToSlice(spliced)
					if !ok {
						return value.NewError(value.TypeErr, "unquote-splicing: expected a list")
					}
					items = append(items, elems...)
					continue
				}
			}
			v := evalQuasiquote(env, item, depth)
			if value.IsError(v) {
				return v
			}
			items = append(items, v)
		}
		return &value.Vector{Items: items}

	default:
		return expr
	}
}

func singleArg(list value.Value) (value.Value, bool) {
	items, ok := value.ListToSlice(list)
	if !ok || len(items) != 1 {
		return nil, false
	}
	return items[0], true
}

// appendList conses the proper list `head` onto `tail` (the splice
// result of `,@`), preserving tail as-is (it may itself be improper).
func appendList(head, tail value.Value) value.Value {
	items, ok := value.ListToSlice(head)
	if !ok {
		return value.NewError(value.TypeErr, "unquote-splicing: expected a list")
	}
	result := tail
	for i := len(items) - 1; i >= 0; i-- {
		result = value.Cons(items[i], result)
	}
	return result
}
