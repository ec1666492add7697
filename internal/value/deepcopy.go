package value

import "math/big"

// DeepCopy returns a recursive structural copy of v, per the copy policy:
// atomic values and symbols are returned unchanged (identity-preserved);
// numbers/characters copy their payload; pairs/vectors/sexprs recurse;
// strings and errors duplicate their byte payload; builtins share their
// function pointer while closures copy formals/body but share the
// captured environment by reference; ports get a shallow copy that
// shares the underlying handle.
//
// This exists because arithmetic built on mutable accumulators (bignum
// operations in particular) must not alias an operand that the caller
// still holds a reference to.
func DeepCopy(v Value) Value {
	switch t := v.(type) {
	case NilValue, Boolean, EOFValue, UnspecifiedValue, UndefinedValue, *Symbol:
		return v

	case Integer, Real, Character:
		return v

	case *BigInt:
		return &BigInt{V: new(big.Int).Set(t.V)}

	case Rational:
		return Rational{Num: t.Num, Den: t.Den}

	case *Complex:
		return &Complex{Re: DeepCopy(t.Re), Im: DeepCopy(t.Im)}

	case *String:
		cp := make([]byte, len(t.bytes))
		copy(cp, t.bytes)
		return &String{bytes: cp, byteLen: t.byteLen, clusterLen: t.clusterLen, ascii: t.ascii}

	case *ErrorV:
		return &ErrorV{Category: t.Category, Message: t.Message}

	case *Pair:
		return &Pair{Car: DeepCopy(t.Car), Cdr: DeepCopy(t.Cdr), Length: t.Length}

	case *Vector:
		items := make([]Value, len(t.Items))
		for i, e := range t.Items {
			items[i] = DeepCopy(e)
		}
		return &Vector{Items: items}

	case *Bytevector:
		elems := make([]int64, len(t.Elements))
		copy(elems, t.Elements)
		return &Bytevector{Kind: t.Kind, Elements: elems}

	case *Procedure:
		if t.Builtin != nil {
			return t // builtins share the function pointer
		}
		return &Procedure{
			Name:    t.Name,
			Formals: t.Formals,
			Body:    t.Body,
			Env:     t.Env, // captured environment is shared, not copied
		}

	case *Port:
		cp := *t // shallow copy; handle/buffer shared
		return &cp

	case *Promise:
		return &Promise{Status: t.Status, Expr: t.Expr, Env: t.Env, Result: t.Result}

	case *Stream:
		return &Stream{Head: DeepCopy(t.Head), Tail: t.Tail}

	default:
		return v
	}
}
