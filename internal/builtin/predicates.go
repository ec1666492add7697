package builtin

import (
	"math"

	"cozenage/internal/value"
)

func (r *registry) registerPredicates() {
	r.def("eq?", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("eq?", args, 2); err != nil {
			return err
		}
		return value.Bool(value.Eq(args[0], args[1]))
	})
	r.def("eqv?", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("eqv?", args, 2); err != nil {
			return err
		}
		return value.Bool(value.Eqv(args[0], args[1]))
	})
	r.def("equal?", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("equal?", args, 2); err != nil {
			return err
		}
		return value.Bool(value.Equal(args[0], args[1]))
	})
	r.def("not", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("not", args, 1); err != nil {
			return err
		}
		return value.Bool(!value.IsTruthy(args[0]))
	})

	typePred := func(name string, test func(value.Value) bool) {
		r.def(name, func(_ *value.Environment, args []value.Value) value.Value {
			if err := checkArity(name, args, 1); err != nil {
				return err
			}
			return value.Bool(test(args[0]))
		})
	}

	typePred("null?", func(v value.Value) bool { _, ok := v.(value.NilValue); return ok })
	typePred("pair?", func(v value.Value) bool { _, ok := v.(*value.Pair); return ok })
	typePred("symbol?", func(v value.Value) bool { _, ok := v.(*value.Symbol); return ok })
	typePred("string?", func(v value.Value) bool { _, ok := v.(*value.String); return ok })
	typePred("char?", func(v value.Value) bool { _, ok := v.(value.Character); return ok })
	typePred("boolean?", func(v value.Value) bool { _, ok := v.(value.Boolean); return ok })
	typePred("vector?", func(v value.Value) bool { _, ok := v.(*value.Vector); return ok })
	typePred("bytevector?", func(v value.Value) bool { _, ok := v.(*value.Bytevector); return ok })
	typePred("procedure?", func(v value.Value) bool { _, ok := v.(*value.Procedure); return ok })
	typePred("port?", func(v value.Value) bool { _, ok := v.(*value.Port); return ok })
	typePred("input-port?", func(v value.Value) bool { p, ok := v.(*value.Port); return ok && p.Dir == value.DirInput })
	typePred("output-port?", func(v value.Value) bool { p, ok := v.(*value.Port); return ok && p.Dir == value.DirOutput })
	typePred("eof-object?", func(v value.Value) bool { _, ok := v.(value.EOFValue); return ok })
	typePred("promise?", func(v value.Value) bool { _, ok := v.(*value.Promise); return ok })
	typePred("error-object?", func(v value.Value) bool { _, ok := v.(*value.ErrorV); return ok })
	typePred("number?", value.IsNumber)
	typePred("complex?", value.IsNumber)
	typePred("list?", isProperList)

	typePred("integer?", func(v value.Value) bool {
		switch t := v.(type) {
		case value.Integer, *value.BigInt:
			return true
		case value.Real:
			return float64(t) == float64(int64(t))
		default:
			return false
		}
	})
	typePred("rational?", func(v value.Value) bool {
		switch v.(type) {
		case value.Integer, *value.BigInt, value.Rational, value.Real:
			return true
		default:
			return false
		}
	})
	typePred("real?", func(v value.Value) bool {
		switch v.(type) {
		case value.Integer, *value.BigInt, value.Rational, value.Real:
			return true
		default:
			return false
		}
	})
	typePred("exact?", func(v value.Value) bool { return value.IsNumber(v) && value.IsExact(v) })
	typePred("inexact?", func(v value.Value) bool { return value.IsNumber(v) && !value.IsExact(v) })
	typePred("exact-integer?", func(v value.Value) bool {
		switch v.(type) {
		case value.Integer, *value.BigInt:
			return true
		default:
			return false
		}
	})
	typePred("nan?", func(v value.Value) bool { f, ok := v.(value.Real); return ok && f != f })
	typePred("infinite?", func(v value.Value) bool {
		f, ok := v.(value.Real)
		return ok && math.IsInf(float64(f), 0)
	})
	typePred("finite?", func(v value.Value) bool {
		f, ok := v.(value.Real)
		if !ok {
			return value.IsNumber(v)
		}
		return f == f && !math.IsInf(float64(f), 0)
	})
}

func isProperList(v value.Value) bool {
	slow, fast := v, v
	for {
		fp, ok := fast.(*value.Pair)
		if !ok {
			_, isNil := fast.(value.NilValue)
			return isNil
		}
		fast = fp.Cdr
		fp2, ok := fast.(*value.Pair)
		if !ok {
			_, isNil := fast.(value.NilValue)
			return isNil
		}
		fast = fp2.Cdr
		slow = slow.(*value.Pair).Cdr
		if fast == slow {
			return false // cycle
		}
	}
}
