package builtin

import (
	"strconv"

	"cozenage/internal/numeric"
	"cozenage/internal/printer"
	"cozenage/internal/reader"
	"cozenage/internal/value"
)

func checkNum(name string, v value.Value) *value.ErrorV {
	if !value.IsNumber(v) {
		return typeErr(name, "number", v)
	}
	return nil
}

func (r *registry) registerNumeric() {
	r.def("+", func(_ *value.Environment, args []value.Value) value.Value {
		var acc value.Value = value.Integer(0)
		for _, a := range args {
			if err := checkNum("+", a); err != nil {
				return err
			}
			acc = numeric.Add(acc, a)
		}
		return acc
	})
	r.def("*", func(_ *value.Environment, args []value.Value) value.Value {
		var acc value.Value = value.Integer(1)
		for _, a := range args {
			if err := checkNum("*", a); err != nil {
				return err
			}
			acc = numeric.Mul(acc, a)
		}
		return acc
	})
	r.def("-", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityMin("-", args, 1); err != nil {
			return err
		}
		if err := checkNum("-", args[0]); err != nil {
			return err
		}
		if len(args) == 1 {
			return numeric.Negate(args[0])
		}
		acc := args[0]
		for _, a := range args[1:] {
			if err := checkNum("-", a); err != nil {
				return err
			}
			acc = numeric.Sub(acc, a)
		}
		return acc
	})
	r.def("/", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityMin("/", args, 1); err != nil {
			return err
		}
		if err := checkNum("/", args[0]); err != nil {
			return err
		}
		if len(args) == 1 {
			return numeric.Div(value.Integer(1), args[0])
		}
		acc := args[0]
		for _, a := range args[1:] {
			if err := checkNum("/", a); err != nil {
				return err
			}
			acc = numeric.Div(acc, a)
		}
		return acc
	})

	cmp := func(name string, ok func(c int) bool) {
		r.def(name, func(_ *value.Environment, args []value.Value) value.Value {
			if err := checkArityMin(name, args, 1); err != nil {
				return err
			}
			for i, a := range args {
				if err := checkNum(name, a); err != nil {
					return err
				}
				if i > 0 {
					if _, isC := args[i-1].(*value.Complex); isC {
						return typeErr(name, "real number", args[i-1])
					}
					if _, isC := a.(*value.Complex); isC {
						return typeErr(name, "real number", a)
					}
					if !ok(numeric.Compare(args[i-1], a)) {
						return value.False
					}
				}
			}
			return value.True
		})
	}
	cmp("=", func(c int) bool { return c == 0 })
	cmp("<", func(c int) bool { return c < 0 })
	cmp(">", func(c int) bool { return c > 0 })
	cmp("<=", func(c int) bool { return c <= 0 })
	cmp(">=", func(c int) bool { return c >= 0 })

	unary := func(name string, fn func(value.Value) value.Value) {
		r.def(name, func(_ *value.Environment, args []value.Value) value.Value {
			if err := checkArity(name, args, 1); err != nil {
				return err
			}
			if err := checkNum(name, args[0]); err != nil {
				return err
			}
			return fn(args[0])
		})
	}
	unary("abs", numeric.Abs)
	unary("floor", numeric.Floor)
	unary("ceiling", numeric.Ceiling)
	unary("truncate", numeric.Truncate)
	unary("round", numeric.Round)
	unary("sqrt", numeric.Sqrt)
	unary("exact", numeric.ToExact)
	unary("inexact", numeric.ToInexact)
	unary("exact->inexact", numeric.ToInexact)
	unary("inexact->exact", numeric.ToExact)
	unary("1+", func(v value.Value) value.Value { return numeric.Add(v, value.Integer(1)) })
	unary("1-", func(v value.Value) value.Value { return numeric.Sub(v, value.Integer(1)) })
	unary("square", func(v value.Value) value.Value { return numeric.Mul(v, v) })
	unary("numerator", func(v value.Value) value.Value {
		if rat, ok := v.(value.Rational); ok {
			return value.Integer(rat.Num)
		}
		return v
	})
	unary("denominator", func(v value.Value) value.Value {
		if rat, ok := v.(value.Rational); ok {
			return value.Integer(rat.Den)
		}
		return value.Integer(1)
	})

	binary := func(name string, fn func(a, b value.Value) value.Value) {
		r.def(name, func(_ *value.Environment, args []value.Value) value.Value {
			if err := checkArity(name, args, 2); err != nil {
				return err
			}
			if err := checkNum(name, args[0]); err != nil {
				return err
			}
			if err := checkNum(name, args[1]); err != nil {
				return err
			}
			return fn(args[0], args[1])
		})
	}
	binary("quotient", numeric.Quotient)
	binary("remainder", numeric.Remainder)
	binary("modulo", numeric.Modulo)
	binary("expt", numeric.Expt)
	binary("gcd", numeric.Gcd)
	binary("lcm", numeric.Lcm)

	r.def("floor/", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("floor/", args, 2); err != nil {
			return err
		}
		q, rem := numeric.FloorDiv(args[0], args[1])
		if value.IsError(q) {
			return q
		}
		return &value.MultipleValues{Items: []value.Value{q, rem}}
	})
	r.def("truncate/", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("truncate/", args, 2); err != nil {
			return err
		}
		q := numeric.Quotient(args[0], args[1])
		if value.IsError(q) {
			return q
		}
		rem := numeric.Remainder(args[0], args[1])
		return &value.MultipleValues{Items: []value.Value{q, rem}}
	})
	r.def("exact-integer-sqrt", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("exact-integer-sqrt", args, 1); err != nil {
			return err
		}
		s, rem := numeric.ExactIntegerSqrt(args[0])
		if value.IsError(s) {
			return s
		}
		return &value.MultipleValues{Items: []value.Value{s, rem}}
	})

	variadicMinMax := func(name string, want func(c int) bool) {
		r.def(name, func(_ *value.Environment, args []value.Value) value.Value {
			if err := checkArityMin(name, args, 1); err != nil {
				return err
			}
			best := args[0]
			inexact := !value.IsExact(args[0])
			for _, a := range args[1:] {
				if err := checkNum(name, a); err != nil {
					return err
				}
				if !value.IsExact(a) {
					inexact = true
				}
				if want(numeric.Compare(a, best)) {
					best = a
				}
			}
			if inexact && value.IsExact(best) {
				return numeric.ToInexact(best)
			}
			return best
		})
	}
	variadicMinMax("min", func(c int) bool { return c < 0 })
	variadicMinMax("max", func(c int) bool { return c > 0 })

	signPred := func(name string, want func(c int) bool) {
		r.def(name, func(_ *value.Environment, args []value.Value) value.Value {
			if err := checkArity(name, args, 1); err != nil {
				return err
			}
			if err := checkNum(name, args[0]); err != nil {
				return err
			}
			return value.Bool(want(numeric.Compare(args[0], value.Integer(0))))
		})
	}
	signPred("zero?", func(c int) bool { return c == 0 })
	signPred("positive?", func(c int) bool { return c > 0 })
	signPred("negative?", func(c int) bool { return c < 0 })

	parity := func(name string, wantOdd bool) {
		r.def(name, func(_ *value.Environment, args []value.Value) value.Value {
			if err := checkArity(name, args, 1); err != nil {
				return err
			}
			n, ok := args[0].(value.Integer)
			if !ok {
				if bi, ok := args[0].(*value.BigInt); ok {
					odd := bi.V.Bit(0) == 1
					return value.Bool(odd == wantOdd)
				}
				return typeErr(name, "integer", args[0])
			}
			odd := n%2 != 0
			return value.Bool(odd == wantOdd)
		})
	}
	parity("odd?", true)
	parity("even?", false)

	r.def("number->string", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("number->string", args, 1, 2); err != nil {
			return err
		}
		if err := checkNum("number->string", args[0]); err != nil {
			return err
		}
		radix := 10
		if len(args) == 2 {
			n, ok := args[1].(value.Integer)
			if !ok {
				return typeErr("number->string", "integer radix", args[1])
			}
			radix = int(n)
		}
		if radix == 10 {
			return value.NewString(printer.Write(args[0]))
		}
		n, ok := args[0].(value.Integer)
		if !ok {
			return value.NewError(value.ValueErr, "number->string: non-decimal radix requires an exact integer")
		}
		return value.NewString(strconv.FormatInt(int64(n), radix))
	})
	r.def("string->number", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("string->number", args, 1, 2); err != nil {
			return err
		}
		s, err := asString("string->number", args[0])
		if err != nil {
			return err
		}
		text := s.Go()
		radix := 10
		if len(args) == 2 {
			n, ok := args[1].(value.Integer)
			if ok {
				radix = int(n)
			}
		}
		if radix != 10 {
			n, perr := strconv.ParseInt(text, radix, 64)
			if perr != nil {
				return value.False
			}
			return value.Integer(n)
		}
		p := reader.NewParser(text)
		datum, rerr := p.ReadDatum()
		if rerr != nil || datum == nil {
			return value.False
		}
		if !value.IsNumber(datum) {
			return value.False
		}
		return datum
	})
}
