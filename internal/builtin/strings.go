package builtin

import (
	"strings"
	"unicode"

	"cozenage/internal/value"
)

func (r *registry) registerStrings() {
	r.def("string-length", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("string-length", args, 1); err != nil {
			return err
		}
		s, err := asString("string-length", args[0])
		if err != nil {
			return err
		}
		return value.Integer(s.ClusterLen())
	})
	r.def("string-ref", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("string-ref", args, 2); err != nil {
			return err
		}
		s, err := asString("string-ref", args[0])
		if err != nil {
			return err
		}
		i, ierr := asIndex("string-ref", args[1])
		if ierr != nil {
			return ierr
		}
		runes := s.Runes()
		if i >= len(runes) {
			return value.NewError(value.IndexErr, "string-ref: index out of range")
		}
		return value.Character(runes[i])
	})
	r.def("string-set!", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("string-set!", args, 3); err != nil {
			return err
		}
		s, err := asString("string-set!", args[0])
		if err != nil {
			return err
		}
		i, ierr := asIndex("string-set!", args[1])
		if ierr != nil {
			return ierr
		}
		c, cerr := asChar("string-set!", args[2])
		if cerr != nil {
			return cerr
		}
		if !s.SetChar(i, rune(c)) {
			return value.NewError(value.IndexErr, "string-set!: index out of range")
		}
		return value.Unspecified
	})
	r.def("string-append", func(_ *value.Environment, args []value.Value) value.Value {
		var sb strings.Builder
		for _, a := range args {
			s, err := asString("string-append", a)
			if err != nil {
				return err
			}
			sb.WriteString(s.Go())
		}
		return value.NewString(sb.String())
	})
	r.def("substring", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("substring", args, 2, 3); err != nil {
			return err
		}
		s, err := asString("substring", args[0])
		if err != nil {
			return err
		}
		runes := s.Runes()
		start, end, rerr := rangeArgs("substring", args[1:], len(runes))
		if rerr != nil {
			return rerr
		}
		return value.NewString(string(runes[start:end]))
	})
	r.def("string-copy", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("string-copy", args, 1, 3); err != nil {
			return err
		}
		s, err := asString("string-copy", args[0])
		if err != nil {
			return err
		}
		runes := s.Runes()
		start, end, rerr := rangeArgs("string-copy", args[1:], len(runes))
		if rerr != nil {
			return rerr
		}
		return value.NewString(string(runes[start:end]))
	})
	r.def("string->list", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("string->list", args, 1, 3); err != nil {
			return err
		}
		s, err := asString("string->list", args[0])
		if err != nil {
			return err
		}
		runes := s.Runes()
		start, end, rerr := rangeArgs("string->list", args[1:], len(runes))
		if rerr != nil {
			return rerr
		}
		items := make([]value.Value, 0, end-start)
		for _, rr := range runes[start:end] {
			items = append(items, value.Character(rr))
		}
		return value.SliceToList(items)
	})
	r.def("list->string", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("list->string", args, 1); err != nil {
			return err
		}
		items, ok := value.ListToSlice(args[0])
		if !ok {
			return typeErr("list->string", "list", args[0])
		}
		runes := make([]rune, len(items))
		for i, it := range items {
			c, cerr := asChar("list->string", it)
			if cerr != nil {
				return cerr
			}
			runes[i] = rune(c)
		}
		return value.NewString(string(runes))
	})
	r.def("string", func(_ *value.Environment, args []value.Value) value.Value {
		runes := make([]rune, len(args))
		for i, a := range args {
			c, cerr := asChar("string", a)
			if cerr != nil {
				return cerr
			}
			runes[i] = rune(c)
		}
		return value.NewString(string(runes))
	})
	r.def("make-string", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("make-string", args, 1, 2); err != nil {
			return err
		}
		n, ierr := asIndex("make-string", args[0])
		if ierr != nil {
			return ierr
		}
		fill := rune(' ')
		if len(args) == 2 {
			c, cerr := asChar("make-string", args[1])
			if cerr != nil {
				return cerr
			}
			fill = rune(c)
		}
		runes := make([]rune, n)
		for i := range runes {
			runes[i] = fill
		}
		return value.NewString(string(runes))
	})
	r.def("string-reverse", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("string-reverse", args, 1); err != nil {
			return err
		}
		s, serr := asString("string-reverse", args[0])
		if serr != nil {
			return serr
		}
		return reverseString(s)
	})
	r.def("string-upcase", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("string-upcase", args, 1); err != nil {
			return err
		}
		s, serr := asString("string-upcase", args[0])
		if serr != nil {
			return serr
		}
		return value.NewString(strings.ToUpper(s.Go()))
	})
	r.def("string-downcase", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("string-downcase", args, 1); err != nil {
			return err
		}
		s, serr := asString("string-downcase", args[0])
		if serr != nil {
			return serr
		}
		return value.NewString(strings.ToLower(s.Go()))
	})
	r.def("string->symbol", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("string->symbol", args, 1); err != nil {
			return err
		}
		s, serr := asString("string->symbol", args[0])
		if serr != nil {
			return serr
		}
		return value.Intern(s.Go())
	})
	r.def("symbol->string", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("symbol->string", args, 1); err != nil {
			return err
		}
		sym, serr := asSymbol("symbol->string", args[0])
		if serr != nil {
			return serr
		}
		return value.NewString(sym.Name)
	})
	r.def("symbol=?", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityMin("symbol=?", args, 1); err != nil {
			return err
		}
		first, serr := asSymbol("symbol=?", args[0])
		if serr != nil {
			return serr
		}
		for _, a := range args[1:] {
			sym, serr := asSymbol("symbol=?", a)
			if serr != nil {
				return serr
			}
			if sym != first {
				return value.False
			}
		}
		return value.True
	})
	r.def("string-fill!", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("string-fill!", args, 2, 4); err != nil {
			return err
		}
		s, serr := asString("string-fill!", args[0])
		if serr != nil {
			return serr
		}
		c, cerr := asChar("string-fill!", args[1])
		if cerr != nil {
			return cerr
		}
		runes := s.Runes()
		start, end, rerr := rangeArgs("string-fill!", args[2:], len(runes))
		if rerr != nil {
			return rerr
		}
		for i := start; i < end; i++ {
			s.SetChar(i, rune(c))
		}
		return value.Unspecified
	})
	r.def("string-contains?", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("string-contains?", args, 2); err != nil {
			return err
		}
		hay, serr := asString("string-contains?", args[0])
		if serr != nil {
			return serr
		}
		needle, nerr := asString("string-contains?", args[1])
		if nerr != nil {
			return nerr
		}
		return value.Bool(strings.Contains(hay.Go(), needle.Go()))
	})
	r.def("string-split", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("string-split", args, 2); err != nil {
			return err
		}
		s, serr := asString("string-split", args[0])
		if serr != nil {
			return serr
		}
		sep, seperr := asString("string-split", args[1])
		if seperr != nil {
			return seperr
		}
		parts := strings.Split(s.Go(), sep.Go())
		items := make([]value.Value, len(parts))
		for i, p := range parts {
			items[i] = value.NewString(p)
		}
		return value.SliceToList(items)
	})

	registerStringCompare(r)

	r.def("string->vector", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("string->vector", args, 1); err != nil {
			return err
		}
		s, serr := asString("string->vector", args[0])
		if serr != nil {
			return serr
		}
		runes := s.Runes()
		items := make([]value.Value, len(runes))
		for i, rr := range runes {
			items[i] = value.Character(rr)
		}
		return &value.Vector{Items: items}
	})
	r.def("vector->string", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("vector->string", args, 1); err != nil {
			return err
		}
		vec, verr := asVector("vector->string", args[0])
		if verr != nil {
			return verr
		}
		runes := make([]rune, len(vec.Items))
		for i, it := range vec.Items {
			c, cerr := asChar("vector->string", it)
			if cerr != nil {
				return cerr
			}
			runes[i] = rune(c)
		}
		return value.NewString(string(runes))
	})

	registerCharBuiltins(r)
}

func registerStringCompare(r *registry) {
	cmp := func(name string, want func(c int) bool, ci bool) {
		r.def(name, func(_ *value.Environment, args []value.Value) value.Value {
			if err := checkArityMin(name, args, 1); err != nil {
				return err
			}
			prev, perr := asString(name, args[0])
			if perr != nil {
				return perr
			}
			prevStr := prev.Go()
			if ci {
				prevStr = strings.ToLower(prevStr)
			}
			for _, a := range args[1:] {
				s, serr := asString(name, a)
				if serr != nil {
					return serr
				}
				cur := s.Go()
				if ci {
					cur = strings.ToLower(cur)
				}
				if !want(strings.Compare(prevStr, cur)) {
					return value.False
				}
				prevStr = cur
			}
			return value.True
		})
	}
	cmp("string=?", func(c int) bool { return c == 0 }, false)
	cmp("string<?", func(c int) bool { return c < 0 }, false)
	cmp("string>?", func(c int) bool { return c > 0 }, false)
	cmp("string<=?", func(c int) bool { return c <= 0 }, false)
	cmp("string>=?", func(c int) bool { return c >= 0 }, false)
	cmp("string-ci=?", func(c int) bool { return c == 0 }, true)
	cmp("string-ci<?", func(c int) bool { return c < 0 }, true)
	cmp("string-ci>?", func(c int) bool { return c > 0 }, true)
}

func registerCharBuiltins(r *registry) {
	r.def("char->integer", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("char->integer", args, 1); err != nil {
			return err
		}
		c, cerr := asChar("char->integer", args[0])
		if cerr != nil {
			return cerr
		}
		return value.Integer(c)
	})
	r.def("integer->char", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("integer->char", args, 1); err != nil {
			return err
		}
		n, ok := args[0].(value.Integer)
		if !ok {
			return typeErr("integer->char", "exact integer", args[0])
		}
		return value.Character(rune(n))
	})
	r.def("char-upcase", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("char-upcase", args, 1); err != nil {
			return err
		}
		c, cerr := asChar("char-upcase", args[0])
		if cerr != nil {
			return cerr
		}
		return value.Character(unicode.ToUpper(rune(c)))
	})
	r.def("char-downcase", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("char-downcase", args, 1); err != nil {
			return err
		}
		c, cerr := asChar("char-downcase", args[0])
		if cerr != nil {
			return cerr
		}
		return value.Character(unicode.ToLower(rune(c)))
	})

	charPred := func(name string, test func(rune) bool) {
		r.def(name, func(_ *value.Environment, args []value.Value) value.Value {
			if err := checkArity(name, args, 1); err != nil {
				return err
			}
			c, cerr := asChar(name, args[0])
			if cerr != nil {
				return cerr
			}
			return value.Bool(test(rune(c)))
		})
	}
	charPred("char-alphabetic?", unicode.IsLetter)
	charPred("char-numeric?", unicode.IsDigit)
	charPred("char-whitespace?", unicode.IsSpace)
	charPred("char-upper-case?", unicode.IsUpper)
	charPred("char-lower-case?", unicode.IsLower)

	cmp := func(name string, want func(c int) bool, ci bool) {
		r.def(name, func(_ *value.Environment, args []value.Value) value.Value {
			if err := checkArityMin(name, args, 1); err != nil {
				return err
			}
			prev, perr := asChar(name, args[0])
			if perr != nil {
				return perr
			}
			for _, a := range args[1:] {
				c, cerr := asChar(name, a)
				if cerr != nil {
					return cerr
				}
				pv, cv := rune(prev), rune(c)
				if ci {
					pv, cv = unicode.ToLower(pv), unicode.ToLower(cv)
				}
				d := int(pv) - int(cv)
				if !want(d) {
					return value.False
				}
				prev = c
			}
			return value.True
		})
	}
	cmp("char=?", func(c int) bool { return c == 0 }, false)
	cmp("char<?", func(c int) bool { return c < 0 }, false)
	cmp("char>?", func(c int) bool { return c > 0 }, false)
	cmp("char<=?", func(c int) bool { return c <= 0 }, false)
	cmp("char>=?", func(c int) bool { return c >= 0 }, false)
	cmp("char-ci=?", func(c int) bool { return c == 0 }, true)
}


// reverseString reverses s grapheme-cluster-aware, taking the ASCII fast
// path when possible, for string-reverse and the polymorphic rev.
func reverseString(s *value.String) *value.String {
	if s.IsASCII() {
		b := s.Bytes()
		out := make([]byte, len(b))
		for i, c := range b {
			out[len(b)-1-i] = c
		}
		return value.NewString(string(out))
	}
	clusters := value.GraphemeClusters(s.Go())
	var sb strings.Builder
	for i := len(clusters) - 1; i >= 0; i-- {
		sb.WriteString(clusters[i])
	}
	return value.NewString(sb.String())
}
