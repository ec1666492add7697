package builtin

import (
	"golang.org/x/exp/slices"

	"cozenage/internal/value"
)

func (r *registry) registerPairs() {
	r.def("cons", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("cons", args, 2); err != nil {
			return err
		}
		return value.Cons(args[0], args[1])
	})
	r.def("car", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("car", args, 1); err != nil {
			return err
		}
		p, err := asPair("car", args[0])
		if err != nil {
			return err
		}
		return p.Car
	})
	r.def("cdr", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("cdr", args, 1); err != nil {
			return err
		}
		p, err := asPair("cdr", args[0])
		if err != nil {
			return err
		}
		return p.Cdr
	})
	r.def("set-car!", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("set-car!", args, 2); err != nil {
			return err
		}
		p, err := asPair("set-car!", args[0])
		if err != nil {
			return err
		}
		p.Car = args[1]
		return value.Unspecified
	})
	r.def("set-cdr!", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("set-cdr!", args, 2); err != nil {
			return err
		}
		p, err := asPair("set-cdr!", args[0])
		if err != nil {
			return err
		}
		p.Cdr = args[1]
		return value.Unspecified
	})

	registerCxr(r)

	r.def("list", func(_ *value.Environment, args []value.Value) value.Value {
		return value.SliceToList(args)
	})
	r.def("length", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("length", args, 1); err != nil {
			return err
		}
		items, ok := value.ListToSlice(args[0])
		if !ok {
			return typeErr("length", "list", args[0])
		}
		return value.Integer(len(items))
	})
	r.def("append", func(_ *value.Environment, args []value.Value) value.Value {
		if len(args) == 0 {
			return value.Nil
		}
		var all []value.Value
		for _, lst := range args[:len(args)-1] {
			items, ok := value.ListToSlice(lst)
			if !ok {
				return typeErr("append", "list", lst)
			}
			all = append(all, items...)
		}
		result := args[len(args)-1]
		for i := len(all) - 1; i >= 0; i-- {
			result = value.Cons(all[i], result)
		}
		return result
	})
	r.def("reverse", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("reverse", args, 1); err != nil {
			return err
		}
		items, ok := value.ListToSlice(args[0])
		if !ok {
			return typeErr("reverse", "list", args[0])
		}
		var result value.Value = value.Nil
		for _, it := range items {
			result = value.Cons(it, result)
		}
		return result
	})
	r.def("list-tail", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("list-tail", args, 2); err != nil {
			return err
		}
		k, ierr := asIndex("list-tail", args[1])
		if ierr != nil {
			return ierr
		}
		cur := args[0]
		for i := 0; i < k; i++ {
			p, ok := cur.(*value.Pair)
			if !ok {
				return value.NewError(value.IndexErr, "list-tail: index out of range")
			}
			cur = p.Cdr
		}
		return cur
	})
	r.def("list-ref", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("list-ref", args, 2); err != nil {
			return err
		}
		k, ierr := asIndex("list-ref", args[1])
		if ierr != nil {
			return ierr
		}
		cur := args[0]
		for i := 0; i < k; i++ {
			p, ok := cur.(*value.Pair)
			if !ok {
				return value.NewError(value.IndexErr, "list-ref: index out of range")
			}
			cur = p.Cdr
		}
		p, ok := cur.(*value.Pair)
		if !ok {
			return value.NewError(value.IndexErr, "list-ref: index out of range")
		}
		return p.Car
	})
	r.def("list-copy", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("list-copy", args, 1); err != nil {
			return err
		}
		items, ok := value.ListToSlice(args[0])
		if !ok {
			return args[0]
		}
		return value.SliceToList(items)
	})
	r.def("make-list", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("make-list", args, 1, 2); err != nil {
			return err
		}
		n, ierr := asIndex("make-list", args[0])
		if ierr != nil {
			return ierr
		}
		var fill value.Value = value.Unspecified
		if len(args) == 2 {
			fill = args[1]
		}
		items := make([]value.Value, n)
		for i := range items {
			items[i] = fill
		}
		return value.SliceToList(items)
	})
	r.def("list->vector", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("list->vector", args, 1); err != nil {
			return err
		}
		items, ok := value.ListToSlice(args[0])
		if !ok {
			return typeErr("list->vector", "list", args[0])
		}
		return &value.Vector{Items: items}
	})
	r.def("vector->list", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("vector->list", args, 1, 3); err != nil {
			return err
		}
		vec, verr := asVector("vector->list", args[0])
		if verr != nil {
			return verr
		}
		start, end, rerr := rangeArgs("vector->list", args[1:], len(vec.Items))
		if rerr != nil {
			return rerr
		}
		return value.SliceToList(vec.Items[start:end])
	})

	memAssoc(r)
	higherOrder(r)

	r.def("vector-sort!", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("vector-sort!", args, 2); err != nil {
			return err
		}
		proc, perr := asProc("vector-sort!", args[0])
		if perr != nil {
			return perr
		}
		vec, verr := asVector("vector-sort!", args[1])
		if verr != nil {
			return verr
		}
		slices.SortFunc(vec.Items, func(a, b value.Value) int {
			if value.IsTruthy(r.apply(proc, []value.Value{a, b})) {
				return -1
			}
			if value.IsTruthy(r.apply(proc, []value.Value{b, a})) {
				return 1
			}
			return 0
		})
		return value.Unspecified
	})
	r.def("sort", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("sort", args, 2); err != nil {
			return err
		}
		items, ok := value.ListToSlice(args[0])
		if !ok {
			return typeErr("sort", "list", args[0])
		}
		proc, perr := asProc("sort", args[1])
		if perr != nil {
			return perr
		}
		cp := slices.Clone(items)
		slices.SortFunc(cp, func(a, b value.Value) int {
			if value.IsTruthy(r.apply(proc, []value.Value{a, b})) {
				return -1
			}
			if value.IsTruthy(r.apply(proc, []value.Value{b, a})) {
				return 1
			}
			return 0
		})
		return value.SliceToList(cp)
	})
}

// rangeArgs parses the optional (start [end]) trailing arguments shared
// by the -copy/-fill!/->list family of vector/string/bytevector builtins.
func rangeArgs(name string, args []value.Value, length int) (start, end int, err *value.ErrorV) {
	start, end = 0, length
	if len(args) >= 1 {
		start, err = asIndex(name, args[0])
		if err != nil {
			return 0, 0, err
		}
	}
	if len(args) >= 2 {
		end, err = asIndex(name, args[1])
		if err != nil {
			return 0, 0, err
		}
	}
	if start < 0 || end > length || start > end {
		return 0, 0, value.NewError(value.IndexErr, name+": range out of bounds")
	}
	return start, end, nil
}

// registerCxr defines the 28 c[ad]{2,4}r compositions (caar .. cddddr).
func registerCxr(r *registry) {
	paths := []string{
		"aa", "ad", "da", "dd",
		"aaa", "aad", "ada", "add", "daa", "dad", "dda", "ddd",
		"aaaa", "aaad", "aada", "aadd", "adaa", "adad", "adda", "addd",
		"daaa", "daad", "dada", "dadd", "ddaa", "ddad", "ddda", "dddd",
	}
	for _, path := range paths {
		p := path
		name := "c" + p + "r"
		r.def(name, func(_ *value.Environment, args []value.Value) value.Value {
			if err := checkArity(name, args, 1); err != nil {
				return err
			}
			cur := args[0]
			for i := len(p) - 1; i >= 0; i-- {
				pair, err := asPair(name, cur)
				if err != nil {
					return err
				}
				if p[i] == 'a' {
					cur = pair.Car
				} else {
					cur = pair.Cdr
				}
			}
			return cur
		})
	}
}

func memAssoc(r *registry) {
	memBy := func(name string, eq func(a, b value.Value) bool) {
		r.def(name, func(_ *value.Environment, args []value.Value) value.Value {
			if err := checkArity(name, args, 2); err != nil {
				return err
			}
			cur := args[1]
			for {
				p, ok := cur.(*value.Pair)
				if !ok {
					return value.False
				}
				if eq(args[0], p.Car) {
					return p
				}
				cur = p.Cdr
			}
		})
	}
	memBy("memq", value.Eq)
	memBy("memv", value.Eqv)
	memBy("member", value.Equal)

	assBy := func(name string, eq func(a, b value.Value) bool) {
		r.def(name, func(_ *value.Environment, args []value.Value) value.Value {
			if err := checkArity(name, args, 2); err != nil {
				return err
			}
			items, ok := value.ListToSlice(args[1])
			if !ok {
				return typeErr(name, "list", args[1])
			}
			for _, entry := range items {
				p, ok := entry.(*value.Pair)
				if !ok {
					continue
				}
				if eq(args[0], p.Car) {
					return p
				}
			}
			return value.False
		})
	}
	assBy("assq", value.Eq)
	assBy("assv", value.Eqv)
	assBy("assoc", value.Equal)
}

func higherOrder(r *registry) {
	r.def("apply", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityMin("apply", args, 2); err != nil {
			return err
		}
		proc := args[0]
		flat := append([]value.Value{}, args[1:len(args)-1]...)
		tail, ok := value.ListToSlice(args[len(args)-1])
		if !ok {
			return typeErr("apply", "list", args[len(args)-1])
		}
		flat = append(flat, tail...)
		return r.apply(proc, flat)
	})

	r.def("map", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityMin("map", args, 2); err != nil {
			return err
		}
		proc, perr := asProc("map", args[0])
		if perr != nil {
			return perr
		}
		lists := make([][]value.Value, len(args)-1)
		minLen := -1
		for i, lst := range args[1:] {
			items, ok := value.ListToSlice(lst)
			if !ok {
				return typeErr("map", "list", lst)
			}
			lists[i] = items
			if minLen == -1 || len(items) < minLen {
				minLen = len(items)
			}
		}
		out := make([]value.Value, 0, minLen)
		for i := 0; i < minLen; i++ {
			call := make([]value.Value, len(lists))
			for j := range lists {
				call[j] = lists[j][i]
			}
			v := r.apply(proc, call)
			if value.IsError(v) {
				return v
			}
			out = append(out, v)
		}
		return value.SliceToList(out)
	})

	r.def("for-each", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityMin("for-each", args, 2); err != nil {
			return err
		}
		proc, perr := asProc("for-each", args[0])
		if perr != nil {
			return perr
		}
		lists := make([][]value.Value, len(args)-1)
		minLen := -1
		for i, lst := range args[1:] {
			items, ok := value.ListToSlice(lst)
			if !ok {
				return typeErr("for-each", "list", lst)
			}
			lists[i] = items
			if minLen == -1 || len(items) < minLen {
				minLen = len(items)
			}
		}
		for i := 0; i < minLen; i++ {
			call := make([]value.Value, len(lists))
			for j := range lists {
				call[j] = lists[j][i]
			}
			v := r.apply(proc, call)
			if value.IsError(v) {
				return v
			}
		}
		return value.Unspecified
	})

	r.def("filter", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("filter", args, 2); err != nil {
			return err
		}
		proc, perr := asProc("filter", args[0])
		if perr != nil {
			return perr
		}
		items, ok := value.ListToSlice(args[1])
		if !ok {
			return typeErr("filter", "list", args[1])
		}
		var out []value.Value
		for _, it := range items {
			v := r.apply(proc, []value.Value{it})
			if value.IsError(v) {
				return v
			}
			if value.IsTruthy(v) {
				out = append(out, it)
			}
		}
		return value.SliceToList(out)
	})

	r.def("fold-left", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityMin("fold-left", args, 3); err != nil {
			return err
		}
		proc, perr := asProc("fold-left", args[0])
		if perr != nil {
			return perr
		}
		acc := args[1]
		lists := make([][]value.Value, len(args)-2)
		minLen := -1
		for i, lst := range args[2:] {
			items, ok := value.ListToSlice(lst)
			if !ok {
				return typeErr("fold-left", "list", lst)
			}
			lists[i] = items
			if minLen == -1 || len(items) < minLen {
				minLen = len(items)
			}
		}
		for i := 0; i < minLen; i++ {
			call := append([]value.Value{acc}, rowAt(lists, i)...)
			acc = r.apply(proc, call)
			if value.IsError(acc) {
				return acc
			}
		}
		return acc
	})

	r.def("fold-right", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityMin("fold-right", args, 3); err != nil {
			return err
		}
		proc, perr := asProc("fold-right", args[0])
		if perr != nil {
			return perr
		}
		acc := args[1]
		lists := make([][]value.Value, len(args)-2)
		minLen := -1
		for i, lst := range args[2:] {
			items, ok := value.ListToSlice(lst)
			if !ok {
				return typeErr("fold-right", "list", lst)
			}
			lists[i] = items
			if minLen == -1 || len(items) < minLen {
				minLen = len(items)
			}
		}
		for i := minLen - 1; i >= 0; i-- {
			call := append(rowAt(lists, i), acc)
			acc = r.apply(proc, call)
			if value.IsError(acc) {
				return acc
			}
		}
		return acc
	})

	r.def("reduce", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("reduce", args, 3); err != nil {
			return err
		}
		proc, perr := asProc("reduce", args[0])
		if perr != nil {
			return perr
		}
		items, ok := value.ListToSlice(args[2])
		if !ok {
			return typeErr("reduce", "list", args[2])
		}
		if len(items) == 0 {
			return args[1]
		}
		acc := items[0]
		for _, it := range items[1:] {
			acc = r.apply(proc, []value.Value{it, acc})
			if value.IsError(acc) {
				return acc
			}
		}
		return acc
	})
}

func rowAt(lists [][]value.Value, i int) []value.Value {
	out := make([]value.Value, len(lists))
	for j, lst := range lists {
		out[j] = lst[i]
	}
	return out
}
