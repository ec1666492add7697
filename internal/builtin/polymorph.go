package builtin

import "cozenage/internal/value"

// registerPolymorphic defines the three polymorphic aggregate
// dispatchers (spec §4.5): len/at/rev pick their behavior from the
// argument's variant tag rather than requiring a type-specific name,
// grounded on polymorph.c's builtin_len/builtin_idx/builtin_rev.
func (r *registry) registerPolymorphic() {
	r.def("len", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("len", args, 1); err != nil {
			return err
		}
		switch v := args[0].(type) {
		case *value.Pair, value.NilValue:
			items, ok := value.ListToSlice(v)
			if !ok {
				return typeErr("len", "proper list", v)
			}
			return value.Integer(len(items))
		case *value.Vector:
			return value.Integer(len(v.Items))
		case *value.Bytevector:
			return value.Integer(len(v.Elements))
		case *value.String:
			return value.Integer(v.ClusterLen())
		default:
			return value.NewError(value.TypeErr, "len: no length for non-compound type: "+describe(args[0]))
		}
	})

	r.def("at", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("at", args, 2, 4); err != nil {
			return err
		}
		switch v := args[0].(type) {
		case *value.Pair, value.NilValue:
			items, ok := value.ListToSlice(v)
			if !ok {
				return typeErr("at", "proper list", v)
			}
			if len(args) == 2 {
				i, ierr := asIndex("at", args[1])
				if ierr != nil {
					return ierr
				}
				if i >= len(items) {
					return value.NewError(value.IndexErr, "at: index out of range")
				}
				return items[i]
			}
			sliced, serr := sliceByStep("at", items, args[1:])
			if serr != nil {
				return serr
			}
			return value.SliceToList(sliced)
		case *value.Vector:
			if len(args) == 2 {
				i, ierr := asIndex("at", args[1])
				if ierr != nil {
					return ierr
				}
				if i >= len(v.Items) {
					return value.NewError(value.IndexErr, "at: index out of range")
				}
				return v.Items[i]
			}
			sliced, serr := sliceByStep("at", v.Items, args[1:])
			if serr != nil {
				return serr
			}
			return &value.Vector{Items: sliced}
		case *value.Bytevector:
			if err := checkArity("at", args, 2); err != nil {
				return err
			}
			i, ierr := asIndex("at", args[1])
			if ierr != nil {
				return ierr
			}
			if i >= len(v.Elements) {
				return value.NewError(value.IndexErr, "at: index out of range")
			}
			return value.Integer(v.Elements[i])
		case *value.String:
			if err := checkArity("at", args, 2); err != nil {
				return err
			}
			i, ierr := asIndex("at", args[1])
			if ierr != nil {
				return ierr
			}
			runes := v.Runes()
			if i >= len(runes) {
				return value.NewError(value.IndexErr, "at: index out of range")
			}
			return value.Character(runes[i])
		default:
			return value.NewError(value.TypeErr, "at: cannot subscript non-compound type: "+describe(args[0]))
		}
	})

	r.def("rev", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("rev", args, 1); err != nil {
			return err
		}
		switch v := args[0].(type) {
		case *value.Pair, value.NilValue:
			items, ok := value.ListToSlice(v)
			if !ok {
				return typeErr("rev", "proper list", v)
			}
			out := make([]value.Value, len(items))
			for i, it := range items {
				out[len(items)-1-i] = it
			}
			return value.SliceToList(out)
		case *value.Vector:
			out := make([]value.Value, len(v.Items))
			for i, it := range v.Items {
				out[len(v.Items)-1-i] = it
			}
			return &value.Vector{Items: out}
		case *value.Bytevector:
			out := make([]int64, len(v.Elements))
			for i, e := range v.Elements {
				out[len(v.Elements)-1-i] = e
			}
			return &value.Bytevector{Kind: v.Kind, Elements: out}
		case *value.String:
			return reverseString(v)
		default:
			return value.NewError(value.TypeErr, "rev: cannot reverse non-compound type: "+describe(args[0]))
		}
	})
}

// sliceByStep implements at's 3- and 4-argument forms on pairs and
// vectors: (at obj start stop), (at obj start stop step), selecting every
// step'th element of items from start up to (but excluding) stop.
func sliceByStep(name string, items []value.Value, rangeAndStep []value.Value) ([]value.Value, *value.ErrorV) {
	start, ierr := asIndex(name, rangeAndStep[0])
	if ierr != nil {
		return nil, ierr
	}
	stop := len(items)
	if len(rangeAndStep) > 1 {
		n, serr := asIndex(name, rangeAndStep[1])
		if serr != nil {
			return nil, serr
		}
		stop = n
	}
	step := 1
	if len(rangeAndStep) > 2 {
		n, serr := asIndex(name, rangeAndStep[2])
		if serr != nil {
			return nil, serr
		}
		if n == 0 {
			return nil, value.NewError(value.ValueErr, name+": step must not be zero")
		}
		step = n
	}
	if start < 0 || stop > len(items) {
		return nil, value.NewError(value.IndexErr, name+": range out of bounds")
	}
	var out []value.Value
	for i := start; i < stop; i += step {
		out = append(out, items[i])
	}
	return out, nil
}
