package builtin

import "cozenage/internal/value"

func (r *registry) registerVectors() {
	r.def("vector", func(_ *value.Environment, args []value.Value) value.Value {
		items := make([]value.Value, len(args))
		copy(items, args)
		return &value.Vector{Items: items}
	})
	r.def("make-vector", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("make-vector", args, 1, 2); err != nil {
			return err
		}
		n, ierr := asIndex("make-vector", args[0])
		if ierr != nil {
			return ierr
		}
		var fill value.Value = value.Integer(0)
		if len(args) == 2 {
			fill = args[1]
		}
		items := make([]value.Value, n)
		for i := range items {
			items[i] = fill
		}
		return &value.Vector{Items: items}
	})
	r.def("vector-length", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("vector-length", args, 1); err != nil {
			return err
		}
		vec, verr := asVector("vector-length", args[0])
		if verr != nil {
			return verr
		}
		return value.Integer(len(vec.Items))
	})
	r.def("vector-ref", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("vector-ref", args, 2); err != nil {
			return err
		}
		vec, verr := asVector("vector-ref", args[0])
		if verr != nil {
			return verr
		}
		i, ierr := asIndex("vector-ref", args[1])
		if ierr != nil {
			return ierr
		}
		if i < 0 || i >= len(vec.Items) {
			return value.NewError(value.IndexErr, "vector-ref: index out of range")
		}
		return vec.Items[i]
	})
	r.def("vector-set!", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("vector-set!", args, 3); err != nil {
			return err
		}
		vec, verr := asVector("vector-set!", args[0])
		if verr != nil {
			return verr
		}
		i, ierr := asIndex("vector-set!", args[1])
		if ierr != nil {
			return ierr
		}
		if i < 0 || i >= len(vec.Items) {
			return value.NewError(value.IndexErr, "vector-set!: index out of range")
		}
		vec.Items[i] = args[2]
		return value.Unspecified
	})
	r.def("vector-fill!", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("vector-fill!", args, 2, 4); err != nil {
			return err
		}
		vec, verr := asVector("vector-fill!", args[0])
		if verr != nil {
			return verr
		}
		start, end, rerr := rangeArgs("vector-fill!", args[2:], len(vec.Items))
		if rerr != nil {
			return rerr
		}
		for i := start; i < end; i++ {
			vec.Items[i] = args[1]
		}
		return value.Unspecified
	})
	r.def("vector-copy", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("vector-copy", args, 1, 3); err != nil {
			return err
		}
		vec, verr := asVector("vector-copy", args[0])
		if verr != nil {
			return verr
		}
		start, end, rerr := rangeArgs("vector-copy", args[1:], len(vec.Items))
		if rerr != nil {
			return rerr
		}
		items := make([]value.Value, end-start)
		copy(items, vec.Items[start:end])
		return &value.Vector{Items: items}
	})
	r.def("vector-copy!", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("vector-copy!", args, 3, 5); err != nil {
			return err
		}
		to, toErr := asVector("vector-copy!", args[0])
		if toErr != nil {
			return toErr
		}
		at, aerr := asIndex("vector-copy!", args[1])
		if aerr != nil {
			return aerr
		}
		from, fromErr := asVector("vector-copy!", args[2])
		if fromErr != nil {
			return fromErr
		}
		start, end, rerr := rangeArgs("vector-copy!", args[3:], len(from.Items))
		if rerr != nil {
			return rerr
		}
		copy(to.Items[at:], from.Items[start:end])
		return value.Unspecified
	})
	r.def("vector-append", func(_ *value.Environment, args []value.Value) value.Value {
		var items []value.Value
		for _, a := range args {
			vec, verr := asVector("vector-append", a)
			if verr != nil {
				return verr
			}
			items = append(items, vec.Items...)
		}
		return &value.Vector{Items: items}
	})
	r.def("vector-map", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityMin("vector-map", args, 2); err != nil {
			return err
		}
		proc, perr := asProc("vector-map", args[0])
		if perr != nil {
			return perr
		}
		vecs := make([][]value.Value, len(args)-1)
		minLen := -1
		for i, a := range args[1:] {
			vec, verr := asVector("vector-map", a)
			if verr != nil {
				return verr
			}
			vecs[i] = vec.Items
			if minLen == -1 || len(vec.Items) < minLen {
				minLen = len(vec.Items)
			}
		}
		out := make([]value.Value, minLen)
		for i := 0; i < minLen; i++ {
			call := make([]value.Value, len(vecs))
			for j, v := range vecs {
				call[j] = v[i]
			}
			res := r.apply(proc, call)
			if value.IsError(res) {
				return res
			}
			out[i] = res
		}
		return &value.Vector{Items: out}
	})
	r.def("vector-for-each", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityMin("vector-for-each", args, 2); err != nil {
			return err
		}
		proc, perr := asProc("vector-for-each", args[0])
		if perr != nil {
			return perr
		}
		vecs := make([][]value.Value, len(args)-1)
		minLen := -1
		for i, a := range args[1:] {
			vec, verr := asVector("vector-for-each", a)
			if verr != nil {
				return verr
			}
			vecs[i] = vec.Items
			if minLen == -1 || len(vec.Items) < minLen {
				minLen = len(vec.Items)
			}
		}
		for i := 0; i < minLen; i++ {
			call := make([]value.Value, len(vecs))
			for j, v := range vecs {
				call[j] = v[i]
			}
			res := r.apply(proc, call)
			if value.IsError(res) {
				return res
			}
		}
		return value.Unspecified
	})
}
