package builtin

import "cozenage/internal/value"

func (r *registry) registerBytevectors() {
	r.def("bytevector", func(_ *value.Environment, args []value.Value) value.Value {
		elems := make([]int64, len(args))
		for i, a := range args {
			n, ok := a.(value.Integer)
			if !ok {
				return typeErr("bytevector", "exact integer", a)
			}
			elems[i] = int64(n)
		}
		return &value.Bytevector{Kind: value.U8, Elements: elems}
	})
	r.def("make-bytevector", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("make-bytevector", args, 1, 2); err != nil {
			return err
		}
		n, ierr := asIndex("make-bytevector", args[0])
		if ierr != nil {
			return ierr
		}
		var fill int64
		if len(args) == 2 {
			f, ok := args[1].(value.Integer)
			if !ok {
				return typeErr("make-bytevector", "exact integer", args[1])
			}
			fill = int64(f)
		}
		elems := make([]int64, n)
		for i := range elems {
			elems[i] = fill
		}
		return &value.Bytevector{Kind: value.U8, Elements: elems}
	})
	r.def("bytevector-length", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("bytevector-length", args, 1); err != nil {
			return err
		}
		bv, berr := asBytevector("bytevector-length", args[0])
		if berr != nil {
			return berr
		}
		return value.Integer(len(bv.Elements))
	})
	r.def("bytevector-u8-ref", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("bytevector-u8-ref", args, 2); err != nil {
			return err
		}
		bv, berr := asBytevector("bytevector-u8-ref", args[0])
		if berr != nil {
			return berr
		}
		i, ierr := asIndex("bytevector-u8-ref", args[1])
		if ierr != nil {
			return ierr
		}
		if i < 0 || i >= len(bv.Elements) {
			return value.NewError(value.IndexErr, "bytevector-u8-ref: index out of range")
		}
		return value.Integer(bv.Elements[i])
	})
	r.def("bytevector-u8-set!", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("bytevector-u8-set!", args, 3); err != nil {
			return err
		}
		bv, berr := asBytevector("bytevector-u8-set!", args[0])
		if berr != nil {
			return berr
		}
		i, ierr := asIndex("bytevector-u8-set!", args[1])
		if ierr != nil {
			return ierr
		}
		n, ok := args[2].(value.Integer)
		if !ok {
			return typeErr("bytevector-u8-set!", "exact integer", args[2])
		}
		if i < 0 || i >= len(bv.Elements) {
			return value.NewError(value.IndexErr, "bytevector-u8-set!: index out of range")
		}
		bv.Elements[i] = int64(n)
		return value.Unspecified
	})
	r.def("bytevector-copy", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("bytevector-copy", args, 1, 3); err != nil {
			return err
		}
		bv, berr := asBytevector("bytevector-copy", args[0])
		if berr != nil {
			return berr
		}
		start, end, rerr := rangeArgs("bytevector-copy", args[1:], len(bv.Elements))
		if rerr != nil {
			return rerr
		}
		elems := make([]int64, end-start)
		copy(elems, bv.Elements[start:end])
		return &value.Bytevector{Kind: bv.Kind, Elements: elems}
	})
	r.def("bytevector-copy!", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("bytevector-copy!", args, 3, 5); err != nil {
			return err
		}
		to, toErr := asBytevector("bytevector-copy!", args[0])
		if toErr != nil {
			return toErr
		}
		at, aerr := asIndex("bytevector-copy!", args[1])
		if aerr != nil {
			return aerr
		}
		from, fromErr := asBytevector("bytevector-copy!", args[2])
		if fromErr != nil {
			return fromErr
		}
		start, end, rerr := rangeArgs("bytevector-copy!", args[3:], len(from.Elements))
		if rerr != nil {
			return rerr
		}
		copy(to.Elements[at:], from.Elements[start:end])
		return value.Unspecified
	})
	r.def("bytevector-append", func(_ *value.Environment, args []value.Value) value.Value {
		var elems []int64
		kind := value.U8
		for i, a := range args {
			bv, berr := asBytevector("bytevector-append", a)
			if berr != nil {
				return berr
			}
			if i == 0 {
				kind = bv.Kind
			}
			elems = append(elems, bv.Elements...)
		}
		return &value.Bytevector{Kind: kind, Elements: elems}
	})
	r.def("utf8->string", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("utf8->string", args, 1, 3); err != nil {
			return err
		}
		bv, berr := asBytevector("utf8->string", args[0])
		if berr != nil {
			return berr
		}
		start, end, rerr := rangeArgs("utf8->string", args[1:], len(bv.Elements))
		if rerr != nil {
			return rerr
		}
		buf := make([]byte, end-start)
		for i := start; i < end; i++ {
			buf[i-start] = byte(bv.Elements[i])
		}
		return value.NewString(string(buf))
	})
	r.def("string->utf8", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("string->utf8", args, 1, 3); err != nil {
			return err
		}
		s, serr := asString("string->utf8", args[0])
		if serr != nil {
			return serr
		}
		runes := s.Runes()
		start, end, rerr := rangeArgs("string->utf8", args[1:], len(runes))
		if rerr != nil {
			return rerr
		}
		encoded := []byte(string(runes[start:end]))
		elems := make([]int64, len(encoded))
		for i, b := range encoded {
			elems[i] = int64(b)
		}
		return &value.Bytevector{Kind: value.U8, Elements: elems}
	})
	r.def("bytevector->list", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("bytevector->list", args, 1); err != nil {
			return err
		}
		bv, berr := asBytevector("bytevector->list", args[0])
		if berr != nil {
			return berr
		}
		items := make([]value.Value, len(bv.Elements))
		for i, e := range bv.Elements {
			items[i] = value.Integer(e)
		}
		return value.SliceToList(items)
	})
	r.def("list->bytevector", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("list->bytevector", args, 1); err != nil {
			return err
		}
		items, ok := value.ListToSlice(args[0])
		if !ok {
			return typeErr("list->bytevector", "list", args[0])
		}
		elems := make([]int64, len(items))
		for i, it := range items {
			n, ok := it.(value.Integer)
			if !ok {
				return typeErr("list->bytevector", "exact integer", it)
			}
			elems[i] = int64(n)
		}
		return &value.Bytevector{Kind: value.U8, Elements: elems}
	})
}
