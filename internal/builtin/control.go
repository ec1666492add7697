package builtin

import "cozenage/internal/value"

func (r *registry) registerControl() {
	r.def("force", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("force", args, 1); err != nil {
			return err
		}
		p, ok := args[0].(*value.Promise)
		if !ok {
			return args[0]
		}
		return r.forcePromise(p)
	})
	r.def("make-promise", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("make-promise", args, 1); err != nil {
			return err
		}
		if p, ok := args[0].(*value.Promise); ok {
			return p
		}
		return &value.Promise{Status: value.PromiseDone, Result: args[0]}
	})

	r.def("values", func(_ *value.Environment, args []value.Value) value.Value {
		if len(args) == 1 {
			return args[0]
		}
		items := make([]value.Value, len(args))
		copy(items, args)
		return &value.MultipleValues{Items: items}
	})
	r.def("call-with-values", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("call-with-values", args, 2); err != nil {
			return err
		}
		producer, perr := asProc("call-with-values", args[0])
		if perr != nil {
			return perr
		}
		consumer, cerr := asProc("call-with-values", args[1])
		if cerr != nil {
			return cerr
		}
		result := r.apply(producer, nil)
		if value.IsError(result) {
			return result
		}
		if mv, ok := result.(*value.MultipleValues); ok {
			return r.apply(consumer, mv.Items)
		}
		return r.apply(consumer, []value.Value{result})
	})

	r.def("eval", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("eval", args, 1, 2); err != nil {
			return err
		}
		return r.eval(r.root, args[0])
	})

	r.def("read-error?", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("read-error?", args, 1); err != nil {
			return err
		}
		e, ok := args[0].(*value.ErrorV)
		return value.Bool(ok && e.Category == value.ReadErr)
	})
	r.def("file-error?", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("file-error?", args, 1); err != nil {
			return err
		}
		e, ok := args[0].(*value.ErrorV)
		return value.Bool(ok && e.Category == value.FileErr)
	})
	r.def("error-object-message", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("error-object-message", args, 1); err != nil {
			return err
		}
		e, ok := args[0].(*value.ErrorV)
		if !ok {
			return typeErr("error-object-message", "error object", args[0])
		}
		return value.NewString(e.Message)
	})
	r.def("error-object-category", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("error-object-category", args, 1); err != nil {
			return err
		}
		e, ok := args[0].(*value.ErrorV)
		if !ok {
			return typeErr("error-object-category", "error object", args[0])
		}
		return value.Intern(string(e.Category))
	})
	r.def("error", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityMin("error", args, 1); err != nil {
			return err
		}
		s, serr := asString("error", args[0])
		if serr != nil {
			return value.NewError(value.GenErr, describe(args[0]))
		}
		return value.NewError(value.GenErr, s.Go())
	})
}

// forcePromise drives a promise's ready/forcing/done state machine,
// looping while a delay-force chains into another promise instead of a
// final value.
func (r *registry) forcePromise(p *value.Promise) value.Value {
	for {
		switch p.Status {
		case value.PromiseDone:
			return p.Result
		case value.PromiseForcing:
			return value.NewError(value.ValueErr, "force: promise forced recursively")
		case value.PromiseReady:
			p.Status = value.PromiseForcing
			res := r.eval(p.Env, p.Expr)
			if inner, ok := res.(*value.Promise); ok {
				p.Expr, p.Env = inner.Expr, inner.Env
				if inner.Status == value.PromiseDone {
					p.Status = value.PromiseDone
					p.Result = inner.Result
					return p.Result
				}
				p.Status = value.PromiseReady
				continue
			}
			p.Status = value.PromiseDone
			p.Result = res
			return res
		}
	}
}
