package builtin

import (
	"strings"

	"cozenage/internal/port"
	"cozenage/internal/printer"
	"cozenage/internal/reader"
	"cozenage/internal/value"
)

func outputPort(name string, args []value.Value, idx int) (*value.Port, *value.ErrorV) {
	if len(args) <= idx {
		return port.CurrentOutput, nil
	}
	return asPort(name, args[idx])
}

func inputPort(name string, args []value.Value, idx int) (*value.Port, *value.ErrorV) {
	if len(args) <= idx {
		return port.CurrentInput, nil
	}
	return asPort(name, args[idx])
}

// checkOpen rejects an operation on a closed port (Closed --any op-->
// FileError).
func checkOpen(name string, p *value.Port) *value.ErrorV {
	if !p.IsOpen {
		return value.NewError(value.FileErr, name+": port is closed")
	}
	return nil
}

// checkTextPort validates p is open and backed by a textual kind, for the
// character-oriented operations (display, write-char, read-char, ...).
func checkTextPort(name string, p *value.Port) *value.ErrorV {
	if err := checkOpen(name, p); err != nil {
		return err
	}
	if p.Kind != value.TextFile && p.Kind != value.MemoryText {
		return value.NewError(value.TypeErr, name+": expected a textual port, got a binary port")
	}
	return nil
}

// checkBinaryPort validates p is open and backed by a binary kind, for the
// byte-oriented operations (write-u8, read-u8, ...).
func checkBinaryPort(name string, p *value.Port) *value.ErrorV {
	if err := checkOpen(name, p); err != nil {
		return err
	}
	if p.Kind != value.BinaryFile && p.Kind != value.MemoryBytes {
		return value.NewError(value.TypeErr, name+": expected a binary port, got a textual port")
	}
	return nil
}

func (r *registry) registerIO() {
	r.def("display", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("display", args, 1, 2); err != nil {
			return err
		}
		p, perr := outputPort("display", args, 1)
		if perr != nil {
			return perr
		}
		if terr := checkTextPort("display", p); terr != nil {
			return terr
		}
		text := printer.Display(args[0])
		if _, werr := p.VT.PutMany(p, []byte(text)); werr != nil {
			return value.NewError(value.FileErr, werr.Error())
		}
		return value.Unspecified
	})
	r.def("write", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("write", args, 1, 2); err != nil {
			return err
		}
		p, perr := outputPort("write", args, 1)
		if perr != nil {
			return perr
		}
		if terr := checkTextPort("write", p); terr != nil {
			return terr
		}
		text := printer.Write(args[0])
		if _, werr := p.VT.PutMany(p, []byte(text)); werr != nil {
			return value.NewError(value.FileErr, werr.Error())
		}
		return value.Unspecified
	})
	r.def("write-string", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("write-string", args, 1, 4); err != nil {
			return err
		}
		s, serr := asString("write-string", args[0])
		if serr != nil {
			return serr
		}
		p, perr := outputPort("write-string", args, 1)
		if perr != nil {
			return perr
		}
		if terr := checkTextPort("write-string", p); terr != nil {
			return terr
		}
		runes := s.Runes()
		start, end, rerr := rangeArgs("write-string", trailingArgs(args, 2), len(runes))
		if rerr != nil {
			return rerr
		}
		if _, werr := p.VT.PutMany(p, []byte(string(runes[start:end]))); werr != nil {
			return value.NewError(value.FileErr, werr.Error())
		}
		return value.Unspecified
	})
	r.def("write-char", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("write-char", args, 1, 2); err != nil {
			return err
		}
		c, cerr := asChar("write-char", args[0])
		if cerr != nil {
			return cerr
		}
		p, perr := outputPort("write-char", args, 1)
		if perr != nil {
			return perr
		}
		if terr := checkTextPort("write-char", p); terr != nil {
			return terr
		}
		if werr := p.VT.PutOne(p, int(c)); werr != nil {
			return value.NewError(value.FileErr, werr.Error())
		}
		return value.Unspecified
	})
	r.def("write-u8", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("write-u8", args, 1, 2); err != nil {
			return err
		}
		n, ok := args[0].(value.Integer)
		if !ok {
			return typeErr("write-u8", "exact integer", args[0])
		}
		p, perr := outputPort("write-u8", args, 1)
		if perr != nil {
			return perr
		}
		if terr := checkBinaryPort("write-u8", p); terr != nil {
			return terr
		}
		if werr := p.VT.PutOne(p, int(n)); werr != nil {
			return value.NewError(value.FileErr, werr.Error())
		}
		return value.Unspecified
	})
	r.def("newline", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("newline", args, 0, 1); err != nil {
			return err
		}
		p, perr := outputPort("newline", args, 0)
		if perr != nil {
			return perr
		}
		if terr := checkTextPort("newline", p); terr != nil {
			return terr
		}
		if werr := p.VT.PutOne(p, '\n'); werr != nil {
			return value.NewError(value.FileErr, werr.Error())
		}
		return value.Unspecified
	})

	r.def("read-char", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("read-char", args, 0, 1); err != nil {
			return err
		}
		p, perr := inputPort("read-char", args, 0)
		if perr != nil {
			return perr
		}
		if terr := checkTextPort("read-char", p); terr != nil {
			return terr
		}
		u, rerr := p.VT.GetOne(p)
		if rerr != nil {
			return value.NewError(value.ReadErr, rerr.Error())
		}
		if u == -1 {
			return value.EOF
		}
		return value.Character(rune(u))
	})
	r.def("peek-char", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("peek-char", args, 0, 1); err != nil {
			return err
		}
		p, perr := inputPort("peek-char", args, 0)
		if perr != nil {
			return perr
		}
		if terr := checkTextPort("peek-char", p); terr != nil {
			return terr
		}
		u, rerr := p.VT.Peek(p)
		if rerr != nil {
			return value.NewError(value.ReadErr, rerr.Error())
		}
		if u == -1 {
			return value.EOF
		}
		return value.Character(rune(u))
	})
	r.def("read-u8", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("read-u8", args, 0, 1); err != nil {
			return err
		}
		p, perr := inputPort("read-u8", args, 0)
		if perr != nil {
			return perr
		}
		if terr := checkBinaryPort("read-u8", p); terr != nil {
			return terr
		}
		u, rerr := p.VT.GetOne(p)
		if rerr != nil {
			return value.NewError(value.ReadErr, rerr.Error())
		}
		if u == -1 {
			return value.EOF
		}
		return value.Integer(u)
	})
	r.def("peek-u8", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("peek-u8", args, 0, 1); err != nil {
			return err
		}
		p, perr := inputPort("peek-u8", args, 0)
		if perr != nil {
			return perr
		}
		if terr := checkBinaryPort("peek-u8", p); terr != nil {
			return terr
		}
		u, rerr := p.VT.Peek(p)
		if rerr != nil {
			return value.NewError(value.ReadErr, rerr.Error())
		}
		if u == -1 {
			return value.EOF
		}
		return value.Integer(u)
	})
	r.def("read-line", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("read-line", args, 0, 1); err != nil {
			return err
		}
		p, perr := inputPort("read-line", args, 0)
		if perr != nil {
			return perr
		}
		if terr := checkTextPort("read-line", p); terr != nil {
			return terr
		}
		var sb strings.Builder
		sawAny := false
		for {
			u, rerr := p.VT.GetOne(p)
			if rerr != nil {
				return value.NewError(value.ReadErr, rerr.Error())
			}
			if u == -1 {
				if !sawAny {
					return value.EOF
				}
				break
			}
			sawAny = true
			if rune(u) == '\n' {
				break
			}
			sb.WriteRune(rune(u))
		}
		return value.NewString(sb.String())
	})
	r.def("read-string", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("read-string", args, 1, 2); err != nil {
			return err
		}
		n, ierr := asIndex("read-string", args[0])
		if ierr != nil {
			return ierr
		}
		p, perr := inputPort("read-string", args, 1)
		if perr != nil {
			return perr
		}
		if terr := checkTextPort("read-string", p); terr != nil {
			return terr
		}
		data, count, rerr := p.VT.GetMany(p, n)
		if rerr != nil {
			return value.NewError(value.ReadErr, rerr.Error())
		}
		if count == 0 {
			return value.EOF
		}
		return value.NewString(string(data))
	})
	r.def("read", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("read", args, 0, 1); err != nil {
			return err
		}
		p, perr := inputPort("read", args, 0)
		if perr != nil {
			return perr
		}
		if terr := checkTextPort("read", p); terr != nil {
			return terr
		}
		var sb strings.Builder
		for {
			u, rerr := p.VT.GetOne(p)
			if rerr != nil {
				return value.NewError(value.ReadErr, rerr.Error())
			}
			if u == -1 {
				break
			}
			sb.WriteRune(rune(u))
		}
		text := sb.String()
		rp := reader.NewParser(text)
		datum, derr := rp.ReadDatum()
		if derr != nil {
			return value.NewError(value.ReadErr, derr.Error())
		}
		if datum == nil {
			return value.EOF
		}
		return datum
	})

	r.def("eof-object", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("eof-object", args, 0); err != nil {
			return err
		}
		return value.EOF
	})
	r.def("char-ready?", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("char-ready?", args, 0, 1); err != nil {
			return err
		}
		p, perr := inputPort("char-ready?", args, 0)
		if perr != nil {
			return perr
		}
		if terr := checkTextPort("char-ready?", p); terr != nil {
			return terr
		}
		return value.Bool(port.Ready(p))
	})
	r.def("u8-ready?", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArityRange("u8-ready?", args, 0, 1); err != nil {
			return err
		}
		p, perr := inputPort("u8-ready?", args, 0)
		if perr != nil {
			return perr
		}
		if terr := checkBinaryPort("u8-ready?", p); terr != nil {
			return terr
		}
		return value.Bool(port.Ready(p))
	})

	r.def("current-input-port", func(_ *value.Environment, args []value.Value) value.Value {
		return port.CurrentInput
	})
	r.def("current-output-port", func(_ *value.Environment, args []value.Value) value.Value {
		return port.CurrentOutput
	})
	r.def("current-error-port", func(_ *value.Environment, args []value.Value) value.Value {
		return port.CurrentError
	})

	r.def("open-input-file", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("open-input-file", args, 1); err != nil {
			return err
		}
		s, serr := asString("open-input-file", args[0])
		if serr != nil {
			return serr
		}
		p, operr := port.OpenInputFile(s.Go())
		if operr != nil {
			return operr
		}
		return p
	})
	r.def("open-output-file", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("open-output-file", args, 1); err != nil {
			return err
		}
		s, serr := asString("open-output-file", args[0])
		if serr != nil {
			return serr
		}
		p, operr := port.OpenOutputFile(s.Go())
		if operr != nil {
			return operr
		}
		return p
	})
	r.def("open-and-trunc-output-file", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("open-and-trunc-output-file", args, 1); err != nil {
			return err
		}
		s, serr := asString("open-and-trunc-output-file", args[0])
		if serr != nil {
			return serr
		}
		p, operr := port.OpenAndTruncOutputFile(s.Go())
		if operr != nil {
			return operr
		}
		return p
	})
	r.def("open-binary-input-file", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("open-binary-input-file", args, 1); err != nil {
			return err
		}
		s, serr := asString("open-binary-input-file", args[0])
		if serr != nil {
			return serr
		}
		p, operr := port.OpenBinaryInputFile(s.Go())
		if operr != nil {
			return operr
		}
		return p
	})
	r.def("open-binary-output-file", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("open-binary-output-file", args, 1); err != nil {
			return err
		}
		s, serr := asString("open-binary-output-file", args[0])
		if serr != nil {
			return serr
		}
		p, operr := port.OpenBinaryOutputFile(s.Go())
		if operr != nil {
			return operr
		}
		return p
	})
	r.def("open-input-string", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("open-input-string", args, 1); err != nil {
			return err
		}
		s, serr := asString("open-input-string", args[0])
		if serr != nil {
			return serr
		}
		return port.OpenInputString(s.Go())
	})
	r.def("open-output-string", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("open-output-string", args, 0); err != nil {
			return err
		}
		return port.OpenOutputString()
	})
	r.def("get-output-string", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("get-output-string", args, 1); err != nil {
			return err
		}
		p, perr := asPort("get-output-string", args[0])
		if perr != nil {
			return perr
		}
		return value.NewString(port.GetOutputString(p))
	})
	r.def("open-input-bytevector", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("open-input-bytevector", args, 1); err != nil {
			return err
		}
		bv, berr := asBytevector("open-input-bytevector", args[0])
		if berr != nil {
			return berr
		}
		data := make([]byte, len(bv.Elements))
		for i, e := range bv.Elements {
			data[i] = byte(e)
		}
		return port.OpenInputBytevector(data)
	})
	r.def("open-output-bytevector", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("open-output-bytevector", args, 0); err != nil {
			return err
		}
		return port.OpenOutputBytevector()
	})
	r.def("get-output-bytevector", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("get-output-bytevector", args, 1); err != nil {
			return err
		}
		p, perr := asPort("get-output-bytevector", args[0])
		if perr != nil {
			return perr
		}
		data := port.GetOutputBytevector(p)
		elems := make([]int64, len(data))
		for i, b := range data {
			elems[i] = int64(b)
		}
		return &value.Bytevector{Kind: value.U8, Elements: elems}
	})

	closePort := func(name string) value.BuiltinFn {
		return func(_ *value.Environment, args []value.Value) value.Value {
			if err := checkArity(name, args, 1); err != nil {
				return err
			}
			p, perr := asPort(name, args[0])
			if perr != nil {
				return perr
			}
			if cerr := port.Close(p); cerr != nil {
				return cerr
			}
			return value.Unspecified
		}
	}
	r.def("close-port", closePort("close-port"))
	r.def("close-input-port", closePort("close-input-port"))
	r.def("close-output-port", closePort("close-output-port"))

	r.def("with-input-from-file", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("with-input-from-file", args, 2); err != nil {
			return err
		}
		s, serr := asString("with-input-from-file", args[0])
		if serr != nil {
			return serr
		}
		proc, perr := asProc("with-input-from-file", args[1])
		if perr != nil {
			return perr
		}
		return port.WithInputFromFile(s.Go(), func() value.Value {
			return r.apply(proc, nil)
		})
	})
	r.def("with-output-to-file", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("with-output-to-file", args, 2); err != nil {
			return err
		}
		s, serr := asString("with-output-to-file", args[0])
		if serr != nil {
			return serr
		}
		proc, perr := asProc("with-output-to-file", args[1])
		if perr != nil {
			return perr
		}
		return port.WithOutputToFile(s.Go(), func() value.Value {
			return r.apply(proc, nil)
		})
	})

	r.def("with-output-to-string", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("with-output-to-string", args, 1); err != nil {
			return err
		}
		proc, perr := asProc("with-output-to-string", args[0])
		if perr != nil {
			return perr
		}
		p := port.OpenOutputString()
		prev := port.CurrentOutput
		port.CurrentOutput = p
		result := r.apply(proc, nil)
		port.CurrentOutput = prev
		if value.IsError(result) {
			return result
		}
		return value.NewString(port.GetOutputString(p))
	})
	r.def("with-input-from-string", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("with-input-from-string", args, 2); err != nil {
			return err
		}
		s, serr := asString("with-input-from-string", args[0])
		if serr != nil {
			return serr
		}
		proc, perr := asProc("with-input-from-string", args[1])
		if perr != nil {
			return perr
		}
		p := port.OpenInputString(s.Go())
		prev := port.CurrentInput
		port.CurrentInput = p
		result := r.apply(proc, nil)
		port.CurrentInput = prev
		return result
	})

	r.def("call-with-input-file", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("call-with-input-file", args, 2); err != nil {
			return err
		}
		s, serr := asString("call-with-input-file", args[0])
		if serr != nil {
			return serr
		}
		proc, perr := asProc("call-with-input-file", args[1])
		if perr != nil {
			return perr
		}
		p, operr := port.OpenInputFile(s.Go())
		if operr != nil {
			return operr
		}
		defer port.Close(p)
		return r.apply(proc, []value.Value{p})
	})
	r.def("call-with-output-file", func(_ *value.Environment, args []value.Value) value.Value {
		if err := checkArity("call-with-output-file", args, 2); err != nil {
			return err
		}
		s, serr := asString("call-with-output-file", args[0])
		if serr != nil {
			return serr
		}
		proc, perr := asProc("call-with-output-file", args[1])
		if perr != nil {
			return perr
		}
		p, operr := port.OpenOutputFile(s.Go())
		if operr != nil {
			return operr
		}
		defer port.Close(p)
		return r.apply(proc, []value.Value{p})
	})
}

func trailingArgs(args []value.Value, from int) []value.Value {
	if from >= len(args) {
		return nil
	}
	return args[from:]
}
