package port

import (
	"os"

	"cozenage/internal/buffer"
	"cozenage/internal/schemeerr"
	"cozenage/internal/value"
)

// Current{Input,Output,Error} hold the dynamic-extent default ports.
// with-input-from-file/with-output-to-file rebind these for the
// duration of a thunk call and restore them afterward, even on error.
var (
	CurrentInput  *value.Port
	CurrentOutput *value.Port
	CurrentError  *value.Port
)

func init() {
	CurrentInput = &value.Port{IsOpen: true, Dir: value.DirInput, Kind: value.TextFile, File: os.Stdin, Peeked: -1, VT: textFileVT}
	CurrentOutput = &value.Port{IsOpen: true, Dir: value.DirOutput, Kind: value.TextFile, File: os.Stdout, Peeked: -1, VT: textFileVT}
	CurrentError = &value.Port{IsOpen: true, Dir: value.DirOutput, Kind: value.TextFile, File: os.Stderr, Peeked: -1, VT: textFileVT}
}

// OpenInputFile opens path for text reading.
func OpenInputFile(path string) (*value.Port, *value.ErrorV) {
	f, err := os.Open(path)
	if err != nil {
		return nil, schemeerr.WrapOS("open-input-file", path, err)
	}
	return &value.Port{IsOpen: true, Dir: value.DirInput, Kind: value.TextFile, Path: path, File: f, Peeked: -1, VT: textFileVT}, nil
}

// OpenOutputFile opens path for text writing, appending if it already
// exists and creating it otherwise. Use OpenAndTruncOutputFile to
// truncate instead.
func OpenOutputFile(path string) (*value.Port, *value.ErrorV) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, schemeerr.WrapOS("open-output-file", path, err)
	}
	return &value.Port{IsOpen: true, Dir: value.DirOutput, Kind: value.TextFile, Path: path, File: f, Peeked: -1, VT: textFileVT}, nil
}

// OpenAndTruncOutputFile creates (truncating) path for text writing.
func OpenAndTruncOutputFile(path string) (*value.Port, *value.ErrorV) {
	f, err := os.Create(path)
	if err != nil {
		return nil, schemeerr.WrapOS("open-and-trunc-output-file", path, err)
	}
	return &value.Port{IsOpen: true, Dir: value.DirOutput, Kind: value.TextFile, Path: path, File: f, Peeked: -1, VT: textFileVT}, nil
}

// OpenBinaryInputFile opens path for binary reading.
func OpenBinaryInputFile(path string) (*value.Port, *value.ErrorV) {
	f, err := os.Open(path)
	if err != nil {
		return nil, schemeerr.WrapOS("open-binary-input-file", path, err)
	}
	return &value.Port{IsOpen: true, Dir: value.DirInput, Kind: value.BinaryFile, Path: path, File: f, Peeked: -1, VT: binaryFileVT}, nil
}

// OpenBinaryOutputFile creates (truncating) path for binary writing.
func OpenBinaryOutputFile(path string) (*value.Port, *value.ErrorV) {
	f, err := os.Create(path)
	if err != nil {
		return nil, schemeerr.WrapOS("open-binary-output-file", path, err)
	}
	return &value.Port{IsOpen: true, Dir: value.DirOutput, Kind: value.BinaryFile, Path: path, File: f, Peeked: -1, VT: binaryFileVT}, nil
}

// OpenInputString returns an input port that reads from a copy of s.
func OpenInputString(s string) *value.Port {
	buf := buffer.New()
	buf.AppendString(s)
	return &value.Port{IsOpen: true, Dir: value.DirInput, Kind: value.MemoryText, Mem: buf, Peeked: -1, VT: memoryTextVT}
}

// OpenOutputString returns an output port accumulating into an in-memory
// buffer; GetOutputString reads back what was written.
func OpenOutputString() *value.Port {
	return &value.Port{IsOpen: true, Dir: value.DirOutput, Kind: value.MemoryText, Mem: buffer.New(), Peeked: -1, VT: memoryTextVT}
}

// GetOutputString returns the text accumulated by an OpenOutputString
// port so far.
func GetOutputString(p *value.Port) string {
	return p.Mem.(*buffer.Buffer).String()
}

// OpenInputBytevector returns an input port reading from a copy of data.
func OpenInputBytevector(data []byte) *value.Port {
	buf := buffer.New()
	buf.AppendBytes(data)
	return &value.Port{IsOpen: true, Dir: value.DirInput, Kind: value.MemoryBytes, Mem: buf, Peeked: -1, VT: memoryBytesVT}
}

// OpenOutputBytevector returns an output port accumulating raw bytes.
func OpenOutputBytevector() *value.Port {
	return &value.Port{IsOpen: true, Dir: value.DirOutput, Kind: value.MemoryBytes, Mem: buffer.New(), Peeked: -1, VT: memoryBytesVT}
}

// GetOutputBytevector returns the bytes accumulated by an
// OpenOutputBytevector port so far.
func GetOutputBytevector(p *value.Port) []byte {
	b := p.Mem.(*buffer.Buffer).Bytes()
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Close closes p through its vtable, tolerating a port that is already
// closed or has no underlying resource.
func Close(p *value.Port) *value.ErrorV {
	if !p.IsOpen {
		return nil
	}
	if err := p.VT.Close(p); err != nil {
		return value.NewError(value.FileErr, err.Error())
	}
	return nil
}

// WithInputFromFile opens path, rebinds CurrentInput for the duration of
// thunk, and restores the previous port (closing the opened one)
// whichever way thunk returns.
func WithInputFromFile(path string, thunk func() value.Value) value.Value {
	p, rerr := OpenInputFile(path)
	if rerr != nil {
		return rerr
	}
	prev := CurrentInput
	CurrentInput = p
	defer func() {
		CurrentInput = prev
		Close(p)
	}()
	return thunk()
}

// WithOutputToFile opens path with OpenOutputFile (appending if it
// already exists), rebinds CurrentOutput for the duration of thunk, and
// restores/closes as WithInputFromFile does.
func WithOutputToFile(path string, thunk func() value.Value) value.Value {
	p, rerr := OpenOutputFile(path)
	if rerr != nil {
		return rerr
	}
	prev := CurrentOutput
	CurrentOutput = p
	defer func() {
		CurrentOutput = prev
		Close(p)
	}()
	return thunk()
}
