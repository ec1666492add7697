package value

import "os"

// PortDirection is input or output.
type PortDirection uint8

const (
	DirInput PortDirection = iota
	DirOutput
)

// PortKind names the four port backends.
type PortKind uint8

const (
	TextFile PortKind = iota
	BinaryFile
	MemoryText
	MemoryBytes
)

// PortVTable is the uniform six-operation I/O abstraction mapped over the
// four backend kinds (internal/port supplies one implementation per
// kind). Operations take the Port and return a result plus an error
// value (nil on success); callers (builtins) translate a non-nil error
// into the appropriate FILE_ERR/READ_ERR Scheme value.
type PortVTable struct {
	GetOne  func(p *Port) (int, error)          // -1 EOF, -2 error
	PutOne  func(p *Port, unit int) error
	GetMany func(p *Port, n int) ([]byte, int, error) // data, count, error
	PutMany func(p *Port, data []byte) (int, error)
	Peek    func(p *Port) (int, error)
	Close   func(p *Port) error
}

// Port encapsulates direction, backend, handle/buffer, index, open flag
// and vtable. A unit cached in Peeked counts as available without
// blocking (char-ready?/u8-ready? check it before falling back to an OS
// poll).
type Port struct {
	IsOpen bool
	Dir    PortDirection
	Kind   PortKind
	Path   string

	File *os.File // text-file, binary-file
	Mem  MemBuf   // memory-text, memory-bytes

	Index int

	// Peeked caches a unit (rune for text, byte for binary) read ahead by
	// Peek so the following GetOne returns it instead of re-reading the
	// backend. -1 means nothing is cached.
	Peeked int

	VT *PortVTable
}

func (*Port) valueMarker() {}

// MemBuf is the minimal surface internal/port's memory backends need from
// internal/buffer.Buffer, expressed as an interface here so this package
// does not need to import internal/buffer (a leaf-to-leaf dependency
// that would otherwise point the wrong way for a "value is the bottom of
// the stack" layering).
type MemBuf interface {
	Len() int
	Bytes() []byte
	AppendBytes([]byte)
}
