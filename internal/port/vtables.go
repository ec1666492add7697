// Package port implements the four I/O backends (text file, binary
// file, in-memory text, in-memory bytes) behind value.Port's vtable, plus
// the default current-input/output/error ports and the dynamic-extent
// rebinding forms (with-input-from-file, with-output-to-file).
package port

import (
	"io"
	"unicode/utf8"

	"cozenage/internal/value"
)

// textFileVT streams UTF-8 code points through an *os.File, using
// Port.Peeked to cache one rune of lookahead (the file handle itself may
// not be seekable, e.g. standard input).
var textFileVT = &value.PortVTable{
	GetOne:  textFileGetOne,
	PutOne:  textFilePutOne,
	GetMany: textFileGetMany,
	PutMany: textFilePutMany,
	Peek:    textFilePeek,
	Close:   fileClose,
}

func textFileReadRune(p *value.Port) (rune, error) {
	var lead [1]byte
	n, err := p.File.Read(lead[:])
	if n == 0 {
		if err == io.EOF {
			return 0, nil
		}
		return 0, err
	}
	width := runeWidthFromLead(lead[0])
	if width == 1 {
		return rune(lead[0]), nil
	}
	buf := make([]byte, width)
	buf[0] = lead[0]
	for i := 1; i < width; i++ {
		var b [1]byte
		if _, err := p.File.Read(b[:]); err != nil {
			return utf8.RuneError, nil
		}
		buf[i] = b[0]
	}
	r, _ := utf8.DecodeRune(buf)
	return r, nil
}

func runeWidthFromLead(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

func textFileGetOne(p *value.Port) (int, error) {
	if p.Peeked != -1 {
		v := p.Peeked
		p.Peeked = -1
		return v, nil
	}
	r, err := textFileReadRune(p)
	if err != nil {
		return -2, err
	}
	if r == 0 {
		return -1, nil
	}
	return int(r), nil
}

func textFilePeek(p *value.Port) (int, error) {
	if p.Peeked != -1 {
		return p.Peeked, nil
	}
	v, err := textFileGetOne(p)
	if err != nil {
		return -2, err
	}
	p.Peeked = v
	return v, nil
}

func textFilePutOne(p *value.Port, unit int) error {
	var buf [4]byte
	n := utf8.EncodeRune(buf[:], rune(unit))
	_, err := p.File.Write(buf[:n])
	return err
}

func textFileGetMany(p *value.Port, n int) ([]byte, int, error) {
	var out []byte
	count := 0
	for count < n {
		u, err := textFileGetOne(p)
		if err != nil {
			return out, count, err
		}
		if u == -1 {
			break
		}
		var buf [4]byte
		w := utf8.EncodeRune(buf[:], rune(u))
		out = append(out, buf[:w]...)
		count++
	}
	return out, count, nil
}

func textFilePutMany(p *value.Port, data []byte) (int, error) {
	if _, err := p.File.Write(data); err != nil {
		return 0, err
	}
	return utf8.RuneCount(data), nil
}

// binaryFileVT streams raw bytes through an *os.File.
var binaryFileVT = &value.PortVTable{
	GetOne:  binaryFileGetOne,
	PutOne:  binaryFilePutOne,
	GetMany: binaryFileGetMany,
	PutMany: binaryFilePutMany,
	Peek:    binaryFilePeek,
	Close:   fileClose,
}

func binaryFileGetOne(p *value.Port) (int, error) {
	if p.Peeked != -1 {
		v := p.Peeked
		p.Peeked = -1
		return v, nil
	}
	var b [1]byte
	n, err := p.File.Read(b[:])
	if n == 0 {
		if err == io.EOF {
			return -1, nil
		}
		return -2, err
	}
	return int(b[0]), nil
}

func binaryFilePeek(p *value.Port) (int, error) {
	if p.Peeked != -1 {
		return p.Peeked, nil
	}
	v, err := binaryFileGetOne(p)
	if err != nil {
		return -2, err
	}
	p.Peeked = v
	return v, nil
}

func binaryFilePutOne(p *value.Port, unit int) error {
	_, err := p.File.Write([]byte{byte(unit)})
	return err
}

func binaryFileGetMany(p *value.Port, n int) ([]byte, int, error) {
	var out []byte
	count := 0
	for count < n {
		u, err := binaryFileGetOne(p)
		if err != nil {
			return out, count, err
		}
		if u == -1 {
			break
		}
		out = append(out, byte(u))
		count++
	}
	return out, count, nil
}

func binaryFilePutMany(p *value.Port, data []byte) (int, error) {
	n, err := p.File.Write(data)
	return n, err
}

func fileClose(p *value.Port) error {
	if p.File == nil {
		return nil
	}
	err := p.File.Close()
	p.IsOpen = false
	return err
}

// memoryTextVT decodes/encodes UTF-8 against a value.MemBuf, addressed
// by Port.Index (a byte offset). Random access to the backing buffer
// means Peek needs no lookahead cache.
var memoryTextVT = &value.PortVTable{
	GetOne:  memoryTextGetOne,
	PutOne:  memoryTextPutOne,
	GetMany: memoryTextGetMany,
	PutMany: memoryTextPutMany,
	Peek:    memoryTextPeek,
	Close:   memClose,
}

func memoryTextGetOne(p *value.Port) (int, error) {
	data := p.Mem.Bytes()
	if p.Index >= len(data) {
		return -1, nil
	}
	r, w := utf8.DecodeRune(data[p.Index:])
	p.Index += w
	return int(r), nil
}

func memoryTextPeek(p *value.Port) (int, error) {
	data := p.Mem.Bytes()
	if p.Index >= len(data) {
		return -1, nil
	}
	r, _ := utf8.DecodeRune(data[p.Index:])
	return int(r), nil
}

func memoryTextPutOne(p *value.Port, unit int) error {
	var buf [4]byte
	n := utf8.EncodeRune(buf[:], rune(unit))
	p.Mem.AppendBytes(buf[:n])
	return nil
}

func memoryTextGetMany(p *value.Port, n int) ([]byte, int, error) {
	var out []byte
	count := 0
	for count < n {
		u, _ := memoryTextGetOne(p)
		if u == -1 {
			break
		}
		var buf [4]byte
		w := utf8.EncodeRune(buf[:], rune(u))
		out = append(out, buf[:w]...)
		count++
	}
	return out, count, nil
}

func memoryTextPutMany(p *value.Port, data []byte) (int, error) {
	p.Mem.AppendBytes(data)
	return utf8.RuneCount(data), nil
}

// memoryBytesVT addresses a value.MemBuf byte-for-byte, for bytevector
// ports.
var memoryBytesVT = &value.PortVTable{
	GetOne:  memoryBytesGetOne,
	PutOne:  memoryBytesPutOne,
	GetMany: memoryBytesGetMany,
	PutMany: memoryBytesPutMany,
	Peek:    memoryBytesPeek,
	Close:   memClose,
}

func memoryBytesGetOne(p *value.Port) (int, error) {
	data := p.Mem.Bytes()
	if p.Index >= len(data) {
		return -1, nil
	}
	b := data[p.Index]
	p.Index++
	return int(b), nil
}

func memoryBytesPeek(p *value.Port) (int, error) {
	data := p.Mem.Bytes()
	if p.Index >= len(data) {
		return -1, nil
	}
	return int(data[p.Index]), nil
}

func memoryBytesPutOne(p *value.Port, unit int) error {
	p.Mem.AppendBytes([]byte{byte(unit)})
	return nil
}

func memoryBytesGetMany(p *value.Port, n int) ([]byte, int, error) {
	data := p.Mem.Bytes()
	if p.Index >= len(data) {
		return nil, 0, nil
	}
	end := p.Index + n
	if end > len(data) {
		end = len(data)
	}
	out := data[p.Index:end]
	p.Index = end
	return out, len(out), nil
}

func memoryBytesPutMany(p *value.Port, data []byte) (int, error) {
	p.Mem.AppendBytes(data)
	return len(data), nil
}

func memClose(p *value.Port) error {
	p.IsOpen = false
	return nil
}
