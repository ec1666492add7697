// Package buffer implements a growable, append-only byte buffer.
//
// It backs the printer's display/write output and the memory-text and
// memory-bytes port backends (internal/port). Capacity grows by doubling,
// or to the exact size needed when doubling would not be enough.
package buffer

import "github.com/dustin/go-humanize"

const initialCapacity = 256

// Buffer is a growable byte buffer. The zero value is not usable; use New.
type Buffer struct {
	data []byte

	// Verbose, when set, receives a note every time the buffer grows.
	// Left nil in normal operation; nothing in this module sets it, so
	// growth is silent unless a caller assigns a callback.
	Verbose func(note string)
}

// New returns an empty Buffer with a reasonable initial capacity.
func New() *Buffer {
	return &Buffer{data: make([]byte, 0, initialCapacity)}
}

// Len returns the number of bytes currently stored.
func (b *Buffer) Len() int { return len(b.data) }

// Bytes returns the buffer's contents. The returned slice aliases the
// buffer's storage and must not be retained across further appends.
func (b *Buffer) Bytes() []byte { return b.data }

// String returns the buffer's contents as a string.
func (b *Buffer) String() string { return string(b.data) }

func (b *Buffer) grow(additional int) {
	needed := len(b.data) + additional
	if needed <= cap(b.data) {
		return
	}
	newCap := cap(b.data) * 2
	if newCap == 0 {
		newCap = initialCapacity
	}
	if newCap < needed {
		newCap = needed
	}
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
	if b.Verbose != nil {
		b.Verbose("buffer: grew to " + humanize.Bytes(uint64(newCap)))
	}
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) {
	b.grow(1)
	b.data = append(b.data, c)
}

// AppendRune appends a rune, UTF-8 encoded.
func (b *Buffer) AppendRune(r rune) {
	var buf [4]byte
	n := encodeRune(buf[:], r)
	b.AppendBytes(buf[:n])
}

// AppendBytes appends a raw byte slice.
func (b *Buffer) AppendBytes(p []byte) {
	b.grow(len(p))
	b.data = append(b.data, p...)
}

// AppendString appends a string.
func (b *Buffer) AppendString(s string) {
	b.grow(len(s))
	b.data = append(b.data, s...)
}

// Reset empties the buffer without releasing its backing storage.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// Truncate drops the buffer to length n. It panics if n is out of range,
// matching the append-only contract (no holes, no growth on truncate).
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > len(b.data) {
		panic("buffer: truncate out of range")
	}
	b.data = b.data[:n]
}

func encodeRune(buf []byte, r rune) int {
	switch {
	case r < 0x80:
		buf[0] = byte(r)
		return 1
	case r < 0x800:
		buf[0] = byte(0xC0 | (r >> 6))
		buf[1] = byte(0x80 | (r & 0x3F))
		return 2
	case r < 0x10000:
		buf[0] = byte(0xE0 | (r >> 12))
		buf[1] = byte(0x80 | ((r >> 6) & 0x3F))
		buf[2] = byte(0x80 | (r & 0x3F))
		return 3
	default:
		buf[0] = byte(0xF0 | (r >> 18))
		buf[1] = byte(0x80 | ((r >> 12) & 0x3F))
		buf[2] = byte(0x80 | ((r >> 6) & 0x3F))
		buf[3] = byte(0x80 | (r & 0x3F))
		return 4
	}
}
