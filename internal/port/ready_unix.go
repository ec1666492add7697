//go:build unix

package port

import (
	"golang.org/x/sys/unix"

	"cozenage/internal/value"
)

// Ready reports whether a unit can be read from p without blocking.
// Memory ports are always ready (or exhausted, which still answers
// immediately); file ports fall back to a zero-timeout poll(2) on the
// underlying file descriptor.
func Ready(p *value.Port) bool {
	if p.Peeked != -1 {
		return true
	}
	if p.Kind == value.MemoryText || p.Kind == value.MemoryBytes {
		return true
	}
	if p.File == nil {
		return true
	}
	fds := []unix.PollFd{{Fd: int32(p.File.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil {
		return true
	}
	return n > 0
}
