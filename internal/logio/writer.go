// Package logio adapts byte streams into line oriented logging.
package logio

import (
	"bytes"
	"sync"
)

// Writer implements an io.Writer around a formatted logging function.
type Writer struct {
	Logf func(string, ...interface{})

	// Prefix, if set, is prepended to every logged line.
	Prefix string

	mu  sync.Mutex
	buf bytes.Buffer
}

// Write writes the given bytes into an internal buffer, then flushes any
// completed lines through Logf. This is all done while holding a lock, so that
// writing is safe from multiple goroutines.
func (lw *Writer) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.Write(p)
	lw.flushLines(false)
	return len(p), nil
}

// WriteByte writes a single byte, flushing a line if it completes one.
func (lw *Writer) WriteByte(b byte) error {
	_, err := lw.Write([]byte{b})
	return err
}

// Flush logs any remaining partial line.
func (lw *Writer) Flush() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.flushLines(true)
	return nil
}

// Close calls Flush.
func (lw *Writer) Close() error {
	return lw.Flush()
}

func (lw *Writer) flushLines(all bool) {
	for lw.buf.Len() > 0 {
		i := bytes.IndexByte(lw.buf.Bytes(), '\n')
		if i >= 0 {
			lw.Logf("%s%s", lw.Prefix, lw.buf.Next(i))
			lw.buf.Next(1)
		} else if all {
			lw.Logf("%s%s", lw.Prefix, lw.buf.Next(lw.buf.Len()))
		} else {
			break
		}
	}
}
