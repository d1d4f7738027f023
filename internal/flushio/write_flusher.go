package flushio

import (
	"bufio"
	"io"
	"io/ioutil"
)

// WriteFlusher is a flush-able io.Writer that also writes single bytes.
type WriteFlusher interface {
	io.Writer
	io.ByteWriter
	Flush() error
}

// Discard is a WriteFlusher that drops everything written to it.
var Discard WriteFlusher = nopFlusher{ioutil.Discard}

// NewWriteFlusher creates a new flushable writer: in-memory buffers and
// ioutil.Discard get a noop Flush; an existing WriteFlusher is returned
// as-is; anything else is wrapped in a bufio.Writer.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	if w == nil || w == ioutil.Discard {
		return Discard
	}

	if wf, is := w.(WriteFlusher); is {
		return wf
	}

	// in memory buffers, as implemented by types like bytes.Buffer and
	// strings.Builder, do not need to be flushed
	type buffer interface {
		io.Writer
		Cap() int
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

func (nf nopFlusher) WriteByte(b byte) error { return WriteByte(nf.Writer, b) }

// WriteByte writes a single raw byte to w, through io.ByteWriter if w
// implements it.
func WriteByte(w io.Writer, b byte) error {
	if bw, ok := w.(io.ByteWriter); ok {
		return bw.WriteByte(b)
	}
	n, err := w.Write([]byte{b})
	if err == nil && n != 1 {
		err = io.ErrShortWrite
	}
	return err
}
