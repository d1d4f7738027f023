package byteio

import (
	"bufio"
	"io"
)

// Reader is an io.Reader that also supports reading single bytes.
type Reader interface {
	io.Reader
	io.ByteReader
}

// NewReader returns a Reader from r; if r already implements, it is simply returned.
// Otherwise bufio.Reader is used to provide byte reading around the given reader.
// If the r implements Name() string, so will the returned Reader.
func NewReader(r io.Reader) Reader {
	if impl, ok := r.(Reader); ok {
		return impl
	}
	br := bufio.NewReader(r)
	if impl, ok := r.(interface{ Name() string }); ok {
		return namedByteReader{br, impl.Name()}
	}
	return br
}

type namedByteReader struct {
	Reader
	name string
}

func (nr namedByteReader) Name() string { return nr.name }

// NamedReader attaches a name to r, as reported by NameOf.
func NamedReader(name string, r io.Reader) Reader {
	return namedByteReader{NewReader(r), name}
}

// NameOf returns the name of r if it has one, or a generic label otherwise.
func NameOf(r interface{}) string {
	if nom, ok := r.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return "<unnamed>"
}
