package byteio_test

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/jcorbin/gobf/internal/byteio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Mnemonic(t *testing.T) {
	for _, tc := range []struct {
		b    byte
		want string
	}{
		{0x00, "<NUL>"},
		{0x0a, "<NL>"},
		{0x1b, "<ESC>"},
		{0x20, "<SP>"},
		{'A', "'A'"},
		{'\'', `'\''`},
		{0x7f, "<DEL>"},
		{0x85, "<NEL>"},
		{0x9b, "<CSI>"},
		{0xa0, "0xa0"},
		{0xff, "0xff"},
	} {
		assert.Equal(t, tc.want, byteio.Mnemonic(tc.b), "expected mnemonic for 0x%02x", tc.b)
	}
}

func Test_CaretForm(t *testing.T) {
	assert.Equal(t, "^@", byteio.CaretForm(0x00))
	assert.Equal(t, "^C", byteio.CaretForm(0x03))
	assert.Equal(t, "^[", byteio.CaretForm(0x1b))
	assert.Equal(t, "^?", byteio.CaretForm(0x7f))
	assert.Equal(t, "", byteio.CaretForm('x'))
}

func Test_NewReader(t *testing.T) {
	sr := strings.NewReader("ab")
	assert.Equal(t, byteio.Reader(sr), byteio.NewReader(sr), "expected passthrough")

	r := byteio.NewReader(io.LimitReader(strings.NewReader("xyz"), 2))
	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('x'), b)
	b, err = r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('y'), b)
	_, err = r.ReadByte()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "<unnamed>", byteio.NameOf(r))

	nr := byteio.NamedReader("stdin", bufio.NewReader(strings.NewReader("q")))
	assert.Equal(t, "stdin", byteio.NameOf(nr))
	b, err = nr.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('q'), b)
}
