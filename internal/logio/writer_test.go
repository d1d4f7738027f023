package logio_test

import (
	"fmt"
	"testing"

	"github.com/jcorbin/gobf/internal/logio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Writer(t *testing.T) {
	var lines []string
	lw := &logio.Writer{
		Prefix: "out: ",
		Logf: func(mess string, args ...interface{}) {
			lines = append(lines, fmt.Sprintf(mess, args...))
		},
	}

	_, err := lw.Write([]byte("hello\nwor"))
	require.NoError(t, err)
	assert.Equal(t, []string{"out: hello"}, lines, "expected one completed line")

	require.NoError(t, lw.WriteByte('l'))
	require.NoError(t, lw.WriteByte('d'))
	assert.Len(t, lines, 1, "expected partial line to stay buffered")

	require.NoError(t, lw.WriteByte('\n'))
	require.NoError(t, lw.WriteByte('\x00'))
	require.NoError(t, lw.Close())
	assert.Equal(t, []string{
		"out: hello",
		"out: world",
		"out: \x00",
	}, lines)
}
