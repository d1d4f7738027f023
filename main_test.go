package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_command(t *testing.T) {
	dir := t.TempDir()
	writeProgram := func(name, src string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
		return path
	}
	hello := writeProgram("hello.b", helloWorld)
	cat := writeProgram("cat.b", "copy input to output: ,[.,]")
	bad := writeProgram("bad.b", "+[")
	spin := writeProgram("spin.b", "+[]")
	left := writeProgram("left.b", "<+.")
	stray := writeProgram("stray.b", "loop: [-]\nstray: ]\n")

	for _, tc := range []struct {
		name    string
		args    []string
		input   string
		out     string
		errOut  []string
		wantErr string
	}{
		{name: "hello", args: []string{hello}, out: "Hello World!\n"},
		{name: "cat zero", args: []string{"--eof", "zero", cat}, input: "meow", out: "meow"},
		{name: "cat fail", args: []string{cat}, input: "meow", out: "meow", wantErr: "input exhausted: EOF"},
		{name: "bad eof", args: []string{"--eof", "nope", cat}, wantErr: `invalid argument "nope" for "--eof" flag`},
		{name: "invalid", args: []string{bad}, wantErr: bad + ":1:2: invalid program: unmatched '[' at symbol 1"},
		{name: "stray close", args: []string{stray}, wantErr: stray + ":2:8: invalid program: unmatched ']' at symbol 3"},
		{name: "missing", args: []string{filepath.Join(dir, "nope.b")}, wantErr: "failed to read program"},
		{name: "no args", args: []string{}, wantErr: "accepts 1 arg(s), received 0"},
		{name: "timeout", args: []string{"--timeout", "10ms", spin}, wantErr: context.DeadlineExceeded.Error()},
		{name: "bounds", args: []string{left}, wantErr: "tape bounds exceeded by add @-1 (size 30000)"},
		{name: "wrap", args: []string{"--wrap", "--tape-size", "3", left}, out: "\x01"},
		{name: "dump", args: []string{"--dump", cat}, out: lines(
			"# Program",
			"  @0 input <-",
			"  @1 jz 4",
			"  @2   print",
			"  @3   input",
			"  @4 jnz 1",
		)},
		{name: "trace", args: []string{"--trace", cat}, input: "!", out: "!", wantErr: "input exhausted",
			errOut: []string{"level=DEBUG", "program=" + cat, `"\t@ 0 input -- ptr:0"`, `"\t< '!'"`}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			cmd := newCommand()
			cmd.SetArgs(tc.args)
			cmd.SetIn(strings.NewReader(tc.input))
			cmd.SetOut(&out)
			cmd.SetErr(&errOut)

			err := cmd.Execute()
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.out, out.String(), "expected output")
			for _, want := range tc.errOut {
				assert.Contains(t, errOut.String(), want, "expected stderr")
			}
		})
	}
}

func Test_command_traceFile(t *testing.T) {
	dir := t.TempDir()
	prog := filepath.Join(dir, "inc.b")
	trace := filepath.Join(dir, "trace.json")
	require.NoError(t, os.WriteFile(prog, []byte("++."), 0o644))

	var out bytes.Buffer
	cmd := newCommand()
	cmd.SetArgs([]string{"--trace-file", trace, prog})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "\x02", out.String())

	data, err := os.ReadFile(trace)
	require.NoError(t, err)
	records := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, records, 4, "expected one record per step, print, and halt")
	assert.Contains(t, records[0], `"level":"DEBUG"`)
	assert.Contains(t, records[0], `"msg":"\t@ 0 add 2 -- ptr:0"`)
	assert.Contains(t, records[3], `"msg":"# halt"`)
}

func Test_toJournalKey(t *testing.T) {
	assert.Equal(t, "PROGRAM", toJournalKey("program"))
	assert.Equal(t, "LOGS_SPAN_2", toJournalKey("logs.span-2"))
}

func Test_command_args(t *testing.T) {
	cmd := newCommand()
	assert.Equal(t, "gobf [flags] FILE", cmd.Use)
	assert.Error(t, cmd.Args(cmd, []string{}))
	assert.Error(t, cmd.Args(cmd, []string{"a.b", "b.b"}))
	assert.NoError(t, cmd.Args(cmd, []string{"a.b"}))

	for _, name := range []string{"timeout", "trace", "trace-file", "trace-journal", "tape-size", "wrap", "eof", "dump"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "expected --%v flag", name)
	}
	assert.Equal(t, "policy", cmd.Flags().Lookup("eof").Value.Type())
	assert.Equal(t, "fail", cmd.Flags().Lookup("eof").DefValue)
}
