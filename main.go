package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
	slogjournal "github.com/systemd/slog-journal"

	"github.com/jcorbin/gobf/internal/fileinput"
	"github.com/jcorbin/gobf/internal/tape"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
}

type command struct {
	timeout      time.Duration
	trace        bool
	traceFile    string
	traceJournal bool
	tapeSize     int
	wrap         bool
	eof          EOFPolicy
	dump         bool
}

func newCommand() *cobra.Command {
	var c command
	cmd := &cobra.Command{
		Use:   "gobf [flags] FILE",
		Short: "Compile and run a tape program",
		Long: `gobf compiles a program written in the eight symbol tape language
(> < + - . , [ ]), folding runs of repeated moves and adds, resolving loop
brackets into direct jumps, and then runs it over a byte tape.

Program input is read from stdin one byte at a time, and output is written to
stdout as raw bytes. Every other character in FILE is a comment.

Example:
  gobf hello.b
  echo hi | gobf --eof zero cat.b`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.run,
	}

	flags := cmd.Flags()
	flags.DurationVar(&c.timeout, "timeout", 0, "specify a time limit")
	flags.BoolVar(&c.trace, "trace", false, "enable trace logging to stderr")
	flags.StringVar(&c.traceFile, "trace-file", "", "also write trace logging as JSON lines to this file")
	flags.BoolVar(&c.traceJournal, "trace-journal", false, "also write trace logging to the systemd journal")
	flags.IntVar(&c.tapeSize, "tape-size", tape.DefaultSize, "number of tape cells")
	flags.BoolVar(&c.wrap, "wrap", false, "wrap the data pointer around the tape ends, instead of halting")
	flags.Var(&c.eof, "eof", "end of input policy: fail, zero, or keep")
	flags.BoolVar(&c.dump, "dump", false, "print the compiled program instead of running it")
	return cmd
}

func (c *command) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	name := args[0]
	src, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read program: %w", err)
	}

	logger, closeLog, err := c.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	var opts = []VMOption{
		WithInput(cmd.InOrStdin()),
		WithOutput(cmd.OutOrStdout()),
		WithTapeSize(c.tapeSize),
		WithEOF(c.eof),
	}
	if c.wrap {
		opts = append(opts, WithTapeWrap())
	}
	if logger != nil {
		logger = logger.With("program", name)
		opts = append(opts, WithLogf(func(mess string, args ...interface{}) {
			logger.Debug(fmt.Sprintf(mess, args...))
		}))
	}

	vm, err := New(string(src), opts...)
	if err != nil {
		return fmt.Errorf("%v: %w", sourceLocation(name, src, err), err)
	}

	if c.dump {
		dump := vmDumper{vm: vm, out: cmd.OutOrStdout()}
		dump.dumpProgram()
		return nil
	}

	if c.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return vm.Run(ctx)
}

// sourceLocation names where in the program file a compile error occurred,
// or just the file if the error carries no position.
func sourceLocation(name string, src []byte, err error) fmt.Stringer {
	var pe ProgramError
	if errors.As(err, &pe) {
		if loc, ok := fileinput.Locate(name, src, isSymbol, pe.Offset); ok {
			return loc
		}
	}
	return fileinput.Location{Name: name}
}

// logger builds a debug level logger that fans out to every requested trace
// sink, or returns a nil logger if tracing is off.
func (c *command) logger(stderr io.Writer) (*slog.Logger, func(), error) {
	var (
		handlers []slog.Handler
		closers  []io.Closer
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i].Close()
		}
	}
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	if c.trace {
		handlers = append(handlers, slog.NewTextHandler(stderr, opts))
	}

	if c.traceFile != "" {
		f, err := os.Create(c.traceFile)
		if err != nil {
			return nil, closeAll, fmt.Errorf("failed to create trace file: %w", err)
		}
		closers = append(closers, f)
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
	}

	if c.traceJournal {
		h, err := slogjournal.NewHandler(&slogjournal.Options{
			Level:        slog.LevelDebug,
			ReplaceGroup: toJournalKey,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to open journal: %w", err)
		}
		handlers = append(handlers, h)
	}

	if len(handlers) == 0 {
		return nil, closeAll, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closeAll, nil
}

// toJournalKey maps an attribute key into the upper case alphanumeric form
// that journal fields require.
func toJournalKey(key string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, strings.ToUpper(key))
}
