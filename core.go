package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/gobf/internal/byteio"
	"github.com/jcorbin/gobf/internal/flushio"
)

type ioCore struct {
	logging
	in  byteio.Reader
	out flushio.WriteFlusher
	eof EOFPolicy
}

func (ioc *ioCore) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if ioc.out != nil {
			if ferr := ioc.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		if err == nil {
			ioc.logf("#", "halt")
		} else {
			ioc.logf("#", "halt error: %v", err)
		}
	}()

	panic(haltError{err})
}

func (ioc *ioCore) haltif(err error) {
	if err != nil {
		ioc.halt(err)
	}
}

func (ioc *ioCore) writeByte(b byte) {
	ioc.logf(">", "%v", byteio.Mnemonic(b))
	ioc.haltif(ioc.out.WriteByte(b))
}

// readByte reads the next input byte, after flushing any pending output.
// The second return is false when the EOF policy leaves the cell unchanged.
func (ioc *ioCore) readByte() (byte, bool) {
	ioc.haltif(ioc.out.Flush())

	b, err := ioc.in.ReadByte()
	if err == nil {
		ioc.logf("<", "%v", byteio.Mnemonic(b))
		return b, true
	} else if err != io.EOF {
		ioc.halt(err)
	}

	ioc.logf("<", "EOF from %v", byteio.NameOf(ioc.in))
	switch ioc.eof {
	case EOFZero:
		return 0, true
	case EOFKeep:
		return 0, false
	default:
		ioc.halt(fmt.Errorf("%w: %w", ErrInputExhausted, err))
		return 0, false
	}
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}

func (err haltError) Unwrap() error { return err.error }

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		mark = strings.Repeat(mark[:1], n) + mark
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
