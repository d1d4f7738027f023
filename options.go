package main

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/jcorbin/gobf/internal/byteio"
	"github.com/jcorbin/gobf/internal/flushio"
	"github.com/jcorbin/gobf/internal/tape"
)

// VMOption configures a VM under New.
type VMOption interface{ apply(vm *VM) }

var defaults = []VMOption{
	withInput(bytes.NewReader(nil)),
	withOutput(ioutil.Discard),
	withTapeSize(tape.DefaultSize),
}

// VMOptions combines any number of options into one, skipping nils.
func VMOptions(opts ...VMOption) VMOption {
	var all vmOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case vmOptions:
			all = append(all, impl...)
		default:
			all = append(all, opt)
		}
	}
	if len(all) == 1 {
		return all[0]
	}
	return all
}

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type tapeSizeOption int
type tapeWrapOption bool
type eofOption EOFPolicy

func withInput(r io.Reader) inputOption     { return inputOption{r} }
func withOutput(w io.Writer) outputOption   { return outputOption{w} }
func withTee(w io.Writer) teeOption         { return teeOption{w} }
func withTapeSize(size int) tapeSizeOption  { return tapeSizeOption(size) }
func withTapeWrap(wrap bool) tapeWrapOption { return tapeWrapOption(wrap) }
func withEOF(policy EOFPolicy) eofOption    { return eofOption(policy) }

func (i inputOption) apply(vm *VM) {
	vm.in = byteio.NewReader(i.Reader)
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.Writer))
	if vm.out == nil {
		vm.out = flushio.Discard
	}
}

func (size tapeSizeOption) apply(vm *VM) {
	vm.tapeSize = int(size)
}

func (wrap tapeWrapOption) apply(vm *VM) {
	vm.tapeWrap = bool(wrap)
}

func (policy eofOption) apply(vm *VM) {
	vm.eof = EOFPolicy(policy)
}
