package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/gobf/internal/panicerr"
)

// New compiles source into a VM ready to Run.
// Returns an error matching ErrInvalidProgram if source brackets are unbalanced.
func New(source string, opts ...VMOption) (*VM, error) {
	var vm VM
	if err := panicerr.Recover("compile", func() (err error) {
		vm.program, err = compile(source)
		return err
	}); err != nil {
		return nil, err
	}
	VMOptions(defaults...).apply(&vm)
	VMOptions(opts...).apply(&vm)
	vm.init()
	return &vm, nil
}

// Run executes the program until it runs off the end, or until a fatal
// condition like exhausted input, a tape bounds violation, or ctx being done.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("VM", func() error {
		vm.run(ctx)
		return nil
	})
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	return err
}

// Program returns a copy of the compiled program.
func (vm *VM) Program() []Instruction {
	return append([]Instruction(nil), vm.program...)
}

// ErrInputExhausted is returned by Run when the program reads past the end of
// input under the EOFFail policy.
var ErrInputExhausted = errors.New("input exhausted")

// EOFPolicy determines what an input instruction does at end of input.
type EOFPolicy uint8

const (
	// EOFFail halts the run with ErrInputExhausted.
	EOFFail EOFPolicy = iota
	// EOFZero stores 0 in the current cell.
	EOFZero
	// EOFKeep leaves the current cell unchanged.
	EOFKeep
)

var eofPolicyNames = [...]string{"fail", "zero", "keep"}

func (p EOFPolicy) String() string {
	if int(p) < len(eofPolicyNames) {
		return eofPolicyNames[p]
	}
	return fmt.Sprintf("EOFPolicy(%d)", uint8(p))
}

// Set parses a policy name, so that *EOFPolicy may be used as a flag value.
func (p *EOFPolicy) Set(s string) error {
	for i, name := range eofPolicyNames {
		if strings.EqualFold(s, name) {
			*p = EOFPolicy(i)
			return nil
		}
	}
	return fmt.Errorf("invalid EOF policy %q, expected one of %v", s, strings.Join(eofPolicyNames[:], ", "))
}

// Type names the flag value type.
func (p *EOFPolicy) Type() string { return "policy" }

func WithInput(r io.Reader) VMOption    { return withInput(r) }
func WithOutput(w io.Writer) VMOption   { return withOutput(w) }
func WithTee(w io.Writer) VMOption      { return withTee(w) }
func WithTapeSize(size int) VMOption    { return withTapeSize(size) }
func WithTapeWrap() VMOption            { return withTapeWrap(true) }
func WithEOF(policy EOFPolicy) VMOption { return withEOF(policy) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
