package main

import (
	"context"
	"fmt"

	"github.com/jcorbin/gobf/internal/tape"
)

// VM runs a compiled program over a byte tape.
type VM struct {
	ioCore

	program []Instruction
	prog    int // program counter

	tape *tape.Tape
	ptr  int // data pointer

	tapeSize int
	tapeWrap bool
}

func (vm *VM) init() {
	if vm.tape == nil {
		vm.tape = tape.New(vm.tapeSize)
		vm.tape.Wrap = vm.tapeWrap
	}
}

func (vm *VM) run(ctx context.Context) {
	vm.init()
	vm.exec(ctx)
	vm.halt(nil)
}

func (vm *VM) exec(ctx context.Context) {
	if vm.logfn != nil {
		defer vm.withLogPrefix("\t")()
	}

	done := ctx.Done()
	for vm.prog < len(vm.program) {
		vm.step()
		select {
		case <-done:
			vm.halt(ctx.Err())
		default:
		}
	}
}

func (vm *VM) step() {
	inst := vm.program[vm.prog]
	if vm.logfn != nil {
		vm.logf("@", "%v %v -- ptr:%v", vm.prog, inst, vm.ptr)
	}

	switch inst.op {
	case opMove:
		vm.ptr += inst.arg
		if vm.tape.Wrap {
			vm.ptr, _ = vm.tape.Addr(vm.ptr, "move")
		}

	case opAdd:
		_, err := vm.tape.Add(vm.ptr, inst.arg)
		vm.haltAt(err)

	case opPrint:
		vm.writeByte(vm.load())

	case opInput:
		if b, ok := vm.readByte(); ok {
			vm.haltAt(vm.tape.Stor(vm.ptr, b))
		}

	case opJumpZero:
		if vm.load() == 0 {
			vm.prog = inst.arg
		}

	case opJumpNonZero:
		if vm.load() != 0 {
			vm.prog = inst.arg
		}

	case opNop:

	default:
		vm.haltAt(codeError(inst.op))
	}

	// a taken jump lands just past its partner bracket
	vm.prog++
}

func (vm *VM) load() byte {
	b, err := vm.tape.Load(vm.ptr)
	vm.haltAt(err)
	return b
}

func (vm *VM) haltAt(err error) {
	if err != nil {
		vm.halt(fmt.Errorf("@%v %v: %w", vm.prog, vm.program[vm.prog], err))
	}
}

type codeError opCode

func (code codeError) Error() string { return fmt.Sprintf("invalid code %v", uint8(code)) }
