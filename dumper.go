package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jcorbin/gobf/internal/byteio"
)

type vmDumper struct {
	vm  *VM
	out io.Writer

	addrWidth int
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  prog: %v\n", dump.vm.prog)
	fmt.Fprintf(dump.out, "  ptr: %v\n", dump.vm.ptr)
	dump.dumpProgram()
	dump.dumpTape()
}

// dumpProgram writes a listing of the compiled program, indenting loop
// bodies, and marking the program counter if it is within the program.
func (dump *vmDumper) dumpProgram() {
	prog := dump.vm.program
	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.Itoa(len(prog)))
	}
	fmt.Fprintf(dump.out, "# Program\n")
	depth := 0
	for addr, inst := range prog {
		if inst.op == opJumpNonZero && depth > 0 {
			depth--
		}
		mark := ""
		if addr == dump.vm.prog {
			mark = " <-"
		}
		fmt.Fprintf(dump.out, "  @%*v %v%v%v\n", dump.addrWidth, addr, strings.Repeat("  ", depth), inst, mark)
		if inst.op == opJumpZero {
			depth++
		}
	}
}

// dumpTape writes every non-zero cell, along with the cell under the data
// pointer.
func (dump *vmDumper) dumpTape() {
	tp := dump.vm.tape
	if tp == nil {
		return
	}
	width := len(strconv.Itoa(tp.Len()))
	fmt.Fprintf(dump.out, "# Tape (%v cells)\n", tp.Len())
	ptr, err := tp.Addr(dump.vm.ptr, "dump")
	if err != nil {
		fmt.Fprintf(dump.out, "  ptr %v\n", err)
		ptr = -1
	}
	for addr := 0; addr < tp.Len(); addr++ {
		val, _ := tp.Load(addr)
		if val == 0 && addr != ptr {
			continue
		}
		mark := ""
		if addr == ptr {
			mark = " <- ptr"
		}
		fmt.Fprintf(dump.out, "  @%*v %3v %v%v\n", width, addr, val, byteio.Mnemonic(val), mark)
	}
}
