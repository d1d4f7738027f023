package main

import "time"

// Code generated by scripts/gen_vm_expects.go from vm_test.go; DO NOT EDIT.

//go:generate go run scripts/gen_vm_expects.go -- vm_test.go vm_expects_test.go

func withVMSource(source string) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.withSource(source)
	}
}

func withVMOptions(opts ...VMOption) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.withOptions(opts...)
	}
}

func withVMProgram(program ...Instruction) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.withProgram(program...)
	}
}

func withVMProg(prog int) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.withProg(prog)
	}
}

func withVMPtr(ptr int) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.withPtr(ptr)
	}
}

func withVMTapeSize(size int) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.withTapeSize(size)
	}
}

func withVMEOF(policy EOFPolicy) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.withEOF(policy)
	}
}

func withVMCells(addr int, values ...byte) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.withCells(addr, values...)
	}
}

func withVMInput(input string) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.withInput(input)
	}
}

func withVMTimeout(timeout time.Duration) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.withTimeout(timeout)
	}
}

func expectVMError(err error) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectError(err)
	}
}

func expectVMProg(prog int) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectProg(prog)
	}
}

func expectVMPtr(ptr int) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectPtr(ptr)
	}
}

func expectVMCells(addr int, values ...byte) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectCells(addr, values...)
	}
}

func expectVMOutput(output string) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectOutput(output)
	}
}

func expectVMDump(dump string) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectDump(dump)
	}
}
