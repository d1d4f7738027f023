package main

import (
	"errors"
	"fmt"
	"strings"
)

// symbols are the only bytes that carry meaning; all others are comments.
const symbols = "><+-.,[]"

// clean strips every byte that is not one of the eight symbols, preserving
// the order of those that remain.
func clean(src string) string {
	var sb strings.Builder
	sb.Grow(len(src))
	for i := 0; i < len(src); i++ {
		if c := src[i]; isSymbol(c) {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func isSymbol(c byte) bool { return strings.IndexByte(symbols, c) >= 0 }

// validate checks that loop brackets are balanced and properly nested.
func validate(code string) error {
	depth := 0
	var opens []int
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '[':
			depth++
			opens = append(opens, i)
		case ']':
			if depth--; depth < 0 {
				return ProgramError{Offset: i, Unmatched: ']'}
			}
			opens = opens[:len(opens)-1]
		}
	}
	if depth != 0 {
		return ProgramError{Offset: opens[len(opens)-1], Unmatched: '['}
	}
	return nil
}

// ErrInvalidProgram is matched by any ProgramError.
var ErrInvalidProgram = errors.New("invalid program")

// ProgramError indicates unbalanced loop brackets in program source.
// Offset counts symbols in the cleaned program, not bytes of raw source.
type ProgramError struct {
	Offset    int
	Unmatched byte
}

func (pe ProgramError) Error() string {
	return fmt.Sprintf("%v: unmatched %q at symbol %v", ErrInvalidProgram, pe.Unmatched, pe.Offset)
}

func (pe ProgramError) Unwrap() error { return ErrInvalidProgram }
