package main

import (
	"fmt"
	"math"
)

// Instruction is one step of a compiled program.
type Instruction struct {
	op  opCode
	arg int
}

type opCode uint8

const (
	opNop         opCode = iota // <INTERNAL>  any byte that was not cleaned out
	opMove                      // > <         move the data pointer by arg
	opAdd                       // + -         add arg to the current cell, mod 256
	opPrint                     // .           write the current cell
	opInput                     // ,           read one byte into the current cell
	opJumpZero                  // [           jump to arg if the current cell is zero
	opJumpNonZero               // ]           jump to arg if the current cell is non-zero

	opMax
)

var opNames = [opMax]string{
	"nop",
	"move",
	"add",
	"print",
	"input",
	"jz",
	"jnz",
}

func (op opCode) String() string {
	if op < opMax {
		return opNames[op]
	}
	return fmt.Sprintf("op%d", uint8(op))
}

func (inst Instruction) String() string {
	switch inst.op {
	case opMove, opAdd, opJumpZero, opJumpNonZero:
		return fmt.Sprintf("%v %v", inst.op, inst.arg)
	default:
		return inst.op.String()
	}
}

// compile cleans and validates source, then folds and resolves it into a
// program ready to run.
func compile(src string) ([]Instruction, error) {
	code := clean(src)
	if err := validate(code); err != nil {
		return nil, err
	}
	return resolve(fold(code)), nil
}

// token is the intermediate form produced by fold; unlike Instruction it
// still carries unresolved loop brackets.
type token struct {
	kind  tokenKind
	count int
}

type tokenKind uint8

const (
	tokNop tokenKind = iota
	tokMove
	tokAdd
	tokPrint
	tokInput
	tokOpen
	tokClose
)

// fold collapses every maximal run of one of > < + - into a single counted
// token. Runs never merge across different symbols, so "><" is two tokens.
func fold(code string) []token {
	toks := make([]token, 0, len(code))
	for i := 0; i < len(code); {
		c, j := code[i], i+1
		switch c {
		case '>', '<', '+', '-':
			for j < len(code) && code[j] == c {
				j++
			}
		}
		n := j - i
		i = j

		switch c {
		case '>':
			toks = append(toks, token{tokMove, n})
		case '<':
			toks = append(toks, token{tokMove, -n})
		case '+':
			toks = appendAdd(toks, n)
		case '-':
			toks = appendAdd(toks, -n)
		case '.':
			toks = append(toks, token{kind: tokPrint})
		case ',':
			toks = append(toks, token{kind: tokInput})
		case '[':
			toks = append(toks, token{kind: tokOpen})
		case ']':
			toks = append(toks, token{kind: tokClose})
		default:
			toks = append(toks, token{kind: tokNop})
		}
	}
	return toks
}

// appendAdd keeps each add token within int16 range, spilling any remainder
// into further tokens.
func appendAdd(toks []token, n int) []token {
	for ; n > math.MaxInt16; n -= math.MaxInt16 {
		toks = append(toks, token{tokAdd, math.MaxInt16})
	}
	for ; n < math.MinInt16; n -= math.MinInt16 {
		toks = append(toks, token{tokAdd, math.MinInt16})
	}
	return append(toks, token{tokAdd, n})
}

// resolve replaces every bracket token with a jump to the index of its
// structural partner; all other tokens translate directly.
func resolve(toks []token) []Instruction {
	prog := make([]Instruction, len(toks))
	for i, tok := range toks {
		switch tok.kind {
		case tokMove:
			prog[i] = Instruction{opMove, tok.count}
		case tokAdd:
			prog[i] = Instruction{opAdd, tok.count}
		case tokPrint:
			prog[i] = Instruction{op: opPrint}
		case tokInput:
			prog[i] = Instruction{op: opInput}
		case tokOpen:
			prog[i] = Instruction{opJumpZero, matchForward(toks, i)}
		case tokClose:
			prog[i] = Instruction{opJumpNonZero, matchBackward(toks, i)}
		default:
			prog[i] = Instruction{op: opNop}
		}
	}
	return prog
}

// matchForward finds the close token partnering the open token at i.
func matchForward(toks []token, i int) int {
	depth := 0
	for j := i + 1; j < len(toks); j++ {
		switch toks[j].kind {
		case tokOpen:
			depth++
		case tokClose:
			if depth == 0 {
				return j
			}
			depth--
		}
	}
	panic(matchError{i, '['})
}

// matchBackward finds the open token partnering the close token at i.
func matchBackward(toks []token, i int) int {
	depth := 0
	for j := i - 1; j >= 0; j-- {
		switch toks[j].kind {
		case tokClose:
			depth++
		case tokOpen:
			if depth == 0 {
				return j
			}
			depth--
		}
	}
	panic(matchError{i, ']'})
}

// matchError is an invariant violation: resolve was given unbalanced tokens.
type matchError struct {
	at      int
	bracket byte
}

func (me matchError) Error() string {
	return fmt.Sprintf("no partner for %q token @%v", me.bracket, me.at)
}
