/* Package main: gobf -- a run-length compiling tape machine

The language has eight symbols, and every other byte of source is a comment:

	>   move the data pointer one cell right
	<   move the data pointer one cell left
	+   increment the current cell, wrapping 255 to 0
	-   decrement the current cell, wrapping 0 to 255
	.   write the current cell to output as one raw byte
	,   read one byte of input into the current cell
	[   if the current cell is zero, skip past the matching ]
	]   if the current cell is non-zero, go back past the matching [

Memory is a tape of 30000 byte cells, all zero at start, with the data pointer
at cell 0.

Source passes through a short pipeline before anything runs. First it is
cleaned of all non-symbols, and its brackets are checked for balance; an
unbalanced program is rejected by New with an ErrInvalidProgram error, and is
never compiled.

Then the compiler makes two passes. The first folds every run of one
repeated symbol among > < + - into a single counted instruction: "+++" becomes
"add 3", and "+++-" becomes "add 3" then "add -1", since runs never fold
across different symbols. The second pass replaces each bracket with a jump
to the index of its partner bracket: [ becomes a "jz" (jump if zero) forward,
and ] becomes a "jnz" (jump if non-zero) backward.

Finally the VM steps through the instructions, incrementing its program
counter after each one. A taken jump sets the counter to the partner's index
before that increment, so execution resumes just past the partner.

Running off either end of the tape halts the VM with a tape bounds error,
unless WithTapeWrap is given. Reading past the end of input halts with
ErrInputExhausted, unless a different EOFPolicy is given.

*/
package main
