// Package fileinput maps offsets within filtered program text back to
// locations in the source file it was filtered from.
package fileinput

import "fmt"

// Location names a line and column in an input file.
type Location struct {
	Name   string
	Line   int
	Column int
}

func (loc Location) String() string {
	if loc.Line == 0 {
		return loc.Name
	}
	if loc.Column == 0 {
		return fmt.Sprintf("%v:%v", loc.Name, loc.Line)
	}
	return fmt.Sprintf("%v:%v:%v", loc.Name, loc.Line, loc.Column)
}

// Locate scans src for the n-th (0-based) byte accepted by keep, returning
// its line and column. Lines and columns count from 1, columns in bytes.
// The returned bool is false if src holds n or fewer kept bytes, in which
// case the location is the end of src.
func Locate(name string, src []byte, keep func(byte) bool, n int) (Location, bool) {
	loc := Location{Name: name, Line: 1}
	for _, c := range src {
		loc.Column++
		if keep(c) {
			if n == 0 {
				return loc, true
			}
			n--
		}
		if c == '\n' {
			loc.Line++
			loc.Column = 0
		}
	}
	return loc, false
}
