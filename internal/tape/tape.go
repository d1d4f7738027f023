package tape

import "fmt"

// DefaultSize is the classic tape length.
const DefaultSize = 30000

// Tape implements a fixed-length byte-cell memory.
// Cells start at zero; the tape is never resized after New.
type Tape struct {
	// Wrap selects modular addressing: any address is reduced modulo Len.
	// Otherwise addresses outside [0, Len) result in a BoundsError.
	Wrap bool

	cells []byte
}

// BoundsError indicates that an operation, like load or store, addressed a
// cell outside of the tape.
type BoundsError struct {
	Addr int
	Size int
	Op   string
}

func (be BoundsError) Error() string {
	return fmt.Sprintf("tape bounds exceeded by %v @%v (size %v)", be.Op, be.Addr, be.Size)
}

// New creates a zeroed tape of the given size, or DefaultSize if size is not
// positive.
func New(size int) *Tape {
	if size <= 0 {
		size = DefaultSize
	}
	return &Tape{cells: make([]byte, size)}
}

// Len returns the number of cells.
func (t *Tape) Len() int { return len(t.cells) }

// Addr resolves addr under the tape's addressing policy.
func (t *Tape) Addr(addr int, op string) (int, error) {
	n := len(t.cells)
	if t.Wrap {
		if addr %= n; addr < 0 {
			addr += n
		}
		return addr, nil
	}
	if addr < 0 || addr >= n {
		return 0, BoundsError{addr, n, op}
	}
	return addr, nil
}

// Load returns the value of a single cell.
func (t *Tape) Load(addr int) (byte, error) {
	i, err := t.Addr(addr, "load")
	if err != nil {
		return 0, err
	}
	return t.cells[i], nil
}

// Stor sets the value of a single cell.
func (t *Tape) Stor(addr int, val byte) error {
	i, err := t.Addr(addr, "stor")
	if err != nil {
		return err
	}
	t.cells[i] = val
	return nil
}

// Add applies delta to a cell with 8-bit wraparound in both directions,
// returning the new value.
func (t *Tape) Add(addr int, delta int) (byte, error) {
	i, err := t.Addr(addr, "add")
	if err != nil {
		return 0, err
	}
	val := byte(((int(t.cells[i])+delta)%256 + 256) % 256)
	t.cells[i] = val
	return val, nil
}

// LoadInto reads len(buf) cells starting at addr.
// Returns an error if any cell would be out of bounds; no partial load is
// done in that case.
func (t *Tape) LoadInto(addr int, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if !t.Wrap {
		if _, err := t.Addr(addr, "load"); err != nil {
			return err
		}
		if _, err := t.Addr(addr+len(buf)-1, "load"); err != nil {
			return err
		}
		copy(buf, t.cells[addr:])
		return nil
	}
	for i := range buf {
		j, _ := t.Addr(addr+i, "load")
		buf[i] = t.cells[j]
	}
	return nil
}
