package engine

import "fmt"

type cell struct {
	value Value
	set   bool
}

// Memory is the flat, growable cell store of one machine.
type Memory struct {
	cells []cell
}

// NewMemory returns an empty memory.
func NewMemory() *Memory {
	return &Memory{cells: make([]cell, 0, 256)}
}

// Read returns the value at addr. Reading a cell that was never written fails.
func (m *Memory) Read(addr Address) (Value, error) {
	if addr < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidAddress, addr)
	}

	if int(addr) >= len(m.cells) || !m.cells[addr].set {
		return 0, fmt.Errorf("%w: %d", ErrUnknownMemory, addr)
	}

	return m.cells[addr].value, nil
}

// Write stores value at addr, growing the memory when needed.
func (m *Memory) Write(addr Address, value Value) error {
	if addr < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAddress, addr)
	}

	for int(addr) >= len(m.cells) {
		m.cells = append(m.cells, cell{})
	}

	m.cells[addr] = cell{value: value, set: true}

	return nil
}

// ReadRange returns length consecutive values starting at addr.
func (m *Memory) ReadRange(addr Address, length int) ([]Value, error) {
	out := make([]Value, 0, length)

	for i := 0; i < length; i++ {
		v, err := m.Read(addr + Address(i))
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// Len returns the number of cells spanned by the highest written address.
func (m *Memory) Len() int {
	return len(m.cells)
}
