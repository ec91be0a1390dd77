package scope

import (
	"fmt"
	"sort"
)

// RegisterHandle is a scoped acquisition of one free register from the
// root scope's pool. Code that acquires a register must call Release on
// every exit path, including error paths; a double Release, or releasing a
// register nobody acquired, is a compiler invariant violation rather than
// a user-facing error, so it panics.
type RegisterHandle struct {
	reg      int
	root     *Scope
	released bool
}

// Reg is the allocated register number.
func (h *RegisterHandle) Reg() int { return h.reg }

// Release returns the register to the root scope's free pool.
func (h *RegisterHandle) Release() {
	if h.released {
		panic(fmt.Sprintf("register r%d released twice", h.reg))
	}
	h.released = true
	h.root.regs[h.reg] = true
}

// AllocRegister acquires the lowest-numbered free register from the pool,
// delegating to the root scope regardless of which scope AllocRegister is
// called on. Always picking the lowest free register, rather than ranging
// over the map in Go's randomized order, keeps emitted assembly
// deterministic across runs of the same input. It fails with "out of
// registers" if the pool is empty; this compiler never spills, so that
// failure is a hard compile error, not a recoverable condition.
func (s *Scope) AllocRegister() (*RegisterHandle, error) {
	root := s.Root()
	regs := make([]int, 0, len(root.regs))
	for reg := range root.regs {
		regs = append(regs, reg)
	}
	sort.Ints(regs)
	for _, reg := range regs {
		if root.regs[reg] {
			root.regs[reg] = false
			return &RegisterHandle{reg: reg, root: root}, nil
		}
	}
	return nil, fmt.Errorf("out of registers")
}

// FreeRegisters reports which registers are currently unallocated, sorted.
// It exists for tests asserting the register-balance invariant (every
// alloc balances a release by the end of compiling a top-level item).
func (s *Scope) FreeRegisters() []int {
	root := s.Root()
	var free []int
	for reg, ok := range root.regs {
		if ok {
			free = append(free, reg)
		}
	}
	sort.Ints(free)
	return free
}
