package codegen

import (
	"fmt"

	"github.com/batc-lang/batc/lang/scope"
)

// storeRegister emits the instruction(s) that move the value currently
// held in valueReg into dest, allocating a scratch register of its own
// when dest is static memory (a mst needs a base register, never a bare
// address operand — see §6's mnemonic table). It is the shared tail of
// every expression's destination-directed lowering (§4.4.4).
func storeRegister(s *scope.Scope, dest scope.StorageLocation, valueReg int) (string, error) {
	switch d := dest.(type) {
	case scope.Register:
		if d.Reg == valueReg {
			return "", nil
		}
		return fmt.Sprintf("mov r%d, r%d\n", d.Reg, valueReg), nil
	case scope.RegisterOffset:
		if err := checkOffset(d.Offset); err != nil {
			return "", err
		}
		return fmt.Sprintf("mst r%d, #%d, r%d\n", d.Base, d.Offset, valueReg), nil
	case scope.Static:
		addr, err := s.AllocRegister()
		if err != nil {
			return "", err
		}
		defer addr.Release()
		return fmt.Sprintf("ldi r%d, #%d\nmst r%d, #0, r%d\n", addr.Reg(), d.Address, addr.Reg(), valueReg), nil
	default:
		return "", fmt.Errorf("codegen: unsupported destination variant %T", dest)
	}
}

// checkOffset enforces the assembler's signed 6-bit frame-offset field
// (§4.4.4).
func checkOffset(off int) error {
	if off < -32 || off > 31 {
		return fmt.Errorf("frame offset %d out of range [-32, 31]", off)
	}
	return nil
}

// emitImmediate lowers the constant value into dest, allocating a scratch
// register only when dest isn't itself a bare register. Both integer
// literals and the true/false arms of an equality comparison reduce to
// this (§4.4.4's IntLiteral rows).
func emitImmediate(s *scope.Scope, dest scope.StorageLocation, value int64) (string, error) {
	if reg, ok := dest.(scope.Register); ok {
		return fmt.Sprintf("ldi r%d, #%d\n", reg.Reg, value), nil
	}

	reg, err := s.AllocRegister()
	if err != nil {
		return "", err
	}
	defer reg.Release()

	store, err := storeRegister(s, dest, reg.Reg())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ldi r%d, #%d\n", reg.Reg(), value) + store, nil
}
