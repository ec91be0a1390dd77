package codegen

import (
	"fmt"

	"github.com/batc-lang/batc/lang/ast"
	"github.com/batc-lang/batc/lang/scope"
)

// compileCallInto lowers a call expression. write_port and read_port
// bypass the user calling convention entirely (§4.4.3); every other call
// follows the full frame-setup/teardown sequence.
//
// Return-value placement for user-defined functions is not implemented
// (§9 open question (a)): the call still executes correctly as a
// statement, but if dest is meant to receive a result, nothing is written
// to it beyond what the TODO marks.
func compileCallInto(c *Compiler, call *ast.Call, dest scope.StorageLocation) (string, error) {
	switch call.Func {
	case "write_port":
		return compileWritePort(c, call, dest)
	case "read_port":
		return compileReadPort(call, dest)
	default:
		return compileUserCall(c, call, dest)
	}
}

func compileWritePort(c *Compiler, call *ast.Call, dest scope.StorageLocation) (string, error) {
	port, ok := call.Args[0].(*ast.IntLit)
	if !ok {
		return "", fmt.Errorf("write_port: port argument must be an integer literal")
	}

	s := call.Scope
	reg, err := s.AllocRegister()
	if err != nil {
		return "", err
	}
	defer reg.Release()

	value, err := compileExprInto(c, call.Args[1], scope.Register{Reg: reg.Reg()})
	if err != nil {
		return "", err
	}
	return value + fmt.Sprintf("pst r%d, #%d\n", reg.Reg(), port.Value), nil
}

func compileReadPort(call *ast.Call, dest scope.StorageLocation) (string, error) {
	port, ok := call.Args[0].(*ast.IntLit)
	if !ok {
		return "", fmt.Errorf("read_port: port argument must be an integer literal")
	}

	s := call.Scope
	reg, err := s.AllocRegister()
	if err != nil {
		return "", err
	}
	defer reg.Release()

	load := fmt.Sprintf("pld r%d, #%d\n", reg.Reg(), port.Value)
	if dest == nil {
		return load, nil
	}
	store, err := storeRegister(s, dest, reg.Reg())
	if err != nil {
		return "", err
	}
	return load + store, nil
}

// compileUserCall emits the full calling convention of §4.4.3: save the
// caller's base pointer, hand the stack pointer to the callee as its new
// base pointer, reserve N+1 frame slots, check for stack overflow, store
// the saved base pointer, lower each argument into its frame slot in
// order, call, then restore the caller's base pointer and release the
// frame.
func compileUserCall(c *Compiler, call *ast.Call, dest scope.StorageLocation) (string, error) {
	s := call.Scope
	if _, err := s.LookupFunc(call.Func); err != nil {
		return "", err
	}

	n := len(call.Args)

	oldBase, err := s.AllocRegister()
	if err != nil {
		return "", err
	}
	defer oldBase.Release()

	var out string
	out += fmt.Sprintf("mov r%d, r%d\n", oldBase.Reg(), scope.BasePointerReg)
	out += fmt.Sprintf("mov r%d, r%d\n", scope.BasePointerReg, scope.StackPointerReg)
	out += fmt.Sprintf("adi r%d, #%d\n", scope.StackPointerReg, -(n + 1))
	out += fmt.Sprintf("cmp r%d, #%d\n", scope.StackPointerReg, scope.StackEnd)
	out += "jmp less .batc_stack_overflow\n"
	out += fmt.Sprintf("mst r%d, #%d, r%d\n", scope.StackPointerReg, n, oldBase.Reg())

	for i, arg := range call.Args {
		argText, err := compileExprInto(c, arg, scope.RegisterOffset{Base: scope.StackPointerReg, Offset: i})
		if err != nil {
			return "", err
		}
		out += argText
	}

	out += fmt.Sprintf("cal .user_%s\n", call.Func)
	out += fmt.Sprintf("mld r%d, r%d, #%d\n", scope.BasePointerReg, scope.StackPointerReg, n)
	out += fmt.Sprintf("adi r%d, #%d\n", scope.StackPointerReg, n+1)

	if dest != nil {
		out += fmt.Sprintf("; TODO(returns): place the return value of %s at its destination\n", call.Func)
	}
	return out, nil
}
