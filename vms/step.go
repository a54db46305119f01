package vms

import (
	"fmt"
)

// StepFunc executes the instruction at PC and updates the registers.
type StepFunc func(vm *VM) error

// AdvanceStep is a minimal instruction set: every program cell n means "ap += n; pc += 1".
// Stepping past the last cell returns from the entry frame to [fp - 1].
func AdvanceStep(programSize int) StepFunc {
	return func(vm *VM) error {
		ctx := &vm.RunContext
		if ctx.PC.Offset >= programSize {
			retPC, err := ctx.FP.Sub(1)
			if err != nil {
				return err
			}
			pc, err := vm.Segments.Memory.GetAddress(retPC)
			if err != nil {
				return fmt.Errorf("return pc: %w", err)
			}
			retFP, err := ctx.FP.Sub(2)
			if err != nil {
				return err
			}
			fp, err := vm.Segments.Memory.GetAddress(retFP)
			if err != nil {
				return fmt.Errorf("return fp: %w", err)
			}
			ctx.PC = pc
			ctx.FP = fp
			return nil
		}

		n, err := vm.Segments.Memory.GetFelt(ctx.PC)
		if err != nil {
			return fmt.Errorf("instruction: %w", err)
		}
		if !n.Big().IsInt64() {
			return fmt.Errorf("instruction %v at %v out of range", n, ctx.PC)
		}
		ctx.AP = ctx.AP.Add(int(n.Big().Int64()))
		ctx.PC = ctx.PC.Add(1)
		return nil
	}
}
