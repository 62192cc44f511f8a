package irep

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Disassembly
// ---------------------------------------------------------------------------

// DisassembleInstruction renders one decoded instruction of ir. Symbol and
// pool operands are resolved against ir when they are in range.
func DisassembleInstruction(ir *Irep, insn Insn) string {
	name := insn.Op.Name()
	r := func(n uint32) string { return fmt.Sprintf("R%d", n) }
	sym := func(n uint32) string {
		if ir != nil && int(n) < len(ir.Syms) {
			return ":" + ir.Syms[n]
		}
		return fmt.Sprintf("sym#%d", n)
	}
	lit := func(n uint32) string {
		if ir != nil && int(n) < len(ir.Pool) {
			return fmt.Sprintf("L[%d]\t; %s", n, ir.Pool[n])
		}
		return fmt.Sprintf("L[%d]", n)
	}

	var ops string
	switch insn.Op {
	case OpNOP, OpCALL, OpKEYEND, OpSTOP, OpEXT1, OpEXT2, OpEXT3:
	case OpMOVE:
		ops = r(insn.A) + "\t" + r(insn.B)
	case OpLOADL, OpSTRING, OpSYMBOL:
		ops = r(insn.A) + "\t" + lit(insn.B)
	case OpLOADI, OpADDI, OpSUBI:
		ops = fmt.Sprintf("%s\t%d", r(insn.A), insn.B)
	case OpLOADINEG:
		ops = fmt.Sprintf("%s\t-%d", r(insn.A), insn.B)
	case OpLOADI16:
		ops = fmt.Sprintf("%s\t%d", r(insn.A), int16(uint16(insn.B)))
	case OpLOADI32:
		ops = fmt.Sprintf("%s\t%d", r(insn.A), int32(insn.B<<16|insn.C))
	case OpLOADSYM, OpGETGV, OpSETGV, OpGETSV, OpSETSV, OpGETIV, OpSETIV,
		OpGETCV, OpSETCV, OpGETCONST, OpSETCONST, OpGETMCNST, OpSETMCNST,
		OpKEY_P, OpKARG, OpCLASS, OpMODULE, OpDEF:
		ops = r(insn.A) + "\t" + sym(insn.B)
	case OpGETUPVAR, OpSETUPVAR:
		ops = fmt.Sprintf("%s\t%d\t%d", r(insn.A), insn.B, insn.C)
	case OpJMP, OpJMPUW:
		ops = fmt.Sprintf("%03d", insn.JumpTarget())
	case OpJMPIF, OpJMPNOT, OpJMPNIL:
		ops = fmt.Sprintf("%s\t%03d", r(insn.A), insn.JumpTarget())
	case OpSSEND, OpSSENDB, OpSEND, OpSENDB:
		ops = fmt.Sprintf("%s\t%s\tn=%d|k=%d", r(insn.A), sym(insn.B), insn.C&0xf, insn.C>>4)
	case OpENTER:
		a := insn.A
		ops = fmt.Sprintf("%d:%d:%d:%d:%d:%d:%d (0x%x)",
			a>>18&0x1f, a>>13&0x1f, a>>12&0x1, a>>7&0x1f, a>>2&0x1f, a>>1&0x1, a&0x1, a)
	case OpARRAY, OpARYPUSH, OpHASH, OpHASHADD:
		ops = fmt.Sprintf("%s\t%d", r(insn.A), insn.B)
	case OpARRAY2:
		ops = fmt.Sprintf("%s\t%s\t%d", r(insn.A), r(insn.B), insn.C)
	case OpAREF, OpASET, OpAPOST:
		ops = fmt.Sprintf("%s\t%s\t%d", r(insn.A), r(insn.B), insn.C)
	case OpLAMBDA, OpBLOCK, OpMETHOD, OpEXEC:
		ops = fmt.Sprintf("%s\tI[%d]", r(insn.A), insn.B)
	case OpALIAS:
		ops = sym(insn.A) + "\t" + sym(insn.B)
	case OpUNDEF:
		ops = sym(insn.A)
	case OpERR:
		ops = lit(insn.A)
	case OpARGARY, OpBLKPUSH:
		ops = fmt.Sprintf("%s\t%d", r(insn.A), insn.B)
	case OpRESCUE, OpSUPER:
		ops = fmt.Sprintf("%s\t%d", r(insn.A), insn.B)
	case OpDEBUG:
		ops = fmt.Sprintf("%d\t%d\t%d", insn.A, insn.B, insn.C)
	default:
		ops = r(insn.A)
	}
	if ops == "" {
		return fmt.Sprintf("%03d %s", insn.Addr, name)
	}
	return fmt.Sprintf("%03d %-10s%s", insn.Addr, name, ops)
}

// Disassemble returns a listing of ir and all nested units.
func Disassemble(ir *Irep) string {
	var sb strings.Builder
	n := 0
	ir.Walk(func(u *Irep) bool {
		disassembleUnit(&sb, n, u)
		n++
		return true
	})
	return sb.String()
}

func disassembleUnit(sb *strings.Builder, index int, ir *Irep) {
	fmt.Fprintf(sb, "irep %d nregs=%d nlocals=%d pools=%d syms=%d reps=%d ilen=%d\n",
		index, ir.NRegs, ir.NLocals, len(ir.Pool), len(ir.Syms), len(ir.Reps), len(ir.Code))
	if len(ir.Locals) > 0 {
		sb.WriteString("local variable names:\n")
		for i, name := range ir.Locals {
			if name == "" {
				continue
			}
			fmt.Fprintf(sb, "  R%d:%s\n", i+1, name)
		}
	}
	for _, insn := range Instructions(ir.Code) {
		sb.WriteString("  ")
		sb.WriteString(DisassembleInstruction(ir, insn))
		sb.WriteByte('\n')
	}
}
