package codegen

import (
	"math"

	"github.com/chazu/irepgen/irep"
)

// noPeephole reports whether look-back rewriting is off: optimization is
// disabled, nothing was emitted yet, the last position is a jump target, or
// the last instruction was just removed.
func (s *scope) noPeephole() bool {
	return s.gen.opts.NoOptimize ||
		s.lastlabel == s.pc() ||
		s.pc() == 0 ||
		s.pc() == s.lastpc
}

// ---------------------------------------------------------------------------
// Moves
// ---------------------------------------------------------------------------

// genMove emits R[dst] = R[src], folding it into the previous instruction
// where that instruction produced src.
func (s *scope) genMove(dst, src int, nopeep bool) {
	if s.err != nil {
		return
	}
	if nopeep || s.noPeephole() {
		s.genop2(irep.OpMOVE, dst, src)
		return
	}
	if dst == src {
		return
	}

	data := s.lastInsn()
	a, b, c := int(data.A), int(data.B), int(data.C)
	temp := a == src && a >= s.nlocals

	switch data.Op {
	case irep.OpMOVE:
		if a == src {
			if b == dst {
				return // swapping move
			}
			if a < s.nlocals {
				break
			}
			s.rewind()
			s.lastpc = max(s.prevStart(data.Addr), 0)
			s.genMove(dst, b, false)
			return
		}
		if dst == a { // overwritten move
			s.rewind()
			s.lastpc = max(s.prevStart(data.Addr), 0)
			s.genMove(dst, src, false)
			return
		}

	case irep.OpLOADNIL, irep.OpLOADSELF, irep.OpLOADT, irep.OpLOADF,
		irep.OpLOADI__1, irep.OpLOADI_0, irep.OpLOADI_1, irep.OpLOADI_2,
		irep.OpLOADI_3, irep.OpLOADI_4, irep.OpLOADI_5, irep.OpLOADI_6, irep.OpLOADI_7:
		if temp {
			s.rewind()
			s.genop1(data.Op, dst)
			return
		}

	case irep.OpHASH, irep.OpLOADI, irep.OpLOADINEG, irep.OpLOADL, irep.OpLOADSYM,
		irep.OpGETGV, irep.OpGETSV, irep.OpGETIV, irep.OpGETCV, irep.OpGETCONST,
		irep.OpSTRING, irep.OpLAMBDA, irep.OpBLOCK, irep.OpMETHOD, irep.OpBLKPUSH:
		if data.Op == irep.OpHASH && b != 0 {
			break
		}
		if temp {
			s.rewind()
			s.genop2(data.Op, dst, b)
			return
		}

	case irep.OpLOADI16:
		if temp {
			s.rewind()
			s.genop2S(data.Op, dst, uint16(b))
			return
		}

	case irep.OpLOADI32:
		if temp {
			s.rewind()
			s.genop2SS(data.Op, dst, uint32(b)<<16|uint32(c))
			return
		}

	case irep.OpARRAY:
		// ARRAY2 has no wide count.
		if temp && a >= dst && b <= 0xff {
			s.rewind()
			if b == 0 || dst == a {
				s.genop2(irep.OpARRAY, dst, 0)
			} else {
				s.genop3(irep.OpARRAY2, dst, a, b)
			}
			return
		}

	case irep.OpARRAY2:
		if temp && a >= dst {
			s.rewind()
			s.genop3(irep.OpARRAY2, dst, b, c)
			return
		}

	case irep.OpAREF, irep.OpGETUPVAR:
		if temp {
			s.rewind()
			s.genop3(data.Op, dst, b, c)
			return
		}

	case irep.OpADDI, irep.OpSUBI:
		if data.Addr == s.lastlabel || !temp {
			break
		}
		data0 := s.prevInsn(data.Addr)
		if data0.Op != irep.OpMOVE || int(data0.A) != a || int(data0.B) != dst {
			break
		}
		s.truncate(data0.Addr)
		if data0.Addr != s.lastlabel {
			data00 := s.prevInsn(data0.Addr)
			if n, ok := s.intOperand(data00); ok && int(data00.A) == dst {
				var r int64
				if data.Op == irep.OpADDI {
					r, ok = addInt(n, int64(b))
				} else {
					r, ok = subInt(n, int64(b))
				}
				if ok {
					s.truncate(data00.Addr)
					s.genInt(dst, r)
					return
				}
			}
		}
		s.genop2(data.Op, dst, b)
		return
	}

	s.genop2(irep.OpMOVE, dst, src)
}

// genGetUpvar loads an enclosing scope's variable, skipping the load when
// the previous instruction just stored the same register there.
func (s *scope) genGetUpvar(dst int, name string) {
	lv, idx := s.searchUpvar(name)
	if s.err != nil {
		return
	}
	if !s.noPeephole() {
		data := s.lastInsn()
		if data.Op == irep.OpSETUPVAR && int(data.A) == dst && int(data.B) == idx && int(data.C) == lv {
			return
		}
	}
	s.genop3(irep.OpGETUPVAR, dst, idx, lv)
}

func (s *scope) genSetUpvar(dst int, name string) {
	lv, idx := s.searchUpvar(name)
	if s.err != nil {
		return
	}
	if !s.noPeephole() {
		data := s.lastInsn()
		if data.Op == irep.OpMOVE && int(data.A) == dst {
			dst = int(data.B)
			s.rewind()
		}
	}
	s.genop3(irep.OpSETUPVAR, dst, idx, lv)
}

// genReturn emits a return of R[src], returning a moved register directly
// and dropping a return that follows another.
func (s *scope) genReturn(op irep.Opcode, src int) {
	if s.noPeephole() {
		s.genop1(op, src)
		return
	}
	data := s.lastInsn()
	switch {
	case data.Op == irep.OpMOVE && src == int(data.A):
		s.rewind()
		s.genop1(op, int(data.B))
	case data.Op != irep.OpRETURN:
		s.genop1(op, src)
	}
}

// genSetXV emits a global, instance, class variable or constant store.
func (s *scope) genSetXV(op irep.Opcode, dst int, name string, val bool) {
	idx := s.newSym(name)
	if !val && !s.noPeephole() {
		data := s.lastInsn()
		if data.Op == irep.OpMOVE && int(data.A) == dst {
			dst = int(data.B)
			s.rewind()
		}
	}
	s.genop2(op, dst, idx)
}

// genIntern converts the string on top of the stack to a symbol, turning a
// just emitted STRING load into SYMBOL.
func (s *scope) genIntern() {
	s.pop(1)
	if !s.noPeephole() {
		data := s.lastInsn()
		if data.Op == irep.OpSTRING && int(data.A) == s.sp {
			s.rewind()
			s.genop2(irep.OpSYMBOL, int(data.A), int(data.B))
			s.push(1)
			return
		}
	}
	s.genop1(irep.OpINTERN, s.sp)
	s.push(1)
}

// ---------------------------------------------------------------------------
// Integer loads and folding
// ---------------------------------------------------------------------------

// intOperand returns the value loaded by an integer load instruction.
func (s *scope) intOperand(data irep.Insn) (int64, bool) {
	switch data.Op {
	case irep.OpLOADI__1:
		return -1, true
	case irep.OpLOADINEG:
		return -int64(data.B), true
	case irep.OpLOADI_0, irep.OpLOADI_1, irep.OpLOADI_2, irep.OpLOADI_3,
		irep.OpLOADI_4, irep.OpLOADI_5, irep.OpLOADI_6, irep.OpLOADI_7:
		return int64(data.Op - irep.OpLOADI_0), true
	case irep.OpLOADI, irep.OpLOADI16:
		return int64(int16(uint16(data.B))), true
	case irep.OpLOADI32:
		return int64(int32(data.B<<16 | data.C)), true
	case irep.OpLOADL:
		if int(data.B) < len(s.pool) && s.pool[data.B].IsInt() {
			return s.pool[data.B].Int, true
		}
	}
	return 0, false
}

// genInt loads i into R[dst] using the shortest instruction.
func (s *scope) genInt(dst int, i int64) {
	switch {
	case i == -1:
		s.genop1(irep.OpLOADI__1, dst)
	case i < 0 && i >= -0xff:
		s.genop2(irep.OpLOADINEG, dst, int(-i))
	case i < 0 && i >= math.MinInt16:
		s.genop2S(irep.OpLOADI16, dst, uint16(int16(i)))
	case i < 0 && i >= math.MinInt32:
		s.genop2SS(irep.OpLOADI32, dst, uint32(int32(i)))
	case i < 0:
		s.genop2(irep.OpLOADL, dst, s.newLitInt(i))
	case i < 8:
		s.genop1(irep.OpLOADI_0+irep.Opcode(i), dst)
	case i <= 0xff:
		s.genop2(irep.OpLOADI, dst, int(i))
	case i <= math.MaxInt16:
		s.genop2S(irep.OpLOADI16, dst, uint16(i))
	case i <= math.MaxInt32:
		s.genop2SS(irep.OpLOADI32, dst, uint32(i))
	default:
		s.genop2(irep.OpLOADL, dst, s.newLitInt(i))
	}
}

// genAddSub emits ADD or SUB on R[dst], R[dst+1]. A constant right operand
// becomes ADDI/SUBI; two constant operands fold into one load.
func (s *scope) genAddSub(op irep.Opcode, dst int) {
	if s.noPeephole() {
		s.genop1(op, dst)
		return
	}
	data := s.lastInsn()
	n, ok := s.intOperand(data)
	if !ok {
		s.genop1(op, dst)
		return
	}
	data0 := s.prevInsn(data.Addr)
	n0, ok0 := s.intOperand(data0)
	if data.Addr == s.lastlabel || !ok0 {
		if n > math.MaxInt8 || n < math.MinInt8 {
			s.genop1(op, dst)
			return
		}
		s.rewind()
		switch {
		case n == 0:
		case n > 0 && op == irep.OpADD:
			s.genop2(irep.OpADDI, dst, int(n))
		case n > 0:
			s.genop2(irep.OpSUBI, dst, int(n))
		case op == irep.OpADD:
			s.genop2(irep.OpSUBI, dst, int(-n))
		default:
			s.genop2(irep.OpADDI, dst, int(-n))
		}
		return
	}
	var r int64
	if op == irep.OpADD {
		r, ok = addInt(n0, n)
	} else {
		r, ok = subInt(n0, n)
	}
	if !ok {
		s.genop1(op, dst)
		return
	}
	s.truncate(data0.Addr)
	s.genInt(dst, r)
}

// genMulDiv emits MUL or DIV, folding two constant operands.
func (s *scope) genMulDiv(op irep.Opcode, dst int) {
	if s.noPeephole() {
		s.genop1(op, dst)
		return
	}
	data := s.lastInsn()
	n, ok := s.intOperand(data)
	if data.Addr == s.lastlabel || !ok {
		s.genop1(op, dst)
		return
	}
	data0 := s.prevInsn(data.Addr)
	n0, ok := s.intOperand(data0)
	if !ok {
		s.genop1(op, dst)
		return
	}
	var r int64
	if op == irep.OpMUL {
		if r, ok = mulInt(n0, n); !ok {
			s.genop1(op, dst)
			return
		}
	} else {
		if n == 0 || (n0 == math.MinInt64 && n == -1) {
			s.genop1(op, dst)
			return
		}
		r = divInt(n0, n)
	}
	s.truncate(data0.Addr)
	s.genInt(dst, r)
}

// genBinop handles [] and the integer operators without a dedicated
// instruction. It reports false when the caller must emit a send.
func (s *scope) genBinop(name string, dst int) bool {
	if s.noPeephole() {
		return false
	}
	if name == "[]" {
		s.genop1(irep.OpGETIDX, dst)
		return true
	}
	data := s.lastInsn()
	n, ok := s.intOperand(data)
	if data.Addr == s.lastlabel || !ok {
		return false
	}
	data0 := s.prevInsn(data.Addr)
	n0, ok := s.intOperand(data0)
	if !ok {
		return false
	}
	var r int64
	switch name {
	case "<<":
		if r, ok = shiftInt(n0, n); !ok {
			return false
		}
	case ">>":
		if n == math.MinInt64 {
			return false
		}
		if r, ok = shiftInt(n0, -n); !ok {
			return false
		}
	case "%":
		if n == 0 {
			return false
		}
		r = modInt(n0, n)
	case "&":
		r = n0 & n
	case "|":
		r = n0 | n
	case "^":
		r = n0 ^ n
	default:
		return false
	}
	s.truncate(data0.Addr)
	s.genInt(dst, r)
	return true
}

// genUniop folds a unary operator applied to a constant.
func (s *scope) genUniop(name string, dst int) bool {
	if s.noPeephole() {
		return false
	}
	data := s.lastInsn()
	n, ok := s.intOperand(data)
	if !ok {
		return false
	}
	switch name {
	case "+@":
	case "-@":
		if n == math.MinInt64 {
			return false
		}
		n = -n
	case "~":
		n = ^n
	default:
		return false
	}
	s.truncate(data.Addr)
	s.genInt(dst, n)
	return true
}
