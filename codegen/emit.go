package codegen

import (
	"math"
	"sort"

	"github.com/chazu/irepgen/irep"
)

// maxCodeSize bounds the instruction buffer of one unit.
var maxCodeSize int64 = math.MaxUint32

// ---------------------------------------------------------------------------
// Instruction buffer
// ---------------------------------------------------------------------------

func (s *scope) pc() int { return len(s.code) }

func (s *scope) emitB(b byte) {
	if s.err != nil {
		return
	}
	if int64(len(s.code)) >= maxCodeSize {
		s.fail(errTooBigCode)
		return
	}
	s.code = append(s.code, b)
}

func (s *scope) emitS(v uint16) {
	s.emitB(byte(v >> 8))
	s.emitB(byte(v))
}

// markInsn records the start of a new instruction.
func (s *scope) markInsn() {
	s.lastpc = len(s.code)
	s.starts = append(s.starts, len(s.code))
}

// truncate drops every instruction at or after pc.
func (s *scope) truncate(pc int) {
	if pc < s.lastlabel {
		s.fail(errTruncateLabel)
		return
	}
	s.code = s.code[:pc]
	n := sort.SearchInts(s.starts, pc)
	s.starts = s.starts[:n]
	if s.lastpc > pc {
		s.lastpc = pc
	}
}

// rewind drops the most recent instruction. lastpc is left in place, which
// keeps the peephole off until the next instruction is emitted.
func (s *scope) rewind() {
	s.truncate(s.lastpc)
}

// prevStart returns the start of the instruction preceding addr, or -1.
func (s *scope) prevStart(addr int) int {
	n := sort.SearchInts(s.starts, addr)
	if n == 0 {
		return -1
	}
	return s.starts[n-1]
}

// lastInsn decodes the most recent instruction.
func (s *scope) lastInsn() irep.Insn {
	if len(s.code) == 0 {
		return irep.Insn{Op: irep.OpNOP}
	}
	return irep.Decode(s.code, s.lastpc)
}

// prevInsn decodes the instruction preceding addr. Without one it returns
// a NOP at -1.
func (s *scope) prevInsn(addr int) irep.Insn {
	p := s.prevStart(addr)
	if p < 0 {
		return irep.Insn{Op: irep.OpNOP, Addr: -1}
	}
	return irep.Decode(s.code, p)
}

// ---------------------------------------------------------------------------
// Encoder
// ---------------------------------------------------------------------------

func (s *scope) checkNoExt(a, b int) {
	if s.gen.opts.NoExtOps && (a|b) > 0xff {
		s.fail(errNoExtOps)
	}
}

func (s *scope) genop0(op irep.Opcode) {
	if s.err != nil {
		return
	}
	s.markInsn()
	s.emitB(byte(op))
}

func (s *scope) genop1(op irep.Opcode, a int) {
	if s.err != nil {
		return
	}
	s.markInsn()
	s.checkNoExt(a, 0)
	if a > 0xff {
		s.emitB(byte(irep.OpEXT1))
		s.emitB(byte(op))
		s.emitS(uint16(a))
	} else {
		s.emitB(byte(op))
		s.emitB(byte(a))
	}
}

func (s *scope) genop2(op irep.Opcode, a, b int) {
	if s.err != nil {
		return
	}
	s.markInsn()
	s.checkNoExt(a, b)
	switch {
	case a > 0xff && b > 0xff:
		s.emitB(byte(irep.OpEXT3))
		s.emitB(byte(op))
		s.emitS(uint16(a))
		s.emitS(uint16(b))
	case b > 0xff:
		s.emitB(byte(irep.OpEXT2))
		s.emitB(byte(op))
		s.emitB(byte(a))
		s.emitS(uint16(b))
	case a > 0xff:
		s.emitB(byte(irep.OpEXT1))
		s.emitB(byte(op))
		s.emitS(uint16(a))
		s.emitB(byte(b))
	default:
		s.emitB(byte(op))
		s.emitB(byte(a))
		s.emitB(byte(b))
	}
}

// genop3 emits a three operand instruction. c has no extended form and
// must fit in 8 bits.
func (s *scope) genop3(op irep.Opcode, a, b, c int) {
	if c < 0 || c > 0xff {
		s.fail(errTooBigOperand)
		return
	}
	s.genop2(op, a, b)
	s.emitB(byte(c))
}

func (s *scope) genop2S(op irep.Opcode, a int, b uint16) {
	s.genop1(op, a)
	s.emitS(b)
}

func (s *scope) genop2SS(op irep.Opcode, a int, b uint32) {
	s.genop1(op, a)
	s.emitS(uint16(b >> 16))
	s.emitS(uint16(b))
}

func (s *scope) genopW(op irep.Opcode, a uint32) {
	if s.err != nil {
		return
	}
	s.markInsn()
	s.emitB(byte(op))
	s.emitB(byte(a >> 16))
	s.emitB(byte(a >> 8))
	s.emitB(byte(a))
}
