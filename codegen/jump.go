package codegen

import (
	"math"

	"github.com/chazu/irepgen/irep"
)

// label collects the forward jump sites that must land on the same, not
// yet known, position. Each site is the offset of a 16-bit placeholder.
type label struct {
	sites []int
}

// newLabel marks the current position as a jump target and returns it.
func (s *scope) newLabel() int {
	s.lastlabel = s.pc()
	return s.lastlabel
}

// genJump emits an unconditional forward jump to l.
func (s *scope) genJump(op irep.Opcode, l *label) {
	if s.err != nil {
		return
	}
	s.genop0(op)
	l.sites = append(l.sites, s.pc())
	s.emitS(0)
}

// genJumpTo emits a jump to an already known position.
func (s *scope) genJumpTo(op irep.Opcode, target int) {
	if s.err != nil {
		return
	}
	s.genop0(op)
	off := target - (s.pc() + 2)
	if off > math.MaxInt16 || off < math.MinInt16 {
		s.fail(errTooBigJump)
		return
	}
	s.emitS(uint16(int16(off)))
}

// genCondJump emits a conditional forward jump testing register a. When the
// value is not needed and a was just loaded with a constant, the load and
// the test are replaced by an unconditional jump or by nothing.
func (s *scope) genCondJump(op irep.Opcode, a int, l *label, val bool) {
	if s.err != nil {
		return
	}
	if !s.noPeephole() && !val {
		data := s.lastInsn()
		switch data.Op {
		case irep.OpMOVE:
			if int(data.A) == a && int(data.A) > s.nlocals {
				s.rewind()
				a = int(data.B)
			}
		case irep.OpLOADNIL, irep.OpLOADF:
			if int(data.A) == a || int(data.A) > s.nlocals {
				s.truncate(data.Addr)
				if op == irep.OpJMPNOT || (op == irep.OpJMPNIL && data.Op == irep.OpLOADNIL) {
					s.genJump(irep.OpJMP, l)
				}
				return
			}
		case irep.OpLOADT, irep.OpLOADI, irep.OpLOADINEG, irep.OpLOADI__1,
			irep.OpLOADI_0, irep.OpLOADI_1, irep.OpLOADI_2, irep.OpLOADI_3,
			irep.OpLOADI_4, irep.OpLOADI_5, irep.OpLOADI_6, irep.OpLOADI_7:
			if int(data.A) == a || int(data.A) > s.nlocals {
				s.truncate(data.Addr)
				if op == irep.OpJMPIF {
					s.genJump(irep.OpJMP, l)
				}
				return
			}
		}
	}

	s.markInsn()
	if a > 0xff {
		s.checkNoExt(a, 0)
		s.emitB(byte(irep.OpEXT1))
		s.emitB(byte(op))
		s.emitS(uint16(a))
	} else {
		s.emitB(byte(op))
		s.emitB(byte(a))
	}
	if s.err != nil {
		return
	}
	l.sites = append(l.sites, s.pc())
	s.emitS(0)
}

// dispatch resolves every pending site of l to the current position.
func (s *scope) dispatch(l *label) {
	if s.err != nil || len(l.sites) == 0 {
		return
	}
	pc := s.pc()
	for _, site := range l.sites {
		off := pc - (site + 2)
		if off > math.MaxInt16 {
			s.fail(errTooBigJmp)
			return
		}
		s.code[site] = byte(uint16(off) >> 8)
		s.code[site+1] = byte(off)
	}
	s.lastlabel = pc
	l.sites = l.sites[:0]
}
