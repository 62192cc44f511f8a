package irep

// Insn is one decoded instruction. Operands that the format does not use
// are zero. Addr is the offset of the first byte, including any extension
// prefix, and Len is the total encoded length.
type Insn struct {
	Op   Opcode
	A    uint32
	B    uint32
	C    uint32
	Addr int
	Len  int
}

// Decode decodes the instruction starting at pc. An extension prefix is
// folded into the following instruction. A pc outside code, or a truncated
// instruction, yields an Insn with Op NOP and Len 0.
func Decode(code []byte, pc int) Insn {
	insn := Insn{Op: OpNOP, Addr: pc}
	if pc < 0 || pc >= len(code) {
		return insn
	}

	p := pc
	op := Opcode(code[p])
	p++
	var wideA, wideB bool
	if op.IsExt() {
		wideA = op == OpEXT1 || op == OpEXT3
		wideB = op == OpEXT2 || op == OpEXT3
		if p >= len(code) {
			return insn
		}
		op = Opcode(code[p])
		p++
	}

	need := func(n int) bool { return p+n <= len(code) }
	readB := func() uint32 {
		v := uint32(code[p])
		p++
		return v
	}
	readS := func() uint32 {
		v := uint32(code[p])<<8 | uint32(code[p+1])
		p += 2
		return v
	}
	read := func(wide bool) (uint32, bool) {
		if wide {
			if !need(2) {
				return 0, false
			}
			return readS(), true
		}
		if !need(1) {
			return 0, false
		}
		return readB(), true
	}

	var ok = true
	switch op.Format() {
	case FormatZ:
	case FormatB:
		insn.A, ok = read(wideA)
	case FormatBB:
		if insn.A, ok = read(wideA); ok {
			insn.B, ok = read(wideB)
		}
	case FormatBBB:
		if insn.A, ok = read(wideA); ok {
			if insn.B, ok = read(wideB); ok {
				insn.C, ok = read(false)
			}
		}
	case FormatBS:
		if insn.A, ok = read(wideA); ok {
			insn.B, ok = read(true)
		}
	case FormatBSS:
		if insn.A, ok = read(wideA); ok {
			if insn.B, ok = read(true); ok {
				insn.C, ok = read(true)
			}
		}
	case FormatS:
		insn.A, ok = read(true)
	case FormatW:
		if ok = need(3); ok {
			insn.A = uint32(code[p])<<16 | uint32(code[p+1])<<8 | uint32(code[p+2])
			p += 3
		}
	}
	if !ok {
		return Insn{Op: OpNOP, Addr: pc}
	}

	insn.Op = op
	insn.Len = p - pc
	return insn
}

// JumpTarget returns the absolute target of a decoded jump instruction.
// The offset is relative to the end of the instruction.
func (i Insn) JumpTarget() int {
	var off uint32
	switch i.Op {
	case OpJMP, OpJMPUW:
		off = i.A
	default:
		off = i.B
	}
	return i.Addr + i.Len + int(int16(uint16(off)))
}

// Instructions decodes every instruction in code, in order. Decoding stops
// at the first malformed instruction.
func Instructions(code []byte) []Insn {
	var insns []Insn
	for pc := 0; pc < len(code); {
		insn := Decode(code, pc)
		if insn.Len == 0 {
			break
		}
		insns = append(insns, insn)
		pc += insn.Len
	}
	return insns
}
