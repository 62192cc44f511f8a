package irep

import (
	"reflect"
	"strings"
	"testing"
)

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		name    string
		code    []byte
		op      Opcode
		a, b, c uint32
		length  int
	}{
		{"Z", []byte{byte(OpSTOP)}, OpSTOP, 0, 0, 0, 1},
		{"B", []byte{byte(OpLOADNIL), 3}, OpLOADNIL, 3, 0, 0, 2},
		{"BB", []byte{byte(OpMOVE), 1, 2}, OpMOVE, 1, 2, 0, 3},
		{"BBB", []byte{byte(OpSEND), 2, 0, 1}, OpSEND, 2, 0, 1, 4},
		{"BS", []byte{byte(OpLOADI16), 1, 0x12, 0x34}, OpLOADI16, 1, 0x1234, 0, 4},
		{"BSS", []byte{byte(OpLOADI32), 1, 0x00, 0x01, 0x00, 0x02}, OpLOADI32, 1, 1, 2, 6},
		{"S", []byte{byte(OpJMP), 0xff, 0xfd}, OpJMP, 0xfffd, 0, 0, 3},
		{"W", []byte{byte(OpENTER), 0x04, 0x00, 0x00}, OpENTER, 0x40000, 0, 0, 4},
		{"EXT1", []byte{byte(OpEXT1), byte(OpLOADNIL), 0x03, 0xe8}, OpLOADNIL, 1000, 0, 0, 4},
		{"EXT2", []byte{byte(OpEXT2), byte(OpSTRING), 1, 0x01, 0x00}, OpSTRING, 1, 256, 0, 5},
		{"EXT3", []byte{byte(OpEXT3), byte(OpMOVE), 0x01, 0x00, 0x01, 0x01}, OpMOVE, 256, 257, 0, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insn := Decode(tt.code, 0)
			if insn.Op != tt.op {
				t.Fatalf("op = %v, want %v", insn.Op, tt.op)
			}
			if insn.A != tt.a || insn.B != tt.b || insn.C != tt.c {
				t.Errorf("operands = %d,%d,%d, want %d,%d,%d", insn.A, insn.B, insn.C, tt.a, tt.b, tt.c)
			}
			if insn.Len != tt.length {
				t.Errorf("len = %d, want %d", insn.Len, tt.length)
			}
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	for _, code := range [][]byte{
		{byte(OpMOVE), 1},
		{byte(OpEXT1)},
		{byte(OpLOADI32), 1, 0},
	} {
		if insn := Decode(code, 0); insn.Len != 0 || insn.Op != OpNOP {
			t.Errorf("Decode(%v) = %+v, want empty NOP", code, insn)
		}
	}
	if insn := Decode([]byte{byte(OpSTOP)}, 5); insn.Len != 0 {
		t.Errorf("out of range pc decoded %+v", insn)
	}
}

func TestJumpTarget(t *testing.T) {
	// JMP -3 at 0 jumps back to itself.
	code := []byte{byte(OpJMP), 0xff, 0xfd, byte(OpJMPIF), 1, 0x00, 0x01, byte(OpNOP), byte(OpSTOP)}
	insns := Instructions(code)
	if len(insns) != 4 {
		t.Fatalf("decoded %d instructions, want 4", len(insns))
	}
	if got := insns[0].JumpTarget(); got != 0 {
		t.Errorf("JMP target = %d, want 0", got)
	}
	if got := insns[1].JumpTarget(); got != 8 {
		t.Errorf("JMPIF target = %d, want 8", got)
	}
}

func sampleUnit() *Irep {
	child := &Irep{
		Code:    []byte{byte(OpENTER), 0, 0, 0, byte(OpLOADNIL), 1, byte(OpRETURN), 1},
		NLocals: 1,
		NRegs:   2,
	}
	return &Irep{
		Code: []byte{
			byte(OpSTRING), 1, 0,
			byte(OpLOADL), 2, 1,
			byte(OpBLOCK), 3, 0,
			byte(OpSEND), 1, 0, 0,
			byte(OpRETURN), 1,
			byte(OpSTOP),
		},
		Pool: []PoolValue{
			{Kind: PoolStr, Str: "hi"},
			{Kind: PoolBigInt, Str: "99999999999999999999", Base: 10, Neg: true},
		},
		Syms:    []string{"puts"},
		Reps:    []*Irep{child},
		Locals:  []string{"x"},
		NLocals: 2,
		NRegs:   4,
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	ir := sampleUnit()
	data, err := Marshal(ir)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again, err := Marshal(ir)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != string(again) {
		t.Error("encoding is not deterministic")
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, ir) {
		t.Errorf("round trip = %+v, want %+v", got, ir)
	}
	if got.Count() != 2 {
		t.Errorf("unit count = %d, want 2", got.Count())
	}
}

func TestUnmarshalRejectsBadUnits(t *testing.T) {
	if _, err := Unmarshal([]byte{0xff, 0x00}); err == nil {
		t.Error("expected error for garbage input")
	}

	ir := sampleUnit()
	ir.Reps[0].Code = append(ir.Reps[0].Code, byte(OpMOVE), 1)
	data, err := Marshal(ir)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if _, err := Unmarshal(data); err == nil {
		t.Error("expected error for truncated child code")
	}

	if _, err := Marshal(nil); err == nil {
		t.Error("expected error marshaling nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		code []byte
		ok   bool
	}{
		{"in range", []byte{byte(OpSTRING), 1, 0, byte(OpSEND), 1, 0, 0}, true},
		{"pool", []byte{byte(OpLOADL), 1, 5}, false},
		{"symbol", []byte{byte(OpGETGV), 1, 1}, false},
		{"child", []byte{byte(OpEXEC), 1, 1}, false},
		{"truncated", []byte{byte(OpSEND), 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ir := sampleUnit()
			ir.Code = tt.code
			err := Validate(ir)
			if (err == nil) != tt.ok {
				t.Errorf("Validate error = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestDisassemble(t *testing.T) {
	out := Disassemble(sampleUnit())
	for _, want := range []string{
		"irep 0 nregs=4 nlocals=2 pools=2 syms=1 reps=1",
		"R1:x",
		"STRING",
		`"hi"`,
		"-99999999999999999999(base 10)",
		"BLOCK",
		"I[0]",
		":puts",
		"irep 1 nregs=2 nlocals=1",
		"ENTER",
		"STOP",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("disassembly missing %q:\n%s", want, out)
		}
	}
}

func TestOpcodeInfo(t *testing.T) {
	if got := OpLOADI_3.Name(); got != "LOADI_3" {
		t.Errorf("name = %q, want LOADI_3", got)
	}
	if !OpJMPNIL.IsJump() || OpSEND.IsJump() {
		t.Error("IsJump misclassifies JMPNIL or SEND")
	}
	if got := Opcode(0xfe).Name(); !strings.HasPrefix(got, "UNKNOWN_") {
		t.Errorf("unknown opcode name = %q", got)
	}
	if PoolBigInt.String() != "bigint" {
		t.Errorf("pool kind = %q, want bigint", PoolBigInt.String())
	}
}
