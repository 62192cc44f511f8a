package irep

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical options so equal unit graphs always encode to
// identical bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("irep: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Marshal serializes a unit graph to CBOR bytes.
func Marshal(ir *Irep) ([]byte, error) {
	if ir == nil {
		return nil, fmt.Errorf("irep: marshal nil unit")
	}
	return cborEncMode.Marshal(ir)
}

// Unmarshal deserializes a unit graph from CBOR bytes and checks that every
// instruction stream decodes cleanly.
func Unmarshal(data []byte) (*Irep, error) {
	var ir Irep
	if err := cbor.Unmarshal(data, &ir); err != nil {
		return nil, fmt.Errorf("irep: unmarshal unit: %w", err)
	}
	var bad error
	ir.Walk(func(u *Irep) bool {
		if bad != nil {
			return false
		}
		if err := Validate(u); err != nil {
			bad = fmt.Errorf("irep: unmarshal unit: %w", err)
			return false
		}
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return &ir, nil
}

// Validate checks that ir's code decodes to whole instructions and that
// its pool, symbol and child operands are in range.
func Validate(ir *Irep) error {
	pc := 0
	for pc < len(ir.Code) {
		insn := Decode(ir.Code, pc)
		if insn.Len == 0 {
			return fmt.Errorf("truncated instruction at %d", pc)
		}
		switch insn.Op {
		case OpLOADL, OpSTRING, OpSYMBOL:
			if int(insn.B) >= len(ir.Pool) {
				return fmt.Errorf("pool index %d out of range at %d", insn.B, pc)
			}
		case OpLAMBDA, OpBLOCK, OpMETHOD, OpEXEC:
			if int(insn.B) >= len(ir.Reps) {
				return fmt.Errorf("child index %d out of range at %d", insn.B, pc)
			}
		case OpSSEND, OpSSENDB, OpSEND, OpSENDB, OpLOADSYM, OpGETGV, OpSETGV,
			OpGETIV, OpSETIV, OpGETCV, OpSETCV, OpGETCONST, OpSETCONST,
			OpGETMCNST, OpSETMCNST, OpDEF, OpCLASS, OpMODULE, OpKEY_P, OpKARG:
			if int(insn.B) >= len(ir.Syms) {
				return fmt.Errorf("symbol index %d out of range at %d", insn.B, pc)
			}
		}
		pc += insn.Len
	}
	return nil
}
