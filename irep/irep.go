package irep

import (
	"fmt"
	"math"
	"strconv"
)

// PoolKind tags a literal pool entry.
type PoolKind uint8

const (
	PoolStr    PoolKind = iota // string owned by the unit
	PoolSStr                   // string borrowed from static storage
	PoolInt32                  // 32-bit integer
	PoolInt64                  // 64-bit integer
	PoolFloat                  // float64, sign of zero significant
	PoolBigInt                 // integer too large for int64, kept as digit text
)

var poolKindNames = [...]string{"str", "sstr", "int32", "int64", "float", "bigint"}

func (k PoolKind) String() string {
	if int(k) < len(poolKindNames) {
		return poolKindNames[k]
	}
	return fmt.Sprintf("PoolKind(%d)", uint8(k))
}

// PoolValue is one literal pool entry. Only the fields relevant to Kind are
// set: Str for strings and big integer digits, Int for integers, Float for
// floats. Base and Neg describe a PoolBigInt.
type PoolValue struct {
	Kind  PoolKind `cbor:"1,keyasint"`
	Str   string   `cbor:"2,keyasint,omitempty"`
	Int   int64    `cbor:"3,keyasint,omitempty"`
	Float float64  `cbor:"4,keyasint"`
	Base  int      `cbor:"5,keyasint,omitempty"`
	Neg   bool     `cbor:"6,keyasint,omitempty"`
}

// IsString reports whether the entry holds string bytes.
func (v PoolValue) IsString() bool {
	return v.Kind == PoolStr || v.Kind == PoolSStr
}

// IsInt reports whether the entry is a 32- or 64-bit integer.
func (v PoolValue) IsInt() bool {
	return v.Kind == PoolInt32 || v.Kind == PoolInt64
}

func (v PoolValue) String() string {
	switch v.Kind {
	case PoolStr, PoolSStr:
		return strconv.Quote(v.Str)
	case PoolInt32, PoolInt64:
		return strconv.FormatInt(v.Int, 10)
	case PoolFloat:
		if math.Signbit(v.Float) && v.Float == 0 {
			return "-0.0"
		}
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case PoolBigInt:
		sign := ""
		if v.Neg {
			sign = "-"
		}
		return fmt.Sprintf("%s%s(base %d)", sign, v.Str, v.Base)
	}
	return "?"
}

// Irep is a compiled unit: the instruction stream of one program, class
// body, method, block or lambda, with its literal pool, symbol table and
// nested units. Instructions refer to Pool, Syms and Reps by index.
type Irep struct {
	Code    []byte      `cbor:"1,keyasint"`
	Pool    []PoolValue `cbor:"2,keyasint,omitempty"`
	Syms    []string    `cbor:"3,keyasint,omitempty"`
	Reps    []*Irep     `cbor:"4,keyasint,omitempty"`
	Locals  []string    `cbor:"5,keyasint,omitempty"` // names of registers 1..NLocals-1; "" for unnamed slots
	NLocals uint16      `cbor:"6,keyasint"`           // locals plus the receiver slot
	NRegs   uint16      `cbor:"7,keyasint"`           // register high-water mark
}

// Walk calls fn for ir and every nested unit, depth first, parents before
// children. Returning false from fn skips the unit's children.
func (ir *Irep) Walk(fn func(*Irep) bool) {
	if ir == nil || !fn(ir) {
		return
	}
	for _, r := range ir.Reps {
		r.Walk(fn)
	}
}

// Count returns the number of units in the graph rooted at ir.
func (ir *Irep) Count() int {
	n := 0
	ir.Walk(func(*Irep) bool {
		n++
		return true
	})
	return n
}
