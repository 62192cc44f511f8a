package codegen

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/chazu/irepgen/ast"
	"github.com/chazu/irepgen/irep"
)

// readInt parses integer literal digits in base. Underscores are skipped.
// It returns the value, or fits=false and the cleaned digits when the value
// does not fit in an int64.
func readInt(digits string, base int, neg bool) (v int64, clean string, fits bool, err error) {
	switch base {
	case 2, 8, 10, 16:
	default:
		return 0, "", false, errors.New(errMalformedInt)
	}

	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}
	var b strings.Builder
	var result uint64
	fits = true
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c == '_' {
			continue
		}
		d := digitValue(c)
		if d >= base {
			return 0, "", false, errors.New(errMalformedInt)
		}
		b.WriteByte(c)
		if fits && result > (limit-uint64(d))/uint64(base) {
			fits = false
		}
		if fits {
			result = result*uint64(base) + uint64(d)
		}
	}
	if b.Len() == 0 {
		return 0, "", false, errors.New(errMalformedInt)
	}
	if !fits {
		return 0, b.String(), false, nil
	}
	if neg {
		// 1<<63 negates to MinInt64.
		return -int64(result), "", true, nil
	}
	return int64(result), "", true, nil
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return 99
}

func (s *scope) genInteger(n *ast.IntegerNode, val bool) {
	if !val {
		return
	}
	i, digits, fits, err := readInt(n.Digits, n.Base, n.Negative)
	if err != nil {
		s.failKind(errMalformedInt, n.Kind())
		return
	}
	if fits {
		s.genInt(s.sp, i)
	} else {
		s.genop2(irep.OpLOADL, s.sp, s.newLitBigInt(digits, n.Base, n.Negative))
	}
	s.push(1)
}

func (s *scope) genFloat(n *ast.FloatNode, val bool) {
	if !val {
		return
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(n.Text, "_", ""), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		s.failKind(errMalformedFloat, n.Kind())
		return
	}
	s.genop2(irep.OpLOADL, s.sp, s.newLitFloat(f))
	s.push(1)
}

// ---------------------------------------------------------------------------
// Strings
// ---------------------------------------------------------------------------

// genInterpolated concatenates parts into one string. Literal parts are
// skipped when the value is not needed.
func (s *scope) genInterpolated(parts []ast.Node, val bool) {
	if !val {
		for _, p := range parts {
			if _, ok := p.(*ast.StringNode); !ok {
				s.codegen(p, false)
			}
		}
		return
	}
	if len(parts) == 0 {
		s.genop1(irep.OpLOADNIL, s.sp)
		s.push(1)
		return
	}

	rest := parts
	if _, ok := parts[0].(*ast.StringNode); ok {
		s.codegen(parts[0], true)
		rest = parts[1:]
	} else {
		s.genop2(irep.OpSTRING, s.sp, s.newLitCStr(""))
		s.push(1)
	}
	for _, p := range rest {
		s.codegen(p, true)
		s.pop(2)
		s.genop1(irep.OpSTRCAT, s.sp)
		s.push(1)
	}
}

// genXString sends ` to self with the command string.
func (s *scope) genXString(n *ast.XStringNode, val bool) {
	s.genop1(irep.OpLOADSELF, s.sp)
	s.push(1)
	s.genop2(irep.OpSTRING, s.sp, s.newLitStr(n.Content))
	s.push(1)
	s.genTick(val)
}

func (s *scope) genInterpolatedXString(n *ast.InterpolatedXStringNode, val bool) {
	s.genop1(irep.OpLOADSELF, s.sp)
	s.push(1)
	if len(n.Parts) == 0 {
		s.genop2(irep.OpSTRING, s.sp, s.newLitCStr(""))
		s.push(1)
	} else {
		s.genInterpolated(n.Parts, true)
	}
	s.genTick(val)
}

// genTick emits the send of ` with self and the command string on the
// stack.
func (s *scope) genTick(val bool) {
	s.push(1)
	s.pop(3)
	s.genop3(irep.OpSEND, s.sp, s.newSym("`"), 1)
	if val {
		s.push(1)
	}
}
