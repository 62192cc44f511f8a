package codegen

import (
	"math"

	"github.com/chazu/irepgen/irep"
)

// maxPoolLen bounds both the literal pool and the symbol table of a unit.
const maxPoolLen = 0xffff

// ---------------------------------------------------------------------------
// Literal pool
// ---------------------------------------------------------------------------

func (s *scope) addLit(v irep.PoolValue) int {
	if len(s.pool) >= maxPoolLen {
		s.fail(errTooManyLiterals)
		return 0
	}
	s.pool = append(s.pool, v)
	return len(s.pool) - 1
}

func (s *scope) findStr(str string) int {
	for i, v := range s.pool {
		if v.IsString() && v.Str == str {
			return i
		}
	}
	return -1
}

// newLitStr interns a string taken from the source.
func (s *scope) newLitStr(str string) int {
	if i := s.findStr(str); i >= 0 {
		return i
	}
	return s.addLit(irep.PoolValue{Kind: irep.PoolStr, Str: str})
}

// newLitCStr interns a string constant of the generator itself.
func (s *scope) newLitCStr(str string) int {
	if i := s.findStr(str); i >= 0 {
		return i
	}
	return s.addLit(irep.PoolValue{Kind: irep.PoolSStr, Str: str})
}

// newLitInt interns an integer, as a 32-bit entry when it fits.
func (s *scope) newLitInt(n int64) int {
	for i, v := range s.pool {
		if v.IsInt() && v.Int == n {
			return i
		}
	}
	kind := irep.PoolInt64
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		kind = irep.PoolInt32
	}
	return s.addLit(irep.PoolValue{Kind: kind, Int: n})
}

// newLitFloat interns a float; 0.0 and -0.0 are distinct entries.
func (s *scope) newLitFloat(f float64) int {
	for i, v := range s.pool {
		if v.Kind == irep.PoolFloat && v.Float == f && math.Signbit(v.Float) == math.Signbit(f) {
			return i
		}
	}
	return s.addLit(irep.PoolValue{Kind: irep.PoolFloat, Float: f})
}

// newLitBigInt interns an integer literal too large for int64, keyed by its
// digit text, base and sign.
func (s *scope) newLitBigInt(digits string, base int, neg bool) int {
	if len(digits) > 255 {
		s.fail(errIntegerTooBig)
		return 0
	}
	for i, v := range s.pool {
		if v.Kind == irep.PoolBigInt && v.Str == digits && v.Base == base && v.Neg == neg {
			return i
		}
	}
	return s.addLit(irep.PoolValue{Kind: irep.PoolBigInt, Str: digits, Base: base, Neg: neg})
}

// ---------------------------------------------------------------------------
// Symbols
// ---------------------------------------------------------------------------

func (s *scope) newSym(name string) int {
	for i, n := range s.syms {
		if n == name {
			return i
		}
	}
	if len(s.syms) >= maxPoolLen {
		s.fail(errTooManySymbols)
		return 0
	}
	s.syms = append(s.syms, name)
	return len(s.syms) - 1
}
