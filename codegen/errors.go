package codegen

import (
	"fmt"

	"github.com/chazu/irepgen/ast"
)

// Error is the single fatal error kind of the generator. Any Error aborts
// the whole compilation; nothing is emitted for the tree.
type Error struct {
	Msg   string
	Kind  ast.Kind // offending node kind, KindUnknown when not node specific
	Depth int      // scope nesting depth at which the error was raised
}

func (e *Error) Error() string {
	if e.Kind != ast.KindUnknown {
		return fmt.Sprintf("codegen error: %s: %s", e.Msg, e.Kind)
	}
	return "codegen error: " + e.Msg
}

// Messages of the errors the generator raises.
const (
	errTooComplex       = "too complex expression"
	errStackUnderflow   = "stack pointer underflow"
	errTooBigCode       = "too big code block"
	errTooBigJmp        = "too big jmp offset"
	errTooBigJump       = "too big jump offset"
	errTooBigOperand    = "too big operand"
	errNoExtOps         = "need OP_EXTs instruction (currently OP_EXTs are prohibited)"
	errTooManySymbols   = "too many symbols"
	errTooManyLiterals  = "too many pool entries"
	errIntegerTooBig    = "integer too big"
	errTooManyLocals    = "too many local variables"
	errTooManyReps      = "too many nested blocks/methods"
	errTooManyFormals   = "too many formal arguments"
	errNoAnonBlock      = "no anonymous block parameter"
	errNoAnonRest       = "no anonymous rest parameter"
	errNoAnonKeywordRst = "no anonymous keyword rest parameter"
	errNoLocal          = "can't find local variables"
	errUnsupported      = "unsupported node kind"
	errBlockArgAndBlock = "both block arg and actual block given"
	errUnknownLHS       = "unknown lhs"
	errMalformedInt     = "malformed readint input"
	errMalformedFloat   = "malformed float literal"
	errAliasSymbols     = "alias only supports simple symbols"
	errUndefSymbols     = "undef only supports simple symbols"
	errTruncateLabel    = "code truncated past a jump label"
)
