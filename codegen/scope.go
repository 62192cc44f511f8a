package codegen

import (
	"github.com/chazu/irepgen/ast"
	"github.com/chazu/irepgen/irep"
)

// Initial buffer capacities of a new scope.
const (
	initCodeCap = 1024
	initPoolCap = 32
	initSymCap  = 256
	initRepCap  = 8
)

// scope is the build state of one compiled unit: a program, class body,
// method, block or lambda. Register 0 holds the receiver and registers
// 1..len(lv) the declared locals; temporaries are allocated above them with
// push and pop.
type scope struct {
	gen    *generator
	parent *scope

	lv      []string // local names, register i+1 holds lv[i]
	nlocals int
	sp      int // next free register
	nregs   int // register high-water mark

	code      []byte
	starts    []int // offsets of emitted instructions, ascending
	lastpc    int   // start of the most recent instruction
	lastlabel int   // last jump target; the peephole never looks behind it

	pool []irep.PoolValue
	syms []string
	reps []*irep.Irep

	loop   *loopInfo
	rlev   int  // recursion level, continued from the parent scope
	mscope bool // method body
	ainfo  int  // packed argument info of a method or block

	err *Error // first fatal error; emission is a no-op once set
}

func (g *generator) newScope(parent *scope, lv []string) *scope {
	s := &scope{
		gen:    g,
		parent: parent,
		lv:     lv,
		code:   make([]byte, 0, initCodeCap),
		starts: make([]int, 0, initCodeCap/4),
		pool:   make([]irep.PoolValue, 0, initPoolCap),
		syms:   make([]string, 0, initSymCap),
		reps:   make([]*irep.Irep, 0, initRepCap),
	}
	s.nlocals = len(lv) + 1
	s.sp = s.nlocals
	s.nregs = s.sp
	if parent != nil {
		s.rlev = parent.rlev + 1
	}
	return s
}

// depth is the number of open scopes enclosing s.
func (s *scope) depth() int {
	n := 0
	for p := s.parent; p != nil; p = p.parent {
		n++
	}
	return n
}

// release drops the scope's buffers. It runs on every exit path of the
// function that opened the scope.
func (s *scope) release() {
	s.code = nil
	s.starts = nil
	s.pool = nil
	s.syms = nil
	s.reps = nil
	s.loop = nil
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

func (s *scope) fail(msg string) {
	s.failKind(msg, ast.KindUnknown)
}

func (s *scope) failKind(msg string, kind ast.Kind) {
	if s.err == nil {
		s.err = &Error{Msg: msg, Kind: kind, Depth: s.depth()}
	}
}

// propagate records an error raised by a child scope.
func (s *scope) propagate(err error) {
	if e, ok := err.(*Error); ok && s.err == nil {
		s.err = e
	}
}

// ---------------------------------------------------------------------------
// Finalization
// ---------------------------------------------------------------------------

// unit copies the scope's buffers into an exactly sized compiled unit.
func (s *scope) unit() *irep.Irep {
	ir := &irep.Irep{
		Code:    append([]byte(nil), s.code...),
		NLocals: uint16(s.nlocals),
		NRegs:   uint16(s.nregs),
	}
	if len(s.pool) > 0 {
		ir.Pool = append([]irep.PoolValue(nil), s.pool...)
	}
	if len(s.syms) > 0 {
		ir.Syms = append([]string(nil), s.syms...)
	}
	if len(s.reps) > 0 {
		ir.Reps = append([]*irep.Irep(nil), s.reps...)
	}
	if len(s.lv) > 0 {
		ir.Locals = append([]string(nil), s.lv...)
	}
	return ir
}

func (s *scope) checkLocals() {
	if s.nlocals > 0xff {
		s.fail(errTooManyLocals)
	}
}

// finish freezes a child scope, appends the unit to its parent and returns
// the unit's index there. A failed scope is never linked.
func (s *scope) finish() (int, error) {
	s.checkLocals()
	if s.err == nil && len(s.parent.reps) >= 0xffff {
		s.fail(errTooManyReps)
	}
	if s.err != nil {
		return 0, s.err
	}
	p := s.parent
	p.reps = append(p.reps, s.unit())
	idx := len(p.reps) - 1
	s.gen.logUnit(s, idx)
	return idx, nil
}

// ---------------------------------------------------------------------------
// Register stack
// ---------------------------------------------------------------------------

func (s *scope) push(n int) {
	if s.sp+n >= 0xffff {
		s.fail(errTooComplex)
		return
	}
	s.sp += n
	if s.sp > s.nregs {
		s.nregs = s.sp
	}
}

func (s *scope) pop(n int) {
	if s.sp-n < 0 {
		s.fail(errStackUnderflow)
		return
	}
	s.sp -= n
}

// ---------------------------------------------------------------------------
// Variable resolution
// ---------------------------------------------------------------------------

// lvIdx returns the register of a local declared in s, or 0.
func (s *scope) lvIdx(name string) int {
	for i, n := range s.lv {
		if n == name {
			return i + 1
		}
	}
	return 0
}

// searchUpvar finds name in an enclosing scope. It returns the number of
// scopes skipped between s's parent and the owner, and the owner's register.
// Open ancestors are searched first, then the already compiled units of
// Options.Upper; a method scope ends the search.
func (s *scope) searchUpvar(name string) (lv, idx int) {
	for up := s.parent; up != nil; up = up.parent {
		if i := up.lvIdx(name); i > 0 {
			return lv, i
		}
		lv++
	}
	for u := s.gen.opts.Upper; u != nil; u = u.Parent {
		if u.Unit != nil {
			for i, n := range u.Unit.Locals {
				if n == name && n != "" {
					return lv, i + 1
				}
			}
		}
		if u.MethodScope {
			break
		}
		lv++
	}

	switch name {
	case "&":
		s.fail(errNoAnonBlock)
	case "*":
		s.fail(errNoAnonRest)
	case "**":
		s.fail(errNoAnonKeywordRst)
	default:
		s.fail(errNoLocal)
	}
	return 0, 0
}

// resolve returns the scope depth and register of name, depth 0 being s
// itself.
func (s *scope) resolve(name string) (depth, slot int, err error) {
	if i := s.lvIdx(name); i > 0 {
		return 0, i, nil
	}
	lv, idx := s.searchUpvar(name)
	if s.err != nil {
		return 0, 0, s.err
	}
	return lv + 1, idx, nil
}

// ---------------------------------------------------------------------------
// Loops
// ---------------------------------------------------------------------------

type loopKind uint8

const (
	loopNormal loopKind = iota
	loopBlock
	loopFor
	loopBegin
	loopRescue
)

// loopInfo describes an active loop or block body.
type loopInfo struct {
	kind loopKind
	pc0  int   // continue target
	pc1  int   // redo target
	brk  label // pending break sites
	reg  int   // register receiving a break value, -1 when unused
	prev *loopInfo
}

func (s *scope) loopPush(kind loopKind) *loopInfo {
	lp := &loopInfo{
		kind: kind,
		reg:  s.sp,
		prev: s.loop,
	}
	s.loop = lp
	return lp
}

func (s *scope) loopPop(val bool) {
	if val {
		s.genop1(irep.OpLOADNIL, s.sp)
	}
	s.dispatch(&s.loop.brk)
	s.loop = s.loop.prev
	if val {
		s.push(1)
	}
}
