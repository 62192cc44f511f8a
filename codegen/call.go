package codegen

import (
	"math"

	"github.com/chazu/irepgen/ast"
	"github.com/chazu/irepgen/irep"
)

// genCall lowers a method call. Arithmetic and comparison operators with a
// receiver get dedicated instructions unless optimization is off or the
// argument list is not a plain positional one.
func (s *scope) genCall(n *ast.CallNode, val bool) {
	noop := s.gen.opts.NoOptimize
	noself := false
	sp := s.sp
	safe := n.CallOperator.Type == ast.TokenAmpersandDot
	var skip label

	if n.Receiver == nil {
		noself, noop = true, true
		s.push(1)
	} else {
		s.codegen(n.Receiver, true)
		if safe {
			s.genMove(s.sp, s.sp-1, true)
			s.genCondJump(irep.OpJMPNIL, s.sp, &skip, val)
		}
	}

	var args []ast.Node
	if n.Arguments != nil {
		args = n.Arguments.Arguments
	}
	var blk ast.Node
	if len(args) > 0 {
		if ba, ok := args[len(args)-1].(*ast.BlockArgumentNode); ok {
			if n.Block != nil {
				s.failKind(errBlockArgAndBlock, n.Kind())
				return
			}
			blk = ba
			args = args[:len(args)-1]
		}
	}
	if n.Block != nil {
		blk = n.Block
	}
	var kwargs *ast.HashNode
	if len(args) > 0 {
		if h, ok := args[len(args)-1].(*ast.HashNode); ok && !h.Opening.Provided() {
			kwargs = h
			args = args[:len(args)-1]
		}
	}

	argc, kwc := 0, 0
	if len(args) > 0 {
		argc = s.genValues(args, true, callMaxArgs-1)
		if argc < 0 {
			noop = true
			argc = callMaxArgs
			s.push(1)
		}
	}
	if kwargs != nil {
		noop = true
		kwc = s.genHash(kwargs.Elements, true, callMaxArgs-1)
		if kwc < 0 {
			kwc = callMaxArgs
		}
	}
	if blk != nil {
		s.codegen(blk, true)
		s.pop(1)
		noop = true
	}
	s.push(1)
	s.pop(1)
	s.sp = sp
	if s.err != nil {
		return
	}

	switch {
	case !noop && argc == 1 && n.Name == "+":
		s.genAddSub(irep.OpADD, s.sp)
	case !noop && argc == 1 && n.Name == "-":
		s.genAddSub(irep.OpSUB, s.sp)
	case !noop && argc == 1 && n.Name == "*":
		s.genMulDiv(irep.OpMUL, s.sp)
	case !noop && argc == 1 && n.Name == "/":
		s.genMulDiv(irep.OpDIV, s.sp)
	case !noop && argc == 1 && compareOps[n.Name] != 0:
		s.genop1(compareOps[n.Name], s.sp)
	case !noop && argc == 2 && n.Name == "[]=":
		s.genop1(irep.OpSETIDX, s.sp)
	case !noop && argc == 0 && s.genUniop(n.Name, s.sp):
	case !noop && argc == 1 && s.genBinop(n.Name, s.sp):
	default:
		op := irep.OpSEND
		switch {
		case noself && blk != nil:
			op = irep.OpSSENDB
		case noself:
			op = irep.OpSSEND
		case blk != nil:
			op = irep.OpSENDB
		}
		s.genop3(op, s.sp, s.newSym(n.Name), argc|kwc<<4)
	}
	if safe {
		s.dispatch(&skip)
	}
	if val {
		s.push(1)
	}
}

var compareOps = map[string]irep.Opcode{
	"<":  irep.OpLT,
	"<=": irep.OpLE,
	">":  irep.OpGT,
	">=": irep.OpGE,
	"==": irep.OpEQ,
}

// valueLimits returns the inline element limit and the register height at
// which genValues and genHash flush what they have collected.
func (s *scope) valueLimits(limit int) (int, int) {
	if limit == 0 {
		limit = genLitAryMax
	}
	slimit := genValStackMax
	if s.sp >= genValStackMax {
		slimit = math.MaxInt16
	}
	return limit, slimit
}

// genValues pushes the values of nodes. It returns their count, or -1 when
// they were packed into a single array because of a splat, the register
// limit, or more than limit elements.
func (s *scope) genValues(nodes []ast.Node, val bool, limit int) int {
	if !val {
		for _, t := range nodes {
			s.codegen(t, false)
		}
		return len(nodes)
	}

	limit, slimit := s.valueLimits(limit)
	n := 0
	first := true
	for _, t := range nodes {
		splat := isSplat(t)
		if splat || s.sp >= slimit {
			s.pop(n)
			if first {
				if n == 0 {
					s.genop1(irep.OpLOADNIL, s.sp)
				} else {
					s.genop2(irep.OpARRAY, s.sp, n)
				}
				s.push(1)
				first = false
				limit = genLitAryMax
			} else if n > 0 {
				s.pop(1)
				s.genop2(irep.OpARYPUSH, s.sp, n)
				s.push(1)
			}
			n = 0
		}
		s.codegen(t, true)
		if splat {
			s.pop(2)
			s.genop1(irep.OpARYCAT, s.sp)
			s.push(1)
		} else {
			n++
		}
	}
	if !first {
		s.pop(1)
		if n > 0 {
			s.pop(n)
			s.genop2(irep.OpARYPUSH, s.sp, n)
		}
		return -1
	}
	if n > limit {
		s.pop(n)
		s.genop2(irep.OpARRAY, s.sp, n)
		return -1
	}
	return n
}

// genHash pushes the key/value pairs of a hash literal. It returns the pair
// count, or -1 when the pairs were already collected into one hash left on
// the stack.
func (s *scope) genHash(elems []ast.Node, val bool, limit int) int {
	limit, slimit := s.valueLimits(limit)
	n := 0
	update := false
	first := true

	flush := func() {
		s.pop(n * 2)
		if !update {
			s.genop2(irep.OpHASH, s.sp, n)
		} else {
			s.pop(1)
			s.genop2(irep.OpHASHADD, s.sp, n)
		}
		s.push(1)
	}

	for _, e := range elems {
		switch e := e.(type) {
		case *ast.AssocSplatNode:
			if val && first {
				s.genop2(irep.OpHASH, s.sp, 0)
				s.push(1)
				update = true
			} else if val && n > 0 {
				flush()
			}
			s.codegen(e.Value, val)
			if val && (n > 0 || update) {
				s.pop(2)
				s.genop1(irep.OpHASHCAT, s.sp)
				s.push(1)
			}
			update = true
			n = 0
		case *ast.AssocNode:
			s.codegen(e.Key, val)
			s.codegen(e.Value, val)
			n++
		default:
			s.failKind(errUnsupported, e.Kind())
			return 0
		}
		if val && s.sp >= slimit {
			flush()
			update = true
			n = 0
		}
		first = false
	}

	if val && n > limit {
		s.pop(n * 2)
		s.genop2(irep.OpHASH, s.sp, n)
		s.push(1)
		return -1
	}
	if update {
		if val && n > 0 {
			s.pop(n*2 + 1)
			s.genop2(irep.OpHASHADD, s.sp, n)
			s.push(1)
		}
		return -1
	}
	return n
}

func (s *scope) genArray(n *ast.ArrayNode, val bool) {
	k := s.genValues(n.Elements, val, 0)
	if val {
		if k >= 0 {
			s.pop(k)
			s.genop2(irep.OpARRAY, s.sp, k)
		}
		s.push(1)
	}
}

func (s *scope) genHashLiteral(n *ast.HashNode, val bool) {
	k := s.genHash(n.Elements, val, genLitAryMax)
	if val && k >= 0 {
		s.pop(k * 2)
		s.genop2(irep.OpHASH, s.sp, k)
		s.push(1)
	}
}

func (s *scope) genRange(n *ast.RangeNode, val bool) {
	s.codegen(n.Left, val)
	s.codegen(n.Right, val)
	if val {
		op := irep.OpRANGE_EXC
		if n.Operator.Type == ast.TokenDotDot {
			op = irep.OpRANGE_INC
		}
		s.pop(2)
		s.genop1(op, s.sp)
		s.push(1)
	}
}
