// Package codegen lowers a syntax tree into register machine code.
//
// Compile walks the tree once. Every method, block, lambda, class, module
// and for-loop body becomes a nested unit of the result. Register 0 of a
// unit holds the receiver, the declared locals follow, and temporaries are
// allocated above them in stack order. A small look-back optimizer rewrites
// the last one or two instructions as new ones are emitted.
//
// Any error aborts the whole compilation; no partial unit is returned.
package codegen

import (
	"github.com/chazu/irepgen/ast"
	"github.com/chazu/irepgen/irep"
)

// Limits of the walker.
const (
	callMaxArgs    = 15 // argument count flag meaning "packed in an array"
	genLitAryMax   = 64 // inline elements before switching to ARYPUSH/HASHADD
	genValStackMax = 99 // register height at which values are flushed
)

// Compile generates the unit graph for a program.
func Compile(prog *ast.ProgramNode, opts Options) (*irep.Irep, error) {
	g := newGenerator(opts)
	log.Debug("compile", "session", g.session, "locals", len(prog.Locals))

	s := g.newScope(nil, prog.Locals)
	defer s.release()

	s.codegen(orNil(prog.Statements), true)
	s.genReturn(irep.OpRETURN, s.sp-1)
	s.genop0(irep.OpSTOP)
	s.checkLocals()
	if s.err != nil {
		g.logFailure(s.err)
		return nil, s.err
	}
	ir := s.unit()
	g.logUnit(s, 0)
	return ir, nil
}

// orNil turns a nil statement list into a nil Node.
func orNil(st *ast.StatementsNode) ast.Node {
	if st == nil {
		return nil
	}
	return st
}

// codegen lowers node. With val set the value is left in a new register on
// top of the stack; otherwise sp is unchanged on return. Failures are left
// in s.err and turn every later call into a no-op.
func (s *scope) codegen(node ast.Node, val bool) {
	if s.err != nil {
		return
	}
	if node == nil {
		if val {
			s.genop1(irep.OpLOADNIL, s.sp)
			s.push(1)
		}
		return
	}

	rlev := s.rlev
	defer func() { s.rlev = rlev }()
	s.rlev++
	if s.rlev > s.gen.opts.maxDepth() {
		s.fail(errTooComplex)
		return
	}

	switch n := node.(type) {
	// Program structure
	case *ast.StatementsNode:
		if n == nil || len(n.Body) == 0 {
			if val {
				s.genop1(irep.OpLOADNIL, s.sp)
				s.push(1)
			}
			break
		}
		last := len(n.Body) - 1
		for _, st := range n.Body[:last] {
			s.codegen(st, false)
		}
		s.codegen(n.Body[last], val)
	case *ast.ParenthesesNode:
		s.codegen(n.Body, val)
	case *ast.EmbeddedStatementsNode:
		s.codegen(orNil(n.Statements), val)

	// Literals
	case *ast.NilNode:
		s.genLoad(irep.OpLOADNIL, val)
	case *ast.TrueNode:
		s.genLoad(irep.OpLOADT, val)
	case *ast.FalseNode:
		s.genLoad(irep.OpLOADF, val)
	case *ast.SelfNode:
		s.genLoad(irep.OpLOADSELF, val)
	case *ast.IntegerNode:
		s.genInteger(n, val)
	case *ast.FloatNode:
		s.genFloat(n, val)
	case *ast.StringNode:
		if val {
			s.genop2(irep.OpSTRING, s.sp, s.newLitStr(n.Content))
			s.push(1)
		}
	case *ast.XStringNode:
		s.genXString(n, val)
	case *ast.InterpolatedStringNode:
		s.genInterpolated(n.Parts, val)
	case *ast.InterpolatedSymbolNode:
		s.genInterpolated(n.Parts, val)
		if val {
			s.genIntern()
		}
	case *ast.InterpolatedXStringNode:
		s.genInterpolatedXString(n, val)
	case *ast.SymbolNode:
		if val {
			s.genop2(irep.OpLOADSYM, s.sp, s.newSym(n.Value))
			s.push(1)
		}
	case *ast.ArrayNode:
		s.genArray(n, val)
	case *ast.HashNode:
		s.genHashLiteral(n, val)
	case *ast.RangeNode:
		s.genRange(n, val)
	case *ast.SplatNode:
		s.codegen(n.Expression, val)

	// Variables
	case *ast.LocalVariableReadNode:
		if val {
			if idx := s.lvIdx(n.Name); idx > 0 {
				s.genMove(s.sp, idx, true)
			} else {
				s.genGetUpvar(s.sp, n.Name)
			}
			s.push(1)
		}
	case *ast.GlobalVariableReadNode:
		s.genGetXV(irep.OpGETGV, n.Name, val)
	case *ast.InstanceVariableReadNode:
		s.genGetXV(irep.OpGETIV, n.Name, val)
	case *ast.ClassVariableReadNode:
		s.genGetXV(irep.OpGETCV, n.Name, val)
	case *ast.ConstantReadNode:
		s.genGetXV(irep.OpGETCONST, n.Name, val)
	case *ast.ConstantPathNode:
		s.genConstantPath(n, val)
	case *ast.LocalVariableWriteNode:
		s.genAssignment(n, n.Value, 0, val)
	case *ast.GlobalVariableWriteNode:
		s.genAssignment(n, n.Value, 0, val)
	case *ast.InstanceVariableWriteNode:
		s.genAssignment(n, n.Value, 0, val)
	case *ast.ClassVariableWriteNode:
		s.genAssignment(n, n.Value, 0, val)
	case *ast.ConstantPathWriteNode:
		s.genAssignment(n, n.Value, 0, val)
	case *ast.MultiWriteNode:
		s.genMultiWrite(n, val)
	case *ast.OperatorWriteNode:
		s.genOperatorWrite(n, val)

	// Control flow
	case *ast.IfNode:
		s.genIf(n.Predicate, orNil(n.Statements), ifConsequent(n.Consequent), val)
	case *ast.UnlessNode:
		var then ast.Node
		if n.Consequent != nil {
			then = orNil(n.Consequent.Statements)
		}
		s.genIf(n.Predicate, then, orNil(n.Statements), val)
	case *ast.AndNode:
		s.genAndOr(n.Left, n.Right, true, val)
	case *ast.OrNode:
		s.genAndOr(n.Left, n.Right, false, val)
	case *ast.WhileNode:
		s.genLoop(n.Predicate, orNil(n.Statements), true, val)
	case *ast.UntilNode:
		s.genLoop(n.Predicate, orNil(n.Statements), false, val)
	case *ast.ForNode:
		s.genFor(n)
		if val {
			s.push(1)
		}
	case *ast.CaseNode:
		s.genCase(n, val)
	case *ast.ReturnNode:
		s.genReturnNode(n, val)

	// Calls and closures
	case *ast.CallNode:
		s.genCall(n, val)
	case *ast.BlockArgumentNode:
		s.genBlockArgument(n, val)
	case *ast.BlockNode:
		if val {
			idx := s.lambdaBody(n.Locals, n.Parameters, n.Body, true)
			s.genop2(irep.OpBLOCK, s.sp, idx)
			s.push(1)
		}
	case *ast.LambdaNode:
		if val {
			idx := s.lambdaBody(n.Locals, n.Parameters, n.Body, true)
			s.genop2(irep.OpLAMBDA, s.sp, idx)
			s.push(1)
		}

	// Definitions
	case *ast.DefNode:
		s.genDef(n, val)
	case *ast.ClassNode:
		s.genClass(n, val)
	case *ast.ModuleNode:
		s.genModule(n, val)
	case *ast.SingletonClassNode:
		s.genSingletonClass(n, val)
	case *ast.AliasNode:
		s.genAlias(n, val)
	case *ast.UndefNode:
		s.genUndef(n, val)

	default:
		s.failKind(errUnsupported, node.Kind())
	}
}

// genLoad emits a zero operand constant load.
func (s *scope) genLoad(op irep.Opcode, val bool) {
	if val {
		s.genop1(op, s.sp)
		s.push(1)
	}
}

// genGetXV emits a load by name. The load is emitted even when the value
// is discarded.
func (s *scope) genGetXV(op irep.Opcode, name string, val bool) {
	s.genop2(op, s.sp, s.newSym(name))
	if val {
		s.push(1)
	}
}

func (s *scope) genConstantPath(n *ast.ConstantPathNode, val bool) {
	if n.Child == nil {
		s.failKind(errUnknownLHS, n.Kind())
		return
	}
	sym := s.newSym(n.Child.Name)
	if n.Parent != nil {
		s.codegen(n.Parent, true)
		s.pop(1)
	} else {
		s.genop1(irep.OpOCLASS, s.sp)
	}
	s.genop2(irep.OpGETMCNST, s.sp, sym)
	if val {
		s.push(1)
	}
}

func (s *scope) genBlockArgument(n *ast.BlockArgumentNode, val bool) {
	if n.Expression != nil {
		s.codegen(n.Expression, val)
	}
	if idx := s.lvIdx("&"); idx > 0 {
		s.genMove(s.sp, idx, val)
	} else {
		s.genGetUpvar(s.sp, "&")
	}
	if val {
		s.push(1)
	}
}
