package codegen

import (
	"github.com/chazu/irepgen/ast"
	"github.com/chazu/irepgen/irep"
)

// trueAlways reports whether n is a literal that is always truthy.
func trueAlways(n ast.Node) bool {
	switch n.(type) {
	case *ast.TrueNode, *ast.IntegerNode, *ast.StringNode, *ast.SymbolNode:
		return true
	}
	return false
}

// falseAlways reports whether n is a literal that is always falsy.
func falseAlways(n ast.Node) bool {
	switch n.(type) {
	case *ast.FalseNode, *ast.NilNode:
		return true
	}
	return false
}

// ifConsequent returns the else part of an if: the statements of an else
// clause, or the elsif node itself.
func ifConsequent(n ast.Node) ast.Node {
	switch c := n.(type) {
	case nil:
		return nil
	case *ast.ElseNode:
		if c == nil {
			return nil
		}
		return orNil(c.Statements)
	case *ast.IfNode:
		if c == nil {
			return nil
		}
		return c
	}
	return n
}

// nilPredicate returns the receiver of a plain x.nil? test, or nil.
func nilPredicate(n ast.Node) ast.Node {
	c, ok := n.(*ast.CallNode)
	if !ok || c.Receiver == nil || c.CallOperator.Type == ast.TokenAmpersandDot {
		return nil
	}
	if c.Name != "nil?" || c.Arguments != nil || c.Block != nil {
		return nil
	}
	return c.Receiver
}

// ---------------------------------------------------------------------------
// Conditionals
// ---------------------------------------------------------------------------

func (s *scope) genIf(pred, then, els ast.Node, val bool) {
	switch {
	case pred == nil:
		s.codegen(els, val)
		return
	case trueAlways(pred):
		s.codegen(then, val)
		return
	case falseAlways(pred):
		s.codegen(els, val)
		return
	}

	nilP := false
	if recv := nilPredicate(pred); recv != nil {
		nilP = true
		pred = recv
	}
	s.codegen(pred, true)
	s.pop(1)

	var pos1, pos2 label
	if val || then != nil {
		if nilP {
			s.genCondJump(irep.OpJMPNIL, s.sp, &pos2, val)
			s.genJump(irep.OpJMP, &pos1)
			s.dispatch(&pos2)
		} else {
			s.genCondJump(irep.OpJMPNOT, s.sp, &pos1, val)
		}
		s.codegen(then, val)
		if val {
			s.pop(1)
		}
		if els != nil || val {
			s.genJump(irep.OpJMP, &pos2)
			s.dispatch(&pos1)
			s.codegen(els, val)
			s.dispatch(&pos2)
		} else {
			s.dispatch(&pos1)
		}
		return
	}

	// Empty then part, value discarded.
	if els != nil {
		op := irep.OpJMPIF
		if nilP {
			op = irep.OpJMPNIL
		}
		s.genCondJump(op, s.sp, &pos1, val)
		s.codegen(els, val)
		s.dispatch(&pos1)
	}
}

func (s *scope) genAndOr(left, right ast.Node, and bool, val bool) {
	switch {
	case and && trueAlways(left), !and && falseAlways(left):
		s.codegen(right, val)
		return
	case and && falseAlways(left), !and && trueAlways(left):
		s.codegen(left, val)
		return
	}

	op := irep.OpJMPIF
	if and {
		op = irep.OpJMPNOT
	}
	var pos label
	s.codegen(left, true)
	s.pop(1)
	s.genCondJump(op, s.sp, &pos, val)
	s.codegen(right, val)
	s.dispatch(&pos)
}

// ---------------------------------------------------------------------------
// Loops
// ---------------------------------------------------------------------------

// genLoop lowers while (while set) and until loops.
func (s *scope) genLoop(pred, body ast.Node, while bool, val bool) {
	if (while && falseAlways(pred)) || (!while && trueAlways(pred)) {
		if val {
			s.genop1(irep.OpLOADNIL, s.sp)
			s.push(1)
		}
		return
	}

	op := irep.OpJMPIF
	if while {
		op = irep.OpJMPNOT
	}
	lp := s.loopPush(loopNormal)
	if !val {
		lp.reg = -1
	}
	var exit label
	lp.pc0 = s.newLabel()
	s.codegen(pred, true)
	s.pop(1)
	s.genCondJump(op, s.sp, &exit, false)
	lp.pc1 = s.newLabel()
	s.codegen(body, false)
	s.genJumpTo(irep.OpJMP, lp.pc0)
	s.dispatch(&exit)
	s.loopPop(val)
}

// genFor compiles the loop body as a block and sends each to the
// collection. The result is left in R[sp] without being pushed.
func (s *scope) genFor(n *ast.ForNode) {
	s.codegen(n.Collection, true)
	if s.err != nil {
		return
	}

	child := s.gen.newScope(s, nil)
	defer child.release()
	child.push(1) // block parameter
	child.genopW(irep.OpENTER, 0x40000)
	if len(n.Targets) == 1 {
		child.genAssignment(n.Targets[0], nil, 1, false)
	} else {
		child.genMassignment(n.Targets, 1, true)
	}
	lp := child.loopPush(loopFor)
	lp.pc1 = child.newLabel()
	child.codegen(orNil(n.Statements), true)
	child.pop(1)
	child.genReturn(irep.OpRETURN, child.sp)
	child.loopPop(false)
	idx, err := child.finish()
	if err != nil {
		s.propagate(err)
		return
	}

	s.genop2(irep.OpBLOCK, s.sp, idx)
	s.push(1)
	s.pop(1)
	s.pop(1)
	s.genop3(irep.OpSENDB, s.sp, s.newSym("each"), 0)
}

// ---------------------------------------------------------------------------
// case / when
// ---------------------------------------------------------------------------

func (s *scope) genCase(n *ast.CaseNode, val bool) {
	head := 0
	if n.Predicate != nil {
		head = s.sp
		s.codegen(n.Predicate, true)
	}

	var done label
	for i := 0; i <= len(n.Conditions); i++ {
		var conds []ast.Node
		var body ast.Node
		if i < len(n.Conditions) {
			w := n.Conditions[i]
			conds = w.Conditions
			body = orNil(w.Statements)
		} else if n.Consequent != nil {
			body = orNil(n.Consequent.Statements)
		}

		var next, match label
		for _, c := range conds {
			s.codegen(c, true)
			if head != 0 {
				s.genMove(s.sp, head, false)
				s.push(1)
				s.push(1)
				s.pop(1)
				s.pop(1)
				s.pop(1)
				name := "==="
				if _, ok := c.(*ast.SplatNode); ok {
					name = "__case_eqq"
				}
				s.genop3(irep.OpSEND, s.sp, s.newSym(name), 1)
			} else {
				s.pop(1)
			}
			s.genCondJump(irep.OpJMPIF, s.sp, &match, head == 0)
		}
		if len(conds) > 0 {
			s.genJump(irep.OpJMP, &next)
			s.dispatch(&match)
		}
		s.codegen(body, val)
		if val {
			s.pop(1)
		}
		s.genJump(irep.OpJMP, &done)
		s.dispatch(&next)
	}

	if val {
		pos := s.sp
		s.genop1(irep.OpLOADNIL, s.sp)
		s.dispatch(&done)
		if head != 0 {
			s.pop(1)
		}
		if s.sp != pos {
			s.genMove(s.sp, pos, false)
		}
		s.push(1)
	} else {
		s.dispatch(&done)
		if head != 0 {
			s.pop(1)
		}
	}
}

// ---------------------------------------------------------------------------
// return
// ---------------------------------------------------------------------------

func (s *scope) genReturnNode(n *ast.ReturnNode, val bool) {
	switch {
	case n.Arguments == nil || len(n.Arguments.Arguments) == 0:
		s.genop1(irep.OpLOADNIL, s.sp)
	case len(n.Arguments.Arguments) == 1 && !isSplat(n.Arguments.Arguments[0]):
		s.codegen(n.Arguments.Arguments[0], true)
		s.pop(1)
	default:
		if k := s.genValues(n.Arguments.Arguments, true, 0); k >= 0 {
			s.pop(k)
			s.genop2(irep.OpARRAY, s.sp, k)
			s.push(1)
		}
		s.pop(1)
	}

	op := irep.OpRETURN
	if s.loop != nil {
		op = irep.OpRETURN_BLK
	}
	s.genReturn(op, s.sp)
	if val {
		s.push(1)
	}
}

func isSplat(n ast.Node) bool {
	_, ok := n.(*ast.SplatNode)
	return ok
}
