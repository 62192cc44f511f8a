package codegen

import (
	"github.com/chazu/irepgen/ast"
	"github.com/chazu/irepgen/irep"
)

// genAssignment stores into the target node. With a non-nil rhs the value
// is computed first; otherwise it is taken from R[sp].
func (s *scope) genAssignment(node, rhs ast.Node, sp int, val bool) {
	switch t := node.(type) {
	case *ast.GlobalVariableWriteNode, *ast.LocalVariableWriteNode, *ast.RequiredParameterNode,
		*ast.InstanceVariableWriteNode, *ast.ClassVariableWriteNode,
		*ast.RequiredDestructuredParameterNode:
		if rhs != nil {
			s.codegen(rhs, true)
			s.pop(1)
			sp = s.sp
		}
	case *ast.ConstantPathWriteNode:
	case *ast.SplatNode:
		if t.Expression != nil {
			s.genAssignment(t.Expression, nil, sp, false)
		}
		return
	default:
		s.failKind(errUnknownLHS, node.Kind())
		return
	}

	switch t := node.(type) {
	case *ast.GlobalVariableWriteNode:
		s.genSetXV(irep.OpSETGV, sp, t.Name, val)
	case *ast.LocalVariableWriteNode:
		s.genSetLocal(t.Name, sp, val)
	case *ast.RequiredParameterNode:
		s.genSetLocal(t.Name, sp, val)
	case *ast.InstanceVariableWriteNode:
		s.genSetXV(irep.OpSETIV, sp, t.Name, val)
	case *ast.ClassVariableWriteNode:
		s.genSetXV(irep.OpSETCV, sp, t.Name, val)
	case *ast.ConstantPathWriteNode:
		s.genSetConstant(t, rhs, sp, val)
	case *ast.RequiredDestructuredParameterNode:
		s.genMassignment(t.Parameters, sp, val)
	}
	if val {
		s.push(1)
	}
}

func (s *scope) genSetLocal(name string, sp int, val bool) {
	idx := s.lvIdx(name)
	switch {
	case idx == 0:
		s.genSetUpvar(sp, name)
	case idx != sp:
		s.genMove(idx, sp, val)
	}
}

func (s *scope) genSetConstant(t *ast.ConstantPathWriteNode, rhs ast.Node, sp int, val bool) {
	switch target := t.Target.(type) {
	case *ast.ConstantReadNode:
		if rhs != nil {
			s.codegen(rhs, true)
			s.pop(1)
			sp = s.sp
		}
		s.genSetXV(irep.OpSETCONST, sp, target.Name, val)
	case *ast.ConstantPathNode:
		if target.Child == nil {
			s.failKind(errUnknownLHS, t.Kind())
			return
		}
		if sp != 0 {
			s.genMove(s.sp, sp, false)
		}
		sp = s.sp
		s.push(1)
		if target.Parent != nil {
			s.codegen(target.Parent, true)
		} else {
			s.genop1(irep.OpOCLASS, s.sp)
			s.push(1)
		}
		idx := s.newSym(target.Child.Name)
		if rhs != nil {
			s.codegen(rhs, true)
			s.pop(1)
			s.genMove(sp, s.sp, false)
		}
		s.pop(2)
		s.genop2(irep.OpSETMCNST, sp, idx)
	default:
		s.failKind(errUnknownLHS, t.Kind())
	}
}

// splitTargets counts the targets before and after the first splat. splat
// is -1 when there is none.
func splitTargets(targets []ast.Node) (pre, splat, post int) {
	splat = -1
	for i, t := range targets {
		switch {
		case splat < 0 && isSplat(t):
			splat = i
		case splat < 0:
			pre++
		default:
			post++
		}
	}
	return pre, splat, post
}

// genMassignment destructures the array in R[rhs] into targets.
func (s *scope) genMassignment(targets []ast.Node, rhs int, val bool) {
	pre, splat, post := splitTargets(targets)

	for n, t := range targets[:pre] {
		sp := s.sp
		s.genop3(irep.OpAREF, sp, rhs, n)
		s.push(1)
		s.genAssignment(t, nil, sp, false)
		s.pop(1)
	}
	if splat < 0 {
		return
	}

	s.genMove(s.sp, rhs, val)
	s.push(post + 1)
	s.pop(post + 1)
	s.genop3(irep.OpAPOST, s.sp, pre, post)
	sp := s.sp
	s.genAssignment(targets[splat], nil, sp, false)
	for k, t := range targets[splat+1:] {
		s.genAssignment(t, nil, sp+1+k, false)
	}
}

func (s *scope) genMultiWrite(n *ast.MultiWriteNode, val bool) {
	if arr, ok := n.Value.(*ast.ArrayNode); ok && !val && !hasSplat(arr.Elements) {
		s.genMultiWriteArray(n.Targets, arr.Elements)
		return
	}

	rhs := s.sp
	s.codegen(n.Value, true)
	s.genMassignment(n.Targets, rhs, val)
	if !val {
		s.pop(1)
	}
}

// genMultiWriteArray assigns the elements of a literal array directly,
// without building the array.
func (s *scope) genMultiWriteArray(targets, elems []ast.Node) {
	rhs := s.sp
	for _, e := range elems {
		s.codegen(e, true)
	}
	// R[cursp] receives the nil of a short right side.
	s.push(1)
	s.pop(1)

	size := len(elems)
	pre, splat, post := splitTargets(targets)
	n := 0
	for _, t := range targets[:pre] {
		if n < size {
			s.genAssignment(t, nil, rhs+n, false)
			n++
		} else {
			s.genop1(irep.OpLOADNIL, rhs+n)
			s.genAssignment(t, nil, rhs+n, false)
		}
	}
	if splat >= 0 {
		rn := max(size-post-n, 0)
		if s.sp == rhs+n {
			s.genop2(irep.OpARRAY, s.sp, rn)
		} else {
			s.genop3(irep.OpARRAY2, s.sp, rhs+n, rn)
		}
		s.genAssignment(targets[splat], nil, s.sp, false)
		n += rn
		for _, t := range targets[splat+1:] {
			if n < size {
				s.genAssignment(t, nil, rhs+n, false)
			} else {
				s.genop1(irep.OpLOADNIL, s.sp)
				s.genAssignment(t, nil, s.sp, false)
			}
			n++
		}
	}
	s.pop(size)
}

func hasSplat(nodes []ast.Node) bool {
	for _, n := range nodes {
		if isSplat(n) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Operator assignment
// ---------------------------------------------------------------------------

// writeTarget returns the store node matching a variable read.
func writeTarget(n ast.Node) ast.Node {
	switch t := n.(type) {
	case *ast.LocalVariableReadNode:
		return &ast.LocalVariableWriteNode{SpanVal: t.SpanVal, Name: t.Name}
	case *ast.GlobalVariableReadNode:
		return &ast.GlobalVariableWriteNode{SpanVal: t.SpanVal, Name: t.Name}
	case *ast.InstanceVariableReadNode:
		return &ast.InstanceVariableWriteNode{SpanVal: t.SpanVal, Name: t.Name}
	case *ast.ClassVariableReadNode:
		return &ast.ClassVariableWriteNode{SpanVal: t.SpanVal, Name: t.Name}
	case *ast.ConstantReadNode, *ast.ConstantPathNode:
		return &ast.ConstantPathWriteNode{SpanVal: t.Span(), Target: t}
	}
	return nil
}

var opAssignOps = map[string]irep.Opcode{
	"*":  irep.OpMUL,
	"/":  irep.OpDIV,
	"<":  irep.OpLT,
	"<=": irep.OpLE,
	">":  irep.OpGT,
	">=": irep.OpGE,
}

func (s *scope) genOperatorWrite(n *ast.OperatorWriteNode, val bool) {
	lhs := writeTarget(n.Target)
	if lhs == nil {
		kind := ast.KindUnknown
		if n.Target != nil {
			kind = n.Target.Kind()
		}
		s.failKind(errUnknownLHS, kind)
		return
	}
	s.codegen(n.Target, true)

	if n.Operator == "||" || n.Operator == "&&" {
		op := irep.OpJMPIF
		if n.Operator == "&&" {
			op = irep.OpJMPNOT
		}
		var done label
		s.pop(1)
		s.genCondJump(op, s.sp, &done, val)
		s.codegen(n.Value, true)
		s.pop(1)
		s.genAssignment(lhs, nil, s.sp, val)
		s.dispatch(&done)
		return
	}

	s.codegen(n.Value, true)
	s.push(1)
	s.pop(1)
	s.pop(2)
	switch n.Operator {
	case "+":
		s.genAddSub(irep.OpADD, s.sp)
	case "-":
		s.genAddSub(irep.OpSUB, s.sp)
	default:
		if op, ok := opAssignOps[n.Operator]; ok {
			s.genop1(op, s.sp)
		} else {
			s.genop3(irep.OpSEND, s.sp, s.newSym(n.Operator), 1)
		}
	}
	s.genAssignment(lhs, nil, s.sp, val)
}
