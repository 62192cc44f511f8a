package codegen

import (
	"github.com/chazu/irepgen/ast"
	"github.com/chazu/irepgen/irep"
)

// ---------------------------------------------------------------------------
// Method, block and lambda bodies
// ---------------------------------------------------------------------------

// paramLocals orders the locals of a body with parameters so that each
// parameter class lands in the register ENTER fills: requireds, optionals,
// rest, posts, keyword rest, block, keywords, then the names bound inside
// destructured groups and finally the remaining locals. A destructured
// group or a missing block parameter occupies an unnamed slot.
func paramLocals(locals []string, p *ast.ParametersNode) []string {
	if p == nil {
		return locals
	}
	var lv []string
	required := func(nodes []ast.Node) {
		for _, r := range nodes {
			if r, ok := r.(*ast.RequiredParameterNode); ok {
				lv = append(lv, r.Name)
			} else {
				lv = append(lv, "")
			}
		}
	}

	required(p.Requireds)
	for _, o := range p.Optionals {
		lv = append(lv, o.Name)
	}
	if p.Rest != nil {
		lv = append(lv, anonName(p.Rest.Name, "*"))
	}
	required(p.Posts)
	switch {
	case p.KeywordRest != nil:
		lv = append(lv, anonName(p.KeywordRest.Name, "**"))
	case len(p.Keywords) > 0:
		lv = append(lv, "**")
	}
	if p.Block != nil {
		lv = append(lv, anonName(p.Block.Name, "&"))
	} else {
		lv = append(lv, "")
	}
	for _, k := range p.Keywords {
		lv = append(lv, k.Name)
	}
	lv = appendDestructured(lv, p.Requireds)
	lv = appendDestructured(lv, p.Posts)

	placed := make(map[string]bool, len(lv))
	for _, n := range lv {
		placed[n] = true
	}
	for _, n := range locals {
		if !placed[n] {
			lv = append(lv, n)
			placed[n] = true
		}
	}
	return lv
}

func anonName(name, anon string) string {
	if name == "" {
		return anon
	}
	return name
}

// appendDestructured adds the names bound by the destructured groups of
// params, breadth first per group as ENTER leaves them.
func appendDestructured(lv []string, params []ast.Node) []string {
	for _, p := range params {
		g, ok := p.(*ast.RequiredDestructuredParameterNode)
		if !ok {
			continue
		}
		for _, n := range g.Parameters {
			switch n := n.(type) {
			case *ast.RequiredParameterNode:
				lv = append(lv, n.Name)
			case *ast.SplatNode:
				if r, ok := n.Expression.(*ast.RequiredParameterNode); ok {
					lv = append(lv, r.Name)
				}
			case *ast.RequiredDestructuredParameterNode:
				lv = append(lv, "")
			}
		}
		lv = appendDestructured(lv, g.Parameters)
	}
	return lv
}

// aspec packs the parameter counts into the ENTER operand
// (5:5:1:5:5:1:1 bits).
func aspec(ma, oa, ra, pa, ka, kd, ba int) uint32 {
	return uint32((ma&0x1f)<<18 | (oa&0x1f)<<13 | ra<<12 | (pa&0x1f)<<7 |
		(ka&0x1f)<<2 | kd<<1 | ba)
}

// lambdaBody compiles a method body (blk false) or a block or lambda body
// into a new unit of s and returns its index. A failure of the body is
// recorded on s.
func (s *scope) lambdaBody(locals []string, params *ast.ParametersNode, body ast.Node, blk bool) int {
	child := s.gen.newScope(s, paramLocals(locals, params))
	defer child.release()
	child.mscope = !blk
	if blk {
		lp := child.loopPush(loopBlock)
		lp.pc0 = child.newLabel()
	}

	if params == nil {
		child.genopW(irep.OpENTER, 0)
		child.ainfo = 0
	} else {
		child.genParameters(params)
	}

	child.codegen(body, true)
	child.pop(1)
	if child.pc() > 0 {
		child.genReturn(irep.OpRETURN, child.sp)
	}
	if blk {
		child.loopPop(false)
	}
	idx, err := child.finish()
	if err != nil {
		s.propagate(err)
	}
	return idx
}

// genParameters emits ENTER and the code binding optional, keyword and
// destructured parameters.
func (s *scope) genParameters(p *ast.ParametersNode) {
	ma := len(p.Requireds)
	oa := len(p.Optionals)
	pa := len(p.Posts)
	ka := len(p.Keywords)
	ra, kd, ba := 0, 0, 0
	if p.Rest != nil {
		ra = 1
	}
	if p.KeywordRest != nil {
		kd = 1
	}
	if p.Block != nil {
		ba = 1
	}
	if ma > 0x1f || oa > 0x1f || pa > 0x1f || ka > 0x1f {
		s.fail(errTooManyFormals)
		return
	}
	s.genopW(irep.OpENTER, aspec(ma, oa, ra, pa, ka, kd, ba))
	s.ainfo = ((ma+oa)&0x3f)<<7 | (ra&0x1)<<6 | (pa&0x1f)<<1
	if ka|kd != 0 {
		s.ainfo |= 1
	}

	// Jump table indexed by the number of optional arguments given.
	entries := make([]label, oa+1)
	s.newLabel()
	for i := 0; i < oa; i++ {
		s.newLabel()
		s.genJump(irep.OpJMP, &entries[i])
	}
	if oa > 0 {
		s.genJump(irep.OpJMP, &entries[oa])
	}
	for i, o := range p.Optionals {
		s.dispatch(&entries[i])
		s.codegen(o.Value, true)
		s.pop(1)
		s.genBindParam(o.Name)
	}
	if oa > 0 {
		s.dispatch(&entries[oa])
	}

	for _, k := range p.Keywords {
		reg := s.lvIdx(k.Name)
		sym := s.newSym(k.Name)
		var set label
		if k.Value != nil {
			var given label
			s.genop2(irep.OpKEY_P, reg, sym)
			s.genCondJump(irep.OpJMPIF, reg, &given, false)
			s.codegen(k.Value, true)
			s.pop(1)
			s.genBindParam(k.Name)
			s.genJump(irep.OpJMP, &set)
			s.dispatch(&given)
		}
		s.genop2(irep.OpKARG, reg, sym)
		s.dispatch(&set)
	}
	if ka > 0 && kd == 0 {
		s.genop0(irep.OpKEYEND)
	}

	for i, r := range p.Requireds {
		if g, ok := r.(*ast.RequiredDestructuredParameterNode); ok {
			s.genMassignment(g.Parameters, i+1, false)
		}
	}
	for i, r := range p.Posts {
		if g, ok := r.(*ast.RequiredDestructuredParameterNode); ok {
			s.genMassignment(g.Parameters, ma+oa+ra+1+i, false)
		}
	}
}

// genBindParam moves a computed default value into its parameter.
func (s *scope) genBindParam(name string) {
	if idx := s.lvIdx(name); idx > 0 {
		s.genMove(idx, s.sp, false)
	} else {
		s.genGetUpvar(s.sp, name)
	}
}

// scopeBody compiles a class, module or singleton class body into a new
// unit and returns its index.
func (s *scope) scopeBody(locals []string, stmts *ast.StatementsNode) int {
	child := s.gen.newScope(s, locals)
	defer child.release()
	child.codegen(stmts, true)
	child.genReturn(irep.OpRETURN, child.sp-1)
	idx, err := child.finish()
	if err != nil {
		s.propagate(err)
	}
	return idx
}

// ---------------------------------------------------------------------------
// Definitions
// ---------------------------------------------------------------------------

// genNamespace pushes the outer namespace of a class or module definition
// and returns the defined name.
func (s *scope) genNamespace(path ast.Node) (string, bool) {
	switch p := path.(type) {
	case *ast.ConstantReadNode:
		s.genop1(irep.OpLOADNIL, s.sp)
		s.push(1)
		return p.Name, true
	case *ast.ConstantPathNode:
		if p.Child == nil {
			break
		}
		if p.Parent == nil {
			s.genop1(irep.OpOCLASS, s.sp)
			s.push(1)
		} else {
			s.codegen(p.Parent, true)
		}
		return p.Child.Name, true
	}
	kind := ast.KindUnknown
	if path != nil {
		kind = path.Kind()
	}
	s.failKind(errUnknownLHS, kind)
	return "", false
}

// genScopeBody runs the body of a class-like definition on the class in
// R[sp], leaving nil for an empty body.
func (s *scope) genScopeBody(locals []string, body *ast.StatementsNode, val bool) {
	if body == nil {
		s.genop1(irep.OpLOADNIL, s.sp)
	} else {
		idx := s.scopeBody(locals, body)
		if s.err != nil {
			return
		}
		s.genop2(irep.OpEXEC, s.sp, idx)
	}
	if val {
		s.push(1)
	}
}

func (s *scope) genClass(n *ast.ClassNode, val bool) {
	name, ok := s.genNamespace(n.ConstantPath)
	if !ok {
		return
	}
	if n.Superclass != nil {
		s.codegen(n.Superclass, true)
	} else {
		s.genop1(irep.OpLOADNIL, s.sp)
		s.push(1)
	}
	s.pop(2)
	s.genop2(irep.OpCLASS, s.sp, s.newSym(name))
	s.genScopeBody(n.Locals, n.Body, val)
}

func (s *scope) genModule(n *ast.ModuleNode, val bool) {
	name, ok := s.genNamespace(n.ConstantPath)
	if !ok {
		return
	}
	s.pop(1)
	s.genop2(irep.OpMODULE, s.sp, s.newSym(name))
	s.genScopeBody(n.Locals, n.Body, val)
}

func (s *scope) genSingletonClass(n *ast.SingletonClassNode, val bool) {
	s.codegen(n.Expression, true)
	s.pop(1)
	s.genop1(irep.OpSCLASS, s.sp)
	s.genScopeBody(n.Locals, n.Body, val)
}

func (s *scope) genDef(n *ast.DefNode, val bool) {
	sym := s.newSym(n.Name)
	idx := s.lambdaBody(n.Locals, n.Parameters, n.Body, false)
	if s.err != nil {
		return
	}

	if n.Receiver == nil {
		s.genop1(irep.OpTCLASS, s.sp)
	} else {
		s.codegen(n.Receiver, true)
		s.pop(1)
		s.genop1(irep.OpSCLASS, s.sp)
	}
	s.push(1)
	s.genop2(irep.OpMETHOD, s.sp, idx)
	s.push(1)
	s.pop(1)
	s.pop(1)
	s.genop2(irep.OpDEF, s.sp, sym)
	if val {
		s.push(1)
	}
}

func (s *scope) genAlias(n *ast.AliasNode, val bool) {
	newName, ok1 := n.NewName.(*ast.SymbolNode)
	oldName, ok2 := n.OldName.(*ast.SymbolNode)
	if !ok1 || !ok2 {
		s.failKind(errAliasSymbols, n.Kind())
		return
	}
	s.genop2(irep.OpALIAS, s.newSym(newName.Value), s.newSym(oldName.Value))
	s.genLoad(irep.OpLOADNIL, val)
}

func (s *scope) genUndef(n *ast.UndefNode, val bool) {
	for _, name := range n.Names {
		sym, ok := name.(*ast.SymbolNode)
		if !ok {
			s.failKind(errUndefSymbols, n.Kind())
			return
		}
		s.genop1(irep.OpUNDEF, s.newSym(sym.Value))
	}
	s.genLoad(irep.OpLOADNIL, val)
}
