package ast

// ---------------------------------------------------------------------------
// Program structure
// ---------------------------------------------------------------------------

// ProgramNode is the root of a parse. Locals lists the top-level local
// variables in declaration order.
type ProgramNode struct {
	SpanVal    Span
	Locals     []string
	Statements *StatementsNode
}

func (n *ProgramNode) Kind() Kind { return KindProgram }
func (n *ProgramNode) Span() Span { return n.SpanVal }
func (n *ProgramNode) node()      {}

// StatementsNode is a sequence of expressions; the last one is the value.
type StatementsNode struct {
	SpanVal Span
	Body    []Node
}

func (n *StatementsNode) Kind() Kind { return KindStatements }
func (n *StatementsNode) Span() Span { return n.SpanVal }
func (n *StatementsNode) node()      {}

// ParenthesesNode wraps a parenthesised expression or statement list.
type ParenthesesNode struct {
	SpanVal Span
	Body    Node
}

func (n *ParenthesesNode) Kind() Kind { return KindParentheses }
func (n *ParenthesesNode) Span() Span { return n.SpanVal }
func (n *ParenthesesNode) node()      {}

// EmbeddedStatementsNode is a #{...} part of an interpolated literal.
type EmbeddedStatementsNode struct {
	SpanVal    Span
	Statements *StatementsNode
}

func (n *EmbeddedStatementsNode) Kind() Kind { return KindEmbeddedStatements }
func (n *EmbeddedStatementsNode) Span() Span { return n.SpanVal }
func (n *EmbeddedStatementsNode) node()      {}

// ---------------------------------------------------------------------------
// Literals
// ---------------------------------------------------------------------------

// NilNode is the nil literal.
type NilNode struct {
	SpanVal Span
}

func (n *NilNode) Kind() Kind { return KindNil }
func (n *NilNode) Span() Span { return n.SpanVal }
func (n *NilNode) node()      {}

// TrueNode is the true literal.
type TrueNode struct {
	SpanVal Span
}

func (n *TrueNode) Kind() Kind { return KindTrue }
func (n *TrueNode) Span() Span { return n.SpanVal }
func (n *TrueNode) node()      {}

// FalseNode is the false literal.
type FalseNode struct {
	SpanVal Span
}

func (n *FalseNode) Kind() Kind { return KindFalse }
func (n *FalseNode) Span() Span { return n.SpanVal }
func (n *FalseNode) node()      {}

// SelfNode is the receiver of the current scope.
type SelfNode struct {
	SpanVal Span
}

func (n *SelfNode) Kind() Kind { return KindSelf }
func (n *SelfNode) Span() Span { return n.SpanVal }
func (n *SelfNode) node()      {}

// IntegerNode is an integer literal. Digits holds the digits without a
// radix prefix or sign; Base is 2, 8, 10 or 16.
type IntegerNode struct {
	SpanVal  Span
	Digits   string
	Base     int
	Negative bool
}

func (n *IntegerNode) Kind() Kind { return KindInteger }
func (n *IntegerNode) Span() Span { return n.SpanVal }
func (n *IntegerNode) node()      {}

// FloatNode is a floating point literal in source form.
type FloatNode struct {
	SpanVal Span
	Text    string
}

func (n *FloatNode) Kind() Kind { return KindFloat }
func (n *FloatNode) Span() Span { return n.SpanVal }
func (n *FloatNode) node()      {}

// StringNode is a string literal with escapes already processed.
type StringNode struct {
	SpanVal Span
	Content string
}

func (n *StringNode) Kind() Kind { return KindString }
func (n *StringNode) Span() Span { return n.SpanVal }
func (n *StringNode) node()      {}

// XStringNode is a backtick command string.
type XStringNode struct {
	SpanVal Span
	Content string
}

func (n *XStringNode) Kind() Kind { return KindXString }
func (n *XStringNode) Span() Span { return n.SpanVal }
func (n *XStringNode) node()      {}

type SymbolNode struct {
	SpanVal Span
	Value   string
}

func (n *SymbolNode) Kind() Kind { return KindSymbol }
func (n *SymbolNode) Span() Span { return n.SpanVal }
func (n *SymbolNode) node()      {}

// InterpolatedStringNode is a string with #{...} parts. Parts are
// StringNode and EmbeddedStatementsNode values.
type InterpolatedStringNode struct {
	SpanVal Span
	Parts   []Node
}

func (n *InterpolatedStringNode) Kind() Kind { return KindInterpolatedString }
func (n *InterpolatedStringNode) Span() Span { return n.SpanVal }
func (n *InterpolatedStringNode) node()      {}

type InterpolatedSymbolNode struct {
	SpanVal Span
	Parts   []Node
}

func (n *InterpolatedSymbolNode) Kind() Kind { return KindInterpolatedSymbol }
func (n *InterpolatedSymbolNode) Span() Span { return n.SpanVal }
func (n *InterpolatedSymbolNode) node()      {}

type InterpolatedXStringNode struct {
	SpanVal Span
	Parts   []Node
}

func (n *InterpolatedXStringNode) Kind() Kind { return KindInterpolatedXString }
func (n *InterpolatedXStringNode) Span() Span { return n.SpanVal }
func (n *InterpolatedXStringNode) node()      {}

// ArrayNode is an array literal; elements may be SplatNode.
type ArrayNode struct {
	SpanVal  Span
	Elements []Node
}

func (n *ArrayNode) Kind() Kind { return KindArray }
func (n *ArrayNode) Span() Span { return n.SpanVal }
func (n *ArrayNode) node()      {}

// HashNode is a hash literal. Opening is not provided for a bare hash in
// an argument list, which the generator passes as keyword arguments.
type HashNode struct {
	SpanVal  Span
	Opening  Token
	Elements []Node
}

func (n *HashNode) Kind() Kind { return KindHash }
func (n *HashNode) Span() Span { return n.SpanVal }
func (n *HashNode) node()      {}

// AssocNode is a key => value pair.
type AssocNode struct {
	SpanVal Span
	Key     Node
	Value   Node
}

func (n *AssocNode) Kind() Kind { return KindAssoc }
func (n *AssocNode) Span() Span { return n.SpanVal }
func (n *AssocNode) node()      {}

// AssocSplatNode is a **expr element of a hash.
type AssocSplatNode struct {
	SpanVal Span
	Value   Node
}

func (n *AssocSplatNode) Kind() Kind { return KindAssocSplat }
func (n *AssocSplatNode) Span() Span { return n.SpanVal }
func (n *AssocSplatNode) node()      {}

// RangeNode is a .. or ... range; Operator tells which.
type RangeNode struct {
	SpanVal  Span
	Left     Node
	Right    Node
	Operator Token
}

func (n *RangeNode) Kind() Kind { return KindRange }
func (n *RangeNode) Span() Span { return n.SpanVal }
func (n *RangeNode) node()      {}

// SplatNode is *expr. Expression is nil for an anonymous splat target.
type SplatNode struct {
	SpanVal    Span
	Expression Node
}

func (n *SplatNode) Kind() Kind { return KindSplat }
func (n *SplatNode) Span() Span { return n.SpanVal }
func (n *SplatNode) node()      {}

// ---------------------------------------------------------------------------
// Variables
// ---------------------------------------------------------------------------

type LocalVariableReadNode struct {
	SpanVal Span
	Name    string
}

func (n *LocalVariableReadNode) Kind() Kind { return KindLocalVariableRead }
func (n *LocalVariableReadNode) Span() Span { return n.SpanVal }
func (n *LocalVariableReadNode) node()      {}

type LocalVariableWriteNode struct {
	SpanVal Span
	Name    string
	Value   Node
}

func (n *LocalVariableWriteNode) Kind() Kind { return KindLocalVariableWrite }
func (n *LocalVariableWriteNode) Span() Span { return n.SpanVal }
func (n *LocalVariableWriteNode) node()      {}

type InstanceVariableReadNode struct {
	SpanVal Span
	Name    string
}

func (n *InstanceVariableReadNode) Kind() Kind { return KindInstanceVariableRead }
func (n *InstanceVariableReadNode) Span() Span { return n.SpanVal }
func (n *InstanceVariableReadNode) node()      {}

type InstanceVariableWriteNode struct {
	SpanVal Span
	Name    string
	Value   Node
}

func (n *InstanceVariableWriteNode) Kind() Kind { return KindInstanceVariableWrite }
func (n *InstanceVariableWriteNode) Span() Span { return n.SpanVal }
func (n *InstanceVariableWriteNode) node()      {}

type GlobalVariableReadNode struct {
	SpanVal Span
	Name    string
}

func (n *GlobalVariableReadNode) Kind() Kind { return KindGlobalVariableRead }
func (n *GlobalVariableReadNode) Span() Span { return n.SpanVal }
func (n *GlobalVariableReadNode) node()      {}

type GlobalVariableWriteNode struct {
	SpanVal Span
	Name    string
	Value   Node
}

func (n *GlobalVariableWriteNode) Kind() Kind { return KindGlobalVariableWrite }
func (n *GlobalVariableWriteNode) Span() Span { return n.SpanVal }
func (n *GlobalVariableWriteNode) node()      {}

type ClassVariableReadNode struct {
	SpanVal Span
	Name    string
}

func (n *ClassVariableReadNode) Kind() Kind { return KindClassVariableRead }
func (n *ClassVariableReadNode) Span() Span { return n.SpanVal }
func (n *ClassVariableReadNode) node()      {}

type ClassVariableWriteNode struct {
	SpanVal Span
	Name    string
	Value   Node
}

func (n *ClassVariableWriteNode) Kind() Kind { return KindClassVariableWrite }
func (n *ClassVariableWriteNode) Span() Span { return n.SpanVal }
func (n *ClassVariableWriteNode) node()      {}

type ConstantReadNode struct {
	SpanVal Span
	Name    string
}

func (n *ConstantReadNode) Kind() Kind { return KindConstantRead }
func (n *ConstantReadNode) Span() Span { return n.SpanVal }
func (n *ConstantReadNode) node()      {}

// ConstantPathNode is Parent::Child. A nil Parent means ::Child.
type ConstantPathNode struct {
	SpanVal Span
	Parent  Node
	Child   *ConstantReadNode
}

func (n *ConstantPathNode) Kind() Kind { return KindConstantPath }
func (n *ConstantPathNode) Span() Span { return n.SpanVal }
func (n *ConstantPathNode) node()      {}

// ConstantPathWriteNode assigns to a constant. Target is a
// *ConstantReadNode or a *ConstantPathNode.
type ConstantPathWriteNode struct {
	SpanVal Span
	Target  Node
	Value   Node
}

func (n *ConstantPathWriteNode) Kind() Kind { return KindConstantPathWrite }
func (n *ConstantPathWriteNode) Span() Span { return n.SpanVal }
func (n *ConstantPathWriteNode) node()      {}

// MultiWriteNode is a, *b, c = value. Targets are write nodes with a nil
// Value, at most one SplatNode, or RequiredDestructuredParameterNode groups.
type MultiWriteNode struct {
	SpanVal Span
	Targets []Node
	Value   Node
}

func (n *MultiWriteNode) Kind() Kind { return KindMultiWrite }
func (n *MultiWriteNode) Span() Span { return n.SpanVal }
func (n *MultiWriteNode) node()      {}

// OperatorWriteNode is target op= value. Target is a variable read node;
// Operator is the binary operator name, or "||" / "&&".
type OperatorWriteNode struct {
	SpanVal  Span
	Target   Node
	Operator string
	Value    Node
}

func (n *OperatorWriteNode) Kind() Kind { return KindOperatorWrite }
func (n *OperatorWriteNode) Span() Span { return n.SpanVal }
func (n *OperatorWriteNode) node()      {}

// ---------------------------------------------------------------------------
// Control flow
// ---------------------------------------------------------------------------

type AndNode struct {
	SpanVal Span
	Left    Node
	Right   Node
}

func (n *AndNode) Kind() Kind { return KindAnd }
func (n *AndNode) Span() Span { return n.SpanVal }
func (n *AndNode) node()      {}

type OrNode struct {
	SpanVal Span
	Left    Node
	Right   Node
}

func (n *OrNode) Kind() Kind { return KindOr }
func (n *OrNode) Span() Span { return n.SpanVal }
func (n *OrNode) node()      {}

// IfNode is if/elsif/else or the modifier form. Consequent is an
// *ElseNode, an *IfNode for elsif, or nil.
type IfNode struct {
	SpanVal    Span
	Predicate  Node
	Statements *StatementsNode
	Consequent Node
}

func (n *IfNode) Kind() Kind { return KindIf }
func (n *IfNode) Span() Span { return n.SpanVal }
func (n *IfNode) node()      {}

type UnlessNode struct {
	SpanVal    Span
	Predicate  Node
	Statements *StatementsNode
	Consequent *ElseNode
}

func (n *UnlessNode) Kind() Kind { return KindUnless }
func (n *UnlessNode) Span() Span { return n.SpanVal }
func (n *UnlessNode) node()      {}

type ElseNode struct {
	SpanVal    Span
	Statements *StatementsNode
}

func (n *ElseNode) Kind() Kind { return KindElse }
func (n *ElseNode) Span() Span { return n.SpanVal }
func (n *ElseNode) node()      {}

type WhileNode struct {
	SpanVal    Span
	Predicate  Node
	Statements *StatementsNode
}

func (n *WhileNode) Kind() Kind { return KindWhile }
func (n *WhileNode) Span() Span { return n.SpanVal }
func (n *WhileNode) node()      {}

type UntilNode struct {
	SpanVal    Span
	Predicate  Node
	Statements *StatementsNode
}

func (n *UntilNode) Kind() Kind { return KindUntil }
func (n *UntilNode) Span() Span { return n.SpanVal }
func (n *UntilNode) node()      {}

// ForNode is for targets in collection. Targets holds a single write node
// or several for a destructured loop variable.
type ForNode struct {
	SpanVal    Span
	Targets    []Node
	Collection Node
	Statements *StatementsNode
}

func (n *ForNode) Kind() Kind { return KindFor }
func (n *ForNode) Span() Span { return n.SpanVal }
func (n *ForNode) node()      {}

// CaseNode is case/when. Predicate is nil for a subject-less case.
type CaseNode struct {
	SpanVal    Span
	Predicate  Node
	Conditions []*WhenNode
	Consequent *ElseNode
}

func (n *CaseNode) Kind() Kind { return KindCase }
func (n *CaseNode) Span() Span { return n.SpanVal }
func (n *CaseNode) node()      {}

type WhenNode struct {
	SpanVal    Span
	Conditions []Node
	Statements *StatementsNode
}

func (n *WhenNode) Kind() Kind { return KindWhen }
func (n *WhenNode) Span() Span { return n.SpanVal }
func (n *WhenNode) node()      {}

type ReturnNode struct {
	SpanVal   Span
	Arguments *ArgumentsNode
}

func (n *ReturnNode) Kind() Kind { return KindReturn }
func (n *ReturnNode) Span() Span { return n.SpanVal }
func (n *ReturnNode) node()      {}

// ---------------------------------------------------------------------------
// Calls
// ---------------------------------------------------------------------------

// CallNode is a method call. Receiver is nil for a receiverless call;
// CallOperator is TokenAmpersandDot for safe navigation. Block is a
// *BlockNode when a literal block is attached.
type CallNode struct {
	SpanVal      Span
	Receiver     Node
	CallOperator Token
	Name         string
	Arguments    *ArgumentsNode
	Block        Node
}

func (n *CallNode) Kind() Kind { return KindCall }
func (n *CallNode) Span() Span { return n.SpanVal }
func (n *CallNode) node()      {}

// ArgumentsNode is a non-empty argument list. A trailing
// BlockArgumentNode passes &blk; a trailing HashNode without braces
// carries keyword arguments.
type ArgumentsNode struct {
	SpanVal   Span
	Arguments []Node
}

func (n *ArgumentsNode) Kind() Kind { return KindArguments }
func (n *ArgumentsNode) Span() Span { return n.SpanVal }
func (n *ArgumentsNode) node()      {}

// BlockArgumentNode is &expr. Expression is nil for anonymous & forwarding.
type BlockArgumentNode struct {
	SpanVal    Span
	Expression Node
}

func (n *BlockArgumentNode) Kind() Kind { return KindBlockArgument }
func (n *BlockArgumentNode) Span() Span { return n.SpanVal }
func (n *BlockArgumentNode) node()      {}

// BlockNode is a do/end or brace block. Locals lists every local of the
// block scope, parameters included.
type BlockNode struct {
	SpanVal    Span
	Locals     []string
	Parameters *ParametersNode
	Body       Node
}

func (n *BlockNode) Kind() Kind { return KindBlock }
func (n *BlockNode) Span() Span { return n.SpanVal }
func (n *BlockNode) node()      {}

type LambdaNode struct {
	SpanVal    Span
	Locals     []string
	Parameters *ParametersNode
	Body       Node
}

func (n *LambdaNode) Kind() Kind { return KindLambda }
func (n *LambdaNode) Span() Span { return n.SpanVal }
func (n *LambdaNode) node()      {}

// ---------------------------------------------------------------------------
// Parameters
// ---------------------------------------------------------------------------

// ParametersNode is a formal parameter list, grouped by class. Requireds
// and Posts hold RequiredParameterNode or RequiredDestructuredParameterNode.
type ParametersNode struct {
	SpanVal     Span
	Requireds   []Node
	Optionals   []*OptionalParameterNode
	Rest        *RestParameterNode
	Posts       []Node
	Keywords    []*KeywordParameterNode
	KeywordRest *KeywordRestParameterNode
	Block       *BlockParameterNode
}

func (n *ParametersNode) Kind() Kind { return KindParameters }
func (n *ParametersNode) Span() Span { return n.SpanVal }
func (n *ParametersNode) node()      {}

type RequiredParameterNode struct {
	SpanVal Span
	Name    string
}

func (n *RequiredParameterNode) Kind() Kind { return KindRequiredParameter }
func (n *RequiredParameterNode) Span() Span { return n.SpanVal }
func (n *RequiredParameterNode) node()      {}

type OptionalParameterNode struct {
	SpanVal Span
	Name    string
	Value   Node
}

func (n *OptionalParameterNode) Kind() Kind { return KindOptionalParameter }
func (n *OptionalParameterNode) Span() Span { return n.SpanVal }
func (n *OptionalParameterNode) node()      {}

// RestParameterNode is *name; Name is empty for an anonymous rest.
type RestParameterNode struct {
	SpanVal Span
	Name    string
}

func (n *RestParameterNode) Kind() Kind { return KindRestParameter }
func (n *RestParameterNode) Span() Span { return n.SpanVal }
func (n *RestParameterNode) node()      {}

// KeywordParameterNode is name: or name: default. A nil Value makes the
// keyword required.
type KeywordParameterNode struct {
	SpanVal Span
	Name    string
	Value   Node
}

func (n *KeywordParameterNode) Kind() Kind { return KindKeywordParameter }
func (n *KeywordParameterNode) Span() Span { return n.SpanVal }
func (n *KeywordParameterNode) node()      {}

type KeywordRestParameterNode struct {
	SpanVal Span
	Name    string
}

func (n *KeywordRestParameterNode) Kind() Kind { return KindKeywordRestParameter }
func (n *KeywordRestParameterNode) Span() Span { return n.SpanVal }
func (n *KeywordRestParameterNode) node()      {}

type BlockParameterNode struct {
	SpanVal Span
	Name    string
}

func (n *BlockParameterNode) Kind() Kind { return KindBlockParameter }
func (n *BlockParameterNode) Span() Span { return n.SpanVal }
func (n *BlockParameterNode) node()      {}

// RequiredDestructuredParameterNode is a parenthesised (a, *b, (c, d))
// parameter group.
type RequiredDestructuredParameterNode struct {
	SpanVal    Span
	Parameters []Node
}

func (n *RequiredDestructuredParameterNode) Kind() Kind { return KindRequiredDestructuredParameter }
func (n *RequiredDestructuredParameterNode) Span() Span { return n.SpanVal }
func (n *RequiredDestructuredParameterNode) node()      {}

// ---------------------------------------------------------------------------
// Definitions
// ---------------------------------------------------------------------------

// DefNode defines a method. A non-nil Receiver defines a singleton method.
type DefNode struct {
	SpanVal    Span
	Receiver   Node
	Name       string
	Locals     []string
	Parameters *ParametersNode
	Body       Node
}

func (n *DefNode) Kind() Kind { return KindDef }
func (n *DefNode) Span() Span { return n.SpanVal }
func (n *DefNode) node()      {}

// ClassNode is class Path < Superclass. ConstantPath is a
// *ConstantReadNode or *ConstantPathNode.
type ClassNode struct {
	SpanVal      Span
	ConstantPath Node
	Superclass   Node
	Locals       []string
	Body         *StatementsNode
}

func (n *ClassNode) Kind() Kind { return KindClass }
func (n *ClassNode) Span() Span { return n.SpanVal }
func (n *ClassNode) node()      {}

type ModuleNode struct {
	SpanVal      Span
	ConstantPath Node
	Locals       []string
	Body         *StatementsNode
}

func (n *ModuleNode) Kind() Kind { return KindModule }
func (n *ModuleNode) Span() Span { return n.SpanVal }
func (n *ModuleNode) node()      {}

// SingletonClassNode is class << Expression.
type SingletonClassNode struct {
	SpanVal    Span
	Expression Node
	Locals     []string
	Body       *StatementsNode
}

func (n *SingletonClassNode) Kind() Kind { return KindSingletonClass }
func (n *SingletonClassNode) Span() Span { return n.SpanVal }
func (n *SingletonClassNode) node()      {}

type AliasNode struct {
	SpanVal Span
	NewName Node
	OldName Node
}

func (n *AliasNode) Kind() Kind { return KindAlias }
func (n *AliasNode) Span() Span { return n.SpanVal }
func (n *AliasNode) node()      {}

type UndefNode struct {
	SpanVal Span
	Names   []Node
}

func (n *UndefNode) Kind() Kind { return KindUndef }
func (n *UndefNode) Span() Span { return n.SpanVal }
func (n *UndefNode) node()      {}

// ---------------------------------------------------------------------------
// Unsupported forms
// ---------------------------------------------------------------------------

// BeginNode is begin/rescue/else/ensure. The generator rejects it.
type BeginNode struct {
	SpanVal    Span
	Statements *StatementsNode
}

func (n *BeginNode) Kind() Kind { return KindBegin }
func (n *BeginNode) Span() Span { return n.SpanVal }
func (n *BeginNode) node()      {}

type BreakNode struct {
	SpanVal   Span
	Arguments *ArgumentsNode
}

func (n *BreakNode) Kind() Kind { return KindBreak }
func (n *BreakNode) Span() Span { return n.SpanVal }
func (n *BreakNode) node()      {}

type NextNode struct {
	SpanVal   Span
	Arguments *ArgumentsNode
}

func (n *NextNode) Kind() Kind { return KindNext }
func (n *NextNode) Span() Span { return n.SpanVal }
func (n *NextNode) node()      {}

type RedoNode struct {
	SpanVal Span
}

func (n *RedoNode) Kind() Kind { return KindRedo }
func (n *RedoNode) Span() Span { return n.SpanVal }
func (n *RedoNode) node()      {}

type RetryNode struct {
	SpanVal Span
}

func (n *RetryNode) Kind() Kind { return KindRetry }
func (n *RetryNode) Span() Span { return n.SpanVal }
func (n *RetryNode) node()      {}

type SuperNode struct {
	SpanVal   Span
	Arguments *ArgumentsNode
	Block     Node
}

func (n *SuperNode) Kind() Kind { return KindSuper }
func (n *SuperNode) Span() Span { return n.SpanVal }
func (n *SuperNode) node()      {}

type YieldNode struct {
	SpanVal   Span
	Arguments *ArgumentsNode
}

func (n *YieldNode) Kind() Kind { return KindYield }
func (n *YieldNode) Span() Span { return n.SpanVal }
func (n *YieldNode) node()      {}

type RegularExpressionNode struct {
	SpanVal Span
	Content string
	Flags   string
}

func (n *RegularExpressionNode) Kind() Kind { return KindRegularExpression }
func (n *RegularExpressionNode) Span() Span { return n.SpanVal }
func (n *RegularExpressionNode) node()      {}
