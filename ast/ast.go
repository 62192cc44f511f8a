// Package ast defines the syntax tree consumed by the code generator.
//
// Nodes are produced by an external parser and are treated as read-only by
// the generator. Every node kind is a distinct struct implementing Node; the
// set is closed by the unexported marker method, so a type switch over Node
// is the dispatch mechanism.
package ast

import "fmt"

// Span is a byte range in the source buffer.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// TokenType identifies an operator or delimiter token kept by a node.
type TokenType uint8

const (
	TokenNotProvided  TokenType = iota
	TokenDot                    // .
	TokenAmpersandDot           // &.
	TokenColonColon             // ::
	TokenDotDot                 // ..
	TokenDotDotDot              // ...
	TokenBraceLeft              // {
)

var tokenNames = [...]string{
	TokenNotProvided:  "NOT_PROVIDED",
	TokenDot:          ".",
	TokenAmpersandDot: "&.",
	TokenColonColon:   "::",
	TokenDotDot:       "..",
	TokenDotDotDot:    "...",
	TokenBraceLeft:    "{",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", uint8(t))
}

// Token is an operator or delimiter stored by a node in place of a child.
type Token struct {
	Type    TokenType
	SpanVal Span
}

// Provided reports whether the token was present in the source.
func (t Token) Provided() bool { return t.Type != TokenNotProvided }

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() Kind
	Span() Span
	node() // marker method
}

// Kind tags each node struct. It is used for diagnostics only; dispatch is
// done with type switches.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindAlias
	KindAnd
	KindArguments
	KindArray
	KindAssoc
	KindAssocSplat
	KindBlockArgument
	KindBlock
	KindBlockParameter
	KindCall
	KindCase
	KindClass
	KindClassVariableRead
	KindClassVariableWrite
	KindConstantPath
	KindConstantPathWrite
	KindConstantRead
	KindDef
	KindElse
	KindEmbeddedStatements
	KindFalse
	KindFloat
	KindFor
	KindGlobalVariableRead
	KindGlobalVariableWrite
	KindHash
	KindIf
	KindInstanceVariableRead
	KindInstanceVariableWrite
	KindInteger
	KindInterpolatedString
	KindInterpolatedSymbol
	KindInterpolatedXString
	KindKeywordParameter
	KindKeywordRestParameter
	KindLambda
	KindLocalVariableRead
	KindLocalVariableWrite
	KindModule
	KindMultiWrite
	KindNil
	KindOperatorWrite
	KindOptionalParameter
	KindOr
	KindParameters
	KindParentheses
	KindProgram
	KindRange
	KindRequiredDestructuredParameter
	KindRequiredParameter
	KindRestParameter
	KindReturn
	KindSelf
	KindSingletonClass
	KindSplat
	KindStatements
	KindString
	KindSymbol
	KindTrue
	KindUndef
	KindUnless
	KindUntil
	KindWhen
	KindWhile
	KindXString

	// Parsed but not lowered.
	KindBegin
	KindBreak
	KindNext
	KindRedo
	KindRegularExpression
	KindRetry
	KindSuper
	KindYield

	kindCount
)

var kindNames = [...]string{
	KindUnknown:                       "UNKNOWN",
	KindAlias:                         "ALIAS",
	KindAnd:                           "AND",
	KindArguments:                     "ARGUMENTS",
	KindArray:                         "ARRAY",
	KindAssoc:                         "ASSOC",
	KindAssocSplat:                    "ASSOC_SPLAT",
	KindBlockArgument:                 "BLOCK_ARGUMENT",
	KindBlock:                         "BLOCK",
	KindBlockParameter:                "BLOCK_PARAMETER",
	KindCall:                          "CALL",
	KindCase:                          "CASE",
	KindClass:                         "CLASS",
	KindClassVariableRead:             "CLASS_VARIABLE_READ",
	KindClassVariableWrite:            "CLASS_VARIABLE_WRITE",
	KindConstantPath:                  "CONSTANT_PATH",
	KindConstantPathWrite:             "CONSTANT_PATH_WRITE",
	KindConstantRead:                  "CONSTANT_READ",
	KindDef:                           "DEF",
	KindElse:                          "ELSE",
	KindEmbeddedStatements:            "EMBEDDED_STATEMENTS",
	KindFalse:                         "FALSE",
	KindFloat:                         "FLOAT",
	KindFor:                           "FOR",
	KindGlobalVariableRead:            "GLOBAL_VARIABLE_READ",
	KindGlobalVariableWrite:           "GLOBAL_VARIABLE_WRITE",
	KindHash:                          "HASH",
	KindIf:                            "IF",
	KindInstanceVariableRead:          "INSTANCE_VARIABLE_READ",
	KindInstanceVariableWrite:         "INSTANCE_VARIABLE_WRITE",
	KindInteger:                       "INTEGER",
	KindInterpolatedString:            "INTERPOLATED_STRING",
	KindInterpolatedSymbol:            "INTERPOLATED_SYMBOL",
	KindInterpolatedXString:           "INTERPOLATED_X_STRING",
	KindKeywordParameter:              "KEYWORD_PARAMETER",
	KindKeywordRestParameter:          "KEYWORD_REST_PARAMETER",
	KindLambda:                        "LAMBDA",
	KindLocalVariableRead:             "LOCAL_VARIABLE_READ",
	KindLocalVariableWrite:            "LOCAL_VARIABLE_WRITE",
	KindModule:                        "MODULE",
	KindMultiWrite:                    "MULTI_WRITE",
	KindNil:                           "NIL",
	KindOperatorWrite:                 "OPERATOR_WRITE",
	KindOptionalParameter:             "OPTIONAL_PARAMETER",
	KindOr:                            "OR",
	KindParameters:                    "PARAMETERS",
	KindParentheses:                   "PARENTHESES",
	KindProgram:                       "PROGRAM",
	KindRange:                         "RANGE",
	KindRequiredDestructuredParameter: "REQUIRED_DESTRUCTURED_PARAMETER",
	KindRequiredParameter:             "REQUIRED_PARAMETER",
	KindRestParameter:                 "REST_PARAMETER",
	KindReturn:                        "RETURN",
	KindSelf:                          "SELF",
	KindSingletonClass:                "SINGLETON_CLASS",
	KindSplat:                         "SPLAT",
	KindStatements:                    "STATEMENTS",
	KindString:                        "STRING",
	KindSymbol:                        "SYMBOL",
	KindTrue:                          "TRUE",
	KindUndef:                         "UNDEF",
	KindUnless:                        "UNLESS",
	KindUntil:                         "UNTIL",
	KindWhen:                          "WHEN",
	KindWhile:                         "WHILE",
	KindXString:                       "X_STRING",
	KindBegin:                         "BEGIN",
	KindBreak:                         "BREAK",
	KindNext:                          "NEXT",
	KindRedo:                          "REDO",
	KindRegularExpression:             "REGULAR_EXPRESSION",
	KindRetry:                         "RETRY",
	KindSuper:                         "SUPER",
	KindYield:                         "YIELD",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}
