package ast

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnknown, "UNKNOWN"},
		{KindIf, "IF"},
		{KindInterpolatedXString, "INTERPOLATED_X_STRING"},
		{KindYield, "YIELD"},
		{Kind(250), "Kind(250)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", uint8(tt.kind), got, tt.want)
		}
	}
}

func TestEveryKindNamed(t *testing.T) {
	for k := KindUnknown; k < kindCount; k++ {
		if kindNames[k] == "" {
			t.Errorf("kind %d has no name", uint8(k))
		}
	}
}

func TestNodeKinds(t *testing.T) {
	tests := []struct {
		node Node
		want Kind
	}{
		{&ProgramNode{}, KindProgram},
		{&StatementsNode{}, KindStatements},
		{&CallNode{}, KindCall},
		{&IfNode{}, KindIf},
		{&MultiWriteNode{}, KindMultiWrite},
		{&RequiredDestructuredParameterNode{}, KindRequiredDestructuredParameter},
		{&BreakNode{}, KindBreak},
	}
	for _, tt := range tests {
		if got := tt.node.Kind(); got != tt.want {
			t.Errorf("%T.Kind() = %v, want %v", tt.node, got, tt.want)
		}
	}
}

func TestSpanAndToken(t *testing.T) {
	n := &IntegerNode{SpanVal: Span{Start: 3, End: 7}, Digits: "1234", Base: 10}
	if got := n.Span().Len(); got != 4 {
		t.Errorf("span len = %d, want 4", got)
	}

	var tok Token
	if tok.Provided() {
		t.Error("zero token reports provided")
	}
	tok.Type = TokenAmpersandDot
	if !tok.Provided() {
		t.Error("&. token reports not provided")
	}
	if got := tok.Type.String(); got != "&." {
		t.Errorf("token string = %q, want &.", got)
	}
}
