package codegen

import "github.com/chazu/irepgen/irep"

// DefaultMaxDepth is the recursion limit used when Options.MaxDepth is zero.
const DefaultMaxDepth = 256

// Options controls code generation.
type Options struct {
	// NoOptimize disables every peephole rewrite.
	NoOptimize bool

	// NoExtOps makes an operand wider than 8 bits a fatal error instead of
	// emitting an EXT prefix.
	NoExtOps bool

	// MaxDepth bounds tree recursion, counted across nested units.
	MaxDepth int

	// Upper is the chain of already compiled units enclosing the program,
	// innermost first. Variables not found in any open scope are looked up
	// there.
	Upper *Upper
}

// Upper links an already compiled unit into the variable search chain.
type Upper struct {
	Unit *irep.Irep

	// MethodScope stops the search after this unit, as a method body does.
	MethodScope bool

	Parent *Upper
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}
