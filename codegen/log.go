package codegen

import (
	"github.com/google/uuid"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("irepgen.codegen")

// generator holds the state shared by every scope of one Compile call.
type generator struct {
	opts    Options
	session string
	units   int // finished units, for log records
}

func newGenerator(opts Options) *generator {
	return &generator{
		opts:    opts,
		session: uuid.NewString(),
	}
}

func (g *generator) logFailure(err *Error) {
	log.Error("compile failed",
		"session", g.session,
		"error", err.Msg,
		"kind", err.Kind.String(),
		"depth", err.Depth)
}

func (g *generator) logUnit(s *scope, index int) {
	g.units++
	if !log.AllowLevel(commonlog.Debug) {
		return
	}
	log.Debug("unit finished",
		"session", g.session,
		"unit", g.units,
		"index", index,
		"depth", s.depth(),
		"ilen", len(s.code),
		"pool", len(s.pool),
		"syms", len(s.syms),
		"nlocals", s.nlocals,
		"nregs", s.nregs,
		"ainfo", s.ainfo)
}
