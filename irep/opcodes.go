package irep

import "fmt"

// ---------------------------------------------------------------------------
// Opcode definitions
// ---------------------------------------------------------------------------

// Opcode represents a single register VM instruction.
type Opcode byte

// Loads and moves
const (
	OpNOP      Opcode = iota // no operation
	OpMOVE                   // R[a] = R[b]
	OpLOADL                  // R[a] = Pool[b]
	OpLOADI                  // R[a] = b
	OpLOADINEG               // R[a] = -b
	OpLOADI__1               // R[a] = -1
	OpLOADI_0                // R[a] = 0
	OpLOADI_1                // R[a] = 1
	OpLOADI_2                // R[a] = 2
	OpLOADI_3                // R[a] = 3
	OpLOADI_4                // R[a] = 4
	OpLOADI_5                // R[a] = 5
	OpLOADI_6                // R[a] = 6
	OpLOADI_7                // R[a] = 7
	OpLOADI16                // R[a] = int16(b)
	OpLOADI32                // R[a] = int32(b<<16 | c)
	OpLOADSYM                // R[a] = Syms[b]
	OpLOADNIL                // R[a] = nil
	OpLOADSELF               // R[a] = self
	OpLOADT                  // R[a] = true
	OpLOADF                  // R[a] = false
)

// Variables
const (
	OpGETGV    Opcode = iota + OpLOADF + 1 // R[a] = getglobal(Syms[b])
	OpSETGV                                // setglobal(Syms[b], R[a])
	OpGETSV                                // R[a] = Special[Syms[b]]
	OpSETSV                                // Special[Syms[b]] = R[a]
	OpGETIV                                // R[a] = ivget(Syms[b])
	OpSETIV                                // ivset(Syms[b], R[a])
	OpGETCV                                // R[a] = cvget(Syms[b])
	OpSETCV                                // cvset(Syms[b], R[a])
	OpGETCONST                             // R[a] = constget(Syms[b])
	OpSETCONST                             // constset(Syms[b], R[a])
	OpGETMCNST                             // R[a] = R[a]::Syms[b]
	OpSETMCNST                             // R[a+1]::Syms[b] = R[a]
	OpGETUPVAR                             // R[a] = uvget(b, c)
	OpSETUPVAR                             // uvset(b, c, R[a])
	OpGETIDX                               // R[a] = R[a][R[a+1]]
	OpSETIDX                               // R[a][R[a+1]] = R[a+2]
)

// Control flow
const (
	OpJMP     Opcode = iota + OpSETIDX + 1 // pc += a
	OpJMPIF                                // if R[a] pc += b
	OpJMPNOT                               // if !R[a] pc += b
	OpJMPNIL                               // if R[a] == nil pc += b
	OpJMPUW                                // unwind and pc += a
	OpEXCEPT                               // R[a] = exc
	OpRESCUE                               // R[b] = R[a].isa?(R[b])
	OpRAISEIF                              // raise(R[a]) if R[a]
)

// Calls and returns
const (
	OpSSEND      Opcode = iota + OpRAISEIF + 1 // R[a] = self.send(Syms[b], R[a+1]..., c)
	OpSSENDB                                   // R[a] = self.send(Syms[b], R[a+1]..., &R[a+n+1])
	OpSEND                                     // R[a] = R[a].send(Syms[b], R[a+1]..., c)
	OpSENDB                                    // R[a] = R[a].send(Syms[b], R[a+1]..., &R[a+n+1])
	OpCALL                                     // self.call(*, **, &)
	OpSUPER                                    // R[a] = super(R[a+1]..., b)
	OpARGARY                                   // R[a] = argument array (16=m5:r1:m5:d1:lv4)
	OpENTER                                    // arg setup according to flags (23=m5:o5:r1:m5:k5:d1:b1)
	OpKEY_P                                    // R[a] = kdict.key?(Syms[b])
	OpKEYEND                                   // raise unless kdict.empty?
	OpKARG                                     // R[a] = kdict[Syms[b]]; kdict.delete(Syms[b])
	OpRETURN                                   // return R[a] (normal)
	OpRETURN_BLK                               // return R[a] (in-block return)
	OpBREAK                                    // break R[a]
	OpBLKPUSH                                  // R[a] = block (16=m5:r1:m5:d1:lv4)
)

// Arithmetic
const (
	OpADD  Opcode = iota + OpBLKPUSH + 1 // R[a] = R[a]+R[a+1]
	OpADDI                               // R[a] = R[a]+b
	OpSUB                                // R[a] = R[a]-R[a+1]
	OpSUBI                               // R[a] = R[a]-b
	OpMUL                                // R[a] = R[a]*R[a+1]
	OpDIV                                // R[a] = R[a]/R[a+1]
	OpEQ                                 // R[a] = R[a]==R[a+1]
	OpLT                                 // R[a] = R[a]<R[a+1]
	OpLE                                 // R[a] = R[a]<=R[a+1]
	OpGT                                 // R[a] = R[a]>R[a+1]
	OpGE                                 // R[a] = R[a]>=R[a+1]
)

// Object construction
const (
	OpARRAY     Opcode = iota + OpGE + 1 // R[a] = ary_new(R[a],R[a+1]..R[a+b])
	OpARRAY2                             // R[a] = ary_new(R[b],R[b+1]..R[b+c])
	OpARYCAT                             // ary_cat(R[a],R[a+1])
	OpARYPUSH                            // ary_push(R[a],R[a+1]..R[a+b])
	OpARYDUP                             // R[a] = ary_dup(R[a])
	OpAREF                               // R[a] = R[b][c]
	OpASET                               // R[b][c] = R[a]
	OpAPOST                              // *R[a],R[a+1]..R[a+c] = R[a][b..]
	OpINTERN                             // R[a] = intern(R[a])
	OpSYMBOL                             // R[a] = intern(Pool[b])
	OpSTRING                             // R[a] = str_dup(Pool[b])
	OpSTRCAT                             // str_cat(R[a],R[a+1])
	OpHASH                               // R[a] = hash_new(R[a],R[a+1]..R[a+b*2-1])
	OpHASHADD                            // hash_push(R[a],R[a+1]..R[a+b*2])
	OpHASHCAT                            // R[a] = hash_cat(R[a],R[a+1])
	OpLAMBDA                             // R[a] = lambda(Irep[b],L_LAMBDA)
	OpBLOCK                              // R[a] = lambda(Irep[b],L_BLOCK)
	OpMETHOD                             // R[a] = lambda(Irep[b],L_METHOD)
	OpRANGE_INC                          // R[a] = range_new(R[a],R[a+1],FALSE)
	OpRANGE_EXC                          // R[a] = range_new(R[a],R[a+1],TRUE)
)

// Classes and methods
const (
	OpOCLASS Opcode = iota + OpRANGE_EXC + 1 // R[a] = ::Object
	OpCLASS                                  // R[a] = newclass(R[a],Syms[b],R[a+1])
	OpMODULE                                 // R[a] = newmodule(R[a],Syms[b])
	OpEXEC                                   // R[a] = blockexec(R[a],Irep[b])
	OpDEF                                    // R[a].newmethod(Syms[b],R[a+1]); R[a] = Syms[b]
	OpALIAS                                  // alias_method(target_class,Syms[a],Syms[b])
	OpUNDEF                                  // undef_method(target_class,Syms[a])
	OpSCLASS                                 // R[a] = R[a].singleton_class
	OpTCLASS                                 // R[a] = target_class
	OpDEBUG                                  // print a,b,c
	OpERR                                    // raise(LocalJumpError, Pool[a])
)

// Operand extension prefixes and terminator
const (
	OpEXT1 Opcode = iota + OpERR + 1 // make 1st operand (a) 16bit
	OpEXT2                           // make 2nd operand (b) 16bit
	OpEXT3                           // make 1st and 2nd operands 16bit
	OpSTOP                           // stop VM
)

// ---------------------------------------------------------------------------
// Operand formats
// ---------------------------------------------------------------------------

// Format describes the operand layout of an opcode. B is an 8-bit operand
// that an EXT prefix can widen to 16 bits, S is always 16 bits and W is 24.
type Format uint8

const (
	FormatZ   Format = iota // no operands
	FormatB                 // a
	FormatBB                // a, b
	FormatBBB               // a, b, c
	FormatBS                // a, 16-bit b
	FormatBSS               // a, 16-bit b, 16-bit c
	FormatS                 // 16-bit a
	FormatW                 // 24-bit a
)

var formatNames = [...]string{"Z", "B", "BB", "BBB", "BS", "BSS", "S", "W"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// ---------------------------------------------------------------------------
// Opcode metadata
// ---------------------------------------------------------------------------

// OpcodeInfo holds metadata about an opcode.
type OpcodeInfo struct {
	Name   string // human-readable name
	Format Format // operand layout
}

// opcodeTable maps opcodes to their metadata.
var opcodeTable = map[Opcode]OpcodeInfo{
	OpNOP:      {"NOP", FormatZ},
	OpMOVE:     {"MOVE", FormatBB},
	OpLOADL:    {"LOADL", FormatBB},
	OpLOADI:    {"LOADI", FormatBB},
	OpLOADINEG: {"LOADINEG", FormatBB},
	OpLOADI__1: {"LOADI__1", FormatB},
	OpLOADI_0:  {"LOADI_0", FormatB},
	OpLOADI_1:  {"LOADI_1", FormatB},
	OpLOADI_2:  {"LOADI_2", FormatB},
	OpLOADI_3:  {"LOADI_3", FormatB},
	OpLOADI_4:  {"LOADI_4", FormatB},
	OpLOADI_5:  {"LOADI_5", FormatB},
	OpLOADI_6:  {"LOADI_6", FormatB},
	OpLOADI_7:  {"LOADI_7", FormatB},
	OpLOADI16:  {"LOADI16", FormatBS},
	OpLOADI32:  {"LOADI32", FormatBSS},
	OpLOADSYM:  {"LOADSYM", FormatBB},
	OpLOADNIL:  {"LOADNIL", FormatB},
	OpLOADSELF: {"LOADSELF", FormatB},
	OpLOADT:    {"LOADT", FormatB},
	OpLOADF:    {"LOADF", FormatB},

	OpGETGV:    {"GETGV", FormatBB},
	OpSETGV:    {"SETGV", FormatBB},
	OpGETSV:    {"GETSV", FormatBB},
	OpSETSV:    {"SETSV", FormatBB},
	OpGETIV:    {"GETIV", FormatBB},
	OpSETIV:    {"SETIV", FormatBB},
	OpGETCV:    {"GETCV", FormatBB},
	OpSETCV:    {"SETCV", FormatBB},
	OpGETCONST: {"GETCONST", FormatBB},
	OpSETCONST: {"SETCONST", FormatBB},
	OpGETMCNST: {"GETMCNST", FormatBB},
	OpSETMCNST: {"SETMCNST", FormatBB},
	OpGETUPVAR: {"GETUPVAR", FormatBBB},
	OpSETUPVAR: {"SETUPVAR", FormatBBB},
	OpGETIDX:   {"GETIDX", FormatB},
	OpSETIDX:   {"SETIDX", FormatB},

	OpJMP:     {"JMP", FormatS},
	OpJMPIF:   {"JMPIF", FormatBS},
	OpJMPNOT:  {"JMPNOT", FormatBS},
	OpJMPNIL:  {"JMPNIL", FormatBS},
	OpJMPUW:   {"JMPUW", FormatS},
	OpEXCEPT:  {"EXCEPT", FormatB},
	OpRESCUE:  {"RESCUE", FormatBB},
	OpRAISEIF: {"RAISEIF", FormatB},

	OpSSEND:      {"SSEND", FormatBBB},
	OpSSENDB:     {"SSENDB", FormatBBB},
	OpSEND:       {"SEND", FormatBBB},
	OpSENDB:      {"SENDB", FormatBBB},
	OpCALL:       {"CALL", FormatZ},
	OpSUPER:      {"SUPER", FormatBB},
	OpARGARY:     {"ARGARY", FormatBS},
	OpENTER:      {"ENTER", FormatW},
	OpKEY_P:      {"KEY_P", FormatBB},
	OpKEYEND:     {"KEYEND", FormatZ},
	OpKARG:       {"KARG", FormatBB},
	OpRETURN:     {"RETURN", FormatB},
	OpRETURN_BLK: {"RETURN_BLK", FormatB},
	OpBREAK:      {"BREAK", FormatB},
	OpBLKPUSH:    {"BLKPUSH", FormatBS},

	OpADD:  {"ADD", FormatB},
	OpADDI: {"ADDI", FormatBB},
	OpSUB:  {"SUB", FormatB},
	OpSUBI: {"SUBI", FormatBB},
	OpMUL:  {"MUL", FormatB},
	OpDIV:  {"DIV", FormatB},
	OpEQ:   {"EQ", FormatB},
	OpLT:   {"LT", FormatB},
	OpLE:   {"LE", FormatB},
	OpGT:   {"GT", FormatB},
	OpGE:   {"GE", FormatB},

	OpARRAY:     {"ARRAY", FormatBB},
	OpARRAY2:    {"ARRAY2", FormatBBB},
	OpARYCAT:    {"ARYCAT", FormatB},
	OpARYPUSH:   {"ARYPUSH", FormatBB},
	OpARYDUP:    {"ARYDUP", FormatB},
	OpAREF:      {"AREF", FormatBBB},
	OpASET:      {"ASET", FormatBBB},
	OpAPOST:     {"APOST", FormatBBB},
	OpINTERN:    {"INTERN", FormatB},
	OpSYMBOL:    {"SYMBOL", FormatBB},
	OpSTRING:    {"STRING", FormatBB},
	OpSTRCAT:    {"STRCAT", FormatB},
	OpHASH:      {"HASH", FormatBB},
	OpHASHADD:   {"HASHADD", FormatBB},
	OpHASHCAT:   {"HASHCAT", FormatB},
	OpLAMBDA:    {"LAMBDA", FormatBB},
	OpBLOCK:     {"BLOCK", FormatBB},
	OpMETHOD:    {"METHOD", FormatBB},
	OpRANGE_INC: {"RANGE_INC", FormatB},
	OpRANGE_EXC: {"RANGE_EXC", FormatB},

	OpOCLASS: {"OCLASS", FormatB},
	OpCLASS:  {"CLASS", FormatBB},
	OpMODULE: {"MODULE", FormatBB},
	OpEXEC:   {"EXEC", FormatBB},
	OpDEF:    {"DEF", FormatBB},
	OpALIAS:  {"ALIAS", FormatBB},
	OpUNDEF:  {"UNDEF", FormatB},
	OpSCLASS: {"SCLASS", FormatB},
	OpTCLASS: {"TCLASS", FormatB},
	OpDEBUG:  {"DEBUG", FormatBBB},
	OpERR:    {"ERR", FormatB},

	OpEXT1: {"EXT1", FormatZ},
	OpEXT2: {"EXT2", FormatZ},
	OpEXT3: {"EXT3", FormatZ},
	OpSTOP: {"STOP", FormatZ},
}

// Info returns the metadata for an opcode.
func (op Opcode) Info() OpcodeInfo {
	if info, ok := opcodeTable[op]; ok {
		return info
	}
	return OpcodeInfo{Name: fmt.Sprintf("UNKNOWN_%02X", byte(op)), Format: FormatZ}
}

// Name returns the human-readable name for an opcode.
func (op Opcode) Name() string {
	return op.Info().Name
}

// Format returns the operand layout of an opcode.
func (op Opcode) Format() Format {
	return op.Info().Format
}

// String implements the Stringer interface.
func (op Opcode) String() string {
	return op.Name()
}

// IsJump reports whether op carries a relative 16-bit jump offset.
func (op Opcode) IsJump() bool {
	switch op {
	case OpJMP, OpJMPIF, OpJMPNOT, OpJMPNIL, OpJMPUW:
		return true
	}
	return false
}

// IsExt reports whether op is an operand extension prefix.
func (op Opcode) IsExt() bool {
	return op == OpEXT1 || op == OpEXT2 || op == OpEXT3
}
