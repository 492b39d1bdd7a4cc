package syntax

// BinOp enumerates the binary operators.
type BinOp int

const (
	OpAdd BinOp = iota // +
	OpSub              // -
	OpMul              // *
	OpDiv              // /
	OpMod              // %
	OpExp              // **
	OpAndB             // &
	OpOrB              // |
	OpXorB             // ^
	OpAndL             // &&
	OpOrL              // ||
	OpShl              // <<
	OpShr              // >>
	OpEq               // ==
	OpNeq              // !=
	OpGt               // >
	OpGte              // >=
	OpLt               // <
	OpLte              // <=
)

var binOpNames = [...]string{
	"+", "-", "*", "/", "%", "**", "&", "|", "^", "&&", "||",
	"<<", ">>", "==", "!=", ">", ">=", "<", "<=",
}

func (op BinOp) String() string {
	return binOpNames[op]
}

// IsComparison returns whether the operator is a comparison or logical
// operator, ie. whether it always yields a bool.
func (op BinOp) IsComparison() bool {
	switch op {
	case OpAndL, OpOrL, OpEq, OpNeq, OpGt, OpGte, OpLt, OpLte:
		return true
	}

	return false
}

// -----------------------------------------------------------------------------

// UnaryOp enumerates the unary operators.
type UnaryOp int

const (
	OpNeg  UnaryOp = iota // -
	OpNotB                // ~
	OpNotL                // !
)

func (op UnaryOp) String() string {
	return [...]string{"-", "~", "!"}[op]
}

// -----------------------------------------------------------------------------

// GateModifierKind enumerates the gate-call modifier keywords.
type GateModifierKind int

const (
	ModInv GateModifierKind = iota
	ModPow
	ModCtrl
	ModNegCtrl
)

func (k GateModifierKind) String() string {
	return [...]string{"inv", "pow", "ctrl", "negctrl"}[k]
}

// -----------------------------------------------------------------------------

// TimeUnit enumerates the duration literal suffixes.
type TimeUnit int

const (
	UnitDt TimeUnit = iota
	UnitNs
	UnitUs
	UnitMs
	UnitS
)

func (u TimeUnit) String() string {
	return [...]string{"dt", "ns", "us", "ms", "s"}[u]
}
