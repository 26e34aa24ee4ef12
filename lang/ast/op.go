package ast

// Op is an operator carried by Unary, Binary, Logical and Compare nodes.
type Op uint8

const (
	OpInvalid Op = iota

	// unary
	OpNeg
	OpPos
	OpNot

	// arithmetic
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpConcat
	OpShl
	OpShr
	OpBitOr
	OpBitXor
	OpBitAnd

	// logical
	OpAnd
	OpOr

	// comparison
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpIn
	OpNotIn
)

//nolint:gochecknoglobals
var opText = [...]string{
	OpInvalid:  "?",
	OpNeg:      "-",
	OpPos:      "+",
	OpNot:      "not",
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpDiv:      "/",
	OpFloorDiv: "//",
	OpMod:      "%",
	OpPow:      "**",
	OpConcat:   "~",
	OpShl:      "<<",
	OpShr:      ">>",
	OpBitOr:    "bitor",
	OpBitXor:   "bitxor",
	OpBitAnd:   "bitand",
	OpAnd:      "and",
	OpOr:       "or",
	OpEq:       "==",
	OpNe:       "!=",
	OpLt:       "<",
	OpLe:       "<=",
	OpGt:       ">",
	OpGe:       ">=",
	OpIn:       "in",
	OpNotIn:    "not in",
}

// String returns the source spelling of op.
func (op Op) String() string {
	if int(op) < len(opText) {
		return opText[op]
	}

	return opText[OpInvalid]
}
