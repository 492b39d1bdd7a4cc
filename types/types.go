package types

import (
	"fmt"
	"strings"
)

// NoWidth marks a sized scalar type written without an explicit width
// designator.  A type without a width is not fixed-width and can hold any
// explicit width.
const NoWidth = 0

// MaxDims is the maximum number of array dimensions the language permits.
const MaxDims = 7

// Kind enumerates the type variants of the OpenQASM type system.
type Kind int

const (
	KErr Kind = iota
	KBool
	KInt
	KUInt
	KFloat
	KAngle
	KComplex
	KBit
	KBitArray
	KDuration
	KStretch
	KQubit
	KQubitArray
	KHardwareQubit
	KArray
	KStaticArrayRef
	KDynArrayRef
	KGate
	KFunction
	KRange
	KSet
	KVoid
)

// Type is a type in the OpenQASM type system.  Which fields are meaningful
// depends on Kind.  Types are treated as immutable: derived types are built
// with the constructors and the AsConst/AsNonConst helpers, never by mutating
// a shared value.
type Type struct {
	Kind Kind

	// The explicit bit width of a sized scalar, or NoWidth.
	Width int

	// Whether the type is compile-time constant.
	Const bool

	// The element count of a bit or qubit register.  May legitimately be
	// zero: zero-size registers exist and cannot be indexed.
	Size int

	// The element scalar type of an array or array reference.
	Elem *Type

	// The dimensions of an array.  Length is between 1 and MaxDims.
	Dims []int

	// The dimension count of a dyn array reference declared with `#dim`.
	DimCount int

	// Whether an array reference is mutable.
	Mutable bool

	// The classical and quantum arity of a gate.
	CArity, QArity int

	// The parameter and return types of a function.
	Params []*Type
	Return *Type
}

// -----------------------------------------------------------------------------

func Err() *Type                { return &Type{Kind: KErr} }
func Void() *Type               { return &Type{Kind: KVoid} }
func RangeTy() *Type            { return &Type{Kind: KRange} }
func SetTy() *Type              { return &Type{Kind: KSet} }
func Qubit() *Type              { return &Type{Kind: KQubit} }
func HardwareQubit() *Type      { return &Type{Kind: KHardwareQubit} }
func QubitArray(size int) *Type { return &Type{Kind: KQubitArray, Size: size} }

func Bool(isConst bool) *Type     { return &Type{Kind: KBool, Const: isConst} }
func Bit(isConst bool) *Type      { return &Type{Kind: KBit, Const: isConst} }
func Duration(isConst bool) *Type { return &Type{Kind: KDuration, Const: isConst} }
func Stretch(isConst bool) *Type  { return &Type{Kind: KStretch, Const: isConst} }

func Int(width int, isConst bool) *Type {
	return &Type{Kind: KInt, Width: width, Const: isConst}
}

func UInt(width int, isConst bool) *Type {
	return &Type{Kind: KUInt, Width: width, Const: isConst}
}

func Float(width int, isConst bool) *Type {
	return &Type{Kind: KFloat, Width: width, Const: isConst}
}

func Angle(width int, isConst bool) *Type {
	return &Type{Kind: KAngle, Width: width, Const: isConst}
}

func Complex(width int, isConst bool) *Type {
	return &Type{Kind: KComplex, Width: width, Const: isConst}
}

func BitArray(size int, isConst bool) *Type {
	return &Type{Kind: KBitArray, Size: size, Const: isConst}
}

func Array(elem *Type, dims []int) *Type {
	return &Type{Kind: KArray, Elem: elem, Dims: dims}
}

func StaticArrayRef(elem *Type, dims []int, mutable bool) *Type {
	return &Type{Kind: KStaticArrayRef, Elem: elem, Dims: dims, Mutable: mutable}
}

func DynArrayRef(elem *Type, dimCount int, mutable bool) *Type {
	return &Type{Kind: KDynArrayRef, Elem: elem, DimCount: dimCount, Mutable: mutable}
}

func Gate(cArity, qArity int) *Type {
	return &Type{Kind: KGate, CArity: cArity, QArity: qArity}
}

func Function(params []*Type, ret *Type) *Type {
	return &Type{Kind: KFunction, Params: params, Return: ret}
}

// -----------------------------------------------------------------------------

// IsErr returns whether the type is the absorbing error type.
func (t *Type) IsErr() bool {
	return t.Kind == KErr
}

// IsConst returns whether the type is compile-time constant.
func (t *Type) IsConst() bool {
	return t.Const
}

// IsQuantum returns whether the type is a quantum type.
func (t *Type) IsQuantum() bool {
	switch t.Kind {
	case KQubit, KQubitArray, KHardwareQubit:
		return true
	}

	return false
}

// IsIndexable returns whether indexing can be applied to the type directly,
// without first reinterpreting it as a bit register.
func (t *Type) IsIndexable() bool {
	switch t.Kind {
	case KBitArray, KQubitArray, KArray, KStaticArrayRef, KDynArrayRef:
		return true
	}

	return false
}

// IsSizedScalar returns whether the type is a sized scalar that indexes its
// bits in little-endian order when treated as a bit register.
func (t *Type) IsSizedScalar() bool {
	switch t.Kind {
	case KInt, KUInt, KAngle:
		return t.Width != NoWidth
	}

	return false
}

// NumDims returns the number of index dimensions of the type.
func (t *Type) NumDims() int {
	switch t.Kind {
	case KBitArray, KQubitArray:
		return 1
	case KArray, KStaticArrayRef:
		return len(t.Dims)
	case KDynArrayRef:
		return t.DimCount
	}

	return 0
}

// HasZeroSize returns whether the type is a register or array with zero
// elements.
func (t *Type) HasZeroSize() bool {
	switch t.Kind {
	case KBitArray, KQubitArray:
		return t.Size == 0
	case KArray, KStaticArrayRef:
		for _, d := range t.Dims {
			if d == 0 {
				return true
			}
		}
	}

	return false
}

// AsConst returns the const variant of the type.
func (t *Type) AsConst() *Type {
	if t.Const {
		return t
	}

	c := *t
	c.Const = true
	return &c
}

// AsNonConst returns the non-const variant of the type.
func (t *Type) AsNonConst() *Type {
	if !t.Const {
		return t
	}

	c := *t
	c.Const = false
	return &c
}

// -----------------------------------------------------------------------------

// Equal compares two types for full structural equality, including constness.
func Equal(lhs, rhs *Type) bool {
	return lhs.Const == rhs.Const && EqualExceptConst(lhs, rhs)
}

// EqualExceptConst compares two types for equality, ignoring constness.
func EqualExceptConst(lhs, rhs *Type) bool {
	if lhs.Kind != rhs.Kind {
		return false
	}

	switch lhs.Kind {
	case KInt, KUInt, KFloat, KAngle, KComplex:
		return lhs.Width == rhs.Width
	case KBitArray, KQubitArray:
		return lhs.Size == rhs.Size
	case KGate:
		return lhs.CArity == rhs.CArity && lhs.QArity == rhs.QArity
	case KArray, KStaticArrayRef:
		return EqualExceptConst(lhs.Elem, rhs.Elem) && dimsEqual(lhs.Dims, rhs.Dims)
	case KDynArrayRef:
		return EqualExceptConst(lhs.Elem, rhs.Elem) && lhs.DimCount == rhs.DimCount
	case KFunction:
		if len(lhs.Params) != len(rhs.Params) || !Equal(lhs.Return, rhs.Return) {
			return false
		}
		for i, p := range lhs.Params {
			if !Equal(p, rhs.Params[i]) {
				return false
			}
		}
		return true
	}

	return true
}

// BaseTypesEqual compares two types for equality, ignoring constness and
// width.  Registers and arrays are equal only if their sizes and dimensions
// are equal.
func BaseTypesEqual(lhs, rhs *Type) bool {
	if lhs.Kind != rhs.Kind {
		return false
	}

	switch lhs.Kind {
	case KBitArray, KQubitArray:
		return lhs.Size == rhs.Size
	case KArray, KStaticArrayRef:
		return BaseTypesEqual(lhs.Elem, rhs.Elem) && dimsEqual(lhs.Dims, rhs.Dims)
	case KDynArrayRef:
		return BaseTypesEqual(lhs.Elem, rhs.Elem) && lhs.DimCount == rhs.DimCount
	}

	return true
}

func dimsEqual(lhs, rhs []int) bool {
	if len(lhs) != len(rhs) {
		return false
	}

	for i, d := range lhs {
		if d != rhs[i] {
			return false
		}
	}

	return true
}

// -----------------------------------------------------------------------------

func (t *Type) String() string {
	switch t.Kind {
	case KErr:
		return "unknown"
	case KVoid:
		return "void"
	case KRange:
		return "range"
	case KSet:
		return "set"
	case KBool:
		return "bool"
	case KBit:
		return "bit"
	case KDuration:
		return "duration"
	case KStretch:
		return "stretch"
	case KQubit:
		return "qubit"
	case KHardwareQubit:
		return "hardware qubit"
	case KQubitArray:
		return fmt.Sprintf("qubit[%d]", t.Size)
	case KBitArray:
		return fmt.Sprintf("bit[%d]", t.Size)
	case KInt:
		return widthName("int", t.Width)
	case KUInt:
		return widthName("uint", t.Width)
	case KFloat:
		return widthName("float", t.Width)
	case KAngle:
		return widthName("angle", t.Width)
	case KComplex:
		return "complex[" + widthName("float", t.Width) + "]"
	case KGate:
		return fmt.Sprintf("gate(%d, %d)", t.CArity, t.QArity)
	case KFunction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("def (%s) -> %s", strings.Join(parts, ", "), t.Return)
	case KArray, KStaticArrayRef:
		parts := make([]string, 0, len(t.Dims)+1)
		parts = append(parts, t.Elem.String())
		for _, d := range t.Dims {
			parts = append(parts, fmt.Sprintf("%d", d))
		}
		name := "array"
		if t.Kind == KStaticArrayRef {
			name = refName(t.Mutable)
		}
		return name + "[" + strings.Join(parts, ", ") + "]"
	case KDynArrayRef:
		return fmt.Sprintf("%s[%s, #dim = %d]", refName(t.Mutable), t.Elem, t.DimCount)
	}

	return "unknown"
}

func widthName(name string, width int) string {
	if width == NoWidth {
		return name
	}

	return fmt.Sprintf("%s[%d]", name, width)
}

func refName(mutable bool) string {
	if mutable {
		return "mutable array"
	}

	return "readonly array"
}
