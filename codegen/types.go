package codegen

import (
	"qasmc/types"
)

// targetTypeName maps a source type to its target-language spelling.
func targetTypeName(ty *types.Type) string {
	switch ty.Kind {
	case types.KBit:
		return "Result"
	case types.KBitArray:
		return "Result[]"
	case types.KBool:
		return "Bool"
	case types.KInt, types.KUInt:
		return "Int"
	case types.KFloat, types.KAngle, types.KDuration, types.KStretch:
		return "Double"
	case types.KComplex:
		return "(Double, Double)"
	case types.KQubit, types.KHardwareQubit:
		return "Qubit"
	case types.KQubitArray:
		return "Qubit[]"
	case types.KArray, types.KStaticArrayRef, types.KDynArrayRef:
		name := targetTypeName(ty.Elem)
		for i := 0; i < ty.NumDims(); i++ {
			name += "[]"
		}
		return name
	case types.KVoid:
		return "Unit"
	}

	return "Unit"
}
