package lower

import (
	"qasmc/report"
	"qasmc/types"
)

// The stable diagnostic codes the lowerer can emit.  Codes identify the kind
// of problem independently of message wording, so tests and tooling can match
// on them.
const (
	ErrBroadcastSizeMismatch        = "BroadcastCallQuantumArgsDisagreeInSize"
	ErrCalibrationsNotSupported     = "CalibrationsNotSupported"
	ErrCannotAliasType              = "CannotAliasType"
	ErrCannotCallNonFunction        = "CannotCallNonFunction"
	ErrCannotCast                   = "CannotCast"
	ErrCannotCastLiteral            = "CannotCastLiteral"
	ErrCannotIndexType              = "CannotIndexType"
	ErrCannotUpdateConstVariable    = "CannotUpdateConstVariable"
	ErrCannotUpdateReadonlyArrayRef = "CannotUpdateReadonlyArrayRef"
	ErrClassicalStmtInBox           = "ClassicalStmtInBox"
	ErrDefDeclarationInNonGlobal    = "DefDeclarationInNonGlobalScope"
	ErrDesignatorTooLarge           = "DesignatorTooLarge"
	ErrDivisionByZero               = "DivisionByZero"
	ErrExprMustBeConst              = "ExprMustBeConst"
	ErrExprMustBeNonNegativeInt     = "ExprMustBeNonNegativeInt"
	ErrExprMustBePositiveInt        = "ExprMustBePositiveInt"
	ErrExprMustFitInU32             = "ExprMustFitInU32"
	ErrExternDeclarationInNonGlobal = "ExternDeclarationInNonGlobalScope"
	ErrGateDeclarationInNonGlobal   = "GateDeclarationInNonGlobalScope"
	ErrIncludeNotFound              = "IncludeNotFound"
	ErrIncludeNotInGlobalScope      = "IncludeNotInGlobalScope"
	ErrIndexSetOnlyInAlias          = "IndexSetOnlyAllowedInAliasStmt"
	ErrInvalidAnnotationTarget      = "InvalidAnnotationTarget"
	ErrInvalidCastValueRange        = "InvalidCastValueRange"
	ErrInvalidGateOperand           = "InvalidGateOperand"
	ErrInvalidNumberOfClassicalArgs = "InvalidNumberOfClassicalArgs"
	ErrInvalidNumberOfQubitArgs     = "InvalidNumberOfQubitArgs"
	ErrInvalidScope                 = "InvalidScope"
	ErrMissingSwitchCases           = "MissingSwitchCases"
	ErrMissingTargetInReturnStmt    = "MissingTargetExpressionInReturnStmt"
	ErrNonVoidDefShouldAlwaysReturn = "NonVoidDefShouldAlwaysReturn"
	ErrNotSupported                 = "NotSupported"
	ErrNotSupportedInThisVersion    = "NotSupportedInThisVersion"
	ErrOperatorNotAllowedForComplex = "OperatorNotAllowedForComplexValues"
	ErrQuantumDeclInNonGlobal       = "QubitDeclarationInNonGlobalScope"
	ErrQuantumTypesInBinaryExpr     = "QuantumTypesInBinaryExpression"
	ErrRedefinedSymbol              = "RedefinedSymbol"
	ErrReturnNotInSubroutine        = "ReturnNotInSubroutineScope"
	ErrReturningExprFromVoidDef     = "ReturningExpressionFromVoidSubroutine"
	ErrTooManyIndices               = "TooManyIndices"
	ErrTypeDoesNotSupportBitwiseNot = "TypeDoesNotSupportBitwiseNot"
	ErrTypeDoesNotSupportNegation   = "TypeDoesNotSupportedUnaryNegation"
	ErrTypeMaxWidthExceeded         = "TypeMaxWidthExceeded"
	ErrTypeWidthMustBePositiveInt   = "TypeWidthMustBePositiveIntConstExpr"
	ErrUndefinedSymbol              = "UndefinedSymbol"
	ErrUnexpectedParserError        = "UnexpectedParserError"
	ErrUnimplemented                = "Unimplemented"
	ErrUnsupportedVersion           = "UnsupportedVersion"
	ErrValueOverflow                = "ValueOverflow"
	ErrZeroSizeArrayAccess          = "ZeroSizeArrayAccess"
	ErrZeroStepInRange              = "ZeroStepInRange"
)

// errorf records an error diagnostic against the current source file.
func (l *Lowerer) errorf(code string, span *report.TextSpan, msg string, args ...interface{}) {
	l.bag.Addf(code, l.path, span, msg, args...)
}

// unsupported records an error for a recognized construct the language rules
// forbid here or that has no lowering at all.
func (l *Lowerer) unsupported(name string, span *report.TextSpan) {
	l.errorf(ErrNotSupported, span, "%s are not supported", name)
}

// unimplemented records an error for a construct that parses and type-checks
// but has no lowering yet.
func (l *Lowerer) unimplemented(name string, span *report.TextSpan) {
	l.errorf(ErrUnimplemented, span, "this statement is not yet handled during OpenQASM 3 import: %s", name)
}

// pushInvalidCastError records the failure to convert between two types.
func (l *Lowerer) pushInvalidCastError(target, source *types.Type, span *report.TextSpan) {
	l.errorf(ErrCannotCast, span, "cannot cast expression of type %s to type %s", source, target)
}

// pushMissingSymbolError records a reference to an undeclared name.
func (l *Lowerer) pushMissingSymbolError(name string, span *report.TextSpan) {
	l.errorf(ErrUndefinedSymbol, span, "undefined symbol: %s", name)
}

// pushRedefinedSymbolError records a second declaration of a name in the same
// scope.
func (l *Lowerer) pushRedefinedSymbolError(name string, span *report.TextSpan) {
	l.errorf(ErrRedefinedSymbol, span, "redefined symbol: %s", name)
}

// pushConstCaptureError records a reference to a non-const variable from
// inside a gate or def body, where only const captures are legal.
func (l *Lowerer) pushConstCaptureError(span *report.TextSpan) {
	l.errorf(ErrExprMustBeConst, span, "a captured variable must be a const expression")
}
