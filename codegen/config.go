package codegen

import (
	"fmt"
	"strings"
)

// QubitSemantics selects the qubit allocation style of the generated code.
type QubitSemantics int

const (
	// QubitQSharp allocates qubits with managed `use` bindings that release
	// at end of scope.
	QubitQSharp QubitSemantics = iota

	// QubitQiskit allocates qubits with explicit runtime allocation calls
	// that live for the whole program.
	QubitQiskit
)

// OutputSemantics selects how the program's output registers are returned.
type OutputSemantics int

const (
	// OutputQiskit returns the classical registers in reverse declaration
	// order, filtered to bit registers only.
	OutputQiskit OutputSemantics = iota

	// OutputOpenQasm returns every output value in declaration order.
	OutputOpenQasm

	// OutputResourceEstimation discards the output entirely.
	OutputResourceEstimation
)

// ProgramType selects the shape of the generated compilation unit.
type ProgramType int

const (
	// ProgramFile wraps the program in a namespace with an entry operation.
	ProgramFile ProgramType = iota

	// ProgramOperation generates a single bare operation.
	ProgramOperation

	// ProgramFragments generates the items with no wrapping at all.
	ProgramFragments
)

// Config controls one compilation.
type Config struct {
	Qubits  QubitSemantics
	Output  OutputSemantics
	Program ProgramType

	// The namespace of the generated unit; defaults to "qasm_import".
	Namespace string

	// The name of the entry operation; defaults to "program".
	OperationName string
}

func (c Config) namespace() string {
	if c.Namespace == "" {
		return "qasm_import"
	}
	return c.Namespace
}

func (c Config) operationName() string {
	if c.OperationName == "" {
		return "program"
	}
	return c.OperationName
}

// -----------------------------------------------------------------------------

// SignatureParam is one input parameter of the generated entry operation.
type SignatureParam struct {
	Name string
	Ty   string
}

// OperationSignature describes the callable interface of the generated entry
// operation, so embedding hosts can bind arguments and interpret results
// without parsing the generated source.
type OperationSignature struct {
	Namespace string
	Name      string
	Input     []SignatureParam
	Output    string
}

// String renders the signature as a callable declaration, eg.
// `program(a : Int) : Result`.
func (s *OperationSignature) String() string {
	parts := make([]string, len(s.Input))
	for i, p := range s.Input {
		parts[i] = fmt.Sprintf("%s : %s", p.Name, p.Ty)
	}

	return fmt.Sprintf("%s(%s) : %s", s.Name, strings.Join(parts, ", "), s.Output)
}
