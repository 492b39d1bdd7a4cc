package cmd

import (
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"qasmc/codegen"
)

// BuildProfile is the on-disk compilation configuration, loaded from a TOML
// file.  Every field is optional; zero values select the defaults.
type BuildProfile struct {
	Build struct {
		// The name of the generated entry operation.
		Operation string `toml:"operation"`

		// The namespace wrapping the generated unit.
		Namespace string `toml:"namespace"`

		// Qubit allocation style: "managed" or "unmanaged".
		Qubits string `toml:"qubits"`

		// Output semantics: "qiskit", "openqasm", or "resource-estimation".
		Output string `toml:"output"`

		// Unit shape: "file", "operation", or "fragments".
		Program string `toml:"program"`
	} `toml:"build"`
}

// LoadProfile reads and decodes a build profile.
func LoadProfile(path string) (*BuildProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read build profile %s", path)
	}

	profile := &BuildProfile{}
	if err := toml.Unmarshal(data, profile); err != nil {
		return nil, errors.Wrapf(err, "failed to decode build profile %s", path)
	}

	return profile, nil
}

// Config validates the profile and converts it into a compiler
// configuration.
func (p *BuildProfile) Config() (codegen.Config, error) {
	cfg := codegen.Config{
		OperationName: p.Build.Operation,
		Namespace:     p.Build.Namespace,
	}

	switch p.Build.Qubits {
	case "", "managed":
		cfg.Qubits = codegen.QubitQSharp
	case "unmanaged":
		cfg.Qubits = codegen.QubitQiskit
	default:
		return cfg, errors.Errorf("unknown qubit semantics %q", p.Build.Qubits)
	}

	switch p.Build.Output {
	case "", "qiskit":
		cfg.Output = codegen.OutputQiskit
	case "openqasm":
		cfg.Output = codegen.OutputOpenQasm
	case "resource-estimation":
		cfg.Output = codegen.OutputResourceEstimation
	default:
		return cfg, errors.Errorf("unknown output semantics %q", p.Build.Output)
	}

	switch p.Build.Program {
	case "", "file":
		cfg.Program = codegen.ProgramFile
	case "operation":
		cfg.Program = codegen.ProgramOperation
	case "fragments":
		cfg.Program = codegen.ProgramFragments
	default:
		return cfg, errors.Errorf("unknown program type %q", p.Build.Program)
	}

	return cfg, nil
}
