package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qasmc/codegen"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "qasmc.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
[build]
operation = "main"
namespace = "my_ns"
qubits = "unmanaged"
output = "openqasm"
program = "operation"
`)

	profile, err := LoadProfile(path)
	require.NoError(t, err)

	cfg, err := profile.Config()
	require.NoError(t, err)
	assert.Equal(t, codegen.Config{
		Qubits:        codegen.QubitQiskit,
		Output:        codegen.OutputOpenQasm,
		Program:       codegen.ProgramOperation,
		Namespace:     "my_ns",
		OperationName: "main",
	}, cfg)
}

func TestEmptyProfileSelectsDefaults(t *testing.T) {
	profile := &BuildProfile{}

	cfg, err := profile.Config()
	require.NoError(t, err)
	assert.Equal(t, codegen.Config{}, cfg)
}

func TestProfileRejectsUnknownValues(t *testing.T) {
	bad := &BuildProfile{}
	bad.Build.Qubits = "borrowed"
	_, err := bad.Config()
	assert.ErrorContains(t, err, "borrowed")

	bad = &BuildProfile{}
	bad.Build.Output = "qir"
	_, err = bad.Config()
	assert.ErrorContains(t, err, "qir")

	bad = &BuildProfile{}
	bad.Build.Program = "library"
	_, err = bad.Config()
	assert.ErrorContains(t, err, "library")
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
