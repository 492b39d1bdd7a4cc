package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qasmc/report"
	"qasmc/syntax"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "main.qasm")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDriverRequiresParser(t *testing.T) {
	d := &Driver{}
	_, err := d.Check(writeSource(t, ""))
	assert.ErrorContains(t, err, "no parser is registered")
}

func TestDriverCompilesEmptyProgram(t *testing.T) {
	var gotSrc string
	d := &Driver{
		Parse: func(path, src string, bag *report.Bag) (*syntax.Program, error) {
			gotSrc = src
			return &syntax.Program{}, nil
		},
	}

	res, err := d.Compile(writeSource(t, "OPENQASM 3;\n"))
	require.NoError(t, err)
	assert.Equal(t, "OPENQASM 3;\n", gotSrc)

	require.NotNil(t, res.Package)
	require.NotNil(t, res.Signature)
	assert.False(t, res.Bag.HasErrors())
	assert.Equal(t, "program() : Unit", res.Signature.String())
}

func TestDriverSkipsCodegenOnErrors(t *testing.T) {
	d := &Driver{
		Parse: func(path, src string, bag *report.Bag) (*syntax.Program, error) {
			bag.Addf("UnexpectedParserError", path, &report.TextSpan{}, "bad token")
			return &syntax.Program{}, nil
		},
	}

	res, err := d.Compile(writeSource(t, "!"))
	require.NoError(t, err)
	assert.True(t, res.Bag.HasErrors())
	assert.Nil(t, res.Package)
	assert.Nil(t, res.Signature)
}

func TestDriverMissingFile(t *testing.T) {
	d := &Driver{
		Parse: func(path, src string, bag *report.Bag) (*syntax.Program, error) {
			return &syntax.Program{}, nil
		},
	}

	_, err := d.Check(filepath.Join(t.TempDir(), "absent.qasm"))
	assert.Error(t, err)
}
