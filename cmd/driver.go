// Package cmd is the top-level driver package for the qasmc tool: it parses
// command-line arguments, loads build profiles, and runs the compilation
// phases over a source file.
package cmd

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"qasmc/codegen"
	"qasmc/lower"
	"qasmc/qsast"
	"qasmc/report"
	"qasmc/semast"
	"qasmc/symbols"
	"qasmc/syntax"
)

// ParseFunc produces the syntax tree for one source file.  Parsing is
// provided by the embedding front end; the driver itself starts at lowering.
type ParseFunc func(path, src string, bag *report.Bag) (*syntax.Program, error)

// DefaultParse is the parser used by the command-line commands.  A front end
// links itself in by assigning it before Execute runs.
var DefaultParse ParseFunc

// Driver runs the compilation pipeline over one source file.
type Driver struct {
	Parse  ParseFunc
	Config codegen.Config
	Log    *zap.Logger
}

// Result holds the artifacts of one driver run.
type Result struct {
	Program   *semast.Program
	Symbols   *symbols.Table
	Package   *qsast.Package
	Signature *codegen.OperationSignature

	Bag     *report.Bag
	Sources *report.SourceMap
}

// Check parses and lowers the file without generating code.
func (d *Driver) Check(path string) (res *Result, err error) {
	defer report.CatchICE(&err)

	if d.Parse == nil {
		return nil, errors.New("no parser is registered")
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	res = &Result{
		Bag:     report.NewBag(),
		Sources: report.NewSourceMap(),
	}
	res.Sources.Add(path, string(src))

	prog, err := d.Parse(path, string(src), res.Bag)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	d.log().Debug("parsed source", zap.String("path", path))

	l := lower.New(path, res.Bag)
	res.Program = l.Lower(prog)
	res.Symbols = l.Symbols()

	d.log().Debug("lowered program",
		zap.String("path", path),
		zap.Int("diagnostics", len(res.Bag.Diagnostics())))

	return res, nil
}

// Compile runs the full pipeline: parse, lower, and generate.  Code is only
// generated when lowering produced no errors.
func (d *Driver) Compile(path string) (res *Result, err error) {
	res, err = d.Check(path)
	if err != nil || res.Bag.HasErrors() {
		return res, err
	}

	defer report.CatchICE(&err)

	compiler := codegen.New(d.Config, path, res.Bag, d.log())
	res.Package, res.Signature = compiler.Compile(res.Program, res.Symbols)

	return res, nil
}

func (d *Driver) log() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}

	return d.Log
}
