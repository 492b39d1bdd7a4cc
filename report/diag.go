package report

import "fmt"

// Diagnostic is a single source-mapped compilation message.  Diagnostics are
// never fatal: lowering and compilation accumulate them and keep going so that
// one pass over a program surfaces as many problems as possible.
type Diagnostic struct {
	// The stable code identifying the kind of problem, eg. "RedefinedSymbol".
	Code string

	// The human-readable message.
	Message string

	// The representative path of the source file the diagnostic refers to.
	Path string

	// The span of the offending source text.  May be nil when no position
	// information is available.
	Span *TextSpan

	// Whether the diagnostic is a warning rather than an error.
	IsWarning bool
}

func (d *Diagnostic) Error() string {
	if d.Span == nil {
		return fmt.Sprintf("%s: %s", d.Path, d.Message)
	}

	return fmt.Sprintf("%s:%d:%d: %s", d.Path, d.Span.StartLine+1, d.Span.StartCol+1, d.Message)
}

// -----------------------------------------------------------------------------

// Bag collects the diagnostics produced while processing one compilation
// unit.  A bag is single-owner: it is created alongside the lowerer or
// compiler that fills it and read out once that phase completes.
type Bag struct {
	diags []*Diagnostic
}

// NewBag creates a new empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{}
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(d *Diagnostic) {
	b.diags = append(b.diags, d)
}

// Addf builds an error diagnostic from a code, path, span, and format string
// and appends it to the bag.
func (b *Bag) Addf(code, path string, span *TextSpan, msg string, args ...interface{}) {
	b.Add(&Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(msg, args...),
		Path:    path,
		Span:    span,
	})
}

// Warnf builds a warning diagnostic and appends it to the bag.
func (b *Bag) Warnf(code, path string, span *TextSpan, msg string, args ...interface{}) {
	b.Add(&Diagnostic{
		Code:      code,
		Message:   fmt.Sprintf(msg, args...),
		Path:      path,
		Span:      span,
		IsWarning: true,
	})
}

// Diagnostics returns all collected diagnostics in insertion order.
func (b *Bag) Diagnostics() []*Diagnostic {
	return b.diags
}

// HasErrors returns whether the bag contains at least one error.
func (b *Bag) HasErrors() bool {
	for _, d := range b.diags {
		if !d.IsWarning {
			return true
		}
	}

	return false
}

// CountCode returns the number of diagnostics carrying the given code.
func (b *Bag) CountCode(code string) int {
	n := 0
	for _, d := range b.diags {
		if d.Code == code {
			n++
		}
	}

	return n
}
