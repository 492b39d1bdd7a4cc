package report

import "fmt"

// InternalError marks a violated internal invariant: a condition that only a
// bug in the compiler itself can produce, never erroneous input.  Internal
// errors bubble as panics so that the offending phase aborts immediately; they
// are deliberately not part of the Diagnostic taxonomy.
type InternalError struct {
	Message string
}

func (ie *InternalError) Error() string {
	return "internal compiler error: " + ie.Message
}

// ICE panics with an internal compiler error.
// NB: Only call this for conditions that indicate the input contract was
// violated upstream (eg. a syntax node shape the grammar cannot produce).
func ICE(msg string, args ...interface{}) {
	panic(&InternalError{Message: fmt.Sprintf(msg, args...)})
}

// CatchICE recovers from an internal compiler error, converts it to a regular
// Go error through the given pointer, and lets every other panic continue to
// unwind.
// NB: This function must ALWAYS be deferred.
func CatchICE(err *error) {
	if x := recover(); x != nil {
		if ie, ok := x.(*InternalError); ok {
			*err = ie
		} else {
			panic(x)
		}
	}
}
