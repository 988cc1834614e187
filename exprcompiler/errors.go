package exprcompiler

import "fmt"

// TranslateError reports a compiler failure: node content missing, an
// unreachable node/dependency variant, or an expectation violated while
// still inside compile time (as opposed to InterpretationError, which
// wraps a failure discovered later, while a Func closure runs).
type TranslateError struct {
	Msg   string
	Cause error
}

func (e *TranslateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("exprcompiler: %s: %v", e.Msg, e.Cause)
	}
	return fmt.Sprintf("exprcompiler: %s", e.Msg)
}

func (e *TranslateError) Unwrap() error { return e.Cause }
