package emit

import "fmt"

// ContractError reports a violated emission contract: unbalanced or misplaced
// indentation, a write-target mismatch after an annotated region, name access
// before assignment, or writes after finalize. These indicate a bug in the
// calling emitter rather than a data condition, so they are delivered by
// panic and must not be caught and continued.
type ContractError struct {
	Op     string
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("emit: %s: %s", e.Op, e.Reason)
}

func contractViolation(op, format string, args ...any) {
	panic(&ContractError{Op: op, Reason: fmt.Sprintf(format, args...)})
}
