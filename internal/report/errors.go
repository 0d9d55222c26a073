package report

import "fmt"

// ParseError is a single-line diagnostic carrying a file position, fatal
// for the invocation.
type ParseError struct {
	Message string
	Span    *Span
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.String(), e.Message)
}

// Raise constructs a *ParseError at the given span, printf-style.
func Raise(span *Span, format string, args ...interface{}) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Span: span}
}

// ModelErrorKind enumerates the Modeller's error subkinds.
type ModelErrorKind int

const (
	UnknownIdentifier ModelErrorKind = iota
	TypeMismatch
	ArityMismatch
	BadAtomicBlock
	DuplicateName
	ConstraintScopeViolation
)

func (k ModelErrorKind) String() string {
	switch k {
	case UnknownIdentifier:
		return "UnknownIdentifier"
	case TypeMismatch:
		return "TypeMismatch"
	case ArityMismatch:
		return "ArityMismatch"
	case BadAtomicBlock:
		return "BadAtomicBlock"
	case DuplicateName:
		return "DuplicateName"
	case ConstraintScopeViolation:
		return "ConstraintScopeViolation"
	default:
		return "Unknown"
	}
}

// ModelError is a structured error produced by the Modeller. Expected/Got
// are populated for TypeMismatch and ArityMismatch; Name is populated for
// UnknownIdentifier/DuplicateName/ConstraintScopeViolation; Where is free
// text naming the offending construct.
type ModelError struct {
	Kind     ModelErrorKind
	Name     string
	Expected string
	Got      string
	Where    string
	Span     *Span
}

func (e *ModelError) Error() string {
	switch e.Kind {
	case UnknownIdentifier:
		return fmt.Sprintf("unknown identifier %q", e.Name)
	case TypeMismatch:
		return fmt.Sprintf("type mismatch in %s: expected %s but got %s", e.Where, e.Expected, e.Got)
	case ArityMismatch:
		return fmt.Sprintf("arity mismatch for %q: expected %s arguments but got %s", e.Name, e.Expected, e.Got)
	case BadAtomicBlock:
		return fmt.Sprintf("malformed atomic block: %s", e.Where)
	case DuplicateName:
		return fmt.Sprintf("duplicate name %q in scope %s", e.Name, e.Where)
	case ConstraintScopeViolation:
		return fmt.Sprintf("thread-local %q may not appear in a proof-global constraint", e.Name)
	default:
		return fmt.Sprintf("model error: %s", e.Where)
	}
}

// GraphError indicates a structurally malformed Model reached the Grapher.
// This should be unreachable from valid Modeller output: any occurrence is
// a bug, not a user error.
type GraphError struct {
	Method string
	Reason string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("internal error: malformed body for method %q: %s", e.Method, e.Reason)
}
