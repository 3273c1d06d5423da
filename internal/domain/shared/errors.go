package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so wrapped copies of the
// common errors still match errors.Is checks.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors.
//
// ErrNotFound covers both a missing row and a row owned by another user;
// callers must never be able to tell the two apart.
var (
	ErrNotFound        = NewDomainError("NOT_FOUND", "Resource not found")
	ErrUnauthenticated = NewDomainError("UNAUTHENTICATED", "Not authenticated")
	ErrAlreadyExists   = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput    = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState    = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// CodePlanLimitExceeded is used when a free plan ceiling blocks an insert
const CodePlanLimitExceeded = "PLAN_LIMIT_EXCEEDED"
