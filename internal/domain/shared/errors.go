package shared

// Error codes shared across the domain. The interface layer maps these to
// HTTP statuses.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeEmptyDocument       = "EMPTY_DOCUMENT"
	CodeInsufficientStock   = "INSUFFICIENT_STOCK"
	CodeDuplicateIdentifier = "DUPLICATE_IDENTIFIER"
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidState        = "INVALID_STATE"
	CodePersistence         = "PERSISTENCE_ERROR"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a VALIDATION_ERROR naming the offending field
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
		Field:   field,
	}
}

// NewPersistenceError wraps a storage-layer failure into a domain error.
// The underlying cause is logged at the infrastructure boundary, not surfaced.
func NewPersistenceError(message string) *DomainError {
	return &DomainError{
		Code:    CodePersistence,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrDuplicateIdentifier = NewDomainError(CodeDuplicateIdentifier, "Identifier already in use")
	ErrEmptyDocument       = NewDomainError(CodeEmptyDocument, "A document must have at least one valid line")
	ErrInsufficientStock   = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
)
