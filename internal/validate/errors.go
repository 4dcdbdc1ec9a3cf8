package validate

// ValidationError describes the first field constraint violated by a payload.
// Validators never aggregate: the first failure wins.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func failf(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
