package apperror

import "fmt"

// AppError is the one error type that crosses a service boundary. Each module
// declares its sentinels in an errors/ package; handlers flatten whatever
// bubbles up with ToHTTP.
type AppError struct {
	Code       string // stable machine-readable code, see codes.go
	Message    string // safe to show to the caller
	HTTPStatus int
	Err        error // underlying cause, optional
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds a sentinel. Sentinels live as package-level vars so errors.Is
// works across module boundaries.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}
