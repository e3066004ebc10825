package apperror

// Codes carried in the error envelope. Clients key off these strings, so
// renaming one is a breaking API change.
const (
	CodeInvalidInput = "INVALID_INPUT" // malformed or missing request data
	CodeUnauthorized = "UNAUTHORIZED"  // no usable identity on the request
	CodeForbidden    = "FORBIDDEN"     // identity known, action not allowed
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"      // duplicate check-in, key already in flight
	CodeInvalidState = "INVALID_STATE" // a lifecycle guard rejected the transition

	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
