package inspection

// Error codes surfaced in api.ErrorPayload.Error. Tool operations never
// raise at the boundary — every failure becomes a payload carrying one of
// these codes. Host failures inside a traversal are the exception: they are
// absorbed where they occur and are visible only through the diagnostic
// sink and the event stream.
const (
	ErrCodeInvalidCredential = "invalid_credential"
	ErrCodeInvalidRequest    = "invalid_request"
	ErrCodeNotFound          = "not_found"
	ErrCodeHostCallFailure   = "host_call_failure"
	ErrCodeUnexpectedFailure = "unexpected_failure"
)

// InvalidCredentialError is returned by a HostProvider when no usable
// credential is available for a request.
type InvalidCredentialError struct{}

// Error implements the error interface.
func (InvalidCredentialError) Error() string { return "missing or empty credential" }
