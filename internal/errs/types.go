package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

// ValidationError means the request was well-formed but carried no usable subject.
type ValidationError struct {
	ErrorMessage
}

// MalformedBodyError means the request body could not be parsed as JSON.
type MalformedBodyError struct {
	ErrorMessage
}

// ExternalServiceError is a failure talking to the generation backend.
// Transient errors never reached a usable backend response.
type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
	Err       error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewMalformedBodyError(message string) *MalformedBodyError {
	return &MalformedBodyError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewUnavailableError(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: service + " service unavailable"},
		Service:      service,
		Transient:    true,
		Err:          err,
	}
}

func NewUpstreamError(service, message string) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: service + " service error: " + message},
		Service:      service,
	}
}
