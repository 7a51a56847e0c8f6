package store

// ValidationError reports malformed input caught before any request is
// sent.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "invalid input: " + e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// AuthenticationError reports a rejected login. The session remains
// anonymous.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// RegistrationError reports a rejected registration.
type RegistrationError struct {
	Message string
}

func (e *RegistrationError) Error() string { return e.Message }
