package wizard

// ValidationError is raised by the DETAILS guard.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// CredentialError is raised when the access key does not match.
type CredentialError string

func (e CredentialError) Error() string { return string(e) }

const (
	ErrMissingAmount     = ValidationError("missing amount")
	ErrAddressTooShort   = ValidationError("address too short")
	ErrInvalidCredential = CredentialError("invalid credential")
)
