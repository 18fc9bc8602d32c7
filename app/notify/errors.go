package notify

import "errors"

// TransientError marks a delivery failure worth retrying (rate limits,
// upstream hiccups, network errors).
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient channel error: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// PermanentError marks a delivery failure that retrying cannot fix
// (invalid recipient, revoked credentials).
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return "permanent channel error: " + e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

func IsPermanent(err error) bool {
	var permanent *PermanentError
	return errors.As(err, &permanent)
}
