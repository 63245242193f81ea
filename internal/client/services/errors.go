package services

import "errors"

// Outcome names as sent by the server.
const (
	OutcomeNotFound        = "not_found"
	OutcomeInvalidPassword = "invalid_password"
	OutcomeDuplicate       = "duplicate"
)

// RemoteError is a request the server answered with Success == false.
type RemoteError struct {
	Outcome string
	Message string
}

func newRemoteError(outcome, message string) *RemoteError {
	return &RemoteError{Outcome: outcome, Message: message}
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return e.Outcome
	}
	return e.Message
}

// IsOutcome reports whether err wraps a RemoteError with the given outcome.
func IsOutcome(err error, outcome string) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Outcome == outcome
}
