// Package services contains the server-side business logic: the credential
// manager (registration, login, password reset) and the character store.
package services

import "fmt"

// Outcome tells a caller which branch an operation took without parsing
// Message.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeInvalidPassword
	OutcomeDuplicate
)

var outcomeNames = [...]string{"ok", "not_found", "invalid_password", "duplicate"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

func (o Outcome) MarshalText() ([]byte, error) {
	if o < 0 || int(o) >= len(outcomeNames) {
		return nil, fmt.Errorf("unknown outcome %d", int(o))
	}
	return []byte(outcomeNames[o]), nil
}

func (o *Outcome) UnmarshalText(b []byte) error {
	for i, name := range outcomeNames {
		if name == string(b) {
			*o = Outcome(i)
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", string(b))
}

// User-facing messages.
const (
	MsgUserAlreadyExists    = "User Already Exists!"
	MsgUserNotFound         = "User not Found!"
	MsgIncorrectPassword    = "Incorrect Password!"
	MsgResetUserNotFound    = "User not found."
	MsgOldPasswordIncorrect = "Old password is incorrect."
)

func characterNotFoundMessage(id int64) string {
	return fmt.Sprintf("Character with Id '%d' not Found", id)
}

// ServiceResult is the envelope every credential and character operation
// returns. Data is meaningful only when Success is true.
type ServiceResult[T any] struct {
	Data    T       `json:"data"`
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Outcome Outcome `json:"outcome"`
}

func ok[T any](data T) *ServiceResult[T] {
	return &ServiceResult[T]{Data: data, Success: true, Outcome: OutcomeOK}
}

func fail[T any](outcome Outcome, msg string) *ServiceResult[T] {
	return &ServiceResult[T]{Success: false, Message: msg, Outcome: outcome}
}
