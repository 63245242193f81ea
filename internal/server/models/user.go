package models

import "time"

// User is an account. PasswordHash is HMAC-SHA512 of the password keyed
// with PasswordSalt.
type User struct {
	ID           int64
	UserName     string
	PasswordHash []byte
	PasswordSalt []byte
	CreatedAt    time.Time
}
