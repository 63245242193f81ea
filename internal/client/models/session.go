// Package models holds the client-side data types.
package models

import "time"

// Session is a saved login for one server.
type Session struct {
	Server   string
	UserName string
	Token    string
	SavedAt  time.Time
}
