// Package models holds the server-side record types persisted in postgres.
package models

import "time"

// Credential is the authentication view of an employee row: the columns the
// auth subsystem reads and writes. Immutable after registration.
type Credential struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
