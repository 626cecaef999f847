package domain

import "time"

// Auth event actions and outcomes recorded in the audit trail.
const (
	ActionRegister = "register"
	ActionLogin    = "login"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// AuthEvent represents a single authentication attempt for the audit trail.
type AuthEvent struct {
	Email     string
	Action    string
	Outcome   string
	Reason    string // failure reason, empty on success
	RemoteIP  string
	Timestamp time.Time
}
