package service

import "gatekeeper/internal/entity"

// AppState is the user-facing application state, derived on every evaluation
// from session, role, profile and global settings. It is a closed enum so a
// new state cannot be added without every switch over it failing review.
type AppState int

const (
	StateUnauthenticated AppState = iota
	StateAwaitingVerification
	StatePendingApproval
	StateActive
	StateAdministrator
	StateMaintenance
)

func (s AppState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAwaitingVerification:
		return "awaiting_verification"
	case StatePendingApproval:
		return "pending_approval"
	case StateActive:
		return "active"
	case StateAdministrator:
		return "administrator"
	case StateMaintenance:
		return "maintenance"
	}
	return "unknown"
}

// StateInput is everything EvaluateState looks at. It is assembled fresh from
// the stores per evaluation; nothing here is cached between calls.
type StateInput struct {
	Authenticated bool
	EmailVerified bool
	IsAdmin       bool
	ProfileStatus entity.ProfileStatus
	Maintenance   bool
}

// EvaluateState computes the display state. Precedence: admin role wins over
// the maintenance flag and over approval status, so an operator is never
// locked out by their own flag; maintenance wins over approval; only an
// approved profile reaches Active.
func EvaluateState(input StateInput) AppState {
	if !input.Authenticated {
		return StateUnauthenticated
	}
	if !input.EmailVerified {
		return StateAwaitingVerification
	}
	if input.IsAdmin {
		return StateAdministrator
	}
	if input.Maintenance {
		return StateMaintenance
	}
	if input.ProfileStatus == entity.ProfileApproved {
		return StateActive
	}
	return StatePendingApproval
}
