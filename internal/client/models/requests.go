package models

import "fmt"

// AuthAction selects the auth endpoint variant.
type AuthAction string

const (
	ActionLogin    AuthAction = "login"
	ActionRegister AuthAction = "register"
)

func (a AuthAction) Valid() bool {
	return a == ActionLogin || a == ActionRegister
}

// Toggle switches between login and register, the way the form tabs do.
func (a AuthAction) Toggle() AuthAction {
	if a == ActionRegister {
		return ActionLogin
	}
	return ActionRegister
}

// AdminAction selects the admin endpoint POST variant.
type AdminAction string

const (
	ActionUpdateBalance AdminAction = "update_balance"
)

func (a AdminAction) Valid() bool {
	return a == ActionUpdateBalance
}

type AuthRequest struct {
	Action   AuthAction `json:"action"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
}

func (r AuthRequest) Validate() error {
	if !r.Action.Valid() {
		return fmt.Errorf("unknown auth action %q", r.Action)
	}
	return nil
}

// UpdateBalanceRequest is an absolute balance overwrite, never a delta.
type UpdateBalanceRequest struct {
	Action     AdminAction `json:"action"`
	UserID     int64       `json:"user_id"`
	NewBalance int64       `json:"new_balance"`
}

func NewUpdateBalanceRequest(userID, newBalance int64) UpdateBalanceRequest {
	return UpdateBalanceRequest{Action: ActionUpdateBalance, UserID: userID, NewBalance: newBalance}
}

func (r UpdateBalanceRequest) Validate() error {
	if !r.Action.Valid() {
		return fmt.Errorf("unknown admin action %q", r.Action)
	}
	return nil
}

type GenerateRequest struct {
	UserID int64  `json:"user_id"`
	Prompt string `json:"prompt"`
}
