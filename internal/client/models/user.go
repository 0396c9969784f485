package models

import (
	"errors"
	"fmt"
	"strings"
)

// User is the identity and balance record returned by the backend.
// It is replaced wholesale on every balance-affecting response.
type User struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	EnergyBalance int64  `json:"energy_balance"`
	IsAdmin       bool   `json:"is_admin"`
	CreatedAt     string `json:"created_at,omitempty"`
}

var ErrInvalidUser = errors.New("invalid user record")

// Validate reports whether u is a usable session record.
func (u User) Validate() error {
	switch {
	case u.ID <= 0:
		return fmt.Errorf("%w: id %d", ErrInvalidUser, u.ID)
	case strings.TrimSpace(u.Email) == "":
		return fmt.Errorf("%w: empty email", ErrInvalidUser)
	case u.EnergyBalance < 0:
		return fmt.Errorf("%w: negative balance %d", ErrInvalidUser, u.EnergyBalance)
	}
	return nil
}

// WithBalance returns a copy of u carrying the given balance.
func (u User) WithBalance(balance int64) User {
	u.EnergyBalance = balance
	return u
}
