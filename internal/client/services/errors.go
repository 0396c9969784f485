package services

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/sitegen/internal/client/client"
	"github.com/dmitrijs2005/sitegen/internal/common"
)

// ValidationError is a local input rejection; no request was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	ErrEmptyPrompt      = &ValidationError{Field: "prompt", Message: common.MsgEmptyPrompt}
	ErrEmptyCredentials = &ValidationError{Field: "credentials", Message: common.MsgCredentials}

	// ErrInsufficientEnergy is wrapped by GenerationError when the endpoint
	// refuses a generation because the balance is below its cost.
	ErrInsufficientEnergy = errors.New("not enough energy")

	// ErrNotLoggedIn is wrapped when an operation needs a session and there is none.
	ErrNotLoggedIn = errors.New("not logged in")
)

// AuthError is a failed login or registration. Message is user-facing.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return "auth: " + e.Message + ": " + errText(e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

// AdminError is a failed admin listing or balance update.
type AdminError struct {
	Message string
	Err     error
}

func (e *AdminError) Error() string { return "admin: " + e.Message + ": " + errText(e.Err) }
func (e *AdminError) Unwrap() error { return e.Err }

// GenerationError is a failed generation request.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string { return "generate: " + e.Message + ": " + errText(e.Err) }
func (e *GenerationError) Unwrap() error { return e.Err }

func errText(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

// UserMessage extracts the text to show the user for err.
func UserMessage(err error) string {
	var (
		ve  *ValidationError
		ae  *AuthError
		ade *AdminError
		ge  *GenerationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &ae):
		return ae.Message
	case errors.As(err, &ade):
		return ade.Message
	case errors.As(err, &ge):
		return ge.Message
	case errors.Is(err, client.ErrUnavailable):
		return common.MsgConnectivity
	}
	return common.MsgGeneric
}

// remoteMessage picks the message for a failed endpoint call: connectivity
// for transport failures, the server's own text when it sent one, else
// fallback.
func remoteMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return common.MsgConnectivity
	case errors.Is(err, client.ErrNotConfigured):
		return common.MsgNotConfigured
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		if apiErr.Details != "" {
			return apiErr.Message + ": " + apiErr.Details
		}
		return apiErr.Message
	}
	return fallback
}

func isInsufficientEnergy(err error) bool {
	var apiErr *client.APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden
}
