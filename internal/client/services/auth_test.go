package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/sitegen/internal/client/client"
	"github.com/dmitrijs2005/sitegen/internal/client/models"
	"github.com/dmitrijs2005/sitegen/internal/common"
	"github.com/dmitrijs2005/sitegen/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate_LoginSavesSession(t *testing.T) {
	fc := &fakeClient{AuthRet: &models.User{ID: 1, Email: "a@b.com", EnergyBalance: 100}}
	store, _ := newStore(t, nil)
	svc := NewAuthService(fc, store, logging.NewNop())

	u, err := svc.Authenticate(context.Background(), models.ActionLogin, "  a@b.com ", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, int64(100), u.EnergyBalance)

	assert.Equal(t, models.AuthRequest{Action: models.ActionLogin, Email: "a@b.com", Password: "pw"}, fc.LastAuth)

	cur, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, *u, cur)
}

func TestAuthenticate_LocalValidation(t *testing.T) {
	tests := []struct {
		name     string
		mode     models.AuthAction
		email    string
		password []byte
	}{
		{"unknown mode", models.AuthAction("sso"), "a@b.com", []byte("pw")},
		{"blank email", models.ActionLogin, "   ", []byte("pw")},
		{"empty password", models.ActionRegister, "a@b.com", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{}
			store, _ := newStore(t, nil)
			_, err := NewAuthService(fc, store, logging.NewNop()).Authenticate(context.Background(), tt.mode, tt.email, tt.password)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Zero(t, fc.AuthCalls)
		})
	}
}

func TestAuthenticate_ServerMessageIsShown(t *testing.T) {
	fc := &fakeClient{AuthErr: &client.APIError{Op: "auth", Status: 400, Message: "User already exists"}}
	store, _ := newStore(t, nil)

	_, err := NewAuthService(fc, store, logging.NewNop()).Authenticate(context.Background(), models.ActionRegister, "a@b.com", []byte("pw"))

	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "User already exists", ae.Message)
	assert.Equal(t, "User already exists", UserMessage(err))

	_, ok := store.Current()
	assert.False(t, ok)
}

func TestAuthenticate_FallbackAndConnectivityMessages(t *testing.T) {
	store, _ := newStore(t, nil)

	fc := &fakeClient{AuthErr: &client.APIError{Op: "auth", Status: 500}}
	_, err := NewAuthService(fc, store, logging.NewNop()).Authenticate(context.Background(), models.ActionLogin, "a@b.com", []byte("pw"))
	assert.Equal(t, common.MsgGeneric, UserMessage(err))

	fc = &fakeClient{AuthErr: &client.TransportError{Op: "auth", Err: errors.New("connection refused")}}
	_, err = NewAuthService(fc, store, logging.NewNop()).Authenticate(context.Background(), models.ActionLogin, "a@b.com", []byte("pw"))
	assert.Equal(t, common.MsgConnectivity, UserMessage(err))
	assert.ErrorIs(t, err, client.ErrUnavailable)
}

func TestAuthenticate_InvalidUserRecordRejected(t *testing.T) {
	fc := &fakeClient{AuthRet: &models.User{ID: 0, Email: "a@b.com"}}
	store, _ := newStore(t, nil)

	_, err := NewAuthService(fc, store, logging.NewNop()).Authenticate(context.Background(), models.ActionLogin, "a@b.com", []byte("pw"))
	require.ErrorIs(t, err, models.ErrInvalidUser)

	_, ok := store.Current()
	assert.False(t, ok)
}

func TestAuthenticate_SaveFailure(t *testing.T) {
	fc := &fakeClient{AuthRet: &models.User{ID: 1, Email: "a@b.com", EnergyBalance: 100}}
	store, st := newStore(t, nil)
	st.SetErr = errors.New("disk full")

	_, err := NewAuthService(fc, store, logging.NewNop()).Authenticate(context.Background(), models.ActionLogin, "a@b.com", []byte("pw"))
	require.ErrorIs(t, err, st.SetErr)

	_, ok := store.Current()
	assert.False(t, ok)
}

func TestLogout_ClearsSession(t *testing.T) {
	store, st := newStore(t, &models.User{ID: 1, Email: "a@b.com", EnergyBalance: 100})

	require.NoError(t, NewAuthService(&fakeClient{}, store, logging.NewNop()).Logout(context.Background()))

	_, ok := store.Current()
	assert.False(t, ok)
	assert.Empty(t, st.data)
}
