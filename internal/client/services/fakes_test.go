package services

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/sitegen/internal/client/models"
	"github.com/dmitrijs2005/sitegen/internal/client/session"
	"github.com/dmitrijs2005/sitegen/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	AuthRet *models.User
	AuthErr error

	ListRet []models.User
	ListErr error

	UpdateRet *models.User
	UpdateErr error

	GenerateRet *models.Generation
	GenerateErr error

	AuthCalls     int
	UpdateCalls   int
	GenerateCalls int

	LastAuth        models.AuthRequest
	LastAdminEmail  string
	LastUpdate      models.UpdateBalanceRequest
	LastGenerateReq models.GenerateRequest
}

func (f *fakeClient) Authenticate(_ context.Context, req models.AuthRequest) (*models.User, error) {
	f.AuthCalls++
	f.LastAuth = req
	return f.AuthRet, f.AuthErr
}

func (f *fakeClient) ListUsers(_ context.Context, adminEmail string) ([]models.User, error) {
	f.LastAdminEmail = adminEmail
	return f.ListRet, f.ListErr
}

func (f *fakeClient) UpdateBalance(_ context.Context, adminEmail string, req models.UpdateBalanceRequest) (*models.User, error) {
	f.UpdateCalls++
	f.LastAdminEmail = adminEmail
	f.LastUpdate = req
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) Generate(_ context.Context, req models.GenerateRequest) (*models.Generation, error) {
	f.GenerateCalls++
	f.LastGenerateReq = req
	return f.GenerateRet, f.GenerateErr
}

// ---- storage ----

type memStorage struct {
	mu     sync.Mutex
	data   map[string][]byte
	SetErr error
}

func (m *memStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memStorage) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.data[key] = value
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// newStore returns a store already holding u when u is non-nil.
func newStore(t *testing.T, u *models.User) (*session.Store, *memStorage) {
	t.Helper()
	st := &memStorage{data: map[string][]byte{}}
	s := session.NewStore(st, logging.NewNop())
	if u != nil {
		require.NoError(t, s.Save(context.Background(), u))
	}
	return s, st
}
