package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/sitegen/internal/client/config"
	"github.com/dmitrijs2005/sitegen/internal/client/models"
	"github.com/dmitrijs2005/sitegen/internal/client/session"
	"github.com/dmitrijs2005/sitegen/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- storage ----

type memStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memStorage) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// ---- services ----

type fakeAuth struct {
	store *session.Store

	Ret *models.User
	Err error

	Calls        int
	LastMode     models.AuthAction
	LastEmail    string
	LastPassword string
	LogoutCalls  int
}

func (f *fakeAuth) Authenticate(ctx context.Context, mode models.AuthAction, email string, password []byte) (*models.User, error) {
	f.Calls++
	f.LastMode, f.LastEmail, f.LastPassword = mode, email, string(password)
	if f.Err != nil {
		return nil, f.Err
	}
	if err := f.store.Save(ctx, f.Ret); err != nil {
		return nil, err
	}
	return f.Ret, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.LogoutCalls++
	return f.store.Clear(ctx)
}

type fakeAdmin struct {
	store *session.Store

	ListRet []models.User
	ListErr error
	SetErr  error

	// calls records the order of remote operations.
	calls        []string
	LastSetID    int64
	LastSetValue int64
	LastTarget   models.User
	LastDelta    int64
}

func (f *fakeAdmin) ListUsers(context.Context) ([]models.User, error) {
	f.calls = append(f.calls, "list")
	return f.ListRet, f.ListErr
}

func (f *fakeAdmin) SetBalance(ctx context.Context, userID, newBalance int64) error {
	f.calls = append(f.calls, "set")
	f.LastSetID, f.LastSetValue = userID, newBalance
	if f.SetErr != nil {
		return f.SetErr
	}
	if me, ok := f.store.Current(); ok && me.ID == userID {
		return f.store.Update(ctx, func(u models.User) models.User { return u.WithBalance(newBalance) })
	}
	return nil
}

func (f *fakeAdmin) AddEnergy(ctx context.Context, target models.User, delta int64) (int64, error) {
	f.LastTarget, f.LastDelta = target, delta
	next := target.EnergyBalance + delta
	if err := f.SetBalance(ctx, target.ID, next); err != nil {
		return 0, err
	}
	return next, nil
}

type fakeGen struct {
	store *session.Store
	cost  int64

	Ret *models.Generation
	Err error

	Calls      int
	LastPrompt string
}

func (f *fakeGen) Generate(ctx context.Context, prompt string) (*models.Generation, error) {
	f.Calls++
	f.LastPrompt = prompt
	if f.Err != nil {
		return nil, f.Err
	}
	_ = f.store.Update(ctx, func(u models.User) models.User { return u.WithBalance(f.Ret.EnergyRemaining) })
	return f.Ret, nil
}

func (f *fakeGen) CanGenerate(balance int64) bool { return balance >= f.cost }
func (f *fakeGen) Cost() int64                    { return f.cost }

// ---- app ----

type testEnv struct {
	app   *App
	auth  *fakeAuth
	admin *fakeAdmin
	gen   *fakeGen
	out   *[]string
}

// output returns everything printed so far as one string.
func (e *testEnv) output() string { return strings.Join(*e.out, "\n") }

// newTestEnv builds an App over fakes; u, when non-nil, is the restored session.
func newTestEnv(t *testing.T, u *models.User) *testEnv {
	t.Helper()

	store := session.NewStore(&memStorage{data: map[string][]byte{}}, logging.NewNop())
	if u != nil {
		require.NoError(t, store.Save(context.Background(), u))
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ExportDir = t.TempDir()
	cfg.PreviewAddr = "127.0.0.1:0"

	env := &testEnv{
		auth:  &fakeAuth{store: store},
		admin: &fakeAdmin{store: store},
		gen:   &fakeGen{store: store, cost: 20},
		out:   &[]string{},
	}
	env.app = newApp(cfg, logging.NewNop(), store, env.auth, env.admin, env.gen)
	env.app.reader = bufio.NewReader(strings.NewReader(""))
	t.Cleanup(func() { _ = env.app.Close(context.Background()) })

	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = fmt.Sprint(v)
		}
		*env.out = append(*env.out, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })

	return env
}

func stubInputs(t *testing.T, email string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return email, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func stubMultiline(t *testing.T, text string) {
	t.Helper()
	orig := getMultiline
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	t.Cleanup(func() { getMultiline = orig })
}
