package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/panelkeeper/internal/client/models"
	"github.com/dmitrijs2005/panelkeeper/internal/logging"
)

// ---- helpers ----

// jwt/v5 truncates exp claims to whole seconds on both marshal and parse by
// default; the refresh-schedule tests mint sub-second expiries, so keep
// millisecond precision within this test binary.
func init() { jwt.TimePrecision = time.Millisecond }

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func makeToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func makeTokenWithoutExp(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "no-expiry",
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

// ---- fake repository ----

// fakeRepo implements tokens.Repository in memory. The optional hooks let
// tests observe call ordering.
type fakeRepo struct {
	mu     sync.Mutex
	values map[string]string

	GetErr    error
	SetErr    error
	DeleteErr error

	onDelete func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{values: map[string]string{}}
}

func (f *fakeRepo) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return "", f.GetErr
	}
	return f.values[key], nil
}

func (f *fakeRepo) Set(ctx context.Context, key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetErr != nil {
		return f.SetErr
	}
	f.values[key] = value
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	hook := f.onDelete
	if f.DeleteErr != nil {
		f.mu.Unlock()
		return f.DeleteErr
	}
	delete(f.values, key)
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return nil
}

func (f *fakeRepo) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = map[string]string{}
	return nil
}

// ---- fake API client ----

// fakeAPI implements api.Client for unit tests. Only the fields a test sets
// matter; everything else returns zero values.
type fakeAPI struct {
	mu sync.Mutex

	LoginResp *models.AuthResponse
	LoginErr  error

	ProfileResp *models.User
	ProfileErr  error

	RefreshResp *models.AuthResponse
	RefreshErr  error

	UsersResp []models.User
	UsersErr  error

	RolesResp []models.Role
	PermsResp []models.Permission

	LoginCalls   int
	ProfileCalls int
	RefreshCalls int

	LastLoginEmail    string
	LastLoginPassword string
	LastProfileToken  string
	LastRefreshToken  string
	LastCRUDToken     string
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	f.LastLoginEmail = email
	f.LastLoginPassword = password
	return f.LoginResp, f.LoginErr
}

func (f *fakeAPI) GetProfile(ctx context.Context, token string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ProfileCalls++
	f.LastProfileToken = token
	return f.ProfileResp, f.ProfileErr
}

func (f *fakeAPI) RefreshToken(ctx context.Context, token string) (*models.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RefreshCalls++
	f.LastRefreshToken = token
	return f.RefreshResp, f.RefreshErr
}

func (f *fakeAPI) snapshotCounts() (login, profile, refresh int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.LoginCalls, f.ProfileCalls, f.RefreshCalls
}

func (f *fakeAPI) setCRUDToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastCRUDToken = token
}

func (f *fakeAPI) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	f.setCRUDToken(token)
	return f.UsersResp, f.UsersErr
}

func (f *fakeAPI) GetUser(ctx context.Context, token, id string) (*models.User, error) {
	f.setCRUDToken(token)
	return &models.User{ID: id}, nil
}

func (f *fakeAPI) CreateUser(ctx context.Context, token string, user *models.User) (*models.User, error) {
	f.setCRUDToken(token)
	return user, nil
}

func (f *fakeAPI) UpdateUser(ctx context.Context, token string, user *models.User) (*models.User, error) {
	f.setCRUDToken(token)
	return user, nil
}

func (f *fakeAPI) DeleteUser(ctx context.Context, token, id string) error {
	f.setCRUDToken(token)
	return nil
}

func (f *fakeAPI) ListRoles(ctx context.Context, token string) ([]models.Role, error) {
	f.setCRUDToken(token)
	return f.RolesResp, nil
}

func (f *fakeAPI) GetRole(ctx context.Context, token, id string) (*models.Role, error) {
	f.setCRUDToken(token)
	return &models.Role{ID: id}, nil
}

func (f *fakeAPI) CreateRole(ctx context.Context, token string, role *models.Role) (*models.Role, error) {
	f.setCRUDToken(token)
	return role, nil
}

func (f *fakeAPI) UpdateRole(ctx context.Context, token string, role *models.Role) (*models.Role, error) {
	f.setCRUDToken(token)
	return role, nil
}

func (f *fakeAPI) DeleteRole(ctx context.Context, token, id string) error {
	f.setCRUDToken(token)
	return nil
}

func (f *fakeAPI) ListPermissions(ctx context.Context, token string) ([]models.Permission, error) {
	f.setCRUDToken(token)
	return f.PermsResp, nil
}

func (f *fakeAPI) GetPermission(ctx context.Context, token, id string) (*models.Permission, error) {
	f.setCRUDToken(token)
	return &models.Permission{ID: id}, nil
}

func (f *fakeAPI) CreatePermission(ctx context.Context, token string, perm *models.Permission) (*models.Permission, error) {
	f.setCRUDToken(token)
	return perm, nil
}

func (f *fakeAPI) UpdatePermission(ctx context.Context, token string, perm *models.Permission) (*models.Permission, error) {
	f.setCRUDToken(token)
	return perm, nil
}

func (f *fakeAPI) DeletePermission(ctx context.Context, token, id string) error {
	f.setCRUDToken(token)
	return nil
}
