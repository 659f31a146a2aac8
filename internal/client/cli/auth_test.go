package cli

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/panelkeeper/internal/client/api"
	"github.com/dmitrijs2005/panelkeeper/internal/client/config"
	"github.com/dmitrijs2005/panelkeeper/internal/client/models"
	"github.com/dmitrijs2005/panelkeeper/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/panelkeeper/internal/client/services"
	"github.com/dmitrijs2005/panelkeeper/internal/logging"

	_ "modernc.org/sqlite"
)

func makeToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

// newTestApp builds an App against an httptest server and an in-memory
// token store, bypassing NewApp's filesystem setup.
func newTestApp(t *testing.T, handler http.HandlerFunc) *App {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL

	apiClient := api.NewRESTClient(cfg.APIBaseURL, cfg.RequestTimeout)
	repo := tokens.NewSQLiteRepository(db)
	tokenService := services.NewTokenService(repo, apiClient, logger, cfg.RefreshMargin)
	t.Cleanup(tokenService.ClearRefreshSchedule)
	sessionService := services.NewSessionService(tokenService, apiClient, logger, nil)

	return &App{
		config:  cfg,
		session: sessionService,
		admin:   services.NewAdminService(tokenService, apiClient),
		reader:  bufio.NewReader(strings.NewReader("")),
	}
}

func stubInput(t *testing.T, email, password string) {
	t.Helper()
	oldText, oldPw := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = oldText, oldPw })
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return email, nil }
	getPassword = func(_ io.Writer) (string, error) { return password, nil }
}

func TestLoginCommand_Success(t *testing.T) {
	tok := makeToken(t, time.Now().Add(time.Hour))
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/auth":
			json.NewEncoder(w).Encode(models.AuthResponse{AccessToken: tok})
		case r.Method == http.MethodGet && r.URL.Path == "/auth":
			json.NewEncoder(w).Encode(models.User{ID: "1", Name: "Ann", Email: "a@x.com"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	stubInput(t, "a@x.com", "secret")

	require.NoError(t, app.Login(context.Background()))
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "(a@x.com)", app.getStatus())
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	})
	stubInput(t, "a@x.com", "bad")

	require.NoError(t, app.Login(context.Background()))
	assert.False(t, app.isLoggedIn())
	assert.Empty(t, app.getStatus())
}

func TestLogoutCommand_ClearsSession(t *testing.T) {
	tok := makeToken(t, time.Now().Add(time.Hour))
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/auth":
			json.NewEncoder(w).Encode(models.AuthResponse{AccessToken: tok})
		case r.Method == http.MethodGet && r.URL.Path == "/auth":
			json.NewEncoder(w).Encode(models.User{ID: "1", Name: "Ann", Email: "a@x.com"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	stubInput(t, "a@x.com", "secret")

	ctx := context.Background()
	require.NoError(t, app.Login(ctx))
	require.True(t, app.isLoggedIn())

	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.isLoggedIn())
}

func TestListUsersCommand_RequiresAuth(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := app.ListUsers(context.Background())
	require.Error(t, err)
}
