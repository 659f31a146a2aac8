package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/panelkeeper/internal/client/api"
	"github.com/dmitrijs2005/panelkeeper/internal/client/models"
	"github.com/dmitrijs2005/panelkeeper/internal/logging"
)

// MsgTokenExpired is the user-visible error set when a persisted token is
// past its expiry at session-check time.
const MsgTokenExpired = "Token expired"

// Navigation targets signalled to the navigate callback.
const (
	RouteDashboard = "dashboard"
	RouteLogin     = "login"
)

// SessionService is the single source of truth for the authenticated-user
// snapshot. It orchestrates login, logout and session checks, and reacts to
// scheduled token refreshes by re-checking the session.
//
// The session starts in the loading state and transitions to either
// authenticated or unauthenticated on every CheckAuth/Login/Logout. API
// failures never escape as errors: they become the snapshot's Err field.
type SessionService struct {
	tokens   *TokenService
	api      api.Client
	log      logging.Logger
	navigate func(route string)

	mu    sync.Mutex
	state models.Session
}

// NewSessionService wires the coordinator. navigate may be nil when no
// navigation signalling is wanted (e.g. in tests).
func NewSessionService(tokenService *TokenService, apiClient api.Client, log logging.Logger, navigate func(route string)) *SessionService {
	return &SessionService{
		tokens:   tokenService,
		api:      apiClient,
		log:      log,
		navigate: navigate,
		state:    models.Session{Loading: true},
	}
}

// Snapshot returns a copy of the current session state.
func (s *SessionService) Snapshot() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.state
	if s.state.User != nil {
		u := *s.state.User
		snap.User = &u
	}
	return snap
}

func (s *SessionService) setLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = true
	s.state.Err = ""
}

func (s *SessionService) setAuthenticated(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = models.Session{User: user, IsAuthenticated: true}
}

func (s *SessionService) setUnauthenticated(errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = models.Session{Err: errMsg}
}

// CheckAuth re-derives the session from the persisted token.
//
// No token: unauthenticated with no error and no network calls. Expired or
// malformed token: the token is removed and the session reads "Token
// expired". A valid token arms the refresh schedule and fetches the
// profile; a profile-fetch failure surfaces its message and leaves the
// session unauthenticated.
func (s *SessionService) CheckAuth(ctx context.Context) models.Session {
	s.setLoading()

	token := s.tokens.GetToken(ctx)
	if token == "" {
		s.setUnauthenticated("")
		return s.Snapshot()
	}

	if !s.tokens.IsTokenValid(token) {
		s.tokens.RemoveToken(ctx)
		s.setUnauthenticated(MsgTokenExpired)
		return s.Snapshot()
	}

	s.tokens.ScheduleRefresh(ctx, token, s.onTokenRefreshed)

	user, err := s.api.GetProfile(ctx, token)
	if err != nil {
		s.setUnauthenticated(err.Error())
		return s.Snapshot()
	}

	s.setAuthenticated(user)
	return s.Snapshot()
}

// Login exchanges credentials for a token, persists it, and re-checks the
// session. On rejected credentials the token store is left untouched and
// the server's message becomes the session error. A successful exchange
// signals navigation to the dashboard.
func (s *SessionService) Login(ctx context.Context, email string, password string) models.Session {
	s.setLoading()

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.setUnauthenticated(err.Error())
		return s.Snapshot()
	}

	s.tokens.SetToken(ctx, resp.AccessToken)
	snap := s.CheckAuth(ctx)

	if s.navigate != nil {
		s.navigate(RouteDashboard)
	}
	return snap
}

// Logout disarms the refresh schedule, clears the token store (in that
// order: a timer firing after storage is cleared could re-persist a stale
// token) and resets the session. It never fails; cleanup steps that find
// nothing to do are no-ops.
func (s *SessionService) Logout(ctx context.Context) models.Session {
	s.setLoading()

	s.tokens.ClearRefreshSchedule()
	s.tokens.RemoveToken(ctx)

	s.setUnauthenticated("")

	if s.navigate != nil {
		s.navigate(RouteLogin)
	}
	return s.Snapshot()
}

// ClearError clears the session's error message without touching the
// authentication state.
func (s *SessionService) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = ""
}

// onTokenRefreshed runs on the refresh-timer goroutine after a successful
// silent refresh; it refetches the profile so the snapshot stays current.
func (s *SessionService) onTokenRefreshed() {
	s.CheckAuth(context.Background())
}
