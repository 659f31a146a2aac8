// Package services contains the application services of the panelkeeper
// client. This file owns the access-token lifecycle: persistence, expiry
// validation, and the silent refresh schedule.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/panelkeeper/internal/client/api"
	"github.com/dmitrijs2005/panelkeeper/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/panelkeeper/internal/common"
	"github.com/dmitrijs2005/panelkeeper/internal/logging"
)

// DefaultRefreshMargin is how long before token expiry a refresh fires.
const DefaultRefreshMargin = time.Minute

// TokenService persists the current access token, validates its embedded
// expiry, and keeps at most one pending refresh timer alive per process.
//
// The token payload is decoded without signature verification: the client
// does not hold the signing secret, so the expiry claim is a scheduling
// heuristic, not a security boundary. The server re-validates every request.
type TokenService struct {
	repo   tokens.Repository
	api    api.Client
	log    logging.Logger
	margin time.Duration

	mu           sync.Mutex
	refreshTimer *time.Timer
	fireAt       time.Time
}

// NewTokenService binds the lifecycle to the given store and API client.
// A non-positive margin falls back to DefaultRefreshMargin.
func NewTokenService(repo tokens.Repository, apiClient api.Client, log logging.Logger, margin time.Duration) *TokenService {
	if margin <= 0 {
		margin = DefaultRefreshMargin
	}
	return &TokenService{repo: repo, api: apiClient, log: log, margin: margin}
}

// GetToken returns the persisted token, or "" when absent. Storage errors
// are logged and reported as an absent token; they never reach callers.
func (s *TokenService) GetToken(ctx context.Context) string {
	tok, err := s.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read token from storage", "error", err)
		return ""
	}
	return tok
}

// SetToken overwrites the persisted token.
func (s *TokenService) SetToken(ctx context.Context, token string) {
	if err := s.repo.Set(ctx, common.TokenStorageKey, token); err != nil {
		s.log.Error(ctx, "failed to persist token", "error", err)
	}
}

// RemoveToken clears the persisted token. Idempotent.
func (s *TokenService) RemoveToken(ctx context.Context) {
	if err := s.repo.Delete(ctx, common.TokenStorageKey); err != nil {
		s.log.Error(ctx, "failed to remove token", "error", err)
	}
}

// TokenExpirationTime decodes the token's payload and returns its expiry.
// Any parse failure, and a payload without an exp claim, yield
// common.ErrInvalidToken.
func (s *TokenService) TokenExpirationTime(token string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, common.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, common.ErrInvalidToken
	}
	return claims.ExpiresAt.Time, nil
}

// ValidateToken reports why a token is unusable: common.ErrInvalidToken when
// the payload does not decode or carries no expiry, common.ErrTokenExpired
// when the expiry is not strictly in the future. No clock-skew compensation
// is applied.
func (s *TokenService) ValidateToken(token string) error {
	exp, err := s.TokenExpirationTime(token)
	if err != nil {
		return err
	}
	if !exp.After(time.Now()) {
		return common.ErrTokenExpired
	}
	return nil
}

// IsTokenValid reports whether ValidateToken finds no fault.
func (s *TokenService) IsTokenValid(token string) bool {
	return s.ValidateToken(token) == nil
}

// ScheduleRefresh disarms any pending refresh timer and arms a new one at
// expiry minus the margin. A token that cannot be decoded, or whose fire
// instant is already in the past, is removed from storage instead and
// nothing is armed.
//
// When the timer fires, the token is exchanged via the API; on success the
// new token is persisted, onRefresh (if non-nil) is invoked, and the
// schedule re-arms against the new expiry. On failure the token is removed
// and the schedule stays disarmed, so the next session check lands
// unauthenticated.
func (s *TokenService) ScheduleRefresh(ctx context.Context, token string, onRefresh func()) {
	exp, decodeErr := s.TokenExpirationTime(token)

	// stop and arm in one critical section, or a concurrent caller could
	// arm in between and its timer would be overwritten unstopped
	s.mu.Lock()
	s.disarmLocked()

	if decodeErr != nil {
		s.mu.Unlock()
		s.log.Warn(ctx, "cannot schedule refresh for malformed token", "error", decodeErr)
		s.RemoveToken(ctx)
		return
	}

	fireAt := exp.Add(-s.margin)
	delay := time.Until(fireAt)
	if delay <= 0 {
		s.mu.Unlock()
		// expiring sooner than the margin, or already expired
		s.RemoveToken(ctx)
		return
	}

	s.fireAt = fireAt
	s.refreshTimer = time.AfterFunc(delay, func() { s.refresh(token, onRefresh) })
	s.mu.Unlock()
}

// disarmLocked stops and forgets the pending timer. Callers hold s.mu.
func (s *TokenService) disarmLocked() {
	if s.refreshTimer != nil {
		s.refreshTimer.Stop()
		s.refreshTimer = nil
	}
	s.fireAt = time.Time{}
}

// ClearRefreshSchedule cancels any pending refresh timer. Idempotent, safe
// from any state.
func (s *TokenService) ClearRefreshSchedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarmLocked()
}

// RefreshScheduled reports whether a refresh timer is currently armed and,
// if so, for when.
func (s *TokenService) RefreshScheduled() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fireAt, s.refreshTimer != nil
}

// refresh runs on the timer goroutine.
func (s *TokenService) refresh(token string, onRefresh func()) {
	s.mu.Lock()
	s.refreshTimer = nil
	s.fireAt = time.Time{}
	s.mu.Unlock()

	ctx := context.Background()

	resp, err := s.api.RefreshToken(ctx, token)
	if err != nil {
		s.log.Error(ctx, "failed to refresh token", "error", err)
		s.RemoveToken(ctx)
		return
	}

	s.SetToken(ctx, resp.AccessToken)
	if onRefresh != nil {
		onRefresh()
	}
	s.ScheduleRefresh(ctx, resp.AccessToken, onRefresh)
}
