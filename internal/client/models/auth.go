package models

// AuthResponse is the payload returned by POST /auth and POST /auth/refresh:
// the caller's profile plus a freshly issued access token.
type AuthResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	IsAdmin     bool     `json:"isAdmin"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	AccessToken string   `json:"accessToken"`
}

// Session is the coordinator's current view of authentication state.
// User is nil unless IsAuthenticated is true; Err carries the most recent
// user-visible error message, if any.
type Session struct {
	User            *User
	Loading         bool
	Err             string
	IsAuthenticated bool
}
