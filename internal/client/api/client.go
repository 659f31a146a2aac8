// Package api implements the HTTP client for the admin-panel REST API:
// the three auth operations the session lifecycle depends on, plus the
// Users/Roles/Permissions CRUD the dashboard commands are built on.
package api

import (
	"context"

	"github.com/dmitrijs2005/panelkeeper/internal/client/models"
)

// Client is the remote API surface consumed by the services layer.
//
// Auth operations take the bearer token explicitly; the token lifecycle is
// owned by the services layer, never by the transport.
type Client interface {
	// Login exchanges credentials for a fresh access token and profile.
	Login(ctx context.Context, email string, password string) (*models.AuthResponse, error)
	// GetProfile fetches the profile of the token's owner.
	GetProfile(ctx context.Context, token string) (*models.User, error)
	// RefreshToken exchanges a still-valid token for a fresh one.
	RefreshToken(ctx context.Context, token string) (*models.AuthResponse, error)

	ListUsers(ctx context.Context, token string) ([]models.User, error)
	GetUser(ctx context.Context, token string, id string) (*models.User, error)
	CreateUser(ctx context.Context, token string, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, token string, user *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, token string, id string) error

	ListRoles(ctx context.Context, token string) ([]models.Role, error)
	GetRole(ctx context.Context, token string, id string) (*models.Role, error)
	CreateRole(ctx context.Context, token string, role *models.Role) (*models.Role, error)
	UpdateRole(ctx context.Context, token string, role *models.Role) (*models.Role, error)
	DeleteRole(ctx context.Context, token string, id string) error

	ListPermissions(ctx context.Context, token string) ([]models.Permission, error)
	GetPermission(ctx context.Context, token string, id string) (*models.Permission, error)
	CreatePermission(ctx context.Context, token string, perm *models.Permission) (*models.Permission, error)
	UpdatePermission(ctx context.Context, token string, perm *models.Permission) (*models.Permission, error)
	DeletePermission(ctx context.Context, token string, id string) error
}
