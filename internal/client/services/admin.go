package services

import (
	"context"

	"github.com/dmitrijs2005/panelkeeper/internal/client/api"
	"github.com/dmitrijs2005/panelkeeper/internal/client/models"
	"github.com/dmitrijs2005/panelkeeper/internal/common"
)

// AdminService exposes the Users/Roles/Permissions CRUD of the admin panel.
// Every call reads the current token from the token service; when no token
// is persisted the call fails with common.ErrorUnauthorized without going
// to the network.
type AdminService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error

	ListRoles(ctx context.Context) ([]models.Role, error)
	GetRole(ctx context.Context, id string) (*models.Role, error)
	CreateRole(ctx context.Context, role *models.Role) (*models.Role, error)
	UpdateRole(ctx context.Context, role *models.Role) (*models.Role, error)
	DeleteRole(ctx context.Context, id string) error

	ListPermissions(ctx context.Context) ([]models.Permission, error)
	GetPermission(ctx context.Context, id string) (*models.Permission, error)
	CreatePermission(ctx context.Context, perm *models.Permission) (*models.Permission, error)
	UpdatePermission(ctx context.Context, perm *models.Permission) (*models.Permission, error)
	DeletePermission(ctx context.Context, id string) error
}

type adminService struct {
	tokens *TokenService
	api    api.Client
}

// NewAdminService constructs an AdminService bound to the given token
// service and API client.
func NewAdminService(tokenService *TokenService, apiClient api.Client) AdminService {
	return &adminService{tokens: tokenService, api: apiClient}
}

func (a *adminService) token(ctx context.Context) (string, error) {
	tok := a.tokens.GetToken(ctx)
	if tok == "" {
		return "", common.ErrorUnauthorized
	}
	return tok, nil
}

func (a *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.api.ListUsers(ctx, tok)
}

func (a *adminService) GetUser(ctx context.Context, id string) (*models.User, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.api.GetUser(ctx, tok, id)
}

func (a *adminService) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.api.CreateUser(ctx, tok, user)
}

func (a *adminService) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.api.UpdateUser(ctx, tok, user)
}

func (a *adminService) DeleteUser(ctx context.Context, id string) error {
	tok, err := a.token(ctx)
	if err != nil {
		return err
	}
	return a.api.DeleteUser(ctx, tok, id)
}

func (a *adminService) ListRoles(ctx context.Context) ([]models.Role, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.api.ListRoles(ctx, tok)
}

func (a *adminService) GetRole(ctx context.Context, id string) (*models.Role, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.api.GetRole(ctx, tok, id)
}

func (a *adminService) CreateRole(ctx context.Context, role *models.Role) (*models.Role, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.api.CreateRole(ctx, tok, role)
}

func (a *adminService) UpdateRole(ctx context.Context, role *models.Role) (*models.Role, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.api.UpdateRole(ctx, tok, role)
}

func (a *adminService) DeleteRole(ctx context.Context, id string) error {
	tok, err := a.token(ctx)
	if err != nil {
		return err
	}
	return a.api.DeleteRole(ctx, tok, id)
}

func (a *adminService) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.api.ListPermissions(ctx, tok)
}

func (a *adminService) GetPermission(ctx context.Context, id string) (*models.Permission, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.api.GetPermission(ctx, tok, id)
}

func (a *adminService) CreatePermission(ctx context.Context, perm *models.Permission) (*models.Permission, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.api.CreatePermission(ctx, tok, perm)
}

func (a *adminService) UpdatePermission(ctx context.Context, perm *models.Permission) (*models.Permission, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.api.UpdatePermission(ctx, tok, perm)
}

func (a *adminService) DeletePermission(ctx context.Context, id string) error {
	tok, err := a.token(ctx)
	if err != nil {
		return err
	}
	return a.api.DeletePermission(ctx, tok, id)
}
