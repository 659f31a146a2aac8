package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/panelkeeper/internal/client/models"
	"github.com/dmitrijs2005/panelkeeper/internal/common"
)

// RESTClient talks JSON over HTTP to the admin-panel API. It is stateless:
// the caller supplies the bearer token on every request.
type RESTClient struct {
	baseURL string
	http    *http.Client
}

var _ Client = (*RESTClient)(nil)

// NewRESTClient builds a client against baseURL. Every request is bounded
// by timeout so a hung server cannot stall the session lifecycle.
func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type errorEnvelope struct {
	Message string `json:"message"`
}

// do sends one JSON request and decodes the response into out (when out is
// non-nil). Non-2xx responses become a *StatusError carrying the server's
// message, falling back to a generic one.
func (c *RESTClient) do(ctx context.Context, method, path, token string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return wrapTransportErr(method+" "+path, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapTransportErr(method+" "+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var envelope errorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return newStatusError(resp.StatusCode, envelope.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *RESTClient) Login(ctx context.Context, email string, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth", "", credentials{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RESTClient) GetProfile(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *RESTClient) RefreshToken(ctx context.Context, token string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	// empty JSON object body, same as any other authenticated POST
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", token, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RESTClient) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *RESTClient) GetUser(ctx context.Context, token string, id string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+id, token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *RESTClient) CreateUser(ctx context.Context, token string, user *models.User) (*models.User, error) {
	var created models.User
	if err := c.do(ctx, http.MethodPost, "/users", token, user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *RESTClient) UpdateUser(ctx context.Context, token string, user *models.User) (*models.User, error) {
	var updated models.User
	if err := c.do(ctx, http.MethodPut, "/users/"+user.ID, token, user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *RESTClient) DeleteUser(ctx context.Context, token string, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, token, nil, nil)
}

func (c *RESTClient) ListRoles(ctx context.Context, token string) ([]models.Role, error) {
	var roles []models.Role
	if err := c.do(ctx, http.MethodGet, "/roles", token, nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (c *RESTClient) GetRole(ctx context.Context, token string, id string) (*models.Role, error) {
	var role models.Role
	if err := c.do(ctx, http.MethodGet, "/roles/"+id, token, nil, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (c *RESTClient) CreateRole(ctx context.Context, token string, role *models.Role) (*models.Role, error) {
	var created models.Role
	if err := c.do(ctx, http.MethodPost, "/roles", token, role, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *RESTClient) UpdateRole(ctx context.Context, token string, role *models.Role) (*models.Role, error) {
	var updated models.Role
	if err := c.do(ctx, http.MethodPut, "/roles/"+role.ID, token, role, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *RESTClient) DeleteRole(ctx context.Context, token string, id string) error {
	return c.do(ctx, http.MethodDelete, "/roles/"+id, token, nil, nil)
}

func (c *RESTClient) ListPermissions(ctx context.Context, token string) ([]models.Permission, error) {
	var perms []models.Permission
	if err := c.do(ctx, http.MethodGet, "/permissions", token, nil, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

func (c *RESTClient) GetPermission(ctx context.Context, token string, id string) (*models.Permission, error) {
	var perm models.Permission
	if err := c.do(ctx, http.MethodGet, "/permissions/"+id, token, nil, &perm); err != nil {
		return nil, err
	}
	return &perm, nil
}

func (c *RESTClient) CreatePermission(ctx context.Context, token string, perm *models.Permission) (*models.Permission, error) {
	var created models.Permission
	if err := c.do(ctx, http.MethodPost, "/permissions", token, perm, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *RESTClient) UpdatePermission(ctx context.Context, token string, perm *models.Permission) (*models.Permission, error) {
	var updated models.Permission
	if err := c.do(ctx, http.MethodPut, "/permissions/"+perm.ID, token, perm, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *RESTClient) DeletePermission(ctx context.Context, token string, id string) error {
	return c.do(ctx, http.MethodDelete, "/permissions/"+id, token, nil, nil)
}
