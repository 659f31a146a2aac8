// Package models defines the data transfer types exchanged with the
// admin-panel API and the session snapshot consumed by the CLI.
package models

// User is the authenticated identity and, in admin CRUD responses, a
// managed account. Password is write-only: present on create/update
// requests, never returned by the API.
type User struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Password    string   `json:"password,omitempty"`
	IsAdmin     bool     `json:"isAdmin"`
	IsActive    bool     `json:"isActive"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions,omitempty"`
}
