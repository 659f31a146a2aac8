// Package cli implements the interactive panelkeeper command loop: login,
// logout, session inspection, and read-only views over the admin-panel
// Users/Roles/Permissions.
package cli
