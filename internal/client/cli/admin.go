package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
)

func (a *App) ListUsers(ctx context.Context) error {
	users, err := a.admin.ListUsers(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	for _, u := range users {
		status := "active"
		if !u.IsActive {
			status = "inactive"
		}
		fmt.Printf("%s  %s <%s>  [%s]  roles: %s\n",
			u.ID, u.Name, u.Email, status, strings.Join(u.Roles, ", "))
	}
	return nil
}

func (a *App) ListRoles(ctx context.Context) error {
	roles, err := a.admin.ListRoles(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	for _, r := range roles {
		fmt.Printf("%s  %s - %s  (%s)\n", r.ID, r.Name, r.Description, strings.Join(r.Permissions, ", "))
	}
	return nil
}

func (a *App) ListPermissions(ctx context.Context) error {
	perms, err := a.admin.ListPermissions(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	for _, p := range perms {
		fmt.Printf("%s  %s - %s\n", p.ID, p.Name, p.Description)
	}
	return nil
}
