package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and runs the session coordinator's login
// flow. On success the prompt greets the authenticated user; on failure the
// session's error message is shown and cleared.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	snap := a.session.Login(ctx, email, password)
	if !snap.IsAuthenticated {
		if snap.Err != "" {
			log.Printf("Login unsuccessful: %s", snap.Err)
			a.session.ClearError()
		} else {
			log.Printf("Login unsuccessful")
		}
		return nil
	}

	log.Printf("Login successful")
	return nil
}

// Logout tears the session down: refresh timer disarmed, token cleared.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	log.Printf("Logged out")
	return nil
}

// WhoAmI re-checks the session and prints the authenticated profile.
func (a *App) WhoAmI(ctx context.Context) error {
	snap := a.session.CheckAuth(ctx)
	if !snap.IsAuthenticated {
		if snap.Err != "" {
			fmt.Println("Not authenticated:", snap.Err)
			a.session.ClearError()
		} else {
			fmt.Println("Not authenticated")
		}
		return nil
	}

	u := snap.User
	fmt.Printf("%s <%s>\n", u.Name, u.Email)
	fmt.Printf("  roles: %s\n", strings.Join(u.Roles, ", "))
	if len(u.Permissions) > 0 {
		fmt.Printf("  permissions: %s\n", strings.Join(u.Permissions, ", "))
	}
	if u.IsAdmin {
		fmt.Println("  admin: yes")
	}
	return nil
}
