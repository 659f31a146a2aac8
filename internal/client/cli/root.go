package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	if snap.IsAuthenticated && snap.User != nil {
		return fmt.Sprintf("(%s)", snap.User.Email)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to panelkeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	// restore a session persisted by a previous run, if any
	snap := a.session.CheckAuth(ctx)
	if snap.IsAuthenticated {
		log.Printf("Welcome back, %s", snap.User.Name)
	} else if snap.Err != "" {
		log.Println(snap.Err)
		a.session.ClearError()
	}

	for {
		fmt.Printf("pk %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: whoami, users, roles, perms, logout, exit")
			} else {
				fmt.Println("Available commands: login, exit")
			}

		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.WhoAmI(ctx)
		case "users":
			a.ListUsers(ctx)
		case "roles":
			a.ListRoles(ctx)
		case "perms", "permissions":
			a.ListPermissions(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
