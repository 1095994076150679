package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gestorhq/gestorcli/internal/client/routing"
)

// Root runs the command loop. The command set depends on the current
// screen, which in turn is owned by the routing guard.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Gestor CLI (type 'help' for commands)")

	if s := a.session.Snapshot(); s.Err != "" {
		fmt.Printf("Warning: %s\n", s.Err)
	}

	scanner := bufio.NewScanner(os.Stdin)

	for {
		// Re-evaluate the guard before every prompt so an expired session
		// drops back to the login screen on its own.
		a.navigate(a.route)

		fmt.Printf("gestor %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]

		switch cmd {
		case "help":
			if a.route == routing.RouteHome {
				fmt.Println("Available commands: whoami, refresh, orders, status, dismiss, logout, exit")
			} else {
				fmt.Println("Available commands: login, register, status, exit")
			}

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		case "status":
			a.Status()

		case "dismiss":
			a.Dismiss()

		case "login":
			if a.route != routing.RouteLogin {
				fmt.Println("Already logged in.")
				continue
			}
			if err := a.Login(ctx); err != nil {
				fmt.Println("Input error:", err)
			}

		case "register":
			if a.route != routing.RouteLogin {
				fmt.Println("Already logged in.")
				continue
			}
			if err := a.Register(ctx); err != nil {
				fmt.Println("Input error:", err)
			}

		case "logout":
			if a.route != routing.RouteHome {
				fmt.Println("Not logged in.")
				continue
			}
			_ = a.Logout(ctx)

		case "whoami":
			if a.route != routing.RouteHome {
				fmt.Println("Not logged in.")
				continue
			}
			a.WhoAmI()

		case "refresh":
			if a.route != routing.RouteHome {
				fmt.Println("Not logged in.")
				continue
			}
			_ = a.Refresh(ctx)

		case "orders":
			if a.route != routing.RouteHome {
				fmt.Println("Not logged in.")
				continue
			}
			a.Orders(ctx)

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
