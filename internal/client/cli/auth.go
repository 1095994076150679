package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/gestorhq/gestorcli/internal/client/models"
	"github.com/gestorhq/gestorcli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and runs the login transition. The outcome
// is read from the session snapshot: a failure shows up as the session's
// error text, not as a returned error. The password is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		// The only session-level error is an overlapping transition.
		fmt.Println("Another operation is in progress, try again.")
		return nil
	}

	if s.Authenticated {
		fmt.Printf("Welcome, %s!\n", s.User.Name)
		a.navigate(a.route)
	} else {
		fmt.Println(s.Err)
	}
	return nil
}

// Register prompts for the new account's fields and runs the registration
// transition. Phone is optional; an empty answer leaves it out.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone (optional)", os.Stdout)
	if err != nil {
		return err
	}
	cpf, err := getSimpleText(a.reader, "Enter CPF (optional)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.session.Register(ctx, models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: string(password),
		Phone:    phone,
		CPF:      cpf,
	})
	if err != nil {
		fmt.Println("Another operation is in progress, try again.")
		return nil
	}

	if s.Authenticated {
		fmt.Println("Account created!")
		a.navigate(a.route)
	} else {
		fmt.Println(s.Err)
	}
	return nil
}

// Logout runs the logout transition and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	if _, err := a.session.Logout(ctx); err != nil {
		fmt.Println("Another operation is in progress, try again.")
		return nil
	}
	fmt.Println("Logged out.")
	a.navigate(a.route)
	return nil
}

// Refresh re-fetches the profile from the server.
func (a *App) Refresh(ctx context.Context) error {
	s, err := a.session.RefreshProfile(ctx)
	if err != nil {
		fmt.Println("Another operation is in progress, try again.")
		return nil
	}
	if !s.Authenticated {
		fmt.Println(s.Err)
		a.navigate(a.route)
		return nil
	}
	fmt.Println("Profile refreshed.")
	return nil
}
