package main

import (
	"context"
	"flag"
	"fmt"

	"reelmatch/internal/domain/entity"
	"reelmatch/internal/errors"
)

func (a *app) runSignup(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("signup", flag.ExitOnError)
	email := cmd.String("email", "", "Account email")
	username := cmd.String("username", "", "Display name")
	password := cmd.String("password", "", "Password (min 8 characters)")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse signup flags")
	}

	user, err := a.client.SignUp(ctx, entity.SignUpRequest{
		Email:    *email,
		Username: *username,
		Password: *password,
	})
	if err != nil {
		return err
	}

	return a.printJSON(user)
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := cmd.String("email", "", "Account email")
	password := cmd.String("password", "", "Password")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse login flags")
	}

	user, err := a.client.SignIn(ctx, entity.Credentials{
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}

	return a.printJSON(user)
}

func (a *app) runLogout() error {
	a.client.Logout()

	fmt.Fprintln(a.out, "logged out")

	return nil
}

func (a *app) runMe(ctx context.Context) error {
	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		return err
	}

	if err := a.printJSON(user); err != nil {
		return err
	}

	// purely informational; expiry never triggers a refresh on its own
	if expiresAt, ok := a.client.Session().TokenExpiresAt(); ok {
		fmt.Fprintf(a.out, "access token expires at %s\n", expiresAt.Format("2006-01-02 15:04:05 MST"))
	}

	return nil
}

func (a *app) runRefresh(ctx context.Context) error {
	pair, err := a.client.RefreshAccessToken(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "access token refreshed (%s)\n", pair.TokenType)

	return nil
}
