package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rpgkeeper/internal/client/client"
	"github.com/dmitrijs2005/rpgkeeper/internal/client/services"
	"github.com/dmitrijs2005/rpgkeeper/internal/common"
)

// getSimpleText and getPassword can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// report prints err for the user. Rejected or expired tokens end the local
// session.
func (a *App) report(ctx context.Context, err error) {
	var re *services.RemoteError
	switch {
	case errors.As(err, &re):
		fmt.Fprintln(a.out, re.Error())
	case errors.Is(err, common.ErrTokenExpired):
		fmt.Fprintln(a.out, "Session expired, please login again")
		a.dropSession(ctx)
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintln(a.out, "Not authorized, please login again")
		a.dropSession(ctx)
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	default:
		a.logger.Error(ctx, "command failed", "error", err)
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
	}
}

func (a *App) dropSession(ctx context.Context) {
	if err := a.authService.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "could not clear session", "error", err)
	}
	a.loggedIn = false
	a.userName = ""
}

// Register prompts for a username and password and creates the account.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()
	if err := a.authService.Register(rctx, userName, password); err != nil {
		a.report(ctx, err)
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts for credentials, authenticates and saves the session.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()
	s, err := a.authService.Login(rctx, userName, password)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	a.userName = s.UserName
	a.loggedIn = true
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// ResetPassword changes the password of an account. It does not need a
// session.
func (a *App) ResetPassword(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	oldPassword, err := getPassword("Enter old password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)

	newPassword, err := getPassword("Enter new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	if len(newPassword) == 0 {
		err := errors.New("new password must not be empty")
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()
	if err := a.authService.ResetPassword(rctx, userName, oldPassword, newPassword); err != nil {
		a.report(ctx, err)
		return err
	}

	fmt.Fprintln(a.out, "Password changed")
	return nil
}

// Logout forgets the saved session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.loggedIn = false
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
