package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/services"
)

var errPasswordMismatch = errors.New("passwords do not match")

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, a password and its confirmation, then
// creates the account. The outcome is printed; the error is returned for
// callers that care.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		fmt.Fprintln(a.out, "Passwords do not match")
		return errPasswordMismatch
	}

	if err := a.authService.Register(ctx, userName, password); err != nil {
		fmt.Fprintln(a.out, "Registration failed:", describeError(err))
		return err
	}

	fmt.Fprintf(a.out, "User %q registered\n", userName)
	return nil
}

// Login prompts for credentials and, on success, marks the user as logged
// in. Unknown users and wrong passwords are reported identically.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if a.authService.Login(ctx, userName, password) != services.AuthSuccess {
		fmt.Fprintln(a.out, "Login failed: invalid credentials")
		return common.ErrorUnauthorized
	}

	a.userName = userName
	fmt.Fprintf(a.out, "Welcome, %s!\n", userName)
	return nil
}

// Logout forgets the logged-in user.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// describeError turns a service error into a message fit for the user.
// Internal failures are reported generically; details go to the log.
func describeError(err error) string {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": ")
	case errors.Is(err, common.ErrorAlreadyExists):
		return "user already exists"
	default:
		return "internal error, please try again later"
	}
}
