package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gymfitness/membership/internal/client/client"
	"github.com/gymfitness/membership/internal/client/models"
	"github.com/gymfitness/membership/internal/common"
)

var errNotSignedIn = errors.New("not signed in")

func (a *App) SignUp(ctx context.Context) error {
	var req client.SignUpRequest
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"First name", &req.FirstName},
		{"Surname", &req.Surname},
		{"Email", &req.Email},
		{"Bank account number", &req.BankNo},
		{"Clearing number", &req.ClearingNo},
		{"Level (MEMBER_BASIC, MEMBER_STANDARD, MEMBER_PREMIUM, ADMIN, INSTRUCTOR; empty for basic)", &req.Level},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	req.Password = password

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	msg, err := a.api.SignUp(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	res, err := a.api.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	a.setSession(ctx, &models.Session{
		Email:       res.Email,
		FirstName:   res.FirstName,
		Surname:     res.Surname,
		UserID:      res.ID,
		Levels:      res.Levels,
		AccessToken: res.AccessToken,
		SavedAt:     time.Now(),
	})

	fmt.Fprintf(a.out, "Signed in as %s %s <%s>\n", res.FirstName, res.Surname, res.Email)
	fmt.Fprintf(a.out, "Levels: %s\n", strings.Join(res.Levels, ", "))
	fmt.Fprintf(a.out, "Token: %s\n", res.AccessToken)
	return nil
}

func (a *App) Me(ctx context.Context) error {
	if !a.isSignedIn() {
		return errNotSignedIn
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	p, err := a.api.Me(ctx, a.session.AccessToken)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.clearSession(ctx)
		}
		return err
	}
	fmt.Fprintf(a.out, "%s %s <%s> id=%s levels=%s\n", p.FirstName, p.Surname, p.Email, p.ID, strings.Join(p.Levels, ","))
	return nil
}

// ChangePassword uses the signed-in email when there is one.
func (a *App) ChangePassword(ctx context.Context) error {
	email, err := a.emailOrPrompt()
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	msg, err := a.api.ChangePassword(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Cancel(ctx context.Context) error {
	email, err := a.emailOrPrompt()
	if err != nil {
		return err
	}
	confirm, err := getSimpleText(a.reader, fmt.Sprintf("Cancel membership for %s? This cannot be undone (yes/no)", email), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "yes") {
		fmt.Fprintln(a.out, "Aborted")
		return nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	msg, err := a.api.Cancel(ctx, email)
	if err != nil {
		return err
	}
	if a.session != nil && a.session.Email == email {
		a.clearSession(ctx)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Logout(ctx context.Context) {
	a.clearSession(ctx)
	fmt.Fprintln(a.out, "Signed out")
}

func (a *App) emailOrPrompt() (string, error) {
	if a.session != nil {
		return a.session.Email, nil
	}
	return getSimpleText(a.reader, "Email", a.out)
}

// describe turns an error into the line shown to the user.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, errNotSignedIn):
		return "Not signed in, use 'signin' first"
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later"
	case errors.Is(err, common.ErrAccountCancelled):
		return "This membership has been cancelled"
	case errors.Is(err, common.ErrUserNotFound):
		return "No member with that email"
	case errors.Is(err, common.ErrEmailAlreadyInUse):
		return "That email is already registered"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Wrong email or password"
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	default:
		return "error: " + err.Error()
	}
}
