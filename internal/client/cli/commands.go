package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/recipebox/pkg/authsdk"
)

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "-Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "-Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.client.Register(ctx, authsdk.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s <%s> (id %s)\n", user.Name, user.Email, user.ID)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "-Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if _, err := a.client.Login(ctx, authsdk.LoginRequest{Email: email, Password: password}); err != nil {
		return err
	}

	id, ok, err := a.tokens.CurrentIdentity(ctx)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(a.out, "Logged in as %s\n", id.Name)
	} else {
		fmt.Fprintln(a.out, "Logged in")
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the identity decoded from the stored token. An expired
// token is dropped.
func (a *App) WhoAmI(ctx context.Context) error {
	id, ok, err := a.tokens.Session(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	fmt.Fprintf(a.out, "id:      %s\n", id.ID)
	fmt.Fprintf(a.out, "name:    %s\n", id.Name)
	fmt.Fprintf(a.out, "avatar:  %s\n", id.Avatar)
	fmt.Fprintf(a.out, "expires: %s\n", id.ExpiresAt.Local().Format(time.RFC1123))
	return nil
}

func (a *App) Current(ctx context.Context) error {
	user, err := a.client.Current(ctx)
	if errors.Is(err, authsdk.ErrNotLoggedIn) {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id:    %s\n", user.ID)
	fmt.Fprintf(a.out, "name:  %s\n", user.Name)
	fmt.Fprintf(a.out, "email: %s\n", user.Email)
	return nil
}
