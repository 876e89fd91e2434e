package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const minPasswordLength = 6

// Register prompts for email, name, password, and confirmation, validates
// locally, and attempts to create an account. The password checks (length
// and confirmation match) run before any network call; a failed check means
// the server is never contacted.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		fmt.Printf("Password must be at least %d characters\n", minPasswordLength)
		return nil
	}

	confirmation, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	if password != confirmation {
		fmt.Println("Passwords do not match")
		return nil
	}

	if err := a.session.Register(ctx, email, password, name); err != nil {
		fmt.Println(err.Error())
		return nil
	}

	fmt.Println("Welcome to LearningX!")
	return nil
}

// Login prompts for credentials and authenticates. Backend rejections are
// reported to the user; the REPL stays interactive either way.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	if email == "" || password == "" {
		fmt.Println("Email and password are required")
		return nil
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		fmt.Println(err.Error())
		return nil
	}

	fmt.Printf("Signed in as %s\n", a.session.Identity().Email)
	return nil
}

// Logout clears the session. Safe to call when already signed out.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Println("Signed out")
	return nil
}

// Whoami prints the current identity and, when determinable, the token
// expiry.
func (a *App) Whoami(ctx context.Context) error {
	identity := a.session.Identity()
	if identity == nil {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("%s <%s> (id %s)\n", identity.Name, identity.Email, identity.ID)
	if exp, ok := a.session.TokenExpiry(); ok {
		fmt.Printf("Session expires %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}

// AuthURL prints the external provider entry point with this client's
// callback as the redirect target. The provider hands back a session id,
// which the user completes with the "session" command.
func (a *App) AuthURL(ctx context.Context) error {
	u := a.config.AuthProviderURL + "?redirect=" + url.QueryEscape(a.config.AuthCallbackURL)
	fmt.Println("Open the following URL in your browser to sign in:")
	fmt.Println(u)
	fmt.Println("Then run: session <session-id>")
	return nil
}

// ExchangeSession trades a provider session id for a regular session.
func (a *App) ExchangeSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		fmt.Println("Usage: session <session-id>")
		return nil
	}
	if err := a.session.LoginWithSession(ctx, sessionID); err != nil {
		fmt.Println(err.Error())
		return nil
	}
	fmt.Printf("Signed in as %s\n", a.session.Identity().Email)
	return nil
}
