package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dkovalev/bazaar/internal/client/api"
	"github.com/dkovalev/bazaar/internal/client/iocli"
	"github.com/dkovalev/bazaar/internal/client/session"
	"github.com/dkovalev/bazaar/internal/validation"
	apitypes "github.com/dkovalev/bazaar/pkg/api"
)

// RunRegister creates a new account interactively.
func RunRegister(ctx context.Context, io iocli.IO, client *api.Client) error {
	name, err := io.ReadInput("Name: ")
	if err != nil {
		return err
	}
	if err := validation.ValidateName(name); err != nil {
		return err
	}

	email, err := io.ReadInput("Email: ")
	if err != nil {
		return err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	ageRaw, err := io.ReadInput("Age: ")
	if err != nil {
		return err
	}
	age, err := strconv.Atoi(ageRaw)
	if err != nil {
		return fmt.Errorf("age must be a number")
	}
	if err := validation.ValidateAge(age); err != nil {
		return err
	}

	password, err := io.ReadPassword("Password: ")
	if err != nil {
		return err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}
	confirm, err := io.ReadPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	user, err := client.Register(ctx, apitypes.RegisterRequest{
		Name:     name,
		Email:    email,
		Age:      age,
		Password: password,
	})
	if err != nil {
		return err
	}

	io.Printf("Registered %s (%s). You can now log in.\n", user.Name, user.Email)
	return nil
}

// RunLogin authenticates and stores the session locally.
func RunLogin(ctx context.Context, io iocli.IO, client *api.Client, store *session.Store) error {
	email, err := io.ReadInput("Email: ")
	if err != nil {
		return err
	}
	password, err := io.ReadPassword("Password: ")
	if err != nil {
		return err
	}

	resp, err := client.Login(ctx, apitypes.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}

	sess := &session.Session{
		AccessToken: resp.AccessToken,
		Email:       email,
		ExpiresAt:   time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}
	if err := store.Save(sess); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	io.Printf("Logged in as %s (token valid until %s)\n",
		email, sess.ExpiresAt.Format(time.RFC1123))
	return nil
}

// RunLogout removes the local session. The token itself stays valid until
// it expires; the server keeps no session state to invalidate.
func RunLogout(io iocli.IO, store *session.Store) error {
	if err := store.Delete(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	io.Println("Logged out.")
	return nil
}

// RunStatus reports the local session state without calling the server.
func RunStatus(io iocli.IO, store *session.Store) error {
	sess, err := store.Get()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			io.Println("Not logged in.")
			return nil
		}
		return err
	}

	if sess.Expired() {
		io.Printf("Session for %s expired at %s. Log in again.\n",
			sess.Email, sess.ExpiresAt.Format(time.RFC1123))
		return nil
	}

	io.Printf("Logged in as %s, token valid until %s\n",
		sess.Email, sess.ExpiresAt.Format(time.RFC1123))
	return nil
}

// RunWhoami asks the server for the account behind the current session.
func RunWhoami(ctx context.Context, io iocli.IO, client *api.Client, store *session.Store) error {
	if err := withSession(client, store); err != nil {
		return err
	}

	user, err := client.Me(ctx)
	if err != nil {
		return err
	}

	printUser(io, *user)
	io.Printf("member since %s\n", user.CreatedAt.Format("2006-01-02"))
	return nil
}
