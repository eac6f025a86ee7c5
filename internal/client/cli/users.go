package cli

import (
	"context"
	"fmt"

	"github.com/dkovalev/bazaar/internal/client/api"
	"github.com/dkovalev/bazaar/internal/client/iocli"
	"github.com/dkovalev/bazaar/internal/client/session"
)

// RunUsers lists users; trailing arguments become the search query.
func RunUsers(ctx context.Context, io iocli.IO, client *api.Client, store *session.Store, args []string) error {
	if err := withSession(client, store); err != nil {
		return err
	}

	users, err := client.ListUsers(ctx, listQueryFromArgs(args))
	if err != nil {
		if notFound(err) {
			io.Println("No users found.")
			return nil
		}
		return err
	}

	for _, user := range users {
		printUser(io, user)
	}
	return nil
}

// RunUser shows one user with their items.
func RunUser(ctx context.Context, io iocli.IO, client *api.Client, store *session.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: user <id>")
	}

	if err := withSession(client, store); err != nil {
		return err
	}

	user, err := client.GetUser(ctx, args[0])
	if err != nil {
		return err
	}

	printUser(io, user.UserResponse)
	if len(user.Items) == 0 {
		io.Println("no items")
		return nil
	}
	io.Printf("items (%d):\n", len(user.Items))
	for _, item := range user.Items {
		printItem(io, item)
	}
	return nil
}
