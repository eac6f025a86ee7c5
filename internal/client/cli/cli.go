// Package cli implements the commands of the bazaar command-line client.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dkovalev/bazaar/internal/client/api"
	"github.com/dkovalev/bazaar/internal/client/iocli"
	"github.com/dkovalev/bazaar/internal/client/session"
	apitypes "github.com/dkovalev/bazaar/pkg/api"
)

// PrintUsage prints the command overview.
func PrintUsage() {
	fmt.Println(`Usage: bazaar-client [flags] <command> [arguments]

Commands:
  register               Create a new account
  login                  Log in and store the session locally
  logout                 Forget the local session
  status                 Show the local session state
  whoami                 Show the account behind the current session
  users                  List users (authenticated)
  user <id>              Show a user with their items (authenticated)
  items                  List items
  item <id>              Show an item with its owner
  my-items               List your items (authenticated)
  add-item               Create an item (authenticated)
  update-item <id>       Update one of your items (authenticated)
  delete-item <id>       Delete one of your items (authenticated)
  stats                  Show public counters
  my-stats               Show your counters (authenticated)

Flags:
  -server <url>          Server base URL (default http://localhost:8080)
  -db <path>             Local session database path`)
}

// withSession attaches the stored session token to the client or fails
// when there is none.
func withSession(client *api.Client, store *session.Store) error {
	sess, err := store.Current()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return fmt.Errorf("not logged in, run 'login' first")
		}
		return err
	}

	client.SetToken(sess.AccessToken)
	return nil
}

// listQueryFromArgs parses optional "search terms" trailing arguments into
// a list query.
func listQueryFromArgs(args []string) api.ListQuery {
	return api.ListQuery{Search: strings.Join(args, " ")}
}

func printUser(io iocli.IO, user apitypes.UserResponse) {
	io.Printf("%s  %s <%s>  age %d", user.ID, user.Name, user.Email, user.Age)
	if !user.IsActive {
		io.Printf("  [inactive]")
	}
	io.Println("")
}

func printItem(io iocli.IO, item apitypes.ItemResponse) {
	io.Printf("%s  %s  %.2f", item.ID, item.Name, item.Price)
	if item.Tax != nil {
		io.Printf(" (+%.1f%% tax = %.2f)", *item.Tax, item.TotalPrice)
	}
	if item.Description != nil {
		io.Printf("  - %s", *item.Description)
	}
	io.Println("")
}

// notFound reports whether the error is a server-side 404, which list
// commands render as an empty result rather than a failure.
func notFound(err error) bool {
	var statusErr *api.ErrStatus
	return errors.As(err, &statusErr) && statusErr.StatusCode == 404
}
