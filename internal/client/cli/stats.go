package cli

import (
	"context"

	"github.com/dkovalev/bazaar/internal/client/api"
	"github.com/dkovalev/bazaar/internal/client/iocli"
	"github.com/dkovalev/bazaar/internal/client/session"
)

// RunStats shows the public counters.
func RunStats(ctx context.Context, io iocli.IO, client *api.Client) error {
	stats, err := client.Stats(ctx)
	if err != nil {
		return err
	}

	io.Printf("users: %d\nitems: %d\n", stats.TotalUsers, stats.TotalItems)
	return nil
}

// RunMyStats shows the caller's counters.
func RunMyStats(ctx context.Context, io iocli.IO, client *api.Client, store *session.Store) error {
	if err := withSession(client, store); err != nil {
		return err
	}

	stats, err := client.MyStats(ctx)
	if err != nil {
		return err
	}

	io.Printf("%s <%s>\nitems: %d\nmember since: %s\n",
		stats.User, stats.Email, stats.MyItemsCount,
		stats.MemberSince.Format("2006-01-02"))
	return nil
}
