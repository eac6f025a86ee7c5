package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/dkovalev/bazaar/internal/client/api"
	"github.com/dkovalev/bazaar/internal/client/iocli"
	"github.com/dkovalev/bazaar/internal/client/session"
	apitypes "github.com/dkovalev/bazaar/pkg/api"
)

// RunItems lists items; trailing arguments become the search query.
func RunItems(ctx context.Context, io iocli.IO, client *api.Client, args []string) error {
	items, err := client.ListItems(ctx, listQueryFromArgs(args))
	if err != nil {
		if notFound(err) {
			io.Println("No items found.")
			return nil
		}
		return err
	}

	for _, item := range items {
		printItem(io, item)
	}
	return nil
}

// RunItem shows one item with its owner.
func RunItem(ctx context.Context, io iocli.IO, client *api.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: item <id>")
	}

	item, err := client.GetItem(ctx, args[0])
	if err != nil {
		return err
	}

	printItem(io, item.ItemResponse)
	io.Printf("owner: %s <%s>\n", item.Owner.Name, item.Owner.Email)
	return nil
}

// RunMyItems lists the caller's items.
func RunMyItems(ctx context.Context, io iocli.IO, client *api.Client, store *session.Store, args []string) error {
	if err := withSession(client, store); err != nil {
		return err
	}

	items, err := client.MyItems(ctx, listQueryFromArgs(args))
	if err != nil {
		if notFound(err) {
			io.Println("You have no items yet.")
			return nil
		}
		return err
	}

	for _, item := range items {
		printItem(io, item)
	}
	return nil
}

// RunAddItem creates an item from flags.
func RunAddItem(ctx context.Context, io iocli.IO, client *api.Client, store *session.Store, args []string) error {
	fs := flag.NewFlagSet("add-item", flag.ContinueOnError)
	name := fs.String("name", "", "Item name (required)")
	description := fs.String("description", "", "Item description")
	price := fs.Float64("price", 0, "Item price (required)")
	tax := fs.Float64("tax", -1, "Tax percentage")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		return fmt.Errorf("-name is required")
	}
	if *price <= 0 {
		return fmt.Errorf("-price must be greater than zero")
	}

	if err := withSession(client, store); err != nil {
		return err
	}

	req := apitypes.CreateItemRequest{
		Name:  *name,
		Price: *price,
	}
	if *description != "" {
		req.Description = description
	}
	if *tax >= 0 {
		req.Tax = tax
	}

	item, err := client.CreateItem(ctx, req)
	if err != nil {
		return err
	}

	io.Printf("Created item %s\n", item.ID)
	printItem(io, *item)
	return nil
}

// RunUpdateItem updates an owned item; only the given flags change.
func RunUpdateItem(ctx context.Context, io iocli.IO, client *api.Client, store *session.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: update-item <id> [flags]")
	}
	itemID := args[0]

	fs := flag.NewFlagSet("update-item", flag.ContinueOnError)
	name := fs.String("name", "", "New item name")
	description := fs.String("description", "", "New item description")
	price := fs.Float64("price", -1, "New item price")
	tax := fs.Float64("tax", -1, "New tax percentage")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	req := apitypes.UpdateItemRequest{}
	if *name != "" {
		req.Name = name
	}
	if *description != "" {
		req.Description = description
	}
	if *price >= 0 {
		req.Price = price
	}
	if *tax >= 0 {
		req.Tax = tax
	}

	if err := withSession(client, store); err != nil {
		return err
	}

	item, err := client.UpdateItem(ctx, itemID, req)
	if err != nil {
		return err
	}

	io.Println("Updated:")
	printItem(io, *item)
	return nil
}

// RunDeleteItem deletes an owned item.
func RunDeleteItem(ctx context.Context, io iocli.IO, client *api.Client, store *session.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete-item <id>")
	}

	if err := withSession(client, store); err != nil {
		return err
	}

	resp, err := client.DeleteItem(ctx, args[0])
	if err != nil {
		return err
	}

	io.Println(resp.Message)
	return nil
}
