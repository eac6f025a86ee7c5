package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dkovalev/bazaar/internal/client/api"
	"github.com/dkovalev/bazaar/internal/client/cli"
	"github.com/dkovalev/bazaar/internal/client/iocli"
	"github.com/dkovalev/bazaar/internal/client/session"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server base URL")
	dbPath := flag.String("db", "bazaar-client.db", "Path to the local session database")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]
	args = args[1:]

	store, err := session.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open session database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close()
	}()

	ctx := context.Background()
	client := api.NewClient(*serverURL)
	io := iocli.NewStdio()

	if err := runCommand(ctx, command, args, io, client, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, command string, args []string, io iocli.IO, client *api.Client, store *session.Store) error {
	switch command {
	case "register":
		return cli.RunRegister(ctx, io, client)
	case "login":
		return cli.RunLogin(ctx, io, client, store)
	case "logout":
		return cli.RunLogout(io, store)
	case "status":
		return cli.RunStatus(io, store)
	case "whoami":
		return cli.RunWhoami(ctx, io, client, store)
	case "users":
		return cli.RunUsers(ctx, io, client, store, args)
	case "user":
		return cli.RunUser(ctx, io, client, store, args)
	case "items":
		return cli.RunItems(ctx, io, client, args)
	case "item":
		return cli.RunItem(ctx, io, client, args)
	case "my-items":
		return cli.RunMyItems(ctx, io, client, store, args)
	case "add-item":
		return cli.RunAddItem(ctx, io, client, store, args)
	case "update-item":
		return cli.RunUpdateItem(ctx, io, client, store, args)
	case "delete-item":
		return cli.RunDeleteItem(ctx, io, client, store, args)
	case "stats":
		return cli.RunStats(ctx, io, client)
	case "my-stats":
		return cli.RunMyStats(ctx, io, client, store)
	default:
		cli.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printVersion() {
	fmt.Printf("Bazaar Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
