package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mailpeek/mailpeek/internal/cli"
	"github.com/mailpeek/mailpeek/internal/envcfg"
	"github.com/mailpeek/mailpeek/internal/logging"
	"github.com/mailpeek/mailpeek/internal/reader"
	"github.com/mailpeek/mailpeek/internal/types"
)

// Serialized credential record lives next to the binary's working
// directory, like the original token file.
const tokenCacheFile = "token_cache.json"

var scopes = []string{"User.Read", "Mail.Read"}

const (
	exitOK       = 0
	exitUsage    = 1 // bad argument or authentication failure
	exitNotFound = 2
	exitConfig   = 3
	exitRemote   = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := logging.New()
	defer func() { _ = log.Sync() }()

	cfg, err := envcfg.Load()
	if err != nil {
		fmt.Printf("%s.\n", err)
		return exitConfig
	}

	opts, err := cli.Parse(args)
	if err != nil {
		var argErr cli.ArgumentError
		if errors.As(err, &argErr) {
			fmt.Printf("Invalid argument: %s\n", argErr.Argument)
		}
		return exitUsage
	}

	r := reader.Reader{
		Config: reader.Config{
			ClientID:     cfg.ClientID,
			TenantID:     cfg.TenantID,
			Scopes:       scopes,
			Mailbox:      opts.Mailbox,
			Folder:       opts.Folder,
			MessageCount: opts.Messages,
			CachePath:    tokenCacheFile,
		},
	}

	ctx := log.GetContext(context.Background())
	err = r.Run(ctx)

	var (
		authErr     types.AuthError
		notFoundErr types.NotFoundError
		remoteErr   types.RemoteError
	)
	switch {
	case err == nil:
		return exitOK

	case errors.As(err, &notFoundErr):
		fmt.Printf("Folder '%s' not found.\n", notFoundErr.Folder)
		return exitNotFound

	case errors.As(err, &authErr):
		// Generic on purpose; the cause stays in the debug log.
		log.Debug("authentication error", logging.Error(err))
		fmt.Println("Authentication failed.")
		return exitUsage

	case errors.As(err, &remoteErr):
		log.Error("mail service request failed", logging.Error(err))
		fmt.Println("Mail service request failed.")
		return exitRemote

	default:
		log.Error("run failed", logging.Error(err))
		return exitUsage
	}
}
