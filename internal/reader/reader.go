// Package reader drives the read pipeline: authenticate, resolve the
// folder, fetch messages, print them. Calls are strictly sequential and
// nothing prints unless the whole pipeline succeeds.
package reader

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mailpeek/mailpeek/internal/auth"
	"github.com/mailpeek/mailpeek/internal/graph"
	"github.com/mailpeek/mailpeek/internal/logging"
	"github.com/mailpeek/mailpeek/internal/services/folderserv"
	"github.com/mailpeek/mailpeek/internal/services/mailserv"
)

type Config struct {
	ClientID string
	TenantID string
	Scopes   []string

	Mailbox      string
	Folder       string
	MessageCount int

	CachePath string
}

type folderResolver interface {
	Resolve(ctx context.Context, mailbox, folderName string) (string, error)
}

type messageFetcher interface {
	Fetch(ctx context.Context, mailbox, folderID string, count int) ([]graph.Message, error)
}

// Dependencies lets tests swap the identity provider and mail service
// for fakes. The zero value is filled in with the real MSAL and Graph
// wiring on first use.
type Dependencies struct {
	Authenticate func(ctx context.Context) (graph.TokenSource, error)
	NewServices  func(tokens graph.TokenSource) (folderResolver, messageFetcher)
}

type Reader struct {
	Config Config
	Out    io.Writer
	Deps   *Dependencies

	configOnce sync.Once
}

func (r *Reader) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

func (r *Reader) configure() {
	r.configOnce.Do(func() {
		if r.Deps != nil {
			return
		}

		authenticator := &auth.Authenticator{
			ClientID: r.Config.ClientID,
			TenantID: r.Config.TenantID,
			Scopes:   r.Config.Scopes,
			Cache:    &auth.FileCache{Path: r.Config.CachePath},
			Notify: func(message string) {
				fmt.Fprintln(r.out(), message)
			},
		}

		r.Deps = &Dependencies{
			Authenticate: func(ctx context.Context) (graph.TokenSource, error) {
				return authenticator.Authenticate(ctx)
			},
			NewServices: func(tokens graph.TokenSource) (folderResolver, messageFetcher) {
				client := &graph.Client{Tokens: tokens}
				return &folderserv.Service{Client: client}, &mailserv.Service{Client: client}
			},
		}
	})
}

func (r *Reader) Run(ctx context.Context) error {
	r.configure()

	log := logging.FromContext(ctx)
	log.Debug("starting run",
		logging.String("mailbox", r.Config.Mailbox),
		logging.String("folder", r.Config.Folder),
		logging.Int("messages", r.Config.MessageCount),
	)

	tokens, err := r.Deps.Authenticate(ctx)
	if err != nil {
		return err
	}

	folders, messages := r.Deps.NewServices(tokens)

	folderID, err := folders.Resolve(ctx, r.Config.Mailbox, r.Config.Folder)
	if err != nil {
		return err
	}

	msgs, err := messages.Fetch(ctx, r.Config.Mailbox, folderID, r.Config.MessageCount)
	if err != nil {
		return err
	}

	r.present(msgs)

	return nil
}
