// Package mailserv fetches a bounded number of recent messages from a
// resolved folder.
package mailserv

import (
	"context"

	"github.com/mailpeek/mailpeek/internal/graph"
	"github.com/mailpeek/mailpeek/internal/logging"
)

type messageClient interface {
	ListMessages(ctx context.Context, mailbox, folderID string, top int) ([]graph.Message, error)
}

type Service struct {
	Client messageClient
}

// Fetch returns at most count messages, newest received first, in the
// order the service delivers them. A zero count is an empty result, not
// an error, and no remote call is made for it. Messages are never
// cached locally; every run reads fresh.
func (s *Service) Fetch(ctx context.Context, mailbox, folderID string, count int) ([]graph.Message, error) {
	if count <= 0 {
		return nil, nil
	}

	msgs, err := s.Client.ListMessages(ctx, mailbox, folderID, count)
	if err != nil {
		return nil, err
	}

	// The service should honor the cap, but the bound is ours to keep.
	if len(msgs) > count {
		msgs = msgs[:count]
	}

	log := logging.FromContext(ctx)
	log.Debug("fetched messages",
		logging.String("folder", folderID),
		logging.Int("count", len(msgs)),
	)

	return msgs, nil
}
