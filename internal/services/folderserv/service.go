// Package folderserv resolves a human-readable folder display name to
// the stable folder id the mail service uses.
package folderserv

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/exp/slices"

	"github.com/mailpeek/mailpeek/internal/graph"
	"github.com/mailpeek/mailpeek/internal/logging"
	"github.com/mailpeek/mailpeek/internal/types"
)

// One page is enough; mailboxes with more than 100 root folders are out
// of scope.
const listPageSize = 100

// wellKnownNames maps standard folder display names to their reserved
// locale-independent names.
var wellKnownNames = map[string]string{
	"inbox":         "inbox",
	"sent items":    "sentitems",
	"drafts":        "drafts",
	"deleted items": "deleteditems",
	"outbox":        "outbox",
	"junk email":    "junkemail",
	"archive":       "archive",
}

// WellKnownName returns the reserved name for a standard folder display
// name, matched case-insensitively.
func WellKnownName(folderName string) (string, bool) {
	name, ok := wellKnownNames[strings.ToLower(folderName)]
	return name, ok
}

type folderClient interface {
	ListMailFolders(ctx context.Context, mailbox string, top int) ([]graph.Folder, error)
	GetMailFolder(ctx context.Context, mailbox, name string) (graph.Folder, bool, error)
}

type Service struct {
	Client folderClient

	memoOnce sync.Once
	memo     *cache.Cache
}

func (s *Service) init() {
	s.memoOnce.Do(func() {
		s.memo = cache.New(5*time.Minute, time.Minute)
	})
}

func memoKey(mailbox, folderName string) string {
	return mailbox + "\x00" + strings.ToLower(folderName)
}

// Resolve returns the id of the first folder whose display name equals
// folderName case-insensitively, in the order the service returns them.
// When the scan misses and folderName is a standard folder, the reserved
// well-known name is tried directly, which covers localized mailboxes
// that display standard folders under translated labels.
func (s *Service) Resolve(ctx context.Context, mailbox, folderName string) (string, error) {
	s.init()

	key := memoKey(mailbox, folderName)
	if id, ok := s.memo.Get(key); ok {
		return id.(string), nil
	}

	folders, err := s.Client.ListMailFolders(ctx, mailbox, listPageSize)
	if err != nil {
		return "", err
	}

	i := slices.IndexFunc(folders, func(f graph.Folder) bool {
		return strings.EqualFold(f.DisplayName, folderName)
	})
	if i >= 0 {
		s.memo.SetDefault(key, folders[i].ID)
		return folders[i].ID, nil
	}

	if wellKnown, ok := WellKnownName(folderName); ok {
		folder, found, err := s.Client.GetMailFolder(ctx, mailbox, wellKnown)
		if err != nil {
			return "", err
		}
		if found {
			log := logging.FromContext(ctx)
			log.Debug("folder resolved through well-known name",
				logging.String("folder", folderName),
				logging.String("wellknown", wellKnown),
			)
			s.memo.SetDefault(key, folder.ID)
			return folder.ID, nil
		}
	}

	return "", types.NotFoundError{Folder: folderName}
}
