// Package cli scans command-line arguments with deliberately forgiving
// semantics: flag values are read by lookahead without being consumed,
// bare tokens are ignored, and a non-integer message count keeps the
// default instead of failing.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultMailbox  = "me"
	DefaultFolder   = "Inbox"
	DefaultMessages = 10
)

type Options struct {
	Mailbox  string
	Folder   string
	Messages int
}

// ArgumentError reports an unrecognized --flag. Any other token shape
// is tolerated.
type ArgumentError struct {
	Argument string
}

func (e ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Argument)
}

func Parse(args []string) (Options, error) {
	opts := Options{
		Mailbox:  DefaultMailbox,
		Folder:   DefaultFolder,
		Messages: DefaultMessages,
	}

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--mailbox" && i+1 < len(args):
			opts.Mailbox = args[i+1]

		case args[i] == "--folder" && i+1 < len(args):
			opts.Folder = args[i+1]

		case args[i] == "--messages" && i+1 < len(args):
			if n, err := strconv.Atoi(args[i+1]); err == nil {
				opts.Messages = n
			}

		case strings.HasPrefix(args[i], "--"):
			return Options{}, ArgumentError{Argument: args[i]}
		}
	}

	return opts, nil
}
