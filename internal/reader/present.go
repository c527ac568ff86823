package reader

import (
	"fmt"
	"strings"

	"github.com/mailpeek/mailpeek/internal/graph"
)

const (
	separator    = "------------------------------"
	previewLimit = 100
)

func (r *Reader) present(msgs []graph.Message) {
	w := r.out()

	fmt.Fprintf(w, "Found %d messages in '%s' folder.\n", len(msgs), r.Config.Folder)
	fmt.Fprintln(w, separator)

	for _, m := range msgs {
		fmt.Fprintf(w, "FROM: %s\n", senderAddress(m))
		// A nil collection means the service omitted the field; an
		// empty one still gets its line.
		if m.ToRecipients != nil {
			fmt.Fprintf(w, "TO: %s\n", joinAddresses(m.ToRecipients))
		}
		if m.CcRecipients != nil {
			fmt.Fprintf(w, "CC: %s\n", joinAddresses(m.CcRecipients))
		}
		fmt.Fprintf(w, "Subject: %s\n", m.Subject)
		fmt.Fprintf(w, "Body: %s\n", bodyPreview(m.Body.Content))
		fmt.Fprintln(w, separator)
	}
}

func senderAddress(m graph.Message) string {
	if m.Sender == nil {
		return ""
	}
	return m.Sender.EmailAddress.Address
}

func joinAddresses(recipients []graph.Recipient) string {
	addrs := make([]string, 0, len(recipients))
	for _, r := range recipients {
		addrs = append(addrs, r.EmailAddress.Address)
	}
	return strings.Join(addrs, "; ")
}

// bodyPreview truncates to previewLimit characters and flattens line
// breaks so each message block stays one line per field.
func bodyPreview(body string) string {
	if body == "" {
		return "(empty)"
	}

	runes := []rune(body)
	if len(runes) > previewLimit {
		body = string(runes[:previewLimit])
	}

	body = strings.ReplaceAll(body, "\n", `\n`)
	body = strings.ReplaceAll(body, "\r", `\r`)

	return body
}
