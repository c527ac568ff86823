package types

import "fmt"

// AuthError covers every failure on the authentication path: a corrupt
// cached credential record, a denied or expired device code, or a network
// failure while talking to the identity provider.
type AuthError struct {
	Cause error
}

func (e AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Cause)
}

func (e AuthError) Unwrap() error {
	return e.Cause
}

// NotFoundError reports that no folder in the mailbox matched the
// requested display name.
type NotFoundError struct {
	Folder string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("folder %q not found", e.Folder)
}

// RemoteError reports a failed call to the mail service, carrying the
// HTTP status when one was received.
type RemoteError struct {
	Operation  string
	StatusCode int
	Cause      error
}

func (e RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: service returned status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e RemoteError) Unwrap() error {
	return e.Cause
}
