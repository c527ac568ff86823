// Package graph is a minimal Microsoft Graph mail client covering the
// two read operations this tool needs: listing mail folders and listing
// messages in a folder.
package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zeebo/errs"

	"github.com/mailpeek/mailpeek/internal/types"
)

const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// Mailbox sentinel meaning the signed-in user's own mailbox.
const SelfMailbox = "me"

// TokenSource provides a bearer token for each request. The auth
// Session satisfies it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Folder struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type EmailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type Recipient struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type Message struct {
	Sender       *Recipient  `json:"sender"`
	ToRecipients []Recipient `json:"toRecipients"`
	CcRecipients []Recipient `json:"ccRecipients"`
	Subject      string      `json:"subject"`
	Body         ItemBody    `json:"body"`
}

type foldersResponse struct {
	Value    []Folder `json:"value"`
	NextLink string   `json:"@odata.nextLink"`
}

type messagesResponse struct {
	Value []Message `json:"value"`
}

type Client struct {
	Tokens TokenSource

	// BaseURL and HTTPClient default to the public Graph endpoint and
	// http.DefaultClient.
	BaseURL    string
	HTTPClient *http.Client
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

// mailboxPath selects between the /me shorthand and an explicit user
// address segment.
func mailboxPath(mailbox string) string {
	if mailbox == SelfMailbox {
		return "me"
	}
	return "users/" + url.PathEscape(mailbox)
}

func (c *Client) get(ctx context.Context, op, requestURL string, out any) error {
	token, err := c.Tokens.Token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return types.RemoteError{Operation: op, Cause: errs.Wrap(err)}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Prefer", `outlook.body-content-type="text"`)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return types.RemoteError{Operation: op, Cause: errs.Wrap(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return types.RemoteError{Operation: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return types.RemoteError{Operation: op, Cause: errs.Wrap(err)}
	}

	return nil
}

// ListMailFolders returns up to top folders directly under the mailbox
// root, projected to id and display name.
func (c *Client) ListMailFolders(ctx context.Context, mailbox string, top int) ([]Folder, error) {
	q := url.Values{}
	q.Set("$select", "id,displayName")
	q.Set("$top", strconv.Itoa(top))

	requestURL := fmt.Sprintf("%s/%s/mailFolders?%s", c.baseURL(), mailboxPath(mailbox), q.Encode())

	var out foldersResponse
	if err := c.get(ctx, "list mail folders", requestURL, &out); err != nil {
		return nil, err
	}

	return out.Value, nil
}

// GetMailFolder fetches a single folder by id or well-known name.
// A folder that does not exist is reported with ok=false, not an error.
func (c *Client) GetMailFolder(ctx context.Context, mailbox, name string) (Folder, bool, error) {
	q := url.Values{}
	q.Set("$select", "id,displayName")

	requestURL := fmt.Sprintf("%s/%s/mailFolders/%s?%s",
		c.baseURL(), mailboxPath(mailbox), url.PathEscape(name), q.Encode())

	var out Folder
	err := c.get(ctx, "get mail folder", requestURL, &out)

	var remoteErr types.RemoteError
	if errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound {
		return Folder{}, false, nil
	}
	if err != nil {
		return Folder{}, false, err
	}

	return out, true, nil
}

// ListMessages returns up to top messages from the folder, newest
// received first, projected to the fields the presenter prints.
func (c *Client) ListMessages(ctx context.Context, mailbox, folderID string, top int) ([]Message, error) {
	q := url.Values{}
	q.Set("$select", "sender,toRecipients,ccRecipients,subject,body")
	q.Set("$orderby", "receivedDateTime desc")
	q.Set("$top", strconv.Itoa(top))

	requestURL := fmt.Sprintf("%s/%s/mailFolders/%s/messages?%s",
		c.baseURL(), mailboxPath(mailbox), url.PathEscape(folderID), q.Encode())

	var out messagesResponse
	if err := c.get(ctx, "list messages", requestURL, &out); err != nil {
		return nil, err
	}

	return out.Value, nil
}
