package auth

import (
	"context"
	"fmt"

	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/public"

	"github.com/mailpeek/mailpeek/internal/logging"
	"github.com/mailpeek/mailpeek/internal/types"
)

const authorityHost = "https://login.microsoftonline.com"

// Session is a live credential bound to one account. It hands out bearer
// tokens for remote calls; refresh happens lazily inside the identity
// library on each request.
type Session struct {
	client  public.Client
	account public.Account
	scopes  []string
}

func (s *Session) Token(ctx context.Context) (string, error) {
	res, err := s.client.AcquireTokenSilent(ctx, s.scopes,
		public.WithSilentAccount(s.account))
	if err != nil {
		return "", types.AuthError{Cause: err}
	}

	return res.AccessToken, nil
}

// Authenticator obtains a Session, either from the cached credential
// record or through an interactive device-code exchange.
type Authenticator struct {
	ClientID string
	TenantID string
	Scopes   []string
	Cache    *FileCache

	// Notify displays the device-code verification message to the user.
	// It is invoked exactly once, before the blocking wait for the
	// out-of-band confirmation, and must not prompt for input.
	Notify func(message string)
}

func (a *Authenticator) Authenticate(ctx context.Context) (*Session, error) {
	client, err := public.New(a.ClientID,
		public.WithAuthority(fmt.Sprintf("%s/%s", authorityHost, a.TenantID)),
		public.WithCache(a.Cache),
	)
	if err != nil {
		return nil, types.AuthError{Cause: err}
	}

	log := logging.FromContext(ctx)

	accounts, err := client.Accounts(ctx)
	if err != nil {
		return nil, types.AuthError{Cause: err}
	}
	if len(accounts) > 0 {
		// Cached record restored; no token round-trip until the first
		// remote call asks for one.
		log.Debug("using cached credential record",
			logging.String("account", accounts[0].PreferredUsername),
		)
		return &Session{client: client, account: accounts[0], scopes: a.Scopes}, nil
	}

	flow, err := client.AcquireTokenByDeviceCode(ctx, a.Scopes)
	if err != nil {
		return nil, types.AuthError{Cause: err}
	}

	if a.Notify != nil {
		a.Notify(flow.Result.Message)
	}

	// Blocks until the user confirms sign-in out of band. There is no
	// local timeout; the provider expires the code on its own schedule
	// and that expiry surfaces here as an error.
	res, err := flow.AuthenticationResult(ctx)
	if err != nil {
		return nil, types.AuthError{Cause: err}
	}

	log.Debug("interactive authentication complete",
		logging.String("account", res.Account.PreferredUsername),
	)

	return &Session{client: client, account: res.Account, scopes: a.Scopes}, nil
}
