package imap

import (
	"context"
	"fmt"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"golang.org/x/oauth2"
)

type StandardClient struct {
	client  *client.Client
	timeout time.Duration
}

// NewStandardClient creates a new StandardClient with a default timeout of 30 seconds for IMAP operations
func NewStandardClient() *StandardClient {
	return &StandardClient{
		timeout: 30 * time.Second,
	}
}

// Connect establishes a secure connection to the IMAP server using TLS. It returns an error if the connection fails.
func (c *StandardClient) Connect(server string) error {
	cl, err := client.DialTLS(server, nil)
	if err != nil {
		return fmt.Errorf("IMAP connection error: %w", err)
	}
	c.client = cl
	return nil
}

// Login authenticates the user with the IMAP server using the provided username and password. It returns an error if authentication fails or if there is no active connection.
func (c *StandardClient) Login(user, password string) error {
	if c.client == nil {
		return fmt.Errorf("not connected")
	}
	return c.client.Login(user, password)
}

// Authenticate performs SASL XOAUTH2 authentication using an access token
// obtained from the token source. Expired tokens are refreshed by the
// source before each attempt.
func (c *StandardClient) Authenticate(user string, tokens oauth2.TokenSource) error {
	if c.client == nil {
		return fmt.Errorf("not connected")
	}

	token, err := tokens.Token()
	if err != nil {
		return fmt.Errorf("error obtaining OAuth2 token: %w", err)
	}

	return c.client.Authenticate(NewXOAuth2Client(user, token.AccessToken))
}

// SelectMailbox selects the specified mailbox (e.g., "INBOX") in read-only
// mode for subsequent operations. It returns an error if the mailbox cannot
// be selected or if there is no active connection.
func (c *StandardClient) SelectMailbox(name string) error {
	if c.client == nil {
		return fmt.Errorf("not connected")
	}
	_, err := c.client.Select(name, true)
	return err
}

// ListUIDsSince retrieves the UIDs of emails received on or after the cutoff
// date. It returns the UIDs in mailbox order and an error if the search
// operation fails or if there is no active connection.
func (c *StandardClient) ListUIDsSince(cutoff time.Time) ([]uint32, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected")
	}

	criteria := imap.NewSearchCriteria()
	criteria.Since = cutoff

	uids, err := c.client.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("error searching for emails since %s: %w", cutoff.Format("2006-01-02"), err)
	}

	return uids, nil
}

// FetchMessages retrieves the full email messages for the given UIDs in one
// fetch. BODY.PEEK is used so that scanning never marks mail as seen. It
// returns the retrieved messages (possibly fewer than requested if the
// server no longer has some UIDs) and an error if the fetch operation fails
// or if there is no active connection.
func (c *StandardClient) FetchMessages(uids []uint32) ([]*imap.Message, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected")
	}
	if len(uids) == 0 {
		return nil, nil
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uids...)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchInternalDate, imap.FetchUid}

	prevTimeout := c.client.Timeout
	c.client.Timeout = c.timeout
	defer func() { c.client.Timeout = prevTimeout }()

	messages := make(chan *imap.Message, len(uids))
	done := make(chan error, 1)

	go func() {
		done <- c.client.UidFetch(seqSet, items, messages)
	}()

	fetched := make([]*imap.Message, 0, len(uids))
	for msg := range messages {
		fetched = append(fetched, msg)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("error fetching %d messages: %w", len(uids), err)
	}

	return fetched, nil
}

// Close logs out from the IMAP server and closes the connection. It returns an error if the logout operation fails. If there is no active connection, it simply returns nil.
func (c *StandardClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Logout()
}

// TokenSource builds a self-refreshing Gmail OAuth2 token source from
// refresh-token credentials.
func TokenSource(clientID, clientSecret, refreshToken, tokenURL string) oauth2.TokenSource {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: tokenURL,
		},
	}
	return conf.TokenSource(context.Background(), &oauth2.Token{RefreshToken: refreshToken})
}
