package imap

import (
	"time"

	"github.com/emersion/go-imap"
	"golang.org/x/oauth2"
)

// Client is the mail-source contract used by the scanner. Implementations
// must be used from a single goroutine.
type Client interface {
	Connect(server string) error
	Login(user, password string) error
	Authenticate(user string, tokens oauth2.TokenSource) error
	SelectMailbox(name string) error
	ListUIDsSince(cutoff time.Time) ([]uint32, error)
	FetchMessages(uids []uint32) ([]*imap.Message, error)
	Close() error
}
