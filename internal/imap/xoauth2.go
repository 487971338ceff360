package imap

import (
	"fmt"

	"github.com/emersion/go-sasl"
)

// xoauth2Client implements the SASL XOAUTH2 mechanism used by Gmail.
// The initial response carries the username and bearer token; a challenge
// from the server is an error blob that must be answered with an empty
// response before the server issues its final tagged NO.
type xoauth2Client struct {
	username string
	token    string
	failed   bool
}

// NewXOAuth2Client returns a sasl.Client for the XOAUTH2 mechanism.
func NewXOAuth2Client(username, token string) sasl.Client {
	return &xoauth2Client{username: username, token: token}
}

func (c *xoauth2Client) Start() (mech string, ir []byte, err error) {
	ir = []byte("user=" + c.username + "\x01auth=Bearer " + c.token + "\x01\x01")
	return "XOAUTH2", ir, nil
}

func (c *xoauth2Client) Next(challenge []byte) ([]byte, error) {
	if c.failed {
		return nil, fmt.Errorf("XOAUTH2 authentication failed: %s", challenge)
	}
	c.failed = true
	return []byte{}, nil
}
