// Package restx adds typed REST coverage for API surfaces the host
// discordgo version does not expose: soundboard sounds, polls,
// monetization entitlements, guild onboarding, voice channel effects and
// burst reactions. Every method is one authenticated HTTP call shaped
// into a typed result; rate limiting and error mapping stay with
// discordgo's request layer.
package restx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

var ErrNotReady = errors.New("discord session not available")

// Client wraps a discordgo session for the extension endpoints.
type Client struct {
	s *discordgo.Session
}

func New(s *discordgo.Session) *Client {
	return &Client{s: s}
}

// do issues one REST call and decodes the response into out when out is
// non-nil.
func (c *Client) do(method, url, bucket string, body, out interface{}) error {
	if c == nil || c.s == nil {
		return ErrNotReady
	}
	resp, err := c.s.RequestWithBucketID(method, url, body, bucket)
	if err != nil {
		return err
	}
	if out == nil || len(resp) == 0 {
		return nil
	}
	return json.Unmarshal(resp, out)
}

func (c *Client) get(url, bucket string, out interface{}) error {
	return c.do(http.MethodGet, url, bucket, nil, out)
}
