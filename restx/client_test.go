package restx

import (
	"strings"
	"testing"
)

func TestNilClientIsNotReady(t *testing.T) {
	var c *Client
	if _, err := c.GuildSoundboardSounds("g1"); err != ErrNotReady {
		t.Errorf("nil client: err = %v, want ErrNotReady", err)
	}
	c = New(nil)
	if _, err := c.GuildOnboarding("g1"); err != ErrNotReady {
		t.Errorf("nil session: err = %v, want ErrNotReady", err)
	}
}

func TestEndpointShapes(t *testing.T) {
	if got := guildSoundboardEndpoint("g1"); !strings.HasSuffix(got, "/guilds/g1/soundboard-sounds") {
		t.Errorf("soundboard endpoint = %q", got)
	}
	if got := onboardingEndpoint("g1"); !strings.HasSuffix(got, "/guilds/g1/onboarding") {
		t.Errorf("onboarding endpoint = %q", got)
	}
	if got := entitlementsEndpoint("a1"); !strings.HasSuffix(got, "/applications/a1/entitlements") {
		t.Errorf("entitlements endpoint = %q", got)
	}
	if got := reactionsEndpoint("c1", "m1", "👍"); !strings.Contains(got, "/channels/c1/messages/m1/reactions/") {
		t.Errorf("reactions endpoint = %q", got)
	}
}
