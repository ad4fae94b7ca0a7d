package restx

import (
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// OnboardingMode controls which constraints count toward onboarding
// being enableable.
type OnboardingMode int

const (
	OnboardingModeDefault  OnboardingMode = 0
	OnboardingModeAdvanced OnboardingMode = 1
)

// OnboardingPromptOption is one selectable answer inside a prompt.
type OnboardingPromptOption struct {
	ID          string   `json:"id,omitempty"`
	ChannelIDs  []string `json:"channel_ids"`
	RoleIDs     []string `json:"role_ids"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	EmojiID     string   `json:"emoji_id,omitempty"`
	EmojiName   string   `json:"emoji_name,omitempty"`
}

// OnboardingPrompt is one question shown during guild onboarding.
type OnboardingPrompt struct {
	ID           string                   `json:"id,omitempty"`
	Type         int                      `json:"type"`
	Options      []OnboardingPromptOption `json:"options"`
	Title        string                   `json:"title"`
	SingleSelect bool                     `json:"single_select"`
	Required     bool                     `json:"required"`
	InOnboarding bool                     `json:"in_onboarding"`
}

// Onboarding is a guild's onboarding configuration.
type Onboarding struct {
	GuildID           string             `json:"guild_id,omitempty"`
	Prompts           []OnboardingPrompt `json:"prompts"`
	DefaultChannelIDs []string           `json:"default_channel_ids"`
	Enabled           bool               `json:"enabled"`
	Mode              OnboardingMode     `json:"mode"`
}

func onboardingEndpoint(guildID string) string {
	return discordgo.EndpointGuilds + guildID + "/onboarding"
}

// GuildOnboarding fetches the guild's onboarding configuration.
func (c *Client) GuildOnboarding(guildID string) (*Onboarding, error) {
	onboarding := new(Onboarding)
	endpoint := onboardingEndpoint(guildID)
	return onboarding, c.get(endpoint, endpoint, onboarding)
}

// GuildOnboardingEdit replaces the guild's onboarding configuration.
func (c *Client) GuildOnboardingEdit(guildID string, onboarding *Onboarding) (*Onboarding, error) {
	updated := new(Onboarding)
	endpoint := onboardingEndpoint(guildID)
	return updated, c.do(http.MethodPut, endpoint, endpoint, onboarding, updated)
}
