package restx

import (
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// SoundboardSound is one playable sound attached to a guild, or one of
// the platform defaults.
type SoundboardSound struct {
	Name      string          `json:"name"`
	SoundID   string          `json:"sound_id"`
	Volume    float64         `json:"volume"`
	EmojiID   string          `json:"emoji_id,omitempty"`
	EmojiName string          `json:"emoji_name,omitempty"`
	GuildID   string          `json:"guild_id,omitempty"`
	Available bool            `json:"available"`
	User      *discordgo.User `json:"user,omitempty"`
}

// SoundboardSoundParams creates or modifies a sound. Sound is the
// base64-encoded data URI of the audio, required on create only. Volume
// and EmojiID/EmojiName are optional; nil leaves them at their defaults.
type SoundboardSoundParams struct {
	Name      string   `json:"name"`
	Sound     string   `json:"sound,omitempty"`
	Volume    *float64 `json:"volume,omitempty"`
	EmojiID   *string  `json:"emoji_id,omitempty"`
	EmojiName *string  `json:"emoji_name,omitempty"`
}

func guildSoundboardEndpoint(guildID string) string {
	return discordgo.EndpointGuilds + guildID + "/soundboard-sounds"
}

// DefaultSoundboardSounds lists the sounds available to every user.
func (c *Client) DefaultSoundboardSounds() ([]*SoundboardSound, error) {
	var sounds []*SoundboardSound
	url := discordgo.EndpointAPI + "soundboard-default-sounds"
	return sounds, c.get(url, url, &sounds)
}

// GuildSoundboardSounds lists a guild's custom sounds.
func (c *Client) GuildSoundboardSounds(guildID string) ([]*SoundboardSound, error) {
	var wrapped struct {
		Items []*SoundboardSound `json:"items"`
	}
	url := guildSoundboardEndpoint(guildID)
	if err := c.get(url, url, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Items, nil
}

// GuildSoundboardSound fetches one sound.
func (c *Client) GuildSoundboardSound(guildID, soundID string) (*SoundboardSound, error) {
	sound := new(SoundboardSound)
	url := guildSoundboardEndpoint(guildID) + "/" + soundID
	return sound, c.get(url, guildSoundboardEndpoint(guildID), sound)
}

// GuildSoundboardSoundCreate uploads a new sound.
func (c *Client) GuildSoundboardSoundCreate(guildID string, params *SoundboardSoundParams) (*SoundboardSound, error) {
	sound := new(SoundboardSound)
	url := guildSoundboardEndpoint(guildID)
	return sound, c.do(http.MethodPost, url, url, params, sound)
}

// GuildSoundboardSoundEdit modifies an existing sound.
func (c *Client) GuildSoundboardSoundEdit(guildID, soundID string, params *SoundboardSoundParams) (*SoundboardSound, error) {
	sound := new(SoundboardSound)
	url := guildSoundboardEndpoint(guildID) + "/" + soundID
	return sound, c.do(http.MethodPatch, url, guildSoundboardEndpoint(guildID), params, sound)
}

// GuildSoundboardSoundDelete removes a sound.
func (c *Client) GuildSoundboardSoundDelete(guildID, soundID string) error {
	url := guildSoundboardEndpoint(guildID) + "/" + soundID
	return c.do(http.MethodDelete, url, guildSoundboardEndpoint(guildID), nil, nil)
}

// SendSoundboardSound plays a sound in a voice channel the current user
// is connected to. sourceGuildID is required for sounds from another
// guild, "" otherwise.
func (c *Client) SendSoundboardSound(channelID, soundID, sourceGuildID string) error {
	body := struct {
		SoundID       string `json:"sound_id"`
		SourceGuildID string `json:"source_guild_id,omitempty"`
	}{SoundID: soundID, SourceGuildID: sourceGuildID}
	url := discordgo.EndpointChannels + channelID + "/send-soundboard-sound"
	return c.do(http.MethodPost, url, url, body, nil)
}
