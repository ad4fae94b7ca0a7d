package restx

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// ReactionType distinguishes normal from burst (super) reactions.
type ReactionType int

const (
	ReactionTypeNormal ReactionType = 0
	ReactionTypeBurst  ReactionType = 1
)

func reactionsEndpoint(channelID, messageID, emoji string) string {
	return discordgo.EndpointChannels + channelID + "/messages/" + messageID + "/reactions/" + url.PathEscape(emoji)
}

// MessageReactionAdd adds the current user's reaction of the given type.
// emoji is either a unicode emoji or "name:id" for custom emoji.
func (c *Client) MessageReactionAdd(channelID, messageID, emoji string, reactionType ReactionType) error {
	endpoint := reactionsEndpoint(channelID, messageID, emoji) + "/@me?type=" + strconv.Itoa(int(reactionType))
	bucket := discordgo.EndpointChannels + channelID + "/messages/:message/reactions"
	return c.do(http.MethodPut, endpoint, bucket, nil, nil)
}

// MessageReactionUsers lists who reacted with emoji using the given
// reaction type. limit is 1-100, default 25; after pages by user ID.
func (c *Client) MessageReactionUsers(channelID, messageID, emoji string, reactionType ReactionType, limit int, after string) ([]*discordgo.User, error) {
	endpoint := reactionsEndpoint(channelID, messageID, emoji)
	query := url.Values{}
	query.Set("type", strconv.Itoa(int(reactionType)))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if after != "" {
		query.Set("after", after)
	}
	bucket := discordgo.EndpointChannels + channelID + "/messages/:message/reactions"
	var users []*discordgo.User
	return users, c.get(endpoint+"?"+query.Encode(), bucket, &users)
}

// VoiceChannelEffect sends a soundboard or emoji effect into a voice
// channel. Either field may be empty, but not both.
type VoiceChannelEffect struct {
	Emoji   *discordgo.Emoji `json:"emoji,omitempty"`
	SoundID string           `json:"sound_id,omitempty"`
}

// SendVoiceChannelEffect plays an effect in the voice channel the current
// user is connected to.
func (c *Client) SendVoiceChannelEffect(channelID string, effect *VoiceChannelEffect) error {
	endpoint := discordgo.EndpointChannels + channelID + "/voice-channel-effects"
	return c.do(http.MethodPost, endpoint, endpoint, effect, nil)
}
