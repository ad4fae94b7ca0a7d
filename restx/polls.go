package restx

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// PollAnswerVotersParams pages through the voters of one answer.
type PollAnswerVotersParams struct {
	// After is a user ID; only voters with higher IDs are returned.
	After string
	// Limit is 1-100, default 25.
	Limit int
}

// PollAnswerVoters lists the users who voted for an answer.
func (c *Client) PollAnswerVoters(channelID, messageID string, answerID int, params *PollAnswerVotersParams) ([]*discordgo.User, error) {
	endpoint := discordgo.EndpointChannels + channelID + "/polls/" + messageID + "/answers/" + strconv.Itoa(answerID)
	query := url.Values{}
	if params != nil {
		if params.After != "" {
			query.Set("after", params.After)
		}
		if params.Limit > 0 {
			query.Set("limit", strconv.Itoa(params.Limit))
		}
	}
	full := endpoint
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	var wrapped struct {
		Users []*discordgo.User `json:"users"`
	}
	if err := c.get(full, endpoint, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Users, nil
}

// PollExpire ends a poll immediately and returns the updated message.
func (c *Client) PollExpire(channelID, messageID string) (*discordgo.Message, error) {
	msg := new(discordgo.Message)
	endpoint := discordgo.EndpointChannels + channelID + "/polls/" + messageID + "/expire"
	return msg, c.do(http.MethodPost, endpoint, endpoint, nil, msg)
}
