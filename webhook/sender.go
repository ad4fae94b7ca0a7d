// Package webhook sends messages through a Discord webhook, splitting
// content that exceeds the platform's message size limit.
package webhook

import (
	"errors"
	"fmt"
	"strings"

	"dgx/format"

	"github.com/bwmarrin/discordgo"
)

// Discord rejects message content beyond this many characters.
const MaxContentLength = 2000

var (
	ErrNotReady     = errors.New("discord session not available")
	ErrEmptyPayload = errors.New("nothing to send")
)

// Sender issues webhook sends with a fixed identity. Username is cleaned
// up (trimmed, title-cased) before sending.
type Sender struct {
	Session   *discordgo.Session
	ID        string
	Token     string
	Username  string
	AvatarURL string
}

func NewSender(s *discordgo.Session, id, token string) *Sender {
	return &Sender{Session: s, ID: id, Token: token}
}

// Send chunks content to the message size limit and issues one send per
// chunk, waiting for each. Embeds ride on the first chunk only. Returns
// the created messages in order.
func (w *Sender) Send(content string, embeds ...*discordgo.MessageEmbed) ([]*discordgo.Message, error) {
	if w == nil || w.Session == nil {
		return nil, ErrNotReady
	}
	chunks := SplitContent(content, MaxContentLength)
	if len(chunks) == 0 {
		if len(embeds) == 0 {
			return nil, ErrEmptyPayload
		}
		chunks = []string{""}
	}

	username := ""
	if w.Username != "" {
		username = format.CleanupString(w.Username)
	}

	messages := make([]*discordgo.Message, 0, len(chunks))
	for idx, chunk := range chunks {
		params := &discordgo.WebhookParams{
			Content:   chunk,
			Username:  username,
			AvatarURL: w.AvatarURL,
		}
		if idx == 0 {
			params.Embeds = embeds
		}
		msg, err := w.Session.WebhookExecute(w.ID, w.Token, true, params)
		if err != nil {
			return messages, fmt.Errorf("can't execute webhook (chunk %d of %d): %w", idx+1, len(chunks), err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// SplitContent breaks content into pieces of at most limit runes,
// preferring line boundaries and hard-splitting single lines that are
// longer than the limit on their own.
func SplitContent(content string, limit int) []string {
	if content == "" {
		return nil
	}
	if limit <= 0 {
		limit = MaxContentLength
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, line := range strings.Split(content, "\n") {
		runes := []rune(line)
		for len(runes) > limit {
			flush()
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		// +1 for the newline that would join it to the current chunk
		if currentLen > 0 && currentLen+1+len(runes) > limit {
			flush()
		}
		if currentLen > 0 {
			current.WriteByte('\n')
			currentLen++
		}
		current.WriteString(string(runes))
		currentLen += len(runes)
	}
	flush()
	return chunks
}
