// Package confirm renders a two-button confirmation prompt and blocks
// until the owner answers it, once, or the prompt times out.
package confirm

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dgx/collector"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

var (
	// the prompt expired without a qualifying click
	ErrTimedOut = errors.New("confirmation timed out")
	// a nil session or interaction where one was required
	ErrNotReady = errors.New("discord session not available")
)

// Payload is the caller-supplied prompt body rendered above the buttons.
type Payload struct {
	Content string
	Embeds  []*discordgo.MessageEmbed
}

// Options configures one confirmation session.
type Options struct {
	// Timeout defaults to 30s.
	Timeout      time.Duration
	ConfirmLabel string // default "Confirm"
	CancelLabel  string // default "Cancel"
	// Terminal texts written into the message after resolution.
	ConfirmedText string // default "Confirmed."
	CancelledText string // default "Cancelled."
	TimedOutText  string // default "Timed out."
	// SuppressUpdate skips the terminal message edit entirely.
	SuppressUpdate bool
	// OwnerID restricts who may answer; default is the triggering user.
	OwnerID string
}

const defaultTimeout = 30 * time.Second

func withDefaults(opts *Options) Options {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.ConfirmLabel == "" {
		o.ConfirmLabel = "Confirm"
	}
	if o.CancelLabel == "" {
		o.CancelLabel = "Cancel"
	}
	if o.ConfirmedText == "" {
		o.ConfirmedText = "Confirmed."
	}
	if o.CancelledText == "" {
		o.CancelledText = "Cancelled."
	}
	if o.TimedOutText == "" {
		o.TimedOutText = "Timed out."
	}
	return o
}

// customIDs derives the per-invocation button identifiers. The nonce keeps
// concurrent confirmations on one client from answering each other.
func customIDs(nonce string) (confirmID, cancelID string) {
	return "cf:" + nonce + ":yes", "cf:" + nonce + ":no"
}

func buttons(confirmID, cancelID string, o Options) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    o.ConfirmLabel,
					Style:    discordgo.SuccessButton,
					CustomID: confirmID,
				},
				discordgo.Button{
					Label:    o.CancelLabel,
					Style:    discordgo.DangerButton,
					CustomID: cancelID,
				},
			},
		},
	}
}

// makeFilter accepts only this session's buttons clicked by the owner.
// Other identities get a private notice and do not count toward the
// collector's single collected event.
func makeFilter(s *discordgo.Session, ownerID, confirmID, cancelID string) collector.Filter {
	return func(i *discordgo.InteractionCreate) bool {
		id := i.MessageComponentData().CustomID
		if id != confirmID && id != cancelID {
			return false
		}
		if ownerID != "" && userID(i) != ownerID {
			notifyRejected(s, i)
			return false
		}
		return true
	}
}

// Ask renders the prompt as a reply (or as an edit when the interaction is
// already acknowledged) and blocks until the owner clicks confirm or
// cancel, or the timeout passes. It returns true for confirm, false for
// cancel, and false with ErrTimedOut on expiry. The terminal message
// update lands before Ask returns.
func Ask(s *discordgo.Session, i *discordgo.InteractionCreate, payload Payload, opts *Options) (bool, error) {
	if s == nil || i == nil || i.Interaction == nil {
		return false, ErrNotReady
	}
	o := withDefaults(opts)
	ownerID := o.OwnerID
	if ownerID == "" {
		ownerID = userID(i)
	}
	confirmID, cancelID := customIDs(uuid.NewString())
	comps := buttons(confirmID, cancelID, o)

	// reply if the interaction is fresh, edit its response otherwise
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    payload.Content,
			Embeds:     payload.Embeds,
			Components: comps,
		},
	}); err != nil {
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content:    &payload.Content,
			Embeds:     &payload.Embeds,
			Components: &comps,
		}); err != nil {
			return false, fmt.Errorf("can't render confirmation prompt: %w", err)
		}
	}
	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		return false, fmt.Errorf("can't fetch confirmation message: %w", err)
	}

	col := collector.New(s, msg.ID, collector.Options{
		Timeout:   o.Timeout,
		MaxEvents: 1,
		Filter:    makeFilter(s, ownerID, confirmID, cancelID),
	})

	resolve := func(e *discordgo.InteractionCreate) (bool, error) {
		confirmed := e.MessageComponentData().CustomID == confirmID
		ackClick(s, e)
		if !o.SuppressUpdate {
			text := o.CancelledText
			if confirmed {
				text = o.ConfirmedText
			}
			terminalEdit(s, i.Interaction, text)
		}
		return confirmed, nil
	}

	select {
	case e := <-col.Events():
		return resolve(e)
	case <-col.Done():
		// the winning click may still sit in the buffer
		select {
		case e := <-col.Events():
			return resolve(e)
		default:
		}
		if !o.SuppressUpdate {
			terminalEdit(s, i.Interaction, o.TimedOutText)
		}
		return false, ErrTimedOut
	}
}

// ackClick acknowledges the button click without posting anything; the
// terminal edit happens on the original response.
func ackClick(s *discordgo.Session, e *discordgo.InteractionCreate) {
	if err := s.InteractionRespond(e.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		slog.Warn("can't respond", "component", "confirm", "content", "click-ack", "error", err.Error())
	}
}

// terminalEdit rewrites the prompt to its final text with the controls
// removed. Best-effort: the message may already be deleted.
func terminalEdit(s *discordgo.Session, interaction *discordgo.Interaction, text string) {
	empty := []discordgo.MessageComponent{}
	noEmbeds := []*discordgo.MessageEmbed{}
	if _, err := s.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{
		Content:    &text,
		Embeds:     &noEmbeds,
		Components: &empty,
	}); err != nil {
		slog.Warn("can't finalize confirmation prompt", "error", err.Error())
	}
}

func userID(i *discordgo.InteractionCreate) string {
	if i == nil || i.Interaction == nil {
		return ""
	}
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func notifyRejected(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if s == nil {
		return
	}
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:   discordgo.MessageFlagsEphemeral,
			Content: "This confirmation belongs to someone else.",
		},
	}); err != nil {
		slog.Warn("can't respond", "component", "confirm", "content", "reject-notice", "error", err.Error())
	}
}
