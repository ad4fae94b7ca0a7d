// Package paginator renders an embed sequence behind navigation buttons
// and walks it for as long as its collector lives.
package paginator

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"dgx/collector"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

var (
	// construction with an empty page sequence
	ErrNoPages = errors.New("paginator requires at least one page")
	// navigation to an index outside [0, total-1]
	ErrInvalidPage = errors.New("page index out of range")
	// a nil session or interaction where one was required
	ErrNotReady = errors.New("discord session not available")
)

// Labels overrides the navigation button captions.
type Labels struct {
	First string
	Prev  string
	Next  string
	Last  string
	Stop  string
}

// Options configures one pagination session; it is read once at New and
// never mutated afterwards.
type Options struct {
	// StartIndex is the initial cursor, default 0.
	StartIndex int
	// Timeout ends the session without input, default 120s.
	Timeout time.Duration
	// HideCounter drops the "current / total" indicator button.
	HideCounter bool
	// HideStop drops the stop button.
	HideStop bool
	// Ephemeral makes the reply visible to the invoking user only.
	Ephemeral bool
	// OwnerID restricts who may operate the controls. Empty means the
	// identity that triggered Reply, or anyone for Send.
	OwnerID string
	Labels  Labels
}

const defaultTimeout = 120 * time.Second

type action string

const (
	actionFirst action = "first"
	actionPrev  action = "prev"
	actionNext  action = "next"
	actionLast  action = "last"
	actionStop  action = "stop"
	actionCount action = "count"
)

// Paginator is one session: Idle until Reply/Send, Rendered while its
// collector is alive, Stopped after timeout, a stop click or Stop().
type Paginator struct {
	mu      sync.Mutex
	pages   []*discordgo.MessageEmbed
	index   int
	opts    Options
	nonce   string
	ownerID string

	session     *discordgo.Session
	interaction *discordgo.Interaction // set when rendered via Reply
	channelID   string
	messageID   string
	col         *collector.Collector
	rendered    bool
	stopped     bool
}

func New(pages []*discordgo.MessageEmbed, opts *Options) (*Paginator, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	o := Options{}
	if opts != nil {
		o = *opts
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Labels.First == "" {
		o.Labels.First = "«"
	}
	if o.Labels.Prev == "" {
		o.Labels.Prev = "‹"
	}
	if o.Labels.Next == "" {
		o.Labels.Next = "›"
	}
	if o.Labels.Last == "" {
		o.Labels.Last = "»"
	}
	if o.Labels.Stop == "" {
		o.Labels.Stop = "✕"
	}
	if o.StartIndex < 0 || o.StartIndex >= len(pages) {
		return nil, ErrInvalidPage
	}
	return &Paginator{
		pages: pages,
		index: o.StartIndex,
		opts:  o,
		nonce: uuid.NewString(),
	}, nil
}

// Reply renders the current page as a direct reply to the interaction and
// starts collecting navigation clicks. Controls default to the identity
// that triggered the interaction.
func (p *Paginator) Reply(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if s == nil || i == nil || i.Interaction == nil {
		return ErrNotReady
	}
	owner := p.opts.OwnerID
	if owner == "" {
		owner = userID(i)
	}

	p.mu.Lock()
	if p.rendered {
		p.mu.Unlock()
		return fmt.Errorf("paginator already rendered")
	}
	data := &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{p.pages[p.index]},
		Components: p.components(false),
	}
	if p.opts.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	p.mu.Unlock()

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}); err != nil {
		return fmt.Errorf("can't send paginator reply: %w", err)
	}
	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		return fmt.Errorf("can't fetch paginator message: %w", err)
	}

	p.mu.Lock()
	p.session = s
	p.interaction = i.Interaction
	p.channelID = msg.ChannelID
	p.messageID = msg.ID
	p.ownerID = owner
	p.rendered = true
	p.mu.Unlock()

	p.start(msg.ID)
	return nil
}

// Send posts the paginator as a new channel message. ownerID may be empty
// to let anyone operate the controls.
func (p *Paginator) Send(s *discordgo.Session, channelID, ownerID string) error {
	if s == nil {
		return ErrNotReady
	}
	if ownerID == "" {
		ownerID = p.opts.OwnerID
	}

	p.mu.Lock()
	if p.rendered {
		p.mu.Unlock()
		return fmt.Errorf("paginator already rendered")
	}
	send := &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{p.pages[p.index]},
		Components: p.components(false),
	}
	p.mu.Unlock()

	msg, err := s.ChannelMessageSendComplex(channelID, send)
	if err != nil {
		return fmt.Errorf("can't send paginator message: %w", err)
	}

	p.mu.Lock()
	p.session = s
	p.channelID = msg.ChannelID
	p.messageID = msg.ID
	p.ownerID = ownerID
	p.rendered = true
	p.mu.Unlock()

	p.start(msg.ID)
	return nil
}

func (p *Paginator) start(messageID string) {
	p.mu.Lock()
	prefix := p.customIDPrefix()
	owner := p.ownerID
	s := p.session
	p.mu.Unlock()

	col := collector.New(s, messageID, collector.Options{
		Timeout: p.opts.Timeout,
		Filter: func(i *discordgo.InteractionCreate) bool {
			if !strings.HasPrefix(i.MessageComponentData().CustomID, prefix) {
				return false
			}
			if owner != "" && userID(i) != owner {
				notifyRejected(s, i)
				return false
			}
			return true
		},
	})
	p.mu.Lock()
	p.col = col
	p.mu.Unlock()

	go func() {
		for {
			select {
			case e := <-col.Events():
				p.handleClick(e)
			case <-col.Done():
				p.finish()
				return
			}
		}
	}()
}

func (p *Paginator) handleClick(e *discordgo.InteractionCreate) {
	act := action(strings.TrimPrefix(e.MessageComponentData().CustomID, p.customIDPrefix()))
	if act == actionStop {
		// ack the click; finish() disables the controls
		if err := p.session.InteractionRespond(e.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		}); err != nil {
			slog.Warn("can't respond", "component", "paginator", "content", "stop-ack", "error", err.Error())
		}
		p.col.Stop()
		return
	}

	p.mu.Lock()
	p.index = nextIndex(act, p.index, len(p.pages))
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{p.pages[p.index]},
			Components: p.components(false),
		},
	}
	p.mu.Unlock()

	if err := p.session.InteractionRespond(e.Interaction, resp); err != nil {
		slog.Warn("can't respond", "component", "paginator", "content", "navigate", "error", err.Error())
	}
}

// GoTo jumps the cursor programmatically and re-renders when the session
// is live.
func (p *Paginator) GoTo(index int) error {
	p.mu.Lock()
	if index < 0 || index >= len(p.pages) {
		p.mu.Unlock()
		return ErrInvalidPage
	}
	p.index = index
	if !p.rendered || p.stopped {
		p.mu.Unlock()
		return nil
	}
	embeds := []*discordgo.MessageEmbed{p.pages[p.index]}
	comps := p.components(false)
	s := p.session
	interaction := p.interaction
	channelID, messageID := p.channelID, p.messageID
	p.mu.Unlock()

	if interaction != nil {
		_, err := s.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{
			Embeds:     &embeds,
			Components: &comps,
		})
		return err
	}
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         messageID,
		Channel:    channelID,
		Embeds:     &embeds,
		Components: &comps,
	})
	return err
}

// Stop forces immediate termination, equivalent to a stop click.
func (p *Paginator) Stop() {
	p.mu.Lock()
	col := p.col
	p.mu.Unlock()
	if col != nil {
		col.Stop()
	}
}

// Index reports the current cursor.
func (p *Paginator) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// finish runs the terminal transition once: mark stopped and disable the
// controls, preserving the last-shown page. The edit is best-effort; the
// message may already be gone.
func (p *Paginator) finish() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	comps := p.components(true)
	s := p.session
	interaction := p.interaction
	channelID, messageID := p.channelID, p.messageID
	p.mu.Unlock()

	var err error
	if interaction != nil {
		_, err = s.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{
			Components: &comps,
		})
	} else {
		_, err = s.ChannelMessageEditComplex(&discordgo.MessageEdit{
			ID:         messageID,
			Channel:    channelID,
			Components: &comps,
		})
	}
	if err != nil {
		slog.Warn("can't disable paginator controls", "error", err.Error())
	}
}

func (p *Paginator) customIDPrefix() string {
	return "pg:" + p.nonce + ":"
}

func (p *Paginator) customID(a action) string {
	return p.customIDPrefix() + string(a)
}

// components builds the navigation row for the current cursor. Boundary
// buttons are disabled at the edges, everything except stop is disabled
// for a single page, and disableAll freezes the terminal render.
func (p *Paginator) components(disableAll bool) []discordgo.MessageComponent {
	total := len(p.pages)
	atFirst := p.index == 0
	atLast := p.index == total-1
	single := total == 1

	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    p.opts.Labels.First,
			Style:    discordgo.SecondaryButton,
			CustomID: p.customID(actionFirst),
			Disabled: disableAll || single || atFirst,
		},
		discordgo.Button{
			Label:    p.opts.Labels.Prev,
			Style:    discordgo.SecondaryButton,
			CustomID: p.customID(actionPrev),
			Disabled: disableAll || single || atFirst,
		},
	}
	if !p.opts.HideCounter {
		buttons = append(buttons, discordgo.Button{
			Label:    fmt.Sprintf("%d / %d", p.index+1, total),
			Style:    discordgo.SecondaryButton,
			CustomID: p.customID(actionCount),
			Disabled: true,
		})
	}
	buttons = append(buttons,
		discordgo.Button{
			Label:    p.opts.Labels.Next,
			Style:    discordgo.SecondaryButton,
			CustomID: p.customID(actionNext),
			Disabled: disableAll || single || atLast,
		},
		discordgo.Button{
			Label:    p.opts.Labels.Last,
			Style:    discordgo.SecondaryButton,
			CustomID: p.customID(actionLast),
			Disabled: disableAll || single || atLast,
		},
	)
	if !p.opts.HideStop {
		buttons = append(buttons, discordgo.Button{
			Label:    p.opts.Labels.Stop,
			Style:    discordgo.DangerButton,
			CustomID: p.customID(actionStop),
			Disabled: disableAll,
		})
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}

// nextIndex applies one navigation action to the cursor, clamped to the
// page range.
func nextIndex(a action, index, total int) int {
	switch a {
	case actionFirst:
		return 0
	case actionPrev:
		if index > 0 {
			return index - 1
		}
		return 0
	case actionNext:
		if index < total-1 {
			return index + 1
		}
		return total - 1
	case actionLast:
		return total - 1
	default:
		return index
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

// notifyRejected tells a non-owner, privately, that the controls are not
// theirs. Failures are cosmetic and swallowed.
func notifyRejected(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if s == nil {
		return
	}
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:   discordgo.MessageFlagsEphemeral,
			Content: "These controls belong to someone else.",
		},
	}); err != nil {
		slog.Warn("can't respond", "component", "paginator", "content", "reject-notice", "error", err.Error())
	}
}
