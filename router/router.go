// Package router dispatches interaction customIDs to handlers registered
// with exact, wildcard or regular-expression patterns.
package router

import (
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Handler handles one dispatched interaction. params holds the substrings
// extracted by the matched pattern, it is never nil on a match.
type Handler func(s *discordgo.Session, i *discordgo.InteractionCreate, params map[string]string) error

// Metrics receives dispatch outcomes: "matched", "fallback" or "dropped".
type Metrics interface {
	Dispatched(outcome string)
}

type route struct {
	pattern interface{} // original input, used by Unregister
	m       *matcher
	handler Handler
	once    bool
}

// Router holds an ordered route list plus at most one fallback. Routes are
// tried in registration order and the first match wins; precedence is the
// caller's responsibility.
type Router struct {
	mu       sync.Mutex
	routes   []*route
	fallback Handler
	metrics  Metrics
}

func New() *Router {
	return &Router{}
}

// SetMetrics installs an optional dispatch-outcome hook.
func (r *Router) SetMetrics(m Metrics) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = m
}

// Register appends a route. pattern must be a string (exact or with *
// wildcards) or a *regexp.Regexp; anchoring a regexp is the caller's
// responsibility.
func (r *Router) Register(pattern interface{}, handler Handler) error {
	return r.register(pattern, handler, false)
}

// RegisterOnce appends a route that is removed right before its first
// matching dispatch runs.
func (r *Router) RegisterOnce(pattern interface{}, handler Handler) error {
	return r.register(pattern, handler, true)
}

func (r *Router) register(pattern interface{}, handler Handler, once bool) error {
	if handler == nil {
		return ErrInvalidPattern
	}
	m, err := compile(pattern)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, &route{pattern: pattern, m: m, handler: handler, once: once})
	return nil
}

// SetFallback replaces the handler invoked when no route matches.
func (r *Router) SetFallback(handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = handler
}

// Unregister removes every route whose original pattern equals the given
// one: value equality for strings, pointer identity for regexps.
func (r *Router) Unregister(pattern interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.routes[:0]
	for _, rt := range r.routes {
		if rt.pattern != pattern {
			kept = append(kept, rt)
		}
	}
	r.routes = kept
}

// Dispatch routes customID to the first matching handler in registration
// order and returns whether a route matched. Handler errors are returned
// untouched. An empty customID is ignored without invoking the fallback.
func (r *Router) Dispatch(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) (bool, error) {
	if customID == "" {
		r.record("dropped")
		return false, nil
	}

	r.mu.Lock()
	var (
		handler Handler
		params  map[string]string
	)
	for idx, rt := range r.routes {
		p, ok := rt.m.match(customID)
		if !ok {
			continue
		}
		handler, params = rt.handler, p
		if rt.once {
			r.routes = append(r.routes[:idx], r.routes[idx+1:]...)
		}
		break
	}
	fallback := r.fallback
	r.mu.Unlock()

	if handler != nil {
		r.record("matched")
		return true, handler(s, i, params)
	}
	if fallback != nil {
		r.record("fallback")
		return false, fallback(s, i, map[string]string{})
	}
	r.record("dropped")
	return false, nil
}

// Attach subscribes a dispatch adapter to the session's InteractionCreate
// stream and returns the remove function. Handler errors surface here, at
// the event-source boundary, the same way a top-level bot handler would
// log them.
func (r *Router) Attach(s *discordgo.Session) func() {
	return s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		id := CustomID(i)
		if id == "" {
			return
		}
		if _, err := r.Dispatch(s, i, id); err != nil {
			slog.Error("handler error", "custom_id", id, "error", err.Error())
		}
	})
}

func (r *Router) record(outcome string) {
	r.mu.Lock()
	m := r.metrics
	r.mu.Unlock()
	if m != nil {
		m.Dispatched(outcome)
	}
}

// CustomID extracts the routeable identifier from an interaction: the
// command name for slash commands, the customID for components and modals,
// "" for anything else.
func CustomID(i *discordgo.InteractionCreate) string {
	if i == nil || i.Interaction == nil {
		return ""
	}
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return i.ApplicationCommandData().Name
	case discordgo.InteractionMessageComponent:
		return i.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		return i.ModalSubmitData().CustomID
	default:
		return ""
	}
}
