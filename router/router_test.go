package router

import (
	"errors"
	"regexp"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestDispatchFirstMatchWins(t *testing.T) {
	r := New()
	var hit string
	if err := r.Register("page_*", func(s *discordgo.Session, i *discordgo.InteractionCreate, params map[string]string) error {
		hit = "wildcard"
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("page_1", func(s *discordgo.Session, i *discordgo.InteractionCreate, params map[string]string) error {
		hit = "exact"
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	matched, err := r.Dispatch(nil, nil, "page_1")
	if err != nil {
		t.Fatal(err)
	}
	if !matched || hit != "wildcard" {
		t.Errorf("matched=%v hit=%q, want first-registered wildcard route", matched, hit)
	}

	// reverse registration order reverses the outcome
	r2 := New()
	r2.Register("page_1", func(s *discordgo.Session, i *discordgo.InteractionCreate, params map[string]string) error {
		hit = "exact"
		return nil
	})
	r2.Register("page_*", func(s *discordgo.Session, i *discordgo.InteractionCreate, params map[string]string) error {
		hit = "wildcard"
		return nil
	})
	r2.Dispatch(nil, nil, "page_1")
	if hit != "exact" {
		t.Errorf("hit = %q, want exact route to win when registered first", hit)
	}
}

func TestDispatchOnce(t *testing.T) {
	r := New()
	count := 0
	fallbacks := 0
	r.RegisterOnce("once_only", func(s *discordgo.Session, i *discordgo.InteractionCreate, params map[string]string) error {
		count++
		return nil
	})
	r.SetFallback(func(s *discordgo.Session, i *discordgo.InteractionCreate, params map[string]string) error {
		fallbacks++
		return nil
	})

	if matched, _ := r.Dispatch(nil, nil, "once_only"); !matched {
		t.Fatal("first dispatch should match")
	}
	if matched, _ := r.Dispatch(nil, nil, "once_only"); matched {
		t.Fatal("second dispatch should fall through")
	}
	if count != 1 || fallbacks != 1 {
		t.Errorf("count=%d fallbacks=%d, want 1 and 1", count, fallbacks)
	}
}

func TestDispatchFallbackAndEmptyID(t *testing.T) {
	r := New()
	fallbacks := 0
	r.SetFallback(func(s *discordgo.Session, i *discordgo.InteractionCreate, params map[string]string) error {
		fallbacks++
		return nil
	})

	matched, err := r.Dispatch(nil, nil, "unknown_action")
	if err != nil {
		t.Fatal(err)
	}
	if matched {
		t.Error("no route should match")
	}
	if fallbacks != 1 {
		t.Errorf("fallbacks = %d, want 1", fallbacks)
	}

	// empty identifiers never reach the fallback
	if matched, _ := r.Dispatch(nil, nil, ""); matched {
		t.Error("empty customID should not match")
	}
	if fallbacks != 1 {
		t.Errorf("fallbacks = %d, empty customID should not invoke fallback", fallbacks)
	}
}

func TestDispatchNoFallbackNoMatch(t *testing.T) {
	r := New()
	matched, err := r.Dispatch(nil, nil, "nothing_registered")
	if matched || err != nil {
		t.Errorf("matched=%v err=%v, want false and nil", matched, err)
	}
}

func TestDispatchHandlerErrorPropagates(t *testing.T) {
	r := New()
	boom := errors.New("boom")
	r.Register("explode", func(s *discordgo.Session, i *discordgo.InteractionCreate, params map[string]string) error {
		return boom
	})
	matched, err := r.Dispatch(nil, nil, "explode")
	if !matched || !errors.Is(err, boom) {
		t.Errorf("matched=%v err=%v, want true and the handler error", matched, err)
	}
}

func TestUnregister(t *testing.T) {
	r := New()
	re := regexp.MustCompile(`^x_(?P<n>\d+)$`)
	hits := 0
	h := func(s *discordgo.Session, i *discordgo.InteractionCreate, params map[string]string) error {
		hits++
		return nil
	}
	r.Register("dup", h)
	r.Register("dup", h)
	r.Register(re, h)

	r.Unregister("dup")
	if matched, _ := r.Dispatch(nil, nil, "dup"); matched {
		t.Error("both dup routes should be gone")
	}

	r.Unregister(regexp.MustCompile(`^x_(?P<n>\d+)$`)) // different pointer, keeps the route
	if matched, _ := r.Dispatch(nil, nil, "x_1"); !matched {
		t.Error("regex route should survive unregister with a different pointer")
	}
	r.Unregister(re)
	if matched, _ := r.Dispatch(nil, nil, "x_1"); matched {
		t.Error("regex route should be removed by its original pointer")
	}
}

func TestRegisterValidation(t *testing.T) {
	r := New()
	if err := r.Register("ok", nil); err != ErrInvalidPattern {
		t.Errorf("nil handler: err = %v, want ErrInvalidPattern", err)
	}
	if err := r.Register(3.14, func(s *discordgo.Session, i *discordgo.InteractionCreate, params map[string]string) error { return nil }); err != ErrInvalidPattern {
		t.Errorf("bad pattern: err = %v, want ErrInvalidPattern", err)
	}
}

// the end-to-end scenario: exact, wildcard and regex routes plus a fallback
func TestDispatchScenario(t *testing.T) {
	r := New()
	var gotParams map[string]string
	var gotRoute string
	record := func(name string) Handler {
		return func(s *discordgo.Session, i *discordgo.InteractionCreate, params map[string]string) error {
			gotRoute = name
			gotParams = params
			return nil
		}
	}
	r.Register("open_ticket", record("open_ticket"))
	r.Register("role_*", record("role"))
	r.Register(regexp.MustCompile(`^confirm_ban_(?P<userId>\d+)$`), record("ban"))
	r.SetFallback(record("fallback"))

	if matched, _ := r.Dispatch(nil, nil, "role_admin"); !matched {
		t.Fatal("role_admin should match")
	}
	if gotRoute != "role" || gotParams["wildcard"] != "admin" {
		t.Errorf("route=%q params=%v", gotRoute, gotParams)
	}

	if matched, _ := r.Dispatch(nil, nil, "confirm_ban_42"); !matched {
		t.Fatal("confirm_ban_42 should match")
	}
	if gotRoute != "ban" || gotParams["userId"] != "42" {
		t.Errorf("route=%q params=%v", gotRoute, gotParams)
	}

	if matched, _ := r.Dispatch(nil, nil, "unknown_action"); matched {
		t.Fatal("unknown_action should not match")
	}
	if gotRoute != "fallback" {
		t.Errorf("route = %q, want fallback", gotRoute)
	}
}

func TestCustomID(t *testing.T) {
	if got := CustomID(nil); got != "" {
		t.Errorf("nil interaction: got %q", got)
	}
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{CustomID: "btn_1"},
	}}
	if got := CustomID(i); got != "btn_1" {
		t.Errorf("got %q, want btn_1", got)
	}
}
