package paginator

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func pages(n int) []*discordgo.MessageEmbed {
	out := make([]*discordgo.MessageEmbed, n)
	for i := range out {
		out[i] = &discordgo.MessageEmbed{Title: "page"}
	}
	return out
}

func buttons(t *testing.T, comps []discordgo.MessageComponent) map[string]discordgo.Button {
	t.Helper()
	if len(comps) != 1 {
		t.Fatalf("got %d rows, want 1", len(comps))
	}
	row, ok := comps[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("got %T, want ActionsRow", comps[0])
	}
	out := map[string]discordgo.Button{}
	for _, c := range row.Components {
		b := c.(discordgo.Button)
		parts := strings.Split(b.CustomID, ":")
		out[parts[len(parts)-1]] = b
	}
	return out
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, nil); err != ErrNoPages {
		t.Errorf("no pages: err = %v, want ErrNoPages", err)
	}
	if _, err := New(pages(3), &Options{StartIndex: 3}); err != ErrInvalidPage {
		t.Errorf("start index 3 of 3: err = %v, want ErrInvalidPage", err)
	}
	if _, err := New(pages(3), &Options{StartIndex: -1}); err != ErrInvalidPage {
		t.Errorf("negative start index: err = %v, want ErrInvalidPage", err)
	}
	p, err := New(pages(3), &Options{StartIndex: 2})
	if err != nil {
		t.Fatal(err)
	}
	if p.Index() != 2 {
		t.Errorf("index = %d, want 2", p.Index())
	}
}

func TestGoToRange(t *testing.T) {
	p, err := New(pages(4), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.GoTo(4); err != ErrInvalidPage {
		t.Errorf("GoTo(4): err = %v, want ErrInvalidPage", err)
	}
	if err := p.GoTo(-1); err != ErrInvalidPage {
		t.Errorf("GoTo(-1): err = %v, want ErrInvalidPage", err)
	}
	if err := p.GoTo(3); err != nil {
		t.Fatal(err)
	}
	if p.Index() != 3 {
		t.Errorf("index = %d, want 3", p.Index())
	}
}

func TestNextIndexClamps(t *testing.T) {
	cases := []struct {
		a     action
		index int
		total int
		want  int
	}{
		{actionFirst, 3, 5, 0},
		{actionPrev, 3, 5, 2},
		{actionPrev, 0, 5, 0},
		{actionNext, 3, 5, 4},
		{actionNext, 4, 5, 4},
		{actionLast, 0, 5, 4},
	}
	for _, c := range cases {
		if got := nextIndex(c.a, c.index, c.total); got != c.want {
			t.Errorf("nextIndex(%s, %d, %d) = %d, want %d", c.a, c.index, c.total, got, c.want)
		}
	}
}

func TestComponentsEdges(t *testing.T) {
	p, _ := New(pages(3), nil)
	b := buttons(t, p.components(false))
	if !b["first"].Disabled || !b["prev"].Disabled {
		t.Error("first/prev should be disabled at index 0")
	}
	if b["next"].Disabled || b["last"].Disabled {
		t.Error("next/last should be enabled at index 0 of 3")
	}
	if b["stop"].Disabled {
		t.Error("stop should be enabled")
	}
	if !b["count"].Disabled || b["count"].Label != "1 / 3" {
		t.Errorf("counter = %+v, want disabled 1 / 3", b["count"])
	}

	p.index = 2
	b = buttons(t, p.components(false))
	if b["first"].Disabled || b["prev"].Disabled {
		t.Error("first/prev should be enabled at the last index")
	}
	if !b["next"].Disabled || !b["last"].Disabled {
		t.Error("next/last should be disabled at the last index")
	}
}

func TestComponentsSinglePage(t *testing.T) {
	p, _ := New(pages(1), nil)
	b := buttons(t, p.components(false))
	for _, name := range []string{"first", "prev", "next", "last"} {
		if !b[name].Disabled {
			t.Errorf("%s should be disabled with a single page", name)
		}
	}
	if b["stop"].Disabled {
		t.Error("stop stays enabled with a single page")
	}
}

func TestComponentsDisableAll(t *testing.T) {
	p, _ := New(pages(3), nil)
	p.index = 1
	b := buttons(t, p.components(true))
	for name, btn := range b {
		if !btn.Disabled {
			t.Errorf("%s should be disabled in the terminal render", name)
		}
	}
}

func TestComponentsOptions(t *testing.T) {
	p, _ := New(pages(2), &Options{HideCounter: true, HideStop: true, Labels: Labels{Next: "Onward"}})
	b := buttons(t, p.components(false))
	if _, ok := b["count"]; ok {
		t.Error("counter should be hidden")
	}
	if _, ok := b["stop"]; ok {
		t.Error("stop should be hidden")
	}
	if b["next"].Label != "Onward" {
		t.Errorf("next label = %q, want override", b["next"].Label)
	}
}

func TestNonceScopedIDs(t *testing.T) {
	p1, _ := New(pages(2), nil)
	p2, _ := New(pages(2), nil)
	if p1.customID(actionNext) == p2.customID(actionNext) {
		t.Error("two sessions must not share control customIDs")
	}
	if !strings.HasPrefix(p1.customID(actionNext), p1.customIDPrefix()) {
		t.Error("customIDs carry the session prefix")
	}
}

func TestReplyRequiresSession(t *testing.T) {
	p, _ := New(pages(2), nil)
	if err := p.Reply(nil, nil); err != ErrNotReady {
		t.Errorf("err = %v, want ErrNotReady", err)
	}
	if err := p.Send(nil, "c1", ""); err != ErrNotReady {
		t.Errorf("err = %v, want ErrNotReady", err)
	}
}
