package webhook_test

import (
	"strings"
	"testing"

	"dgx/webhook"
)

func TestSplitContentShort(t *testing.T) {
	if got := webhook.SplitContent("", 10); got != nil {
		t.Errorf("empty content: got %v, want nil", got)
	}
	got := webhook.SplitContent("hello", 10)
	if len(got) != 1 || got[0] != "hello" {
		t.Errorf("got %v, want [hello]", got)
	}
}

func TestSplitContentPrefersLineBoundaries(t *testing.T) {
	content := strings.Repeat("aaaa\n", 5) + "bbbb"
	got := webhook.SplitContent(content, 10)
	want := []string{"aaaa\naaaa", "aaaa\naaaa", "aaaa\nbbbb"}
	if len(got) != len(want) {
		t.Fatalf("got %d chunks %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, got[i], want[i])
		}
	}
	if strings.Join(got, "\n") != content {
		t.Error("joining the chunks should restore the content")
	}
}

func TestSplitContentHardSplitsLongLines(t *testing.T) {
	content := strings.Repeat("x", 25)
	got := webhook.SplitContent(content, 10)
	if len(got) != 3 {
		t.Fatalf("got %d chunks, want 3", len(got))
	}
	if got[0] != strings.Repeat("x", 10) || got[1] != strings.Repeat("x", 10) || got[2] != strings.Repeat("x", 5) {
		t.Errorf("got %v", got)
	}
}

func TestSplitContentRuneSafe(t *testing.T) {
	content := strings.Repeat("é", 15)
	got := webhook.SplitContent(content, 10)
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2", len(got))
	}
	if got[0] != strings.Repeat("é", 10) || got[1] != strings.Repeat("é", 5) {
		t.Errorf("multibyte runes split mid-character: %v", got)
	}
}

func TestSplitContentDefaultLimit(t *testing.T) {
	content := strings.Repeat("a", 2500)
	got := webhook.SplitContent(content, 0)
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2 at the default limit", len(got))
	}
	if len(got[0]) != webhook.MaxContentLength {
		t.Errorf("first chunk = %d chars, want %d", len(got[0]), webhook.MaxContentLength)
	}
}

func TestSendValidation(t *testing.T) {
	var w *webhook.Sender
	if _, err := w.Send("hi"); err != webhook.ErrNotReady {
		t.Errorf("nil sender: err = %v, want ErrNotReady", err)
	}
	w = webhook.NewSender(nil, "id", "token")
	if _, err := w.Send("hi"); err != webhook.ErrNotReady {
		t.Errorf("nil session: err = %v, want ErrNotReady", err)
	}
}
