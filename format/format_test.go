package format_test

import (
	"strings"
	"testing"
	"time"

	"dgx/format"
)

func TestMentions(t *testing.T) {
	if got := format.UserMention("42"); got != "<@42>" {
		t.Errorf("UserMention = %q", got)
	}
	if got := format.ChannelMention("42"); got != "<#42>" {
		t.Errorf("ChannelMention = %q", got)
	}
	if got := format.RoleMention("42"); got != "<@&42>" {
		t.Errorf("RoleMention = %q", got)
	}
	if got := format.CommandMention("ping", "42"); got != "</ping:42>" {
		t.Errorf("CommandMention = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := format.Truncate("hello", 10); got != "hello" {
		t.Errorf("short string changed: %q", got)
	}
	if got := format.Truncate("hello", 3); got != "he…" {
		t.Errorf("got %q, want he…", got)
	}
	if got := format.Truncate("héllo wörld", 5); got != "héll…" {
		t.Errorf("rune-aware truncate: %q", got)
	}
	if got := format.Truncate("x", 0); got != "" {
		t.Errorf("zero width: %q", got)
	}
}

func TestCleanupString(t *testing.T) {
	if got := format.CleanupString("  weekly report.  "); got != "Weekly Report" {
		t.Errorf("got %q, want Weekly Report", got)
	}
}

func TestTimestamp(t *testing.T) {
	at := time.Unix(1_700_000_000, 0)
	if got := format.Timestamp(at, format.TimestampRelative); got != "<t:1700000000:R>" {
		t.Errorf("got %q", got)
	}
	if got := format.Timestamp(at, ""); got != "<t:1700000000:f>" {
		t.Errorf("default style: %q", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	ref := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	got, err := format.ParseTimestamp("tomorrow", ref, format.TimestampShortDate)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "<t:") || !strings.HasSuffix(got, ":d>") {
		t.Errorf("got %q, want a <t:...:d> tag", got)
	}

	if _, err := format.ParseTimestamp("qqqqq", ref, format.TimestampShortDate); err == nil {
		t.Error("text without a time should not parse")
	}
}
