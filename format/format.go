// Package format holds small, stateless helpers for Discord-flavored text.
package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UserMention renders <@id>.
func UserMention(id string) string {
	return "<@" + id + ">"
}

// ChannelMention renders <#id>.
func ChannelMention(id string) string {
	return "<#" + id + ">"
}

// RoleMention renders <@&id>.
func RoleMention(id string) string {
	return "<@&" + id + ">"
}

// CommandMention renders a clickable slash-command mention.
func CommandMention(name, id string) string {
	return fmt.Sprintf("</%s:%s>", name, id)
}

// Truncate cuts s to at most n runes, ending with an ellipsis when cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}

// CleanupString strips surrounding space, title-cases and removes a
// trailing period.
func CleanupString(s string) string {
	s = strings.TrimSpace(s)
	s = cases.Title(language.English).String(s)
	s = strings.TrimSuffix(s, ".")
	return s
}
