package format

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// TimestampStyle selects how Discord clients render a <t:...> tag.
type TimestampStyle string

const (
	TimestampShortTime     TimestampStyle = "t"
	TimestampLongTime      TimestampStyle = "T"
	TimestampShortDate     TimestampStyle = "d"
	TimestampLongDate      TimestampStyle = "D"
	TimestampShortDateTime TimestampStyle = "f"
	TimestampLongDateTime  TimestampStyle = "F"
	TimestampRelative      TimestampStyle = "R"
)

// Timestamp renders t as a Discord timestamp tag.
func Timestamp(t time.Time, style TimestampStyle) string {
	if style == "" {
		style = TimestampShortDateTime
	}
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), style)
}

var whenParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// ParseTimestamp turns natural-language text ("tomorrow at 5pm") into a
// Discord timestamp tag, resolved against ref.
func ParseTimestamp(text string, ref time.Time, style TimestampStyle) (string, error) {
	result, err := whenParser.Parse(text, ref)
	if err != nil {
		return "", fmt.Errorf("can't parse time text: %w", err)
	}
	if result == nil {
		return "", fmt.Errorf("no time found in %q", text)
	}
	return Timestamp(result.Time, style), nil
}
