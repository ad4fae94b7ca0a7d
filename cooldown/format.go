package cooldown

import (
	"fmt"
	"time"
)

// FormatRemaining renders a remaining duration for humans: milliseconds
// under a second, one-decimal seconds under a minute, minutes with leftover
// seconds under an hour, hours with leftover minutes beyond that. Leftover
// parts are omitted when zero.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		minutes := int(d / time.Minute)
		seconds := int(d%time.Minute) / int(time.Second)
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		hours := int(d / time.Hour)
		minutes := int(d%time.Hour) / int(time.Minute)
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}
