package common

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// FormatRank renders a ladder position, with medals for the podium
func FormatRank(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return fmt.Sprintf("#%d", rank)
}

// FormatScore renders a scoreline from the point of view of the first player
func FormatScore(first, second int) string {
	return fmt.Sprintf("%d-%d", first, second)
}

// TruncateName shortens a name to at most max runes, ending in an ellipsis
func TruncateName(name string, max int) string {
	if max <= 1 || utf8.RuneCountInString(name) <= max {
		return name
	}
	runes := []rune(name)
	return string(runes[:max-1]) + "…"
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
