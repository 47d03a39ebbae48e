package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatChips formats a chip amount with thousand separators
func FormatChips(chips int64) string {
	str := fmt.Sprintf("%d", chips)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatWagerResult formats the outcome of a casino wager
func FormatWagerResult(won bool, amount, newChips int64) string {
	if won {
		return fmt.Sprintf("🎉 **You won!** You gained **%s chips**. New balance: **%s chips**",
			FormatChips(amount), FormatChips(newChips))
	}
	return fmt.Sprintf("😔 **You lost!** You lost **%s chips**. New balance: **%s chips**",
		FormatChips(amount), FormatChips(newChips))
}

// FormatCooldown renders a remaining wait as "XhYm" or "Zm" for short waits
func FormatCooldown(remaining time.Duration) string {
	remaining = remaining.Round(time.Minute)
	hours := int(remaining.Hours())
	minutes := int(remaining.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// FormatCardHand renders a blackjack hand with its current value
func FormatCardHand(cards []int, value int) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c == 11 {
			parts[i] = "A"
		} else {
			parts[i] = fmt.Sprintf("%d", c)
		}
	}
	return fmt.Sprintf("%s (%d)", strings.Join(parts, " "), value)
}
