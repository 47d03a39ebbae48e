package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatChips(t *testing.T) {
	assert.Equal(t, "0", FormatChips(0))
	assert.Equal(t, "999", FormatChips(999))
	assert.Equal(t, "1,000", FormatChips(1000))
	assert.Equal(t, "123,456,789", FormatChips(123456789))
}

func TestFormatWagerResult(t *testing.T) {
	won := FormatWagerResult(true, 50, 150)
	assert.Contains(t, won, "won")
	assert.Contains(t, won, "50 chips")
	assert.Contains(t, won, "150 chips")

	lost := FormatWagerResult(false, 50, 50)
	assert.Contains(t, lost, "lost")
}

func TestFormatCooldown(t *testing.T) {
	assert.Equal(t, "23h0m", FormatCooldown(23*time.Hour))
	assert.Equal(t, "1h30m", FormatCooldown(90*time.Minute))
	assert.Equal(t, "5m", FormatCooldown(5*time.Minute))
	assert.Equal(t, "1m", FormatCooldown(10*time.Second), "short waits round up to a minute")
}

func TestFormatCardHand(t *testing.T) {
	assert.Equal(t, "10 A (21)", FormatCardHand([]int{10, 11}, 21))
	assert.Equal(t, "2 3 4 (9)", FormatCardHand([]int{2, 3, 4}, 9))
}
