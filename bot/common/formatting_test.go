package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRank(t *testing.T) {
	tests := []struct {
		rank     int
		expected string
	}{
		{1, "🥇"},
		{2, "🥈"},
		{3, "🥉"},
		{4, "#4"},
		{12, "#12"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatRank(tt.rank))
	}
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"Short name untouched", "Alice", 10, "Alice"},
		{"Exact length untouched", "Alice", 5, "Alice"},
		{"Long name truncated", "Bartholomew Smith", 8, "Barthol…"},
		{"Multibyte runes counted once", "Zoë Ångström", 5, "Zoë …"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.max))
		})
	}
}

func TestFormatDiscordTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "<t:1709294400:R>", FormatDiscordTimestamp(ts, "R"))
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "3-1", FormatScore(3, 1))
}
