package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOpponent(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		identities []string
		expected   string
		offset     int
		wantErr    bool
	}{
		{
			name:       "single match",
			text:       "dave thrashed me 3-0",
			identities: []string{"dave@x", "sam@x"},
			expected:   "dave@x",
			offset:     0,
		},
		{
			name:       "case insensitive",
			text:       "I beat SAM 3-1",
			identities: []string{"dave@x", "sam@x"},
			expected:   "sam@x",
			offset:     7,
		},
		{
			name:       "bare handles",
			text:       "lost to john.smith 1-3",
			identities: []string{"john.smith", "dave"},
			expected:   "john.smith",
			offset:     8,
		},
		{
			name:       "last scanned match wins",
			text:       "dave and sam, I beat sam 3-1",
			identities: []string{"dave@x", "sam@x"},
			expected:   "sam@x",
			offset:     9,
		},
		{
			name:       "offset counts bytes of the original text",
			text:       "İİİ beat dave 3-1",
			identities: []string{"dave@x"},
			expected:   "dave@x",
			offset:     12,
		},
		{
			name:       "no match",
			text:       "I beat someone 3-1",
			identities: []string{"dave@x", "sam@x"},
			wantErr:    true,
		},
		{
			name:       "no identities",
			text:       "I beat dave 3-1",
			identities: nil,
			wantErr:    true,
		},
		{
			name:       "empty local part skipped",
			text:       "I beat dave 3-1",
			identities: []string{"@x"},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opponent, offset, err := FindOpponent(tt.text, tt.identities)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOpponentNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, opponent)
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func TestOpponentWon(t *testing.T) {
	cue := func(offset int) *CueMatch {
		return &CueMatch{Text: "cue", Offset: offset}
	}

	tests := []struct {
		name     string
		offset   int
		win      *CueMatch
		lose     *CueMatch
		expected bool
		wantErr  bool
	}{
		{name: "win cue before name", offset: 10, win: cue(2), expected: false},
		{name: "win cue after name", offset: 0, win: cue(5), expected: true},
		{name: "lose cue before name", offset: 10, lose: cue(2), expected: true},
		{name: "lose cue after name", offset: 0, lose: cue(5), expected: false},
		{name: "agreeing cues", offset: 10, win: cue(2), lose: cue(20), expected: false},
		{name: "conflicting cues", offset: 10, win: cue(2), lose: cue(4), wantErr: true},
		{name: "no cues", offset: 10, wantErr: true},
		{name: "tie with name", offset: 4, win: cue(4), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			won, err := OpponentWon(tt.offset, tt.win, tt.lose)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrAmbiguousOutcome)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, won)
		})
	}
}

func TestResolveOpponent(t *testing.T) {
	identities := []string{"dave@x", "sam@x", "élodie"}

	tests := []struct {
		name        string
		text        string
		opponent    string
		opponentWon bool
		err         error
	}{
		{name: "dave thrashed me", text: "dave thrashed me 3-0", opponent: "dave@x", opponentWon: true},
		{name: "I beat dave", text: "I beat Dave 3-1", opponent: "dave@x", opponentWon: false},
		{name: "thrashed by sam", text: "I was thrashed by sam 0-3", opponent: "sam@x", opponentWon: true},
		{name: "sam lost to me", text: "sam lost to me 1-3", opponent: "sam@x", opponentWon: false},
		{name: "multibyte text before the cue", text: "İİİİİİ beat dave 3-1", opponent: "dave@x", opponentWon: false},
		{name: "multibyte name", text: "ÉLODIE beat me 3-1", opponent: "élodie", opponentWon: true},
		{name: "no cue", text: "sam and me 1-3", err: ErrAmbiguousOutcome},
		{name: "unknown name", text: "I beat bob 3-1", err: ErrOpponentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win, lose := ExtractCues(tt.text)
			opponent, opponentWon, err := ResolveOpponent(tt.text, identities, win, lose)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.opponent, opponent)
			assert.Equal(t, tt.opponentWon, opponentWon)
		})
	}
}
