package models

import (
	"time"
)

// MatchHistoryEntry is one committed match. Entries are append-only.
type MatchHistoryEntry struct {
	ID               int64     `db:"id"`
	Challenger       string    `db:"challenger"`
	Defender         string    `db:"defender"`
	ChallengerScore  int       `db:"challenger_score"`
	DefenderScore    int       `db:"defender_score"`
	ChallengerRank   *int      `db:"challenger_rank"` // post-match rank, ladder games only
	DefenderRank     *int      `db:"defender_rank"`   // post-match rank, ladder games only
	ChallengeSuccess bool      `db:"challenge_success"`
	IsLadderGame     bool      `db:"is_ladder_game"`
	PlayedAt         time.Time `db:"played_at"`
}

// Winner returns the identity of the player who took the match
func (h *MatchHistoryEntry) Winner() string {
	if h.ChallengeSuccess {
		return h.Challenger
	}
	return h.Defender
}

// MatchSummary is a history entry joined with both players' display names
type MatchSummary struct {
	MatchHistoryEntry
	ChallengerName string
	DefenderName   string
}
