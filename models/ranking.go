package models

import (
	"fmt"
	"time"
)

// PlayerRanking is one player's position on the ladder
type PlayerRanking struct {
	Identity    string    `db:"identity"`
	DisplayName string    `db:"display_name"`
	Rank        int       `db:"rank"`
	Wins        int       `db:"wins"`
	Losses      int       `db:"losses"`
	News        string    `db:"news"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Record returns the win-loss record formatted as "W-L"
func (p *PlayerRanking) Record() string {
	return fmt.Sprintf("%d-%d", p.Wins, p.Losses)
}

// Actor is the player making the current request. It is resolved once per
// request and passed explicitly to every service call.
type Actor struct {
	Identity    string
	DisplayName string
}

// Standings is the ladder in rank order along with the matching display names
type Standings struct {
	Rankings     []*PlayerRanking
	DisplayNames []string
}
