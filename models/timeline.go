package models

import (
	"time"
)

// NoRank marks a timeline slot for a player who was not party to the event
const NoRank = 0

// TimelineEvent is one plotted ladder swap. Before and After hold one slot
// per player in Timeline.Players order.
type TimelineEvent struct {
	PlayedAt   time.Time
	Challenger string
	Defender   string
	Before     []int
	After      []int
	IsCurrent  bool // the trailing present-day snapshot
}

// Timeline is the rank movement history of the ladder
type Timeline struct {
	Players      []string // identities in current rank order
	DisplayNames []string
	Events       []TimelineEvent
}
