package service

import (
	"context"

	"ladder/events"
	"ladder/models"
)

// RankingRepository defines the interface for ladder position data access
type RankingRepository interface {
	// GetByIdentity retrieves a player's ranking, nil when the player has not signed up
	GetByIdentity(ctx context.Context, identity string) (*models.PlayerRanking, error)

	// GetForUpdate retrieves and row-locks the given players until the transaction ends
	GetForUpdate(ctx context.Context, identities ...string) ([]*models.PlayerRanking, error)

	// ListOrderedByRank returns every player, best rank first
	ListOrderedByRank(ctx context.Context) ([]*models.PlayerRanking, error)

	// ListIdentities returns every known identity ordered by identity
	ListIdentities(ctx context.Context) ([]string, error)

	// Create adds a player at the bottom of the ladder
	Create(ctx context.Context, identity, displayName string) (*models.PlayerRanking, error)

	// UpdateDisplayName replaces a player's derived display name
	UpdateDisplayName(ctx context.Context, identity, displayName string) error

	// Put writes the mutable fields of the given rankings as one batch
	Put(ctx context.Context, rankings ...*models.PlayerRanking) error
}

// HistoryRepository defines the interface for the append-only match log
type HistoryRepository interface {
	// Append stores a new entry, filling in its ID and PlayedAt
	Append(ctx context.Context, entry *models.MatchHistoryEntry) error

	// ListChronological returns every entry, oldest first
	ListChronological(ctx context.Context) ([]*models.MatchHistoryEntry, error)

	// ListRecent returns up to limit entries, newest first
	ListRecent(ctx context.Context, limit int) ([]*models.MatchHistoryEntry, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// LadderService defines the interface for ladder operations
type LadderService interface {
	// Join signs the actor up at the bottom of the ladder if they are new
	Join(ctx context.Context, actor models.Actor) (*models.PlayerRanking, error)

	// InterpretReport turns a free-text report into an unconfirmed match result
	InterpretReport(ctx context.Context, actor models.Actor, text string) (*models.MatchResult, error)

	// RecordResult commits a confirmed match result
	RecordResult(ctx context.Context, result models.MatchResult) (*models.MatchOutcome, error)

	// Standings returns the ladder in rank order
	Standings(ctx context.Context) (*models.Standings, error)

	// Timeline returns the rank movement history for charting
	Timeline(ctx context.Context) (*models.Timeline, error)

	// RecentMatches returns the latest committed matches with display names
	RecentMatches(ctx context.Context, limit int) ([]*models.MatchSummary, error)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	RankingRepository() RankingRepository
	HistoryRepository() HistoryRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
