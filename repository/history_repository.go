package repository

import (
	"context"
	"fmt"

	"ladder/database"
	"ladder/models"

	"github.com/jackc/pgx/v5"
)

const historyColumns = `id, challenger, defender, challenger_score, defender_score,
	challenger_rank, defender_rank, challenge_success, is_ladder_game, played_at`

// HistoryRepository implements the HistoryRepository interface
type HistoryRepository struct {
	q queryable
}

// NewHistoryRepository creates a new match history repository
func NewHistoryRepository(db *database.DB) *HistoryRepository {
	return &HistoryRepository{q: db.Pool}
}

func newHistoryRepositoryWithTx(tx queryable) *HistoryRepository {
	return &HistoryRepository{q: tx}
}

// Append stores entry and fills in its ID and PlayedAt
func (r *HistoryRepository) Append(ctx context.Context, entry *models.MatchHistoryEntry) error {
	query := `
		INSERT INTO match_history (
			challenger, defender, challenger_score, defender_score,
			challenger_rank, defender_rank, challenge_success, is_ladder_game
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, played_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.Challenger,
		entry.Defender,
		entry.ChallengerScore,
		entry.DefenderScore,
		entry.ChallengerRank,
		entry.DefenderRank,
		entry.ChallengeSuccess,
		entry.IsLadderGame,
	).Scan(&entry.ID, &entry.PlayedAt)
	if err != nil {
		return fmt.Errorf("failed to append match history: %w", err)
	}
	return nil
}

// ListChronological returns every entry, oldest first
func (r *HistoryRepository) ListChronological(ctx context.Context) ([]*models.MatchHistoryEntry, error) {
	query := `SELECT ` + historyColumns + ` FROM match_history ORDER BY played_at ASC, id ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list match history: %w", err)
	}
	return collectHistory(rows)
}

// ListRecent returns up to limit entries, newest first
func (r *HistoryRepository) ListRecent(ctx context.Context, limit int) ([]*models.MatchHistoryEntry, error) {
	query := `SELECT ` + historyColumns + ` FROM match_history ORDER BY played_at DESC, id DESC LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent matches: %w", err)
	}
	return collectHistory(rows)
}

func collectHistory(rows pgx.Rows) ([]*models.MatchHistoryEntry, error) {
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.MatchHistoryEntry, error) {
		var e models.MatchHistoryEntry
		err := row.Scan(
			&e.ID,
			&e.Challenger,
			&e.Defender,
			&e.ChallengerScore,
			&e.DefenderScore,
			&e.ChallengerRank,
			&e.DefenderRank,
			&e.ChallengeSuccess,
			&e.IsLadderGame,
			&e.PlayedAt,
		)
		return &e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan match history: %w", err)
	}
	return entries, nil
}
