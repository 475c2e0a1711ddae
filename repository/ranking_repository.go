package repository

import (
	"context"
	"errors"
	"fmt"

	"ladder/database"
	"ladder/models"

	"github.com/jackc/pgx/v5"
)

// rankingSignupLock serializes sign-ups so two new players never compute the same bottom rank
const rankingSignupLock = 7_301_001

const rankingColumns = `identity, display_name, rank, wins, losses, news, created_at, updated_at`

// RankingRepository implements the RankingRepository interface
type RankingRepository struct {
	q queryable
}

// NewRankingRepository creates a new ranking repository
func NewRankingRepository(db *database.DB) *RankingRepository {
	return &RankingRepository{q: db.Pool}
}

// newRankingRepositoryWithTx creates a new ranking repository with a transaction
func newRankingRepositoryWithTx(tx queryable) *RankingRepository {
	return &RankingRepository{q: tx}
}

// GetByIdentity retrieves a player's ranking, nil when absent
func (r *RankingRepository) GetByIdentity(ctx context.Context, identity string) (*models.PlayerRanking, error) {
	query := `SELECT ` + rankingColumns + ` FROM rankings WHERE identity = $1`

	ranking, err := scanRanking(r.q.QueryRow(ctx, query, identity))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ranking for %s: %w", identity, err)
	}
	return ranking, nil
}

// GetForUpdate row-locks the given players. Rows are locked in identity
// order so concurrent commits on overlapping pairs cannot deadlock.
func (r *RankingRepository) GetForUpdate(ctx context.Context, identities ...string) ([]*models.PlayerRanking, error) {
	query := `
		SELECT ` + rankingColumns + `
		FROM rankings
		WHERE identity = ANY($1)
		ORDER BY identity
		FOR UPDATE
	`

	rows, err := r.q.Query(ctx, query, identities)
	if err != nil {
		return nil, fmt.Errorf("failed to lock rankings: %w", err)
	}
	return collectRankings(rows)
}

// ListOrderedByRank returns every player, best rank first
func (r *RankingRepository) ListOrderedByRank(ctx context.Context) ([]*models.PlayerRanking, error) {
	query := `SELECT ` + rankingColumns + ` FROM rankings ORDER BY rank ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rankings: %w", err)
	}
	return collectRankings(rows)
}

// ListIdentities returns every identity ordered by identity
func (r *RankingRepository) ListIdentities(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT identity FROM rankings ORDER BY identity`)
	if err != nil {
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}

	identities, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan identities: %w", err)
	}
	return identities, nil
}

// Create adds a player one below the current bottom of the ladder. If the
// player already exists the stored ranking is returned unchanged.
func (r *RankingRepository) Create(ctx context.Context, identity, displayName string) (*models.PlayerRanking, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, rankingSignupLock); err != nil {
		return nil, fmt.Errorf("failed to acquire sign-up lock: %w", err)
	}

	query := `
		INSERT INTO rankings (identity, display_name, rank)
		SELECT $1, $2, COALESCE(MAX(rank), 0) + 1 FROM rankings
		ON CONFLICT (identity) DO NOTHING
		RETURNING ` + rankingColumns

	ranking, err := scanRanking(r.q.QueryRow(ctx, query, identity, displayName))
	if errors.Is(err, pgx.ErrNoRows) {
		return r.GetByIdentity(ctx, identity)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create ranking for %s: %w", identity, err)
	}
	return ranking, nil
}

// UpdateDisplayName replaces a player's derived display name
func (r *RankingRepository) UpdateDisplayName(ctx context.Context, identity, displayName string) error {
	query := `
		UPDATE rankings
		SET display_name = $2, updated_at = NOW()
		WHERE identity = $1
	`

	result, err := r.q.Exec(ctx, query, identity, displayName)
	if err != nil {
		return fmt.Errorf("failed to update display name for %s: %w", identity, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("ranking for %s not found", identity)
	}
	return nil
}

// Put upserts the given rankings in one batch. The rank uniqueness check
// is deferred to commit, so a swap can be written as two plain updates.
func (r *RankingRepository) Put(ctx context.Context, rankings ...*models.PlayerRanking) error {
	if len(rankings) == 0 {
		return nil
	}

	query := `
		INSERT INTO rankings (identity, display_name, rank, wins, losses, news)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (identity) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			rank = EXCLUDED.rank,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			news = EXCLUDED.news,
			updated_at = NOW()
	`

	batch := &pgx.Batch{}
	for _, p := range rankings {
		batch.Queue(query, p.Identity, p.DisplayName, p.Rank, p.Wins, p.Losses, p.News)
	}

	results := r.q.SendBatch(ctx, batch)
	defer results.Close()

	for _, p := range rankings {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to put ranking for %s: %w", p.Identity, err)
		}
	}
	return nil
}

func scanRanking(row pgx.Row) (*models.PlayerRanking, error) {
	var p models.PlayerRanking
	err := row.Scan(
		&p.Identity,
		&p.DisplayName,
		&p.Rank,
		&p.Wins,
		&p.Losses,
		&p.News,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectRankings(rows pgx.Rows) ([]*models.PlayerRanking, error) {
	defer rows.Close()

	var rankings []*models.PlayerRanking
	for rows.Next() {
		p, err := scanRanking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ranking: %w", err)
		}
		rankings = append(rankings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rankings: %w", err)
	}
	return rankings, nil
}
