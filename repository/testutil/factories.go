package testutil

import (
	"context"
	"testing"

	"ladder/database"
	"ladder/models"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// CreateTestRanking builds an in-memory ranking with zeroed counters
func CreateTestRanking(identity string, rank int) *models.PlayerRanking {
	return &models.PlayerRanking{
		Identity:    identity,
		DisplayName: identity,
		Rank:        rank,
	}
}

// SeedLadder inserts players in the given order, ranked 1..N
func SeedLadder(t *testing.T, db *database.DB, identities ...string) []*models.PlayerRanking {
	t.Helper()

	rankings := make([]*models.PlayerRanking, 0, len(identities))
	err := db.WithTransaction(context.Background(), func(tx pgx.Tx) error {
		for i, identity := range identities {
			p := CreateTestRanking(identity, i+1)
			if _, err := tx.Exec(context.Background(),
				`INSERT INTO rankings (identity, display_name, rank) VALUES ($1, $2, $3)`,
				p.Identity, p.DisplayName, p.Rank,
			); err != nil {
				return err
			}
			rankings = append(rankings, p)
		}
		return nil
	})
	require.NoError(t, err)
	return rankings
}

// CreateTestHistoryEntry builds a ladder game entry won by the challenger
func CreateTestHistoryEntry(challenger, defender string, challengerRank, defenderRank int) *models.MatchHistoryEntry {
	return &models.MatchHistoryEntry{
		Challenger:       challenger,
		Defender:         defender,
		ChallengerScore:  3,
		DefenderScore:    1,
		ChallengerRank:   &challengerRank,
		DefenderRank:     &defenderRank,
		ChallengeSuccess: true,
		IsLadderGame:     true,
	}
}
