package service

import (
	"testing"

	"ladder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranking(identity string, rank int) *models.PlayerRanking {
	return &models.PlayerRanking{
		Identity:    identity,
		DisplayName: Salutation(identity),
		Rank:        rank,
	}
}

func TestOrderChallenge_Roles(t *testing.T) {
	tests := []struct {
		name             string
		actorRank        int
		opponentRank     int
		opponentWon      bool
		challenger       string
		challengerScore  int
		defenderScore    int
		challengeSuccess bool
	}{
		{
			name:             "actor below opponent wins",
			actorRank:        5,
			opponentRank:     3,
			opponentWon:      false,
			challenger:       "me",
			challengerScore:  3,
			defenderScore:    1,
			challengeSuccess: true,
		},
		{
			name:             "actor below opponent loses",
			actorRank:        5,
			opponentRank:     3,
			opponentWon:      true,
			challenger:       "me",
			challengerScore:  1,
			defenderScore:    3,
			challengeSuccess: false,
		},
		{
			name:             "actor above opponent wins",
			actorRank:        1,
			opponentRank:     2,
			opponentWon:      false,
			challenger:       "dave",
			challengerScore:  1,
			defenderScore:    3,
			challengeSuccess: false,
		},
		{
			name:             "actor above opponent loses",
			actorRank:        1,
			opponentRank:     2,
			opponentWon:      true,
			challenger:       "dave",
			challengerScore:  3,
			defenderScore:    1,
			challengeSuccess: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := ranking("me", tt.actorRank)
			opponent := ranking("dave", tt.opponentRank)

			result, err := OrderChallenge(actor, opponent, [2]int{1, 3}, tt.opponentWon, 3)
			require.NoError(t, err)

			assert.Equal(t, tt.challenger, result.Challenger)
			assert.Equal(t, tt.challengerScore, result.ChallengerScore)
			assert.Equal(t, tt.defenderScore, result.DefenderScore)
			assert.Equal(t, tt.challengeSuccess, result.ChallengeSuccess)
			assert.True(t, result.IsLadderGame)
		})
	}
}

func TestOrderChallenge_LadderThreshold(t *testing.T) {
	tests := []struct {
		name         string
		actorRank    int
		opponentRank int
		ladder       bool
	}{
		{name: "difference of three", actorRank: 5, opponentRank: 2, ladder: true},
		{name: "difference of four", actorRank: 6, opponentRank: 2, ladder: false},
		{name: "adjacent", actorRank: 2, opponentRank: 1, ladder: true},
		{name: "actor on top", actorRank: 1, opponentRank: 5, ladder: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OrderChallenge(ranking("me", tt.actorRank), ranking("dave", tt.opponentRank), [2]int{3, 1}, false, 3)
			require.NoError(t, err)
			assert.Equal(t, tt.ladder, result.IsLadderGame)
		})
	}
}

func TestOrderChallenge_TiedScoresAccepted(t *testing.T) {
	result, err := OrderChallenge(ranking("me", 3), ranking("dave", 2), [2]int{2, 2}, false, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, result.ChallengerScore)
	assert.Equal(t, 2, result.DefenderScore)
	assert.True(t, result.ChallengeSuccess)
}

func TestOrderChallenge_SelfChallenge(t *testing.T) {
	me := ranking("me", 3)

	_, err := OrderChallenge(me, me, [2]int{3, 1}, false, 3)
	assert.ErrorIs(t, err, ErrSelfChallenge)
}

func TestOrderChallenge_MissingRanking(t *testing.T) {
	_, err := OrderChallenge(ranking("me", 3), nil, [2]int{3, 1}, false, 3)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}
