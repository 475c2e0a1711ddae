package service

import (
	"fmt"

	"ladder/models"
)

// OrderChallenge frames a match between actor and opponent. The party with
// the higher rank number is the challenger. The match counts for the ladder
// only when the ranks are at most threshold apart.
func OrderChallenge(actor, opponent *models.PlayerRanking, scores [2]int, opponentWon bool, threshold int) (*models.MatchResult, error) {
	if actor == nil || opponent == nil {
		return nil, fmt.Errorf("%w: missing ranking", ErrUnknownPlayer)
	}
	if actor.Identity == opponent.Identity {
		return nil, ErrSelfChallenge
	}

	challenger, defender := actor, opponent
	if opponent.Rank > actor.Rank {
		challenger, defender = opponent, actor
	}

	winner := actor
	if opponentWon {
		winner = opponent
	}

	high, low := scores[0], scores[1]
	if low > high {
		high, low = low, high
	}

	result := &models.MatchResult{
		Challenger:       challenger.Identity,
		Defender:         defender.Identity,
		ChallengeSuccess: winner.Identity == challenger.Identity,
		IsLadderGame:     IsLadderGame(challenger.Rank, defender.Rank, threshold),
	}
	if result.ChallengeSuccess {
		result.ChallengerScore, result.DefenderScore = high, low
	} else {
		result.ChallengerScore, result.DefenderScore = low, high
	}

	return result, nil
}

// IsLadderGame reports whether two ranks are close enough for a ladder game
func IsLadderGame(rankA, rankB, threshold int) bool {
	diff := rankA - rankB
	if diff < 0 {
		diff = -diff
	}
	return diff <= threshold
}
