package service

import (
	"fmt"

	"ladder/models"
)

// ApplyMatch computes the effect of a confirmed result on the two parties'
// rankings. The inputs are not modified; the returned outcome carries the
// updated copies and the history entry to append.
func ApplyMatch(result models.MatchResult, challenger, defender *models.PlayerRanking) (*models.MatchOutcome, error) {
	if challenger == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, result.Challenger)
	}
	if defender == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, result.Defender)
	}
	if challenger.Identity != result.Challenger || defender.Identity != result.Defender {
		return nil, fmt.Errorf("%w: rankings do not match result parties", ErrInvalidResult)
	}
	if err := validateResult(result); err != nil {
		return nil, err
	}

	c, d := *challenger, *defender

	if result.ChallengeSuccess {
		c.Wins++
		d.Losses++
	} else {
		d.Wins++
		c.Losses++
	}

	swapped := result.IsLadderGame && result.ChallengeSuccess
	if swapped {
		c.Rank, d.Rank = d.Rank, c.Rank
	}

	entry := models.MatchHistoryEntry{
		Challenger:       c.Identity,
		Defender:         d.Identity,
		ChallengerScore:  result.ChallengerScore,
		DefenderScore:    result.DefenderScore,
		ChallengeSuccess: result.ChallengeSuccess,
		IsLadderGame:     result.IsLadderGame,
	}
	if result.IsLadderGame {
		challengerRank, defenderRank := c.Rank, d.Rank
		entry.ChallengerRank = &challengerRank
		entry.DefenderRank = &defenderRank
	}

	composeNews(&result, &c, &d)

	return &models.MatchOutcome{
		Result:       result,
		Challenger:   c,
		Defender:     d,
		History:      entry,
		RanksSwapped: swapped,
	}, nil
}

func validateResult(result models.MatchResult) error {
	if result.Challenger == "" || result.Defender == "" {
		return fmt.Errorf("%w: missing party", ErrInvalidResult)
	}
	if result.Challenger == result.Defender {
		return ErrSelfChallenge
	}
	if !validScore(result.ChallengerScore) || !validScore(result.DefenderScore) {
		return fmt.Errorf("%w: scores must be between %d and %d", ErrInvalidResult, MinScore, MaxScore)
	}
	return nil
}

func validScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
