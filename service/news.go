package service

import (
	"fmt"

	"ladder/models"
)

// composeNews sets the news line of each party after a match. A friendly
// loss leaves the loser's news untouched.
func composeNews(result *models.MatchResult, challenger, defender *models.PlayerRanking) {
	winner, loser := defender, challenger
	winScore, loseScore := result.DefenderScore, result.ChallengerScore
	if result.ChallengeSuccess {
		winner, loser = challenger, defender
		winScore, loseScore = result.ChallengerScore, result.DefenderScore
	}

	switch {
	case !result.IsLadderGame:
		winner.News = fmt.Sprintf("Beat %s %d-%d in a friendly", loser.DisplayName, winScore, loseScore)

	case result.ChallengeSuccess:
		winner.News = fmt.Sprintf("Beat %s %d-%d and climbed to #%d", loser.DisplayName, winScore, loseScore, winner.Rank)
		loser.News = fmt.Sprintf("Lost to %s %d-%d and dropped to #%d", winner.DisplayName, loseScore, winScore, loser.Rank)

	default:
		winner.News = fmt.Sprintf("Defended #%d against %s %d-%d", winner.Rank, loser.DisplayName, winScore, loseScore)
		loser.News = fmt.Sprintf("Lost a challenge to %s %d-%d, staying at #%d", winner.DisplayName, loseScore, winScore, loser.Rank)
	}
}
