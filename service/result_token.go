package service

import (
	"fmt"
	"strconv"
	"strings"

	"ladder/models"
)

const (
	MinScore = 0
	MaxScore = 3

	tokenSeparator = "|"
	tokenFields    = 6
)

// EncodeResultToken serializes a result for a confirmation button.
// Layout: challenger|defender|challengerScore|defenderScore|success|ladder
func EncodeResultToken(result models.MatchResult) string {
	return strings.Join([]string{
		result.Challenger,
		result.Defender,
		strconv.Itoa(result.ChallengerScore),
		strconv.Itoa(result.DefenderScore),
		strconv.FormatBool(result.ChallengeSuccess),
		strconv.FormatBool(result.IsLadderGame),
	}, tokenSeparator)
}

// DecodeResultToken is the only place a string payload becomes a
// MatchResult. Scores are clamped to [MinScore, MaxScore] and booleans
// must come from a fixed token set.
func DecodeResultToken(token string) (*models.MatchResult, error) {
	parts := strings.Split(token, tokenSeparator)
	if len(parts) != tokenFields {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrInvalidResult, tokenFields, len(parts))
	}

	challenger := strings.ToLower(strings.TrimSpace(parts[0]))
	defender := strings.ToLower(strings.TrimSpace(parts[1]))
	if challenger == "" || defender == "" {
		return nil, fmt.Errorf("%w: missing party", ErrInvalidResult)
	}
	if challenger == defender {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResult, ErrSelfChallenge)
	}

	challengerScore, err := parseScore(parts[2])
	if err != nil {
		return nil, err
	}
	defenderScore, err := parseScore(parts[3])
	if err != nil {
		return nil, err
	}
	success, err := parseFlag(parts[4])
	if err != nil {
		return nil, err
	}
	ladder, err := parseFlag(parts[5])
	if err != nil {
		return nil, err
	}

	return &models.MatchResult{
		Challenger:       challenger,
		Defender:         defender,
		ChallengerScore:  challengerScore,
		DefenderScore:    defenderScore,
		ChallengeSuccess: success,
		IsLadderGame:     ladder,
	}, nil
}

func parseScore(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: score %q is not a number", ErrInvalidResult, s)
	}
	return min(max(n, MinScore), MaxScore), nil
}

func parseFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on":
		return true, nil
	case "false", "0", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidResult, s)
}
