package models

// MatchResult is a structured, not yet committed, match result
type MatchResult struct {
	Challenger       string
	Defender         string
	ChallengerScore  int
	DefenderScore    int
	ChallengeSuccess bool
	IsLadderGame     bool
}

// Winner returns the identity of the winning party
func (r *MatchResult) Winner() string {
	if r.ChallengeSuccess {
		return r.Challenger
	}
	return r.Defender
}

// Loser returns the identity of the losing party
func (r *MatchResult) Loser() string {
	if r.ChallengeSuccess {
		return r.Defender
	}
	return r.Challenger
}

// Involves reports whether identity is one of the two parties
func (r *MatchResult) Involves(identity string) bool {
	return r.Challenger == identity || r.Defender == identity
}

// MatchOutcome is what RecordResult committed
type MatchOutcome struct {
	Result       MatchResult
	Challenger   PlayerRanking
	Defender     PlayerRanking
	History      MatchHistoryEntry
	RanksSwapped bool
}
