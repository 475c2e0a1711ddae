package service

import "errors"

var (
	// ErrMalformedInput means fewer than two score digits were found in a report
	ErrMalformedInput = errors.New("malformed input: expected two scores between 0 and 3")

	// ErrAmbiguousOutcome means the report does not say who won
	ErrAmbiguousOutcome = errors.New("ambiguous outcome: could not tell who won")

	// ErrOpponentNotFound means no known player is named in the report
	ErrOpponentNotFound = errors.New("opponent not found")

	// ErrUnknownPlayer means a result references a player with no ranking
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrSelfChallenge means both parties to a match are the same player
	ErrSelfChallenge = errors.New("a player cannot challenge themselves")

	// ErrInvalidResult means an encoded match result failed validation
	ErrInvalidResult = errors.New("invalid match result")
)
