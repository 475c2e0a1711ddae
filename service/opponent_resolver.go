package service

import (
	"regexp"
)

// FindOpponent scans identities for one whose local part is named in text.
// When several are named the last one scanned wins. It returns the
// identity and the byte offset of its mention in text, the same
// coordinates ExtractCues reports.
func FindOpponent(text string, identities []string) (string, int, error) {
	opponent := ""
	offset := -1
	for _, identity := range identities {
		local := LocalPart(identity)
		if local == "" {
			continue
		}
		mention := regexp.MustCompile("(?i)" + regexp.QuoteMeta(local))
		if loc := mention.FindStringIndex(text); loc != nil {
			opponent = identity
			offset = loc[0]
		}
	}

	if opponent == "" {
		return "", -1, ErrOpponentNotFound
	}
	return opponent, offset, nil
}

// OpponentWon decides the outcome from where the cues sit relative to the
// opponent mention at offset. A winning cue before the mention is the
// narrator's win; a losing cue before it is the narrator's loss.
func OpponentWon(offset int, win, lose *CueMatch) (bool, error) {
	var verdicts []bool

	if win != nil && win.Offset != offset {
		verdicts = append(verdicts, win.Offset > offset)
	}
	if lose != nil && lose.Offset != offset {
		verdicts = append(verdicts, lose.Offset < offset)
	}

	switch {
	case len(verdicts) == 0:
		return false, ErrAmbiguousOutcome
	case len(verdicts) == 2 && verdicts[0] != verdicts[1]:
		return false, ErrAmbiguousOutcome
	}
	return verdicts[0], nil
}

// ResolveOpponent finds the opponent named in text and whether they won
func ResolveOpponent(text string, identities []string, win, lose *CueMatch) (string, bool, error) {
	opponent, offset, err := FindOpponent(text, identities)
	if err != nil {
		return "", false, err
	}

	opponentWon, err := OpponentWon(offset, win, lose)
	if err != nil {
		return "", false, err
	}
	return opponent, opponentWon, nil
}
