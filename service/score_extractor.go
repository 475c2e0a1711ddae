package service

import (
	"regexp"
	"strconv"
)

// CueMatch is a directional phrase found in a report
type CueMatch struct {
	Text   string
	Offset int // byte offset into the report
}

var (
	scoreDigit = regexp.MustCompile(`[0-3]`)

	// Alternation is leftmost-first, so longer phrases are listed first
	winningCues = regexp.MustCompile(`(?i)\b(whitewashed|thrashed|defeated|crushed|beat|won)\b`)
	losingCues  = regexp.MustCompile(`(?i)\b(whitewashed\s+by|thrashed\s+by|defeated\s+by|crushed\s+by|beaten\s+by|lost)\b`)
)

// ExtractScores returns the first two digits between 0 and 3 in order of appearance
func ExtractScores(text string) ([2]int, error) {
	var scores [2]int

	matches := scoreDigit.FindAllString(text, 2)
	if len(matches) < 2 {
		return scores, ErrMalformedInput
	}

	for i, m := range matches {
		n, err := strconv.Atoi(m)
		if err != nil {
			return scores, ErrMalformedInput
		}
		scores[i] = n
	}
	return scores, nil
}

// ExtractCues finds the first winning and the first losing phrase in text.
// A winning phrase that is part of a losing one ("thrashed" in "thrashed by")
// is not counted as a win.
func ExtractCues(text string) (win, lose *CueMatch) {
	loseSpans := losingCues.FindAllStringIndex(text, -1)
	if len(loseSpans) > 0 {
		lose = &CueMatch{
			Text:   text[loseSpans[0][0]:loseSpans[0][1]],
			Offset: loseSpans[0][0],
		}
	}

	for _, span := range winningCues.FindAllStringIndex(text, -1) {
		if insideAny(span, loseSpans) {
			continue
		}
		win = &CueMatch{Text: text[span[0]:span[1]], Offset: span[0]}
		break
	}

	return win, lose
}

func insideAny(span []int, spans [][]int) bool {
	for _, s := range spans {
		if span[0] >= s[0] && span[1] <= s[1] {
			return true
		}
	}
	return false
}
