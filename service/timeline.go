package service

import (
	"ladder/models"
)

// BuildTimeline replays ladder games won by the challenger against the
// current rank order. Each plotted event holds one slot per current player;
// slots of players not involved hold models.NoRank. A final event with the
// present ranking is always appended.
func BuildTimeline(history []*models.MatchHistoryEntry, ordered []*models.PlayerRanking) *models.Timeline {
	timeline := &models.Timeline{
		Players:      make([]string, len(ordered)),
		DisplayNames: make([]string, len(ordered)),
	}

	slots := make(map[string]int, len(ordered))
	for i, p := range ordered {
		timeline.Players[i] = p.Identity
		timeline.DisplayNames[i] = p.DisplayName
		slots[p.Identity] = i
	}

	for _, entry := range history {
		if !entry.IsLadderGame || !entry.ChallengeSuccess {
			continue
		}
		if entry.ChallengerRank == nil || entry.DefenderRank == nil {
			continue
		}
		cs, okC := slots[entry.Challenger]
		ds, okD := slots[entry.Defender]
		if !okC || !okD {
			continue
		}

		before := make([]int, len(ordered))
		after := make([]int, len(ordered))

		// A won ladder game swapped the two ranks, so each party's pre-match
		// rank is the other's post-match rank
		before[cs] = *entry.DefenderRank
		before[ds] = *entry.ChallengerRank
		after[cs] = *entry.ChallengerRank
		after[ds] = *entry.DefenderRank

		timeline.Events = append(timeline.Events, models.TimelineEvent{
			PlayedAt:   entry.PlayedAt,
			Challenger: entry.Challenger,
			Defender:   entry.Defender,
			Before:     before,
			After:      after,
		})
	}

	current := make([]int, len(ordered))
	for i, p := range ordered {
		current[i] = p.Rank
	}
	timeline.Events = append(timeline.Events, models.TimelineEvent{
		Before:    current,
		After:     append([]int(nil), current...),
		IsCurrent: true,
	})

	return timeline
}
