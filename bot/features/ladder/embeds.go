package ladder

import (
	"fmt"
	"strings"

	"ladder/bot/common"
	"ladder/models"
	"ladder/service"

	"github.com/bwmarrin/discordgo"
)

const (
	colorStandings = 0x00ff00
	colorPending   = 0xffa500
	colorLadder    = 0x5865f2
	colorFriendly  = 0x99aab5
	colorCancelled = 0xff0000

	nameWidth = 18
)

// buildStandingsEmbed renders the ladder as a monospace table
func buildStandingsEmbed(standings *models.Standings) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🏆 Ladder",
		Color: colorStandings,
	}

	if len(standings.Rankings) == 0 {
		embed.Description = "Nobody is on the ladder yet. Use /join to sign up."
		return embed
	}

	var table strings.Builder
	table.WriteString("```\n")
	table.WriteString(fmt.Sprintf("%-4s %-*s %s\n", "", nameWidth, "Player", "W-L"))
	table.WriteString(strings.Repeat("-", 32) + "\n")

	var news strings.Builder
	for idx, player := range standings.Rankings {
		name := common.TruncateName(standings.DisplayNames[idx], nameWidth)
		table.WriteString(fmt.Sprintf("%-4s %-*s %s\n", fmt.Sprintf("#%d", player.Rank), nameWidth, name, player.Record()))

		if player.News != "" {
			news.WriteString(fmt.Sprintf("%s **%s**: %s\n", common.FormatRank(player.Rank), standings.DisplayNames[idx], player.News))
		}
	}
	table.WriteString("```")

	embed.Description = table.String()
	if news.Len() > 0 {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Latest news", Value: strings.TrimRight(news.String(), "\n")},
		}
	}
	return embed
}

// buildConfirmationEmbed shows how a report was understood
func buildConfirmationEmbed(result *models.MatchResult, names map[string]string) *discordgo.MessageEmbed {
	winner, loser := result.Winner(), result.Loser()
	winnerScore, loserScore := result.ChallengerScore, result.DefenderScore
	if !result.ChallengeSuccess {
		winnerScore, loserScore = loserScore, winnerScore
	}

	gameType := "Friendly"
	if result.IsLadderGame {
		gameType = "Ladder game"
	}

	return &discordgo.MessageEmbed{
		Title: "📝 Confirm match result",
		Description: fmt.Sprintf("**%s** beat **%s** %s",
			nameFor(names, winner), nameFor(names, loser), common.FormatScore(winnerScore, loserScore)),
		Color: colorPending,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Challenger", Value: nameFor(names, result.Challenger), Inline: true},
			{Name: "Defender", Value: nameFor(names, result.Defender), Inline: true},
			{Name: "Type", Value: gameType, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Only the reporting player can confirm"},
	}
}

func buildConfirmationButtons(token string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Confirm",
					Style:    discordgo.SuccessButton,
					CustomID: ConfirmPrefix + token,
				},
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.DangerButton,
					CustomID: CancelPrefix,
				},
			},
		},
	}
}

// buildOutcomeEmbed announces a committed result with both players' news
func buildOutcomeEmbed(outcome *models.MatchOutcome) *discordgo.MessageEmbed {
	color := colorFriendly
	title := "🤝 Friendly recorded"
	if outcome.Result.IsLadderGame {
		color = colorLadder
		title = "⚔️ Ladder game recorded"
		if outcome.RanksSwapped {
			title = "📈 Ranks swapped"
		}
	}

	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: color,
	}
	for _, player := range []models.PlayerRanking{outcome.Challenger, outcome.Defender} {
		value := player.News
		if value == "" {
			value = "No change"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s %s (%s)", common.FormatRank(player.Rank), player.DisplayName, player.Record()),
			Value:  value,
			Inline: false,
		})
	}
	return embed
}

// buildHistoryEmbed lists recent matches, newest first
func buildHistoryEmbed(matches []*models.MatchSummary) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📜 Recent matches",
		Color: colorLadder,
	}

	if len(matches) == 0 {
		embed.Description = "No matches have been played yet."
		return embed
	}

	var lines strings.Builder
	for _, m := range matches {
		winner, loser := m.ChallengerName, m.DefenderName
		winnerScore, loserScore := m.ChallengerScore, m.DefenderScore
		if !m.ChallengeSuccess {
			winner, loser = loser, winner
			winnerScore, loserScore = loserScore, winnerScore
		}

		marker := "🤝"
		if m.IsLadderGame {
			marker = "⚔️"
		}
		lines.WriteString(fmt.Sprintf("%s **%s** beat **%s** %s %s\n",
			marker, winner, loser, common.FormatScore(winnerScore, loserScore),
			common.FormatDiscordTimestamp(m.PlayedAt, "R")))
	}

	embed.Description = strings.TrimRight(lines.String(), "\n")
	return embed
}

func namesByIdentity(standings *models.Standings) map[string]string {
	names := make(map[string]string, len(standings.Rankings))
	for idx, player := range standings.Rankings {
		names[player.Identity] = standings.DisplayNames[idx]
	}
	return names
}

func nameFor(names map[string]string, identity string) string {
	if name, ok := names[identity]; ok && name != "" {
		return name
	}
	return service.Salutation(identity)
}
