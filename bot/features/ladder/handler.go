package ladder

import (
	"context"
	"errors"
	"fmt"

	"ladder/bot/common"
	"ladder/infrastructure/observability"
	"ladder/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleStandings displays the ladder in rank order
func (f *Feature) handleStandings(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	standings, err := f.ladderService.Standings(ctx)
	if err != nil {
		log.WithError(err).Error("Error getting standings")
		common.RespondWithError(s, i, "Unable to retrieve the ladder. Please try again.")
		return
	}

	if err := common.RespondWithEmbed(s, i, buildStandingsEmbed(standings), nil, false); err != nil {
		log.WithError(err).Error("Error responding with standings")
	}
}

// handleJoin signs the requesting player up
func (f *Feature) handleJoin(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	actor, ok := ActorFromInteraction(i)
	if !ok {
		common.RespondWithError(s, i, "Unable to identify you.")
		return
	}

	player, err := f.ladderService.Join(ctx, actor)
	if err != nil {
		log.WithError(err).WithField("identity", actor.Identity).Error("Error joining ladder")
		common.RespondWithError(s, i, ErrorMessage(err))
		return
	}

	message := fmt.Sprintf("%s is on the ladder at **%s**", player.DisplayName, common.FormatRank(player.Rank))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.WithError(err).Error("Error responding to join")
	}
}

// handleReport interprets a free-text report and asks the reporter to confirm it
func (f *Feature) handleReport(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	metrics := observability.GetMetrics()

	actor, ok := ActorFromInteraction(i)
	if !ok {
		common.RespondWithError(s, i, "Unable to identify you.")
		return
	}

	var text string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "text" {
			text = opt.StringValue()
		}
	}
	if text == "" {
		common.RespondWithError(s, i, "Please describe the match, e.g. `I beat Bob 3-1`.")
		return
	}

	if _, err := f.ladderService.Join(ctx, actor); err != nil {
		log.WithError(err).WithField("identity", actor.Identity).Error("Error signing up reporter")
		metrics.RecordReportInterpreted(observability.OutcomeError)
		common.RespondWithError(s, i, ErrorMessage(err))
		return
	}

	result, err := f.ladderService.InterpretReport(ctx, actor, text)
	metrics.RecordReportInterpreted(ReportOutcome(err))
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"identity": actor.Identity,
			"text":     text,
		}).Debug("Report not understood")
		common.RespondWithError(s, i, ErrorMessage(err))
		return
	}

	standings, err := f.ladderService.Standings(ctx)
	if err != nil {
		log.WithError(err).Error("Error getting standings")
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	embed := buildConfirmationEmbed(result, namesByIdentity(standings))
	components := buildConfirmationButtons(service.EncodeResultToken(*result))
	if err := common.RespondWithEmbed(s, i, embed, components, false); err != nil {
		log.WithError(err).Error("Error sending confirmation prompt")
	}
}

// handleConfirm commits a previously interpreted result
func (f *Feature) handleConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, token string) {
	ctx := context.Background()

	if !isReporter(i) {
		common.RespondWithError(s, i, "Only the player who reported this match can confirm it.")
		return
	}

	result, err := service.DecodeResultToken(token)
	if err != nil {
		log.WithError(err).WithField("token", token).Warn("Rejected confirmation token")
		common.RespondWithError(s, i, ErrorMessage(err))
		return
	}

	actor, ok := ActorFromInteraction(i)
	if !ok || !result.Involves(actor.Identity) {
		common.RespondWithError(s, i, "Only the player who reported this match can confirm it.")
		return
	}

	claimed, release := f.claimPrompt(i)
	if !claimed {
		common.RespondWithError(s, i, "This match has already been settled.")
		return
	}

	outcome, err := f.ladderService.RecordResult(ctx, *result)
	if err != nil {
		release()
		log.WithError(err).WithFields(log.Fields{
			"challenger": result.Challenger,
			"defender":   result.Defender,
		}).Error("Error recording match result")
		common.RespondWithError(s, i, ErrorMessage(err))
		return
	}

	var components []discordgo.MessageComponent
	if i.Message != nil {
		components = common.DisableComponents(i.Message.Components)
	}
	embed := buildOutcomeEmbed(outcome)
	if err := common.UpdateMessage(s, i, embed, components); err != nil {
		log.WithError(err).Error("Error updating confirmation prompt")
	}

	f.postNews(embed)
}

// handleCancel withdraws a report prompt
func (f *Feature) handleCancel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !isReporter(i) {
		common.RespondWithError(s, i, "Only the player who reported this match can cancel it.")
		return
	}

	if claimed, _ := f.claimPrompt(i); !claimed {
		common.RespondWithError(s, i, "This match has already been settled.")
		return
	}

	var components []discordgo.MessageComponent
	embed := &discordgo.MessageEmbed{Title: "Report cancelled", Color: colorCancelled}
	if i.Message != nil {
		components = common.DisableComponents(i.Message.Components)
		if len(i.Message.Embeds) > 0 {
			cancelled := *i.Message.Embeds[0]
			cancelled.Title = "❌ Report cancelled"
			cancelled.Color = colorCancelled
			embed = &cancelled
		}
	}

	if err := common.UpdateMessage(s, i, embed, components); err != nil {
		log.WithError(err).Error("Error cancelling report")
	}
}

// handleHistory lists the latest matches
func (f *Feature) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	matches, err := f.ladderService.RecentMatches(ctx, historyLimit)
	if err != nil {
		log.WithError(err).Error("Error getting recent matches")
		common.RespondWithError(s, i, "Unable to retrieve match history. Please try again.")
		return
	}

	if err := common.RespondWithEmbed(s, i, buildHistoryEmbed(matches), nil, false); err != nil {
		log.WithError(err).Error("Error responding with history")
	}
}

func (f *Feature) postNews(embed *discordgo.MessageEmbed) {
	if f.newsChannelID == "" {
		return
	}
	if _, err := f.session.ChannelMessageSendEmbed(f.newsChannelID, embed); err != nil {
		log.WithError(err).WithField("channel", f.newsChannelID).Warn("Failed to post ladder news")
	}
}

// isReporter checks the clicking user against the user who ran /report
func isReporter(i *discordgo.InteractionCreate) bool {
	user := interactionUser(i)
	if user == nil {
		return false
	}
	if i.Message == nil || i.Message.Interaction == nil || i.Message.Interaction.User == nil {
		return true
	}
	return i.Message.Interaction.User.ID == user.ID
}

// ErrorMessage maps service errors to what the player is shown
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrMalformedInput):
		return "I couldn't find a score in that. Include both scores, e.g. `3-1`."
	case errors.Is(err, service.ErrAmbiguousOutcome):
		return "I couldn't tell who won. Try `I beat Bob 3-1` or `I lost to Bob 1-3`."
	case errors.Is(err, service.ErrOpponentNotFound):
		return "I couldn't find your opponent on the ladder. They need to /join first."
	case errors.Is(err, service.ErrSelfChallenge):
		return "You can't play against yourself."
	case errors.Is(err, service.ErrUnknownPlayer):
		return "That player isn't on the ladder. Use /join first."
	case errors.Is(err, service.ErrInvalidResult):
		return "That result is no longer valid. Please report the match again."
	}
	return "Something went wrong. Please try again later."
}

// ReportOutcome labels an InterpretReport result for metrics
func ReportOutcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeOK
	case errors.Is(err, service.ErrMalformedInput):
		return observability.OutcomeMalformed
	case errors.Is(err, service.ErrAmbiguousOutcome):
		return observability.OutcomeAmbiguous
	case errors.Is(err, service.ErrOpponentNotFound):
		return observability.OutcomeOpponentNotFound
	case errors.Is(err, service.ErrUnknownPlayer):
		return observability.OutcomeUnknownPlayer
	}
	return observability.OutcomeError
}
