package timeline

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

const chartFileName = "timeline.png"

// Feature represents the timeline chart feature
type Feature struct {
	ladderService service.LadderService
	generator     *ChartGenerator
}

// NewFeature creates a new timeline feature instance
func NewFeature(ladderService service.LadderService) *Feature {
	return &Feature{
		ladderService: ladderService,
		generator:     NewChartGenerator(),
	}
}

// HandleCommand handles the /timeline command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	observability.GetMetrics().RecordCommand("timeline")

	if err := common.DeferResponse(s, i, false); err != nil {
		log.WithError(err).Error("Error deferring timeline response")
		return
	}

	ctx := context.Background()
	timeline, err := f.ladderService.Timeline(ctx)
	if err != nil {
		log.WithError(err).Error("Error building timeline")
		common.FollowUpWithError(s, i, "Unable to build the timeline. Please try again.")
		return
	}

	chart, err := f.generator.Render(timeline)
	if errors.Is(err, ErrEmptyTimeline) {
		common.FollowUpWithError(s, i, "Nobody is on the ladder yet.")
		return
	}
	if err != nil {
		log.WithError(err).Error("Error rendering timeline chart")
		common.FollowUpWithError(s, i, "Unable to draw the timeline. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📈 Ladder timeline",
		Description: fmt.Sprintf("%d rank swaps", len(timeline.Events)-1),
		Color:       0x5865f2,
		Image:       &discordgo.MessageEmbedImage{URL: "attachment://" + chartFileName},
	}
	if _, err := common.FollowUpWithFile(s, i, embed, chartFileName, "image/png", chart); err != nil {
		log.WithError(err).Error("Error sending timeline chart")
	}
}
