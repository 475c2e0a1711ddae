package ladder

import (
	"strings"
	"sync"

	"ladder/bot/common"
	"ladder/infrastructure/observability"
	"ladder/models"
	"ladder/service"

	"github.com/bwmarrin/discordgo"
)

// Component custom ID prefixes
const (
	ConfirmPrefix = "ladder_confirm:"
	CancelPrefix  = "ladder_cancel"

	historyLimit = 10
)

// Feature represents the ladder feature
type Feature struct {
	session       *discordgo.Session
	ladderService service.LadderService
	newsChannelID string

	// Prompt message IDs whose buttons were already acted on
	settled sync.Map
}

// NewFeature creates a new ladder feature instance
func NewFeature(session *discordgo.Session, ladderService service.LadderService, newsChannelID string) *Feature {
	return &Feature{
		session:       session,
		ladderService: ladderService,
		newsChannelID: newsChannelID,
	}
}

// HandleCommand routes the ladder slash commands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	observability.GetMetrics().RecordCommand(name)

	switch name {
	case "ladder":
		f.handleStandings(s, i)
	case "join":
		f.handleJoin(s, i)
	case "report":
		f.handleReport(s, i)
	case "history":
		f.handleHistory(s, i)
	default:
		common.RespondWithError(s, i, "Unknown command")
	}
}

// HandleInteraction handles the confirm and cancel buttons of a report prompt
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	switch {
	case strings.HasPrefix(customID, ConfirmPrefix):
		f.handleConfirm(s, i, strings.TrimPrefix(customID, ConfirmPrefix))
	case strings.HasPrefix(customID, CancelPrefix):
		f.handleCancel(s, i)
	}
}

// claimPrompt marks a prompt as being settled. Only the first caller for a
// message gets true; release hands the prompt back after a failed commit.
func (f *Feature) claimPrompt(i *discordgo.InteractionCreate) (claimed bool, release func()) {
	if i.Message == nil || i.Message.ID == "" {
		return true, func() {}
	}
	id := i.Message.ID
	if _, loaded := f.settled.LoadOrStore(id, struct{}{}); loaded {
		return false, func() {}
	}
	return true, func() { f.settled.Delete(id) }
}

// IsLadderComponent reports whether a component custom ID belongs to this feature
func IsLadderComponent(customID string) bool {
	return strings.HasPrefix(customID, ConfirmPrefix) || strings.HasPrefix(customID, CancelPrefix)
}

// ActorFromInteraction resolves the requesting player from the interaction
// member, falling back to the user for direct messages
func ActorFromInteraction(i *discordgo.InteractionCreate) (models.Actor, bool) {
	user := interactionUser(i)
	if user == nil || user.Username == "" {
		return models.Actor{}, false
	}
	return service.NewActor(user.Username), true
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
