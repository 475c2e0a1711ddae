package bot

import (
	"context"
	"fmt"

	"ladder/bot/features/ladder"
	"ladder/bot/features/timeline"
	"ladder/events"
	"ladder/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token           string
	GuildID         string
	LadderChannelID string
}

// Bot manages the Discord session and the feature modules
type Bot struct {
	config  Config
	session *discordgo.Session

	// Feature modules
	ladder   *ladder.Feature
	timeline *timeline.Feature
}

func New(config Config, ladderService service.LadderService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		config:   config,
		session:  dg,
		ladder:   ladder.NewFeature(dg, ladderService, config.LadderChannelID),
		timeline: timeline.NewFeature(ladderService),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.handleComponentInteractions)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	if config.LadderChannelID != "" {
		eventBus.Subscribe(events.EventTypePlayerJoined, bot.announcePlayerJoined)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "ladder", "join", "report", "history":
		b.ladder.HandleCommand(s, i)
	case "timeline":
		b.timeline.HandleCommand(s, i)
	}
}

func (b *Bot) handleComponentInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	if ladder.IsLadderComponent(i.MessageComponentData().CustomID) {
		b.ladder.HandleInteraction(s, i)
	}
}

// announcePlayerJoined posts a welcome line for new sign-ups
func (b *Bot) announcePlayerJoined(ctx context.Context, event events.Event) {
	joined, ok := event.(events.PlayerJoinedEvent)
	if !ok {
		return
	}

	message := fmt.Sprintf("👋 **%s** joined the ladder at #%d", joined.DisplayName, joined.Rank)
	if _, err := b.session.ChannelMessageSend(b.config.LadderChannelID, message); err != nil {
		log.WithError(err).WithField("identity", joined.Identity).Warn("Failed to announce new player")
	}
}
