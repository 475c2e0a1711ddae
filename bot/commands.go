package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "ladder",
			Description: "Show the current ladder standings",
		},
		{
			Name:        "join",
			Description: "Sign up for the ladder",
		},
		{
			Name:        "report",
			Description: "Report a match result, e.g. \"I beat Bob 3-1\"",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "text",
					Description: "Who you played, who won and the score",
					Required:    true,
				},
			},
		},
		{
			Name:        "history",
			Description: "Show the most recent matches",
		},
		{
			Name:        "timeline",
			Description: "Chart how the ladder has moved over time",
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
