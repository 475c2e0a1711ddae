package common

import (
	"bytes"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// DeferResponse sends a deferred response to give more time for processing
func DeferResponse(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: flags,
		},
	})
}

// RespondWithEmbed sends an embed as an interaction response
func RespondWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}

	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	if len(components) > 0 {
		data.Components = components
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// FollowUpWithEmbed sends an embed as a follow-up message
func FollowUpWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent, ephemeral bool) (*discordgo.Message, error) {
	params := &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	}

	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}

	if len(components) > 0 {
		params.Components = components
	}

	return s.FollowupMessageCreate(i.Interaction, false, params)
}

// FollowUpWithFile sends a file attachment, optionally wrapped in an embed
// that references it, as a follow-up to a deferred interaction
func FollowUpWithFile(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, name, contentType string, data []byte) (*discordgo.Message, error) {
	params := &discordgo.WebhookParams{
		Files: []*discordgo.File{
			{
				Name:        name,
				ContentType: contentType,
				Reader:      bytes.NewReader(data),
			},
		},
	}

	if embed != nil {
		params.Embeds = []*discordgo.MessageEmbed{embed}
	}

	return s.FollowupMessageCreate(i.Interaction, true, params)
}

// UpdateMessage replaces the message a component was attached to
func UpdateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	data := &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}
	if components == nil {
		data.Components = []discordgo.MessageComponent{}
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
}

// DisableComponents disables all components in a message
func DisableComponents(components []discordgo.MessageComponent) []discordgo.MessageComponent {
	disabled := make([]discordgo.MessageComponent, len(components))

	for i, component := range components {
		row, ok := actionsRow(component)
		if !ok {
			disabled[i] = component
			continue
		}

		newRow := &discordgo.ActionsRow{
			Components: make([]discordgo.MessageComponent, len(row.Components)),
		}
		for j, comp := range row.Components {
			switch c := comp.(type) {
			case *discordgo.Button:
				newButton := *c
				newButton.Disabled = true
				newRow.Components[j] = &newButton
			case *discordgo.SelectMenu:
				newMenu := *c
				newMenu.Disabled = true
				newRow.Components[j] = &newMenu
			default:
				newRow.Components[j] = comp
			}
		}
		disabled[i] = newRow
	}

	return disabled
}

// Messages decoded from Discord carry rows by pointer, locally built ones by value
func actionsRow(component discordgo.MessageComponent) (*discordgo.ActionsRow, bool) {
	switch row := component.(type) {
	case *discordgo.ActionsRow:
		return row, true
	case discordgo.ActionsRow:
		return &row, true
	}
	return nil, false
}

// RespondWithSuccess sends a success message
func RespondWithSuccess(s *discordgo.Session, i *discordgo.InteractionCreate, message string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Content: "✅ " + message,
	}

	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// RespondWithError sends an error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// FollowUpWithError sends an error message as a follow-up to a deferred interaction
func FollowUpWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up error message: %v", err)
	}
}
