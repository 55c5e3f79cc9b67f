package sender

import (
	"context"
	"fmt"
	"unblinkingbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type DiscordSession interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
}

const DiscordMessageLimit = 2000

type Discord struct {
	session DiscordSession
}

func NewDiscord(session DiscordSession) *Discord {
	return &Discord{session: session}
}

func (s *Discord) PostMessage(ctx context.Context, channelID string, text string, opts domain.SendOptions) error {
	for _, chunk := range chunkText(text, DiscordMessageLimit) {
		_, err := s.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
			Content:         chunk,
			AllowedMentions: allowedMentions(opts),
		}, discordgo.WithContext(ctx))
		if err != nil {
			log.Error().Err(err).Str("channelId", channelID).Msg("failed to send message")
			return err
		}
	}

	return nil
}

func (s *Discord) UploadFile(ctx context.Context, upload domain.Upload) error {
	_, err := s.session.ChannelMessageSendComplex(upload.ChannelID, &discordgo.MessageSend{
		Content:         upload.Caption,
		AllowedMentions: allowedMentions(upload.Options),
		Embeds: []*discordgo.MessageEmbed{{
			Title: upload.Title,
			Image: &discordgo.MessageEmbedImage{URL: "attachment://" + upload.Filename},
		}},
		Files: []*discordgo.File{{
			Name:        upload.Filename,
			ContentType: "image/jpeg",
			Reader:      upload.Content,
		}},
	}, discordgo.WithContext(ctx))
	if err != nil {
		log.Error().Err(err).Str("filename", upload.Filename).Msg("failed to upload file")
		return fmt.Errorf("upload %s: %w", upload.Title, err)
	}

	return nil
}

func allowedMentions(opts domain.SendOptions) *discordgo.MessageAllowedMentions {
	if opts.Parse == domain.ParseFull {
		return &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{
				discordgo.AllowedMentionTypeUsers,
				discordgo.AllowedMentionTypeRoles,
			},
		}
	}

	return &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}
}
