package sender

import (
	"context"
	"fmt"
	"strconv"
	"unblinkingbot/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

//go:generate mockery --name TelegramBot

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
}

const TelegramMessageLimit = 4096

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

func (s *Telegram) PostMessage(ctx context.Context, channelID string, text string, opts domain.SendOptions) error {
	for _, chunk := range chunkText(text, TelegramMessageLimit) {
		_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:             telegramChatID(channelID),
			Text:               chunk,
			LinkPreviewOptions: linkPreview(opts),
		})
		if err != nil {
			log.Error().Err(err).Str("channelId", channelID).Msg("failed to send message")
			return err
		}
	}

	return nil
}

func (s *Telegram) UploadFile(ctx context.Context, upload domain.Upload) error {
	params := &bot.SendPhotoParams{
		ChatID:  telegramChatID(upload.ChannelID),
		Photo:   &models.InputFileUpload{Filename: upload.Filename, Data: upload.Content},
		Caption: upload.Caption,
	}

	_, err := s.bot.SendPhoto(ctx, params)
	if err != nil {
		log.Error().Err(err).Str("filename", upload.Filename).Msg("failed to send photo")
		return fmt.Errorf("upload %s: %w", upload.Title, err)
	}

	return nil
}

// telegramChatID passes numeric chat ids as integers and anything else, like @channel
// usernames, verbatim.
func telegramChatID(channelID string) any {
	if id, err := strconv.ParseInt(channelID, 10, 64); err == nil {
		return id
	}

	return channelID
}

func linkPreview(opts domain.SendOptions) *models.LinkPreviewOptions {
	if opts.Parse == domain.ParseFull {
		return nil
	}

	disabled := true
	return &models.LinkPreviewOptions{IsDisabled: &disabled}
}
