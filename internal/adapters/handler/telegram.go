package handler

import (
	"context"
	"strconv"
	"unblinkingbot/internal/core/domain"
	"unblinkingbot/internal/core/port"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

type UserRecorder interface {
	Remember(user *models.User)
}

// Telegram turns bot updates into dispatches, one goroutine per message.
type Telegram struct {
	dispatcher port.Dispatcher
	users      UserRecorder
	wg         conc.WaitGroup
}

func NewTelegram(dispatcher port.Dispatcher, users UserRecorder) *Telegram {
	return &Telegram{dispatcher: dispatcher, users: users}
}

func (h *Telegram) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		msg = update.ChannelPost
	}
	if msg == nil {
		return
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	h.users.Remember(msg.From)

	message := domain.Message{
		ID:        strconv.Itoa(msg.ID),
		Text:      text,
		SenderID:  telegramSenderID(msg),
		ChannelID: strconv.FormatInt(msg.Chat.ID, 10),
	}

	log.Debug().Str("messageId", message.ID).Str("channelId", message.ChannelID).Msg("received message")

	// in-flight dispatches outlive the update context, shutdown waits for them instead
	dispatchCtx := context.WithoutCancel(ctx)
	h.wg.Go(func() {
		h.dispatcher.Dispatch(dispatchCtx, message)
	})
}

// Wait blocks until every started dispatch has returned.
func (h *Telegram) Wait() {
	h.wg.Wait()
}

func telegramSenderID(msg *models.Message) string {
	if msg.From != nil {
		return strconv.FormatInt(msg.From.ID, 10)
	}

	if msg.SenderChat != nil {
		return strconv.FormatInt(msg.SenderChat.ID, 10)
	}

	return ""
}
