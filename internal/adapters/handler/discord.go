package handler

import (
	"context"
	"unblinkingbot/internal/core/domain"
	"unblinkingbot/internal/core/port"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

type Discord struct {
	dispatcher port.Dispatcher
	wg         conc.WaitGroup
}

func NewDiscord(dispatcher port.Dispatcher) *Discord {
	return &Discord{dispatcher: dispatcher}
}

// Handle is registered with discordgo for MessageCreate events.
func (h *Discord) Handle(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m == nil || m.Message == nil || m.Author == nil {
		return
	}

	message := domain.Message{
		ID:        m.ID,
		Text:      m.Content,
		SenderID:  m.Author.ID,
		ChannelID: m.ChannelID,
	}

	log.Debug().Str("messageId", message.ID).Str("channelId", message.ChannelID).Msg("received message")

	h.wg.Go(func() {
		h.dispatcher.Dispatch(context.Background(), message)
	})
}

func (h *Discord) Wait() {
	h.wg.Wait()
}
