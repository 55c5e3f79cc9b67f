package command

import (
	"context"
	"fmt"
	"time"
	"unblinkingbot/internal/core/domain"
	"unblinkingbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Greeting struct {
	session port.Session
	sender  port.TextSender
}

func NewGreeting(session port.Session, sender port.TextSender) *Greeting {
	return &Greeting{session: session, sender: sender}
}

func (g *Greeting) GetCommand() domain.Command {
	return domain.Greeting
}

const greetingTemplate = "That's my name @%s, don't wear it out!"

func (g *Greeting) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	log.Info().
		Str("channelId", message.ChannelID).
		Str("senderId", message.SenderID).
		Str("command", string(g.GetCommand())).
		Msg("handling request")

	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	name, err := g.session.DisplayName(ctx, message.SenderID)
	if err != nil {
		return fmt.Errorf("%w: failed to resolve sender name: %w", domain.ErrIdentity, err)
	}

	err = g.sender.PostMessage(ctx, message.ChannelID, fmt.Sprintf(greetingTemplate, name), domain.DefaultSendOptions)
	if err != nil {
		return fmt.Errorf("%w: failed to send greeting: %w", domain.ErrDelivery, err)
	}

	return nil
}
