package service

import (
	"context"
	"time"
	"unblinkingbot/internal/core/domain"
	"unblinkingbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/panics"
)

// Dispatcher runs the intake pipeline for one message at a time: identity lookup, classification
// and the registered command handler. No error or panic leaves Dispatch.
type Dispatcher struct {
	session  port.Session
	registry port.CommandRegistry
	timeout  time.Duration
}

func NewDispatcher(session port.Session, registry port.CommandRegistry, timeout time.Duration) *Dispatcher {
	return &Dispatcher{session: session, registry: registry, timeout: timeout}
}

// Dispatch handles message and returns the command it was classified as.
func (d *Dispatcher) Dispatch(ctx context.Context, message domain.Message) domain.Command {
	l := log.With().
		Str("dispatchId", newDispatchID()).
		Str("messageId", message.ID).
		Str("channelId", message.ChannelID).
		Str("senderId", message.SenderID).
		Logger()

	cmd := domain.None
	var handler port.Command

	recovered(l, func() {
		cmd, handler = d.route(ctx, l, message)
	})

	if handler == nil {
		return cmd
	}

	l = l.With().Str("command", string(cmd)).Logger()

	recovered(l, func() {
		if err := handler.Respond(ctx, d.timeout, &message); err != nil {
			l.Error().Err(err).Str("errorKind", domain.ErrorKind(err)).Msg("failed to respond to command")
		}
	})

	return cmd
}

// route classifies message and finds its handler. A nil handler means nothing is to be done.
func (d *Dispatcher) route(ctx context.Context, l zerolog.Logger, message domain.Message) (domain.Command, port.Command) {
	if message.Text == "" {
		l.Debug().Str("errorKind", domain.ErrorKind(domain.ErrEmptyMessage)).Msg("ignoring message")
		return domain.None, nil
	}

	identity, err := d.session.Identity(ctx)
	if err != nil {
		l.Error().Err(err).Str("errorKind", "identity").Msg("failed to fetch bot identity")
		return domain.None, nil
	}

	if err := domain.CheckMessage(identity, message); err != nil {
		l.Debug().Err(err).Str("errorKind", domain.ErrorKind(err)).Msg("ignoring message")
		return domain.None, nil
	}

	cmd := domain.Classify(identity, message)
	if cmd == domain.None {
		l.Debug().Msg("no command in message")
		return cmd, nil
	}

	handler, err := d.registry.Get(cmd)
	if err != nil {
		l.Warn().Err(err).Str("command", string(cmd)).Msg("no handler for command")
		return cmd, nil
	}

	return cmd, handler
}

func recovered(l zerolog.Logger, f func()) {
	var pc panics.Catcher
	pc.Try(f)

	if r := pc.Recovered(); r != nil {
		l.Error().Err(r.AsError()).Msg("dispatch panicked")
	}
}

func newDispatchID() string {
	id, err := uuid.NewV4()
	if err != nil {
		log.Warn().Err(err).Msg("failed to generate dispatch id")
		return ""
	}

	return id.String()
}
