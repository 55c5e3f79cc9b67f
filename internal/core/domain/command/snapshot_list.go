package command

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unblinkingbot/internal/core/domain"
	"unblinkingbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type SnapshotList struct {
	store  port.PrefixStore
	sender port.TextSender
}

func NewSnapshotList(store port.PrefixStore, sender port.TextSender) *SnapshotList {
	return &SnapshotList{store: store, sender: sender}
}

func (s *SnapshotList) GetCommand() domain.Command {
	return domain.SnapshotList
}

const listHeader = "Here are the snapshot names that you requested:"

func (s *SnapshotList) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Str("channelId", message.ChannelID).
		Str("senderId", message.SenderID).
		Str("command", string(s.GetCommand())).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	snapshots, err := s.store.GetByPrefix(ctx, domain.SnapshotPrefix)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrLookup, err)
		l.Error().Err(err).Str("errorKind", domain.ErrorKind(err)).Msg("failed to query snapshots, listing none")
		snapshots = nil
	}

	lines := make([]string, 0, len(snapshots)+1)
	lines = append(lines, listHeader)
	for _, snapshot := range snapshots {
		lines = append(lines, "• "+snapshot.Name)
	}

	err = s.sender.PostMessage(ctx, message.ChannelID, strings.Join(lines, "\n"), domain.DefaultSendOptions)
	if err != nil {
		return fmt.Errorf("%w: failed to send snapshot list: %w", domain.ErrDelivery, err)
	}

	return nil
}
