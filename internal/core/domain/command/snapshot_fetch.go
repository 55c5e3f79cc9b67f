package command

import (
	"context"
	"fmt"
	"time"
	"unblinkingbot/internal/core/domain"
	"unblinkingbot/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

type SnapshotFetch struct {
	store      port.PrefixStore
	source     port.SnapshotSource
	fileSender port.FileSender
	textSender port.TextSender
	now        func() time.Time
}

func NewSnapshotFetch(store port.PrefixStore,
	source port.SnapshotSource,
	fileSender port.FileSender,
	textSender port.TextSender) *SnapshotFetch {
	return &SnapshotFetch{
		store:      store,
		source:     source,
		fileSender: fileSender,
		textSender: textSender,
		now:        time.Now,
	}
}

func (f *SnapshotFetch) GetCommand() domain.Command {
	return domain.SnapshotFetch
}

const (
	noSuchSnapshot = "Did you want a snapshot? If so, next time ask for one that exists. (hint: ask for the snapshot list)"
	uploadFilename = "snapshot_%s_%d.jpg"
	uploadTitle    = "Snapshot of %s"
	uploadCaption  = "Here's that picture of the %s that you wanted."
)

func (f *SnapshotFetch) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Str("channelId", message.ChannelID).
		Str("senderId", message.SenderID).
		Str("command", string(f.GetCommand())).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	snapshots, err := f.store.GetByPrefix(ctx, domain.SnapshotPrefix)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrLookup, err)
		l.Error().Err(err).Str("errorKind", domain.ErrorKind(err)).Msg("failed to query snapshots, matching none")
		snapshots = nil
	}

	matches := matchSnapshots(snapshots, message.Text)
	if len(matches) == 0 {
		l.Debug().Msg("no snapshot matched")
		err = f.textSender.PostMessage(ctx, message.ChannelID, noSuchSnapshot, domain.DefaultSendOptions)
		if err != nil {
			return fmt.Errorf("%w: failed to send snapshot hint: %w", domain.ErrDelivery, err)
		}
		return nil
	}

	var wg conc.WaitGroup
	for _, snapshot := range matches {
		wg.Go(func() {
			ul := l.With().Str("snapshot", snapshot.Name).Logger()
			if err := f.upload(ctx, ul, message, snapshot); err != nil {
				ul.Error().Err(err).Str("errorKind", domain.ErrorKind(err)).Msg("failed to upload snapshot")
			}
		})
	}

	if r := wg.WaitAndRecover(); r != nil {
		l.Error().Err(r.AsError()).Str("errorKind", "delivery").Msg("snapshot upload panicked")
	}

	return nil
}

func (f *SnapshotFetch) upload(ctx context.Context, l zerolog.Logger, message *domain.Message, snapshot domain.Snapshot) error {
	body, err := f.source.Open(ctx, snapshot.URL)
	if err != nil {
		return fmt.Errorf("%w: failed to open snapshot: %w", domain.ErrDelivery, err)
	}
	defer body.Close()

	err = f.fileSender.UploadFile(ctx, domain.Upload{
		Filename:  fmt.Sprintf(uploadFilename, snapshot.Name, f.now().UnixMilli()),
		Title:     fmt.Sprintf(uploadTitle, snapshot.Name),
		ChannelID: message.ChannelID,
		Caption:   fmt.Sprintf(uploadCaption, snapshot.Name),
		Content:   body,
		Options:   domain.DefaultSendOptions,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDelivery, err)
	}

	l.Debug().Msg("snapshot uploaded")

	return nil
}

// matchSnapshots keeps every record whose name occurs in text, ignoring case.
func matchSnapshots(snapshots []domain.Snapshot, text string) []domain.Snapshot {
	var matches []domain.Snapshot
	for _, snapshot := range snapshots {
		if domain.ContainsFold(text, snapshot.Name) {
			matches = append(matches, snapshot)
		}
	}

	return matches
}
