package port

import (
	"context"
	"unblinkingbot/internal/core/domain"
)

type TextSender interface {
	// PostMessage sends a text message to a channel.
	PostMessage(ctx context.Context, channelID string, text string, opts domain.SendOptions) error
}

type FileSender interface {
	// UploadFile posts a file attachment with its caption to the upload's channel.
	UploadFile(ctx context.Context, upload domain.Upload) error
}

type Responder interface {
	TextSender
	FileSender
}
