package port

import (
	"context"
	"time"
	"unblinkingbot/internal/core/domain"
)

type Command interface {
	// Respond performs the command's action for a classified message within the given timeout.
	Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error
	// GetCommand returns the command kind the handler serves.
	GetCommand() domain.Command
}

type CommandRegistry interface {
	// Register adds a command handler, replacing any handler for the same kind.
	Register(handler Command)
	// Get returns the handler registered for a command kind or domain.ErrCommandNotFound.
	Get(command domain.Command) (Command, error)
	// ListCommands returns all registered command kinds.
	ListCommands() []domain.Command
}

type Dispatcher interface {
	// Dispatch classifies and handles one inbound message. It never fails.
	Dispatch(ctx context.Context, message domain.Message) domain.Command
}
