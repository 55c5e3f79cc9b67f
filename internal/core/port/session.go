package port

import (
	"context"
	"unblinkingbot/internal/core/domain"
)

type Session interface {
	// Identity returns the bot's own account at call time.
	Identity(ctx context.Context) (domain.BotIdentity, error)
	// DisplayName resolves an account id, failing with domain.ErrUnknownAccount.
	DisplayName(ctx context.Context, accountID string) (string, error)
}
