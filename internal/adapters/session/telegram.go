package session

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"unblinkingbot/internal/core/domain"

	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

type TelegramBot interface {
	GetMe(ctx context.Context) (*models.User, error)
}

// Telegram resolves the bot account through the Bot API. The Bot API cannot look up arbitrary
// users, so display names come from the users seen on incoming updates.
type Telegram struct {
	bot   TelegramBot
	users sync.Map
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

func (t *Telegram) Identity(ctx context.Context) (domain.BotIdentity, error) {
	me, err := t.bot.GetMe(ctx)
	if err != nil {
		return domain.BotIdentity{}, fmt.Errorf("%w: get me: %w", domain.ErrIdentity, err)
	}

	return domain.BotIdentity{ID: strconv.FormatInt(me.ID, 10), DisplayName: me.Username}, nil
}

func (t *Telegram) DisplayName(_ context.Context, accountID string) (string, error) {
	name, ok := t.users.Load(accountID)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownAccount, accountID)
	}

	return name.(string), nil
}

// Remember records the display name of a user seen on an update.
func (t *Telegram) Remember(user *models.User) {
	if user == nil {
		return
	}

	name := user.Username
	if name == "" {
		name = user.FirstName
	}

	id := strconv.FormatInt(user.ID, 10)
	if previous, loaded := t.users.Swap(id, name); !loaded || previous != name {
		log.Debug().Str("accountId", id).Str("name", name).Msg("remembered user")
	}
}
