package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"unblinkingbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

type DiscordUsers interface {
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
}

type Discord struct {
	self  func() *discordgo.User
	users DiscordUsers
}

func NewDiscord(s *discordgo.Session) *Discord {
	return &Discord{
		self: func() *discordgo.User {
			if s.State == nil {
				return nil
			}
			return s.State.User
		},
		users: s,
	}
}

func (d *Discord) Identity(_ context.Context) (domain.BotIdentity, error) {
	me := d.self()
	if me == nil {
		return domain.BotIdentity{}, fmt.Errorf("%w: gateway not ready", domain.ErrIdentity)
	}

	return domain.BotIdentity{ID: me.ID, DisplayName: me.Username}, nil
}

func (d *Discord) DisplayName(ctx context.Context, accountID string) (string, error) {
	user, err := d.users.User(accountID, discordgo.WithContext(ctx))
	if err != nil {
		var restErr *discordgo.RESTError
		if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%w: %s", domain.ErrUnknownAccount, accountID)
		}
		return "", fmt.Errorf("%w: user %s: %w", domain.ErrIdentity, accountID, err)
	}

	return user.Username, nil
}
