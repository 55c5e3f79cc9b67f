package session

import (
	"errors"
	"net/http"
	"testing"
	"unblinkingbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) User(userID string, _ ...discordgo.RequestOption) (*discordgo.User, error) {
	args := m.Called(userID)
	user, _ := args.Get(0).(*discordgo.User)
	return user, args.Error(1)
}

func TestDiscord_Identity(t *testing.T) {
	d := &Discord{self: func() *discordgo.User { return &discordgo.User{ID: "99", Username: "watcher"} }}

	identity, err := d.Identity(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.BotIdentity{ID: "99", DisplayName: "watcher"}, identity)
}

func TestDiscord_IdentityNotReady(t *testing.T) {
	d := &Discord{self: func() *discordgo.User { return nil }}

	_, err := d.Identity(t.Context())
	require.ErrorIs(t, err, domain.ErrIdentity)
}

func TestDiscord_DisplayName(t *testing.T) {
	notFound := &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusNotFound}}

	tests := []struct {
		name     string
		ret      *discordgo.User
		retErr   error
		expected string
		wantErr  error
	}{
		{name: "known user", ret: &discordgo.User{ID: "42", Username: "alice"}, expected: "alice"},
		{name: "unknown user", retErr: notFound, wantErr: domain.ErrUnknownAccount},
		{name: "transport failure", retErr: errors.New("timeout"), wantErr: domain.ErrIdentity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mu := new(MockUsers)
			mu.On("User", "42").Return(tc.ret, tc.retErr).Once()
			d := &Discord{users: mu}

			got, err := d.DisplayName(t.Context(), "42")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
