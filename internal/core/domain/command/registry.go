package command

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"unblinkingbot/internal/core/domain"
	"unblinkingbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	mu       sync.RWMutex
	commands map[domain.Command]port.Command
}

func (r *Registry) Register(handler port.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.commands == nil {
		r.commands = make(map[domain.Command]port.Command)
	}

	log.Info().Str("handler", string(handler.GetCommand())).Msg("adding command handler to registry")
	r.commands[handler.GetCommand()] = handler
}

func (r *Registry) Get(command domain.Command) (port.Command, error) {
	log.Debug().Str("command", string(command)).Msg("fetching command handler from registry")

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.commands == nil {
		return nil, errors.New("can't fetch command, registry not initialized")
	}

	handler, ok := r.commands[command]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, command)
	}

	return handler, nil
}

func (r *Registry) ListCommands() []domain.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]domain.Command, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
