package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unblinkingbot/internal/adapters/file"
	"unblinkingbot/internal/adapters/handler"
	"unblinkingbot/internal/adapters/sender"
	"unblinkingbot/internal/adapters/session"
	"unblinkingbot/internal/adapters/store"
	"unblinkingbot/internal/core/domain/command"
	"unblinkingbot/internal/core/port"
	"unblinkingbot/internal/core/service"

	"github.com/bwmarrin/discordgo"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	platformTelegram = "telegram"
	platformDiscord  = "discord"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to the chat platform and answer messages",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log.Info().Msg("starting unblinkingbot...")

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		handlerTimeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
		if err != nil {
			return fmt.Errorf("invalid timeout for handler in config: %w", err)
		}

		downloadTimeout, err := time.ParseDuration(viper.GetString("snapshot.download_timeout"))
		if err != nil {
			return fmt.Errorf("invalid snapshot download timeout in config: %w", err)
		}

		snapshots, err := store.NewSQLite(viper.GetString("store.path"))
		if err != nil {
			return fmt.Errorf("failed opening snapshot store: %w", err)
		}
		defer snapshots.Close()

		deps := dependencies{
			store:   snapshots,
			source:  file.NewHTTPSource(downloadTimeout),
			timeout: handlerTimeout,
		}

		switch platform := viper.GetString("bot.platform"); platform {
		case platformTelegram:
			return runTelegram(ctx, deps)
		case platformDiscord:
			return runDiscord(ctx, deps)
		default:
			return fmt.Errorf("unknown platform %q", platform)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type dependencies struct {
	store   port.PrefixStore
	source  port.SnapshotSource
	timeout time.Duration
}

func newRegistry(deps dependencies, responder port.Responder, s port.Session) *command.Registry {
	registry := &command.Registry{}

	registry.Register(command.NewSnapshotList(deps.store, responder))
	registry.Register(command.NewSnapshotFetch(deps.store, deps.source, responder, responder))
	registry.Register(command.NewGreeting(s, responder))

	return registry
}

func runTelegram(ctx context.Context, deps dependencies) error {
	b, err := bot.New(viper.GetString("telegram.bot_token"))
	if err != nil {
		return fmt.Errorf("failed initializing telegram bot: %w", err)
	}

	tgSession := session.NewTelegram(b)
	registry := newRegistry(deps, sender.NewTelegram(b), tgSession)
	h := handler.NewTelegram(service.NewDispatcher(tgSession, registry, deps.timeout), tgSession)

	b.RegisterHandlerMatchFunc(func(*models.Update) bool { return true }, h.Handle)

	log.Info().Str("platform", platformTelegram).Msg("bot listening")
	b.Start(ctx)

	log.Info().Msg("waiting for in-flight messages")
	h.Wait()

	return nil
}

func runDiscord(ctx context.Context, deps dependencies) error {
	dg, err := discordgo.New("Bot " + viper.GetString("discord.bot_token"))
	if err != nil {
		return fmt.Errorf("failed initializing discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	dcSession := session.NewDiscord(dg)
	registry := newRegistry(deps, sender.NewDiscord(dg), dcSession)
	h := handler.NewDiscord(service.NewDispatcher(dcSession, registry, deps.timeout))

	dg.AddHandler(h.Handle)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed connecting to discord: %w", err)
	}

	log.Info().Str("platform", platformDiscord).Msg("bot listening")
	<-ctx.Done()

	if err := dg.Close(); err != nil {
		log.Warn().Err(err).Msg("failed closing discord session")
	}

	log.Info().Msg("waiting for in-flight messages")
	h.Wait()

	return nil
}
