package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"slashkit/internal/config"
	"slashkit/internal/metrics"
	"slashkit/internal/storage"
	"slashkit/pkg/appcmd"
)

type App struct {
	config     *config.Config
	store      *storage.PostgresStore
	discord    *discordgo.Session
	registry   *appcmd.Registry
	dispatcher *appcmd.Dispatcher
	metricsSrv *http.Server
	registered map[string][]*discordgo.ApplicationCommand
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to storage", "error", err)
		return nil, err
	}

	discord, err := NewDiscordSession(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	registry, err := BuildRegistry(cfg, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	dispatcher := appcmd.NewDispatcher(registry, appcmd.StateOf(discord))
	dispatcher.OnError(func(c *appcmd.Context, err error) {
		slog.Error("Command failed", "command", c.Command.Name(), "error", err)
	})
	dispatcher.WithHooks(dispatchHooks())

	discord.AddHandler(dispatcher.HandleFunc())

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &App{
		config:     cfg,
		store:      store,
		discord:    discord,
		registry:   registry,
		dispatcher: dispatcher,
		metricsSrv: &http.Server{Addr: cfg.MetricsAddr, Handler: mux},
	}, nil
}

// dispatchHooks feeds the dispatcher's observation points into Prometheus.
func dispatchHooks() appcmd.Hooks {
	return appcmd.Hooks{
		AfterDispatch: func(c *appcmd.Context, outcome appcmd.Outcome, err error, elapsed time.Duration) {
			name := c.Command.Name()
			metrics.CommandInvocations.WithLabelValues(name, string(outcome)).Inc()
			metrics.CommandDuration.WithLabelValues(name).Observe(elapsed.Seconds())
		},
		AfterAutocomplete: func(c *appcmd.Context, option string, err error) {
			status := "ok"
			if err != nil {
				status = "error"
			}
			metrics.AutocompleteRequests.WithLabelValues(c.Command.Name(), option, status).Inc()
		},
	}
}

func (a *App) Run() error {
	if err := a.discord.Open(); err != nil {
		slog.Error("Failed to open discord session", "error", err)
		return err
	}

	global, byGuild, err := a.registry.Build()
	if err != nil {
		slog.Error("Failed to build command payloads", "error", err)
		return err
	}
	a.registered = RegisterCommands(a.discord, a.discord.State.User.ID, global, byGuild)

	go func() {
		slog.Info("Metrics listening", "addr", a.metricsSrv.Addr)
		if err := a.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()

	slog.Info("Bot is online!")
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	var errs []error

	if a.config.CleanupOnExit && a.discord != nil && a.discord.State.User != nil {
		CleanupCommands(a.discord, a.discord.State.User.ID, a.registered)
	}

	if a.metricsSrv != nil {
		if err := a.metricsSrv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if a.discord != nil {
		if err := a.discord.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if a.store != nil {
		a.store.Close()
	}

	return errors.Join(errs...)
}
