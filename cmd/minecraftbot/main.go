package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Staco78/MinecraftBot/internal/client"
	"github.com/Staco78/MinecraftBot/internal/config"
	"github.com/Staco78/MinecraftBot/internal/debug"
	"github.com/Staco78/MinecraftBot/internal/event"
	"github.com/Staco78/MinecraftBot/internal/logger"
	"github.com/Staco78/MinecraftBot/internal/metrics"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:          "minecraftbot",
		Short:        "Headless Minecraft client that joins a server and tracks world state",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "path to the config file")

	status := &cobra.Command{
		Use:   "status",
		Short: "Ping the server and print its listing without logging in",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(logger.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			listing, rtt, err := client.Status(ctx, cfg.Server.Addr())
			if err != nil {
				return err
			}
			fmt.Println(listing)
			slog.Info("Server pinged", "rtt", rtt)
			return nil
		},
	}
	root.AddCommand(status)

	if err := root.Execute(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Listen != "" {
		go metrics.Serve(cfg.Metrics.Listen)
		slog.Info("Metrics endpoint enabled", "listen", cfg.Metrics.Listen)
	}

	c := client.New(cfg.Server.Addr(), cfg.Bot.Username)
	c.Bus().Subscribe(event.EventWorldJoined, func(evt any) {
		if e, ok := evt.(*event.WorldJoinedEvent); ok {
			slog.Info("World joined", "dimension", e.Dimension, "gameMode", e.GameMode)
		}
	})

	if cfg.Debug.Console {
		go func() {
			if err := debug.NewConsole(c.Game()).Start(ctx); err != nil {
				slog.Error("Debug console failed", "error", err)
			}
			stop()
		}()
	}

	err := c.Run(ctx)
	if errors.Is(err, context.Canceled) {
		slog.Info("Shutting down")
		return nil
	}
	return err
}
