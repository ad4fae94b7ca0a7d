package main

import (
	"log/slog"
	"os"
)

type config struct {
	port            string
	discordAppToken string
	discordClientID string
	discordGuildID  string
	webhookID       string
	webhookToken    string
}

func newConfig() *config {
	return &config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),
		discordAppToken: func() string {
			discordAppToken := os.Getenv("DISCORD_APP_TOKEN")
			if discordAppToken == "" {
				slog.Error("DISCORD_APP_TOKEN is not set")
				os.Exit(1)
			}
			slog.Debug("env", "DISCORD_APP_TOKEN", discordAppToken[0:3]+"...")
			return discordAppToken
		}(),
		discordClientID: func() string {
			discordClientID := os.Getenv("DISCORD_CLIENT_ID")
			if discordClientID == "" {
				slog.Error("DISCORD_CLIENT_ID is not set")
				os.Exit(1)
			}
			slog.Debug("env", "DISCORD_CLIENT_ID", discordClientID)
			return discordClientID
		}(),
		discordGuildID: func() string {
			discordGuildID := os.Getenv("DISCORD_GUILD_ID")
			if discordGuildID == "" {
				slog.Error("DISCORD_GUILD_ID is not set")
				os.Exit(1)
			}
			slog.Debug("env", "DISCORD_GUILD_ID", discordGuildID)
			return discordGuildID
		}(),
		// optional; the announce webhook is skipped when unset
		webhookID: func() string {
			webhookID := os.Getenv("WEBHOOK_ID")
			slog.Debug("env", "WEBHOOK_ID", webhookID)
			return webhookID
		}(),
		webhookToken: os.Getenv("WEBHOOK_TOKEN"),
	}
}
