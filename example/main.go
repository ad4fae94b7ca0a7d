// An example bot wiring the dgx packages together: a customId router with
// exact, wildcard and regex routes, a paginated soundboard listing, a
// confirmation flow, per-user cooldowns persisted in sqlite, and a
// /metrics endpoint.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"dgx/collector"
	"dgx/confirm"
	"dgx/cooldown"
	"dgx/format"
	"dgx/metric"
	"dgx/paginator"
	"dgx/restx"
	"dgx/router"
	"dgx/webhook"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	cfg := newConfig()
	ctx := context.Background()

	dg, err := discordgo.New("Bot " + cfg.discordAppToken)
	if err != nil {
		slog.Error("can't create discord session", "error", err.Error())
		os.Exit(1)
	}

	// cooldowns survive restarts via sqlite
	rawDB, err := sql.Open(sqliteshim.ShimName, "./sqlite.db?mode=rwc")
	if err != nil {
		slog.Error("can't open sqlite database", "error", err.Error())
		os.Exit(1)
	}
	bunDB := bun.NewDB(rawDB, sqlitedialect.New())
	store, err := cooldown.NewBunStore(ctx, bunDB)
	if err != nil {
		slog.Error("can't init cooldown store", "error", err.Error())
		os.Exit(1)
	}

	metrics := metric.Init()
	collector.SetMetrics(metrics)

	cooldowns := cooldown.NewManager(cooldown.Options{
		Store:         store,
		SweepInterval: time.Minute,
		Metrics:       metrics,
	})
	defer cooldowns.Destroy(ctx)

	rest := restx.New(dg)

	r := router.New()
	r.SetMetrics(metrics)

	// /ping: per-user cooldown demo
	r.Register("ping", func(s *discordgo.Session, i *discordgo.InteractionCreate, _ map[string]string) error {
		if err := cooldowns.UseUser(ctx, "ping", i, 10*time.Second); err != nil {
			var active *cooldown.CooldownActiveError
			if errors.As(err, &active) {
				return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
					Type: discordgo.InteractionResponseChannelMessageWithSource,
					Data: &discordgo.InteractionResponseData{
						Flags:   discordgo.MessageFlagsEphemeral,
						Content: "Slow down, try again in " + cooldown.FormatRemaining(active.Remaining),
					},
				})
			}
			return err
		}
		return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "Pong, it is " + format.Timestamp(time.Now(), format.TimestampLongTime),
			},
		})
	})

	// /sounds: guild soundboard listing behind a paginator
	r.Register("sounds", func(s *discordgo.Session, i *discordgo.InteractionCreate, _ map[string]string) error {
		sounds, err := rest.GuildSoundboardSounds(i.GuildID)
		if err != nil {
			return fmt.Errorf("can't list soundboard sounds: %w", err)
		}
		if len(sounds) == 0 {
			return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{Content: "No soundboard sounds here."},
			})
		}
		pages := make([]*discordgo.MessageEmbed, 0, len(sounds))
		for _, sound := range sounds {
			pages = append(pages, &discordgo.MessageEmbed{
				Title:       format.CleanupString(sound.Name),
				Description: fmt.Sprintf("sound_id: %s\nvolume: %.2f", sound.SoundID, sound.Volume),
			})
		}
		p, err := paginator.New(pages, &paginator.Options{Timeout: 2 * time.Minute})
		if err != nil {
			return err
		}
		return p.Reply(s, i)
	})

	// /wipe: confirmation flow demo
	r.Register("wipe", func(s *discordgo.Session, i *discordgo.InteractionCreate, _ map[string]string) error {
		ok, err := confirm.Ask(s, i, confirm.Payload{
			Content: "Wipe your cooldowns?",
		}, &confirm.Options{
			Timeout:       30 * time.Second,
			ConfirmedText: "Cooldowns wiped.",
			CancelledText: "Nothing touched.",
		})
		if errors.Is(err, confirm.ErrTimedOut) {
			return nil
		}
		if err != nil {
			return err
		}
		if ok {
			return cooldowns.Reset(ctx, "ping", cooldown.UserID(i))
		}
		return nil
	})

	// wildcard and regex component routes
	r.Register("role_*", func(s *discordgo.Session, i *discordgo.InteractionCreate, params map[string]string) error {
		return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Flags:   discordgo.MessageFlagsEphemeral,
				Content: "Picked role: " + params["wildcard"],
			},
		})
	})
	r.Register(regexp.MustCompile(`^confirm_ban_(?P<userId>\d+)$`), func(s *discordgo.Session, i *discordgo.InteractionCreate, params map[string]string) error {
		return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "Ban confirmed for " + format.UserMention(params["userId"]),
			},
		})
	})

	// unknown customIDs are usually buttons that outlived their session
	r.SetFallback(func(s *discordgo.Session, i *discordgo.InteractionCreate, _ map[string]string) error {
		slog.Debug("expired interaction", "custom_id", router.CustomID(i))
		return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Flags:   discordgo.MessageFlagsEphemeral,
				Content: "Expired interaction",
			},
		})
	})

	removeRouter := r.Attach(dg)
	defer removeRouter()

	if err := dg.Open(); err != nil {
		slog.Error("can't open discord connection", "error", err.Error())
		os.Exit(1)
	}
	defer dg.Close()

	if _, err := dg.ApplicationCommandBulkOverwrite(
		cfg.discordClientID,
		cfg.discordGuildID,
		[]*discordgo.ApplicationCommand{
			{Name: "ping", Description: "Check the bot, rate limited per user."},
			{Name: "sounds", Description: "Browse this guild's soundboard."},
			{Name: "wipe", Description: "Wipe your cooldowns, with confirmation."},
		}); err != nil {
		slog.Error("can't create slash commands", "error", err.Error())
	}

	if cfg.webhookID != "" {
		announcer := webhook.NewSender(dg, cfg.webhookID, cfg.webhookToken)
		announcer.Username = "example bot"
		if _, err := announcer.Send("Example bot is up."); err != nil {
			slog.Warn("can't announce startup", "error", err.Error())
		}
	}

	go func() {
		muxer := http.NewServeMux()
		muxer.Handle("GET /metrics", promhttp.Handler())
		if err := http.ListenAndServe(":"+cfg.port, muxer); err != nil {
			slog.Error("cannot start HTTP server", "error", err.Error())
		}
	}()

	slog.Info("app is now running, press Ctrl+C to exit")
	closeSignalChan := make(chan os.Signal, 1)
	signal.Notify(closeSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-closeSignalChan
	slog.Info("Gracefully shutting down...")
}
