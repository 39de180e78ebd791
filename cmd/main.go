package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	botsqlite "dartserver/bot/botstorage/sqlite"
	"dartserver/bot/tgbot"
	"dartserver/internal/config"
	"dartserver/internal/logger"
	sqlite3 "dartserver/internal/migrate"
	"dartserver/internal/mirror"
	"dartserver/internal/service"
	"dartserver/internal/storage"
	"dartserver/internal/storage/sqlite"
	"dartserver/internal/web"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var serverConfigPath, botConfigPath string
	flag.StringVar(&serverConfigPath, "server-config", "configs/server.toml", "path to the server config")
	flag.StringVar(&botConfigPath, "bot-config", "configs/bot.toml", "path to the bot config")
	flag.Parse()

	cfg, err := config.NewFromFiles(serverConfigPath, botConfigPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.Debug)

	db, err := storage.New(cfg.Server.SqliteFile)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := sqlite3.UpServerDB(db); err != nil {
		return err
	}
	store := sqlite.New(db)
	log.Info("server storage connected")

	playerService := service.NewPlayerService(log, store, store)

	var publisher service.Publisher
	mirrorServer := mirror.New(log)
	if cfg.Mirror.Enabled {
		publisher = mirrorServer
		go func() {
			if err := mirrorServer.Serve(cfg.Server.Host + ":" + strconv.Itoa(cfg.Mirror.Port)); err != nil {
				log.WithError(err).Error("mirror server stopped")
			}
		}()
	}

	var notifier service.Notifier
	var bot *tgbot.Bot
	if cfg.Server.TgBotEnabled {
		botStorage, err := botsqlite.New(log, cfg.TgBot)
		if err != nil {
			return err
		}
		bot, err = tgbot.New(playerService, botStorage, cfg, log)
		if err != nil {
			return err
		}
		notifier = bot
		go bot.Run()
		defer bot.Stop()
	}

	matchService := service.NewMatchService(log, playerService, store, store, publisher, notifier)

	server, err := web.New(playerService, matchService, cfg)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mirrorServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("mirror shutdown")
	}
	return server.Shutdown()
}
