package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pryv/campaign-manager/internal/config"
)

var (
	gitRevision = "unknown"
	gitBranch   = "unknown"
)

func main() {
	conf := flag.String("config", "campaign_server.yml", "name of config file")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	cfg := config.NewAppConfig()
	cfg.Load(*conf)

	if err := cfg.LoadEnv("CAMPAIGN_"); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	if *debug {
		_ = cfg.Set("debug", true)
	}

	level := slog.LevelInfo
	if cfg.Debug() {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info(fmt.Sprintf("version %s %s", gitBranch, gitRevision))

	app := NewApp(cfg)
	srv := NewHttpServer(app)

	go func() {
		if err := srv.Listen(); err != nil {
			app.logger.Error("http server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	app.logger.Info("shutting down")
	_ = srv.Shutdown()
}
