// Command fairychess-server runs the multiplayer fairy chess server:
// a websocket endpoint for rooms plus health and stats routes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/op/go-logging"
	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"

	"github.com/liamiak1/hyper-fairy-chess/internal/archive"
	"github.com/liamiak1/hyper-fairy-chess/internal/config"
	"github.com/liamiak1/hyper-fairy-chess/internal/protocol"
	"github.com/liamiak1/hyper-fairy-chess/internal/room"
	"github.com/liamiak1/hyper-fairy-chess/internal/server"
)

var log = logging.MustGetLogger("main")

const shutdownTimeout = 10 * time.Second

var logFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:-7s} %{module}: %{message}`,
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	listen := flag.String("listen", "", "listen address, overrides the config file")
	prof := flag.String("profile", "", "write a cpu or mem profile on exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}
	setupLogging(cfg.Log.Level)

	if err := run(cfg, *prof); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func setupLogging(level string) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, logFormat)
	leveled := logging.AddModuleLevel(formatted)
	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)
}

func run(cfg config.Config, prof string) error {
	switch prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q, want cpu or mem", prof)
	}

	var arch *archive.Archive
	var saver room.Saver
	if cfg.Archive.Dir != "" {
		a, err := archive.Open(cfg.Archive.Dir)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer a.Close()
		arch = a
		saver = a
		log.Infof("archiving finished games to %s", cfg.Archive.Dir)
	}

	clk := room.SystemClock()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	directory := room.NewDirectory(clk, rng, saver)
	defer directory.Close()
	defaults := protocol.RoomSettings{
		Budget:         cfg.Defaults.Budget,
		BoardSize:      cfg.Defaults.BoardSize,
		DraftTimeLimit: cfg.Defaults.DraftTimeLimit,
	}
	if err := directory.SetDefaults(defaults); err != nil {
		return fmt.Errorf("room defaults: %w", err)
	}
	directory.StartSweeper(cfg.Rooms.SweepInterval.Duration, cfg.Rooms.TTL.Duration)

	srv := server.New(server.Deps{
		Directory: directory,
		Clock:     clk,
		Archive:   arch,
	})
	httpSrv := &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: srv.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("listening on %s", cfg.Server.Listen)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
