package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Hnato/JBH-Blackjack-LAN/internal/config"
	"github.com/Hnato/JBH-Blackjack-LAN/internal/jwt"
	"github.com/Hnato/JBH-Blackjack-LAN/internal/mux"
	"github.com/Hnato/JBH-Blackjack-LAN/pkg/blackjack"
	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const readTimeout = time.Second * 5
const shutdownTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	// fail fast
	jwt.LoadKeys()

	tbl, err := blackjack.NewTable(logrus.WithField("component", "table"), tableOptions())
	if err != nil {
		logrus.WithError(err).Fatal("invalid table configuration")
	}

	m := mux.NewMux(Version, tbl)
	defer m.Close()

	c := cors.New(cors.Options{
		AllowedOrigins: config.Instance().CORS.AllowedOrigins,
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	// no WriteTimeout, websocket connections are long lived
	srv := &http.Server{
		Addr:        *addr,
		Handler:     loggingHandler(c.Handler(m)),
		ReadTimeout: readTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logrus.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Fatal("server failed")
	}
}

func tableOptions() blackjack.Options {
	cfg := config.Instance().Table
	return blackjack.Options{
		Seats:              cfg.Seats,
		Decks:              cfg.Decks,
		StartingMoney:      cfg.StartingMoney,
		MaxBet:             cfg.MaxBet,
		MaxMoney:           cfg.MaxMoney,
		LoopbackPrivileged: cfg.LoopbackPrivileged,
	}
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
