package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	minefield "github.com/minefield-dev/minefield-server"
	"github.com/minefield-dev/minefield-server/internal/app"
	"github.com/minefield-dev/minefield-server/internal/config"
)

var logFile string

func init() {
	const usage = "also write startup logs to a rotating file"
	flag.StringVar(&logFile, "log-file", "", usage)
	flag.StringVar(&logFile, "l", "", usage+" (shorthand)")
}

func setupStartupLog() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if config.Development() {
		log.SetLevel(logrus.DebugLevel)
	}
	if logFile == "" {
		return log
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      logrus.InfoLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to create rotating log file hook: ", err)
	}
	log.AddHook(hook)
	return log
}

func main() {
	flag.Parse()

	startup := setupStartupLog()
	startup.WithFields(logrus.Fields{
		"addr":      config.Addr(),
		"base_path": config.BasePath(),
		"dev":       config.Development(),
	}).Info("starting up")

	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	a := app.New(logger, minefield.Migrations)
	if err := a.Start(ctx); err != nil {
		startup.Fatal("server exited: ", err)
	}
	startup.Info("goodbye")
}
