package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dan9191/mfdash/internal/cli"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if err := cli.NewRootCmd(logger).ExecuteContext(ctx); err != nil {
		logger.WithError(err).Error("Command failed")
		stop()
		os.Exit(1)
	}
	stop()
}
