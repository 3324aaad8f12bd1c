// Command msglogd is the message-log daemon: it listens on the configured
// IPC socket, stores received messages in the journal, and answers status
// queries from the msglog CLI.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"

	"ipcbus"
	"ipcbus/internal/config"
	"ipcbus/internal/journal"
	"ipcbus/internal/logging"
)

func main() {
	configFlag := flag.String("config", "", "configuration file path")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare data dir: %v", err)
	}

	logger, err := logging.New(logging.Options{
		Level:    cfg.Logging.Level,
		Format:   cfg.Logging.Format,
		FilePath: cfg.LogPath(),
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	logger = logging.NewComponentLogger(logger, "msglogd")

	// The flock complements the socket-level sibling check: it also stops
	// a second daemon configured with a different socket from sharing the
	// journal.
	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		logger.Error("acquire lock", logging.Error(err))
		os.Exit(1)
	}
	if !locked {
		logger.Error("another msglogd instance holds the lock",
			logging.String("lock", cfg.LockPath()))
		os.Exit(1)
	}
	defer lock.Unlock() //nolint:errcheck

	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		logger.Error("open journal", logging.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	svc := newService(ctx, store, logger)
	handle, err := ipcbus.Serve(cfg.Socket, svc.handle,
		ipcbus.WithLogger(logger),
		ipcbus.WithErrorHandler(func(err error) {
			logger.Warn("connection error",
				logging.Error(err),
				logging.String(logging.FieldEventType, "ipc_connection_failed"))
		}))
	if err != nil {
		logger.Error("start server", logging.Error(err))
		os.Exit(1)
	}

	logger.Info("msglogd listening",
		logging.String("endpoint", cfg.Socket),
		logging.String("journal", store.Path()))

	select {
	case <-ctx.Done():
		logger.Info("signal received, shutting down")
	case <-svc.shutdownRequested():
		logger.Info("shutdown requested over IPC")
	}

	if err := handle.Close(); err != nil {
		logger.Warn("close listener", logging.Error(err))
	}
	if err := handle.Wait(); err != nil {
		logger.Error("server loop failed", logging.Error(err))
		os.Exit(1)
	}
	logger.Info("msglogd stopped")
}
