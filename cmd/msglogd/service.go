package main

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"ipcbus/internal/journal"
	"ipcbus/internal/logging"
	"ipcbus/internal/protocol"
)

// service maps protocol requests onto the journal store. The server loop
// handles one connection at a time, so no locking is needed around the
// store beyond what SQLite provides.
type service struct {
	ctx     context.Context
	store   *journal.Store
	logger  *slog.Logger
	started time.Time

	shutdownOnce sync.Once
	shutdown     chan struct{}
}

func newService(ctx context.Context, store *journal.Store, logger *slog.Logger) *service {
	return &service{
		ctx:      ctx,
		store:    store,
		logger:   logger,
		started:  time.Now(),
		shutdown: make(chan struct{}),
	}
}

// shutdownRequested is closed after a shutdown request has been answered.
func (s *service) shutdownRequested() <-chan struct{} {
	return s.shutdown
}

// handle serves one decoded request; a nil return means no response frame.
func (s *service) handle(req protocol.Request) *protocol.Response {
	switch req.Kind {
	case protocol.KindPing:
		return &protocol.Response{Kind: protocol.KindPong, PID: os.Getpid()}

	case protocol.KindAppend:
		entry, err := s.store.Append(s.ctx, req.Source, req.Text)
		if err != nil {
			s.logger.Warn("append failed", logging.Error(err))
			return nil
		}
		s.logger.Debug("entry stored",
			logging.String("id", entry.ID),
			logging.String("source", entry.Source))
		return nil

	case protocol.KindRecent:
		entries, err := s.store.Recent(s.ctx, req.Limit)
		if err != nil {
			s.logger.Warn("recent query failed", logging.Error(err))
			return protocol.Errorf(err.Error())
		}
		resp := &protocol.Response{Kind: protocol.KindRecent}
		for _, entry := range entries {
			resp.Entries = append(resp.Entries, protocol.Entry{
				ID:        entry.ID,
				Source:    entry.Source,
				Text:      entry.Text,
				CreatedAt: entry.CreatedAt,
			})
		}
		return resp

	case protocol.KindStatus:
		total, err := s.store.Count(s.ctx)
		if err != nil {
			s.logger.Warn("status query failed", logging.Error(err))
			return protocol.Errorf(err.Error())
		}
		return &protocol.Response{
			Kind:   protocol.KindStatus,
			PID:    os.Getpid(),
			Uptime: time.Since(s.started).Round(time.Second).String(),
			Total:  total,
		}

	case protocol.KindShutdown:
		defer s.shutdownOnce.Do(func() { close(s.shutdown) })
		return &protocol.Response{Kind: protocol.KindPong}

	default:
		return protocol.Errorf("unknown request kind " + string(req.Kind))
	}
}
