package app

import (
	"context"
	"net"
	"sync"

	"oklistener/internal/core/listener"
	"oklistener/internal/core/responder"
	"oklistener/internal/shared/logger"
	"oklistener/internal/shared/types"
)

// AppServer is the application's main struct.
type AppServer struct {
	cfg      *types.Config
	listener *listener.Listener

	waitGroup sync.WaitGroup
	stopOnce  sync.Once
}

// New creates an AppServer whose listener answers every connection with responder.Handle.
func New(cfg *types.Config) *AppServer {
	return &AppServer{
		cfg:      cfg,
		listener: listener.New(cfg.ListenerConf, responder.Handle),
	}
}

// Start binds the listening socket and launches the accept loop in the background.
// A bind error is returned as-is; callers treat it as fatal.
func (s *AppServer) Start(ctx context.Context) error {
	logger.Info().
		Str("address", s.cfg.ListenerConf.Address).
		Int("max_connections", s.cfg.ListenerConf.MaxConnections).
		Bool("reuse_port", s.cfg.ListenerConf.ReusePort).
		Msg("Starting server")

	if _, err := s.listener.InitializeListener(); err != nil {
		return err
	}

	s.waitGroup.Add(1)
	go func() {
		defer s.waitGroup.Done()
		if err := s.listener.Serve(ctx); err != nil {
			logger.Error().Err(err).Msg("Accept loop exited")
		}
	}()
	return nil
}

// Run is the server's entry point. It blocks until ctx is cancelled.
func (s *AppServer) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

// Stop closes the listener and waits for the accept loop to return.
// In-flight connections keep running until their handlers finish.
func (s *AppServer) Stop() {
	s.stopOnce.Do(func() {
		logger.Info().Msg("Stopping server...")
		if err := s.listener.Close(); err != nil {
			logger.Warn().Err(err).Msg("Error closing listener")
		}
		s.waitGroup.Wait()
		logger.Info().Msg("Server has been shut down")
	})
}

// Addr returns the bound address once Start has succeeded.
func (s *AppServer) Addr() net.Addr {
	return s.listener.Addr()
}
