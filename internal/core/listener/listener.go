package listener

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/net/netutil"

	"oklistener/internal/shared"
	"oklistener/internal/shared/logger"
	"oklistener/internal/shared/types"
	"oklistener/internal/sys/sockopt"
)

// ErrNotInitialized is returned by Serve when no socket has been bound yet.
var ErrNotInitialized = errors.New("listener: Serve called before InitializeListener")

// ConnHandler takes ownership of conn and must close it.
type ConnHandler func(ctx context.Context, conn net.Conn)

// Listener binds one TCP address and hands every accepted connection to its
// own goroutine.
type Listener struct {
	cfg          types.ListenerConf
	handler      ConnHandler
	listener     net.Listener
	listenerInfo *types.ListenerInfo
	log          zerolog.Logger
	closeOnce    sync.Once
}

func New(cfg types.ListenerConf, handler ConnHandler) *Listener {
	return &Listener{
		cfg:     cfg,
		handler: handler,
		log:     logger.WithComponent("listener"),
	}
}

// InitializeListener 负责监听端口，但不阻塞。
// A bound listener is never re-bound; a second call returns the first result.
// The returned info is nil when the bound address could not be resolved.
func (l *Listener) InitializeListener() (*types.ListenerInfo, error) {
	if l.listener != nil {
		return l.listenerInfo, nil
	}
	if err := l.bind(); err != nil {
		return nil, err
	}
	return l.listenerInfo, nil
}

func (l *Listener) bind() error {
	lc := net.ListenConfig{Control: sockopt.ListenControl(l.cfg.ReusePort)}
	ln, err := lc.Listen(context.Background(), "tcp", l.cfg.Address)
	if err != nil {
		return fmt.Errorf("listener failed to bind %s: %w", l.cfg.Address, err)
	}

	if info, err := shared.ResolveListenerInfo(ln.Addr()); err != nil {
		l.log.Warn().Err(err).Str("configured_addr", l.cfg.Address).Msg("Failed to resolve the bound address")
	} else {
		l.listenerInfo = info
		l.log.Info().Str("listen_addr", ln.Addr().String()).Msg("Server is listening")
	}

	if l.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, l.cfg.MaxConnections)
		l.log.Info().Int("max_connections", l.cfg.MaxConnections).Msg("Admission gate enabled")
	}
	l.listener = ln
	return nil
}

// Serve runs the accept loop until the listener is closed, either through
// Close or by cancelling ctx. Cancellation is observed between accepts and
// never reaches running handlers.
func (l *Listener) Serve(ctx context.Context) error {
	if l.listener == nil {
		return ErrNotInitialized
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = l.Close()
		case <-stop:
		}
	}()

	for {
		conn, err := l.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				l.log.Info().Msg("Listener is closing.")
				return nil
			}
			l.log.Warn().Err(err).Msg("Failed to accept connection")
			continue
		}
		l.dispatch(conn)
	}
}

func (l *Listener) dispatch(conn net.Conn) {
	connLog := logger.WithTrace(uuid.NewString())

	event := connLog.Info()
	if local, err := shared.DescribeAddr(conn.LocalAddr()); err != nil {
		connLog.Warn().Err(err).Msg("Failed to describe local address of connection")
	} else {
		event = event.Str("local_addr", local)
	}
	if remote, err := shared.DescribeAddr(conn.RemoteAddr()); err != nil {
		connLog.Warn().Err(err).Msg("Failed to describe remote address of connection")
	} else {
		event = event.Str("remote_addr", remote)
	}
	event.Msg("New connection received")

	// Handlers get a fresh context so shutting down the loop leaves them running.
	connCtx := connLog.WithContext(context.Background())
	go l.handler(connCtx, conn)
}

// Close stops the accept loop. Connections already handed out are unaffected.
func (l *Listener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.listener != nil {
			err = l.listener.Close()
		}
	})
	return err
}

// Addr returns the bound address, or nil before InitializeListener.
func (l *Listener) Addr() net.Addr {
	if l.listener == nil {
		return nil
	}
	return l.listener.Addr()
}

// GetListenerInfo 返回监听信息。
func (l *Listener) GetListenerInfo() *types.ListenerInfo {
	return l.listenerInfo
}
