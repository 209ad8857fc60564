package responder

import (
	"context"
	"errors"
	"io"
	"net"

	"oklistener/internal/shared"
	"oklistener/internal/shared/logger"
)

// BufferSize is the capacity of the single read performed per connection.
// Anything the peer sends beyond it in that read is never consumed.
const BufferSize = 1024

// Response is written in full after every non-empty read, whatever was received.
var Response = []byte("HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nOK")

// Handle performs one bounded read and, when it returned data, one write of
// Response. It owns conn and closes it on return.
func Handle(ctx context.Context, conn net.Conn) {
	l := logger.Ctx(ctx)
	counted := shared.NewCountedConn(conn)
	defer func() {
		if err := counted.Close(); err != nil {
			l.Debug().Err(err).Msg("Responder: close failed")
		}
		stats := counted.Stats()
		l.Debug().Uint64("read", stats.Read).Uint64("written", stats.Written).Msg("Responder: connection released")
	}()

	buf := make([]byte, BufferSize)
	n, err := counted.Read(buf)
	switch {
	case n > 0:
		l.Info().Int("bytes", n).Msg("Responder: received data")
		if err != nil {
			l.Debug().Err(err).Msg("Responder: read returned data together with an error")
		}
	case err == nil || errors.Is(err, io.EOF):
		l.Debug().Msg("Responder: zero-length read, nothing to respond to")
		return
	default:
		l.Error().Err(err).Msg("Responder: failed to read from connection")
		return
	}

	written, err := counted.Write(Response)
	if err == nil && written < len(Response) {
		err = io.ErrShortWrite
	}
	if err != nil {
		l.Error().Err(err).Int("written", written).Msg("Responder: failed to send response")
	}
}
