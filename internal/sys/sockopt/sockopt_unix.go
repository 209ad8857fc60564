//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

// FILE: internal/sys/sockopt/sockopt_unix.go
package sockopt

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// ListenControl returns a net.ListenConfig Control hook applying the requested
// options to the listening socket before bind. It returns nil when nothing is requested.
func ListenControl(reusePort bool) func(network, address string, c syscall.RawConn) error {
	if !reusePort {
		return nil
	}
	return func(network, address string, c syscall.RawConn) error {
		var sockErr error
		err := c.Control(func(fd uintptr) {
			sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
		})
		if err != nil {
			return err
		}
		if sockErr != nil {
			return fmt.Errorf("failed to set SO_REUSEPORT on %s: %w", address, sockErr)
		}
		return nil
	}
}
