//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

// FILE: internal/sys/sockopt/sockopt_other.go
package sockopt

import (
	"fmt"
	"syscall"
)

// ListenControl 在不支持 SO_REUSEPORT 的系统上的存根实现
func ListenControl(reusePort bool) func(network, address string, c syscall.RawConn) error {
	if !reusePort {
		return nil
	}
	return func(network, address string, c syscall.RawConn) error {
		return fmt.Errorf("reuse_port is not supported on this platform")
	}
}
