package shared

import (
	"errors"
	"net"

	"oklistener/internal/shared/types"
)

var (
	// ErrNoAddr is returned when a socket reports no address at all.
	ErrNoAddr = errors.New("address unavailable")
	// ErrUnassignedPort is returned for a TCP address whose port is still 0.
	ErrUnassignedPort = errors.New("port not assigned")
)

// DescribeAddr turns a socket address into a loggable string.
// Callers treat a non-nil error as a diagnostic gap only, never as a control signal.
func DescribeAddr(addr net.Addr) (string, error) {
	if _, err := ResolveListenerInfo(addr); err != nil {
		return "", err
	}
	return addr.String(), nil
}

// ResolveListenerInfo extracts host and port from a TCP address.
// Non-TCP addresses yield a nil info and no error.
func ResolveListenerInfo(addr net.Addr) (*types.ListenerInfo, error) {
	if addr == nil {
		return nil, ErrNoAddr
	}
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		if addr.String() == "" {
			return nil, ErrNoAddr
		}
		return nil, nil
	}
	if tcpAddr == nil {
		return nil, ErrNoAddr
	}
	if tcpAddr.Port == 0 {
		return nil, ErrUnassignedPort
	}
	return &types.ListenerInfo{
		Address: tcpAddr.IP.String(),
		Port:    tcpAddr.Port,
	}, nil
}
