// FILE: internal/shared/counted_conn.go
package shared

import (
	"net"
	"sync/atomic"

	"oklistener/internal/shared/types"
)

// CountedConn 是一个 net.Conn 的包装器，统计单个连接读写的字节数。
// The counters belong to the wrapped connection only and die with it.
type CountedConn struct {
	net.Conn
	read    atomic.Uint64
	written atomic.Uint64
}

// NewCountedConn 创建一个新的 CountedConn 实例。
func NewCountedConn(conn net.Conn) *CountedConn {
	return &CountedConn{Conn: conn}
}

// Read 从底层连接读取数据，并增加读取计数。
func (c *CountedConn) Read(b []byte) (int, error) {
	n, err := c.Conn.Read(b)
	if n > 0 {
		c.read.Add(uint64(n))
	}
	return n, err
}

// Write 将数据写入底层连接，并增加写入计数。
func (c *CountedConn) Write(b []byte) (int, error) {
	n, err := c.Conn.Write(b)
	if n > 0 {
		c.written.Add(uint64(n))
	}
	return n, err
}

// Stats returns a snapshot of the bytes moved so far.
func (c *CountedConn) Stats() types.TrafficStats {
	return types.TrafficStats{
		Read:    c.read.Load(),
		Written: c.written.Load(),
	}
}
