package types

// ListenerInfo holds the resolved address of a bound listener.
type ListenerInfo struct {
	Address string
	Port    int
}

// TrafficStats 用于报告单个连接的流量统计信息
type TrafficStats struct {
	Read    uint64
	Written uint64
}
