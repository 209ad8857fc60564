package types

// ListenerConf 包含监听器相关的配置
type ListenerConf struct {
	Address string `ini:"address"`
	// MaxConnections bounds the number of open connections. 0 means unbounded.
	MaxConnections int  `ini:"max_connections"`
	ReusePort      bool `ini:"reuse_port"`
}

// LogConf contains logging specific configuration
type LogConf struct {
	Level string `ini:"level"`
}

// Config 是 oklistener 的统一配置结构体
type Config struct {
	ListenerConf `ini:"listener"`
	LogConf      `ini:"log"`
}

// DefaultConfig returns the configuration used when no ini file is present.
func DefaultConfig() *Config {
	return &Config{
		ListenerConf: ListenerConf{
			Address: "127.0.0.1:8000",
		},
		LogConf: LogConf{
			Level: "info",
		},
	}
}
