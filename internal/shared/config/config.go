package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/ini.v1"

	"oklistener/internal/shared/types"
)

// LoadIni 加载 oklistener.ini 配置文件。
// cfg should already hold defaults; keys missing from the file leave them untouched.
// A missing file is not an error.
func LoadIni(cfg *types.Config, fileName string) error {
	iniFile, err := ini.LoadSources(ini.LoadOptions{Loose: true}, fileName)
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	if err := iniFile.MapTo(cfg); err != nil {
		return fmt.Errorf("failed to map config file: %w", err)
	}

	overrideFromEnvString(&cfg.ListenerConf.Address, "LISTEN_ADDR")
	overrideFromEnvInt(&cfg.ListenerConf.MaxConnections, "MAX_CONNECTIONS")
	overrideFromEnvBool(&cfg.ListenerConf.ReusePort, "REUSE_PORT")
	overrideFromEnvString(&cfg.LogConf.Level, "LOG_LEVEL")

	if cfg.ListenerConf.Address == "" {
		return fmt.Errorf("listener address is empty")
	}
	if cfg.ListenerConf.MaxConnections < 0 {
		return fmt.Errorf("max_connections must not be negative, got %d", cfg.ListenerConf.MaxConnections)
	}
	return nil
}

// Load returns the defaults overlaid with fileName and the environment.
func Load(fileName string) (*types.Config, error) {
	cfg := types.DefaultConfig()
	if err := LoadIni(cfg, fileName); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overrideFromEnvString(target *string, envName string) {
	if envValue := os.Getenv(envName); envValue != "" {
		*target = envValue
	}
}

func overrideFromEnvInt(target *int, envName string) {
	envValue := os.Getenv(envName)
	if envValue != "" {
		if intValue, err := strconv.Atoi(envValue); err == nil {
			*target = intValue
		}
	}
}

func overrideFromEnvBool(target *bool, envName string) {
	envValue := os.Getenv(envName)
	if envValue != "" {
		if boolValue, err := strconv.ParseBool(envValue); err == nil {
			*target = boolValue
		}
	}
}
