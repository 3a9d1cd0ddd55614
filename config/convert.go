package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// 环境变量覆盖
const (
	EnvDataDir        = "DHTHOLD_DATA_DIR"
	EnvMaxInFlight    = "DHTHOLD_MAX_IN_FLIGHT"
	EnvIntrospectAddr = "DHTHOLD_INTROSPECT_ADDR"
	EnvLogLevel       = "DHTHOLD_LOG_LEVEL"
	EnvLogFormat      = "DHTHOLD_LOG_FORMAT"
)

// FromJSON 从 JSON 数据创建配置，未出现的字段保持默认值
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// FromTOML 从 TOML 数据创建配置，未出现的字段保持默认值
//
// 示例:
//
//	[storage]
//	data_dir = "/var/lib/dhthold"
//
//	[transport]
//	keepalive_interval = "15s"
//
//	[[instances]]
//	id = "app"
//	hub_url = "ws://127.0.0.1:9000"
func FromTOML(data []byte) (*Config, error) {
	cfg := NewConfig()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to decode toml config: %w", err)
	}
	return cfg, nil
}

// Load 读取配置文件，按扩展名选择格式（.toml 为 TOML，其余为 JSON），
// 然后应用环境变量并校验
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	var cfg *Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		cfg, err = FromTOML(data)
	} else {
		cfg, err = FromJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv 用 DHTHOLD_* 环境变量覆盖配置
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv(EnvMaxInFlight); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxInFlight, err)
		}
		cfg.Dispatch.MaxInFlight = n
	}
	if v := os.Getenv(EnvIntrospectAddr); v != "" {
		cfg.Introspect.Enable = true
		cfg.Introspect.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	return nil
}
