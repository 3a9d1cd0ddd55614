// Package config 提供 dhthold 的统一配置
//
// 主 Config 结构体嵌入所有子配置，每个子配置在独立文件中定义。
// 支持从 JSON 或 TOML 文件加载，并可用 DHTHOLD_* 环境变量覆盖。
//
// 使用示例：
//
//	// 从文件加载（按扩展名识别格式）并应用环境变量
//	cfg, err := config.Load("dhthold.toml")
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Instances = append(cfg.Instances, config.InstanceConfig{ID: "app", HubURL: "ws://127.0.0.1:9000"})
package config

// Config dhthold 的完整配置
//
// 配置按功能模块组织：
//   - Storage: 数据目录与 BadgerDB 参数
//   - Dispatch: 工作流任务池
//   - Transport: Hub 会话
//   - Introspect: 调试 HTTP 服务
//   - Log: 日志
//   - Instances: 实例列表
type Config struct {
	// Storage 存储配置
	Storage StorageConfig `json:"storage" toml:"storage"`

	// Dispatch 分发器配置
	Dispatch DispatchConfig `json:"dispatch" toml:"dispatch"`

	// Transport Hub 会话配置
	Transport TransportConfig `json:"transport" toml:"transport"`

	// Introspect 调试服务配置
	Introspect IntrospectConfig `json:"introspect" toml:"introspect"`

	// Log 日志配置
	Log LogConfig `json:"log" toml:"log"`

	// Instances 启动时创建的实例
	Instances []InstanceConfig `json:"instances,omitempty" toml:"instances"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Storage:    DefaultStorageConfig(),
		Dispatch:   DefaultDispatchConfig(),
		Transport:  DefaultTransportConfig(),
		Introspect: DefaultIntrospectConfig(),
		Log:        DefaultLogConfig(),
	}
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Dispatch.Validate(); err != nil {
		return err
	}
	if err := c.Transport.Validate(); err != nil {
		return err
	}
	if err := c.Introspect.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return validateInstances(c.Instances)
}
