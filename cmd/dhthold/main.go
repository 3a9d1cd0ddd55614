// Package main 提供 dhthold 命令行入口
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dep2p/go-dhthold"
	"github.com/dep2p/go-dhthold/config"
	"github.com/dep2p/go-dhthold/internal/app"
	"github.com/dep2p/go-dhthold/pkg/lib/log"
)

var logger = log.Logger("dhthold/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
//   命令行参数：运行时覆盖 / 快速测试
//   配置文件（JSON 或 TOML）：实例列表与长期配置
//
// 配置优先级（从高到低）：命令行参数 > DHTHOLD_* 环境变量 > 配置文件 > 默认值
//
// ═══════════════════════════════════════════════════════════════════════════
var (
	configFile = flag.String("config", "", "配置文件路径（.toml 或 .json）")
	dataDir    = flag.String("data-dir", "", "数据目录（默认: ./data）")
	introspect = flag.String("introspect", "", "启用调试服务并监听该地址，例如 127.0.0.1:6060")
	hubURL     = flag.String("hub", "", "为默认实例指定 Hub 地址（配置文件未定义实例时生效）")

	showVersion = flag.Bool("version", false, "显示版本信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		printVersion()
		return nil
	}

	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	fmt.Printf("📦 %s\n", dhthold.VersionInfo())

	a, err := app.RunApp(context.Background(), app.NewBootstrap(cfg))
	if err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	logger.Info("启动 dhthold", "version", dhthold.Version, "commit", dhthold.GitCommit)

	rt := a.Runtime()
	for _, id := range rt.Conductor.RunningInstances() {
		fmt.Printf("  实例: %s\n", id)
	}
	if rt.Introspect != nil {
		fmt.Printf("  调试服务: http://%s/debug/instances\n", rt.Introspect.Addr())
	}
	fmt.Println("节点已启动，按 Ctrl+C 退出")

	return a.Wait()
}

// buildConfig 加载配置文件并应用环境变量与命令行覆盖
func buildConfig() (*config.Config, error) {
	var cfg *config.Config
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.NewConfig()
		if err := config.ApplyEnv(cfg); err != nil {
			return nil, err
		}
	}

	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}
	if *introspect != "" {
		cfg.Introspect.Enable = true
		cfg.Introspect.Addr = *introspect
	}
	if len(cfg.Instances) == 0 {
		cfg.Instances = []config.InstanceConfig{{ID: "default", HubURL: *hubURL}}
	}

	return config.ValidateAndFix(cfg)
}

func printVersion() {
	fmt.Printf("dhthold %s\n", dhthold.Version)
	if dhthold.GitCommit != "" {
		fmt.Printf("  commit: %s\n", dhthold.GitCommit)
	}
	if dhthold.BuildDate != "" {
		fmt.Printf("  built:  %s\n", dhthold.BuildDate)
	}
}
