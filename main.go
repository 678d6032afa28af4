// spaza 是 Spaza Valley 的命令行入口
//
// 用法:
//
//	spaza run [--map <id>]   启动游戏
//	spaza maps               列出 game.yaml 中的地图
//	spaza check              校验配置和全部地图布局（不打开窗口）
//
// 全局参数:
//
//	--config <path>   游戏配置（默认 $SPAZA_CONFIG 或 data/game.yaml）
//	--assets <dir>    资源根目录（默认 $SPAZA_ASSETS 或 assets）
//	--verbose         输出调试日志（也可设置 SPAZA_VERBOSE=1）
//	--seed <value>    随机种子（0 表示按时间）
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// 环境变量
const (
	envConfig  = "SPAZA_CONFIG"
	envAssets  = "SPAZA_ASSETS"
	envVerbose = "SPAZA_VERBOSE"
)

var (
	flagConfig  string
	flagAssets  string
	flagVerbose bool
	flagSeed    int64
)

func main() {
	// .env 可选，不存在时直接使用进程环境变量
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spaza",
	Short: "Spaza Valley - a small top-down farming game",
	Long: `Spaza Valley is a top-down farming game: till soil, plant and water seeds,
chop trees, sell the harvest to the trader and sleep to start a new day.

Examples:
  spaza run
  spaza run --map map2 --seed 42
  spaza maps
  spaza check --config ./my-game.yaml`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.SetupLogger(verbose())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML (default $SPAZA_CONFIG or data/game.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Asset root directory (default $SPAZA_ASSETS or assets)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(checkCmd)
}

func verbose() bool {
	if flagVerbose {
		return true
	}
	v, err := strconv.ParseBool(os.Getenv(envVerbose))
	return err == nil && v
}

// configPath --config 优先，其次 $SPAZA_CONFIG；都为空时由 LoadGameConfig 查找默认位置
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return os.Getenv(envConfig)
}

func assetsDir() string {
	if flagAssets != "" {
		return flagAssets
	}
	if dir := os.Getenv(envAssets); dir != "" {
		return dir
	}
	return "assets"
}

func loadConfig() (*config.GameConfig, error) {
	cfg, err := config.LoadGameConfig(configPath())
	if err != nil {
		return nil, err
	}
	log.Debug("config loaded", "path", configPath(), "maps", len(cfg.Maps))
	return cfg, nil
}
