package main

import (
	"fmt"
	"io"

	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/scenes"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config and every map layout",
	Long: `Load game.yaml and every map layout it references, then build each level
without opening a window. Reports the first error per map.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return checkMaps(cmd.OutOrStdout(), cfg)
	},
}

// checkMaps 逐张构建关卡（不加载图片），返回遇到的第一个错误
func checkMaps(w io.Writer, cfg *config.GameConfig) error {
	var firstErr error
	for _, m := range cfg.Maps {
		level, err := scenes.LoadLevel(m.ID, scenes.LevelOptions{Config: cfg})
		if err == nil {
			err = level.AttachPlayer(nil)
		}
		if err != nil {
			fmt.Fprintf(w, "FAIL  %s: %v\n", m.ID, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("map %s: %w", m.ID, err)
			}
			continue
		}
		fmt.Fprintf(w, "ok    %s (%d farmable cells)\n", m.ID, len(level.Soil().Grid().Coords()))
	}
	return firstErr
}
