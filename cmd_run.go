package main

import (
	"time"

	"github.com/gonewx/spaza-valley/pkg/app"
	"github.com/spf13/cobra"
)

var flagMap string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the game",
	Long: `Open the game window and start on the configured start map.

Controls:
  Arrows/WASD  - Move
  Shift        - Sprint (uses stamina)
  Space        - Use tool / confirm in shop
  Q            - Switch tool
  Ctrl         - Plant seed
  E            - Switch seed
  Enter        - Sleep in bed / talk to trader
  Esc          - Close shop`,
	Args: cobra.NoArgs,
	RunE: runGame,
}

func init() {
	runCmd.Flags().StringVar(&flagMap, "map", "", "Start map id (default: startMap from config)")
}

func runGame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g, err := app.New(app.Options{
		Config:    cfg,
		AssetsDir: assetsDir(),
		StartMap:  flagMap,
		Seed:      seed,
		Audio:     true,
	})
	if err != nil {
		return err
	}
	return app.Run(g)
}
