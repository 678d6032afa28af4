package main

import (
	"fmt"
	"io"

	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/spf13/cobra"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List configured maps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		printMaps(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func printMaps(w io.Writer, cfg *config.GameConfig) {
	maxIDLen := 2 // "ID"
	for _, m := range cfg.Maps {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Fprintf(w, "  %-*s  %-*s  %s\n", maxIDLen, "ID", maxIDLen, "NEXT", "LAYOUT")
	for _, m := range cfg.Maps {
		marker := " "
		if m.ID == cfg.StartMap {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-*s  %-*s  %s\n", marker, maxIDLen, m.ID, maxIDLen, m.Next, m.Layout)
	}
}
