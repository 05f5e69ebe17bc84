package seed

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duckcreek/farmstore/config"
	"github.com/duckcreek/farmstore/database"
	seeddata "github.com/duckcreek/farmstore/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data into the database",
	RunE:  seedCommand,
}

func NewSeedCommand() *cobra.Command {
	return seedCmd
}

func seedCommand(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	return seeddata.Run(db)
}
