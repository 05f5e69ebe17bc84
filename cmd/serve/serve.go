package serve

import (
	"context"
	"fmt"
	"log"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/duckcreek/farmstore/app/server"
	"github.com/duckcreek/farmstore/config"
	"github.com/duckcreek/farmstore/database"
	"github.com/duckcreek/farmstore/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront API server",
	RunE:  serveCommand,
}

const addrFlag = "addr"

var serveFlags = map[string]cobraflags.Flag{
	addrFlag: &cobraflags.StringFlag{
		Name:  addrFlag,
		Value: "",
		Usage: "Listen address (overrides ADDR)",
	},
}

func NewServeCommand() *cobra.Command {
	cobraflags.RegisterMap(serveCmd, serveFlags)
	return serveCmd
}

func serveCommand(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if addr := serveFlags[addrFlag].GetString(); addr != "" {
		cfg.Addr = addr
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}

	var sessions session.Store
	if cfg.RedisURL != "" {
		sessions, err = session.NewRedisStore(context.Background(), cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			return err
		}
		log.Println("using redis session store")
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
		log.Println("using in-memory session store")
	}
	defer sessions.Close()

	return server.Run(cfg.Addr, server.New(cfg, db, sessions))
}
