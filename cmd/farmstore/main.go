package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/duckcreek/farmstore/cmd/seed"
	"github.com/duckcreek/farmstore/cmd/serve"
)

var rootCmd = &cobra.Command{
	Use:   "farmstore",
	Short: "Duck Creek Farm storefront and admin back-office",
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	rootCmd.AddCommand(serve.NewServeCommand())
	rootCmd.AddCommand(seed.NewSeedCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
