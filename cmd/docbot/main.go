package main

import (
	"log"

	"github.com/joho/godotenv"

	corecmd "github.com/m3rciful/docbot/core/cmd"
	coreconfig "github.com/m3rciful/docbot/core/config"
	"github.com/m3rciful/docbot/internal/botapp"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return coreconfig.Load(path)
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			return botapp.NewApp(carrier.CoreConfig())
		},
	})
	if err != nil {
		log.Fatalf("docbot: %v", err)
	}
}
