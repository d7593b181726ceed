package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/vadesa1/stans-events-web/internal/app"
	"github.com/vadesa1/stans-events-web/internal/config"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	container, err := app.NewContainer(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("wiring")
	}

	if err := app.Run(cfg, container); err != nil {
		logger.Fatal().Err(err).Msg("server")
	}
}
