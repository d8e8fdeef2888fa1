package main

import (
	"salon/config"
	"salon/di"
	"salon/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	worker, cleanup, err := di.InitializeWorker()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize worker")
	}
	defer cleanup()

	worker.Run()
}
