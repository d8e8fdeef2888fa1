package main

import (
	"os"
	"salon/config"
	"salon/helper"
	"salon/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	actions := map[string]func(*config.Config) error{
		"up":      helper.Up,
		"down":    helper.Down,
		"drop":    helper.Drop,
		"step-up": helper.StepUp,
		"version": helper.Version,
	}

	action, ok := actions[os.Args[1]]
	if !ok {
		log.Fatal().Str("direction", os.Args[1]).Msg("Invalid direction. Use 'up', 'down', 'drop', 'step-up' or 'version'")
	}

	if err := action(cfg); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
