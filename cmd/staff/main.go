package main

import (
	"context"
	"os"
	"salon/config"
	"salon/infras/jwt"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/staff/model"
	"salon/internal/domains/staff/model/dto"
	"salon/internal/domains/staff/repository"
	"salon/internal/domains/staff/service"
	"salon/shared/logger"
	"salon/shared/validator"

	"github.com/rs/zerolog/log"
)

const argLength = 4

// Creates the first admin account: staff <email> <password> <name>.
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	if len(os.Args) < argLength {
		log.Fatal().Msg("Usage: staff <email> <password> <name>")
	}

	req := dto.RegisterRequest{
		Email:    os.Args[1],
		Password: os.Args[2],
		Name:     os.Args[3],
		Role:     model.RoleAdmin,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		log.Fatal().Err(err).Msg("Invalid staff account")
	}

	tracer, flush := otel.New(cfg)
	defer flush()
	auth := service.New(repository.New(postgres.New(cfg), tracer), cfg, tracer, jwt.New(cfg))

	res, err := auth.Register(context.Background(), req)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create staff account")
	}

	log.Info().Str("id", res.ID).Str("email", res.Email).Msg("Admin account created")
}
