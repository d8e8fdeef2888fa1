package service

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/kafka"
	"salon/infras/otel"
	"salon/internal/domains/notification/model"
	"salon/shared/constant"

	"github.com/rs/zerolog/log"
)

type Publisher interface {
	AppointmentCreated(ctx context.Context, event model.AppointmentCreated) error
}

type publisherImpl struct {
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func NewPublisher(kafka kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		kafka: kafka,
		cfg:   cfg,
		otel:  otel,
	}
}

func (p *publisherImpl) AppointmentCreated(ctx context.Context, event model.AppointmentCreated) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".AppointmentCreated")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute("appointment.id", event.AppointmentID)

	err = p.kafka.SendMessages(ctx, p.cfg.Kafka.Topics.AppointmentCreated, kafka.Message{
		Key:     event.AppointmentID,
		Value:   event,
		Headers: map[string]string{model.HeaderEvent: model.EventAppointmentCreated},
	})
	if err != nil {
		log.Error().Err(err).Str("appointment_id", event.AppointmentID).Msg("failed to publish appointment created")

		return fmt.Errorf("failed to publish appointment created: %w", err)
	}

	return nil
}
