package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"salon/infras/otel"
	bookingService "salon/internal/domains/booking/service"
	clientModel "salon/internal/domains/client/model"
	clientRepo "salon/internal/domains/client/repository"
	"salon/internal/domains/conversation/model"
	"salon/internal/domains/conversation/model/dto"
	"salon/internal/domains/conversation/repository"
	"salon/shared"
	"salon/shared/constant"
	"salon/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Conversation keeps booking sessions in the session store and runs events through the Machine.
type Conversation interface {
	Start(ctx context.Context, req dto.StartRequest) (dto.SessionResponse, error)
	Get(ctx context.Context, id string) (dto.SessionResponse, error)
	Handle(ctx context.Context, id string, event model.Event) (dto.SessionResponse, error)
	Discard(ctx context.Context, id string) error
}

type serviceImpl struct {
	machine Machine
	store   repository.SessionStore
	clients clientRepo.Client
	otel    otel.Otel
}

func New(machine Machine, store repository.SessionStore, clients clientRepo.Client, otel otel.Otel) Conversation {
	return &serviceImpl{
		machine: machine,
		store:   store,
		clients: clients,
		otel:    otel,
	}
}

func (s *serviceImpl) Start(ctx context.Context, req dto.StartRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StartConversation")
	defer scope.End()
	defer scope.TraceIfError(&err)

	exist, err := s.clients.Exist(ctx, shared.FilterByID(req.ClientID, clientModel.FieldID, clientModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if client exists")

		return res, fmt.Errorf("failed to check if client exists: %w", err)
	}

	if !exist {
		return res, bookingService.ErrClientNotFound
	}

	id := req.ConversationID
	if id == constant.Empty {
		id = uuid.NewString()
	}

	session, prompt, err := s.machine.Start(ctx, id, req.ClientID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.store.Save(ctx, session); err != nil {
		log.Error().Err(err).Str("conversation_id", id).Msg("failed to save session")

		return res, fmt.Errorf("failed to save session: %w", err)
	}

	return dto.SessionResponse{Session: session, Prompt: prompt}, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetConversation")
	defer scope.End()
	defer scope.TraceIfError(&err)

	session, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	prompt, err := s.machine.Render(ctx, session)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	return dto.SessionResponse{Session: session, Prompt: prompt}, nil
}

// Handle advances the stored session. The session returned by the machine is stored even when
// the event failed, so a slot lost at confirmation leaves the session at time selection.
// Finished sessions are removed from the store.
func (s *serviceImpl) Handle(ctx context.Context, id string, event model.Event) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleConversation")
	defer scope.End()
	defer scope.TraceIfError(&err)

	session, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	next, prompt, advanceErr := s.machine.Advance(ctx, session, event)
	res = dto.SessionResponse{Session: next, Prompt: prompt}

	if next.Terminal() {
		err = s.store.Delete(ctx, id)
	} else {
		err = s.store.Save(ctx, next)
	}

	if err != nil {
		log.Error().Err(err).Str("conversation_id", id).Msg("failed to store session")

		return res, fmt.Errorf("failed to store session: %w", err)
	}

	return res, advanceErr
}

// Discard drops the session without touching the ledger.
func (s *serviceImpl) Discard(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DiscardConversation")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if _, err = s.load(ctx, id); err != nil {
		return err
	}

	if err = s.store.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("conversation_id", id).Msg("failed to delete session")

		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return session, failure.NotFound(model.EntityName)
		}

		log.Error().Err(err).Str("conversation_id", id).Msg("failed to get session")

		return session, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}
