package service

//go:generate go run go.uber.org/mock/mockgen -source=./machine.go -destination=../mocks/machine_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"salon/infras/otel"
	availabilityModel "salon/internal/domains/availability/model"
	availabilityService "salon/internal/domains/availability/service"
	bookingModel "salon/internal/domains/booking/model"
	bookingService "salon/internal/domains/booking/service"
	catalogDto "salon/internal/domains/catalog/model/dto"
	catalogService "salon/internal/domains/catalog/service"
	"salon/internal/domains/conversation/model"
	"salon/internal/domains/conversation/model/dto"
	masterModel "salon/internal/domains/master/model"
	masterDto "salon/internal/domains/master/model/dto"
	masterService "salon/internal/domains/master/service"
	"salon/shared/clock"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/timezone"
	"slices"

	"github.com/rs/zerolog/log"
)

var (
	ErrEmptySelection   = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "select at least one service"}
	ErrPastDate         = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "date is in the past"}
	ErrUnknownMaster    = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "choose one of the offered masters"}
	ErrEventNotAllowed  = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "this action is not available at the current step"}
	ErrSessionClosed    = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "this booking is already finished"}
	ErrNoEligibleMaster = &failure.Failure{Code: http.StatusUnprocessableEntity, Reason: failure.ReasonNoEligibleMaster, Message: "no master offers every selected service"}
	ErrSlotTaken        = &failure.Failure{Code: http.StatusConflict, Reason: failure.ReasonSlotUnavailable, Message: "this time was just taken, please choose another"}
)

// Machine drives a booking session through its steps. It holds no state: every call takes
// the current session and returns the next one together with the choices to show.
// A rejected event returns the session unchanged with the current step's prompt.
type Machine interface {
	Start(ctx context.Context, conversationID, clientID string) (model.Session, dto.Prompt, error)
	Advance(ctx context.Context, session model.Session, event model.Event) (model.Session, dto.Prompt, error)
	Confirm(ctx context.Context, session model.Session) (model.Session, error)
	Render(ctx context.Context, session model.Session) (dto.Prompt, error)
}

type machineImpl struct {
	catalog    catalogService.Catalog
	matcher    masterService.Matcher
	calculator availabilityService.Calculator
	creator    bookingService.Creator
	otel       otel.Otel
}

func NewMachine(
	catalog catalogService.Catalog,
	matcher masterService.Matcher,
	calculator availabilityService.Calculator,
	creator bookingService.Creator,
	otel otel.Otel,
) Machine {
	return &machineImpl{
		catalog:    catalog,
		matcher:    matcher,
		calculator: calculator,
		creator:    creator,
		otel:       otel,
	}
}

func (m *machineImpl) Start(ctx context.Context, conversationID, clientID string) (model.Session, dto.Prompt, error) {
	session := model.NewSession(conversationID, clientID, timezone.Now())

	prompt, err := m.Render(ctx, session)

	return session, prompt, err
}

func (m *machineImpl) Advance(ctx context.Context, session model.Session, event model.Event) (res model.Session, prompt dto.Prompt, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Advance")
	defer scope.End()
	defer scope.TraceIfError(&err)

	next, err := m.transition(ctx, session.Clone(), event)
	if err != nil {
		if errors.Is(err, bookingService.ErrSlotUnavailable) {
			// the ledger rejected the slot at commit, next is already back at time selection
			prompt, renderErr := m.Render(ctx, next)
			if renderErr != nil {
				return next, prompt, renderErr
			}

			return next, prompt, ErrSlotTaken
		}

		prompt, renderErr := m.Render(ctx, session)
		if renderErr != nil {
			log.Error().Err(renderErr).Str("conversation_id", session.ID).Msg("failed to render prompt")
		}

		return session, prompt, err
	}

	next.UpdatedAt = timezone.Now()

	log.Debug().Str("conversation_id", next.ID).Str("event", string(event.Type)).
		Str("from", string(session.State)).Str("to", string(next.State)).Msg("booking session advanced")

	prompt, err = m.Render(ctx, next)

	return next, prompt, err
}

func (m *machineImpl) transition(ctx context.Context, session model.Session, event model.Event) (model.Session, error) {
	if session.Terminal() {
		return session, ErrSessionClosed
	}

	switch event.Type {
	case model.EventCancel:
		return cancelled(session), nil
	case model.EventBack:
		return back(session), nil
	}

	switch session.State {
	case model.StateServiceSelection:
		return m.onServiceSelection(ctx, session, event)
	case model.StateDateSelection:
		return onDateSelection(session, event)
	case model.StateMasterChoice:
		return m.onMasterChoice(ctx, session, event)
	case model.StateMasterSelection:
		return onMasterSelection(session, event)
	case model.StateTimeSelection:
		return m.onTimeSelection(ctx, session, event)
	case model.StateConfirmation:
		if event.Type != model.EventConfirm {
			return session, ErrEventNotAllowed
		}

		return m.Confirm(ctx, session)
	default:
		return session, ErrEventNotAllowed
	}
}

func (m *machineImpl) onServiceSelection(ctx context.Context, session model.Session, event model.Event) (model.Session, error) {
	switch event.Type {
	case model.EventOpenCategory:
		session.CategoryID = event.CategoryID

		return session, nil
	case model.EventToggleService:
		if event.ServiceID == constant.Empty {
			return session, ErrEventNotAllowed
		}

		if !session.Selected(event.ServiceID) {
			if _, err := m.catalog.GetService(ctx, event.ServiceID); err != nil {
				return session, err //nolint:wrapcheck
			}
		}

		session.Toggle(event.ServiceID)

		return session, nil
	case model.EventFinishServices:
		if len(session.ServiceIDs) == 0 {
			return session, ErrEmptySelection
		}

		session.State = model.StateDateSelection

		return session, nil
	default:
		return session, ErrEventNotAllowed
	}
}

func onDateSelection(session model.Session, event model.Event) (model.Session, error) {
	if event.Type != model.EventSelectDate || event.Date.IsZero() {
		return session, ErrEventNotAllowed
	}

	if timezone.IsPastDate(event.Date) {
		return session, ErrPastDate
	}

	session.Date = event.Date
	session.State = model.StateMasterChoice

	return session, nil
}

func (m *machineImpl) onMasterChoice(ctx context.Context, session model.Session, event model.Event) (model.Session, error) {
	var mode model.Mode

	switch event.Type {
	case model.EventChooseSpecific:
		mode = model.ModeSpecific
	case model.EventChooseAny:
		mode = model.ModeAny
	default:
		return session, ErrEventNotAllowed
	}

	candidates, err := m.matcher.MastersFor(ctx, session.ServiceIDs)
	if err != nil {
		return session, err //nolint:wrapcheck
	}

	if len(candidates) == 0 {
		return session, ErrNoEligibleMaster
	}

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.MasterID
	}

	session.Mode = mode
	session.CandidateIDs = ids
	session.StartTime = nil

	if mode == model.ModeAny {
		session.MasterID = constant.Empty
		session.State = model.StateTimeSelection

		return session, nil
	}

	if !slices.Contains(ids, session.MasterID) {
		session.MasterID = constant.Empty
	}

	session.State = model.StateMasterSelection

	return session, nil
}

func onMasterSelection(session model.Session, event model.Event) (model.Session, error) {
	if event.Type != model.EventSelectMaster {
		return session, ErrEventNotAllowed
	}

	if !slices.Contains(session.CandidateIDs, event.MasterID) {
		return session, ErrUnknownMaster
	}

	session.MasterID = event.MasterID
	session.State = model.StateTimeSelection

	return session, nil
}

// onTimeSelection recomputes availability for the chosen time so a slot listed earlier but
// taken since is refused here rather than at commit.
func (m *machineImpl) onTimeSelection(ctx context.Context, session model.Session, event model.Event) (model.Session, error) {
	if event.Type != model.EventSelectTime {
		return session, ErrEventNotAllowed
	}

	bundle, err := m.catalog.GetServices(ctx, session.ServiceIDs)
	if err != nil {
		return session, err //nolint:wrapcheck
	}

	if session.Mode == model.ModeAny {
		slots, err := m.calculator.SlotsForMasters(ctx, session.CandidateIDs, session.Date, bundle.TotalDuration)
		if err != nil {
			return session, err //nolint:wrapcheck
		}

		idx := slices.IndexFunc(slots, func(s availabilityModel.Slot) bool { return s.Start == event.Time })
		if idx < 0 {
			return session, ErrSlotTaken
		}

		session.MasterID = slots[idx].MasterIDs[0]
	} else {
		free, err := m.calculator.IsFree(ctx, session.MasterID, session.Date, event.Time, bundle.TotalDuration)
		if err != nil {
			return session, err //nolint:wrapcheck
		}

		if !free {
			return session, ErrSlotTaken
		}
	}

	start := event.Time
	session.StartTime = &start
	session.State = model.StateConfirmation

	return session, nil
}

// Confirm books the session's selection. When the slot was taken in the meantime the
// returned session is back at time selection with the stale choice cleared.
func (m *machineImpl) Confirm(ctx context.Context, session model.Session) (res model.Session, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if session.State != model.StateConfirmation || session.StartTime == nil || session.MasterID == constant.Empty {
		return session, ErrEventNotAllowed
	}

	result, err := m.creator.Create(ctx, bookingModel.Command{
		ClientID:   session.ClientID,
		MasterID:   session.MasterID,
		Date:       session.Date,
		Start:      *session.StartTime,
		ServiceIDs: session.ServiceIDs,
	})
	if err != nil {
		if errors.Is(err, bookingService.ErrSlotUnavailable) {
			log.Warn().Str("conversation_id", session.ID).Str("master_id", session.MasterID).Msg("slot taken at confirmation")

			session.ClearTime()
			session.State = model.StateTimeSelection

			return session, err //nolint:wrapcheck
		}

		return session, err //nolint:wrapcheck
	}

	session.AppointmentID = result.AppointmentID
	session.MasterID = result.AssignedMasterID
	session.State = model.StateCommitted

	return session, nil
}

func cancelled(session model.Session) model.Session {
	return model.Session{
		ID:         session.ID,
		ClientID:   session.ClientID,
		State:      model.StateCancelled,
		ServiceIDs: []string{},
		UpdatedAt:  session.UpdatedAt,
	}
}

// back returns to the preceding step and keeps what was selected before it.
func back(session model.Session) model.Session {
	switch session.State {
	case model.StateServiceSelection:
		session.CategoryID = constant.Empty
	case model.StateDateSelection:
		session.State = model.StateServiceSelection
	case model.StateMasterChoice:
		session.State = model.StateDateSelection
	case model.StateMasterSelection:
		session.State = model.StateMasterChoice
	case model.StateTimeSelection:
		session.ClearTime()

		session.State = model.StateMasterChoice
		if session.Mode == model.ModeSpecific {
			session.State = model.StateMasterSelection
		}
	case model.StateConfirmation:
		session.ClearTime()
		session.State = model.StateTimeSelection
	}

	return session
}

// Render lists the choices for the session's current step.
func (m *machineImpl) Render(ctx context.Context, session model.Session) (res dto.Prompt, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Render")
	defer scope.End()
	defer scope.TraceIfError(&err)

	res = dto.Prompt{State: session.State}

	switch session.State {
	case model.StateServiceSelection:
		err = m.renderServices(ctx, session, &res)
	case model.StateDateSelection:
		res.MinDate = timezone.Today().Format(clock.DateLayout)
	case model.StateMasterChoice:
		res.Modes = []model.Mode{model.ModeSpecific, model.ModeAny}
	case model.StateMasterSelection:
		err = m.renderMasters(ctx, session, &res)
	case model.StateTimeSelection:
		err = m.renderSlots(ctx, session, &res)
	case model.StateConfirmation:
		err = m.renderSummary(ctx, session, &res)
	case model.StateCommitted:
		res.AppointmentID = session.AppointmentID
	case model.StateCancelled:
	}

	if err != nil {
		log.Error().Err(err).Str("conversation_id", session.ID).Str("state", string(session.State)).Msg("failed to render prompt")

		return res, fmt.Errorf("failed to render prompt: %w", err)
	}

	return res, nil
}

func (m *machineImpl) renderServices(ctx context.Context, session model.Session, res *dto.Prompt) error {
	categories, err := m.catalog.ListCategories(ctx, session.CategoryID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	res.Categories = categories.Categories

	if session.CategoryID == constant.Empty {
		return nil
	}

	services, err := m.catalog.ListServices(ctx, session.CategoryID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	res.Services = make([]dto.ServiceOption, len(services.Services))
	for i, svc := range services.Services {
		res.Services[i] = dto.ServiceOption{ServiceResponse: svc, Selected: session.Selected(svc.ID)}
	}

	return nil
}

func (m *machineImpl) renderMasters(ctx context.Context, session model.Session, res *dto.Prompt) error {
	offerings, err := m.matcher.MastersFor(ctx, session.ServiceIDs)
	if err != nil {
		return err //nolint:wrapcheck
	}

	offerings = slices.DeleteFunc(offerings, func(o masterModel.Offering) bool {
		return !slices.Contains(session.CandidateIDs, o.MasterID)
	})

	masters := masterDto.GetMastersResponse{}
	masters.FromOfferings(offerings)
	res.Masters = masters.Masters

	return nil
}

func (m *machineImpl) renderSlots(ctx context.Context, session model.Session, res *dto.Prompt) error {
	bundle, err := m.catalog.GetServices(ctx, session.ServiceIDs)
	if err != nil {
		return err //nolint:wrapcheck
	}

	res.Slots = []dto.SlotOption{}

	if session.Mode == model.ModeAny {
		slots, err := m.calculator.SlotsForMasters(ctx, session.CandidateIDs, session.Date, bundle.TotalDuration)
		if err != nil {
			return err //nolint:wrapcheck
		}

		for _, slot := range slots {
			res.Slots = append(res.Slots, dto.SlotOption{Time: slot.Start, MasterIDs: slot.MasterIDs})
		}

		return nil
	}

	starts, err := m.calculator.FreeSlots(ctx, session.MasterID, session.Date, bundle.TotalDuration)
	if err != nil {
		return err //nolint:wrapcheck
	}

	for _, start := range starts {
		res.Slots = append(res.Slots, dto.SlotOption{Time: start, MasterIDs: []string{session.MasterID}})
	}

	return nil
}

func (m *machineImpl) renderSummary(ctx context.Context, session model.Session, res *dto.Prompt) error {
	bundle, err := m.catalog.GetServices(ctx, session.ServiceIDs)
	if err != nil {
		return err //nolint:wrapcheck
	}

	master, err := m.matcher.Get(ctx, session.MasterID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	services := catalogDto.BundleResponse{}
	services.FromModel(bundle)

	res.Summary = &dto.Summary{
		Date: session.Date.Format(clock.DateLayout),
		Master: masterDto.MasterResponse{
			ID:       master.ID,
			Name:     master.FullName(),
			PhotoURL: master.PhotoURL,
		},
		Services:      services.Services,
		TotalDuration: bundle.TotalDuration,
		TotalPrice:    bundle.TotalPrice,
	}

	if session.StartTime != nil {
		res.Summary.Time = *session.StartTime
	}

	return nil
}
