package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"salon/infras/otel/mocks"
	availabilityMocks "salon/internal/domains/availability/mocks"
	availabilityModel "salon/internal/domains/availability/model"
	bookingMocks "salon/internal/domains/booking/mocks"
	bookingModel "salon/internal/domains/booking/model"
	bookingService "salon/internal/domains/booking/service"
	catalogMocks "salon/internal/domains/catalog/mocks"
	catalogModel "salon/internal/domains/catalog/model"
	catalogDto "salon/internal/domains/catalog/model/dto"
	catalogService "salon/internal/domains/catalog/service"
	"salon/internal/domains/conversation/model"
	"salon/internal/domains/conversation/service"
	masterMocks "salon/internal/domains/master/mocks"
	masterModel "salon/internal/domains/master/model"
	"salon/shared/clock"
	"salon/shared/timezone"
)

var (
	cut   = catalogModel.Service{ID: "cut", CategoryID: "hair", Title: "Haircut", DurationMinutes: 30, Price: decimal.NewFromInt(20), Active: true}
	color = catalogModel.Service{ID: "color", CategoryID: "hair", Title: "Coloring", DurationMinutes: 45, Price: decimal.NewFromInt(40), Active: true}

	anna = masterModel.Offering{MasterID: "m-1", FirstName: "Anna", IsPrimary: true}
	olga = masterModel.Offering{MasterID: "m-2", FirstName: "Olga"}
)

type machineFixture struct {
	catalog    *catalogMocks.MockCatalog
	matcher    *masterMocks.MockMatcher
	calculator *availabilityMocks.MockCalculator
	creator    *bookingMocks.MockCreator
}

func newMachine(t *testing.T) (service.Machine, *machineFixture) {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &machineFixture{
		catalog:    catalogMocks.NewMockCatalog(ctrl),
		matcher:    masterMocks.NewMockMatcher(ctrl),
		calculator: availabilityMocks.NewMockCalculator(ctrl),
		creator:    bookingMocks.NewMockCreator(ctrl),
	}

	return service.NewMachine(f.catalog, f.matcher, f.calculator, f.creator, mocks.NewOtel()), f
}

// defaults declares permissive lookups; overrides must be declared before calling it.
func (f *machineFixture) defaults() {
	f.catalog.EXPECT().ListCategories(gomock.Any(), gomock.Any()).
		Return(catalogDto.GetCategoriesResponse{Categories: []catalogDto.CategoryResponse{{ID: "hair", Title: "Hair"}}}, nil).AnyTimes()
	f.catalog.EXPECT().ListServices(gomock.Any(), "hair").
		DoAndReturn(func(context.Context, string) (catalogDto.GetServicesResponse, error) {
			res := catalogDto.GetServicesResponse{}
			res.FromModels([]catalogModel.Service{cut, color})

			return res, nil
		}).AnyTimes()
	f.catalog.EXPECT().GetService(gomock.Any(), "cut").Return(cut, nil).AnyTimes()
	f.catalog.EXPECT().GetService(gomock.Any(), "color").Return(color, nil).AnyTimes()
	f.catalog.EXPECT().GetServices(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ids []string) (catalogModel.Bundle, error) {
			byID := map[string]catalogModel.Service{cut.ID: cut, color.ID: color}

			services := make([]catalogModel.Service, len(ids))
			for i, id := range ids {
				services[i] = byID[id]
			}

			return catalogModel.NewBundle(services), nil
		}).AnyTimes()
	f.matcher.EXPECT().MastersFor(gomock.Any(), gomock.Any()).Return([]masterModel.Offering{anna, olga}, nil).AnyTimes()
	f.matcher.EXPECT().Get(gomock.Any(), "m-1").Return(masterModel.Master{ID: "m-1", FirstName: "Anna", PhotoURL: "anna.jpg", Active: true}, nil).AnyTimes()
	f.matcher.EXPECT().Get(gomock.Any(), "m-2").Return(masterModel.Master{ID: "m-2", FirstName: "Olga", Active: true}, nil).AnyTimes()
	f.calculator.EXPECT().FreeSlots(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]clock.Clock{clock.New(9, 0), clock.New(9, 15)}, nil).AnyTimes()
	f.calculator.EXPECT().SlotsForMasters(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]availabilityModel.Slot{
			{Start: clock.New(9, 0), MasterIDs: []string{"m-1", "m-2"}},
			{Start: clock.New(10, 0), MasterIDs: []string{"m-2"}},
		}, nil).AnyTimes()
	f.calculator.EXPECT().IsFree(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()
}

func nextWeek() time.Time {
	return timezone.Today().AddDate(0, 0, 7)
}

// sessionAt builds a session that already went through the steps before state.
func sessionAt(state model.State, mode model.Mode) model.Session {
	session := model.NewSession("c-1", "client-1", timezone.Now())
	session.ServiceIDs = []string{"cut", "color"}
	session.State = state

	if state == model.StateServiceSelection || state == model.StateDateSelection {
		return session
	}

	session.Date = nextWeek()

	if state == model.StateMasterChoice {
		return session
	}

	session.Mode = mode
	session.CandidateIDs = []string{"m-1", "m-2"}

	if mode == model.ModeSpecific && state != model.StateMasterSelection {
		session.MasterID = "m-1"
	}

	if state == model.StateConfirmation {
		start := clock.New(10, 0)
		session.StartTime = &start
		session.MasterID = "m-2"
	}

	return session
}

func TestMachine_Start(t *testing.T) {
	machine, f := newMachine(t)
	f.defaults()

	session, prompt, err := machine.Start(context.Background(), "c-1", "client-1")

	require.NoError(t, err)
	assert.Equal(t, model.StateServiceSelection, session.State)
	assert.Empty(t, session.ServiceIDs)
	assert.Equal(t, model.StateServiceSelection, prompt.State)
	assert.Len(t, prompt.Categories, 1)
	assert.Empty(t, prompt.Services)
}

func TestMachine_ToggleTwiceBlocksAdvancing(t *testing.T) {
	machine, f := newMachine(t)
	f.defaults()

	ctx := context.Background()
	session, _, err := machine.Start(ctx, "c-1", "client-1")
	require.NoError(t, err)

	session, prompt, err := machine.Advance(ctx, session, model.Event{Type: model.EventOpenCategory, CategoryID: "hair"})
	require.NoError(t, err)
	assert.Len(t, prompt.Services, 2)

	session, prompt, err = machine.Advance(ctx, session, model.Event{Type: model.EventToggleService, ServiceID: "cut"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cut"}, session.ServiceIDs)
	assert.True(t, prompt.Services[0].Selected)
	assert.False(t, prompt.Services[1].Selected)

	session, _, err = machine.Advance(ctx, session, model.Event{Type: model.EventToggleService, ServiceID: "cut"})
	require.NoError(t, err)
	assert.Empty(t, session.ServiceIDs)

	next, prompt, err := machine.Advance(ctx, session, model.Event{Type: model.EventFinishServices})
	assert.ErrorIs(t, err, service.ErrEmptySelection)
	assert.Equal(t, session, next)
	assert.Equal(t, model.StateServiceSelection, prompt.State)
}

func TestMachine_Advance(t *testing.T) {
	tests := []struct {
		name      string
		session   model.Session
		event     model.Event
		setupMock func(f *machineFixture)
		wantErr   error
		check     func(t *testing.T, before, after model.Session)
	}{
		{
			name:    "inactive service is refused",
			session: model.NewSession("c-1", "client-1", timezone.Now()),
			event:   model.Event{Type: model.EventToggleService, ServiceID: "perm"},
			setupMock: func(f *machineFixture) {
				f.catalog.EXPECT().GetService(gomock.Any(), "perm").Return(catalogModel.Service{ID: "perm"}, catalogService.ErrServiceInactive)
			},
			wantErr: catalogService.ErrServiceInactive,
		},
		{
			name:    "finishing services moves to date selection",
			session: sessionAt(model.StateServiceSelection, ""),
			event:   model.Event{Type: model.EventFinishServices},
			check: func(t *testing.T, _, after model.Session) {
				assert.Equal(t, model.StateDateSelection, after.State)
			},
		},
		{
			name:    "past date is refused",
			session: sessionAt(model.StateDateSelection, ""),
			event:   model.Event{Type: model.EventSelectDate, Date: timezone.Today().AddDate(0, 0, -1)},
			wantErr: service.ErrPastDate,
		},
		{
			name:    "today is accepted",
			session: sessionAt(model.StateDateSelection, ""),
			event:   model.Event{Type: model.EventSelectDate, Date: timezone.Today()},
			check: func(t *testing.T, _, after model.Session) {
				assert.Equal(t, model.StateMasterChoice, after.State)
				assert.Equal(t, timezone.Today(), after.Date)
			},
		},
		{
			name:    "specific with no eligible master stays",
			session: sessionAt(model.StateMasterChoice, ""),
			event:   model.Event{Type: model.EventChooseSpecific},
			setupMock: func(f *machineFixture) {
				f.matcher.EXPECT().MastersFor(gomock.Any(), []string{"cut", "color"}).Return([]masterModel.Offering{}, nil)
			},
			wantErr: service.ErrNoEligibleMaster,
		},
		{
			name:    "any with no eligible master stays",
			session: sessionAt(model.StateMasterChoice, ""),
			event:   model.Event{Type: model.EventChooseAny},
			setupMock: func(f *machineFixture) {
				f.matcher.EXPECT().MastersFor(gomock.Any(), []string{"cut", "color"}).Return([]masterModel.Offering{}, nil)
			},
			wantErr: service.ErrNoEligibleMaster,
		},
		{
			name:    "specific lists matched masters",
			session: sessionAt(model.StateMasterChoice, ""),
			event:   model.Event{Type: model.EventChooseSpecific},
			check: func(t *testing.T, _, after model.Session) {
				assert.Equal(t, model.StateMasterSelection, after.State)
				assert.Equal(t, model.ModeSpecific, after.Mode)
				assert.Equal(t, []string{"m-1", "m-2"}, after.CandidateIDs)
				assert.Empty(t, after.MasterID)
			},
		},
		{
			name:    "any skips master selection unresolved",
			session: sessionAt(model.StateMasterChoice, ""),
			event:   model.Event{Type: model.EventChooseAny},
			check: func(t *testing.T, _, after model.Session) {
				assert.Equal(t, model.StateTimeSelection, after.State)
				assert.Equal(t, model.ModeAny, after.Mode)
				assert.Empty(t, after.MasterID)
			},
		},
		{
			name:    "master outside the candidates is refused",
			session: sessionAt(model.StateMasterSelection, model.ModeSpecific),
			event:   model.Event{Type: model.EventSelectMaster, MasterID: "m-9"},
			wantErr: service.ErrUnknownMaster,
		},
		{
			name:    "master selection moves to time selection",
			session: sessionAt(model.StateMasterSelection, model.ModeSpecific),
			event:   model.Event{Type: model.EventSelectMaster, MasterID: "m-2"},
			check: func(t *testing.T, _, after model.Session) {
				assert.Equal(t, model.StateTimeSelection, after.State)
				assert.Equal(t, "m-2", after.MasterID)
			},
		},
		{
			name:    "stale slot of a specific master is refused",
			session: sessionAt(model.StateTimeSelection, model.ModeSpecific),
			event:   model.Event{Type: model.EventSelectTime, Time: clock.New(9, 15)},
			setupMock: func(f *machineFixture) {
				f.calculator.EXPECT().IsFree(gomock.Any(), "m-1", gomock.Any(), clock.New(9, 15), 75).Return(false, nil)
			},
			wantErr: service.ErrSlotTaken,
		},
		{
			name:    "free slot of a specific master",
			session: sessionAt(model.StateTimeSelection, model.ModeSpecific),
			event:   model.Event{Type: model.EventSelectTime, Time: clock.New(9, 15)},
			check: func(t *testing.T, _, after model.Session) {
				assert.Equal(t, model.StateConfirmation, after.State)
				assert.Equal(t, "m-1", after.MasterID)
				assert.Equal(t, "09:15", after.StartTime.String())
			},
		},
		{
			name:    "any-mode binds the only master offering the slot",
			session: sessionAt(model.StateTimeSelection, model.ModeAny),
			event:   model.Event{Type: model.EventSelectTime, Time: clock.New(10, 0)},
			check: func(t *testing.T, _, after model.Session) {
				assert.Equal(t, model.StateConfirmation, after.State)
				assert.Equal(t, "m-2", after.MasterID)
				assert.Equal(t, "10:00", after.StartTime.String())
			},
		},
		{
			name:    "any-mode binds the first candidate for a shared slot",
			session: sessionAt(model.StateTimeSelection, model.ModeAny),
			event:   model.Event{Type: model.EventSelectTime, Time: clock.New(9, 0)},
			check: func(t *testing.T, _, after model.Session) {
				assert.Equal(t, "m-1", after.MasterID)
			},
		},
		{
			name:    "any-mode slot gone since listing",
			session: sessionAt(model.StateTimeSelection, model.ModeAny),
			event:   model.Event{Type: model.EventSelectTime, Time: clock.New(11, 0)},
			wantErr: service.ErrSlotTaken,
		},
		{
			name:    "back from specific time selection keeps the master",
			session: sessionAt(model.StateTimeSelection, model.ModeSpecific),
			event:   model.Event{Type: model.EventBack},
			check: func(t *testing.T, before, after model.Session) {
				assert.Equal(t, model.StateMasterSelection, after.State)
				assert.Equal(t, before.Date, after.Date)
				assert.Equal(t, before.ServiceIDs, after.ServiceIDs)
				assert.Equal(t, "m-1", after.MasterID)
			},
		},
		{
			name:    "back from any-mode time selection",
			session: sessionAt(model.StateTimeSelection, model.ModeAny),
			event:   model.Event{Type: model.EventBack},
			check: func(t *testing.T, before, after model.Session) {
				assert.Equal(t, model.StateMasterChoice, after.State)
				assert.Equal(t, before.Date, after.Date)
			},
		},
		{
			name:    "back from confirmation clears the any-mode binding",
			session: sessionAt(model.StateConfirmation, model.ModeAny),
			event:   model.Event{Type: model.EventBack},
			check: func(t *testing.T, _, after model.Session) {
				assert.Equal(t, model.StateTimeSelection, after.State)
				assert.Nil(t, after.StartTime)
				assert.Empty(t, after.MasterID)
			},
		},
		{
			name:    "back from date selection",
			session: sessionAt(model.StateDateSelection, ""),
			event:   model.Event{Type: model.EventBack},
			check: func(t *testing.T, before, after model.Session) {
				assert.Equal(t, model.StateServiceSelection, after.State)
				assert.Equal(t, before.ServiceIDs, after.ServiceIDs)
			},
		},
		{
			name:    "cancel clears the session",
			session: sessionAt(model.StateConfirmation, model.ModeSpecific),
			event:   model.Event{Type: model.EventCancel},
			check: func(t *testing.T, _, after model.Session) {
				assert.Equal(t, model.StateCancelled, after.State)
				assert.Empty(t, after.ServiceIDs)
				assert.Empty(t, after.MasterID)
				assert.Nil(t, after.StartTime)
			},
		},
		{
			name:    "event of another step",
			session: sessionAt(model.StateDateSelection, ""),
			event:   model.Event{Type: model.EventConfirm},
			wantErr: service.ErrEventNotAllowed,
		},
		{
			name:    "finished session",
			session: model.Session{ID: "c-1", State: model.StateCancelled},
			event:   model.Event{Type: model.EventBack},
			wantErr: service.ErrSessionClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine, f := newMachine(t)

			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			f.defaults()

			before := tt.session.Clone()

			after, prompt, err := machine.Advance(context.Background(), tt.session, tt.event)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before.State, after.State)
				assert.Equal(t, before.ServiceIDs, after.ServiceIDs)
				assert.Equal(t, before.MasterID, after.MasterID)
				assert.Equal(t, before.StartTime, after.StartTime)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, after.State, prompt.State)
			tt.check(t, before, after)
		})
	}
}

func TestMachine_Render(t *testing.T) {
	machine, f := newMachine(t)
	f.defaults()

	ctx := context.Background()

	prompt, err := machine.Render(ctx, sessionAt(model.StateTimeSelection, model.ModeAny))
	require.NoError(t, err)
	require.Len(t, prompt.Slots, 2)
	assert.Equal(t, []string{"m-1", "m-2"}, prompt.Slots[0].MasterIDs)

	prompt, err = machine.Render(ctx, sessionAt(model.StateTimeSelection, model.ModeSpecific))
	require.NoError(t, err)
	require.Len(t, prompt.Slots, 2)
	assert.Equal(t, []string{"m-1"}, prompt.Slots[1].MasterIDs)

	prompt, err = machine.Render(ctx, sessionAt(model.StateMasterSelection, model.ModeSpecific))
	require.NoError(t, err)
	require.Len(t, prompt.Masters, 2)
	assert.True(t, prompt.Masters[0].IsPrimary)

	prompt, err = machine.Render(ctx, sessionAt(model.StateConfirmation, model.ModeAny))
	require.NoError(t, err)
	require.NotNil(t, prompt.Summary)
	assert.Equal(t, "10:00", prompt.Summary.Time.String())
	assert.Equal(t, "Olga", prompt.Summary.Master.Name)
	assert.Equal(t, 75, prompt.Summary.TotalDuration)
	assert.Equal(t, "60", prompt.Summary.TotalPrice.String())
	assert.Len(t, prompt.Summary.Services, 2)

	prompt, err = machine.Render(ctx, sessionAt(model.StateMasterChoice, ""))
	require.NoError(t, err)
	assert.Equal(t, []model.Mode{model.ModeSpecific, model.ModeAny}, prompt.Modes)
}

func TestMachine_Confirm(t *testing.T) {
	t.Run("commits the booking", func(t *testing.T) {
		machine, f := newMachine(t)

		session := sessionAt(model.StateConfirmation, model.ModeAny)

		f.creator.EXPECT().Create(gomock.Any(), bookingModel.Command{
			ClientID:   "client-1",
			MasterID:   "m-2",
			Date:       session.Date,
			Start:      clock.New(10, 0),
			ServiceIDs: []string{"cut", "color"},
		}).Return(bookingModel.Result{AppointmentID: "a-1", AssignedMasterID: "m-2"}, nil)
		f.defaults()

		after, prompt, err := machine.Advance(context.Background(), session, model.Event{Type: model.EventConfirm})

		require.NoError(t, err)
		assert.Equal(t, model.StateCommitted, after.State)
		assert.Equal(t, "a-1", after.AppointmentID)
		assert.Equal(t, "a-1", prompt.AppointmentID)
	})

	t.Run("slot taken at commit returns to time selection", func(t *testing.T) {
		machine, f := newMachine(t)

		f.creator.EXPECT().Create(gomock.Any(), gomock.Any()).Return(bookingModel.Result{}, bookingService.ErrSlotUnavailable)
		f.defaults()

		after, prompt, err := machine.Advance(context.Background(), sessionAt(model.StateConfirmation, model.ModeAny), model.Event{Type: model.EventConfirm})

		assert.ErrorIs(t, err, service.ErrSlotTaken)
		assert.Equal(t, model.StateTimeSelection, after.State)
		assert.Nil(t, after.StartTime)
		assert.Empty(t, after.MasterID)
		assert.Equal(t, model.StateTimeSelection, prompt.State)
		assert.NotEmpty(t, prompt.Slots)
	})

	t.Run("persistence failure keeps the confirmation", func(t *testing.T) {
		machine, f := newMachine(t)

		f.creator.EXPECT().Create(gomock.Any(), gomock.Any()).Return(bookingModel.Result{}, bookingService.ErrPersistenceFailed)
		f.defaults()

		after, _, err := machine.Advance(context.Background(), sessionAt(model.StateConfirmation, model.ModeAny), model.Event{Type: model.EventConfirm})

		assert.ErrorIs(t, err, bookingService.ErrPersistenceFailed)
		assert.Equal(t, model.StateConfirmation, after.State)
		assert.NotNil(t, after.StartTime)
	})

	t.Run("unexpected creator error", func(t *testing.T) {
		machine, f := newMachine(t)

		f.creator.EXPECT().Create(gomock.Any(), gomock.Any()).Return(bookingModel.Result{}, errors.New("boom"))
		f.defaults()

		_, err := machine.Confirm(context.Background(), sessionAt(model.StateConfirmation, model.ModeAny))

		assert.EqualError(t, err, "boom")
	})

	t.Run("incomplete session", func(t *testing.T) {
		machine, _ := newMachine(t)

		_, err := machine.Confirm(context.Background(), sessionAt(model.StateTimeSelection, model.ModeAny))

		assert.ErrorIs(t, err, service.ErrEventNotAllowed)
	})
}
