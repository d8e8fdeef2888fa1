package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks -mock_names=Appointment=MockAppointmentRepository

import (
	"context"
	"errors"
	"fmt"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/appointment/model"
	"salon/shared/clock"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	gRepo "salon/shared/repository"
	"salon/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	queryLockMasterDay = "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))"
)

// ErrOverlap is returned when the store rejects a blocking appointment overlapping another one.
var ErrOverlap = errors.New("appointment overlaps an existing booking")

// Appointment is the ledger of booked appointments.
type Appointment interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Appointment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Appointment, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	BusyIntervals(ctx context.Context, masterID string, date time.Time) ([]clock.Range, error)
	ServiceIDs(ctx context.Context, appointmentID string) ([]string, error)
	UpdateStatus(ctx context.Context, id, status, actor string) error
	Transaction(ctx context.Context, masterID string, date time.Time, fn func(tx LedgerTx) error) error
}

// LedgerTx is the view of the ledger inside Transaction. Reads see the transaction's own writes.
type LedgerTx interface {
	BusyIntervals(ctx context.Context, masterID string, date time.Time) ([]clock.Range, error)
	InsertAppointment(ctx context.Context, appointment model.Appointment) error
	InsertServiceLinks(ctx context.Context, links []model.ServiceLink) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Appointment]
	links gRepo.Repository[model.ServiceLink]
	db    *postgres.Connection
	otel  otel.Otel
}

type ledgerTx struct {
	repo *repositoryImpl
	tx   *sqlx.Tx
}

func New(db *postgres.Connection, otel otel.Otel) Appointment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Appointment](model.EntityName, model.TableName, model.FieldID, db, otel),
		links:      gRepo.NewRepository[model.ServiceLink](model.ServiceLinkEntityName, model.ServiceLinkTableName, model.FieldAppointmentID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func busyFilter(masterID string, date time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldMasterID, Value: masterID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldAppointmentDate, Value: date.Format(clock.DateLayout), Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.BlockingStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	}
}

var busyOrder = gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}

func toRanges(appointments []model.Appointment) []clock.Range {
	ranges := make([]clock.Range, len(appointments))
	for i, a := range appointments {
		ranges[i] = a.Range()
	}

	return ranges
}

// BusyIntervals returns the blocking appointments of the master on date, ordered by start.
func (r *repositoryImpl) BusyIntervals(ctx context.Context, masterID string, date time.Time) ([]clock.Range, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.BusyIntervals")
	defer scope.End()

	appointments, err := r.GetAll(ctx, busyOrder, busyFilter(masterID, date), model.FieldStartTime, model.FieldEndTime)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return toRanges(appointments), nil
}

func (r *repositoryImpl) ServiceIDs(ctx context.Context, appointmentID string) ([]string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.ServiceIDs")
	defer scope.End()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldAppointmentID, Value: appointmentID, Operator: gDto.FilterOperatorEq, Table: model.ServiceLinkTableName},
		},
	}

	links, err := r.links.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	ids := make([]string, len(links))
	for i, link := range links {
		ids[i] = link.ServiceID
	}

	return ids, nil
}

func (r *repositoryImpl) UpdateStatus(ctx context.Context, id, status, actor string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.UpdateStatus")
	defer scope.End()

	fields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	err := r.Update(ctx, fields, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq},
		},
	})

	return mapOverlap(err)
}

// Transaction runs fn in one write transaction holding an advisory lock on (master, date).
// Concurrent transactions for the same master and day are serialized until commit.
func (r *repositoryImpl) Transaction(ctx context.Context, masterID string, date time.Time, fn func(tx LedgerTx) error) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.Transaction")
	defer scope.End()

	err := r.db.WithTx(ctx, nil, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, queryLockMasterDay, lockKey(masterID, date)); err != nil {
			return fmt.Errorf("failed to lock master day: %w", err)
		}

		return fn(&ledgerTx{repo: r, tx: tx})
	})
	if err != nil {
		scope.TraceError(err)
	}

	return mapOverlap(err) //nolint:wrapcheck
}

func lockKey(masterID string, date time.Time) string {
	return model.TableName + ":" + masterID + ":" + date.Format(clock.DateLayout)
}

func mapOverlap(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeExclusionViolation {
		return fmt.Errorf("%w: %w", ErrOverlap, err)
	}

	return err
}

func (l *ledgerTx) BusyIntervals(ctx context.Context, masterID string, date time.Time) ([]clock.Range, error) {
	appointments, err := l.repo.GetAllTx(ctx, l.tx, busyOrder, busyFilter(masterID, date), model.FieldStartTime, model.FieldEndTime)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return toRanges(appointments), nil
}

func (l *ledgerTx) InsertAppointment(ctx context.Context, appointment model.Appointment) error {
	return l.repo.InsertTx(ctx, l.tx, appointment) //nolint:wrapcheck
}

func (l *ledgerTx) InsertServiceLinks(ctx context.Context, links []model.ServiceLink) error {
	return l.repo.links.InsertBulkTx(ctx, l.tx, links) //nolint:wrapcheck
}
