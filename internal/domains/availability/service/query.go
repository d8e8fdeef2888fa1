package service

//go:generate go run go.uber.org/mock/mockgen -source=./query.go -destination=../mocks/query_mock.go -package=mocks

import (
	"context"
	"net/http"
	"salon/infras/otel"
	"salon/internal/domains/availability/model/dto"
	catalogService "salon/internal/domains/catalog/service"
	masterService "salon/internal/domains/master/service"
	"salon/shared/clock"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/timezone"
)

var ErrNoEligibleMaster = &failure.Failure{Code: http.StatusUnprocessableEntity, Reason: failure.ReasonNoEligibleMaster, Message: "no master offers every selected service"}

// Query answers slot listings for a service bundle.
type Query interface {
	MasterSlots(ctx context.Context, masterID string, req dto.SlotsRequest) (dto.MasterSlotsResponse, error)
	AnySlots(ctx context.Context, req dto.SlotsRequest) (dto.SlotsResponse, error)
}

type queryImpl struct {
	catalog    catalogService.Catalog
	matcher    masterService.Matcher
	calculator Calculator
	otel       otel.Otel
}

func NewQuery(catalog catalogService.Catalog, matcher masterService.Matcher, calculator Calculator, otel otel.Otel) Query {
	return &queryImpl{
		catalog:    catalog,
		matcher:    matcher,
		calculator: calculator,
		otel:       otel,
	}
}

func (q *queryImpl) MasterSlots(ctx context.Context, masterID string, req dto.SlotsRequest) (res dto.MasterSlotsResponse, err error) {
	ctx, scope := q.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MasterSlots")
	defer scope.End()
	defer scope.TraceIfError(&err)

	date, err := clock.ParseDate(req.Date, timezone.GetLocation())
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	if _, err = q.matcher.Get(ctx, masterID); err != nil {
		return res, err //nolint:wrapcheck
	}

	bundle, err := q.catalog.GetServices(ctx, req.ServiceIDs)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = q.matcher.Offers(ctx, masterID, req.ServiceIDs); err != nil {
		return res, err //nolint:wrapcheck
	}

	slots, err := q.calculator.FreeSlots(ctx, masterID, date, bundle.TotalDuration)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	return dto.MasterSlotsResponse{
		MasterID: masterID,
		Date:     req.Date,
		Duration: bundle.TotalDuration,
		Slots:    slots,
	}, nil
}

// AnySlots unions the free slots of every master offering the whole bundle.
func (q *queryImpl) AnySlots(ctx context.Context, req dto.SlotsRequest) (res dto.SlotsResponse, err error) {
	ctx, scope := q.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AnySlots")
	defer scope.End()
	defer scope.TraceIfError(&err)

	date, err := clock.ParseDate(req.Date, timezone.GetLocation())
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	bundle, err := q.catalog.GetServices(ctx, req.ServiceIDs)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	candidates, err := q.matcher.MastersFor(ctx, req.ServiceIDs)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if len(candidates) == 0 {
		return res, ErrNoEligibleMaster
	}

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.MasterID
	}

	slots, err := q.calculator.SlotsForMasters(ctx, ids, date, bundle.TotalDuration)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	return dto.SlotsResponse{
		Date:     req.Date,
		Duration: bundle.TotalDuration,
		Slots:    slots,
	}, nil
}
