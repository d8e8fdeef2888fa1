package dto

import (
	"fmt"
	"salon/internal/domains/booking/model"
	"salon/shared/clock"
	"salon/shared/timezone"
)

type CreateAppointmentRequest struct {
	ClientID   string   `json:"client_id"   validate:"required"`
	MasterID   string   `json:"master_id"   validate:"required"`
	Date       string   `json:"date"        validate:"required,date"`
	StartTime  string   `json:"start_time"  validate:"required,hhmm"`
	ServiceIDs []string `json:"service_ids" validate:"required,min=1,dive,required"`
	Comment    string   `json:"comment"     validate:"omitempty,max=500"`
}

func (r *CreateAppointmentRequest) ToCommand() (model.Command, error) {
	date, err := clock.ParseDate(r.Date, timezone.GetLocation())
	if err != nil {
		return model.Command{}, fmt.Errorf("invalid date: %w", err)
	}

	start, err := clock.Parse(r.StartTime)
	if err != nil {
		return model.Command{}, fmt.Errorf("invalid start time: %w", err)
	}

	return model.Command{
		ClientID:   r.ClientID,
		MasterID:   r.MasterID,
		Date:       date,
		Start:      start,
		ServiceIDs: r.ServiceIDs,
		Comment:    r.Comment,
	}, nil
}
