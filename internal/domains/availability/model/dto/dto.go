package dto

import (
	"salon/internal/domains/availability/model"
	"salon/shared/clock"
)

type SlotsRequest struct {
	Date       string   `json:"date"        validate:"required,date"`
	ServiceIDs []string `json:"service_ids" validate:"required,min=1,dive,required"`
}

type MasterSlotsResponse struct {
	MasterID string        `json:"master_id"`
	Date     string        `json:"date"`
	Duration int           `json:"duration_minutes"`
	Slots    []clock.Clock `json:"slots"`
}

type SlotsResponse struct {
	Date     string       `json:"date"`
	Duration int          `json:"duration_minutes"`
	Slots    []model.Slot `json:"slots"`
}
