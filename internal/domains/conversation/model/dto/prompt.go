package dto

import (
	catalogDto "salon/internal/domains/catalog/model/dto"
	"salon/internal/domains/conversation/model"
	masterDto "salon/internal/domains/master/model/dto"
	"salon/shared/clock"

	"github.com/shopspring/decimal"
)

type ServiceOption struct {
	catalogDto.ServiceResponse
	Selected bool `json:"selected"`
}

type SlotOption struct {
	Time      clock.Clock `json:"time"`
	MasterIDs []string    `json:"master_ids"`
}

type Summary struct {
	Date          string                       `json:"date"`
	Time          clock.Clock                  `json:"time"`
	Master        masterDto.MasterResponse     `json:"master"`
	Services      []catalogDto.ServiceResponse `json:"services"`
	TotalDuration int                          `json:"total_duration"`
	TotalPrice    decimal.Decimal              `json:"total_price"`
}

// Prompt lists the choices of the session's current step.
type Prompt struct {
	State         model.State                   `json:"state"`
	Categories    []catalogDto.CategoryResponse `json:"categories,omitempty"`
	Services      []ServiceOption               `json:"services,omitempty"`
	MinDate       string                        `json:"min_date,omitempty"`
	Modes         []model.Mode                  `json:"modes,omitempty"`
	Masters       []masterDto.MasterResponse    `json:"masters,omitempty"`
	Slots         []SlotOption                  `json:"slots,omitempty"`
	Summary       *Summary                      `json:"summary,omitempty"`
	AppointmentID string                        `json:"appointment_id,omitempty"`
}

type SessionResponse struct {
	Session model.Session `json:"session"`
	Prompt  Prompt        `json:"prompt"`
}
