package dto

import (
	"salon/internal/domains/appointment/model"
	"salon/shared"
	"salon/shared/clock"
	sharedModel "salon/shared/model"
)

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed no_show in_progress rejected"`
}

type AppointmentResponse struct {
	ID         string      `json:"id"`
	ClientID   string      `json:"client_id"`
	MasterID   string      `json:"master_id"`
	Date       string      `json:"date"`
	StartTime  clock.Clock `json:"start_time"`
	EndTime    clock.Clock `json:"end_time"`
	Status     string      `json:"status"`
	Comment    string      `json:"comment,omitempty"`
	ServiceIDs []string    `json:"service_ids,omitempty"`
	sharedModel.Metadata
}

func (r *AppointmentResponse) FromModel(m model.Appointment) {
	r.ID = m.ID
	r.ClientID = m.ClientID
	r.MasterID = m.MasterID
	r.Date = m.AppointmentDate.Format(clock.DateLayout)
	r.StartTime = m.StartTime
	r.EndTime = m.EndTime
	r.Status = m.Status
	r.Comment = m.Comment
	r.Metadata = m.Metadata
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}
