package dto

import (
	"salon/internal/domains/catalog/model"

	"github.com/shopspring/decimal"
)

type CategoryResponse struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parent_id"`
	Title    string  `json:"title"`
}

func (r *CategoryResponse) FromModel(m model.Category) {
	r.ID = m.ID
	r.ParentID = m.ParentID
	r.Title = m.Title
}

type ServiceResponse struct {
	ID              string          `json:"id"`
	CategoryID      string          `json:"category_id"`
	Title           string          `json:"title"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
}

func (r *ServiceResponse) FromModel(m model.Service) {
	r.ID = m.ID
	r.CategoryID = m.CategoryID
	r.Title = m.Title
	r.DurationMinutes = m.DurationMinutes
	r.Price = m.Price
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

func (r *GetCategoriesResponse) FromModels(models []model.Category) {
	r.Categories = make([]CategoryResponse, len(models))
	for i, mod := range models {
		r.Categories[i].FromModel(mod)
	}
}

type GetServicesResponse struct {
	Services []ServiceResponse `json:"services"`
}

func (r *GetServicesResponse) FromModels(models []model.Service) {
	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}

type BundleResponse struct {
	Services      []ServiceResponse `json:"services"`
	TotalDuration int               `json:"total_duration"`
	TotalPrice    decimal.Decimal   `json:"total_price"`
}

func (r *BundleResponse) FromModel(b model.Bundle) {
	r.TotalDuration = b.TotalDuration
	r.TotalPrice = b.TotalPrice

	r.Services = make([]ServiceResponse, len(b.Services))
	for i, svc := range b.Services {
		r.Services[i].FromModel(svc)
	}
}
