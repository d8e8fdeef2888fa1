package model

import (
	"salon/shared/model"

	"github.com/shopspring/decimal"
)

const (
	CategoryTableName  = "categories"
	CategoryEntityName = "category"

	ServiceTableName  = "services"
	ServiceEntityName = "service"

	FieldID              = "id"
	FieldParentID        = "parent_id"
	FieldCategoryID      = "category_id"
	FieldTitle           = "title"
	FieldDurationMinutes = "duration_minutes"
	FieldPrice           = "price"
	FieldActive          = "active"
)

type Category struct {
	ID       string  `db:"id"`
	ParentID *string `db:"parent_id"`
	Title    string  `db:"title"`
	Active   bool    `db:"active"`
	model.Metadata
}

type Service struct {
	ID              string          `db:"id"`
	CategoryID      string          `db:"category_id"`
	Title           string          `db:"title"`
	DurationMinutes int             `db:"duration_minutes"`
	Price           decimal.Decimal `db:"price"`
	Active          bool            `db:"active"`
	model.Metadata
}

// Bundle is the ordered set of services booked together.
type Bundle struct {
	Services      []Service       `json:"services"`
	TotalDuration int             `json:"total_duration"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

func NewBundle(services []Service) Bundle {
	bundle := Bundle{
		Services:   services,
		TotalPrice: decimal.Zero,
	}

	for _, svc := range services {
		bundle.TotalDuration += svc.DurationMinutes
		bundle.TotalPrice = bundle.TotalPrice.Add(svc.Price)
	}

	return bundle
}

func (b Bundle) IDs() []string {
	ids := make([]string, len(b.Services))
	for i, svc := range b.Services {
		ids[i] = svc.ID
	}

	return ids
}
