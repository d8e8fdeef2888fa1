package model

import "salon/shared/model"

const (
	TableName  = "clients"
	EntityName = "client"

	FieldID        = "id"
	FieldContactID = "contact_id"
)

type Client struct {
	ID        string `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Phone     string `db:"phone"`
	ContactID string `db:"contact_id"`
	model.Metadata
}
