package model

import "salon/shared/model"

const (
	TableName  = "masters"
	EntityName = "master"

	MasterServiceTableName = "master_services"

	FieldID        = "id"
	FieldActive    = "active"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldContactID = "contact_id"
	FieldPhotoURL  = "photo_url"
	FieldMasterID  = "master_id"
	FieldServiceID = "service_id"
	FieldIsPrimary = "is_primary"
)

type Master struct {
	ID        string `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	PhotoURL  string `db:"photo_url"`
	ContactID string `db:"contact_id"`
	Active    bool   `db:"active"`
	model.Metadata
}

func (m Master) FullName() string {
	if m.LastName == "" {
		return m.FirstName
	}

	return m.FirstName + " " + m.LastName
}

// Offering is one row of the directory: an active master offering an active service.
type Offering struct {
	MasterID  string `db:"master_id"  json:"master_id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name"  json:"last_name"`
	PhotoURL  string `db:"photo_url"  json:"photo_url"`
	IsPrimary bool   `db:"is_primary" json:"is_primary"`
}

func (o Offering) FullName() string {
	return Master{FirstName: o.FirstName, LastName: o.LastName}.FullName()
}
