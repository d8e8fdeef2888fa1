package dto

import (
	"io"
	"salon/internal/domains/master/model"
)

type MasterResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PhotoURL  string `json:"photo_url,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

func (r *MasterResponse) FromOffering(o model.Offering) {
	r.ID = o.MasterID
	r.Name = o.FullName()
	r.PhotoURL = o.PhotoURL
	r.IsPrimary = o.IsPrimary
}

type GetMastersResponse struct {
	Masters []MasterResponse `json:"masters"`
}

func (r *GetMastersResponse) FromOfferings(offerings []model.Offering) {
	r.Masters = make([]MasterResponse, len(offerings))
	for i, o := range offerings {
		r.Masters[i].FromOffering(o)
	}
}

// UploadPhotoRequest carries one image part of a multipart upload.
type UploadPhotoRequest struct {
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type" validate:"required,oneof=image/png image/jpeg image/webp"`
	Size        int64     `json:"size"         validate:"gt=0"`
	File        io.Reader `json:"-"`
}

type UploadPhotoResponse struct {
	MasterID string `json:"master_id"`
	PhotoURL string `json:"photo_url"`
}
