package dto

import (
	"dpbooking/internal/domains/venue/model"
	"dpbooking/shared"
	gDto "dpbooking/shared/dto"
	gModel "dpbooking/shared/model"
	"dpbooking/shared/timezone"
)

type CreateVenueRequest struct {
	Name      string   `json:"name"      validate:"required,max=100"`
	Capacity  int      `json:"capacity"  validate:"omitempty,min=0"`
	Surcharge *float64 `json:"surcharge" validate:"omitempty,min=0"`
	IsActive  *bool    `json:"isActive"  validate:"omitempty"`
}

func (c *CreateVenueRequest) ToModel(user string) model.Venue {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	surcharge := 0.0
	if c.Surcharge != nil {
		surcharge = *c.Surcharge
	}

	return model.Venue{
		Name:      c.Name,
		Capacity:  c.Capacity,
		Surcharge: surcharge,
		IsActive:  active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateVenueRequest struct {
	Name      string   `db:"name"      json:"name"      validate:"omitempty,max=100"`
	Capacity  *int     `db:"capacity"  json:"capacity"  validate:"omitempty,min=0"`
	Surcharge *float64 `db:"surcharge" json:"surcharge" validate:"omitempty,min=0"`
	IsActive  *bool    `db:"is_active" json:"isActive"  validate:"omitempty"`
}

type VenueResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Capacity  int     `json:"capacity"`
	Surcharge float64 `json:"surcharge"`
	IsActive  bool    `json:"isActive"`
	gDto.Metadata
}

func (r *VenueResponse) FromModel(model model.Venue) {
	r.ID = model.ID
	r.Name = model.Name
	r.Capacity = model.Capacity
	r.Surcharge = model.Surcharge
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetVenuesResponse struct {
	Venues    []VenueResponse `json:"venues"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetVenuesResponse) FromModels(models []model.Venue, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Venues = make([]VenueResponse, len(models))
	for i, mod := range models {
		r.Venues[i].FromModel(mod)
	}
}
