package dto

import (
	"dpbooking/internal/domains/meal/model"
	"dpbooking/shared"
	gDto "dpbooking/shared/dto"
	gModel "dpbooking/shared/model"
	"dpbooking/shared/timezone"
)

type CreateMealRequest struct {
	Name         string   `json:"name"         validate:"required,max=100"`
	Price        float64  `json:"price"        validate:"required,min=0"`
	SpecialPrice *float64 `json:"specialPrice" validate:"omitempty,min=0"`
	Station      string   `json:"station"      validate:"omitempty,max=64"`
	IsActive     *bool    `json:"isActive"     validate:"omitempty"`
}

func (c *CreateMealRequest) ToModel(user string) model.Meal {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	specialPrice := 0.0
	if c.SpecialPrice != nil {
		specialPrice = *c.SpecialPrice
	}

	return model.Meal{
		Name:         c.Name,
		Price:        c.Price,
		SpecialPrice: specialPrice,
		Station:      c.Station,
		IsActive:     active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateMealRequest struct {
	Name         string   `db:"name"          json:"name"         validate:"omitempty,max=100"`
	Price        *float64 `db:"price"         json:"price"        validate:"omitempty,min=0"`
	SpecialPrice *float64 `db:"special_price" json:"specialPrice" validate:"omitempty,min=0"`
	Station      *string  `db:"station"       json:"station"      validate:"omitempty,max=64"`
	IsActive     *bool    `db:"is_active"     json:"isActive"     validate:"omitempty"`
}

type MealResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	SpecialPrice float64 `json:"specialPrice"`
	Station      string  `json:"station"`
	IsActive     bool    `json:"isActive"`
	gDto.Metadata
}

func (r *MealResponse) FromModel(model model.Meal) {
	r.ID = model.ID
	r.Name = model.Name
	r.Price = model.Price
	r.SpecialPrice = model.SpecialPrice
	r.Station = model.Station
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetMealsResponse struct {
	Meals     []MealResponse `json:"meals"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetMealsResponse) FromModels(models []model.Meal, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Meals = make([]MealResponse, len(models))
	for i, mod := range models {
		r.Meals[i].FromModel(mod)
	}
}
