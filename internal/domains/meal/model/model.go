package model

import "dpbooking/shared/model"

const (
	TableName  = "meals"
	EntityName = "meal"

	FieldID           = "id"
	FieldName         = "name"
	FieldPrice        = "price"
	FieldSpecialPrice = "special_price"
	FieldStation      = "station"
	FieldIsActive     = "is_active"
)

type Meal struct {
	ID           int64   `db:"id"`
	Name         string  `db:"name"`
	Price        float64 `db:"price"`
	SpecialPrice float64 `db:"special_price"`
	Station      string  `db:"station"`
	IsActive     bool    `db:"is_active"`
	model.Metadata
}

// HasSpecialPrice reports whether the meal may be sold to special-price
// venues. Only meals with a positive special price qualify.
func (m Meal) HasSpecialPrice() bool {
	return m.SpecialPrice > 0
}
