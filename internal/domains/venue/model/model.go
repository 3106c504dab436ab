package model

import "dpbooking/shared/model"

const (
	TableName  = "venues"
	EntityName = "venue"

	FieldID        = "id"
	FieldName      = "name"
	FieldCapacity  = "capacity"
	FieldSurcharge = "surcharge"
	FieldIsActive  = "is_active"
)

type Venue struct {
	ID        int64   `db:"id"`
	Name      string  `db:"name"`
	Capacity  int     `db:"capacity"`
	Surcharge float64 `db:"surcharge"`
	IsActive  bool    `db:"is_active"`
	model.Metadata
}
