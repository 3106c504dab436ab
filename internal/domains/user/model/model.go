package model

import "dpbooking/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldUserName = "user_name"
	FieldFullName = "full_name"
	FieldPassword = "password"
	FieldRole     = "role"
	FieldIsActive = "is_active"
)

type User struct {
	ID       string `db:"id"`
	UserName string `db:"user_name"`
	FullName string `db:"full_name"`
	Password string `db:"password"`
	Role     string `db:"role"`
	IsActive bool   `db:"is_active"`
	model.Metadata
}
