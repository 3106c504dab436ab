package dto

import (
	"dpbooking/internal/domains/user/model"
	"dpbooking/shared"
	"dpbooking/shared/constant"
	gDto "dpbooking/shared/dto"
	gModel "dpbooking/shared/model"
	"dpbooking/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	UserName string `json:"userName" validate:"required,min=3,max=64"`
	FullName string `json:"fullName" validate:"required,max=128"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin staff"`
	IsActive *bool  `json:"isActive" validate:"omitempty"`
}

func (r *CreateUserRequest) ToModel(createdBy string, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleStaff
	}

	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	return model.User{
		ID:       uuid.NewString(),
		UserName: r.UserName,
		FullName: r.FullName,
		Password: hashedPassword,
		Role:     role,
		IsActive: active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type UpdateUserRequest struct {
	FullName *string `db:"full_name" json:"fullName" validate:"omitempty,max=128"`
	Role     *string `db:"role"      json:"role"     validate:"omitempty,oneof=admin staff"`
	IsActive *bool   `db:"is_active" json:"isActive" validate:"omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type UserResponse struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.UserName = model.UserName
	r.FullName = model.FullName
	r.Role = model.Role
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
