package users

import (
	"github.com/coauto/coauto-backend/pkg/db/models"
	"github.com/coauto/coauto-backend/pkg/pagination"
)

// UserDTO is the API view of a locally mirrored account.
type UserDTO struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Lastname string  `json:"lastname"`
	IDRole   int64   `json:"id_role"`
	IDStatus int64   `json:"id_status"`
	ImageURL *string `json:"image_url,omitempty"`
}

// UserList is one page of accounts.
type UserList struct {
	Users  []UserDTO       `json:"users"`
	Paging pagination.Page `json:"paging"`
}

// UpdateProfileInput carries the mutable profile fields.
type UpdateProfileInput struct {
	Name     string
	Lastname string
	IDRole   int64
	ImageURL *string
}

func toUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Lastname: user.Lastname,
		IDRole:   user.IDRole,
		IDStatus: user.IDStatus,
		ImageURL: user.ImageURL,
	}
}
