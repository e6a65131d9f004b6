package ratings

import "github.com/coauto/coauto-backend/pkg/db/models"

// RatingDTO is the API view of a review row.
type RatingDTO struct {
	ID       int64  `json:"id"`
	Value    int    `json:"value"`
	Comment  string `json:"comment"`
	IDAuto   int64  `json:"id_auto"`
	IDUser   int64  `json:"id_user"`
	IDStatus *int64 `json:"id_status,omitempty"`
}

// CreateRatingInput is the validated payload for a new review.
type CreateRatingInput struct {
	Value    int
	Comment  string
	IDAuto   int64
	IDUser   int64
	IDStatus *int64
}

// UpdateRatingInput carries the replacement state for a review.
type UpdateRatingInput struct {
	Value    int
	Comment  string
	IDStatus *int64
}

func toRatingDTO(rate *models.Rate) RatingDTO {
	return RatingDTO{
		ID:       rate.ID,
		Value:    rate.Value,
		Comment:  rate.Comment,
		IDAuto:   rate.IDAuto,
		IDUser:   rate.IDUser,
		IDStatus: rate.IDStatus,
	}
}
