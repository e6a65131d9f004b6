package catalog

import (
	"github.com/coauto/coauto-backend/pkg/db/models"
	"github.com/coauto/coauto-backend/pkg/pagination"
)

// VehicleDTO is the API view of a listing with its child rows folded in.
type VehicleDTO struct {
	ID            int64    `json:"id"`
	Model         string   `json:"model"`
	Brand         string   `json:"brand"`
	Year          int      `json:"year"`
	Price         float64  `json:"price"`
	BodyType      string   `json:"type"`
	Fuel          string   `json:"fuel"`
	Doors         int      `json:"doors"`
	Motor         string   `json:"motor"`
	Height        float64  `json:"height"`
	Width         float64  `json:"width"`
	Length        float64  `json:"length"`
	Description   string   `json:"description"`
	IDStatus      int64    `json:"id_status"`
	Images        []string `json:"images"`
	AverageRating float64  `json:"average_rating"`
	RatingCount   int      `json:"rating_count"`
}

// VehicleList is one page of listings.
type VehicleList struct {
	Vehicles []VehicleDTO    `json:"vehicles"`
	Paging   pagination.Page `json:"paging"`
}

// CreateVehicleInput is the validated payload for a new listing.
type CreateVehicleInput struct {
	Model       string
	Brand       string
	Year        int
	Price       float64
	BodyType    string
	Fuel        string
	Doors       int
	Motor       string
	Height      float64
	Width       float64
	Length      float64
	Description string
	IDStatus    int64
	Images      []string
}

// UpdateVehicleInput carries the full replacement state for a listing.
type UpdateVehicleInput struct {
	Model       string
	Brand       string
	Year        int
	Price       float64
	BodyType    string
	Fuel        string
	Doors       int
	Motor       string
	Height      float64
	Width       float64
	Length      float64
	Description string
	IDStatus    int64
}

func toVehicleDTO(auto *models.Auto, images []string, ratings []int) VehicleDTO {
	if images == nil {
		images = []string{}
	}
	return VehicleDTO{
		ID:            auto.ID,
		Model:         auto.Model,
		Brand:         auto.Brand,
		Year:          auto.Year,
		Price:         auto.Price,
		BodyType:      auto.BodyType,
		Fuel:          auto.Fuel,
		Doors:         auto.Doors,
		Motor:         auto.Motor,
		Height:        auto.Height,
		Width:         auto.Width,
		Length:        auto.Length,
		Description:   auto.Description,
		IDStatus:      auto.IDStatus,
		Images:        images,
		AverageRating: averageRating(ratings),
		RatingCount:   len(ratings),
	}
}

// averageRating folds the child values in-process. An unrated vehicle
// averages to 0, not null.
func averageRating(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
