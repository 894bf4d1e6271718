package handler

import "github.com/rentwheels/rental-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// vehicleRequest is the candidate shape for both create and full-replacement
// update: every field is required.
type vehicleRequest struct {
	Make  string `json:"make"  validate:"required"`
	Model string `json:"model" validate:"required"`
	Year  int    `json:"year"  validate:"required,gt=0"`
	Plate string `json:"plate" validate:"required"`
}

type vehicleResponse struct {
	ID    int64  `json:"id"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Plate string `json:"plate"`
}

func toVehicleResponse(v *domain.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:    v.ID,
		Make:  v.Make,
		Model: v.Model,
		Year:  v.Year,
		Plate: v.Plate,
	}
}

func toVehicleListResponse(vehicles []*domain.Vehicle) []vehicleResponse {
	out := make([]vehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResponse(v))
	}
	return out
}
