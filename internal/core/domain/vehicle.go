package domain

import "errors"

var ErrVehicleNotFound = errors.New("vehicle not found")
var ErrPlateTaken = errors.New("plate already in use")
var ErrInvalidVehicle = errors.New("make, model, plate, and a positive year are required")

// Vehicle is a rentable unit in the fleet catalog.
//
// Plate is globally unique; uniqueness is enforced by the persistence layer
// at write time, not by a prior read.
type Vehicle struct {
	ID    int64  `json:"id" bson:"_id"`
	Make  string `json:"make" bson:"make"`
	Model string `json:"model" bson:"model"`
	Year  int    `json:"year" bson:"year"`
	Plate string `json:"plate" bson:"plate"`
}
