package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

const (
	vehiclesCollection = "vehicles"
	vehicleSeq         = "vehicle_id"
)

type VehicleRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{db: db, coll: db.Collection(vehiclesCollection)}
}

// List returns the whole catalog ordered by id.
func (r *VehicleRepository) List(ctx context.Context) ([]*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer cur.Close(ctx)

	vehicles := make([]*domain.Vehicle, 0)
	for cur.Next(ctx) {
		var v domain.Vehicle
		if err := cur.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode vehicle: %w", err)
		}
		vehicles = append(vehicles, &v)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Vehicle
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle %d: %w", id, err)
	}
	return &v, nil
}

// Create assigns the next catalog id and inserts the vehicle. The unique
// plate index turns a concurrent duplicate into ErrPlateTaken at write time.
func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, vehicleSeq)
	if err != nil {
		return nil, err
	}

	doc := *v
	doc.ID = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPlateTaken
		}
		return nil, fmt.Errorf("insert vehicle: %w", err)
	}
	return &doc, nil
}

// Replace overwrites every field of an existing vehicle. A plate held by a
// different vehicle surfaces as ErrPlateTaken via the unique index; a plate
// the vehicle already holds is no conflict.
func (r *VehicleRepository) Replace(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPlateTaken
		}
		return nil, fmt.Errorf("replace vehicle %d: %w", v.ID, err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrVehicleNotFound
	}
	return v, nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete vehicle %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

// EnsureIndexes creates the unique plate index backing the global
// plate-uniqueness invariant.
func (r *VehicleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "plate", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
