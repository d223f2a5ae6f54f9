package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/aaronipollock/memory-palace-sub001/internal/domain"
	"github.com/aaronipollock/memory-palace-sub001/internal/repository"
)

type PalaceRepository struct {
	coll *mongo.Collection
}

func NewPalaceRepository(db *mongo.Database) *PalaceRepository {
	return &PalaceRepository{coll: db.Collection(palacesCollection)}
}

func (r *PalaceRepository) Create(ctx context.Context, palace *domain.MemoryPalace) error {
	if _, err := r.coll.InsertOne(ctx, palace); err != nil {
		return fmt.Errorf("failed to create palace: %w", err)
	}
	return nil
}

func (r *PalaceRepository) GetByID(ctx context.Context, id string) (*domain.MemoryPalace, error) {
	var palace domain.MemoryPalace
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&palace); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find palace: %w", err)
	}
	return &palace, nil
}

func (r *PalaceRepository) GetByOwner(ctx context.Context, ownerID string) ([]*domain.MemoryPalace, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list palaces: %w", err)
	}

	palaces := []*domain.MemoryPalace{}
	if err := cursor.All(ctx, &palaces); err != nil {
		return nil, fmt.Errorf("failed to decode palaces: %w", err)
	}
	return palaces, nil
}

func (r *PalaceRepository) Update(ctx context.Context, palace *domain.MemoryPalace) error {
	palace.UpdatedAt = time.Now()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": palace.ID}, palace)
	if err != nil {
		return fmt.Errorf("failed to update palace: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PalaceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete palace: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PalaceRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"owner_id": ownerID}); err != nil {
		return fmt.Errorf("failed to delete palaces: %w", err)
	}
	return nil
}
