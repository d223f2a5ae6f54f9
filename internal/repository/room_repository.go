package repository

import (
	"context"

	"github.com/aaronipollock/memory-palace-sub001/internal/domain"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.CustomRoom) error
	GetByID(ctx context.Context, id string) (*domain.CustomRoom, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*domain.CustomRoom, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}
