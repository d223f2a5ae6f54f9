package repository

import (
	"context"

	"github.com/aaronipollock/memory-palace-sub001/internal/domain"
)

type PalaceRepository interface {
	Create(ctx context.Context, palace *domain.MemoryPalace) error
	GetByID(ctx context.Context, id string) (*domain.MemoryPalace, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*domain.MemoryPalace, error)
	Update(ctx context.Context, palace *domain.MemoryPalace) error
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}
