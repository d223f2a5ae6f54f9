package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
	"github.com/aaronipollock/memory-palace-sub001/internal/domain"
	"github.com/aaronipollock/memory-palace-sub001/internal/repository"
)

type PalaceService struct {
	palaceRepo repository.PalaceRepository
}

func NewPalaceService(palaceRepo repository.PalaceRepository) *PalaceService {
	return &PalaceService{palaceRepo: palaceRepo}
}

type CreatePalaceRequest struct {
	Name         string               `json:"name" validate:"required,min=1,max=100"`
	RoomType     string               `json:"room_type" validate:"required"`
	RoomImageURL string               `json:"room_image_url" validate:"omitempty,url"`
	Associations []domain.Association `json:"associations" validate:"omitempty,dive"`
}

type UpdatePalaceRequest struct {
	Name           *string              `json:"name" validate:"omitempty,min=1,max=100"`
	Associations   []domain.Association `json:"associations" validate:"omitempty,dive"`
	TimesCompleted *int                 `json:"times_completed" validate:"omitempty,gte=0"`
}

func (s *PalaceService) Create(ctx context.Context, ownerID string, req CreatePalaceRequest) (*domain.MemoryPalace, error) {
	now := time.Now()
	palace := &domain.MemoryPalace{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Name:         req.Name,
		RoomType:     req.RoomType,
		RoomImageURL: req.RoomImageURL,
		Associations: req.Associations,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if palace.Associations == nil {
		palace.Associations = []domain.Association{}
	}

	if err := s.palaceRepo.Create(ctx, palace); err != nil {
		return nil, apperr.Internal(err)
	}

	return palace, nil
}

func (s *PalaceService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.MemoryPalace, error) {
	palaces, err := s.palaceRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return palaces, nil
}

// Update applies the request to an already ownership-checked palace.
func (s *PalaceService) Update(ctx context.Context, palace *domain.MemoryPalace, req UpdatePalaceRequest) (*domain.MemoryPalace, error) {
	if req.Name != nil {
		palace.Name = *req.Name
	}
	if req.Associations != nil {
		palace.Associations = req.Associations
	}
	if req.TimesCompleted != nil {
		palace.TimesCompleted = *req.TimesCompleted
	}

	if err := s.palaceRepo.Update(ctx, palace); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("palace")
		}
		return nil, apperr.Internal(err)
	}

	return palace, nil
}

func (s *PalaceService) Delete(ctx context.Context, id string) error {
	if err := s.palaceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("palace")
		}
		return apperr.Internal(err)
	}
	return nil
}
