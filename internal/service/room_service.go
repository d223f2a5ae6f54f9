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

type RoomService struct {
	roomRepo repository.RoomRepository
}

func NewRoomService(roomRepo repository.RoomRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo}
}

type CreateRoomRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=100"`
	RoomType     string   `json:"room_type" validate:"required"`
	AnchorPoints []string `json:"anchor_points" validate:"required,min=1,dive,required"`
	ImageURL     string   `json:"image_url" validate:"required,url"`
	Prompt       string   `json:"prompt" validate:"omitempty"`
}

func (s *RoomService) Create(ctx context.Context, ownerID string, req CreateRoomRequest) (*domain.CustomRoom, error) {
	room := &domain.CustomRoom{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Name:         req.Name,
		RoomType:     req.RoomType,
		AnchorPoints: req.AnchorPoints,
		ImageURL:     req.ImageURL,
		Prompt:       req.Prompt,
		CreatedAt:    time.Now(),
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, apperr.Internal(err)
	}

	return room, nil
}

func (s *RoomService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.CustomRoom, error) {
	rooms, err := s.roomRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return rooms, nil
}

func (s *RoomService) Delete(ctx context.Context, id string) error {
	if err := s.roomRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("room")
		}
		return apperr.Internal(err)
	}
	return nil
}
