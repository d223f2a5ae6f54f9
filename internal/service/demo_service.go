package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aaronipollock/memory-palace-sub001/internal/domain"
	"github.com/aaronipollock/memory-palace-sub001/internal/repository"
)

// DemoService restores the demo account to its canonical sample data so the
// next visitor gets a clean walkthrough. Reset wipes the account's palaces
// and rooms and reseeds the sample palace, making it safe to run repeatedly.
type DemoService struct {
	palaceRepo repository.PalaceRepository
	roomRepo   repository.RoomRepository
}

func NewDemoService(palaceRepo repository.PalaceRepository, roomRepo repository.RoomRepository) *DemoService {
	return &DemoService{palaceRepo: palaceRepo, roomRepo: roomRepo}
}

func (s *DemoService) Reset(ctx context.Context, userID string) error {
	if err := s.palaceRepo.DeleteByOwner(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear demo palaces: %w", err)
	}
	if err := s.roomRepo.DeleteByOwner(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear demo rooms: %w", err)
	}

	now := time.Now()
	sample := &domain.MemoryPalace{
		ID:       uuid.NewString(),
		OwnerID:  userID,
		Name:     "Grocery list",
		RoomType: "throne room",
		Associations: []domain.Association{
			{Item: "apples", AnchorPoint: "throne"},
			{Item: "milk", AnchorPoint: "chandelier"},
			{Item: "bread", AnchorPoint: "red carpet"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.palaceRepo.Create(ctx, sample); err != nil {
		return fmt.Errorf("failed to seed demo palace: %w", err)
	}

	return nil
}
