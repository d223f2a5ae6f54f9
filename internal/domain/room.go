package domain

import (
	"time"
)

// CustomRoom is a user-generated room image with named anchor points that can
// back one or more memory palaces.
type CustomRoom struct {
	ID           string    `json:"id" bson:"_id"`
	OwnerID      string    `json:"owner_id" bson:"owner_id"`
	Name         string    `json:"name" bson:"name"`
	RoomType     string    `json:"room_type" bson:"room_type"`
	AnchorPoints []string  `json:"anchor_points" bson:"anchor_points"`
	ImageURL     string    `json:"image_url" bson:"image_url"`
	Prompt       string    `json:"prompt" bson:"prompt"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
