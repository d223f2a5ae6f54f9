package domain

import (
	"time"
)

// Association links one memorable item to one anchor point together with the
// illustration generated for the pair.
type Association struct {
	Item        string `json:"item" bson:"item"`
	AnchorPoint string `json:"anchor_point" bson:"anchor_point"`
	ImageURL    string `json:"image_url" bson:"image_url"`
	SrcSet      string `json:"src_set,omitempty" bson:"src_set,omitempty"`
}

// MemoryPalace is one saved mnemonic exercise: a room plus the item-anchor
// associations and their generated imagery.
type MemoryPalace struct {
	ID             string        `json:"id" bson:"_id"`
	OwnerID        string        `json:"owner_id" bson:"owner_id"`
	Name           string        `json:"name" bson:"name"`
	RoomType       string        `json:"room_type" bson:"room_type"`
	RoomImageURL   string        `json:"room_image_url,omitempty" bson:"room_image_url,omitempty"`
	Associations   []Association `json:"associations" bson:"associations"`
	TimesCompleted int           `json:"times_completed" bson:"times_completed"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" bson:"updated_at"`
}
