package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	InteractionLike   = "like"
	InteractionRating = "rating"
	InteractionSave   = "save"
)

type Interaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      string             `bson:"type" json:"type"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
}

// ValidInteractionType reports whether t is one of the stored types.
func ValidInteractionType(t string) bool {
	return t == InteractionLike || t == InteractionRating || t == InteractionSave
}
