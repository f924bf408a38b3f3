package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Comment stores both directions of the thread relation: ParentID on the
// reply and the reply's id inside the parent's Replies array. The thread
// assembler reconstructs the view from these references.
type Comment struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Text      string               `bson:"text" json:"text"`
	AuthorID  primitive.ObjectID   `bson:"authorId" json:"authorId"`
	PostID    primitive.ObjectID   `bson:"postId" json:"postId"`
	ParentID  *primitive.ObjectID  `bson:"parentComment,omitempty" json:"parentComment,omitempty"`
	Replies   []primitive.ObjectID `bson:"replies" json:"replies"`
	CreatedAt int64                `bson:"createdAt" json:"createdAt"`
}
