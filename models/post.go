package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MediaAsset is one uploaded object in the post's remote media folder.
type MediaAsset struct {
	SecureURL string `bson:"secure_url" json:"secure_url"`
	PublicID  string `bson:"public_id" json:"public_id"`
}

type Post struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title         string              `bson:"title" json:"title"`
	Content       string              `bson:"content" json:"content"`
	Media         []MediaAsset        `bson:"media" json:"media"`
	FolderKey     string              `bson:"folderKey,omitempty" json:"folderKey,omitempty"`
	AuthorID      primitive.ObjectID  `bson:"authorId" json:"authorId"`
	CategoryID    *primitive.ObjectID `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	SubcategoryID *primitive.ObjectID `bson:"subcategoryId,omitempty" json:"subcategoryId,omitempty"`
	IsFlagged     bool                `bson:"isFlagged" json:"isFlagged"`
	FlagReason    string              `bson:"flagReason,omitempty" json:"flagReason,omitempty"`
	CreatedAt     int64               `bson:"createdAt" json:"createdAt"`
	UpdatedAt     int64               `bson:"updatedAt" json:"updatedAt"`
}
