package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category and Subcategory form the read-only taxonomy the moderation
// pipeline resolves classifier predictions against.
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}

type Subcategory struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	CategoryID primitive.ObjectID `bson:"categoryId" json:"categoryId"`
}
