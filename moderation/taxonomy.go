package moderation

import (
	"context"
	"errors"
	"regexp"

	"knowshare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTaxonomy resolves taxonomy names against the categories and
// subcategories collections with case-insensitive exact matching.
type MongoTaxonomy struct {
	Categories    *mongo.Collection
	Subcategories *mongo.Collection
}

func nameFilter(name string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}
}

func (t *MongoTaxonomy) FindCategory(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := t.Categories.FindOne(ctx, bson.M{"name": nameFilter(name)}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (t *MongoTaxonomy) FindSubcategory(ctx context.Context, name string, categoryID primitive.ObjectID) (*models.Subcategory, error) {
	var subcategory models.Subcategory
	err := t.Subcategories.FindOne(ctx, bson.M{
		"name":       nameFilter(name),
		"categoryId": categoryID,
	}).Decode(&subcategory)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subcategory, nil
}
