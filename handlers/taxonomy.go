package handlers

import (
	"context"
	"net/http"
	"time"

	"knowshare/apperr"
	"knowshare/models"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type TaxonomyHandler struct {
	Categories    *mongo.Collection
	Subcategories *mongo.Collection
}

type categoryView struct {
	models.Category
	Subcategories []models.Subcategory `json:"subcategories"`
}

// List returns the read-only taxonomy the moderation pipeline resolves
// predictions against.
func (h *TaxonomyHandler) List(c *gin.Context) {
	const op = "list categories"

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := h.Categories.Find(ctx, bson.M{})
	if err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to fetch categories", http.StatusInternalServerError, op))
		return
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to decode categories", http.StatusInternalServerError, op))
		return
	}

	subCursor, err := h.Subcategories.Find(ctx, bson.M{})
	if err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to fetch subcategories", http.StatusInternalServerError, op))
		return
	}
	defer subCursor.Close(ctx)

	var subcategories []models.Subcategory
	if err := subCursor.All(ctx, &subcategories); err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to decode subcategories", http.StatusInternalServerError, op))
		return
	}

	grouped := lo.GroupBy(subcategories, func(s models.Subcategory) string {
		return s.CategoryID.Hex()
	})

	views := lo.Map(categories, func(cat models.Category, _ int) categoryView {
		subs := grouped[cat.ID.Hex()]
		if subs == nil {
			subs = []models.Subcategory{}
		}
		return categoryView{Category: cat, Subcategories: subs}
	})

	c.JSON(http.StatusOK, gin.H{"categories": views})
}
