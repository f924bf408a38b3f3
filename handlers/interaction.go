package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"knowshare/apperr"
	"knowshare/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type InteractionHandler struct {
	Posts        *mongo.Collection
	Interactions *mongo.Collection
}

type createInteractionRequest struct {
	Type string `json:"type" binding:"required"`
}

// Create records an engagement signal for a post. Multiplicity per
// (post, user, type) is not constrained; the aggregator counts rows.
func (h *InteractionHandler) Create(c *gin.Context) {
	const op = "add interaction"

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperr.Respond(c, apperr.New("Invalid post ID", http.StatusBadRequest, op))
		return
	}

	var req createInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidInteractionType(req.Type) {
		apperr.Respond(c, apperr.New("type must be one of like, rating, save", http.StatusBadRequest, op))
		return
	}

	userID, ok := requesterID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.Posts.FindOne(ctx, bson.M{"_id": postID}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apperr.Respond(c, apperr.New("Post not found", http.StatusNotFound, op))
			return
		}
		apperr.Respond(c, apperr.Wrap(err, "Failed to fetch post", http.StatusInternalServerError, op))
		return
	}

	interaction := models.Interaction{
		ID:        primitive.NewObjectID(),
		Type:      req.Type,
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now().Unix(),
	}

	if _, err := h.Interactions.InsertOne(ctx, interaction); err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to record interaction", http.StatusInternalServerError, op))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Interaction recorded successfully",
		"data":    interaction,
	})
}
