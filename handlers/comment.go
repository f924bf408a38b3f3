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

type CommentHandler struct {
	Posts    *mongo.Collection
	Comments *mongo.Collection
}

type createCommentRequest struct {
	Text          string `json:"text" binding:"required"`
	ParentComment string `json:"parent_comment"`
}

// Create stores a comment and, for replies, appends the new id to the
// parent's replies array so both directions of the thread relation stay
// consistent.
func (h *CommentHandler) Create(c *gin.Context) {
	const op = "add comment"

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperr.Respond(c, apperr.New("Invalid post ID", http.StatusBadRequest, op))
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New("text is required", http.StatusBadRequest, op))
		return
	}

	authorID, ok := requesterID(c)
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

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		Text:      req.Text,
		AuthorID:  authorID,
		PostID:    postID,
		Replies:   []primitive.ObjectID{},
		CreatedAt: time.Now().Unix(),
	}

	if req.ParentComment != "" {
		parentID, err := primitive.ObjectIDFromHex(req.ParentComment)
		if err != nil {
			apperr.Respond(c, apperr.New("Invalid parent comment ID", http.StatusBadRequest, op))
			return
		}

		var parent models.Comment
		err = h.Comments.FindOne(ctx, bson.M{"_id": parentID}).Decode(&parent)
		if errors.Is(err, mongo.ErrNoDocuments) {
			apperr.Respond(c, apperr.New("Parent comment not found", http.StatusNotFound, op))
			return
		}
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "Failed to fetch parent comment", http.StatusInternalServerError, op))
			return
		}
		if parent.PostID != postID {
			apperr.Respond(c, apperr.New("Parent comment belongs to a different post", http.StatusBadRequest, op))
			return
		}
		comment.ParentID = &parentID
	}

	if _, err := h.Comments.InsertOne(ctx, comment); err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to create comment", http.StatusInternalServerError, op))
		return
	}

	if comment.ParentID != nil {
		_, err := h.Comments.UpdateOne(ctx,
			bson.M{"_id": *comment.ParentID},
			bson.M{"$push": bson.M{"replies": comment.ID}})
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "Failed to link reply to parent comment", http.StatusInternalServerError, op))
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully",
		"data":    comment,
	})
}

// Delete removes a comment, unlinks it from its parent and drops its direct
// replies. Author-only.
func (h *CommentHandler) Delete(c *gin.Context) {
	const op = "delete comment"

	commentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperr.Respond(c, apperr.New("Invalid comment ID", http.StatusBadRequest, op))
		return
	}

	userID, ok := requesterID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var comment models.Comment
	err = h.Comments.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(c, apperr.New("Comment not found", http.StatusNotFound, op))
		return
	}
	if err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to fetch comment", http.StatusInternalServerError, op))
		return
	}

	if comment.AuthorID != userID {
		apperr.Respond(c, apperr.New("Unauthorized to delete this comment", http.StatusForbidden, op))
		return
	}

	if comment.ParentID != nil {
		_, err := h.Comments.UpdateOne(ctx,
			bson.M{"_id": *comment.ParentID},
			bson.M{"$pull": bson.M{"replies": commentID}})
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "Failed to unlink comment from parent", http.StatusInternalServerError, op))
			return
		}
	}

	if _, err := h.Comments.DeleteMany(ctx, bson.M{"parentComment": commentID}); err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to delete comment replies", http.StatusInternalServerError, op))
		return
	}
	if _, err := h.Comments.DeleteOne(ctx, bson.M{"_id": commentID}); err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to delete comment", http.StatusInternalServerError, op))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
