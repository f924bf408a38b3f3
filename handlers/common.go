package handlers

import (
	"context"
	"mime/multipart"
	"net/http"

	"knowshare/models"
	"knowshare/moderation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostStore is the slice of the post collection the lifecycle handlers use.
// Satisfied by *mongo.Collection and stubbed in tests.
type PostStore interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// ChildDeleter removes the dependent rows taken down with a post.
type ChildDeleter interface {
	DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// UserFinder looks up author documents for response decoration.
type UserFinder interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// Moderator is the moderation pipeline contract the post handlers depend on.
type Moderator interface {
	ClassifyAndScreen(ctx context.Context, title, content string) (*moderation.Result, error)
}

// AssetStore is the remote media store contract.
type AssetStore interface {
	Upload(ctx context.Context, files []*multipart.FileHeader, folderKey string) ([]models.MediaAsset, error)
	Replace(ctx context.Context, existing []models.MediaAsset, files []*multipart.FileHeader, folderKey string) ([]models.MediaAsset, error)
	DeleteAll(ctx context.Context, folderKey string) error
}

// AudioTranscriber is the speech-to-text contract the audio search uses.
type AudioTranscriber interface {
	Transcribe(ctx context.Context, filePath string) (string, error)
}

// requesterID reads the authenticated user id set by the JWT middleware.
func requesterID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

// requesterIsPrivileged reports the administrative capability supplied by
// the identity middleware.
func requesterIsPrivileged(c *gin.Context) bool {
	return c.GetBool("isAdmin")
}
