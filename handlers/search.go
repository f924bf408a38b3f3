package handlers

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"knowshare/apperr"
	"knowshare/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SearchHandler serves the dual-mode search: direct text queries and audio
// queries bridged through the transcription service.
type SearchHandler struct {
	Transcriber AudioTranscriber
	Posts       *mongo.Collection
}

func (h *SearchHandler) ByText(c *gin.Context) {
	const op = "text search"

	query := strings.TrimSpace(c.Query("query"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := h.textSearch(ctx, query)
	if err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Text search failed", http.StatusInternalServerError, op))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"query":   query,
		"results": results,
	})
}

func (h *SearchHandler) ByAudio(c *gin.Context) {
	const op = "audio search"

	file, err := c.FormFile("audio")
	if err != nil {
		apperr.Respond(c, apperr.New("No audio file uploaded", http.StatusBadRequest, op))
		return
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to store uploaded audio", http.StatusInternalServerError, op))
		return
	}
	// The temp file goes away once transcription has been attempted, no
	// matter how the rest of the request turns out.
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			log.Printf("[%s] failed to remove temp audio file %s: %v", op, tmpPath, err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	transcript, err := h.Transcriber.Transcribe(ctx, tmpPath)
	if err != nil {
		log.Printf("[%s] transcription failed: %v", op, err)
		apperr.Respond(c, apperr.Wrap(err, "Failed to transcribe audio", http.StatusInternalServerError, op))
		return
	}
	if strings.TrimSpace(transcript) == "" {
		apperr.Respond(c, apperr.New("Failed to transcribe audio", http.StatusInternalServerError, op))
		return
	}

	results, err := h.textSearch(ctx, transcript)
	if err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Audio search failed", http.StatusInternalServerError, op))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"transcript": transcript,
		"results":    results,
	})
}

// textSearch runs a full-text query over post title/content, ordered by
// descending relevance of the underlying text index.
func (h *SearchHandler) textSearch(ctx context.Context, query string) ([]models.Post, error) {
	cursor, err := h.Posts.Find(ctx,
		bson.M{"$text": bson.M{"$search": query}},
		options.Find().
			SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
			SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []models.Post{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
