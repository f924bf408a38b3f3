package interactions

import (
	"context"

	"knowshare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Stats are the per-post engagement counts computed on read. Nothing is
// cached or denormalized onto the post, so counts always reflect the
// interactions collection at query time.
type Stats struct {
	LikesCount   int64 `json:"likes_count"`
	RatingsCount int64 `json:"ratings_count"`
	SavesCount   int64 `json:"saves_count"`
}

// Counter is the narrow slice of *mongo.Collection the aggregator needs.
type Counter interface {
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

// Aggregator counts stored interaction rows per type. For a list of N
// posts it runs once per post; the O(N) query count is accepted for
// implementation simplicity.
type Aggregator struct {
	Interactions Counter
}

func (a *Aggregator) Stats(ctx context.Context, postID primitive.ObjectID) (Stats, error) {
	var stats Stats

	likes, err := a.count(ctx, postID, models.InteractionLike)
	if err != nil {
		return stats, err
	}
	ratings, err := a.count(ctx, postID, models.InteractionRating)
	if err != nil {
		return stats, err
	}
	saves, err := a.count(ctx, postID, models.InteractionSave)
	if err != nil {
		return stats, err
	}

	stats.LikesCount = likes
	stats.RatingsCount = ratings
	stats.SavesCount = saves
	return stats, nil
}

func (a *Aggregator) count(ctx context.Context, postID primitive.ObjectID, interactionType string) (int64, error) {
	return a.Interactions.CountDocuments(ctx, bson.M{"postId": postID, "type": interactionType})
}
